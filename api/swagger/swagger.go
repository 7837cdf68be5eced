package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Records API",
        "description": "In-memory educational records service: persons, addresses, courses, enrollments",
        "version": "0.2.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Persons", "description": "Person records"},
        {"name": "Addresses", "description": "Standalone address records"},
        {"name": "Courses", "description": "Course catalog and capacity"},
        {"name": "Enrollments", "description": "Student-course enrollments"},
        {"name": "Students", "description": "Cross-resource student queries"},
        {"name": "Health", "description": "Process health"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "parameters": [
                    {"name": "echo", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Health"}}}
            }
        },
        "/health/{path_echo}": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check with path echo",
                "parameters": [
                    {"name": "path_echo", "in": "path", "required": true, "type": "string"},
                    {"name": "echo", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Health"}}}
            }
        },
        "/persons": {
            "get": {
                "tags": ["Persons"],
                "summary": "List persons",
                "parameters": [
                    {"name": "uni", "in": "query", "type": "string"},
                    {"name": "first_name", "in": "query", "type": "string"},
                    {"name": "last_name", "in": "query", "type": "string"},
                    {"name": "email", "in": "query", "type": "string"},
                    {"name": "phone", "in": "query", "type": "string"},
                    {"name": "birth_date", "in": "query", "type": "string"},
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "country", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Persons"],
                "summary": "Create person",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePersonRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/persons/{id}": {
            "get": {
                "tags": ["Persons"],
                "summary": "Get person",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "patch": {
                "tags": ["Persons"],
                "summary": "Partially update person",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/addresses": {
            "get": {
                "tags": ["Addresses"],
                "summary": "List addresses",
                "parameters": [
                    {"name": "street", "in": "query", "type": "string"},
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "state", "in": "query", "type": "string"},
                    {"name": "postal_code", "in": "query", "type": "string"},
                    {"name": "country", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Addresses"],
                "summary": "Create address",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAddressRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/addresses/{id}": {
            "get": {
                "tags": ["Addresses"],
                "summary": "Get address",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "patch": {
                "tags": ["Addresses"],
                "summary": "Partially update address",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "parameters": [
                    {"name": "code", "in": "query", "type": "string"},
                    {"name": "title", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "instructor", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "is_active", "in": "query", "type": "boolean"},
                    {"name": "min_credits", "in": "query", "type": "integer"},
                    {"name": "max_credits", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Replace course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "patch": {
                "tags": ["Courses"],
                "summary": "Partially update course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/courses/{id}/enrollments": {
            "get": {
                "tags": ["Courses"],
                "summary": "List a course's enrollments",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/enrollments/export": {
            "get": {
                "tags": ["Courses"],
                "summary": "Export a course roster as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments",
                "parameters": [
                    {"name": "student_uni", "in": "query", "type": "string"},
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Create enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/enrollments/{id}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Get enrollment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Enrollments"],
                "summary": "Replace enrollment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "patch": {
                "tags": ["Enrollments"],
                "summary": "Partially update enrollment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Delete enrollment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/students/{uni}/enrollments": {
            "get": {
                "tags": ["Students"],
                "summary": "List a student's enrollments",
                "parameters": [{"name": "uni", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{uni}/courses": {
            "get": {
                "tags": ["Students"],
                "summary": "List a student's courses",
                "parameters": [{"name": "uni", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "Health": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "status_message": {"type": "string"},
                "timestamp": {"type": "string"},
                "ip_address": {"type": "string"},
                "echo": {"type": "string"},
                "path_echo": {"type": "string"}
            }
        },
        "CreatePersonRequest": {
            "type": "object",
            "properties": {
                "uni": {"type": "string", "example": "abc1234"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "birth_date": {"type": "string", "example": "2000-01-31"},
                "addresses": {"type": "array", "items": {"$ref": "#/definitions/AddressPayload"}}
            },
            "required": ["uni", "first_name", "last_name", "email"]
        },
        "AddressPayload": {
            "type": "object",
            "properties": {
                "street": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "postal_code": {"type": "string"},
                "country": {"type": "string"}
            },
            "required": ["street", "city", "state", "postal_code", "country"]
        },
        "CreateAddressRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "description": "Optional client-supplied UUID"},
                "street": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "postal_code": {"type": "string"},
                "country": {"type": "string"}
            },
            "required": ["street", "city", "state", "postal_code", "country"]
        },
        "CreateCourseRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "CS101"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "credits": {"type": "integer", "minimum": 1, "maximum": 6},
                "department": {"type": "string"},
                "instructor": {"type": "string"},
                "semester": {"type": "string", "example": "Fall 2024"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "max_enrollment": {"type": "integer", "minimum": 1},
                "current_enrollment": {"type": "integer", "minimum": 0},
                "tuition_fee": {"type": "number", "minimum": 0},
                "prerequisites": {"type": "array", "items": {"type": "string"}},
                "is_active": {"type": "boolean"}
            },
            "required": ["code", "title", "credits", "department", "semester"]
        },
        "CreateEnrollmentRequest": {
            "type": "object",
            "properties": {
                "student_uni": {"type": "string", "example": "abc1234"},
                "course_id": {"type": "string"},
                "enrollment_date": {"type": "string", "example": "2024-08-15"},
                "status": {"type": "string", "enum": ["pending", "active", "dropped", "completed", "withdrawn"]},
                "grade": {"type": "string", "example": "A+"},
                "credits_earned": {"type": "integer", "minimum": 0},
                "tuition_paid": {"type": "number", "minimum": 0},
                "payment_date": {"type": "string"},
                "completion_date": {"type": "string"},
                "withdrawal_date": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["student_uni", "course_id", "enrollment_date"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
