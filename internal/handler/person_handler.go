package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/student-records-api/internal/models"
	"github.com/campusworks/student-records-api/internal/service"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
	"github.com/campusworks/student-records-api/pkg/response"
)

// PersonHandler exposes person endpoints plus the student cross-resource
// queries.
type PersonHandler struct {
	persons     *service.PersonService
	enrollments *service.EnrollmentService
}

// NewPersonHandler constructs PersonHandler.
func NewPersonHandler(persons *service.PersonService, enrollments *service.EnrollmentService) *PersonHandler {
	return &PersonHandler{persons: persons, enrollments: enrollments}
}

// Create godoc
// @Summary Create person
// @Tags Persons
// @Accept json
// @Produce json
// @Param payload body service.CreatePersonRequest true "Person payload"
// @Success 201 {object} response.Envelope
// @Router /persons [post]
func (h *PersonHandler) Create(c *gin.Context) {
	var req service.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.persons.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, person)
}

// List godoc
// @Summary List persons
// @Tags Persons
// @Produce json
// @Param uni query string false "Filter by UNI"
// @Param first_name query string false "Filter by first name"
// @Param last_name query string false "Filter by last name"
// @Param email query string false "Filter by email"
// @Param phone query string false "Filter by phone"
// @Param birth_date query string false "Filter by birth date (YYYY-MM-DD)"
// @Param city query string false "Filter by city of at least one address"
// @Param country query string false "Filter by country of at least one address"
// @Success 200 {object} response.Envelope
// @Router /persons [get]
func (h *PersonHandler) List(c *gin.Context) {
	filter := models.PersonFilter{
		UNI:       c.Query("uni"),
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		Email:     c.Query("email"),
		Phone:     c.Query("phone"),
		BirthDate: c.Query("birth_date"),
		City:      c.Query("city"),
		Country:   c.Query("country"),
	}
	response.JSON(c, http.StatusOK, h.persons.List(filter))
}

// Get godoc
// @Summary Get person
// @Tags Persons
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} response.Envelope
// @Router /persons/{id} [get]
func (h *PersonHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	person, err := h.persons.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person)
}

// Update godoc
// @Summary Partially update person
// @Tags Persons
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param payload body service.UpdatePersonRequest true "Sparse update"
// @Success 200 {object} response.Envelope
// @Router /persons/{id} [patch]
func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.persons.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person)
}

// Enrollments godoc
// @Summary List a student's enrollments
// @Tags Students
// @Produce json
// @Param uni path string true "Student UNI"
// @Success 200 {object} response.Envelope
// @Router /students/{uni}/enrollments [get]
func (h *PersonHandler) Enrollments(c *gin.Context) {
	enrollments, err := h.enrollments.EnrollmentsForStudent(c.Param("uni"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// Courses godoc
// @Summary List a student's courses
// @Tags Students
// @Produce json
// @Param uni path string true "Student UNI"
// @Success 200 {object} response.Envelope
// @Router /students/{uni}/courses [get]
func (h *PersonHandler) Courses(c *gin.Context) {
	courses, err := h.enrollments.CoursesForStudent(c.Param("uni"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}
