package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/student-records-api/internal/repository"
	"github.com/campusworks/student-records-api/internal/service"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := repository.NewRegistry()
	validate := service.NewValidator()
	logr := zap.NewNop()

	personSvc := service.NewPersonService(reg.Persons(), validate, logr)
	courseSvc := service.NewCourseService(reg.Courses(), validate, logr)
	enrollmentSvc := service.NewEnrollmentService(reg.Enrollments(), reg.Persons(), reg.Courses(), validate, logr)
	healthSvc := service.NewHealthService()

	personH := NewPersonHandler(personSvc, enrollmentSvc)
	courseH := NewCourseHandler(courseSvc)
	enrollmentH := NewEnrollmentHandler(enrollmentSvc)
	healthH := NewHealthHandler(healthSvc)

	r := gin.New()
	r.GET("/health", healthH.Check)
	r.GET("/health/:path_echo", healthH.CheckWithPath)
	r.POST("/persons", personH.Create)
	r.GET("/students/:uni/enrollments", personH.Enrollments)
	r.POST("/courses", courseH.Create)
	r.GET("/courses/:id", courseH.Get)
	r.GET("/courses/:id/enrollments/export", enrollmentH.ExportRoster)
	r.POST("/enrollments", enrollmentH.Create)
	r.GET("/enrollments/:id", enrollmentH.Get)
	r.DELETE("/enrollments/:id", enrollmentH.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func createFixtures(t *testing.T, r *gin.Engine, maxEnrollment int) (courseID string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/persons", gin.H{
		"uni":        "abc1234",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "abc1234@university.edu",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/courses", gin.H{
		"code":           "CS101",
		"title":          "Introduction to Computer Science",
		"credits":        3,
		"department":     "Computer Science",
		"semester":       "Fall 2024",
		"max_enrollment": maxEnrollment,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	return data["id"].(string)
}

func TestEnrollmentEndpointLifecycle(t *testing.T) {
	r := setupRouter()
	courseID := createFixtures(t, r, 1)

	w := doJSON(t, r, http.MethodPost, "/enrollments", gin.H{
		"student_uni":     "abc1234",
		"course_id":       courseID,
		"enrollment_date": "2024-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	enrollmentID := data["id"].(string)
	assert.Equal(t, "pending", data["status"])

	// Capacity is exhausted; the next attempt is a client error with a
	// typed code.
	w = doJSON(t, r, http.MethodPost, "/enrollments", gin.H{
		"student_uni":     "abc1234",
		"course_id":       courseID,
		"enrollment_date": "2024-09-01",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	envelope = decodeEnvelope(t, w)
	errObj := envelope["error"].(map[string]interface{})
	assert.Equal(t, "CAPACITY_EXCEEDED", errObj["code"])

	w = doJSON(t, r, http.MethodGet, "/courses/"+courseID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodeEnvelope(t, w)
	assert.EqualValues(t, 1, envelope["data"].(map[string]interface{})["current_enrollment"])

	w = doJSON(t, r, http.MethodDelete, "/enrollments/"+enrollmentID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/enrollments/"+enrollmentID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	envelope = decodeEnvelope(t, w)
	errObj = envelope["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestEnrollmentEndpointRejectsUnknownStudent(t *testing.T) {
	r := setupRouter()
	courseID := createFixtures(t, r, 10)

	w := doJSON(t, r, http.MethodPost, "/enrollments", gin.H{
		"student_uni":     "zzz999",
		"course_id":       courseID,
		"enrollment_date": "2024-09-01",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	errObj := envelope["error"].(map[string]interface{})
	assert.Equal(t, "REFERENCE_ERROR", errObj["code"])
}

func TestEnrollmentEndpointInvalidID(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/enrollments/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	errObj := envelope["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestStudentEnrollmentsEndpoint(t *testing.T) {
	r := setupRouter()
	courseID := createFixtures(t, r, 10)

	w := doJSON(t, r, http.MethodGet, "/students/zzz999/enrollments", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/students/abc1234/enrollments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/enrollments", gin.H{
		"student_uni":     "abc1234",
		"course_id":       courseID,
		"enrollment_date": "2024-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/students/abc1234/enrollments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Len(t, envelope["data"].([]interface{}), 1)
}

func TestRosterExportEndpoint(t *testing.T) {
	r := setupRouter()
	courseID := createFixtures(t, r, 10)

	w := doJSON(t, r, http.MethodPost, "/enrollments", gin.H{
		"student_uni":     "abc1234",
		"course_id":       courseID,
		"enrollment_date": "2024-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	base := fmt.Sprintf("/courses/%s/enrollments/export", courseID)

	w = doJSON(t, r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "abc1234")

	w = doJSON(t, r, http.MethodGet, base+"?format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])

	w = doJSON(t, r, http.MethodGet, base+"?format=xml", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	errObj := envelope["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestHealthEndpoints(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/health?echo=hello", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.EqualValues(t, 200, health["status"])
	assert.Equal(t, "hello", health["echo"])

	w = doJSON(t, r, http.MethodGet, "/health/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ping", health["path_echo"])
}
