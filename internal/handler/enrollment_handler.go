package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusworks/student-records-api/internal/models"
	"github.com/campusworks/student-records-api/internal/service"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
	"github.com/campusworks/student-records-api/pkg/export"
	"github.com/campusworks/student-records-api/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints plus the per-course
// listing and roster export.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Create godoc
// @Summary Create enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.CreateEnrollmentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param student_uni query string false "Filter by student UNI"
// @Param course_id query string false "Filter by course ID"
// @Param status query string false "Filter by status"
// @Param semester query string false "Filter by semester via course (substring)"
// @Param department query string false "Filter by department via course (substring)"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	filter := models.EnrollmentFilter{
		StudentUNI: c.Query("student_uni"),
		Status:     models.EnrollmentStatus(c.Query("status")),
		Semester:   c.Query("semester"),
		Department: c.Query("department"),
	}
	if raw, ok := c.GetQuery("course_id"); ok {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid course_id"))
			return
		}
		filter.CourseID = &courseID
	}
	response.JSON(c, http.StatusOK, h.enrollments.List(filter))
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrollment, err := h.enrollments.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Replace godoc
// @Summary Replace enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body service.CreateEnrollmentRequest true "Full enrollment payload"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) Replace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Replace(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Update godoc
// @Summary Partially update enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body service.UpdateEnrollmentRequest true "Sparse update"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [patch]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Enrollments
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 204
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.enrollments.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ForCourse godoc
// @Summary List a course's enrollments
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/enrollments [get]
func (h *EnrollmentHandler) ForCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrollments, err := h.enrollments.EnrollmentsForCourse(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// ExportRoster godoc
// @Summary Export a course roster as CSV or PDF
// @Tags Courses
// @Produce octet-stream
// @Param id path string true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /courses/{id}/enrollments/export [get]
func (h *EnrollmentHandler) ExportRoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dataset, title, err := h.enrollments.Roster(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		body, err := export.RenderCSV(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="roster.csv"`)
		c.Data(http.StatusOK, "text/csv", body)
	case "pdf":
		body, err := export.RenderPDF(dataset, title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="roster.pdf"`)
		c.Data(http.StatusOK, "application/pdf", body)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
