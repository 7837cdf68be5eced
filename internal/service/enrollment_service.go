package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusworks/student-records-api/internal/models"
	"github.com/campusworks/student-records-api/internal/repository"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
	"github.com/campusworks/student-records-api/pkg/export"
)

type enrollmentStore interface {
	Create(enrollment models.Enrollment) error
	Replace(id uuid.UUID, enrollment models.Enrollment) error
	Update(id uuid.UUID, enrollment models.Enrollment, verifyCourse bool) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*models.Enrollment, error)
	List(filter models.EnrollmentFilter) []models.Enrollment
	ListByStudent(uni string) []models.Enrollment
	ListByCourse(courseID uuid.UUID) []models.Enrollment
	ListCoursesForStudent(uni string) []models.Course
}

type personDirectory interface {
	ExistsUNI(uni string) bool
}

type courseReader interface {
	FindByID(id uuid.UUID) (*models.Course, error)
}

// CreateEnrollmentRequest describes enrollment creation and replacement.
type CreateEnrollmentRequest struct {
	StudentUNI     string                  `json:"student_uni" validate:"required,uni"`
	CourseID       uuid.UUID               `json:"course_id" validate:"required"`
	EnrollmentDate models.Date             `json:"enrollment_date" validate:"required"`
	Status         models.EnrollmentStatus `json:"status" validate:"omitempty,oneof=pending active dropped completed withdrawn"`
	Grade          *string                 `json:"grade" validate:"omitempty,grade"`
	CreditsEarned  *int                    `json:"credits_earned" validate:"omitempty,min=0"`
	TuitionPaid    *float64                `json:"tuition_paid" validate:"omitempty,min=0"`
	PaymentDate    *models.Date            `json:"payment_date"`
	CompletionDate *models.Date            `json:"completion_date"`
	WithdrawalDate *models.Date            `json:"withdrawal_date"`
	Notes          *string                 `json:"notes"`
}

// UpdateEnrollmentRequest is a sparse partial update. Only a changed
// course_id is re-checked for existence; active status and capacity are not
// re-examined and no counter moves.
type UpdateEnrollmentRequest struct {
	StudentUNI     models.Optional[string]                  `json:"student_uni"`
	CourseID       models.Optional[uuid.UUID]               `json:"course_id"`
	Status         models.Optional[models.EnrollmentStatus] `json:"status"`
	Grade          models.Optional[string]                  `json:"grade"`
	CreditsEarned  models.Optional[int]                     `json:"credits_earned"`
	TuitionPaid    models.Optional[float64]                 `json:"tuition_paid"`
	PaymentDate    models.Optional[models.Date]             `json:"payment_date"`
	CompletionDate models.Optional[models.Date]             `json:"completion_date"`
	WithdrawalDate models.Optional[models.Date]             `json:"withdrawal_date"`
	Notes          models.Optional[string]                  `json:"notes"`
}

// EnrollmentService is the invariant-maintenance core: referential checks,
// capacity and active-status gates, counter bookkeeping, and the
// cross-resource queries.
type EnrollmentService struct {
	enrollments enrollmentStore
	persons     personDirectory
	courses     courseReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(enrollments enrollmentStore, persons personDirectory, courses courseReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{enrollments: enrollments, persons: persons, courses: courses, validator: validate, logger: logger}
}

// Create registers a new enrollment. The student and course must resolve,
// the course must be active and below capacity; on success the enrollment
// write and the counter increment are one atomic unit.
func (s *EnrollmentService) Create(req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if !s.persons.ExistsUNI(req.StudentUNI) {
		return nil, appErrors.Clone(appErrors.ErrReference, "student not found")
	}
	enrollment := buildEnrollment(uuid.New(), req)
	if err := s.enrollments.Create(enrollment); err != nil {
		return nil, mapCourseError(err)
	}
	s.logger.Debug("enrollment created",
		zap.String("id", enrollment.ID.String()),
		zap.String("student_uni", enrollment.StudentUNI),
		zap.String("course_id", enrollment.CourseID.String()))
	return &enrollment, nil
}

// Get returns the enrollment with the given ID.
func (s *EnrollmentService) Get(id uuid.UUID) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return enrollment, nil
}

// Replace overwrites the whole enrollment. The referential, active-status
// and capacity checks run against the new course, but no counter is
// adjusted and timestamps are reset, matching the source system.
func (s *EnrollmentService) Replace(id uuid.UUID, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if !s.persons.ExistsUNI(req.StudentUNI) {
		return nil, appErrors.Clone(appErrors.ErrReference, "student not found")
	}
	enrollment := buildEnrollment(id, req)
	if err := s.enrollments.Replace(id, enrollment); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, mapCourseError(err)
	}
	return &enrollment, nil
}

// Update merges a sparse payload onto the stored enrollment. When course_id
// is supplied it must resolve; nothing else is re-checked and no counter
// moves.
func (s *EnrollmentService) Update(id uuid.UUID, req UpdateEnrollmentRequest) (*models.Enrollment, error) {
	stored, err := s.enrollments.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	merged := *stored
	if uni, ok := req.StudentUNI.Get(); ok {
		if err := s.validator.Var(uni, "uni"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid uni")
		}
		merged.StudentUNI = uni
	}
	courseChanged := false
	if courseID, ok := req.CourseID.Get(); ok {
		merged.CourseID = courseID
		courseChanged = true
	}
	if status, ok := req.Status.Get(); ok {
		if err := s.validator.Var(status, "oneof=pending active dropped completed withdrawn"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status")
		}
		merged.Status = status
	}
	if grade, ok := req.Grade.Get(); ok {
		if err := s.validator.Var(grade, "grade"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade")
		}
		merged.Grade = &grade
	} else if req.Grade.IsNull() {
		merged.Grade = nil
	}
	req.CreditsEarned.ApplyPtr(&merged.CreditsEarned)
	req.TuitionPaid.ApplyPtr(&merged.TuitionPaid)
	req.PaymentDate.ApplyPtr(&merged.PaymentDate)
	req.CompletionDate.ApplyPtr(&merged.CompletionDate)
	req.WithdrawalDate.ApplyPtr(&merged.WithdrawalDate)
	req.Notes.ApplyPtr(&merged.Notes)
	merged.UpdatedAt = time.Now().UTC()

	if err := s.enrollments.Update(id, merged, courseChanged); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, mapCourseError(err)
	}
	return &merged, nil
}

// Delete removes the enrollment, decrementing the course counter (floored
// at zero) in the same atomic unit when the course still resolves.
func (s *EnrollmentService) Delete(id uuid.UUID) error {
	if err := s.enrollments.Delete(id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return nil
}

// List returns enrollments matching the filter.
func (s *EnrollmentService) List(filter models.EnrollmentFilter) []models.Enrollment {
	return s.enrollments.List(filter)
}

// EnrollmentsForStudent returns every enrollment of the student, in store
// insertion order. Unknown UNI is a not-found; zero enrollments is an empty
// list.
func (s *EnrollmentService) EnrollmentsForStudent(uni string) ([]models.Enrollment, error) {
	if !s.persons.ExistsUNI(uni) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.enrollments.ListByStudent(uni), nil
}

// EnrollmentsForCourse returns every enrollment referencing the course.
func (s *EnrollmentService) EnrollmentsForCourse(courseID uuid.UUID) ([]models.Enrollment, error) {
	if _, err := s.courses.FindByID(courseID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return s.enrollments.ListByCourse(courseID), nil
}

// CoursesForStudent resolves the student's enrollments to courses, dropping
// enrollments whose course no longer exists rather than failing the query.
func (s *EnrollmentService) CoursesForStudent(uni string) ([]models.Course, error) {
	if !s.persons.ExistsUNI(uni) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.enrollments.ListCoursesForStudent(uni), nil
}

// Roster builds an exportable dataset of the course's enrollments together
// with a title for document renderers.
func (s *EnrollmentService) Roster(courseID uuid.UUID) (export.Dataset, string, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	enrollments := s.enrollments.ListByCourse(courseID)
	rows := make([][]string, 0, len(enrollments))
	for _, e := range enrollments {
		grade := ""
		if e.Grade != nil {
			grade = *e.Grade
		}
		rows = append(rows, []string{
			e.ID.String(),
			e.StudentUNI,
			string(e.Status),
			grade,
			e.EnrollmentDate.String(),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"enrollment_id", "student_uni", "status", "grade", "enrollment_date"},
		Rows:    rows,
	}
	return dataset, course.Code + " " + course.Title, nil
}

func buildEnrollment(id uuid.UUID, req CreateEnrollmentRequest) models.Enrollment {
	now := time.Now().UTC()
	status := req.Status
	if status == "" {
		status = models.EnrollmentStatusPending
	}
	return models.Enrollment{
		ID:             id,
		StudentUNI:     req.StudentUNI,
		CourseID:       req.CourseID,
		EnrollmentDate: req.EnrollmentDate,
		Status:         status,
		Grade:          req.Grade,
		CreditsEarned:  req.CreditsEarned,
		TuitionPaid:    req.TuitionPaid,
		PaymentDate:    req.PaymentDate,
		CompletionDate: req.CompletionDate,
		WithdrawalDate: req.WithdrawalDate,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func mapCourseError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCourseNotFound):
		return appErrors.Clone(appErrors.ErrReference, "course not found")
	case errors.Is(err, repository.ErrCourseInactive):
		return appErrors.Clone(appErrors.ErrPrecondition, "course is not active")
	case errors.Is(err, repository.ErrCourseFull):
		return appErrors.Clone(appErrors.ErrCapacity, "course enrollment is full")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "enrollment operation failed")
	}
}
