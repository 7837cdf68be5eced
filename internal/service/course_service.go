package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusworks/student-records-api/internal/models"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
)

type courseStore interface {
	Put(course models.Course)
	FindByID(id uuid.UUID) (*models.Course, error)
	Delete(id uuid.UUID) error
	List(filter models.CourseFilter) []models.Course
}

// CreateCourseRequest describes course creation and full replacement. The
// payload may carry a current_enrollment, as the source system allowed.
type CreateCourseRequest struct {
	Code              string       `json:"code" validate:"required,coursecode"`
	Title             string       `json:"title" validate:"required"`
	Description       *string      `json:"description"`
	Credits           int          `json:"credits" validate:"required,min=1,max=6"`
	Department        string       `json:"department" validate:"required"`
	Instructor        *string      `json:"instructor"`
	Semester          string       `json:"semester" validate:"required"`
	StartDate         *models.Date `json:"start_date"`
	EndDate           *models.Date `json:"end_date"`
	MaxEnrollment     *int         `json:"max_enrollment" validate:"omitempty,min=1"`
	CurrentEnrollment int          `json:"current_enrollment" validate:"min=0"`
	TuitionFee        *float64     `json:"tuition_fee" validate:"omitempty,min=0"`
	Prerequisites     []string     `json:"prerequisites"`
	IsActive          *bool        `json:"is_active"`
}

// UpdateCourseRequest is a sparse partial update. CurrentEnrollment is
// deliberately updatable here: only the enrollment create/delete paths are
// constrained to move the counter, a direct course write is not.
type UpdateCourseRequest struct {
	Code              models.Optional[string]      `json:"code"`
	Title             models.Optional[string]      `json:"title"`
	Description       models.Optional[string]      `json:"description"`
	Credits           models.Optional[int]         `json:"credits"`
	Department        models.Optional[string]      `json:"department"`
	Instructor        models.Optional[string]      `json:"instructor"`
	Semester          models.Optional[string]      `json:"semester"`
	StartDate         models.Optional[models.Date] `json:"start_date"`
	EndDate           models.Optional[models.Date] `json:"end_date"`
	MaxEnrollment     models.Optional[int]         `json:"max_enrollment"`
	CurrentEnrollment models.Optional[int]         `json:"current_enrollment"`
	TuitionFee        models.Optional[float64]     `json:"tuition_fee"`
	Prerequisites     models.Optional[[]string]    `json:"prerequisites"`
	IsActive          models.Optional[bool]        `json:"is_active"`
}

// CourseService manages course records. Course code uniqueness is not
// enforced; prerequisites are not validated against existing courses.
type CourseService struct {
	courses   courseStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(courses courseStore, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, validator: validate, logger: logger}
}

// Create stores a new course with a server-assigned ID.
func (s *CourseService) Create(req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := buildCourse(uuid.New(), req)
	s.courses.Put(course)
	s.logger.Debug("course created", zap.String("id", course.ID.String()), zap.String("code", course.Code))
	return &course, nil
}

// Get returns the course with the given ID.
func (s *CourseService) Get(id uuid.UUID) (*models.Course, error) {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// Replace overwrites the whole course, keeping only the ID. The counter is
// whatever the payload says; replacement can desynchronise it.
func (s *CourseService) Replace(id uuid.UUID, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if _, err := s.courses.FindByID(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	course := buildCourse(id, req)
	s.courses.Put(course)
	return &course, nil
}

// Update merges a sparse payload onto the stored course and stores the
// merged record whole.
func (s *CourseService) Update(id uuid.UUID, req UpdateCourseRequest) (*models.Course, error) {
	stored, err := s.courses.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	merged := *stored
	if code, ok := req.Code.Get(); ok {
		if err := s.validator.Var(code, "coursecode"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course code")
		}
		merged.Code = code
	}
	req.Title.Apply(&merged.Title)
	req.Description.ApplyPtr(&merged.Description)
	if credits, ok := req.Credits.Get(); ok {
		if err := s.validator.Var(credits, "min=1,max=6"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "credits must be between 1 and 6")
		}
		merged.Credits = credits
	}
	req.Department.Apply(&merged.Department)
	req.Instructor.ApplyPtr(&merged.Instructor)
	req.Semester.Apply(&merged.Semester)
	req.StartDate.ApplyPtr(&merged.StartDate)
	req.EndDate.ApplyPtr(&merged.EndDate)
	req.MaxEnrollment.ApplyPtr(&merged.MaxEnrollment)
	req.CurrentEnrollment.Apply(&merged.CurrentEnrollment)
	req.TuitionFee.ApplyPtr(&merged.TuitionFee)
	req.Prerequisites.Apply(&merged.Prerequisites)
	req.IsActive.Apply(&merged.IsActive)
	merged.UpdatedAt = time.Now().UTC()
	s.courses.Put(merged)
	return &merged, nil
}

// Delete removes the course. Enrollments referencing it become dangling and
// are tolerated by readers.
func (s *CourseService) Delete(id uuid.UUID) error {
	if err := s.courses.Delete(id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return nil
}

// List returns courses matching the filter.
func (s *CourseService) List(filter models.CourseFilter) []models.Course {
	return s.courses.List(filter)
}

func buildCourse(id uuid.UUID, req CreateCourseRequest) models.Course {
	now := time.Now().UTC()
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	prerequisites := req.Prerequisites
	if prerequisites == nil {
		prerequisites = []string{}
	}
	return models.Course{
		ID:                id,
		Code:              req.Code,
		Title:             req.Title,
		Description:       req.Description,
		Credits:           req.Credits,
		Department:        req.Department,
		Instructor:        req.Instructor,
		Semester:          req.Semester,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		MaxEnrollment:     req.MaxEnrollment,
		CurrentEnrollment: req.CurrentEnrollment,
		TuitionFee:        req.TuitionFee,
		Prerequisites:     prerequisites,
		IsActive:          active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
