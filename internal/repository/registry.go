package repository

import (
	"errors"
	"sync"

	"github.com/campusworks/student-records-api/internal/models"
)

// Sentinel errors returned by the repositories. Services translate them
// into the typed API errors.
var (
	// ErrNoRecord means the record addressed by the operation is absent.
	ErrNoRecord = errors.New("record not found")
	// ErrCourseNotFound means a referenced course does not exist.
	ErrCourseNotFound = errors.New("referenced course not found")
	// ErrCourseInactive means the referenced course is not accepting enrollments.
	ErrCourseInactive = errors.New("course is not active")
	// ErrCourseFull means the course reached its max enrollment.
	ErrCourseFull = errors.New("course enrollment is full")
	// ErrDuplicateID means a creation payload supplied an ID already in use.
	ErrDuplicateID = errors.New("identifier already exists")
)

// Registry owns the four in-memory entity collections and their locking.
// Courses and enrollments share a single lock so the enrollment write and
// the course counter adjustment are one atomic unit to every reader.
// Persons and addresses are independently locked.
type Registry struct {
	personMu sync.RWMutex
	persons  *collection[models.Person]

	addressMu sync.RWMutex
	addresses *collection[models.Address]

	courseMu    sync.RWMutex
	courses     *collection[models.Course]
	enrollments *collection[models.Enrollment]
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		persons:     newCollection[models.Person](),
		addresses:   newCollection[models.Address](),
		courses:     newCollection[models.Course](),
		enrollments: newCollection[models.Enrollment](),
	}
}

// Persons returns the person repository view.
func (r *Registry) Persons() *PersonRepository {
	return &PersonRepository{reg: r}
}

// Addresses returns the address repository view.
func (r *Registry) Addresses() *AddressRepository {
	return &AddressRepository{reg: r}
}

// Courses returns the course repository view.
func (r *Registry) Courses() *CourseRepository {
	return &CourseRepository{reg: r}
}

// Enrollments returns the enrollment repository view.
func (r *Registry) Enrollments() *EnrollmentRepository {
	return &EnrollmentRepository{reg: r}
}
