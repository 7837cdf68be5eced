package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/student-records-api/internal/models"
)

// EnrollmentRepository stores enrollments. Because it shares the Registry's
// course lock, the compound operations below run the course checks, the
// enrollment write and the counter adjustment as one critical section: no
// reader ever observes an enrollment without its counter movement.
type EnrollmentRepository struct {
	reg *Registry
}

// Create validates the referenced course and, on success, inserts the
// enrollment and increments the course's current enrollment atomically.
// The student reference is checked by the caller against the person store.
func (e *EnrollmentRepository) Create(enrollment models.Enrollment) error {
	e.reg.courseMu.Lock()
	defer e.reg.courseMu.Unlock()

	course, ok := e.reg.courses.get(enrollment.CourseID)
	if !ok {
		return ErrCourseNotFound
	}
	if !course.IsActive {
		return ErrCourseInactive
	}
	if course.MaxEnrollment != nil && course.CurrentEnrollment >= *course.MaxEnrollment {
		return ErrCourseFull
	}

	e.reg.enrollments.put(enrollment.ID, enrollment)
	course.CurrentEnrollment++
	e.reg.courses.put(course.ID, course)
	return nil
}

// Replace overwrites an existing enrollment after re-running the course
// checks against the new course. It never adjusts any counter; that
// asymmetry with Create and Delete mirrors the source system.
func (e *EnrollmentRepository) Replace(id uuid.UUID, enrollment models.Enrollment) error {
	e.reg.courseMu.Lock()
	defer e.reg.courseMu.Unlock()

	if _, ok := e.reg.enrollments.get(id); !ok {
		return ErrNoRecord
	}
	course, ok := e.reg.courses.get(enrollment.CourseID)
	if !ok {
		return ErrCourseNotFound
	}
	if !course.IsActive {
		return ErrCourseInactive
	}
	if course.MaxEnrollment != nil && course.CurrentEnrollment >= *course.MaxEnrollment {
		return ErrCourseFull
	}

	enrollment.ID = id
	e.reg.enrollments.put(id, enrollment)
	return nil
}

// Update overwrites an existing enrollment with an already-merged record,
// optionally verifying that the (changed) course reference resolves. No
// active-status or capacity re-check and no counter movement.
func (e *EnrollmentRepository) Update(id uuid.UUID, enrollment models.Enrollment, verifyCourse bool) error {
	e.reg.courseMu.Lock()
	defer e.reg.courseMu.Unlock()

	if _, ok := e.reg.enrollments.get(id); !ok {
		return ErrNoRecord
	}
	if verifyCourse {
		if _, ok := e.reg.courses.get(enrollment.CourseID); !ok {
			return ErrCourseNotFound
		}
	}
	enrollment.ID = id
	e.reg.enrollments.put(id, enrollment)
	return nil
}

// Delete removes the enrollment and decrements the referenced course's
// counter, floored at zero, in the same critical section. A dangling course
// reference is tolerated: the record is removed and no counter moves.
func (e *EnrollmentRepository) Delete(id uuid.UUID) error {
	e.reg.courseMu.Lock()
	defer e.reg.courseMu.Unlock()

	enrollment, ok := e.reg.enrollments.get(id)
	if !ok {
		return ErrNoRecord
	}
	if course, ok := e.reg.courses.get(enrollment.CourseID); ok {
		if course.CurrentEnrollment > 0 {
			course.CurrentEnrollment--
		}
		e.reg.courses.put(course.ID, course)
	}
	e.reg.enrollments.delete(id)
	return nil
}

// FindByID returns the enrollment with the given ID.
func (e *EnrollmentRepository) FindByID(id uuid.UUID) (*models.Enrollment, error) {
	e.reg.courseMu.RLock()
	defer e.reg.courseMu.RUnlock()
	enrollment, ok := e.reg.enrollments.get(id)
	if !ok {
		return nil, ErrNoRecord
	}
	return &enrollment, nil
}

// List returns enrollments matching the filter in insertion order. The
// semester and department filters join through the referenced course.
func (e *EnrollmentRepository) List(filter models.EnrollmentFilter) []models.Enrollment {
	e.reg.courseMu.RLock()
	defer e.reg.courseMu.RUnlock()

	out := make([]models.Enrollment, 0)
	for _, enrollment := range e.reg.enrollments.list() {
		if e.matches(enrollment, filter) {
			out = append(out, enrollment)
		}
	}
	return out
}

// ListByStudent returns every enrollment for the given UNI in insertion order.
func (e *EnrollmentRepository) ListByStudent(uni string) []models.Enrollment {
	return e.List(models.EnrollmentFilter{StudentUNI: uni})
}

// ListByCourse returns every enrollment referencing the course.
func (e *EnrollmentRepository) ListByCourse(courseID uuid.UUID) []models.Enrollment {
	return e.List(models.EnrollmentFilter{CourseID: &courseID})
}

// ListCoursesForStudent resolves the student's enrollments to courses,
// silently dropping enrollments whose course no longer exists.
func (e *EnrollmentRepository) ListCoursesForStudent(uni string) []models.Course {
	e.reg.courseMu.RLock()
	defer e.reg.courseMu.RUnlock()

	out := make([]models.Course, 0)
	for _, enrollment := range e.reg.enrollments.list() {
		if enrollment.StudentUNI != uni {
			continue
		}
		if course, ok := e.reg.courses.get(enrollment.CourseID); ok {
			out = append(out, course)
		}
	}
	return out
}

func (e *EnrollmentRepository) matches(enrollment models.Enrollment, f models.EnrollmentFilter) bool {
	if f.StudentUNI != "" && enrollment.StudentUNI != f.StudentUNI {
		return false
	}
	if f.CourseID != nil && enrollment.CourseID != *f.CourseID {
		return false
	}
	if f.Status != "" && enrollment.Status != f.Status {
		return false
	}
	if f.Semester != "" {
		course, ok := e.reg.courses.get(enrollment.CourseID)
		if !ok || !containsFold(course.Semester, f.Semester) {
			return false
		}
	}
	if f.Department != "" {
		course, ok := e.reg.courses.get(enrollment.CourseID)
		if !ok || !containsFold(course.Department, f.Department) {
			return false
		}
	}
	return true
}
