package repository

import (
	"strings"

	"github.com/google/uuid"

	"github.com/campusworks/student-records-api/internal/models"
)

// CourseRepository stores courses. Course code uniqueness is intentionally
// not enforced. All access shares the course+enrollment lock.
type CourseRepository struct {
	reg *Registry
}

// Put stores or overwrites a course record.
func (c *CourseRepository) Put(course models.Course) {
	c.reg.courseMu.Lock()
	defer c.reg.courseMu.Unlock()
	c.reg.courses.put(course.ID, course)
}

// FindByID returns the course with the given ID.
func (c *CourseRepository) FindByID(id uuid.UUID) (*models.Course, error) {
	c.reg.courseMu.RLock()
	defer c.reg.courseMu.RUnlock()
	course, ok := c.reg.courses.get(id)
	if !ok {
		return nil, ErrNoRecord
	}
	return &course, nil
}

// Delete removes the course. Enrollments referencing it are left dangling;
// readers tolerate that.
func (c *CourseRepository) Delete(id uuid.UUID) error {
	c.reg.courseMu.Lock()
	defer c.reg.courseMu.Unlock()
	if !c.reg.courses.delete(id) {
		return ErrNoRecord
	}
	return nil
}

// List returns courses matching the filter, in insertion order.
func (c *CourseRepository) List(filter models.CourseFilter) []models.Course {
	c.reg.courseMu.RLock()
	defer c.reg.courseMu.RUnlock()

	out := make([]models.Course, 0)
	for _, course := range c.reg.courses.list() {
		if matchesCourse(course, filter) {
			out = append(out, course)
		}
	}
	return out
}

func matchesCourse(course models.Course, f models.CourseFilter) bool {
	if f.Code != "" && course.Code != f.Code {
		return false
	}
	if f.Title != "" && !containsFold(course.Title, f.Title) {
		return false
	}
	if f.Department != "" && !containsFold(course.Department, f.Department) {
		return false
	}
	if f.Instructor != "" && (course.Instructor == nil || !containsFold(*course.Instructor, f.Instructor)) {
		return false
	}
	if f.Semester != "" && !containsFold(course.Semester, f.Semester) {
		return false
	}
	if f.IsActive != nil && course.IsActive != *f.IsActive {
		return false
	}
	if f.MinCredits != nil && course.Credits < *f.MinCredits {
		return false
	}
	if f.MaxCredits != nil && course.Credits > *f.MaxCredits {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
