package repository

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/student-records-api/internal/models"
)

func seedCourse(t *testing.T, reg *Registry, max *int, active bool) models.Course {
	t.Helper()
	now := time.Now().UTC()
	course := models.Course{
		ID:            uuid.New(),
		Code:          "CS101",
		Title:         "Introduction to Computer Science",
		Credits:       3,
		Department:    "Computer Science",
		Semester:      "Fall 2024",
		MaxEnrollment: max,
		Prerequisites: []string{},
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	reg.Courses().Put(course)
	return course
}

func seedEnrollment(courseID uuid.UUID) models.Enrollment {
	now := time.Now().UTC()
	return models.Enrollment{
		ID:             uuid.New(),
		StudentUNI:     "abc1234",
		CourseID:       courseID,
		EnrollmentDate: models.NewDate(2024, time.September, 1),
		Status:         models.EnrollmentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func intp(n int) *int { return &n }

func TestEnrollmentCreateChecksCourse(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Enrollments()

	err := repo.Create(seedEnrollment(uuid.New()))
	assert.ErrorIs(t, err, ErrCourseNotFound)

	inactive := seedCourse(t, reg, intp(10), false)
	err = repo.Create(seedEnrollment(inactive.ID))
	assert.ErrorIs(t, err, ErrCourseInactive)

	full := seedCourse(t, reg, intp(1), true)
	require.NoError(t, repo.Create(seedEnrollment(full.ID)))
	err = repo.Create(seedEnrollment(full.ID))
	assert.ErrorIs(t, err, ErrCourseFull)
}

func TestEnrollmentCounterUnderConcurrency(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Enrollments()
	course := seedCourse(t, reg, intp(50), true)

	var wg sync.WaitGroup
	var successes int64
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(seedEnrollment(course.ID)); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 50, successes)
	stored, err := reg.Courses().FindByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.CurrentEnrollment)
	assert.Len(t, repo.ListByCourse(course.ID), 50)
}

func TestEnrollmentDeleteDecrementsOnce(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Enrollments()
	course := seedCourse(t, reg, intp(10), true)

	enrollment := seedEnrollment(course.ID)
	require.NoError(t, repo.Create(enrollment))

	var wg sync.WaitGroup
	var deletions int64
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Delete(enrollment.ID); err == nil {
				atomic.AddInt64(&deletions, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, deletions)
	stored, err := reg.Courses().FindByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentEnrollment)
}

func TestEnrollmentDeleteFloorsCounterAtZero(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Enrollments()
	course := seedCourse(t, reg, intp(10), true)

	enrollment := seedEnrollment(course.ID)
	require.NoError(t, repo.Create(enrollment))

	// Simulate a direct counter overwrite below the live enrollment count.
	stored, err := reg.Courses().FindByID(course.ID)
	require.NoError(t, err)
	stored.CurrentEnrollment = 0
	reg.Courses().Put(*stored)

	require.NoError(t, repo.Delete(enrollment.ID))
	stored, err = reg.Courses().FindByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CurrentEnrollment)
}

func TestEnrollmentDeleteToleratesDanglingCourse(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Enrollments()
	course := seedCourse(t, reg, intp(10), true)

	enrollment := seedEnrollment(course.ID)
	require.NoError(t, repo.Create(enrollment))
	require.NoError(t, reg.Courses().Delete(course.ID))

	require.NoError(t, repo.Delete(enrollment.ID))
	_, err := repo.FindByID(enrollment.ID)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestCollectionInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Enrollments()
	course := seedCourse(t, reg, nil, true)

	first := seedEnrollment(course.ID)
	second := seedEnrollment(course.ID)
	third := seedEnrollment(course.ID)
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))
	require.NoError(t, repo.Create(third))

	list := repo.List(models.EnrollmentFilter{})
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, third.ID, list[2].ID)

	// Removal keeps the relative order of the survivors.
	require.NoError(t, repo.Delete(second.ID))
	list = repo.List(models.EnrollmentFilter{})
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, third.ID, list[1].ID)
}

func TestAddressCreateRejectsDuplicateID(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Addresses()
	now := time.Now().UTC()
	address := models.Address{
		ID:         uuid.New(),
		Street:     "116th & Broadway",
		City:       "New York",
		State:      "NY",
		PostalCode: "10027",
		Country:    "USA",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	require.NoError(t, repo.Create(address))
	assert.ErrorIs(t, repo.Create(address), ErrDuplicateID)
}

func TestPersonExistsUNI(t *testing.T) {
	reg := NewRegistry()
	repo := reg.Persons()
	now := time.Now().UTC()
	repo.Put(models.Person{
		ID:        uuid.New(),
		UNI:       "abc1234",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "abc1234@university.edu",
		CreatedAt: now,
		UpdatedAt: now,
	})

	assert.True(t, repo.ExistsUNI("abc1234"))
	assert.False(t, repo.ExistsUNI("zzz999"))
}
