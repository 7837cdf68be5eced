package models

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus represents the lifecycle of an enrollment. No transition
// between statuses is restricted.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusPending   EnrollmentStatus = "pending"
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
)

// Enrollment links a student (by UNI) to a course (by ID).
type Enrollment struct {
	ID             uuid.UUID        `json:"id"`
	StudentUNI     string           `json:"student_uni"`
	CourseID       uuid.UUID        `json:"course_id"`
	EnrollmentDate Date             `json:"enrollment_date"`
	Status         EnrollmentStatus `json:"status"`
	Grade          *string          `json:"grade,omitempty"`
	CreditsEarned  *int             `json:"credits_earned,omitempty"`
	TuitionPaid    *float64         `json:"tuition_paid,omitempty"`
	PaymentDate    *Date            `json:"payment_date,omitempty"`
	CompletionDate *Date            `json:"completion_date,omitempty"`
	WithdrawalDate *Date            `json:"withdrawal_date,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// EnrollmentFilter provides list filters. Semester and Department are
// case-insensitive substring matches resolved through the referenced course;
// enrollments whose course no longer exists never match those two.
type EnrollmentFilter struct {
	StudentUNI string
	CourseID   *uuid.UUID
	Status     EnrollmentStatus
	Semester   string
	Department string
}
