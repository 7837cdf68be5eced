package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is an offered course. CurrentEnrollment is a derived counter that
// only the enrollment create and delete paths are supposed to move; direct
// course writes can still overwrite it, matching the source system.
type Course struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	Credits           int       `json:"credits"`
	Department        string    `json:"department"`
	Instructor        *string   `json:"instructor,omitempty"`
	Semester          string    `json:"semester"`
	StartDate         *Date     `json:"start_date,omitempty"`
	EndDate           *Date     `json:"end_date,omitempty"`
	MaxEnrollment     *int      `json:"max_enrollment,omitempty"`
	CurrentEnrollment int       `json:"current_enrollment"`
	TuitionFee        *float64  `json:"tuition_fee,omitempty"`
	Prerequisites     []string  `json:"prerequisites"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CourseFilter provides list filters. Code is exact-match; Title,
// Department, Instructor and Semester are case-insensitive substring
// matches; credits bound the inclusive range.
type CourseFilter struct {
	Code       string
	Title      string
	Department string
	Instructor string
	Semester   string
	IsActive   *bool
	MinCredits *int
	MaxCredits *int
}
