package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a student or staff member in the records system. The
// UNI is the human-readable business key; the ID is server-assigned.
type Person struct {
	ID        uuid.UUID `json:"id"`
	UNI       string    `json:"uni"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	BirthDate *Date     `json:"birth_date,omitempty"`
	Addresses []Address `json:"addresses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonFilter encapsulates the exact-match list filters for persons. City
// and Country match against any of the person's embedded addresses.
type PersonFilter struct {
	UNI       string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	BirthDate string
	City      string
	Country   string
}
