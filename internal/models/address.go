package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a standalone top-level resource. Persons embed address values,
// but this collection's identifier namespace is independent of theirs.
type Address struct {
	ID         uuid.UUID `json:"id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddressFilter encapsulates exact-match list filters for addresses.
type AddressFilter struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}
