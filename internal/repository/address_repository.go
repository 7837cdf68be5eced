package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/student-records-api/internal/models"
)

// AddressRepository stores standalone addresses.
type AddressRepository struct {
	reg *Registry
}

// Create stores a new address, rejecting an ID that is already in use.
func (a *AddressRepository) Create(address models.Address) error {
	a.reg.addressMu.Lock()
	defer a.reg.addressMu.Unlock()
	if _, exists := a.reg.addresses.get(address.ID); exists {
		return ErrDuplicateID
	}
	a.reg.addresses.put(address.ID, address)
	return nil
}

// Put overwrites an address record.
func (a *AddressRepository) Put(address models.Address) {
	a.reg.addressMu.Lock()
	defer a.reg.addressMu.Unlock()
	a.reg.addresses.put(address.ID, address)
}

// FindByID returns the address with the given ID.
func (a *AddressRepository) FindByID(id uuid.UUID) (*models.Address, error) {
	a.reg.addressMu.RLock()
	defer a.reg.addressMu.RUnlock()
	address, ok := a.reg.addresses.get(id)
	if !ok {
		return nil, ErrNoRecord
	}
	return &address, nil
}

// List returns addresses matching the filter, in insertion order.
func (a *AddressRepository) List(filter models.AddressFilter) []models.Address {
	a.reg.addressMu.RLock()
	defer a.reg.addressMu.RUnlock()

	out := make([]models.Address, 0)
	for _, address := range a.reg.addresses.list() {
		if matchesAddress(address, filter) {
			out = append(out, address)
		}
	}
	return out
}

func matchesAddress(address models.Address, f models.AddressFilter) bool {
	if f.Street != "" && address.Street != f.Street {
		return false
	}
	if f.City != "" && address.City != f.City {
		return false
	}
	if f.State != "" && address.State != f.State {
		return false
	}
	if f.PostalCode != "" && address.PostalCode != f.PostalCode {
		return false
	}
	if f.Country != "" && address.Country != f.Country {
		return false
	}
	return true
}
