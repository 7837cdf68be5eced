package repository

import (
	"github.com/google/uuid"

	"github.com/campusworks/student-records-api/internal/models"
)

// PersonRepository stores persons. UNI uniqueness is intentionally not
// enforced; lookups by UNI return the first match in insertion order.
type PersonRepository struct {
	reg *Registry
}

// Put stores or overwrites a person record.
func (p *PersonRepository) Put(person models.Person) {
	p.reg.personMu.Lock()
	defer p.reg.personMu.Unlock()
	p.reg.persons.put(person.ID, person)
}

// FindByID returns the person with the given ID.
func (p *PersonRepository) FindByID(id uuid.UUID) (*models.Person, error) {
	p.reg.personMu.RLock()
	defer p.reg.personMu.RUnlock()
	person, ok := p.reg.persons.get(id)
	if !ok {
		return nil, ErrNoRecord
	}
	return &person, nil
}

// ExistsUNI reports whether any person carries the given UNI.
func (p *PersonRepository) ExistsUNI(uni string) bool {
	p.reg.personMu.RLock()
	defer p.reg.personMu.RUnlock()
	for _, person := range p.reg.persons.list() {
		if person.UNI == uni {
			return true
		}
	}
	return false
}

// List returns persons matching the filter, in insertion order. An empty
// filter field means no constraint.
func (p *PersonRepository) List(filter models.PersonFilter) []models.Person {
	p.reg.personMu.RLock()
	defer p.reg.personMu.RUnlock()

	out := make([]models.Person, 0)
	for _, person := range p.reg.persons.list() {
		if matchesPerson(person, filter) {
			out = append(out, person)
		}
	}
	return out
}

func matchesPerson(person models.Person, f models.PersonFilter) bool {
	if f.UNI != "" && person.UNI != f.UNI {
		return false
	}
	if f.FirstName != "" && person.FirstName != f.FirstName {
		return false
	}
	if f.LastName != "" && person.LastName != f.LastName {
		return false
	}
	if f.Email != "" && person.Email != f.Email {
		return false
	}
	if f.Phone != "" && (person.Phone == nil || *person.Phone != f.Phone) {
		return false
	}
	if f.BirthDate != "" && (person.BirthDate == nil || person.BirthDate.String() != f.BirthDate) {
		return false
	}
	if f.City != "" && !anyAddress(person.Addresses, func(a models.Address) bool { return a.City == f.City }) {
		return false
	}
	if f.Country != "" && !anyAddress(person.Addresses, func(a models.Address) bool { return a.Country == f.Country }) {
		return false
	}
	return true
}

func anyAddress(addresses []models.Address, match func(models.Address) bool) bool {
	for _, a := range addresses {
		if match(a) {
			return true
		}
	}
	return false
}
