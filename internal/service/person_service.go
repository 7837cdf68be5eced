package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusworks/student-records-api/internal/models"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
)

type personStore interface {
	Put(person models.Person)
	FindByID(id uuid.UUID) (*models.Person, error)
	List(filter models.PersonFilter) []models.Person
}

// AddressPayload carries an embedded address in person payloads.
type AddressPayload struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// CreatePersonRequest describes person creation.
type CreatePersonRequest struct {
	UNI       string           `json:"uni" validate:"required,uni"`
	FirstName string           `json:"first_name" validate:"required"`
	LastName  string           `json:"last_name" validate:"required"`
	Email     string           `json:"email" validate:"required,email"`
	Phone     *string          `json:"phone"`
	BirthDate *models.Date     `json:"birth_date"`
	Addresses []AddressPayload `json:"addresses" validate:"omitempty,dive"`
}

// UpdatePersonRequest is a sparse partial update; omitted fields preserve
// the stored values.
type UpdatePersonRequest struct {
	UNI       models.Optional[string]           `json:"uni"`
	FirstName models.Optional[string]           `json:"first_name"`
	LastName  models.Optional[string]           `json:"last_name"`
	Email     models.Optional[string]           `json:"email"`
	Phone     models.Optional[string]           `json:"phone"`
	BirthDate models.Optional[models.Date]      `json:"birth_date"`
	Addresses models.Optional[[]AddressPayload] `json:"addresses"`
}

// PersonService manages person records. UNI uniqueness is deliberately not
// enforced; duplicate UNIs are permitted as in the source system.
type PersonService struct {
	persons   personStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPersonService constructs PersonService.
func NewPersonService(persons personStore, validate *validator.Validate, logger *zap.Logger) *PersonService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonService{persons: persons, validator: validate, logger: logger}
}

// Create stores a new person with a server-assigned ID.
func (s *PersonService) Create(req CreatePersonRequest) (*models.Person, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid person payload")
	}
	now := time.Now().UTC()
	person := models.Person{
		ID:        uuid.New(),
		UNI:       req.UNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Addresses: embedAddresses(req.Addresses, now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.persons.Put(person)
	s.logger.Debug("person created", zap.String("id", person.ID.String()), zap.String("uni", person.UNI))
	return &person, nil
}

// Get returns the person with the given ID.
func (s *PersonService) Get(id uuid.UUID) (*models.Person, error) {
	person, err := s.persons.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
	}
	return person, nil
}

// Update merges a sparse payload onto the stored person and stores the
// merged record whole.
func (s *PersonService) Update(id uuid.UUID, req UpdatePersonRequest) (*models.Person, error) {
	stored, err := s.persons.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
	}
	merged := *stored
	if uni, ok := req.UNI.Get(); ok {
		if err := s.validator.Var(uni, "uni"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid uni")
		}
		merged.UNI = uni
	}
	req.FirstName.Apply(&merged.FirstName)
	req.LastName.Apply(&merged.LastName)
	if email, ok := req.Email.Get(); ok {
		if err := s.validator.Var(email, "email"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid email")
		}
		merged.Email = email
	}
	req.Phone.ApplyPtr(&merged.Phone)
	req.BirthDate.ApplyPtr(&merged.BirthDate)
	if req.Addresses.IsSet() {
		if payload, ok := req.Addresses.Get(); ok {
			merged.Addresses = embedAddresses(payload, time.Now().UTC())
		} else {
			merged.Addresses = nil
		}
	}
	merged.UpdatedAt = time.Now().UTC()
	s.persons.Put(merged)
	return &merged, nil
}

// List returns persons matching the filter.
func (s *PersonService) List(filter models.PersonFilter) []models.Person {
	return s.persons.List(filter)
}

func embedAddresses(payloads []AddressPayload, now time.Time) []models.Address {
	if len(payloads) == 0 {
		return []models.Address{}
	}
	out := make([]models.Address, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, models.Address{
			ID:         uuid.New(),
			Street:     p.Street,
			City:       p.City,
			State:      p.State,
			PostalCode: p.PostalCode,
			Country:    p.Country,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return out
}
