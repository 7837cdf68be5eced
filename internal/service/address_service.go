package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusworks/student-records-api/internal/models"
	"github.com/campusworks/student-records-api/internal/repository"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
)

type addressStore interface {
	Create(address models.Address) error
	Put(address models.Address)
	FindByID(id uuid.UUID) (*models.Address, error)
	List(filter models.AddressFilter) []models.Address
}

// CreateAddressRequest describes address creation. The client may supply
// the ID; a collision is a conflict.
type CreateAddressRequest struct {
	ID         *uuid.UUID `json:"id"`
	Street     string     `json:"street" validate:"required"`
	City       string     `json:"city" validate:"required"`
	State      string     `json:"state" validate:"required"`
	PostalCode string     `json:"postal_code" validate:"required"`
	Country    string     `json:"country" validate:"required"`
}

// UpdateAddressRequest is a sparse partial update.
type UpdateAddressRequest struct {
	Street     models.Optional[string] `json:"street"`
	City       models.Optional[string] `json:"city"`
	State      models.Optional[string] `json:"state"`
	PostalCode models.Optional[string] `json:"postal_code"`
	Country    models.Optional[string] `json:"country"`
}

// AddressService manages the standalone address collection.
type AddressService struct {
	addresses addressStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAddressService constructs AddressService.
func NewAddressService(addresses addressStore, validate *validator.Validate, logger *zap.Logger) *AddressService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressService{addresses: addresses, validator: validate, logger: logger}
}

// Create stores a new address.
func (s *AddressService) Create(req CreateAddressRequest) (*models.Address, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid address payload")
	}
	id := uuid.New()
	if req.ID != nil {
		id = *req.ID
	}
	now := time.Now().UTC()
	address := models.Address{
		ID:         id,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.addresses.Create(address); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "address with this ID already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create address")
	}
	s.logger.Debug("address created", zap.String("id", address.ID.String()))
	return &address, nil
}

// Get returns the address with the given ID.
func (s *AddressService) Get(id uuid.UUID) (*models.Address, error) {
	address, err := s.addresses.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "address not found")
	}
	return address, nil
}

// Update merges a sparse payload onto the stored address.
func (s *AddressService) Update(id uuid.UUID, req UpdateAddressRequest) (*models.Address, error) {
	stored, err := s.addresses.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "address not found")
	}
	merged := *stored
	req.Street.Apply(&merged.Street)
	req.City.Apply(&merged.City)
	req.State.Apply(&merged.State)
	req.PostalCode.Apply(&merged.PostalCode)
	req.Country.Apply(&merged.Country)
	merged.UpdatedAt = time.Now().UTC()
	s.addresses.Put(merged)
	return &merged, nil
}

// List returns addresses matching the filter.
func (s *AddressService) List(filter models.AddressFilter) []models.Address {
	return s.addresses.List(filter)
}
