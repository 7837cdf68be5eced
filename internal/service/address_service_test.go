package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/student-records-api/internal/models"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
)

func addressPayload() CreateAddressRequest {
	return CreateAddressRequest{
		Street:     "116th & Broadway",
		City:       "New York",
		State:      "NY",
		PostalCode: "10027",
		Country:    "USA",
	}
}

func TestAddressCreate(t *testing.T) {
	env := newTestEnv()
	address, err := env.addresses.Create(addressPayload())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, address.ID)
	assert.Equal(t, "New York", address.City)
}

func TestAddressCreateWithClientID(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	payload := addressPayload()
	payload.ID = &id

	address, err := env.addresses.Create(payload)
	require.NoError(t, err)
	assert.Equal(t, id, address.ID)

	_, err = env.addresses.Create(payload)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestAddressCreateValidation(t *testing.T) {
	env := newTestEnv()
	payload := addressPayload()
	payload.City = ""
	_, err := env.addresses.Create(payload)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAddressUpdateMerge(t *testing.T) {
	env := newTestEnv()
	address, err := env.addresses.Create(addressPayload())
	require.NoError(t, err)

	updated, err := env.addresses.Update(address.ID, UpdateAddressRequest{
		City:       models.Some("Brooklyn"),
		PostalCode: models.Some("11201"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Brooklyn", updated.City)
	assert.Equal(t, "11201", updated.PostalCode)
	assert.Equal(t, address.Street, updated.Street)
	assert.Equal(t, address.CreatedAt, updated.CreatedAt)
}

func TestAddressGetMissing(t *testing.T) {
	env := newTestEnv()
	_, err := env.addresses.Get(uuid.New())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = env.addresses.Update(uuid.New(), UpdateAddressRequest{City: models.Some("Nowhere")})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestAddressListFilters(t *testing.T) {
	env := newTestEnv()
	_, err := env.addresses.Create(addressPayload())
	require.NoError(t, err)

	other := addressPayload()
	other.City = "Boston"
	other.PostalCode = "02115"
	_, err = env.addresses.Create(other)
	require.NoError(t, err)

	byCity := env.addresses.List(models.AddressFilter{City: "Boston"})
	require.Len(t, byCity, 1)
	assert.Equal(t, "02115", byCity[0].PostalCode)

	assert.Len(t, env.addresses.List(models.AddressFilter{Country: "USA"}), 2)
	assert.Empty(t, env.addresses.List(models.AddressFilter{City: "Chicago"}))
}
