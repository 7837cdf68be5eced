package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/student-records-api/internal/models"
	"github.com/campusworks/student-records-api/internal/service"
	appErrors "github.com/campusworks/student-records-api/pkg/errors"
	"github.com/campusworks/student-records-api/pkg/response"
)

// AddressHandler exposes address endpoints.
type AddressHandler struct {
	addresses *service.AddressService
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Create godoc
// @Summary Create address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param payload body service.CreateAddressRequest true "Address payload"
// @Success 201 {object} response.Envelope
// @Router /addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req service.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	address, err := h.addresses.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, address)
}

// List godoc
// @Summary List addresses
// @Tags Addresses
// @Produce json
// @Param street query string false "Filter by street"
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state/region"
// @Param postal_code query string false "Filter by postal code"
// @Param country query string false "Filter by country"
// @Success 200 {object} response.Envelope
// @Router /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	filter := models.AddressFilter{
		Street:     c.Query("street"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		PostalCode: c.Query("postal_code"),
		Country:    c.Query("country"),
	}
	response.JSON(c, http.StatusOK, h.addresses.List(filter))
}

// Get godoc
// @Summary Get address
// @Tags Addresses
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} response.Envelope
// @Router /addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	address, err := h.addresses.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, address)
}

// Update godoc
// @Summary Partially update address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param payload body service.UpdateAddressRequest true "Sparse update"
// @Success 200 {object} response.Envelope
// @Router /addresses/{id} [patch]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	address, err := h.addresses.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, address)
}
