package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"spice-store/internal/dto/request"
	"spice-store/internal/usecase"
	"spice-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddressHandler struct {
	service usecase.AddressService
	log     *zap.Logger
}

func NewAddressHandler(service usecase.AddressService, log *zap.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		log:     log,
	}
}

// CreateAddress handles POST /api/addresses
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateAddress(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create address")
		return
	}

	utils.ResponseCreated(w, "Address created", response)
}

// GetAddresses handles GET /api/addresses
func (h *AddressHandler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	response, err := h.service.GetAddresses(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "list addresses")
		return
	}

	utils.ResponseSuccess(w, "Addresses retrieved", response)
}

// GetAddress handles GET /api/addresses/{id}
func (h *AddressHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid address ID format", nil)
		return
	}

	response, err := h.service.GetAddress(r.Context(), userID, addressID)
	if err != nil {
		h.handleServiceError(w, err, "get address")
		return
	}

	utils.ResponseSuccess(w, "Address retrieved", response)
}

// UpdateAddress handles PUT /api/addresses/{id}
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid address ID format", nil)
		return
	}

	var req request.UpdateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateAddress(r.Context(), userID, addressID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update address")
		return
	}

	utils.ResponseSuccess(w, "Address updated", response)
}

// DeleteAddress handles DELETE /api/addresses/{id}
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid address ID format", nil)
		return
	}

	if err := h.service.DeleteAddress(r.Context(), userID, addressID); err != nil {
		h.handleServiceError(w, err, "delete address")
		return
	}

	utils.ResponseSuccess(w, "Address deleted", nil)
}

// SetDefaultAddress handles PUT /api/addresses/{id}/default
func (h *AddressHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid address ID format", nil)
		return
	}

	response, err := h.service.SetDefaultAddress(r.Context(), userID, addressID)
	if err != nil {
		h.handleServiceError(w, err, "set default address")
		return
	}

	utils.ResponseSuccess(w, "Default address updated", response)
}

// handleServiceError handles different types of errors
func (h *AddressHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
