package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"spice-store/internal/dto/request"
	"spice-store/internal/usecase"
	"spice-store/pkg/utils"

	"go.uber.org/zap"
)

type SubscriberHandler struct {
	service usecase.SubscriberService
	log     *zap.Logger
}

func NewSubscriberHandler(service usecase.SubscriberService, log *zap.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		service: service,
		log:     log,
	}
}

// Subscribe handles POST /api/subscribe
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req request.SubscribeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, reactivated, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "subscribe")
		return
	}

	if reactivated {
		utils.ResponseSuccess(w, "Welcome back! Subscription reactivated", response)
		return
	}
	utils.ResponseCreated(w, "Subscribed successfully", response)
}

// Unsubscribe handles POST /api/unsubscribe
func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req request.UnsubscribeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Unsubscribe(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "unsubscribe")
		return
	}

	utils.ResponseSuccess(w, "Unsubscribed successfully", nil)
}

// GetSubscribers handles GET /api/subscribers (admin)
func (h *SubscriberHandler) GetSubscribers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	response, err := h.service.GetSubscribers(r.Context(), activeOnly)
	if err != nil {
		h.handleServiceError(w, err, "list subscribers")
		return
	}

	utils.ResponseSuccess(w, "Subscribers retrieved", response)
}

// handleServiceError handles different types of errors
func (h *SubscriberHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already subscribed"),
		strings.Contains(errMsg, "already unsubscribed"):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
