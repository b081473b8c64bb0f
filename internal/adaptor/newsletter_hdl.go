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

type NewsletterHandler struct {
	service usecase.NewsletterService
	log     *zap.Logger
}

func NewNewsletterHandler(service usecase.NewsletterService, log *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		log:     log,
	}
}

// SendNewsletter handles POST /api/newsletter/send (admin)
func (h *NewsletterHandler) SendNewsletter(w http.ResponseWriter, r *http.Request) {
	var req request.SendNewsletterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.SendNewsletter(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "send newsletter")
		return
	}

	utils.ResponseSuccess(w, "Newsletter sent", response)
}

// GetStats handles GET /api/newsletter/stats (admin)
func (h *NewsletterHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "load subscriber stats")
		return
	}

	utils.ResponseSuccess(w, "Subscriber stats retrieved", stats)
}

// handleServiceError handles different types of errors
func (h *NewsletterHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "no active subscribers"),
		strings.Contains(errMsg, "not configured"),
		strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
