package adaptor

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"spice-store/internal/dto/request"
	"spice-store/internal/usecase"
	"spice-store/pkg/utils"

	"go.uber.org/zap"
)

// webhook bodies are small JSON payloads; anything bigger is abuse
const maxWebhookBody = 64 * 1024

type PaymentHandler struct {
	service       usecase.PaymentService
	webhookSecret string
	log           *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, webhookSecret string, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:       service,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreatePendingOrder handles POST /api/payment/create-pending
func (h *PaymentHandler) CreatePendingOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePendingOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreatePendingOrder(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create pending order")
		return
	}

	utils.ResponseCreated(w, "Order created, awaiting payment", response)
}

// ConfirmPayment handles POST /api/payment/confirm
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.ConfirmPayment(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "Payment recorded, pending verification", response)
}

// AdminVerify handles POST /api/payment/admin/verify
func (h *PaymentHandler) AdminVerify(w http.ResponseWriter, r *http.Request) {
	adminEmail, ok := utils.GetUserEmailFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AdminVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.AdminVerify(r.Context(), adminEmail, &req)
	if err != nil {
		h.handleServiceError(w, err, "verify payment")
		return
	}

	message := "Payment approved, order completed"
	if !req.Approved {
		message = "Payment rejected, order cancelled"
	}
	utils.ResponseSuccess(w, message, response)
}

// VerifyUTR handles POST /api/payment/verify-utr
func (h *PaymentHandler) VerifyUTR(w http.ResponseWriter, r *http.Request) {
	adminEmail, ok := utils.GetUserEmailFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.VerifyUTRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.VerifyUTR(r.Context(), adminEmail, &req)
	if err != nil {
		h.handleServiceError(w, err, "verify UTR")
		return
	}

	utils.ResponseSuccess(w, "UTR verified, order completed", response)
}

// UPIWebhook handles POST /api/payment/webhook/upi
//
// The signature covers the raw body, so the body is read before any
// JSON decoding happens.
func (h *PaymentHandler) UPIWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Unable to read request body", nil)
		return
	}

	if h.webhookSecret != "" {
		signature := r.Header.Get("X-Webhook-Signature")
		if signature == "" || !utils.VerifyWebhookSignature(h.webhookSecret, body, signature) {
			h.log.Warn("Webhook signature verification failed",
				zap.Bool("signature_present", signature != ""))
			utils.ResponseUnauthorized(w, "Invalid webhook signature")
			return
		}
	}

	var req request.UPIWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.HandleUPIWebhook(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "process webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook processed", response)
}

// handleServiceError handles different types of errors
func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "cannot move from"):
		h.log.Warn(operation+" failed - state conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "insufficient stock"):
		h.log.Warn(operation+" failed - insufficient stock", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid order ID"),
		strings.Contains(errMsg, "invalid product ID"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
