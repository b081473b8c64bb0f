package adaptor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"spice-store/internal/dto/request"
	"spice-store/internal/dto/response"
	"spice-store/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPaymentService struct {
	webhookCalls int
	lastEvent    string
}

func (s *stubPaymentService) CreatePendingOrder(ctx context.Context, userID uuid.UUID, req *request.CreatePendingOrderRequest) (*response.OrderResponse, error) {
	return &response.OrderResponse{}, nil
}

func (s *stubPaymentService) ConfirmPayment(ctx context.Context, userID uuid.UUID, req *request.ConfirmPaymentRequest) (*response.OrderResponse, error) {
	return &response.OrderResponse{}, nil
}

func (s *stubPaymentService) AdminVerify(ctx context.Context, adminEmail string, req *request.AdminVerifyRequest) (*response.OrderResponse, error) {
	return &response.OrderResponse{}, nil
}

func (s *stubPaymentService) HandleUPIWebhook(ctx context.Context, req *request.UPIWebhookRequest) (*response.OrderResponse, error) {
	s.webhookCalls++
	s.lastEvent = req.Event
	return &response.OrderResponse{Status: "paid"}, nil
}

func (s *stubPaymentService) VerifyUTR(ctx context.Context, adminEmail string, req *request.VerifyUTRRequest) (*response.OrderResponse, error) {
	return &response.OrderResponse{}, nil
}

const webhookBody = `{"event":"payment.success","order_number":"ORD-20260830-120000-0001","transaction_id":"TXN-42","amount":450}`

func TestUPIWebhookSignatureRequired(t *testing.T) {
	stub := &stubPaymentService{}
	handler := NewPaymentHandler(stub, "shared-secret", zap.NewNop())

	t.Run("valid signature accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook/upi", bytes.NewBufferString(webhookBody))
		req.Header.Set("X-Webhook-Signature", utils.SignWebhookBody("shared-secret", []byte(webhookBody)))
		rec := httptest.NewRecorder()

		handler.UPIWebhook(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, stub.webhookCalls)
		assert.Equal(t, "payment.success", stub.lastEvent)
	})

	t.Run("wrong signature rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook/upi", bytes.NewBufferString(webhookBody))
		req.Header.Set("X-Webhook-Signature", utils.SignWebhookBody("wrong-secret", []byte(webhookBody)))
		rec := httptest.NewRecorder()

		handler.UPIWebhook(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook/upi", bytes.NewBufferString(webhookBody))
		rec := httptest.NewRecorder()

		handler.UPIWebhook(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered body rejected", func(t *testing.T) {
		tampered := `{"event":"payment.success","order_number":"ORD-XXXXXXXX-000000-0000","transaction_id":"TXN-42","amount":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook/upi", bytes.NewBufferString(tampered))
		req.Header.Set("X-Webhook-Signature", utils.SignWebhookBody("shared-secret", []byte(webhookBody)))
		rec := httptest.NewRecorder()

		handler.UPIWebhook(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUPIWebhookNoSecretSkipsVerification(t *testing.T) {
	stub := &stubPaymentService{}
	handler := NewPaymentHandler(stub, "", zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook/upi", bytes.NewBufferString(webhookBody))
	rec := httptest.NewRecorder()

	handler.UPIWebhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.webhookCalls)
}

func TestUPIWebhookBadJSON(t *testing.T) {
	stub := &stubPaymentService{}
	handler := NewPaymentHandler(stub, "", zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook/upi", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	handler.UPIWebhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, stub.webhookCalls)
}
