package usecase

import (
	"context"
	"testing"
	"time"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedProduct(t *testing.T, repo *repository.Repository, price float64, stock int) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Sambar Podi",
		Category: entity.CategorySambar,
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, repo.Product.Create(context.Background(), p))
	return p
}

func seedOrder(t *testing.T, repo *repository.Repository, userID uuid.UUID, status entity.OrderStatus) *entity.Order {
	t.Helper()
	now := time.Now()
	o := &entity.Order{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		OrderNumber:     "ORD-20260830-120000-0001",
		UserID:          &userID,
		CustomerEmail:   "buyer@example.com",
		CustomerName:    "Buyer",
		ShippingAddress: "12 Spice Lane, Chennai",
		Subtotal:        450,
		Status:          status,
	}
	require.NoError(t, repo.Order.Create(context.Background(), o))
	return o
}

func TestCreatePendingOrder(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	product := seedProduct(t, repo, 150, 10)
	userID := uuid.New()

	resp, err := svc.CreatePendingOrder(ctx, userID, &request.CreatePendingOrderRequest{
		CustomerName:    "Buyer",
		CustomerEmail:   "buyer@example.com",
		ShippingAddress: "12 Spice Lane, Chennai",
		Items: []request.OrderItem{
			{ProductID: product.ID.String(), Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Equal(t, float64(450), resp.Subtotal)
	assert.NotEmpty(t, resp.OrderNumber)

	// Stock was reserved
	p, err := repo.Product.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
}

func TestCreatePendingOrderInsufficientStock(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	plenty := seedProduct(t, repo, 100, 10)
	scarce := seedProduct(t, repo, 200, 1)

	_, err := svc.CreatePendingOrder(ctx, uuid.New(), &request.CreatePendingOrderRequest{
		CustomerName:    "Buyer",
		CustomerEmail:   "buyer@example.com",
		ShippingAddress: "12 Spice Lane, Chennai",
		Items: []request.OrderItem{
			{ProductID: plenty.ID.String(), Quantity: 2},
			{ProductID: scarce.ID.String(), Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	// The first item's reservation was rolled back
	p, err := repo.Product.FindByID(ctx, plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestConfirmPayment(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	order := seedOrder(t, repo, userID, entity.OrderStatusPending)

	resp, err := svc.ConfirmPayment(ctx, userID, &request.ConfirmPaymentRequest{
		OrderID: order.ID.String(),
		UTR:     "UTR123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, resp.Status)
	require.NotNil(t, resp.UTR)
	assert.Equal(t, "UTR123456789", *resp.UTR)

	// Second confirmation hits the state guard
	_, err = svc.ConfirmPayment(ctx, userID, &request.ConfirmPaymentRequest{
		OrderID: order.ID.String(),
		UTR:     "UTR999999999",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move")
}

func TestConfirmPaymentRowVanishesAfterTransition(t *testing.T) {
	repo := newFakeRepository()
	repo.Order = &vanishingOrderRepo{repo.Order.(*fakeOrderRepo)}
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	order := seedOrder(t, repo, userID, entity.OrderStatusPending)

	_, err := svc.ConfirmPayment(ctx, userID, &request.ConfirmPaymentRequest{
		OrderID: order.ID.String(),
		UTR:     "UTR123456789",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disappeared after transition")
}

func TestConfirmPaymentForeignOrder(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	order := seedOrder(t, repo, uuid.New(), entity.OrderStatusPending)

	_, err := svc.ConfirmPayment(ctx, uuid.New(), &request.ConfirmPaymentRequest{
		OrderID: order.ID.String(),
		UTR:     "UTR123456789",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAdminVerify(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	t.Run("approve completes a paid order", func(t *testing.T) {
		order := seedOrder(t, repo, uuid.New(), entity.OrderStatusPaid)

		resp, err := svc.AdminVerify(ctx, "admin@example.com", &request.AdminVerifyRequest{
			OrderID:  order.ID.String(),
			Approved: true,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCompleted, resp.Status)
		require.NotNil(t, resp.VerifiedBy)
		assert.Equal(t, "admin@example.com", *resp.VerifiedBy)
	})

	t.Run("reject cancels a pending order", func(t *testing.T) {
		order := seedOrder(t, repo, uuid.New(), entity.OrderStatusPending)

		resp, err := svc.AdminVerify(ctx, "admin@example.com", &request.AdminVerifyRequest{
			OrderID:  order.ID.String(),
			Approved: false,
			Note:     "no matching bank credit",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
		require.NotNil(t, resp.VerifiedBy)
		assert.Contains(t, *resp.VerifiedBy, "no matching bank credit")
	})

	t.Run("completed orders are terminal", func(t *testing.T) {
		order := seedOrder(t, repo, uuid.New(), entity.OrderStatusCompleted)

		_, err := svc.AdminVerify(ctx, "admin@example.com", &request.AdminVerifyRequest{
			OrderID:  order.ID.String(),
			Approved: false,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot move")
	})
}

func TestHandleUPIWebhook(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	order := seedOrder(t, repo, uuid.New(), entity.OrderStatusPending)

	t.Run("payment.success marks order paid", func(t *testing.T) {
		resp, err := svc.HandleUPIWebhook(ctx, &request.UPIWebhookRequest{
			Event:         "payment.success",
			OrderNumber:   order.OrderNumber,
			TransactionID: "TXN-42",
			Amount:        450,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPaid, resp.Status)
		require.NotNil(t, resp.TransactionID)
		assert.Equal(t, "TXN-42", *resp.TransactionID)
	})

	t.Run("other events are acknowledged without change", func(t *testing.T) {
		resp, err := svc.HandleUPIWebhook(ctx, &request.UPIWebhookRequest{
			Event:         "payment.pending",
			OrderNumber:   order.OrderNumber,
			TransactionID: "TXN-43",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPaid, resp.Status)
	})

	t.Run("unknown order is rejected", func(t *testing.T) {
		_, err := svc.HandleUPIWebhook(ctx, &request.UPIWebhookRequest{
			Event:         "payment.success",
			OrderNumber:   "ORD-00000000-000000-0000",
			TransactionID: "TXN-44",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestVerifyUTR(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaymentService(repo, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	order := seedOrder(t, repo, userID, entity.OrderStatusPending)

	_, err := svc.ConfirmPayment(ctx, userID, &request.ConfirmPaymentRequest{
		OrderID: order.ID.String(),
		UTR:     "UTR555666777",
	})
	require.NoError(t, err)

	resp, err := svc.VerifyUTR(ctx, "admin@example.com", &request.VerifyUTRRequest{
		UTR: "UTR555666777",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, resp.Status)

	_, err = svc.VerifyUTR(ctx, "admin@example.com", &request.VerifyUTRRequest{
		UTR: "UTR000000000",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
