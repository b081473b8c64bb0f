package usecase

import (
	"context"
	"testing"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpdateOrderStatusGuards(t *testing.T) {
	repo := newFakeRepository()
	svc := NewOrderService(repo, zap.NewNop())
	ctx := context.Background()

	t.Run("pending to paid", func(t *testing.T) {
		order := seedOrder(t, repo, uuid.New(), entity.OrderStatusPending)

		resp, err := svc.UpdateOrderStatus(ctx, order.ID, &request.UpdateOrderStatusRequest{Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPaid, resp.Status)
	})

	t.Run("completed cannot return to pending", func(t *testing.T) {
		order := seedOrder(t, repo, uuid.New(), entity.OrderStatusCompleted)

		_, err := svc.UpdateOrderStatus(ctx, order.ID, &request.UpdateOrderStatusRequest{Status: "pending"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot move")
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		order := seedOrder(t, repo, uuid.New(), entity.OrderStatusCancelled)

		_, err := svc.UpdateOrderStatus(ctx, order.ID, &request.UpdateOrderStatusRequest{Status: "paid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot move")
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		order := seedOrder(t, repo, uuid.New(), entity.OrderStatusPaid)

		resp, err := svc.UpdateOrderStatus(ctx, order.ID, &request.UpdateOrderStatusRequest{Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPaid, resp.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.UpdateOrderStatus(ctx, uuid.New(), &request.UpdateOrderStatusRequest{Status: "paid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestGetOrdersStatusFilter(t *testing.T) {
	repo := newFakeRepository()
	svc := NewOrderService(repo, zap.NewNop())
	ctx := context.Background()

	seedOrder(t, repo, uuid.New(), entity.OrderStatusPending)
	seedOrder(t, repo, uuid.New(), entity.OrderStatusPaid)
	seedOrder(t, repo, uuid.New(), entity.OrderStatusPaid)

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	paid, err := svc.GetOrders(ctx, "paid", page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), paid.Pagination.Total)

	all, err := svc.GetOrders(ctx, "", page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Pagination.Total)

	_, err = svc.GetOrders(ctx, "shipped", page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}

func TestGetMyOrders(t *testing.T) {
	repo := newFakeRepository()
	svc := NewOrderService(repo, zap.NewNop())
	ctx := context.Background()

	mine := uuid.New()
	seedOrder(t, repo, mine, entity.OrderStatusPending)
	seedOrder(t, repo, mine, entity.OrderStatusCompleted)
	seedOrder(t, repo, uuid.New(), entity.OrderStatusPending)

	resp, err := svc.GetMyOrders(ctx, mine, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Len(t, resp.Data, 2)
}

// vanishingOrderRepo drops the row as soon as a transition lands, so
// the post-transition reload sees nothing.
type vanishingOrderRepo struct {
	*fakeOrderRepo
}

func (f *vanishingOrderRepo) TransitionStatus(ctx context.Context, id uuid.UUID, to entity.OrderStatus, from []entity.OrderStatus, refs repository.TransitionRefs) error {
	if err := f.fakeOrderRepo.TransitionStatus(ctx, id, to, from, refs); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, id)
	return nil
}

func TestUpdateOrderStatusRowVanishesAfterTransition(t *testing.T) {
	repo := newFakeRepository()
	repo.Order = &vanishingOrderRepo{repo.Order.(*fakeOrderRepo)}
	svc := NewOrderService(repo, zap.NewNop())

	order := seedOrder(t, repo, uuid.New(), entity.OrderStatusPending)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, &request.UpdateOrderStatusRequest{Status: "paid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disappeared after transition")
}
