package usecase

import (
	"context"
	"errors"
	"fmt"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"
	"spice-store/internal/dto/response"
	"spice-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	GetOrders(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error)
	GetMyOrders(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

// GetOrders lists all orders for the admin dashboard, newest first,
// optionally filtered by status.
func (s *orderService) GetOrders(ctx context.Context, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	var filter *entity.OrderStatus
	if status != "" {
		if !entity.ValidOrderStatus(status) {
			return nil, fmt.Errorf("invalid order status %s", status)
		}
		st := entity.OrderStatus(status)
		filter = &st
	}

	limit, offset := req.Limit(), req.Offset()

	orders, err := s.repo.Order.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count orders", zap.Error(err))
		return nil, fmt.Errorf("count orders: %w", err)
	}

	items := make([]response.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, response.OrderToResponse(o))
	}

	return response.NewPaginatedResponse(items, req.Page, limit, total), nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to load order", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID.String())
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetMyOrders(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	limit, offset := req.Limit(), req.Offset()

	orders, err := s.repo.Order.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to list user orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Order.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("count orders: %w", err)
	}

	items := make([]response.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, response.OrderToResponse(o))
	}

	return response.NewPaginatedResponse(items, req.Page, limit, total), nil
}

// UpdateOrderStatus is the admin's direct status override. It goes
// through the same guarded transition as the payment paths, so a
// completed or cancelled order stays where it is.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update order status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load the current order
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to load order", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID.String())
	}

	target := entity.OrderStatus(req.Status)
	if order.Status == target {
		resp := response.OrderToResponse(order)
		return &resp, nil
	}

	sources := target.AllowedSources()
	if len(sources) == 0 {
		return nil, fmt.Errorf("order %s cannot move from %s to %s",
			order.OrderNumber, string(order.Status), string(target))
	}

	// 3. Apply the guarded transition
	err = s.repo.Order.TransitionStatus(ctx, order.ID, target, sources, repository.TransitionRefs{})
	if errors.Is(err, repository.ErrStateConflict) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s",
			order.OrderNumber, string(order.Status), string(target))
	}
	if err != nil {
		s.log.Error("Failed to update order status", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("update order status: %w", err)
	}

	updated, err := s.repo.Order.FindByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("order %s disappeared after transition", order.OrderNumber)
	}

	s.log.Info("Order status updated",
		zap.String("order_id", updated.ID.String()),
		zap.String("status", string(updated.Status)),
	)

	resp := response.OrderToResponse(updated)
	return &resp, nil
}
