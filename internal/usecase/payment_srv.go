package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"
	"spice-store/internal/dto/request"
	"spice-store/internal/dto/response"
	"spice-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService owns the order payment lifecycle:
//
//	pending -> paid -> completed, with cancelled as a side exit.
//
// Three independent callers move an order out of pending (customer
// self-report, admin review, gateway webhook); all of them funnel into
// one guarded transition so the rules live in a single place.
type PaymentService interface {
	CreatePendingOrder(ctx context.Context, userID uuid.UUID, req *request.CreatePendingOrderRequest) (*response.OrderResponse, error)
	ConfirmPayment(ctx context.Context, userID uuid.UUID, req *request.ConfirmPaymentRequest) (*response.OrderResponse, error)
	AdminVerify(ctx context.Context, adminEmail string, req *request.AdminVerifyRequest) (*response.OrderResponse, error)
	HandleUPIWebhook(ctx context.Context, req *request.UPIWebhookRequest) (*response.OrderResponse, error)
	VerifyUTR(ctx context.Context, adminEmail string, req *request.VerifyUTRRequest) (*response.OrderResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreatePendingOrder(ctx context.Context, userID uuid.UUID, req *request.CreatePendingOrderRequest) (*response.OrderResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create pending order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Price every line from the catalog; the client never supplies prices
	var subtotal float64
	type line struct {
		productID uuid.UUID
		qty       int
	}
	lines := make([]line, 0, len(req.Items))

	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product ID format %s: %w", item.ProductID, err)
		}

		product, err := s.repo.Product.FindByID(ctx, productID)
		if err != nil {
			s.log.Error("Failed to load product", zap.Error(err), zap.String("product_id", item.ProductID))
			return nil, fmt.Errorf("load product: %w", err)
		}
		if product == nil || !product.IsActive {
			return nil, fmt.Errorf("product %s not found", item.ProductID)
		}

		subtotal += product.Price * float64(item.Quantity)
		lines = append(lines, line{productID: productID, qty: item.Quantity})
	}

	// Reserve stock with guarded decrements. On failure, put back what
	// was already taken and fail the order.
	taken := make([]line, 0, len(lines))
	for _, l := range lines {
		if err := s.repo.Product.DecrementStock(ctx, l.productID, l.qty); err != nil {
			for _, t := range taken {
				if rbErr := s.repo.Product.IncrementStock(ctx, t.productID, t.qty); rbErr != nil {
					s.log.Error("Failed to restore stock after aborted order",
						zap.Error(rbErr), zap.String("product_id", t.productID.String()))
				}
			}
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, fmt.Errorf("insufficient stock for product %s", l.productID.String())
			}
			return nil, fmt.Errorf("reserve stock: %w", err)
		}
		taken = append(taken, l)
	}

	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber:     utils.GenerateOrderNumber(),
		UserID:          &userID,
		CustomerEmail:   utils.NormalizeEmail(req.CustomerEmail),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        subtotal,
		Status:          entity.OrderStatusPending,
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("Pending order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("subtotal", subtotal),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// ConfirmPayment is the customer's own "I paid" report carrying the
// bank's UTR. It only moves pending orders.
func (s *paymentService) ConfirmPayment(ctx context.Context, userID uuid.UUID, req *request.ConfirmPaymentRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", req.OrderID, err)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Customers can only confirm their own orders
	if order.UserID == nil || *order.UserID != userID {
		s.log.Warn("Confirm payment on foreign order",
			zap.String("order_id", req.OrderID),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("order %s not found", req.OrderID)
	}

	utr := req.UTR
	return s.transition(ctx, order, entity.OrderStatusPaid, repository.TransitionRefs{UTR: &utr})
}

// AdminVerify is the manual review path. Approval completes the order,
// rejection cancels it.
func (s *paymentService) AdminVerify(ctx context.Context, adminEmail string, req *request.AdminVerifyRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin verify validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID format %s: %w", req.OrderID, err)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	verifiedBy := adminEmail
	if req.Note != "" {
		verifiedBy = fmt.Sprintf("%s: %s", adminEmail, req.Note)
	}
	refs := repository.TransitionRefs{VerifiedBy: &verifiedBy}

	target := entity.OrderStatusCompleted
	if !req.Approved {
		target = entity.OrderStatusCancelled
	}

	return s.transition(ctx, order, target, refs)
}

// HandleUPIWebhook processes gateway callbacks. Only payment.success
// events move an order; everything else is acknowledged and dropped.
func (s *paymentService) HandleUPIWebhook(ctx context.Context, req *request.UPIWebhookRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Webhook validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.repo.Order.FindByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		s.log.Error("Failed to load order for webhook",
			zap.Error(err), zap.String("order_number", req.OrderNumber))
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", req.OrderNumber)
	}

	if req.Event != "payment.success" {
		s.log.Info("Ignoring webhook event",
			zap.String("event", req.Event),
			zap.String("order_number", req.OrderNumber))
		resp := response.OrderToResponse(order)
		return &resp, nil
	}

	txnID := req.TransactionID
	return s.transition(ctx, order, entity.OrderStatusPaid, repository.TransitionRefs{TransactionID: &txnID})
}

// VerifyUTR looks an order up by the customer-reported bank reference
// and completes it. Admin use.
func (s *paymentService) VerifyUTR(ctx context.Context, adminEmail string, req *request.VerifyUTRRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify UTR validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.repo.Order.FindByUTR(ctx, req.UTR)
	if err != nil {
		s.log.Error("Failed to find order by UTR", zap.Error(err), zap.String("utr", req.UTR))
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("no order found for UTR %s", req.UTR)
	}

	verifiedBy := adminEmail
	return s.transition(ctx, order, entity.OrderStatusCompleted, repository.TransitionRefs{VerifiedBy: &verifiedBy})
}

// ==================== HELPER METHODS ====================

func (s *paymentService) loadOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to load order", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID.String())
	}
	return order, nil
}

// transition applies one guarded status change. The allowed source
// states come from the target status itself and the conditional update
// in the repository decides races between concurrent writers.
func (s *paymentService) transition(ctx context.Context, order *entity.Order, to entity.OrderStatus, refs repository.TransitionRefs) (*response.OrderResponse, error) {
	sources := to.AllowedSources()
	if len(sources) == 0 {
		return nil, fmt.Errorf("no transition into state %s", string(to))
	}

	err := s.repo.Order.TransitionStatus(ctx, order.ID, to, sources, refs)
	if errors.Is(err, repository.ErrStateConflict) {
		s.log.Warn("Disallowed order transition",
			zap.String("order_id", order.ID.String()),
			zap.String("from", string(order.Status)),
			zap.String("to", string(to)))
		return nil, fmt.Errorf("order %s cannot move from %s to %s",
			order.OrderNumber, string(order.Status), string(to))
	}
	if err != nil {
		return nil, err
	}

	// Re-read so the response reflects what actually won
	updated, err := s.repo.Order.FindByID(ctx, order.ID)
	if err != nil {
		s.log.Error("Failed to reload order after transition",
			zap.Error(err), zap.String("order_id", order.ID.String()))
		return nil, fmt.Errorf("reload order: %w", err)
	}
	if updated == nil {
		s.log.Error("Order row missing after transition", zap.String("order_id", order.ID.String()))
		return nil, fmt.Errorf("order %s disappeared after transition", order.OrderNumber)
	}

	s.log.Info("Order transitioned",
		zap.String("order_id", updated.ID.String()),
		zap.String("order_number", updated.OrderNumber),
		zap.String("status", string(updated.Status)),
	)

	resp := response.OrderToResponse(updated)
	return &resp, nil
}
