package repository

import (
	"context"
	"fmt"

	"spice-store/internal/data/entity"
	"spice-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrStateConflict is returned when a guarded status transition finds
// the order in a state the transition does not allow.
var ErrStateConflict = fmt.Errorf("order not in an allowed state for this transition")

// TransitionRefs carries the optional payment references a transition
// may record alongside the status change.
type TransitionRefs struct {
	TransactionID *string
	UTR           *string
	VerifiedBy    *string
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	FindByUTR(ctx context.Context, utr string) (*entity.Order, error)
	FindAll(ctx context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error)
	CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// TransitionStatus is a conditional update: the status only changes
	// when the current status is one of the allowed source states, so
	// concurrent writers cannot double-apply a transition.
	TransitionStatus(ctx context.Context, id uuid.UUID, to entity.OrderStatus, from []entity.OrderStatus, refs TransitionRefs) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, order_number, user_id, customer_email, customer_name,
	customer_phone, shipping_address, subtotal, status,
	transaction_id, utr, verified_by, created_at, updated_at`

func (r *orderRepository) scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.CustomerEmail,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&order.Subtotal,
		&order.Status,
		&order.TransactionID,
		&order.UTR,
		&order.VerifiedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, user_id, customer_email, customer_name,
		                    customer_phone, shipping_address, subtotal, status,
		                    transaction_id, utr, verified_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.UserID,
		order.CustomerEmail,
		order.CustomerName,
		order.CustomerPhone,
		order.ShippingAddress,
		order.Subtotal,
		order.Status,
		order.TransactionID,
		order.UTR,
		order.VerifiedBy,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
			zap.String("customer_email", order.CustomerEmail),
		)
		return fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func (r *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE order_number = $1`, orderColumns)

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, orderNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by number",
			zap.Error(err),
			zap.String("order_number", orderNumber),
		)
		return nil, fmt.Errorf("find order by number %s: %w", orderNumber, err)
	}

	return order, nil
}

func (r *orderRepository) FindByUTR(ctx context.Context, utr string) (*entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE utr = $1
		ORDER BY created_at DESC
		LIMIT 1`, orderColumns)

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, utr))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by UTR",
			zap.Error(err),
			zap.String("utr", utr),
		)
		return nil, fmt.Errorf("find order by UTR %s: %w", utr, err)
	}

	return order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, orderColumns)

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to get orders",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all orders limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate orders rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE ($1::text IS NULL OR status = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count all orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, orderColumns)

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to get user orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find orders for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate orders rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count user orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count orders for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *orderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to entity.OrderStatus, from []entity.OrderStatus, refs TransitionRefs) error {
	// Compare-and-swap on status. COALESCE keeps existing references
	// when the caller does not supply new ones.
	query := `
		UPDATE orders
		SET status = $2,
		    transaction_id = COALESCE($3, transaction_id),
		    utr = COALESCE($4, utr),
		    verified_by = COALESCE($5, verified_by),
		    updated_at = NOW()
		WHERE id = $1 AND status = ANY($6)
	`

	sources := make([]string, len(from))
	for i, s := range from {
		sources[i] = string(s)
	}

	result, err := r.db.Exec(ctx, query, id, to,
		refs.TransactionID, refs.UTR, refs.VerifiedBy, sources)
	if err != nil {
		r.log.Error("Failed to transition order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("transition order %s to %s: %w", id.String(), string(to), err)
	}

	if result.RowsAffected() == 0 {
		return ErrStateConflict
	}

	return nil
}
