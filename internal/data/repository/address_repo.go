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

type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
	Update(ctx context.Context, address *entity.Address) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetDefault clears the user's other defaults and marks one address,
	// keeping at most one default per user.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}

type addressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddressRepository(db database.PgxIface, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

const addressColumns = `id, user_id, label, recipient_name, recipient_phone,
	line1, line2, city, state, postal_code, is_default, created_at, updated_at`

func (r *addressRepository) scanAddress(row pgx.Row) (*entity.Address, error) {
	var addr entity.Address
	err := row.Scan(
		&addr.ID,
		&addr.UserID,
		&addr.Label,
		&addr.RecipientName,
		&addr.RecipientPhone,
		&addr.Line1,
		&addr.Line2,
		&addr.City,
		&addr.State,
		&addr.PostalCode,
		&addr.IsDefault,
		&addr.CreatedAt,
		&addr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, label, recipient_name, recipient_phone,
		                       line1, line2, city, state, postal_code, is_default,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		address.ID,
		address.UserID,
		address.Label,
		address.RecipientName,
		address.RecipientPhone,
		address.Line1,
		address.Line2,
		address.City,
		address.State,
		address.PostalCode,
		address.IsDefault,
		address.CreatedAt,
		address.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create address",
			zap.Error(err),
			zap.String("user_id", address.UserID.String()),
		)
		return fmt.Errorf("create address for user %s: %w", address.UserID.String(), err)
	}

	return nil
}

func (r *addressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	query := fmt.Sprintf(`SELECT %s FROM addresses WHERE id = $1`, addressColumns)

	addr, err := r.scanAddress(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address by ID",
			zap.Error(err),
			zap.String("address_id", id.String()),
		)
		return nil, fmt.Errorf("find address by ID %s: %w", id.String(), err)
	}

	return addr, nil
}

func (r *addressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`, addressColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to get user addresses",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find addresses for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var addrs []*entity.Address
	for rows.Next() {
		addr, err := r.scanAddress(rows)
		if err != nil {
			r.log.Error("Failed to scan address row", zap.Error(err))
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addrs = append(addrs, addr)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate addresses rows: %w", err)
	}

	return addrs, nil
}

func (r *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	query := `
		UPDATE addresses
		SET label = $2, recipient_name = $3, recipient_phone = $4, line1 = $5,
		    line2 = $6, city = $7, state = $8, postal_code = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		address.ID,
		address.Label,
		address.RecipientName,
		address.RecipientPhone,
		address.Line1,
		address.Line2,
		address.City,
		address.State,
		address.PostalCode,
		address.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update address",
			zap.Error(err),
			zap.String("address_id", address.ID.String()),
		)
		return fmt.Errorf("update address %s: %w", address.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("address %s not found", address.ID.String())
	}

	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM addresses WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete address",
			zap.Error(err),
			zap.String("address_id", id.String()),
		)
		return fmt.Errorf("delete address %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("address %s not found", id.String())
	}

	return nil
}

func (r *addressRepository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set default address: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = false, updated_at = NOW() WHERE user_id = $1 AND is_default = true`,
		userID); err != nil {
		return fmt.Errorf("clear default addresses for user %s: %w", userID.String(), err)
	}

	result, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = true, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		addressID, userID)
	if err != nil {
		return fmt.Errorf("set default address %s: %w", addressID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("address %s not found", addressID.String())
	}

	return tx.Commit(ctx)
}

func (r *addressRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE addresses SET is_default = false, updated_at = NOW() WHERE user_id = $1 AND is_default = true`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to clear default addresses",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("clear default addresses for user %s: %w", userID.String(), err)
	}

	return nil
}
