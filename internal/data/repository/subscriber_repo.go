package repository

import (
	"context"
	"fmt"
	"time"

	"spice-store/internal/data/entity"
	"spice-store/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SubscriberStats struct {
	Total         int64 `json:"total"`
	Active        int64 `json:"active"`
	Unsubscribed  int64 `json:"unsubscribed"`
	RecentSignups int64 `json:"recent_signups"`
}

type SubscriberRepository interface {
	Create(ctx context.Context, sub *entity.Subscriber) error
	FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Subscriber, error)
	ActiveEmails(ctx context.Context) ([]string, error)
	SetActive(ctx context.Context, email string, active bool, unsubscribedAt *time.Time) error
	Stats(ctx context.Context, recentSince time.Time) (*SubscriberStats, error)
}

type subscriberRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubscriberRepository(db database.PgxIface, log *zap.Logger) SubscriberRepository {
	return &subscriberRepository{
		db:  db,
		log: log.With(zap.String("repository", "subscriber")),
	}
}

func (r *subscriberRepository) Create(ctx context.Context, sub *entity.Subscriber) error {
	query := `
		INSERT INTO subscribers (id, email, is_active, subscribed_at,
		                         unsubscribed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		sub.ID,
		sub.Email,
		sub.IsActive,
		sub.SubscribedAt,
		sub.UnsubscribedAt,
		sub.CreatedAt,
		sub.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create subscriber",
			zap.Error(err),
			zap.String("email", sub.Email),
		)
		return fmt.Errorf("create subscriber %s: %w", sub.Email, err)
	}

	return nil
}

func (r *subscriberRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	query := `
		SELECT id, email, is_active, subscribed_at, unsubscribed_at,
		       created_at, updated_at
		FROM subscribers
		WHERE email = $1
	`

	var sub entity.Subscriber
	err := r.db.QueryRow(ctx, query, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.IsActive,
		&sub.SubscribedAt,
		&sub.UnsubscribedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subscriber by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find subscriber by email %s: %w", email, err)
	}

	return &sub, nil
}

func (r *subscriberRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Subscriber, error) {
	query := `
		SELECT id, email, is_active, subscribed_at, unsubscribed_at,
		       created_at, updated_at
		FROM subscribers
		WHERE ($1 = false OR is_active = true)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		r.log.Error("Failed to get subscribers", zap.Error(err))
		return nil, fmt.Errorf("find all subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*entity.Subscriber
	for rows.Next() {
		var sub entity.Subscriber
		err := rows.Scan(
			&sub.ID,
			&sub.Email,
			&sub.IsActive,
			&sub.SubscribedAt,
			&sub.UnsubscribedAt,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan subscriber row", zap.Error(err))
			return nil, fmt.Errorf("scan subscriber row: %w", err)
		}
		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate subscribers rows: %w", err)
	}

	return subs, nil
}

func (r *subscriberRepository) ActiveEmails(ctx context.Context) ([]string, error) {
	query := `SELECT email FROM subscribers WHERE is_active = true ORDER BY subscribed_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get active subscriber emails", zap.Error(err))
		return nil, fmt.Errorf("find active subscriber emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan subscriber email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriber emails: %w", err)
	}

	return emails, nil
}

func (r *subscriberRepository) SetActive(ctx context.Context, email string, active bool, unsubscribedAt *time.Time) error {
	query := `
		UPDATE subscribers
		SET is_active = $2, unsubscribed_at = $3, updated_at = NOW()
		WHERE email = $1
	`

	result, err := r.db.Exec(ctx, query, email, active, unsubscribedAt)
	if err != nil {
		r.log.Error("Failed to update subscriber",
			zap.Error(err),
			zap.String("email", email),
			zap.Bool("active", active),
		)
		return fmt.Errorf("update subscriber %s: %w", email, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscriber %s not found", email)
	}

	return nil
}

func (r *subscriberRepository) Stats(ctx context.Context, recentSince time.Time) (*SubscriberStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE NOT is_active),
		       COUNT(*) FILTER (WHERE is_active AND created_at >= $1)
		FROM subscribers
	`

	var stats SubscriberStats
	err := r.db.QueryRow(ctx, query, recentSince).Scan(
		&stats.Total,
		&stats.Active,
		&stats.Unsubscribed,
		&stats.RecentSignups,
	)
	if err != nil {
		r.log.Error("Failed to get subscriber stats", zap.Error(err))
		return nil, fmt.Errorf("subscriber stats: %w", err)
	}

	return &stats, nil
}
