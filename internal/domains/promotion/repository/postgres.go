package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"souvenir-shop-backend/internal/domains/promotion/model"
)

const promotionColumns = `
	id, name, description,
	type, value,
	target_type, target_id, audience, priority,
	starts_at, ends_at, promo_code,
	usage_limit, current_usage, is_active,
	created_at, updated_at`

// PostgresRepository implements PromotionRepository with PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) PromotionRepository {
	return &PostgresRepository{db: db}
}

func scanPromotion(row pgx.Row) (*model.Promotion, error) {
	var p model.Promotion
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Type,
		&p.Value,
		&p.TargetType,
		&p.TargetID,
		&p.Audience,
		&p.Priority,
		&p.StartsAt,
		&p.EndsAt,
		&p.PromoCode,
		&p.UsageLimit,
		&p.CurrentUsage,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`

	p, err := scanPromotion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("find promotion by id: %w", err)
	}

	return p, nil
}

// ListWindowActive filters on the active flag and activity window only;
// a nil bound means unbounded on that side.
func (r *PostgresRepository) ListWindowActive(ctx context.Context, now time.Time) ([]*model.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE is_active = true
		  AND (starts_at IS NULL OR starts_at <= $1)
		  AND (ends_at IS NULL OR ends_at >= $1)
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list active promotions: %w", err)
	}
	defer rows.Close()

	var promos []*model.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promotions: %w", err)
	}

	return promos, nil
}

func (r *PostgresRepository) List(ctx context.Context, page, limit int) ([]*model.Promotion, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM promotions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count promotions: %w", err)
	}

	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		ORDER BY priority DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	var promos []*model.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan promotion: %w", err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate promotions: %w", err)
	}

	return promos, total, nil
}

func (r *PostgresRepository) Create(ctx context.Context, promo *model.Promotion) error {
	query := `
		INSERT INTO promotions (
			id, name, description,
			type, value,
			target_type, target_id, audience, priority,
			starts_at, ends_at, promo_code,
			usage_limit, current_usage, is_active
		) VALUES (
			$1, $2, $3,
			$4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		promo.ID,
		promo.Name,
		promo.Description,
		promo.Type,
		promo.Value,
		promo.TargetType,
		promo.TargetID,
		promo.Audience,
		promo.Priority,
		promo.StartsAt,
		promo.EndsAt,
		promo.PromoCode,
		promo.UsageLimit,
		promo.CurrentUsage,
		promo.IsActive,
	).Scan(&promo.CreatedAt, &promo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create promotion: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, promo *model.Promotion) error {
	query := `
		UPDATE promotions SET
			name = $2,
			description = $3,
			value = $4,
			priority = $5,
			starts_at = $6,
			ends_at = $7,
			usage_limit = $8,
			is_active = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		promo.ID,
		promo.Name,
		promo.Description,
		promo.Value,
		promo.Priority,
		promo.StartsAt,
		promo.EndsAt,
		promo.UsageLimit,
		promo.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromotionNotFound
	}

	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE promotions SET is_active = $2, updated_at = NOW() WHERE id = $1`,
		id, isActive,
	)
	if err != nil {
		return fmt.Errorf("update promotion status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromotionNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromotionNotFound
	}

	return nil
}

// FindActiveByCodeForUpdate looks up a redeemable promotion by exact code
// inside the checkout transaction. The row is locked so the subsequent
// usage increment cannot race with a concurrent checkout.
func (r *PostgresRepository) FindActiveByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE promo_code = $1
		  AND is_active = true
		  AND (starts_at IS NULL OR starts_at <= $2)
		  AND (ends_at IS NULL OR ends_at >= $2)
		  AND (usage_limit IS NULL OR current_usage < usage_limit)
		FOR UPDATE
	`

	p, err := scanPromotion(tx.QueryRow(ctx, query, code, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // unresolvable code: checkout degrades silently
		}
		return nil, fmt.Errorf("find promotion by code: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx,
		`UPDATE promotions
		 SET current_usage = current_usage + 1, updated_at = NOW()
		 WHERE id = $1
		   AND (usage_limit IS NULL OR current_usage < usage_limit)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("increment promotion usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromotionNotFound
	}

	return nil
}
