package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
)

const (
	couponColumns = `id, name, description, social_event, tokens_required, expiration_date, status, store_id, created_at, updated_at`

	couponWithStoreColumns = `c.id, c.name, c.description, c.social_event, c.tokens_required, c.expiration_date,
                              c.status, c.store_id, c.created_at, c.updated_at, u.name, u.email`
)

type couponRepository struct {
	storage *Storage
}

func scanCoupon(row rowScanner, extra ...any) (*model.Coupon, error) {
	var (
		c      model.Coupon
		id     string
		status string
	)
	dest := append([]any{&id, &c.Name, &c.Description, &c.SocialEvent, &c.TokensRequired,
		&c.ExpirationDate, &status, &c.StoreID, &c.CreatedAt, &c.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("coupon id %q: %w", id, err)
	}
	c.ID = parsed
	c.Status = model.CouponStatus(status)
	return &c, nil
}

func scanCouponWithStore(row rowScanner) (*model.Coupon, error) {
	var store model.StoreInfo
	c, err := scanCoupon(row, &store.Name, &store.Email)
	if err != nil {
		return nil, err
	}
	c.Store = &store
	return c, nil
}

func (r *couponRepository) list(ctx context.Context, query string, args ...any) ([]model.Coupon, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Coupon, 0)
	for rows.Next() {
		c, err := scanCouponWithStore(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts coupon while holding a share lock on the issuing store row,
// so the role check and the insert observe the same account state.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	const lockStore = `SELECT name, email, is_store FROM users WHERE id=$1 FOR SHARE`
	const insert = `INSERT INTO coupons (id, name, description, social_event, tokens_required, expiration_date, status, store_id)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                    RETURNING ` + couponColumns

	var created *model.Coupon
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var (
			store   model.StoreInfo
			isStore bool
		)
		if err := tx.QueryRow(ctx, lockStore, coupon.StoreID).Scan(&store.Name, &store.Email, &isStore); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if !isStore {
			return domainErrors.ErrForbidden
		}

		c, err := scanCoupon(tx.QueryRow(ctx, insert, coupon.ID, coupon.Name, coupon.Description, coupon.SocialEvent,
			coupon.TokensRequired, coupon.ExpirationDate, string(coupon.Status), coupon.StoreID))
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		c.Store = &store
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *couponRepository) ListByStore(ctx context.Context, storeID int64) ([]model.Coupon, error) {
	const query = `SELECT ` + couponWithStoreColumns + `
                   FROM coupons c JOIN users u ON u.id = c.store_id
                   WHERE c.store_id=$1
                   ORDER BY c.created_at DESC`
	return r.list(ctx, query, storeID)
}

func (r *couponRepository) ListRedeemable(ctx context.Context, status model.CouponStatus, now time.Time) ([]model.Coupon, error) {
	const query = `SELECT ` + couponWithStoreColumns + `
                   FROM coupons c JOIN users u ON u.id = c.store_id
                   WHERE c.status=$1 AND c.expiration_date > $2
                   ORDER BY c.expiration_date`
	return r.list(ctx, query, string(status), now)
}

func (r *couponRepository) UpdateOwned(ctx context.Context, id uuid.UUID, storeID int64, patch model.CouponPatch) (*model.Coupon, error) {
	const query = `UPDATE coupons SET
                       name = COALESCE($3, name),
                       description = COALESCE($4, description),
                       social_event = COALESCE($5, social_event),
                       tokens_required = COALESCE($6, tokens_required),
                       expiration_date = COALESCE($7, expiration_date),
                       status = COALESCE($8, status),
                       updated_at = NOW()
                   WHERE id=$1 AND store_id=$2
                   RETURNING ` + couponColumns

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	return scanCoupon(r.storage.pool.QueryRow(ctx, query, id, storeID, patch.Name, patch.Description,
		patch.SocialEvent, patch.TokensRequired, patch.ExpirationDate, status))
}

func (r *couponRepository) DeleteOwned(ctx context.Context, id uuid.UUID, storeID int64) error {
	const query = `DELETE FROM coupons WHERE id=$1 AND store_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, storeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// ExpireOverdue flips at most limit overdue available coupons to expired.
func (r *couponRepository) ExpireOverdue(ctx context.Context, now time.Time, limit int) (int64, error) {
	const query = `UPDATE coupons SET status='expired', updated_at=NOW()
                   WHERE id IN (
                       SELECT id FROM coupons
                       WHERE status='available' AND expiration_date <= $1
                       ORDER BY expiration_date
                       LIMIT $2
                       FOR UPDATE SKIP LOCKED
                   )`
	tag, err := r.storage.pool.Exec(ctx, query, now, limit)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
