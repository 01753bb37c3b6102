package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/couponhub/internal/domain/model"
)

// CouponRepository describes persistence operations for coupons.
type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)
	ListByStore(ctx context.Context, storeID int64) ([]model.Coupon, error)
	// UpdateOwned applies patch to the coupon only when it belongs to storeID.
	UpdateOwned(ctx context.Context, id uuid.UUID, storeID int64, patch model.CouponPatch) (*model.Coupon, error)
	DeleteOwned(ctx context.Context, id uuid.UUID, storeID int64) error
	ListRedeemable(ctx context.Context, status model.CouponStatus, now time.Time) ([]model.Coupon, error)
	ExpireOverdue(ctx context.Context, now time.Time, limit int) (int64, error)
}
