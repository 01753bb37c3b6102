package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
	"github.com/polkiloo/couponhub/internal/domain/repository"
)

// CouponUseCase manages coupons issued by store accounts.
type CouponUseCase struct {
	users      repository.UserRepository
	coupons    repository.CouponRepository
	redeemable model.CouponStatus
	now        func() time.Time
}

// NewCouponUseCase constructs CouponUseCase listing coupons in the redeemable status to users.
func NewCouponUseCase(users repository.UserRepository, coupons repository.CouponRepository, redeemable model.CouponStatus) *CouponUseCase {
	if !redeemable.Valid() {
		redeemable = model.CouponStatusAvailable
	}
	return &CouponUseCase{users: users, coupons: coupons, redeemable: redeemable, now: time.Now}
}

// Create issues a new coupon on behalf of a store account.
func (u *CouponUseCase) Create(ctx context.Context, callerID int64, draft model.CouponDraft) (*model.Coupon, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	if err := u.requireStore(ctx, callerID); err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(draft.Name),
		Description:    strings.TrimSpace(draft.Description),
		SocialEvent:    draft.SocialEvent,
		TokensRequired: draft.TokensRequired,
		ExpirationDate: *draft.ExpirationDate,
		Status:         model.CouponStatusAvailable,
		StoreID:        callerID,
	}

	created, err := u.coupons.Create(ctx, coupon)
	if err != nil {
		if errors.Is(err, domainErrors.ErrForbidden) {
			return nil, domainErrors.ErrForbidden
		}
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return created, nil
}

// ListByStore returns coupons issued by the calling store, newest first.
func (u *CouponUseCase) ListByStore(ctx context.Context, callerID int64) ([]model.Coupon, error) {
	if err := u.requireStore(ctx, callerID); err != nil {
		return nil, err
	}
	coupons, err := u.coupons.ListByStore(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list store coupons: %w", err)
	}
	return coupons, nil
}

// Update patches a coupon owned by the caller. Foreign and missing coupons
// are both reported as not found.
func (u *CouponUseCase) Update(ctx context.Context, callerID int64, rawID string, patch model.CouponPatch) (*model.Coupon, error) {
	id, err := parseCouponID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := u.coupons.UpdateOwned(ctx, id, callerID, patch)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("update coupon: %w", err)
	}
	return updated, nil
}

// Delete removes a coupon owned by the caller.
func (u *CouponUseCase) Delete(ctx context.Context, callerID int64, rawID string) error {
	id, err := parseCouponID(rawID)
	if err != nil {
		return err
	}
	if err := u.coupons.DeleteOwned(ctx, id, callerID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrNotFound
		}
		return fmt.Errorf("delete coupon: %w", err)
	}
	return nil
}

// ListRedeemable returns unexpired coupons in the redeemable status.
func (u *CouponUseCase) ListRedeemable(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := u.coupons.ListRedeemable(ctx, u.redeemable, u.now())
	if err != nil {
		return nil, fmt.Errorf("list redeemable coupons: %w", err)
	}
	return coupons, nil
}

// ExpireOverdue marks at most limit overdue available coupons as expired.
func (u *CouponUseCase) ExpireOverdue(ctx context.Context, limit int) (int64, error) {
	n, err := u.coupons.ExpireOverdue(ctx, u.now(), limit)
	if err != nil {
		return 0, fmt.Errorf("expire coupons: %w", err)
	}
	return n, nil
}

func (u *CouponUseCase) requireStore(ctx context.Context, callerID int64) error {
	caller, err := u.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrForbidden
		}
		return fmt.Errorf("load caller: %w", err)
	}
	if !caller.IsStore {
		return domainErrors.ErrForbidden
	}
	return nil
}

func parseCouponID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainErrors.ErrNotFound
	}
	return id, nil
}
