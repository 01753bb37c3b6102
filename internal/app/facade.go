package app

import (
	"context"

	"github.com/polkiloo/couponhub/internal/domain/model"
	"github.com/polkiloo/couponhub/internal/usecase"
)

// LoyaltyFacade adapts use cases to the HTTP layer and background workers.
type LoyaltyFacade struct {
	auth    *usecase.AuthUseCase
	coupons *usecase.CouponUseCase
}

func NewLoyaltyFacade(auth *usecase.AuthUseCase, coupons *usecase.CouponUseCase) *LoyaltyFacade {
	return &LoyaltyFacade{auth: auth, coupons: coupons}
}

func (f *LoyaltyFacade) Register(ctx context.Context, in model.Registration) (*model.User, error) {
	return f.auth.Register(ctx, in)
}

func (f *LoyaltyFacade) Login(ctx context.Context, email, password string) (*model.Session, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *LoyaltyFacade) ExternalLogin(ctx context.Context, idToken string) (*model.Session, error) {
	return f.auth.ExternalLogin(ctx, idToken)
}

func (f *LoyaltyFacade) CompleteProfile(ctx context.Context, in model.ProfileCompletion) (*model.User, error) {
	return f.auth.CompleteProfile(ctx, in)
}

func (f *LoyaltyFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *LoyaltyFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.UserByID(ctx, id)
}

func (f *LoyaltyFacade) CreateCoupon(ctx context.Context, callerID int64, draft model.CouponDraft) (*model.Coupon, error) {
	return f.coupons.Create(ctx, callerID, draft)
}

func (f *LoyaltyFacade) StoreCoupons(ctx context.Context, callerID int64) ([]model.Coupon, error) {
	return f.coupons.ListByStore(ctx, callerID)
}

func (f *LoyaltyFacade) UpdateCoupon(ctx context.Context, callerID int64, id string, patch model.CouponPatch) (*model.Coupon, error) {
	return f.coupons.Update(ctx, callerID, id, patch)
}

func (f *LoyaltyFacade) DeleteCoupon(ctx context.Context, callerID int64, id string) error {
	return f.coupons.Delete(ctx, callerID, id)
}

func (f *LoyaltyFacade) RedeemableCoupons(ctx context.Context) ([]model.Coupon, error) {
	return f.coupons.ListRedeemable(ctx)
}

func (f *LoyaltyFacade) ExpireOverdueCoupons(ctx context.Context, limit int) (int64, error) {
	return f.coupons.ExpireOverdue(ctx, limit)
}
