package handlers

import (
	"context"

	"github.com/polkiloo/couponhub/internal/domain/model"
	"github.com/polkiloo/couponhub/internal/server/http/middleware"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in model.Registration) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.Session, error)
	ExternalLogin(ctx context.Context, idToken string) (*model.Session, error)
	CompleteProfile(ctx context.Context, in model.ProfileCompletion) (*model.User, error)
}

// CouponFacade encapsulates coupon operations exposed via HTTP.
type CouponFacade interface {
	CreateCoupon(ctx context.Context, callerID int64, draft model.CouponDraft) (*model.Coupon, error)
	StoreCoupons(ctx context.Context, callerID int64) ([]model.Coupon, error)
	UpdateCoupon(ctx context.Context, callerID int64, id string, patch model.CouponPatch) (*model.Coupon, error)
	DeleteCoupon(ctx context.Context, callerID int64, id string) error
	RedeemableCoupons(ctx context.Context) ([]model.Coupon, error)
}

// HealthChecker reports readiness of backing services.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// LoyaltyFacade aggregates the full set of operations used across handlers.
type LoyaltyFacade interface {
	AuthFacade
	CouponFacade
	middleware.Authenticator
}
