package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/couponhub/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn        func(context.Context, model.Registration) (*model.User, error)
	LoginFn           func(context.Context, string, string) (*model.Session, error)
	ExternalLoginFn   func(context.Context, string) (*model.Session, error)
	CompleteProfileFn func(context.Context, model.ProfileCompletion) (*model.User, error)
}

// Register returns the registered profile.
func (s AuthFacadeStub) Register(ctx context.Context, in model.Registration) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Name: in.Name, Address: in.Address, Email: in.Email, IsStore: in.IsStore}, nil
}

// Login returns a session for successful authentication scenarios.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.Session{Token: "token", User: &model.User{ID: 1, Email: email}}, nil
}

// ExternalLogin returns a session for a verified identity token.
func (s AuthFacadeStub) ExternalLogin(ctx context.Context, idToken string) (*model.Session, error) {
	if s.ExternalLoginFn != nil {
		return s.ExternalLoginFn(ctx, idToken)
	}
	return &model.Session{Token: "token", User: &model.User{ID: 2, Email: "google@example.com"}}, nil
}

// CompleteProfile returns completed profile.
func (s AuthFacadeStub) CompleteProfile(ctx context.Context, in model.ProfileCompletion) (*model.User, error) {
	if s.CompleteProfileFn != nil {
		return s.CompleteProfileFn(ctx, in)
	}
	return &model.User{ID: in.UserID, PasswordHash: "hash"}, nil
}

// CouponFacadeStub provides controllable behaviour for coupon endpoints.
type CouponFacadeStub struct {
	CreateFn     func(context.Context, int64, model.CouponDraft) (*model.Coupon, error)
	StoreFn      func(context.Context, int64) ([]model.Coupon, error)
	UpdateFn     func(context.Context, int64, string, model.CouponPatch) (*model.Coupon, error)
	DeleteFn     func(context.Context, int64, string) error
	RedeemableFn func(context.Context) ([]model.Coupon, error)
}

// SampleCoupon builds a coupon used as default stub output.
func SampleCoupon(storeID int64) model.Coupon {
	return model.Coupon{
		ID:             uuid.MustParse("7f1d3c9e-6a51-4c39-9a55-2c6f4b8f0d11"),
		Name:           "Free coffee",
		Description:    "One cup",
		TokensRequired: 5,
		ExpirationDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:         model.CouponStatusAvailable,
		StoreID:        storeID,
		Store:          &model.StoreInfo{Name: "Cafe", Email: "cafe@example.com"},
	}
}

// CreateCoupon delegates to provided function or echoes the draft.
func (s CouponFacadeStub) CreateCoupon(ctx context.Context, callerID int64, draft model.CouponDraft) (*model.Coupon, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, callerID, draft)
	}
	c := SampleCoupon(callerID)
	c.Name = draft.Name
	return &c, nil
}

// StoreCoupons returns coupons of the calling store.
func (s CouponFacadeStub) StoreCoupons(ctx context.Context, callerID int64) ([]model.Coupon, error) {
	if s.StoreFn != nil {
		return s.StoreFn(ctx, callerID)
	}
	return []model.Coupon{SampleCoupon(callerID)}, nil
}

// UpdateCoupon delegates to provided function or returns sample coupon.
func (s CouponFacadeStub) UpdateCoupon(ctx context.Context, callerID int64, id string, patch model.CouponPatch) (*model.Coupon, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, callerID, id, patch)
	}
	c := SampleCoupon(callerID)
	return &c, nil
}

// DeleteCoupon delegates to provided function.
func (s CouponFacadeStub) DeleteCoupon(ctx context.Context, callerID int64, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, callerID, id)
	}
	return nil
}

// RedeemableCoupons returns coupons visible to users.
func (s CouponFacadeStub) RedeemableCoupons(ctx context.Context) ([]model.Coupon, error) {
	if s.RedeemableFn != nil {
		return s.RedeemableFn(ctx)
	}
	return []model.Coupon{SampleCoupon(1)}, nil
}

// LoyaltyFacadeStub aggregates facade dependencies for HTTP layer tests.
type LoyaltyFacadeStub struct {
	AuthFacadeStub
	CouponFacadeStub
	AuthenticatorStub
}

// HealthCheckerStub reports configured database health.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// CouponExpirerStub returns queued batch sizes and records calls.
type CouponExpirerStub struct {
	Batches  []int64
	ExpireFn func(context.Context, int) (int64, error)

	mu        sync.Mutex
	calls     int
	lastLimit int
}

// ExpireOverdueCoupons pops the next configured batch size.
func (s *CouponExpirerStub) ExpireOverdueCoupons(ctx context.Context, limit int) (int64, error) {
	s.mu.Lock()
	s.calls++
	s.lastLimit = limit
	var n int64
	if len(s.Batches) > 0 {
		n = s.Batches[0]
		s.Batches = s.Batches[1:]
	}
	fn := s.ExpireFn
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, limit)
	}
	return n, nil
}

// Calls reports how many times the expirer was invoked.
func (s *CouponExpirerStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastLimit reports the last requested batch size.
func (s *CouponExpirerStub) LastLimit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastLimit
}
