package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	// CreateErr is returned by Create only, after being consumed once.
	CreateErr error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

func (s *UserRepositoryStub) init() {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if s.Next == 0 {
		s.Next = 1
	}
}

// Put stores user as-is, assigning an id when missing.
func (s *UserRepositoryStub) Put(user *model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	} else if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.Users[user.Email] = user
	s.ByID[user.ID] = user
	return user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(_ context.Context, in model.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.CreateErr != nil {
		err := s.CreateErr
		s.CreateErr = nil
		return nil, err
	}
	s.init()
	if _, exists := s.Users[in.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	now := time.Now()
	user := &model.User{
		ID:           s.Next,
		Name:         in.Name,
		Address:      in.Address,
		BirthDate:    in.BirthDate,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		IsStore:      in.IsStore,
		ExternalID:   in.ExternalID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Next++
	s.Users[user.Email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CompleteProfile updates a pending user in place.
func (s *UserRepositoryStub) CompleteProfile(_ context.Context, id int64, passwordHash string, isStore bool, birthDate *time.Time) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if user.PasswordHash != "" {
		return nil, domainErrors.ErrProfileCompleted
	}
	user.PasswordHash = passwordHash
	user.IsStore = isStore
	user.BirthDate = birthDate
	user.UpdatedAt = time.Now()
	return user, nil
}

// CouponRepositoryStub keeps coupons in-memory and allows overrides.
type CouponRepositoryStub struct {
	CreateFn         func(context.Context, *model.Coupon) (*model.Coupon, error)
	ListByStoreFn    func(context.Context, int64) ([]model.Coupon, error)
	UpdateOwnedFn    func(context.Context, uuid.UUID, int64, model.CouponPatch) (*model.Coupon, error)
	DeleteOwnedFn    func(context.Context, uuid.UUID, int64) error
	ListRedeemableFn func(context.Context, model.CouponStatus, time.Time) ([]model.Coupon, error)
	ExpireOverdueFn  func(context.Context, time.Time, int) (int64, error)

	// Users, when set, is joined to embed the issuing store like the
	// postgres repository does.
	Users *UserRepositoryStub

	mu      sync.Mutex
	Coupons map[uuid.UUID]*model.Coupon
}

// NewCouponRepositoryStub constructs stub repository with initialized storage.
func NewCouponRepositoryStub() *CouponRepositoryStub {
	return &CouponRepositoryStub{Coupons: make(map[uuid.UUID]*model.Coupon)}
}

// NewJoinedCouponRepositoryStub constructs stub repository embedding stores from users.
func NewJoinedCouponRepositoryStub(users *UserRepositoryStub) *CouponRepositoryStub {
	return &CouponRepositoryStub{Coupons: make(map[uuid.UUID]*model.Coupon), Users: users}
}

func (s *CouponRepositoryStub) storeInfo(storeID int64) (*model.StoreInfo, bool, error) {
	if s.Users == nil {
		return nil, true, nil
	}
	user, err := s.Users.GetByID(context.Background(), storeID)
	if err != nil {
		return nil, false, err
	}
	return &model.StoreInfo{Name: user.Name, Email: user.Email}, user.IsStore, nil
}

// Create stores coupon copy.
func (s *CouponRepositoryStub) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, coupon)
	}
	store, isStore, err := s.storeInfo(coupon.StoreID)
	if err != nil {
		return nil, err
	}
	if !isStore {
		return nil, domainErrors.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Coupons == nil {
		s.Coupons = make(map[uuid.UUID]*model.Coupon)
	}
	if _, exists := s.Coupons[coupon.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	now := time.Now()
	stored := *coupon
	stored.Store = store
	stored.CreatedAt, stored.UpdatedAt = now, now
	s.Coupons[stored.ID] = &stored
	out := stored
	return &out, nil
}

// ListByStore returns coupons of storeID, newest first.
func (s *CouponRepositoryStub) ListByStore(ctx context.Context, storeID int64) ([]model.Coupon, error) {
	if s.ListByStoreFn != nil {
		return s.ListByStoreFn(ctx, storeID)
	}
	return s.filter(func(c *model.Coupon) bool { return c.StoreID == storeID }, func(a, b model.Coupon) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

// UpdateOwned applies patch when coupon belongs to storeID.
func (s *CouponRepositoryStub) UpdateOwned(ctx context.Context, id uuid.UUID, storeID int64, patch model.CouponPatch) (*model.Coupon, error) {
	if s.UpdateOwnedFn != nil {
		return s.UpdateOwnedFn(ctx, id, storeID, patch)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Coupons[id]
	if !ok || c.StoreID != storeID {
		return nil, domainErrors.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.SocialEvent != nil {
		c.SocialEvent = patch.SocialEvent
	}
	if patch.TokensRequired != nil {
		c.TokensRequired = *patch.TokensRequired
	}
	if patch.ExpirationDate != nil {
		c.ExpirationDate = *patch.ExpirationDate
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	c.UpdatedAt = time.Now()
	out := *c
	return &out, nil
}

// DeleteOwned removes coupon when it belongs to storeID.
func (s *CouponRepositoryStub) DeleteOwned(ctx context.Context, id uuid.UUID, storeID int64) error {
	if s.DeleteOwnedFn != nil {
		return s.DeleteOwnedFn(ctx, id, storeID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Coupons[id]
	if !ok || c.StoreID != storeID {
		return domainErrors.ErrNotFound
	}
	delete(s.Coupons, id)
	return nil
}

// ListRedeemable returns unexpired coupons in status, soonest expiry first.
func (s *CouponRepositoryStub) ListRedeemable(ctx context.Context, status model.CouponStatus, now time.Time) ([]model.Coupon, error) {
	if s.ListRedeemableFn != nil {
		return s.ListRedeemableFn(ctx, status, now)
	}
	return s.filter(func(c *model.Coupon) bool {
		return c.Status == status && c.ExpirationDate.After(now)
	}, func(a, b model.Coupon) bool {
		return a.ExpirationDate.Before(b.ExpirationDate)
	}), nil
}

// ExpireOverdue marks up to limit overdue available coupons as expired.
func (s *CouponRepositoryStub) ExpireOverdue(ctx context.Context, now time.Time, limit int) (int64, error) {
	if s.ExpireOverdueFn != nil {
		return s.ExpireOverdueFn(ctx, now, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.Coupons {
		if int(n) >= limit {
			break
		}
		if c.Status == model.CouponStatusAvailable && !c.ExpirationDate.After(now) {
			c.Status = model.CouponStatusExpired
			n++
		}
	}
	return n, nil
}

func (s *CouponRepositoryStub) filter(keep func(*model.Coupon) bool, less func(a, b model.Coupon) bool) []model.Coupon {
	s.mu.Lock()
	out := make([]model.Coupon, 0, len(s.Coupons))
	for _, c := range s.Coupons {
		if keep(c) {
			out = append(out, *c)
		}
	}
	s.mu.Unlock()

	for i := range out {
		if store, _, err := s.storeInfo(out[i].StoreID); err == nil && store != nil {
			out[i].Store = store
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
