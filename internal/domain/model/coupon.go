package model

import (
	"time"

	"github.com/google/uuid"
)

// CouponStatus describes redemption lifecycle of a coupon.
type CouponStatus string

const (
	CouponStatusAvailable CouponStatus = "available"
	CouponStatusUsed      CouponStatus = "used"
	CouponStatusExpired   CouponStatus = "expired"
	CouponStatusLocked    CouponStatus = "locked"
)

// Valid reports whether status is one of the known values.
func (s CouponStatus) Valid() bool {
	switch s {
	case CouponStatusAvailable, CouponStatusUsed, CouponStatusExpired, CouponStatusLocked:
		return true
	}
	return false
}

// StoreInfo is the public part of the issuing store embedded in listings.
type StoreInfo struct {
	Name  string
	Email string
}

// Coupon is issued by a store account and redeemed by regular users.
type Coupon struct {
	ID             uuid.UUID
	Name           string
	Description    string
	SocialEvent    *string
	TokensRequired int
	ExpirationDate time.Time
	Status         CouponStatus
	StoreID        int64
	Store          *StoreInfo
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CouponDraft is the input of coupon creation.
type CouponDraft struct {
	Name           string
	Description    string
	SocialEvent    *string
	TokensRequired int
	ExpirationDate *time.Time
}

// CouponPatch holds the patchable coupon fields; nil means unchanged.
type CouponPatch struct {
	Name           *string
	Description    *string
	SocialEvent    *string
	TokensRequired *int
	ExpirationDate *time.Time
	Status         *CouponStatus
}

// Empty reports whether patch changes nothing.
func (p CouponPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.SocialEvent == nil &&
		p.TokensRequired == nil && p.ExpirationDate == nil && p.Status == nil
}
