package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCouponRequest describes a new coupon.
type CreateCouponRequest struct {
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	SocialEvent    *string    `json:"socialEvent"`
	TokensRequired int        `json:"tokensRequired" binding:"required,gt=0"`
	ExpirationDate *Timestamp `json:"expirationDate" binding:"required"`
}

// UpdateCouponRequest lists patchable coupon fields; absent fields stay unchanged.
type UpdateCouponRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=1"`
	Description    *string    `json:"description" binding:"omitempty,min=1"`
	SocialEvent    *string    `json:"socialEvent"`
	TokensRequired *int       `json:"tokensRequired" binding:"omitempty,gt=0"`
	ExpirationDate *Timestamp `json:"expirationDate"`
	Status         *string    `json:"status" binding:"omitempty,couponstatus"`
}

// StoreResponse is the issuing store embedded into coupon listings.
type StoreResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CouponResponse is the public representation of a coupon.
type CouponResponse struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	SocialEvent    *string        `json:"socialEvent"`
	TokensRequired int            `json:"tokensRequired"`
	ExpirationDate time.Time      `json:"expirationDate"`
	Status         string         `json:"status"`
	StoreID        int64          `json:"storeId"`
	Store          *StoreResponse `json:"store,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
