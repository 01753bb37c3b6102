package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid auth token")
	ErrTokenExpired = errors.New("auth token expired")
)

// Strategy issues and verifies bearer tokens.
type Strategy interface {
	IssueToken(userID int64, ttl time.Duration) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// TokenTTLs holds token lifetimes per login flow.
type TokenTTLs struct {
	Direct   time.Duration
	External time.Duration
}
