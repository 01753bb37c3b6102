package test

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
	pkgAuth "github.com/polkiloo/couponhub/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash == "" || hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// IssuedToken records a single IssueToken invocation.
type IssuedToken struct {
	UserID int64
	TTL    time.Duration
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64, time.Duration) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
	Issued  *[]IssuedToken
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, ttl time.Duration) (string, error) {
	if s.Issued != nil {
		*s.Issued = append(*s.Issued, IssuedToken{UserID: userID, TTL: ttl})
	}
	if s.IssueFn != nil {
		return s.IssueFn(userID, ttl)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// AuthenticatorStub implements the middleware token contract.
type AuthenticatorStub struct {
	ID      int64
	Err     error
	User    *model.User
	UserErr error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s AuthenticatorStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	if s.ID == 0 {
		return 1, nil
	}
	return s.ID, nil
}

// UserByID returns configured user, or a user with the requested id.
func (s AuthenticatorStub) UserByID(_ context.Context, id int64) (*model.User, error) {
	if s.UserErr != nil {
		return nil, s.UserErr
	}
	if s.User != nil {
		if s.User.ID != id {
			return nil, domainErrors.ErrNotFound
		}
		return s.User, nil
	}
	return &model.User{ID: id, Email: "user@example.com", PasswordHash: "hash"}, nil
}

// IdentityVerifierStub returns a configured identity or error.
type IdentityVerifierStub struct {
	Identity *model.ExternalIdentity
	Err      error
	Tokens   *[]string
}

// Verify records the token and returns configured result.
func (s IdentityVerifierStub) Verify(_ context.Context, idToken string) (*model.ExternalIdentity, error) {
	if s.Tokens != nil {
		*s.Tokens = append(*s.Tokens, idToken)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Identity != nil {
		return s.Identity, nil
	}
	return &model.ExternalIdentity{ExternalID: "sub-1", Email: "google@example.com", Name: "Google User"}, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
