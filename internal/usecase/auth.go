package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
	"github.com/polkiloo/couponhub/internal/domain/repository"
	pkgAuth "github.com/polkiloo/couponhub/internal/pkg/auth"
)

// IdentityVerifier validates third-party identity assertions.
// Rejected assertions are reported as domainErrors.ErrExternalIdentity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*model.ExternalIdentity, error)
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	verifier IdentityVerifier
	ttls     pkgAuth.TokenTTLs
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, verifier IdentityVerifier, ttls pkgAuth.TokenTTLs) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, verifier: verifier, ttls: ttls}
}

// Register creates a directly registered account.
func (u *AuthUseCase) Register(ctx context.Context, in model.Registration) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if blank(in.Name) || blank(in.Address) || email == "" || in.Password == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	var birthDate *time.Time
	if !in.IsStore {
		parsed, err := ParseBirthDate(in.BirthDate)
		if err != nil {
			return nil, err
		}
		birthDate = &parsed
	}

	hash, err := u.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, model.NewUser{
		Name:         strings.TrimSpace(in.Name),
		Address:      strings.TrimSpace(in.Address),
		BirthDate:    birthDate,
		Email:        email,
		PasswordHash: hash,
		IsStore:      in.IsStore,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return usr, nil
}

// Login validates credentials and issues a short-lived token.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if usr.PendingCompletion() {
		return nil, domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordMismatch) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return u.session(usr, u.ttls.Direct)
}

// ExternalLogin signs in with a third-party identity assertion, creating a
// pending account on first use.
func (u *AuthUseCase) ExternalLogin(ctx context.Context, idToken string) (*model.Session, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	identity, err := u.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, domainErrors.ErrExternalIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("verify identity: %w", err)
	}

	email := normalizeEmail(identity.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email claim", domainErrors.ErrExternalIdentity)
	}

	usr, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, domainErrors.ErrNotFound):
		usr, err = u.createPending(ctx, email, identity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("load user: %w", err)
	}

	return u.session(usr, u.ttls.External)
}

func (u *AuthUseCase) createPending(ctx context.Context, email string, identity *model.ExternalIdentity) (*model.User, error) {
	var externalID *string
	if identity.ExternalID != "" {
		id := identity.ExternalID
		externalID = &id
	}

	usr, err := u.users.Create(ctx, model.NewUser{
		Name:       identity.Name,
		Email:      email,
		ExternalID: externalID,
	})
	if err == nil {
		return usr, nil
	}
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Lost a race against a concurrent first login with the same email.
	usr, err = u.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return usr, nil
}

// CompleteProfile sets credentials of a pending account exactly once.
func (u *AuthUseCase) CompleteProfile(ctx context.Context, in model.ProfileCompletion) (*model.User, error) {
	if in.UserID <= 0 || in.Password == "" || in.IsStore == nil {
		return nil, domainErrors.ErrInvalidInput
	}

	usr, err := u.users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !usr.PendingCompletion() {
		return nil, domainErrors.ErrProfileCompleted
	}

	isStore := *in.IsStore
	var birthDate *time.Time
	if !isStore {
		birthDate = parseBirthDateLenient(in.BirthDate)
	}

	hash, err := u.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	updated, err := u.users.CompleteProfile(ctx, in.UserID, hash, isStore, birthDate)
	if err != nil {
		if errors.Is(err, domainErrors.ErrProfileCompleted) {
			return nil, domainErrors.ErrProfileCompleted
		}
		return nil, fmt.Errorf("complete profile: %w", err)
	}
	return updated, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// UserByID fetches user by identifier.
func (u *AuthUseCase) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *AuthUseCase) session(usr *model.User, ttl time.Duration) (*model.Session, error) {
	token, err := u.tokens.IssueToken(usr.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.Session{Token: token, User: usr}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *AuthUseCase) hashPassword(password string) (string, error) {
	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return "", domainErrors.ErrInvalidInput
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
