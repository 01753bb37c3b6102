package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
)

var userColumnNames = []string{"id", "name", "address", "birth_date", "email", "password_hash", "is_store", "external_id", "created_at", "updated_at"}

func userRows(id int64, email, hash string, isStore bool, birthDate *time.Time, externalID *string) *pgxmockv3.Rows {
	now := time.Now()
	return pgxmockv3.NewRows(userColumnNames).
		AddRow(id, "Alice", "Main st. 1", birthDate, email, hash, isStore, externalID, now, now)
}

func TestUserRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	input := model.NewUser{
		Name: "Alice", Address: "Main st. 1", BirthDate: &birth,
		Email: "alice@example.com", PasswordHash: "hash",
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Alice", "Main st. 1", &birth, "alice@example.com", "hash", false, (*string)(nil)).
		WillReturnRows(userRows(1, "alice@example.com", "hash", false, &birth, nil))
	user, err := repo.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Email != "alice@example.com" || user.BirthDate == nil || !user.BirthDate.Equal(birth) {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), input); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), input); err == nil || errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected raw error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}
	sub := "google-sub"

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("bob@example.com").
		WillReturnRows(userRows(2, "bob@example.com", "", false, nil, &sub))
	user, err := repo.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ExternalID == nil || *user.ExternalID != sub || !user.PendingCompletion() {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("err").WillReturnError(errors.New("fail"))
	if _, err := repo.GetByEmail(context.Background(), "err"); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(1)).
		WillReturnRows(userRows(1, "store@example.com", "hash", true, nil, nil))
	user, err = repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsStore || user.BirthDate != nil {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryCompleteProfile(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	mock.ExpectQuery("UPDATE users").WithArgs(int64(5), "hash", true, (*time.Time)(nil)).
		WillReturnRows(userRows(5, "bob@example.com", "hash", true, nil, nil))
	user, err := repo.CompleteProfile(context.Background(), 5, "hash", true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PendingCompletion() || !user.IsStore {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("UPDATE users").WithArgs(int64(5), "hash", false, (*time.Time)(nil)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.CompleteProfile(context.Background(), 5, "hash", false, nil); !errors.Is(err, domainErrors.ErrProfileCompleted) {
		t.Fatalf("expected profile completed, got %v", err)
	}

	mock.ExpectQuery("UPDATE users").WillReturnError(errors.New("boom"))
	if _, err := repo.CompleteProfile(context.Background(), 5, "hash", false, nil); err == nil || errors.Is(err, domainErrors.ErrProfileCompleted) {
		t.Fatalf("expected raw error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
