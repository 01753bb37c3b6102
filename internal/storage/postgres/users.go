package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
)

const userColumns = `id, name, address, birth_date, email, password_hash, is_store, external_id, created_at, updated_at`

type userRepository struct {
	storage *Storage
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Address, &u.BirthDate, &u.Email, &u.PasswordHash,
		&u.IsStore, &u.ExternalID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user model.NewUser) (*model.User, error) {
	const query = `INSERT INTO users (name, address, birth_date, email, password_hash, is_store, external_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING ` + userColumns
	created, err := scanUser(r.storage.pool.QueryRow(ctx, query,
		user.Name, user.Address, user.BirthDate, user.Email, user.PasswordHash, user.IsStore, user.ExternalID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) CompleteProfile(ctx context.Context, id int64, passwordHash string, isStore bool, birthDate *time.Time) (*model.User, error) {
	const query = `UPDATE users
                   SET password_hash=$2, is_store=$3, birth_date=$4, updated_at=NOW()
                   WHERE id=$1 AND password_hash=''
                   RETURNING ` + userColumns
	updated, err := scanUser(r.storage.pool.QueryRow(ctx, query, id, passwordHash, isStore, birthDate))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProfileCompleted
		}
		return nil, err
	}
	return updated, nil
}
