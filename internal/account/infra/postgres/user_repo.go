package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/shoplane/storefront/internal/account/app"
	"github.com/shoplane/storefront/internal/account/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		u.Email, u.Name, u.PasswordHash,
	)

	var id uuid.UUID
	if err := row.Scan(&id, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.ID = id.String()
	return u, nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, app.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE id = $1`,
		userID,
	))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE email = $1`,
		email,
	))
}

func (r *UserRepo) scanOne(row *sql.Row) (domain.User, error) {
	var (
		u  domain.User
		id uuid.UUID
	)
	err := row.Scan(&id, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id.String()
	return u, nil
}
