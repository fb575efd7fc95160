package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/shoplane/storefront/internal/account/app"
	"github.com/shoplane/storefront/internal/account/domain"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	token, err := uuid.Parse(s.Token)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(s.UserID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)`,
		token, userID, s.ExpiresAt,
	)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, token string) (domain.Session, error) {
	tok, err := uuid.Parse(token)
	if err != nil {
		return domain.Session{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = $1`,
		tok,
	)

	var (
		s        domain.Session
		tokenCol uuid.UUID
		userID   uuid.UUID
	)
	err = row.Scan(&tokenCol, &userID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	s.Token = tokenCol.String()
	s.UserID = userID.String()
	return s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	tok, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, tok)
	return err
}
