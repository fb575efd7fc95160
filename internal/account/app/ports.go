package app

import (
	"context"

	"github.com/shoplane/storefront/internal/account/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}
