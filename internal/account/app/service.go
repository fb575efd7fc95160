package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shoplane/storefront/internal/account/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

const minPasswordLen = 8

type Service struct {
	users      UserRepo
	sessions   SessionRepo
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(users UserRepo, sessions SessionRepo, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (s *Service) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if !strings.Contains(email, "@") || name == "" || len(password) < minPasswordLen {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	u.PasswordHash = nil
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return domain.Session{}, ErrInvalidCredentials
	}

	session := domain.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
		CreatedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its user. Expired sessions are
// deleted on sight and read as invalid credentials.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return domain.User{}, ErrInvalidCredentials
	}

	u, err := s.users.Get(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	u.PasswordHash = nil
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
