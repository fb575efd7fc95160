// Package app implements the break-glass admin mechanism. Credentials live
// in protected deployment configuration, never in source; every attempt is
// audit-logged; sessions are held in process memory so the mechanism keeps
// working while the database is degraded.
package app

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplane/storefront/pkg/config"
)

var (
	ErrDisabled     = errors.New("break-glass access is not configured")
	ErrUnauthorized = errors.New("unauthorized")
)

type session struct {
	expiresAt time.Time
}

type BreakGlass struct {
	creds config.BreakGlass
	ttl   time.Duration
	log   *slog.Logger
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]session
}

func NewBreakGlass(creds config.BreakGlass, ttl time.Duration, log *slog.Logger) *BreakGlass {
	return &BreakGlass{
		creds:    creds,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]session),
	}
}

// Login checks the supplied credentials in constant time and, on success,
// issues a short-lived admin session token. Every attempt is audit-logged
// with its outcome and origin.
func (b *BreakGlass) Login(remoteAddr, user, pass string) (string, error) {
	if !b.creds.Enabled() {
		b.log.Warn("break-glass attempt while disabled", slog.String("remote_addr", remoteAddr))
		return "", ErrDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(b.creds.User))
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(b.creds.Pass))
	if userOK&passOK != 1 {
		b.log.Warn("break-glass login rejected",
			slog.String("remote_addr", remoteAddr),
			slog.String("user", user),
		)
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	b.mu.Lock()
	b.sessions[token] = session{expiresAt: b.now().Add(b.ttl)}
	b.mu.Unlock()

	b.log.Info("break-glass login granted",
		slog.String("remote_addr", remoteAddr),
		slog.Time("expires_at", b.now().Add(b.ttl)),
	)
	return token, nil
}

func (b *BreakGlass) Authorize(token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[token]
	if !ok {
		return ErrUnauthorized
	}
	if b.now().After(s.expiresAt) {
		delete(b.sessions, token)
		return ErrUnauthorized
	}
	return nil
}

func (b *BreakGlass) Revoke(token string) {
	b.mu.Lock()
	delete(b.sessions, token)
	b.mu.Unlock()
}
