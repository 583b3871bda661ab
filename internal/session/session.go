// Package session manages server-side admin sessions. The browser holds an
// HS256-signed token carrying only the session ID; the granted realms and the
// flash message live in the sessions table and can be revoked server-side.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

// CookieName is the session cookie set on admin login and public visits that
// need flash messages.
const CookieName = "amco_session"

type Manager struct {
	repo   repository.SessionRepo
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

func NewManager(repo repository.SessionRepo, secret string, ttl time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{repo: repo, secret: []byte(secret), ttl: ttl, logger: logger}
}

// Load returns the session referenced by the request cookie, or nil when the
// request carries no valid, unexpired session. A tampered or expired token is
// treated the same as no session at all.
func (m *Manager) Load(r *http.Request) (*models.Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	sid, ok := m.parseToken(c.Value)
	if !ok {
		return nil, nil
	}

	s, err := m.repo.GetSession(r.Context(), sid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}
	if !s.Expires.After(time.Now().UTC()) {
		if err := m.repo.DeleteSession(r.Context(), s.ID); err != nil {
			m.logger.Error("delete expired session", slog.Any("err", err))
		}
		return nil, nil
	}

	return s, nil
}

// Ensure returns the request's session, creating a fresh one (and setting the
// cookie on w) when none exists.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (*models.Session, error) {
	s, err := m.Load(r)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	now := time.Now().UTC()
	s = &models.Session{
		ID:      uuid.NewString(),
		Created: now,
		Expires: now.Add(m.ttl),
	}
	if err := m.repo.CreateSession(r.Context(), s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := m.signToken(s)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.Expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return s, nil
}

// Save persists realm and flash changes made on the session.
func (m *Manager) Save(ctx context.Context, s *models.Session) error {
	return m.repo.UpdateSession(ctx, s)
}

// SetFlash stores a transient status message shown on the next rendered page.
func (m *Manager) SetFlash(ctx context.Context, s *models.Session, msg, level string) {
	if s == nil {
		return
	}
	s.FlashMsg = msg
	s.FlashLevel = level
	if err := m.repo.UpdateSession(ctx, s); err != nil {
		m.logger.Error("set flash", slog.Any("err", err))
	}
}

// PopFlash returns and clears the pending flash message, if any.
func (m *Manager) PopFlash(ctx context.Context, s *models.Session) (msg, level string) {
	if s == nil || s.FlashMsg == "" {
		return "", ""
	}
	msg, level = s.FlashMsg, s.FlashLevel
	s.FlashMsg, s.FlashLevel = "", ""
	if err := m.repo.UpdateSession(ctx, s); err != nil {
		m.logger.Error("pop flash", slog.Any("err", err))
	}

	return msg, level
}

// PurgeExpired removes expired session rows. Called periodically from main.
func (m *Manager) PurgeExpired(ctx context.Context) {
	n, err := m.repo.DeleteExpiredSessions(ctx)
	if err != nil {
		m.logger.Error("purge sessions", slog.Any("err", err))
		return
	}
	if n > 0 {
		m.logger.Info("purged sessions", slog.Int64("count", n))
	}
}

func (m *Manager) signToken(s *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": s.ID,
		"exp": s.Expires.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

func (m *Manager) parseToken(value string) (string, bool) {
	token, err := jwt.Parse(value, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", false
	}

	return sid, true
}
