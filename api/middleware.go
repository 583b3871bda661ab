package api

import (
	"context"
	"net/http"
	"os"

	"log/slog"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/session"
)

type ctxKey string

const ctxSession ctxKey = "session"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requireRealm gates a handler behind a realm grant. Requests without the
// realm on their session are redirected to that realm's login page; granted
// requests get the session attached to the context.
func requireRealm(sm *session.Manager, realm Realm, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sm.Load(r)
		if err != nil {
			logger.Error("load session", slog.Any("err", err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if s == nil || !s.HasRealm(realm.Name) {
			http.Redirect(w, r, realm.LoginPath, http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), ctxSession, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// sessionFromContext returns the session attached by requireRealm.
func sessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(ctxSession).(*models.Session)
	return s
}
