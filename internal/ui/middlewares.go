package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/pkg/logger"
)

type SessionReader interface {
	Current() (entity.Session, bool)
}

type Middleware struct {
	sessions SessionReader
}

func NewMiddleware(sessions SessionReader) *Middleware {
	return &Middleware{
		sessions: sessions,
	}
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRequestID(r.Context(), uuid.Must(uuid.NewV4()).String())
		ctx = logger.WithScreen(ctx, r.URL.Path)

		slog.InfoContext(ctx, "navigation", "path", r.URL.Path)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(ctx context.Context) {
			err := recover()
			if err != nil {
				slog.ErrorContext(ctx, "panic", "error", err, "stack", string(debug.Stack()))
				SendErr(ctx, w, http.StatusInternalServerError, fmt.Errorf("panic: %v", err), errGenericText)
			}
		}(r.Context())

		next.ServeHTTP(w, r)
	})
}

// Guard sends navigation without a session to /login. The session is read
// on every navigation, screens already shown are left alone.
func (m *Middleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := m.sessions.Current()
		if !ok {
			slog.InfoContext(r.Context(), "no session, redirecting to login", "path", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)

			return
		}

		ctx := entity.CtxWithSession(r.Context(), sess)
		ctx = logger.WithUserID(ctx, sess.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
