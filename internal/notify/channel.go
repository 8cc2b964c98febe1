package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/internal/session"
	"github.com/samandr77/docflow/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=channel.go -destination=../mocks/notify.go -package=mocks

type Toaster interface {
	Toast(ctx context.Context, alert entity.Alert)
}

type Conn interface {
	Close()
}

type Transport interface {
	Open(ctx context.Context, userID string, onAlert func(context.Context, entity.Alert)) (Conn, error)
}

type SessionSource interface {
	Subscribe(fn session.Observer) func()
}

// Channel keeps at most one push connection, owned by the current session
// rather than by any screen.
type Channel struct {
	root      context.Context
	transport Transport
	toaster   Toaster

	mu     sync.Mutex
	userID string
	conn   Conn
	cancel context.CancelFunc
}

func New(ctx context.Context, transport Transport, toaster Toaster) *Channel {
	return &Channel{
		root:      ctx,
		transport: transport,
		toaster:   toaster,
	}
}

// Bind follows the session: open on login, close on logout, reopen when a
// different user logs in.
func (c *Channel) Bind(src SessionSource) func() {
	return src.Subscribe(c.onSession)
}

func (c *Channel) onSession(s entity.Session, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ok && c.conn != nil && c.userID == s.UserID {
		return
	}

	c.closeLocked()

	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(logger.WithUserID(c.root, s.UserID))

	conn, err := c.transport.Open(ctx, s.UserID, c.toaster.Toast)
	if err != nil {
		cancel()
		slog.ErrorContext(ctx, "open push channel", "error", err)

		return
	}

	c.userID = s.UserID
	c.conn = conn
	c.cancel = cancel

	slog.InfoContext(ctx, "push channel opened")
}

func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()
}

func (c *Channel) closeLocked() {
	if c.conn == nil {
		return
	}

	c.cancel()
	c.conn.Close()

	slog.Info("push channel closed", "user_id", c.userID)

	c.conn = nil
	c.cancel = nil
	c.userID = ""
}

// UserID is the owner of the open connection, empty when closed.
func (c *Channel) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.userID
}
