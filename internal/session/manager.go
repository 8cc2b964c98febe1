package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samandr77/docflow/internal/entity"
)

type Store interface {
	Get() (entity.Session, bool, error)
	Set(entity.Session) error
	Clear() error
}

// Observer receives the session after every write. ok is false after logout.
type Observer func(s entity.Session, ok bool)

// Manager owns the process-wide session. Login and Logout are the only
// writers; everything else reads snapshots through Current.
type Manager struct {
	store Store

	writeMu sync.Mutex

	mu      sync.RWMutex
	current entity.Session
	ok      bool
	nextID  int
	subs    map[int]Observer
}

func NewManager(store Store) (*Manager, error) {
	sess, ok, err := store.Get()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &Manager{
		store:   store,
		current: sess,
		ok:      ok,
		subs:    make(map[int]Observer),
	}, nil
}

func (m *Manager) Current() (entity.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current, m.ok
}

// Token returns the bearer credential, empty without a session.
func (m *Manager) Token() string {
	s, ok := m.Current()
	if !ok {
		return ""
	}

	return s.Token
}

func (m *Manager) Login(ctx context.Context, s entity.Session) error {
	if s.UserID == "" || s.Token == "" {
		return errors.New("session without user id or token")
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.store.Set(s); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.publish(s, true)

	slog.InfoContext(ctx, "session established", "user_id", s.UserID, "role", s.Role)

	return nil
}

func (m *Manager) Logout(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.publish(entity.Session{}, false)

	slog.InfoContext(ctx, "session cleared")

	return nil
}

// Subscribe calls fn with the current state right away and after every
// write. The returned func removes the observer.
func (m *Manager) Subscribe(fn Observer) func() {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	cur, ok := m.current, m.ok
	m.mu.Unlock()

	fn(cur, ok)

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// publish must be called with writeMu held so observers see writes in order.
func (m *Manager) publish(s entity.Session, ok bool) {
	m.mu.Lock()
	m.current, m.ok = s, ok

	subs := make([]Observer, 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s, ok)
	}
}
