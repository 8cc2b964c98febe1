package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/pkg/job"
)

// screen is the lifetime shared by every screen model. A screen is mounted
// from construction until Unmount; state changes after that are dropped.
type screen struct {
	mu       sync.Mutex
	mounted  bool
	poll     *job.Handle
	onChange func()
}

func (s *screen) mount() {
	s.mu.Lock()
	s.mounted = true
	s.mu.Unlock()
}

// OnChange registers the single observer called after a visible change.
func (s *screen) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *screen) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mounted
}

// update runs fn under the lock while mounted. fn reports whether it
// changed anything, only then the observer is called.
func (s *screen) update(fn func() bool) error {
	s.mu.Lock()

	if !s.mounted {
		s.mu.Unlock()
		return entity.ErrUnmounted
	}

	changed := fn()
	notify := s.onChange
	s.mu.Unlock()

	if changed && notify != nil {
		notify()
	}

	return nil
}

func (s *screen) read(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn()
}

func (s *screen) startPolling(ctx context.Context, name string, interval time.Duration, fn job.Func) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || s.poll != nil {
		return
	}

	s.poll = job.Start(ctx, name, interval, fn)
}

// Polling reports whether a refresh job is running.
func (s *screen) Polling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.poll != nil
}

func (s *screen) Unmount() {
	s.mu.Lock()
	s.mounted = false
	poll := s.poll
	s.poll = nil
	s.mu.Unlock()

	if poll != nil {
		poll.Stop()
	}
}

// discardLate turns ErrUnmounted from a background refresh into nil.
func discardLate(ctx context.Context, err error, screen string) error {
	if errors.Is(err, entity.ErrUnmounted) {
		slog.DebugContext(ctx, "discarding response for unmounted screen", "screen", screen)
		return nil
	}

	return err
}
