package job

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type Func func(ctx context.Context) error

// Handle controls one running job. Stop is safe to call more than once.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start runs fn every interval until ctx is done or Stop is called. The first
// run happens one interval after Start. Runs never overlap and a failed run
// does not change the schedule.
func Start(ctx context.Context, name string, interval time.Duration, fn Func) *Handle {
	ctx, cancel := context.WithCancel(ctx)

	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go h.run(ctx, name, interval, fn)

	return h
}

func (h *Handle) run(ctx context.Context, name string, interval time.Duration, fn Func) {
	defer close(h.done)

	l := slog.Default().With("job", name)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Debug("context done")
			return

		case <-ticker.C:
		}

		l.Debug("job started")

		err := withRecover(ctx, l, fn)
		if err != nil {
			l.Error("job failed", "error", err)
		} else {
			l.Debug("job done")
		}
	}
}

func withRecover(ctx context.Context, l *slog.Logger, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.Error("job panic", "error", r, "stack", string(debug.Stack()))
		}
	}()

	return fn(ctx)
}

// Stop cancels the job and waits for an in-flight run to return.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the job has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
