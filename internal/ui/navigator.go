package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
)

const maxRedirects = 5

type Navigator struct {
	router http.Handler
	term   *Terminal

	mu      sync.Mutex
	current *view
	path    string
}

func NewNavigator(router http.Handler, term *Terminal) *Navigator {
	return &Navigator{
		router: router,
		term:   term,
	}
}

// Navigate unmounts the current screen and shows the one at path.
// Redirects answered by the router replace the target.
func (n *Navigator) Navigate(ctx context.Context, path string) error {
	n.Close()

	for range maxRedirects {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		sw := newScreenWriter()
		n.router.ServeHTTP(sw, req)

		if next := sw.redirect(); next != "" {
			slog.DebugContext(ctx, "redirect", "from", path, "to", next)

			if sw.view != nil && sw.view.screen != nil {
				sw.view.screen.Unmount()
			}

			path = next

			continue
		}

		n.mu.Lock()
		n.current = sw.view
		n.path = path
		n.mu.Unlock()

		n.term.Printf("%s", sw.body.String())

		return nil
	}

	return fmt.Errorf("navigate %s: too many redirects", path)
}

// Exec runs a command of the current screen. found is false when the
// screen has no such command.
func (n *Navigator) Exec(ctx context.Context, name string, args []string) (found bool, err error) {
	n.mu.Lock()
	v := n.current
	n.mu.Unlock()

	if v == nil {
		return false, nil
	}

	cmd, ok := v.commands[name]
	if !ok {
		return false, nil
	}

	next, err := cmd.run(ctx, args)
	if err != nil {
		return true, err
	}

	if next != "" {
		return true, n.Navigate(ctx, next)
	}

	return true, nil
}

// Commands lists the usage of every command the current screen accepts.
func (n *Navigator) Commands() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}

	out := make([]string, 0, len(n.current.commands))
	for _, c := range n.current.commands {
		out = append(out, c.usage)
	}

	slices.Sort(out)

	return out
}

func (n *Navigator) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.path
}

// Close unmounts the current screen.
func (n *Navigator) Close() {
	n.mu.Lock()
	v := n.current
	n.current = nil
	n.mu.Unlock()

	if v != nil && v.screen != nil {
		v.screen.Unmount()
	}
}
