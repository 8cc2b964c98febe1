package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/samandr77/docflow/internal/entity"
)

// Terminal serializes output from the REPL, poll re-renders and toasts.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	prompt string
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintf(t.w, format, args...)
}

func (t *Terminal) Println(args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintln(t.w, args...)
}

// Redraw prints a view out of band and restores the pending prompt.
func (t *Terminal) Redraw(v *view) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintln(t.w)
	v.render(t.w)

	if t.prompt != "" {
		_, _ = io.WriteString(t.w, t.prompt)
	}
}

func (t *Terminal) Toast(_ context.Context, alert entity.Alert) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintf(t.w, "\n[notification] %s\n", alert.Message)

	if t.prompt != "" {
		_, _ = io.WriteString(t.w, t.prompt)
	}
}

func (t *Terminal) setPrompt(p string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prompt = p
	_, _ = io.WriteString(t.w, p)
}

func (t *Terminal) clearPrompt() {
	t.mu.Lock()
	t.prompt = ""
	t.mu.Unlock()
}

// Console reads user input line by line. It is the Prompter for every
// confirmation and selection the screens ask for.
type Console struct {
	term  *Terminal
	lines chan string
}

func NewConsole(in io.Reader, term *Terminal) *Console {
	c := &Console{term: term, lines: make(chan string)}

	go func() {
		defer close(c.lines)

		sc := bufio.NewScanner(in)
		for sc.Scan() {
			c.lines <- sc.Text()
		}
	}()

	return c
}

// ReadLine returns ok=false once input is exhausted.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, bool, error) {
	c.term.setPrompt(prompt)
	defer c.term.clearPrompt()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-c.lines:
		return strings.TrimSpace(line), ok, nil
	}
}

func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	answer, ok, err := c.ReadLine(ctx, question+" [y/N]: ")
	if err != nil || !ok {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Prompt treats "cancel" and end of input as a cancelled prompt.
func (c *Console) Prompt(ctx context.Context, question string) (string, bool, error) {
	c.term.Println(question)

	answer, ok, err := c.ReadLine(ctx, "> ")
	if err != nil || !ok {
		return "", false, err
	}

	if strings.EqualFold(answer, "cancel") {
		return "", false, nil
	}

	return answer, true, nil
}
