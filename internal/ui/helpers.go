package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/samandr77/docflow/internal/entity"
)

const errGenericText = "Something went wrong."

type unmounter interface {
	Unmount()
}

// command returns the path to navigate to next, or "" to stay.
type command struct {
	usage string
	run   func(ctx context.Context, args []string) (string, error)
}

type view struct {
	title    string
	screen   unmounter
	render   func(w io.Writer)
	commands map[string]command
}

// screenWriter is the ResponseWriter a navigation renders into.
type screenWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
	view   *view
}

func newScreenWriter() *screenWriter {
	return &screenWriter{header: make(http.Header)}
}

func (w *screenWriter) Header() http.Header {
	return w.header
}

func (w *screenWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return w.body.Write(b)
}

func (w *screenWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

// redirect is the Location of a 3xx answer, empty otherwise.
func (w *screenWriter) redirect() string {
	if w.status < 300 || w.status > 399 {
		return ""
	}

	return w.header.Get("Location")
}

func SendView(w http.ResponseWriter, v *view) {
	if sw, ok := w.(*screenWriter); ok {
		sw.view = v
	}

	w.WriteHeader(http.StatusOK)
	v.render(w)
}

// SendErr renders a blocking error in place of a screen.
func SendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	slog.ErrorContext(ctx, "screen error", "error", err, "code", code)

	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, "Error: %s\n", entity.UserMessage(err, msg))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

// choose resolves a 1-based list position typed by the user.
func choose[T any](items []T, args []string) (T, error) {
	var zero T

	if len(args) == 0 {
		return zero, entity.ErrInvalidSelection
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(items) {
		return zero, entity.ErrInvalidSelection
	}

	return items[n-1], nil
}
