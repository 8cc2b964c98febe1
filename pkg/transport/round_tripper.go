package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/docflow/pkg/logger"
)

type TokenSource interface {
	Token() string
}

// AuthRoundTripper attaches the bearer token of the current session to
// every request. The token is read per request, so login and logout take
// effect on the next call.
type AuthRoundTripper struct {
	Transport http.RoundTripper
	Tokens    TokenSource
}

func NewAuthRoundTripper(transport http.RoundTripper, tokens TokenSource) *AuthRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &AuthRoundTripper{Transport: transport, Tokens: tokens}
}

func (a *AuthRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	reqID := logger.RequestIDFromCtx(ctx)
	if reqID == "" {
		reqID = uuid.Must(uuid.NewV4()).String()
		ctx = logger.WithRequestID(ctx, reqID)
	}

	r = r.Clone(ctx)
	r.Header.Set("X-Request-Id", reqID)

	if a.Tokens != nil {
		if token := a.Tokens.Token(); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}

	slog.InfoContext(ctx, "outgoing request", "request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()))

	resp, err := a.Transport.RoundTrip(r)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	slog.InfoContext(ctx, "incoming response",
		"response", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()),
		"status", resp.StatusCode,
	)

	return resp, nil
}
