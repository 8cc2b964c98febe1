package entity

import "context"

type CtxKey int

const (
	CtxKeySession CtxKey = iota
)

func CtxWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, CtxKeySession, s)
}

// SessionFromCtx returns the session snapshot or ErrNoSession.
func SessionFromCtx(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(CtxKeySession).(Session)
	if !ok {
		return Session{}, ErrNoSession
	}

	return s, nil
}
