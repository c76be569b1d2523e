package httpx

import (
	"context"

	domainauth "github.com/nardonidigital/agency-api/internal/domain/auth"
)

type contextKey string

const sessionKey contextKey = "session"

// SetSessionInContext stores the resolved session in the request context.
func SetSessionInContext(ctx context.Context, sess *domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext retrieves the session placed by the session middleware.
// The second return is false for unauthenticated requests.
func SessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*domainauth.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
