package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// SessionHeader carries the anonymous session identifier in both directions.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

var validSessionID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// Session resolves the caller's session from SessionHeader, issuing a new
// one when it is missing or malformed. The id is echoed in the response.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if !validSessionID.MatchString(id) {
			id = uuid.NewString()
		}

		w.Header().Set(SessionHeader, id)
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
	})
}

// WithSessionID returns a copy of ctx carrying id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionID returns the session id stored by Session, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
