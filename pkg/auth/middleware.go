package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionFromContext returns the session stored in ctx, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	v, ok := ctx.Value(sessionKey).(Session)
	return v, ok
}

// WithSessionContext returns ctx with the session attached.
func WithSessionContext(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromRequest reads and verifies the session cookie. A missing or
// invalid cookie yields a zero session, never an error: unauthenticated
// requests are a normal state, not a failure.
func SessionFromRequest(r *http.Request, secret []byte) Session {
	cookie, err := r.Cookie(SessionCookieName())
	if err != nil {
		return Session{}
	}
	session, err := VerifyToken(cookie.Value, secret)
	if err != nil {
		return Session{}
	}
	return session
}

// WithSession attaches whatever session the request carries to the context
// and always passes through. Handlers that serve both anonymous and
// authenticated clients use this instead of RequireUser.
func WithSession(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithSessionContext(r.Context(), SessionFromRequest(r, secret))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests whose session has no user flag.
func RequireUser(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromRequest(r, secret)
			if session.Username == "" {
				unauthorized(w)
				return
			}
			ctx := WithSessionContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose session has no admin flag.
// An authenticated-but-not-admin session gets 403, anything else 401.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromRequest(r, secret)
			if !session.Admin {
				if session.IsZero() {
					unauthorized(w)
				} else {
					forbidden(w)
				}
				return
			}
			ctx := WithSessionContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
}
