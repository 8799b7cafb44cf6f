package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/palaver-dev/palaver/internal/domain"
	"github.com/palaver-dev/palaver/internal/token"
	"github.com/palaver-dev/palaver/internal/utils"
)

// Resolver turns a verified token subject into the current user record.
type Resolver interface {
	Resolve(subject domain.Username) (domain.User, error)
}

// Key to store the resolved user in the request context
type key int

const userKey key = 0

type Auth struct {
	tokens   token.Service
	resolver Resolver
}

func NewAuth(tokens token.Service, resolver Resolver) *Auth {
	return &Auth{tokens: tokens, resolver: resolver}
}

// RequireAuth returns middleware that rejects requests without a valid token.
func (a *Auth) RequireAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// RequireAdmin returns middleware that additionally requires the admin flag.
func (a *Auth) RequireAdmin() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth populates the user context if a valid token is present but
// lets anonymous requests through.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := a.extractUser(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

// extractUser reads the bearer token, verifies it and resolves the subject
// against the user store. A subject that was deleted since issuance fails
// the same way an invalid token does.
func (a *Auth) extractUser(r *http.Request) (domain.User, error) {
	raw, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || raw == "" {
		return domain.User{}, errNoToken
	}

	claims, err := a.tokens.Verify(raw)
	if err != nil {
		return domain.User{}, err
	}

	return a.resolver.Resolve(claims.Subject)
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				if err == errNoToken {
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if adminOnly && !user.Admin {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the resolved user set by the auth middleware.
func UserFromContext(r *http.Request) (domain.User, bool) {
	user, ok := r.Context().Value(userKey).(domain.User)
	return user, ok
}

// WithUser returns a copy of the request carrying user in its context.
// Test helper for exercising handlers without the full middleware chain.
func WithUser(r *http.Request, user domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
