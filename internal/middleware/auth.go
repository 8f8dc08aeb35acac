package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-management-api/internal/access"
	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/model"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFrom returns the authenticated user placed in the context by
// Authenticate, or nil for an anonymous request.
func UserFrom(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// UserResolver turns a token's user id back into a live user record. Tokens
// for users that no longer exist resolve to nil.
type UserResolver interface {
	UserByID(id string) *model.User
}

// Authenticate resolves a bearer token into a user and stores it in the
// request context. It never rejects: anonymous requests pass through with a
// nil user and the route gates decide what that means.
func Authenticate(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if h := r.Header.Get("Authorization"); h != "" {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if u := users.UserByID(claims.UserID); u != nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles gates a route subtree on the access decision for the current
// session. No session answers 401 with a login redirect hint; a session with
// the wrong role answers a plain 404, the same body an unknown path gets, so
// the route stays invisible.
func RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch access.Decide(UserFrom(r.Context()), roles) {
			case access.Allow:
				next.ServeHTTP(w, r)
			case access.RedirectLogin:
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required","redirect":"/login"}`))
			case access.RedirectNotFound:
				http.NotFound(w, r)
			}
		})
	}
}
