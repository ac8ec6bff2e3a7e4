package middleware

import (
	"net/http"
	"strings"

	jwtutil "rps-backend/app/jwt"
	"rps-backend/app/models"
	"rps-backend/app/services"
)

type Auth struct {
	Signer *jwtutil.Signer
	Users  *services.UserService
}

func reject(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

// RequireAuth resolves the bearer token to a live user record. The token is
// trusted only for identity; role and email_verified are re-read from the
// store on every call.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			reject(w, http.StatusUnauthorized, "missing credentials")
			return
		}
		claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			reject(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		u, err := a.Users.GetByUsername(claims.Subject)
		if err != nil {
			reject(w, http.StatusUnauthorized, "user not found")
			return
		}
		if !u.EmailVerified {
			reject(w, http.StatusForbidden, "email not verified")
			return
		}
		p := &Principal{UserID: u.ID, Username: u.Username, Role: models.Role(u.Role)}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireRole gates a route behind a minimum tier. It runs after RequireAuth
// and compares through the role ordering, so an admin satisfies an
// admin-minimum check and an owner satisfies every check.
func (a *Auth) RequireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := GetPrincipal(r.Context())
			if p == nil {
				reject(w, http.StatusUnauthorized, "missing credentials")
				return
			}
			if !p.Role.AtLeast(min) {
				reject(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
