// apps/go-solver/internal/httpserver/auth.go
//
// Session tokens and the optional shared-password gate.
//   - Tokens are HS256 JWTs carrying only the session ID; solver state stays
//     server-side.
//   - When SOLVER_PASSWORD_HASH (a bcrypt hash) is set, POST /session/new
//     requires the matching password. Unset means open access, which is the
//     sensible default for local use.

package httpserver

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

// ctxSessionKey is the context key type for storing the resolved session.
type ctxSessionKey struct{}

// signSessionToken creates an HS256 JWT for a session ID with a configurable
// expiry (JWT_EXPIRES_HOURS; default 24).
func signSessionToken(sessionID string) (string, error) {
	hours := 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		if d, err := time.ParseDuration(v + "h"); err == nil {
			hours = d
		}
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(hours).Unix(),
		"iat": time.Now().Unix(),
	})
	return t.SignedString([]byte(jwtSecret()))
}

// requireSession enforces a valid session token and injects the stored
// session into the request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret()), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
				return
			}
			sid, _ := claims["sid"].(string)
			if sid == "" {
				http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
				return
			}
			sess, err := s.store.Get(r.Context(), sid)
			if err != nil {
				http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom returns the session placed in context by requireSession.
func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// passwordGateOK checks the shared password against SOLVER_PASSWORD_HASH.
// An unset hash disables the gate.
func passwordGateOK(password string) bool {
	hash := os.Getenv("SOLVER_PASSWORD_HASH")
	if hash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// jwtSecret returns the signing secret, with a dev fallback.
func jwtSecret() string {
	return getEnv("JWT_SECRET", "dev_secret_change_me")
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
