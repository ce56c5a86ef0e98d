package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"clubadmin/internal/repository"
)

type ctxKey string

const AdminIDKey ctxKey = "adminID"

type TokenRepo interface {
	FindByPlainToken(ctx context.Context, plainToken string) (*repository.AdminToken, error)
}

// TokenMiddleware guards mutating routes with the club's bearer tokens.
// The token may come in the Authorization header or, for download links the
// browser opens directly, in the token query parameter.
func TokenMiddleware(tokenRepo TokenRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight passes through
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			var tok *repository.AdminToken

			authHeader := r.Header.Get("Authorization")
			if plain, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				t, err := tokenRepo.FindByPlainToken(r.Context(), strings.TrimSpace(plain))
				if err == nil {
					tok = t
				} else {
					log.Printf("[AUTH] token lookup (header) error: %v", err)
				}
			}

			if tok == nil {
				if plain := r.URL.Query().Get("token"); plain != "" {
					t, err := tokenRepo.FindByPlainToken(r.Context(), plain)
					if err == nil {
						tok = t
					} else {
						log.Printf("[AUTH] token lookup (query) error: %v", err)
					}
				}
			}

			if tok == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if tok.ExpiresAt != nil && tok.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Token expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, tok.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAdminID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(AdminIDKey).(string)
	if !ok || v == "" {
		return "", errors.New("adminID not found in context")
	}
	return v, nil
}
