package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/actor"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// rotas que nunca exigem token
var publicPaths = map[string]bool{
	"/healthcheck":   true,
	"/v1/login":      true,
	"/v1/login/demo": true,
	"/v1/register":   true,
}

type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// AuthMiddleware coloca o ator do token no contexto. Sem token a requisição segue como o
// usuário demo, a menos que required esteja ligado. Um token inválido é sempre recusado.
func AuthMiddleware(validator TokenValidator, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if required {
					apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token de autenticação obrigatório", nil)
					return
				}

				ctx := actor.WithActor(r.Context(), actor.Demo())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer obrigatório", nil)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				log.ForComponent(r.Context(), "auth").WithError(err).Warn("Token recusado")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			ctx = actor.WithActor(ctx, actor.FromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
