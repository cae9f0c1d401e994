package middleware

import (
	"net/http"
	"slices"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/actor"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

// RoleMiddleware restringe a rota aos perfis informados, conferindo o ator do contexto
func RoleMiddleware(allowedRoles ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := actor.FromContext(r.Context())

			if !slices.Contains(allowedRoles, current.RoleID) {
				log.ForComponent(r.Context(), "role").WithFields(log.Fields{
					"user_id":      current.ID,
					"user_role_id": current.RoleID,
				}).Warn("Acesso negado")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerOnly libera a rota apenas para o dono da loja
func OwnerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleOwner)
}

// AllRoles libera a rota para dono e vendedores
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleOwner, domain.RoleSeller)
}
