// Package actor carrega a identidade de quem executa a operação através do contexto
package actor

import (
	"context"

	"github.com/vfg2006/c4-store-api/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

type Actor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	RoleID int    `json:"roleId"`
	IsDemo bool   `json:"isDemo"`
}

// Demo é a identidade usada quando ninguém está autenticado
func Demo() Actor {
	return Actor{
		ID:     domain.DemoUserID,
		Name:   "Usuário Demo",
		RoleID: domain.RoleOwner,
		IsDemo: true,
	}
}

// FromClaims converte as claims do token em ator
func FromClaims(claims *domain.Claims) Actor {
	return Actor{
		ID:     claims.UserID,
		Name:   claims.UserName,
		Email:  claims.UserEmail,
		RoleID: claims.UserRoleID,
		IsDemo: claims.IsDemo,
	}
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// FromContext retorna o ator do contexto ou o ator demo
func FromContext(ctx context.Context) Actor {
	if ctx != nil {
		if a, ok := ctx.Value(actorKey).(Actor); ok && a.ID != "" {
			return a
		}
	}
	return Demo()
}

// Authenticated indica se o contexto tem um ator explícito
func Authenticated(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	a, ok := ctx.Value(actorKey).(Actor)
	return ok && a.ID != ""
}
