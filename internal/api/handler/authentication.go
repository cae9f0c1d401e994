package handler

import (
	"net/http"

	"github.com/vfg2006/c4-store-api/internal/usecases/authenticating"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req authenticating.RegisterInput
		if !decodeBody(w, r, &req) {
			return
		}

		session, err := service.Register(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao registrar usuário")
			return
		}

		writeJSON(w, http.StatusCreated, session)
	})
}

func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		session, err := service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			// Usuário inexistente, desativado ou senha errada recebem a mesma resposta
			if authenticating.IsCredentialsError(err) {
				log.ForComponent(r.Context(), "handler").WithError(err).Warn("Tentativa de login inválida")
				apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Email ou senha inválidos", nil)
				return
			}
			writeServiceError(w, r, err, "Erro ao autenticar usuário")
			return
		}

		writeJSON(w, http.StatusOK, session)
	})
}

func LoginDemo(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := service.LoginDemo(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro no login demo")
			return
		}

		writeJSON(w, http.StatusOK, session)
	})
}

// GetMe retorna o perfil do ator da requisição
func GetMe(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, err := service.Me(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(w, http.StatusOK, profile)
	})
}
