// Package dialog obtém a decisão do usuário antes de ações destrutivas
package dialog

import (
	"context"
	"net/http"
	"strconv"
)

type Dialog interface {
	Confirm(ctx context.Context, message string) bool
	Prompt(ctx context.Context, message, defaultValue string) (string, bool)
}

// Static responde sempre o mesmo, útil em testes e em rotinas internas
type Static struct {
	Confirmed bool
	Answer    string
	Cancelled bool
}

func (s Static) Confirm(context.Context, string) bool {
	return s.Confirmed
}

func (s Static) Prompt(_ context.Context, _ string, defaultValue string) (string, bool) {
	if s.Cancelled {
		return "", false
	}
	if s.Answer == "" {
		return defaultValue, true
	}
	return s.Answer, true
}

// Deny recusa todas as confirmações
var Deny Dialog = Static{Confirmed: false, Cancelled: true}

// FromRequest lê a decisão da requisição: ?confirm=true ou cabeçalho X-Confirm, e ?answer= para prompts
func FromRequest(r *http.Request) Dialog {
	confirmed := false
	if v := r.URL.Query().Get("confirm"); v != "" {
		confirmed, _ = strconv.ParseBool(v)
	} else if v := r.Header.Get("X-Confirm"); v != "" {
		confirmed, _ = strconv.ParseBool(v)
	}

	return Static{
		Confirmed: confirmed,
		Answer:    r.URL.Query().Get("answer"),
	}
}
