package dialog

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		header    string
		confirmed bool
		answer    string
	}{
		{name: "Sem confirmação explícita recusa", url: "/v1/sales/1/cancel", confirmed: false, answer: "padrão"},
		{name: "Confirmação por query", url: "/v1/sales/1/cancel?confirm=true", confirmed: true, answer: "padrão"},
		{name: "Confirmação por cabeçalho", url: "/v1/sales/1/cancel", header: "true", confirmed: true, answer: "padrão"},
		{name: "Resposta do prompt por query", url: "/v1/products/1/duplicate?answer=Blusa%20Nova", confirmed: false, answer: "Blusa Nova"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.url, nil)
			if tt.header != "" {
				req.Header.Set("X-Confirm", tt.header)
			}

			d := FromRequest(req)
			assert.Equal(t, tt.confirmed, d.Confirm(context.Background(), "Confirmar?"))

			answer, ok := d.Prompt(context.Background(), "Nome?", "padrão")
			assert.True(t, ok)
			assert.Equal(t, tt.answer, answer)
		})
	}
}
