package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/c4-store-api/infrastructure/repository/mocks"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestClientInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		input  ClientInput
		fields []string
	}{
		{name: "Somente o nome é obrigatório", input: ClientInput{Name: "Maria Silva"}},
		{name: "Sem nome", input: ClientInput{}, fields: []string{"name"}},
		{name: "E-mail inválido", input: ClientInput{Name: "Maria", Email: "maria@exemplo"}, fields: []string{"email"}},
		{name: "E-mail válido", input: ClientInput{Name: "Maria", Email: "maria@exemplo.com"}},
		{name: "Telefone com máscara", input: ClientInput{Name: "Maria", Phone: "(11) 98765-4321"}},
		{name: "Telefone fixo com dez dígitos", input: ClientInput{Name: "Maria", Phone: "1133334444"}},
		{name: "Telefone curto", input: ClientInput{Name: "Maria", Phone: "98765-4321"}, fields: []string{"phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.normalized().validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, verr.Fields, field)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClients := mocks.NewMockClientRepository(ctrl)
	mockClients.EXPECT().List(ctx, nil).Return([]*domain.Client{
		{ID: "client_1", Name: "Maria Silva", Email: "maria@exemplo.com"},
		{ID: "client_2", Name: "ana souza", Phone: "11987654321"},
		{ID: "client_3", Name: "Beatriz", Email: "bia@c4.com.br"},
	}, nil).Times(2)

	svc := NewService(mockClients)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "client_2", all[0].ID)
	assert.Equal(t, "client_3", all[1].ID)
	assert.Equal(t, "client_1", all[2].ID)

	found, err := svc.List(ctx, "C4.COM")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "client_3", found[0].ID)
}

func TestService_CreateEDelete(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClients := mocks.NewMockClientRepository(ctrl)
	svc := NewService(mockClients)

	mockClients.EXPECT().Create(ctx, &domain.Client{Name: "Maria Silva", Email: "maria@exemplo.com"}).
		Return(&domain.Client{ID: "client_1", Name: "Maria Silva"}, nil)

	created, err := svc.Create(ctx, ClientInput{Name: "  Maria Silva ", Email: "maria@exemplo.com"})
	require.NoError(t, err)
	assert.Equal(t, "client_1", created.ID)

	_, err = svc.Create(ctx, ClientInput{Email: "x"})
	assert.Error(t, err)

	err = svc.Delete(ctx, "client_1", dialog.Deny)
	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, apiErrors.ErrConfirmationRequired, clientErr.Code)

	mockClients.EXPECT().Delete(ctx, "client_1").Return(nil)
	assert.NoError(t, svc.Delete(ctx, "client_1", dialog.Static{Confirmed: true}))
}
