package cataloging

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/c4-store-api/infrastructure/repository/mocks"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/usecases/stocking"
	"go.uber.org/mock/gomock"
)

func catalog() []*domain.Product {
	return []*domain.Product{
		{ID: "prod_1", Name: "Blusa Rosa Feminina", Category: "roupas", Cost: 20, Price: 45, Stock: 15, MinStock: 5},
		{ID: "prod_2", Name: "Brinco Dourado", Category: "acessorios", Cost: 8, Price: 25, Stock: 3, MinStock: 5, Description: "Folheado a ouro"},
		{ID: "prod_3", Name: "Calça Jeans", Category: "roupas", Cost: 60, Price: 129.9, Stock: 5, MinStock: 5},
	}
}

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name     string
		filter   ListFilter
		expected []string
	}{
		{name: "Sem filtros mantém a ordem", expected: []string{"prod_1", "prod_2", "prod_3"}},
		{name: "Categoria", filter: ListFilter{Category: "roupas"}, expected: []string{"prod_1", "prod_3"}},
		{name: "Busca na descrição ignora maiúsculas", filter: ListFilter{Search: "OURO"}, expected: []string{"prod_2"}},
		{name: "Preço decrescente", filter: ListFilter{Sort: "price", Order: "desc"}, expected: []string{"prod_3", "prod_1", "prod_2"}},
		{name: "Estoque crescente", filter: ListFilter{Sort: "stock"}, expected: []string{"prod_2", "prod_3", "prod_1"}},
		{name: "Nome", filter: ListFilter{Sort: "name"}, expected: []string{"prod_1", "prod_2", "prod_3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(catalog(), tt.filter)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		input  ProductInput
		fields []string
	}{
		{name: "Produto válido", input: ProductInput{Name: "Blusa", Price: 45, Cost: 20, Stock: 15}},
		{name: "Nome curto", input: ProductInput{Name: "B"}, fields: []string{"name"}},
		{name: "Nome longo", input: ProductInput{Name: strings.Repeat("a", 101)}, fields: []string{"name"}},
		{name: "Preço acima do máximo", input: ProductInput{Name: "Blusa", Price: 100000}, fields: []string{"price"}},
		{name: "Valores negativos", input: ProductInput{Name: "Blusa", Cost: -1, Stock: -1, MinStock: -2}, fields: []string{"cost", "stock", "minStock"}},
		{name: "Descrição longa", input: ProductInput{Name: "Blusa", Description: strings.Repeat("x", 501)}, fields: []string{"description"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.validate()
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

func TestService_ListECategorias(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProducts := mocks.NewMockProductRepository(ctrl)
	mockProducts.EXPECT().List(ctx, nil).Return(catalog(), nil).Times(3)

	svc := NewService(mockProducts, nil, 5)

	views, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, 55.56, views[0].Margin)
	assert.Equal(t, domain.StockStatusOK, views[0].StockStatus)
	assert.Equal(t, domain.StockStatusLow, views[1].StockStatus)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"acessorios", "roupas"}, categories)

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "prod_2", low[0].ID)
	assert.Equal(t, "prod_3", low[1].ID)
}

func TestService_Duplicate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		dlg      dialog.Dialog
		setup    func(products *mocks.MockProductRepository)
		validate func(t *testing.T, view *domain.ProductView, err error)
	}{
		{
			name: "Nome padrão acrescenta Cópia",
			id:   "prod_1",
			dlg:  dialog.Static{},
			setup: func(products *mocks.MockProductRepository) {
				products.EXPECT().Get(ctx, "prod_1").Return(catalog()[0], nil)
				products.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Product) (*domain.Product, error) {
						p.ID = "prod_4"
						return p, nil
					},
				)
			},
			validate: func(t *testing.T, view *domain.ProductView, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Blusa Rosa Feminina (Cópia)", view.Name)
				assert.Equal(t, 15, view.Stock)
				assert.Equal(t, "prod_4", view.ID)
			},
		},
		{
			name: "Nome informado pelo usuário",
			id:   "prod_1",
			dlg:  dialog.Static{Answer: "Blusa Azul"},
			setup: func(products *mocks.MockProductRepository) {
				products.EXPECT().Get(ctx, "prod_1").Return(catalog()[0], nil)
				products.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.Product) (*domain.Product, error) {
						return p, nil
					},
				)
			},
			validate: func(t *testing.T, view *domain.ProductView, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Blusa Azul", view.Name)
			},
		},
		{
			name: "Prompt cancelado não cria produto",
			id:   "prod_1",
			dlg:  dialog.Deny,
			setup: func(products *mocks.MockProductRepository) {
				products.EXPECT().Get(ctx, "prod_1").Return(catalog()[0], nil)
			},
			validate: func(t *testing.T, view *domain.ProductView, err error) {
				assert.Nil(t, view)
				assert.ErrorIs(t, err, ErrDuplicationCancelled)
			},
		},
		{
			name: "Produto inexistente",
			id:   "prod_9",
			dlg:  dialog.Static{},
			setup: func(products *mocks.MockProductRepository) {
				products.EXPECT().Get(ctx, "prod_9").Return(nil, nil)
			},
			validate: func(t *testing.T, view *domain.ProductView, err error) {
				assert.ErrorIs(t, err, ErrProductNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockProducts := mocks.NewMockProductRepository(ctrl)
			tt.setup(mockProducts)

			view, err := NewService(mockProducts, nil, 5).Duplicate(ctx, tt.id, tt.dlg)
			tt.validate(t, view, err)
		})
	}
}

func TestService_DeleteExigeConfirmacao(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProducts := mocks.NewMockProductRepository(ctrl)
	svc := NewService(mockProducts, nil, 5)

	assert.ErrorIs(t, svc.Delete(ctx, "prod_1", dialog.Deny), ErrDeletionNotConfirmed)

	mockProducts.EXPECT().Delete(ctx, "prod_1").Return(nil)
	assert.NoError(t, svc.Delete(ctx, "prod_1", dialog.Static{Confirmed: true}))
}

func TestService_AdjustStock(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProducts := mocks.NewMockProductRepository(ctrl)
	mockMovements := mocks.NewMockStockMovementRepository(ctrl)
	svc := NewService(mockProducts, stocking.NewAdjuster(mockProducts, mockMovements, stocking.Config{}), 5)

	mockProducts.EXPECT().Get(ctx, "prod_2").Return(catalog()[1], nil)
	mockProducts.EXPECT().Update(ctx, "prod_2", domain.Record{"stock": 13}).Return(&domain.Product{ID: "prod_2", Stock: 13}, nil)
	mockMovements.EXPECT().Create(ctx, gomock.Any()).Return(&domain.StockMovement{}, nil)
	mockProducts.EXPECT().Get(ctx, "prod_2").Return(&domain.Product{ID: "prod_2", Stock: 13, MinStock: 5}, nil)

	view, err := svc.AdjustStock(ctx, "prod_2", 10)
	require.NoError(t, err)
	assert.Equal(t, 13, view.Stock)
	assert.Equal(t, domain.StockStatusOK, view.StockStatus)
}
