package stocking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/c4-store-api/infrastructure/repository/mocks"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func saleWith(items ...domain.SaleItem) *domain.Sale {
	return &domain.Sale{ID: "sale_1", Items: items}
}

func TestAdjuster_ApplySale(t *testing.T) {
	ctx := context.Background()
	var (
		mockProducts  *mocks.MockProductRepository
		mockMovements *mocks.MockStockMovementRepository
	)

	tests := []struct {
		name     string
		cfg      Config
		sale     *domain.Sale
		setup    func()
		validate func(t *testing.T, report Report)
	}{
		{
			name: "Baixa a quantidade vendida do estoque",
			sale: saleWith(domain.SaleItem{ProductID: "prod_1", Quantity: 2, Price: 45}),
			setup: func() {
				mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Name: "Blusa", Stock: 15}, nil)
				mockProducts.EXPECT().Update(ctx, "prod_1", domain.Record{"stock": 13}).Return(&domain.Product{ID: "prod_1", Stock: 13}, nil)
				mockMovements.EXPECT().Create(ctx, &domain.StockMovement{
					ProductID:     "prod_1",
					ProductName:   "Blusa",
					SaleID:        "sale_1",
					Type:          domain.MovementTypeSale,
					Delta:         -2,
					PreviousStock: 15,
					NewStock:      13,
				}).Return(&domain.StockMovement{ID: "mov_1"}, nil)
			},
			validate: func(t *testing.T, report Report) {
				assert.True(t, report.OK())
				require.Len(t, report.Items, 1)
				assert.Equal(t, 13, report.Items[0].NewStock)
			},
		},
		{
			name: "Estoque nunca fica negativo",
			sale: saleWith(domain.SaleItem{ProductID: "prod_2", Quantity: 50, Price: 25}),
			setup: func() {
				mockProducts.EXPECT().Get(ctx, "prod_2").Return(&domain.Product{ID: "prod_2", Name: "Brinco", Stock: 8}, nil)
				mockProducts.EXPECT().Update(ctx, "prod_2", domain.Record{"stock": 0}).Return(&domain.Product{ID: "prod_2"}, nil)
				mockMovements.EXPECT().Create(ctx, gomock.Any()).Return(&domain.StockMovement{}, nil)
			},
			validate: func(t *testing.T, report Report) {
				assert.True(t, report.OK())
				assert.Equal(t, 0, report.Items[0].NewStock)
				assert.Equal(t, -50, report.Items[0].Delta)
			},
		},
		{
			name: "Produto inexistente falha só o item e continua",
			sale: saleWith(
				domain.SaleItem{ProductID: "prod_x", Quantity: 1},
				domain.SaleItem{ProductID: "prod_1", Quantity: 1},
			),
			setup: func() {
				mockProducts.EXPECT().Get(ctx, "prod_x").Return(nil, nil)
				mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Stock: 5}, nil)
				mockProducts.EXPECT().Update(ctx, "prod_1", domain.Record{"stock": 4}).Return(&domain.Product{ID: "prod_1"}, nil)
				mockMovements.EXPECT().Create(ctx, gomock.Any()).Return(&domain.StockMovement{}, nil)
			},
			validate: func(t *testing.T, report Report) {
				assert.Equal(t, 1, report.Failed)
				assert.False(t, report.RolledBack)
				require.Len(t, report.Items, 2)
				assert.Equal(t, ErrProductNotFound.Error(), report.Items[0].Error)
				assert.Empty(t, report.Items[1].Error)
			},
		},
		{
			name: "Com rollback os itens aplicados voltam ao estoque anterior",
			cfg:  Config{RollbackOnFailure: true},
			sale: saleWith(
				domain.SaleItem{ProductID: "prod_1", Quantity: 3},
				domain.SaleItem{ProductID: "prod_2", Quantity: 1},
				domain.SaleItem{ProductID: "prod_3", Quantity: 1},
			),
			setup: func() {
				gomock.InOrder(
					mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Stock: 10}, nil),
					mockProducts.EXPECT().Update(ctx, "prod_1", domain.Record{"stock": 7}).Return(&domain.Product{ID: "prod_1"}, nil),
					mockProducts.EXPECT().Get(ctx, "prod_2").Return(nil, errors.New("meio indisponível")),
					mockProducts.EXPECT().Update(ctx, "prod_1", domain.Record{"stock": 10}).Return(&domain.Product{ID: "prod_1"}, nil),
				)
				mockMovements.EXPECT().Create(ctx, gomock.Any()).Return(&domain.StockMovement{}, nil).Times(2)
			},
			validate: func(t *testing.T, report Report) {
				assert.True(t, report.RolledBack)
				assert.Equal(t, 1, report.Failed)
				assert.Len(t, report.Items, 2)
			},
		},
		{
			name: "Falha ao registrar movimentação não desfaz o ajuste",
			sale: saleWith(domain.SaleItem{ProductID: "prod_1", Quantity: 1}),
			setup: func() {
				mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Stock: 2}, nil)
				mockProducts.EXPECT().Update(ctx, "prod_1", domain.Record{"stock": 1}).Return(&domain.Product{ID: "prod_1"}, nil)
				mockMovements.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("falha"))
			},
			validate: func(t *testing.T, report Report) {
				assert.True(t, report.OK())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockProducts = mocks.NewMockProductRepository(ctrl)
			mockMovements = mocks.NewMockStockMovementRepository(ctrl)
			tt.setup()

			adjuster := NewAdjuster(mockProducts, mockMovements, tt.cfg)
			tt.validate(t, adjuster.ApplySale(ctx, tt.sale))
		})
	}
}

func TestAdjuster_RestoreSale(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProducts := mocks.NewMockProductRepository(ctrl)
	mockMovements := mocks.NewMockStockMovementRepository(ctrl)

	mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Name: "Blusa", Stock: 13}, nil)
	mockProducts.EXPECT().Update(ctx, "prod_1", domain.Record{"stock": 15}).Return(&domain.Product{ID: "prod_1", Stock: 15}, nil)
	var recorded *domain.StockMovement
	mockMovements.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, m *domain.StockMovement) (*domain.StockMovement, error) {
			recorded = m
			return m, nil
		},
	)

	adjuster := NewAdjuster(mockProducts, mockMovements, Config{RestoreOnCancel: true})
	report := adjuster.RestoreSale(ctx, saleWith(domain.SaleItem{ProductID: "prod_1", Quantity: 2}))

	assert.True(t, report.OK())
	assert.True(t, adjuster.RestoreOnCancel())
	require.NotNil(t, recorded)
	assert.Equal(t, domain.MovementTypeCancelRestore, recorded.Type)
	assert.Equal(t, 2, recorded.Delta)
}

func TestAdjuster_Adjust(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProducts := mocks.NewMockProductRepository(ctrl)
	mockMovements := mocks.NewMockStockMovementRepository(ctrl)
	adjuster := NewAdjuster(mockProducts, mockMovements, Config{})

	_, err := adjuster.Adjust(ctx, "prod_1", 0)
	assert.ErrorIs(t, err, ErrInvalidDelta)

	mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Stock: 4}, nil)
	mockProducts.EXPECT().Update(ctx, "prod_1", domain.Record{"stock": 14}).Return(&domain.Product{ID: "prod_1", Stock: 14}, nil)
	mockMovements.EXPECT().Create(ctx, gomock.Any()).Return(&domain.StockMovement{}, nil)
	mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Stock: 14}, nil)

	product, err := adjuster.Adjust(ctx, "prod_1", 10)
	require.NoError(t, err)
	assert.Equal(t, 14, product.Stock)

	mockProducts.EXPECT().Get(ctx, "prod_9").Return(nil, nil)
	_, err = adjuster.Adjust(ctx, "prod_9", -1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
