package selling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/c4-store-api/infrastructure/repository/mocks"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/usecases/stocking"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type stubAdjuster struct {
	restoreOnCancel bool
	applied         []*domain.Sale
	restored        []*domain.Sale
}

func (s *stubAdjuster) ApplySale(_ context.Context, sale *domain.Sale) stocking.Report {
	s.applied = append(s.applied, sale)
	return stocking.Report{SaleID: sale.ID}
}

func (s *stubAdjuster) RestoreSale(_ context.Context, sale *domain.Sale) stocking.Report {
	s.restored = append(s.restored, sale)
	return stocking.Report{SaleID: sale.ID}
}

func (s *stubAdjuster) Adjust(context.Context, string, int) (*domain.Product, error) {
	return nil, nil
}

func (s *stubAdjuster) RestoreOnCancel() bool {
	return s.restoreOnCancel
}

func (s *stubAdjuster) Movements(context.Context, string) ([]*domain.StockMovement, error) {
	return nil, nil
}

func capture(target **domain.Sale) func(context.Context, *domain.Sale) (*domain.Sale, error) {
	return func(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
		saved := *sale
		saved.ID = "sale_1"
		*target = &saved
		return &saved, nil
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	var (
		mockSales    *mocks.MockSaleRepository
		mockProducts *mocks.MockProductRepository
		mockClients  *mocks.MockClientRepository
		adjuster     *stubAdjuster
		saved        *domain.Sale
	)

	tests := []struct {
		name     string
		input    SaleInput
		setup    func()
		validate func(t *testing.T, result *SaleResult, err error)
	}{
		{
			name: "Venda com frete e desconto calcula os totais e baixa o estoque",
			input: SaleInput{
				ClientID:      "client_1",
				Items:         []domain.SaleItem{{ProductID: "prod_1", Quantity: 2, Price: 45}},
				Shipping:      15,
				Discount:      3,
				PaymentMethod: domain.PaymentMethodPix,
			},
			setup: func() {
				mockProducts.EXPECT().Get(ctx, "prod_1").Return(&domain.Product{ID: "prod_1", Name: "Blusa Rosa Feminina"}, nil)
				mockClients.EXPECT().Get(ctx, "client_1").Return(&domain.Client{ID: "client_1", Name: "Maria Silva"}, nil)
				mockSales.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(capture(&saved))
			},
			validate: func(t *testing.T, result *SaleResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, float64(90), result.Sale.Subtotal)
				assert.Equal(t, float64(102), result.Sale.Total)
				assert.Equal(t, domain.SaleStatusCompleted, result.Sale.Status)
				assert.Equal(t, "Concluída", result.Sale.StatusLabel)
				assert.Equal(t, "PIX", result.Sale.PaymentMethodLabel)
				assert.Equal(t, "Maria Silva", saved.ClientName)
				assert.Equal(t, "Blusa Rosa Feminina", saved.Items[0].ProductName)
				require.Len(t, adjuster.applied, 1)
				assert.Equal(t, "sale_1", adjuster.applied[0].ID)
			},
		},
		{
			name: "Sem nomes conhecidos usa os padrões",
			input: SaleInput{
				Items:         []domain.SaleItem{{ProductID: "prod_x", Quantity: 1, Price: 10}},
				PaymentMethod: domain.PaymentMethodCash,
				Status:        domain.SaleStatusPending,
			},
			setup: func() {
				mockProducts.EXPECT().Get(ctx, "prod_x").Return(nil, nil)
				mockSales.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(capture(&saved))
			},
			validate: func(t *testing.T, result *SaleResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.DefaultSaleClientName, saved.ClientName)
				assert.Equal(t, domain.DefaultSaleProductName, saved.Items[0].ProductName)
				assert.Equal(t, domain.SaleStatusPending, result.Sale.Status)
			},
		},
		{
			name: "Venda sem itens é rejeitada sem gravar",
			input: SaleInput{
				PaymentMethod: domain.PaymentMethodPix,
				Shipping:      -1,
			},
			setup: func() {},
			validate: func(t *testing.T, result *SaleResult, err error) {
				assert.Nil(t, result)
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "Adicione pelo menos um produto", verr.Fields["items"])
				assert.Equal(t, "Valor mínimo: 0", verr.Fields["shipping"])
				assert.Empty(t, adjuster.applied)
			},
		},
		{
			name: "Quantidade acima do limite é rejeitada",
			input: SaleInput{
				Items:         []domain.SaleItem{{ProductID: "prod_1", Quantity: 10000, Price: 1}},
				PaymentMethod: domain.PaymentMethodCard,
			},
			setup: func() {},
			validate: func(t *testing.T, result *SaleResult, err error) {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, "items[0].quantity")
			},
		},
		{
			name: "Falha ao gravar não ajusta o estoque",
			input: SaleInput{
				ClientName:    "Ana",
				Items:         []domain.SaleItem{{ProductID: "prod_1", ProductName: "Brinco", Quantity: 1, Price: 25}},
				PaymentMethod: domain.PaymentMethodPix,
			},
			setup: func() {
				mockSales.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("meio indisponível"))
			},
			validate: func(t *testing.T, result *SaleResult, err error) {
				assert.ErrorIs(t, err, ErrCreateSale)
				assert.Empty(t, adjuster.applied)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSales = mocks.NewMockSaleRepository(ctrl)
			mockProducts = mocks.NewMockProductRepository(ctrl)
			mockClients = mocks.NewMockClientRepository(ctrl)
			adjuster = &stubAdjuster{}
			saved = nil
			tt.setup()

			svc := NewService(mockSales, mockProducts, mockClients, adjuster, time.UTC)
			result, err := svc.Create(ctx, tt.input)
			tt.validate(t, result, err)
		})
	}
}

func TestService_UpdateRecalculaTotais(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSales := mocks.NewMockSaleRepository(ctrl)
	adjuster := &stubAdjuster{}
	svc := NewService(mockSales, mocks.NewMockProductRepository(ctrl), mocks.NewMockClientRepository(ctrl), adjuster, time.UTC)

	current := &domain.Sale{ID: "sale_1", ClientName: "Maria", Status: domain.SaleStatusCancelled, Total: 102}
	mockSales.EXPECT().Get(ctx, "sale_1").Return(current, nil)

	var patch domain.Record
	mockSales.EXPECT().Update(ctx, "sale_1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, p domain.Record) (*domain.Sale, error) {
			patch = p
			return &domain.Sale{
				ID:       "sale_1",
				Subtotal: p["subtotal"].(float64),
				Total:    p["total"].(float64),
				Status:   p["status"].(domain.SaleStatus),
			}, nil
		},
	)

	view, err := svc.Update(ctx, "sale_1", SaleInput{
		ClientName:    "Maria",
		Items:         []domain.SaleItem{{ProductID: "prod_1", ProductName: "Blusa", Quantity: 3, Price: 19.9}},
		Shipping:      5,
		Discount:      0.7,
		PaymentMethod: domain.PaymentMethodCard,
		Status:        domain.SaleStatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, 59.7, patch["subtotal"])
	assert.Equal(t, float64(64), patch["total"])
	assert.Equal(t, domain.SaleStatusCompleted, view.Status)
	assert.Empty(t, adjuster.applied)
	assert.Empty(t, adjuster.restored)
}

func TestService_UpdateInexistente(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSales := mocks.NewMockSaleRepository(ctrl)
	svc := NewService(mockSales, mocks.NewMockProductRepository(ctrl), mocks.NewMockClientRepository(ctrl), &stubAdjuster{}, time.UTC)

	mockSales.EXPECT().Get(ctx, "sale_9").Return(nil, nil)

	view, err := svc.Update(ctx, "sale_9", SaleInput{
		ClientName:    "Maria",
		Items:         []domain.SaleItem{{ProductID: "prod_1", ProductName: "Blusa", Quantity: 1, Price: 10}},
		PaymentMethod: domain.PaymentMethodPix,
	})
	assert.NoError(t, err)
	assert.Nil(t, view)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		dlg             dialog.Dialog
		restoreOnCancel bool
		current         domain.SaleStatus
		validate        func(t *testing.T, result *SaleResult, err error, adjuster *stubAdjuster)
	}{
		{
			name:    "Sem confirmação não altera a venda",
			dlg:     dialog.Deny,
			current: domain.SaleStatusCompleted,
			validate: func(t *testing.T, result *SaleResult, err error, adjuster *stubAdjuster) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrCancellationNotConfirmed)
				var saleErr *SaleError
				require.ErrorAs(t, err, &saleErr)
				assert.Equal(t, apiErrors.ErrConfirmationRequired, saleErr.Code)
			},
		},
		{
			name:    "Por padrão cancelar não devolve estoque",
			dlg:     dialog.Static{Confirmed: true},
			current: domain.SaleStatusCompleted,
			validate: func(t *testing.T, result *SaleResult, err error, adjuster *stubAdjuster) {
				require.NoError(t, err)
				assert.Equal(t, domain.SaleStatusCancelled, result.Sale.Status)
				assert.Nil(t, result.Stock)
				assert.Empty(t, adjuster.restored)
			},
		},
		{
			name:            "Com a política ativa devolve o estoque",
			dlg:             dialog.Static{Confirmed: true},
			restoreOnCancel: true,
			current:         domain.SaleStatusCompleted,
			validate: func(t *testing.T, result *SaleResult, err error, adjuster *stubAdjuster) {
				require.NoError(t, err)
				require.NotNil(t, result.Stock)
				assert.Len(t, adjuster.restored, 1)
			},
		},
		{
			name:            "Venda já cancelada não devolve de novo",
			dlg:             dialog.Static{Confirmed: true},
			restoreOnCancel: true,
			current:         domain.SaleStatusCancelled,
			validate: func(t *testing.T, result *SaleResult, err error, adjuster *stubAdjuster) {
				require.NoError(t, err)
				assert.Empty(t, adjuster.restored)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSales := mocks.NewMockSaleRepository(ctrl)
			adjuster := &stubAdjuster{restoreOnCancel: tt.restoreOnCancel}
			svc := NewService(mockSales, mocks.NewMockProductRepository(ctrl), mocks.NewMockClientRepository(ctrl), adjuster, time.UTC)

			mockSales.EXPECT().Get(ctx, "sale_1").Return(&domain.Sale{ID: "sale_1", Status: tt.current}, nil)
			mockSales.EXPECT().Update(ctx, "sale_1", domain.Record{"status": domain.SaleStatusCancelled}).
				Return(&domain.Sale{ID: "sale_1", Status: domain.SaleStatusCancelled}, nil).
				AnyTimes()

			result, err := svc.Cancel(ctx, "sale_1", tt.dlg)
			tt.validate(t, result, err, adjuster)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSales := mocks.NewMockSaleRepository(ctrl)
	svc := NewService(mockSales, mocks.NewMockProductRepository(ctrl), mocks.NewMockClientRepository(ctrl), &stubAdjuster{}, time.UTC)

	err := svc.Delete(ctx, "sale_1", dialog.Deny)
	assert.ErrorIs(t, err, ErrDeletionNotConfirmed)

	mockSales.EXPECT().Delete(ctx, "sale_1").Return(nil)
	assert.NoError(t, svc.Delete(ctx, "sale_1", dialog.Static{Confirmed: true}))
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)
	mockSales := mocks.NewMockSaleRepository(ctrl)
	svc := NewService(mockSales, mocks.NewMockProductRepository(ctrl), mocks.NewMockClientRepository(ctrl), &stubAdjuster{}, time.UTC).
		WithClock(func() time.Time { return now })

	sales := []*domain.Sale{
		{ID: "sale_1", ClientName: "Maria Silva", Total: 100, Status: domain.SaleStatusCompleted, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "sale_2", ClientName: "Ana Souza", Total: 50, Status: domain.SaleStatusCompleted, CreatedAt: now.AddDate(0, 0, -3)},
		{ID: "sale_3", ClientName: "Maria Lima", Total: 80, Status: domain.SaleStatusCancelled, CreatedAt: now.AddDate(0, 0, -10)},
		{ID: "sale_4", ClientName: "Joana", Total: 20, Status: domain.SaleStatusPending, CreatedAt: now.AddDate(0, -2, 0)},
	}
	mockSales.EXPECT().List(ctx, nil).Return(sales, nil).AnyTimes()

	tests := []struct {
		name     string
		filter   ListFilter
		expected []string
	}{
		{name: "Sem filtros ordena por data decrescente", expected: []string{"sale_1", "sale_2", "sale_3", "sale_4"}},
		{name: "Hoje", filter: ListFilter{Range: RangeToday}, expected: []string{"sale_1"}},
		{name: "Semana são os últimos sete dias", filter: ListFilter{Range: RangeWeek}, expected: []string{"sale_1", "sale_2"}},
		{name: "Mês corrente", filter: ListFilter{Range: RangeMonth}, expected: []string{"sale_1", "sale_2", "sale_3"}},
		{name: "Status", filter: ListFilter{Status: domain.SaleStatusCancelled}, expected: []string{"sale_3"}},
		{name: "Busca pelo cliente", filter: ListFilter{Search: "maria"}, expected: []string{"sale_1", "sale_3"}},
		{name: "Total crescente", filter: ListFilter{Sort: "total", Order: "asc"}, expected: []string{"sale_4", "sale_2", "sale_3", "sale_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(result.Sales))
			for _, sale := range result.Sales {
				ids = append(ids, sale.ID)
			}
			assert.Equal(t, tt.expected, ids)
			assert.Equal(t, len(tt.expected), result.Summary.TotalOrders)
		})
	}

	result, err := svc.List(ctx, ListFilter{Range: RangeWeek})
	require.NoError(t, err)
	assert.Equal(t, float64(150), result.Summary.TotalSales)
	assert.Equal(t, float64(75), result.Summary.AverageTicket)
}
