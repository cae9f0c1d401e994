package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/infrastructure/storage/kvs"
	"github.com/vfg2006/c4-store-api/infrastructure/storage/medium"
	"github.com/vfg2006/c4-store-api/internal/api/handler"
	"github.com/vfg2006/c4-store-api/internal/config"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
	"github.com/vfg2006/c4-store-api/internal/scheduler"
	"github.com/vfg2006/c4-store-api/internal/usecases/authenticating"
	"github.com/vfg2006/c4-store-api/internal/usecases/cataloging"
	"github.com/vfg2006/c4-store-api/internal/usecases/customer"
	"github.com/vfg2006/c4-store-api/internal/usecases/planning"
	"github.com/vfg2006/c4-store-api/internal/usecases/reporting"
	"github.com/vfg2006/c4-store-api/internal/usecases/seeding"
	"github.com/vfg2006/c4-store-api/internal/usecases/selling"
	"github.com/vfg2006/c4-store-api/internal/usecases/stocking"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

var testJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log.SetupTestLogger()

	cfg := &config.Config{
		App:       config.App{Version: "test"},
		Server:    config.Server{Host: "localhost", Port: "0"},
		Auth:      config.Auth{TokenTTL: time.Hour},
		Business:  config.Business{MinStockDefault: 5},
		Cache:     config.Cache{ReportsTTL: time.Minute},
		Cors:      config.Cors{AllowedOrigins: []string{"*"}},
		SecretKey: "segredo-de-teste",
	}

	kvsStore := kvs.New(medium.NewMemory(), kvs.Config{Prefix: "test_"})
	local := repository.NewLocalStore(kvsStore)
	store := repository.NewFallbackStore(nil, local, kvsStore, repository.FallbackOptions{})

	bus := events.NewBus()
	feed := notification.NewFeed(10)

	products := repository.NewProductRepository(store, bus, feed)
	clients := repository.NewClientRepository(store, bus, feed)
	sales := repository.NewSaleRepository(store, bus, feed)
	goals := repository.NewGoalRepository(store, bus, feed)
	expenses := repository.NewExpenseRepository(store, bus, feed)
	movements := repository.NewStockMovementRepository(store, bus, feed)
	users := repository.NewUserRepository(store, bus, feed)

	adjuster := stocking.NewAdjuster(products, movements, stocking.Config{})
	reports := reporting.NewService(sales, products, goals, expenses, kvsStore, reporting.Config{TTL: time.Minute, Location: time.UTC})
	bus.Subscribe("reporting", reports.Invalidate)

	server, err := New(cfg, Services{
		Authenticator: authenticating.NewService(users, cfg),
		Catalog:       cataloging.NewService(products, adjuster, 5),
		Clients:       customer.NewService(clients),
		Sales:         selling.NewService(sales, products, clients, adjuster, time.UTC),
		Planning:      planning.NewService(goals, expenses, time.UTC),
		Reports:       reports,
		Seeder:        seeding.NewService(store, products, clients, sales, goals, expenses, kvsStore),
		Backup:        kvsStore,
		Status:        store,
		Feed:          feed,
		Cron: handler.CronJobServices{
			OfflineSync: scheduler.NewOfflineSyncService(store, cfg),
			Reconnect:   scheduler.NewReconnectService(store, cfg),
			CacheSweep:  scheduler.NewCacheSweepService(kvsStore, cfg),
		},
	})
	require.NoError(t, err)

	return server.Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = testJSON.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, testJSON.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestServer_Healthcheck(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/healthcheck", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_FluxoDeVenda(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/v1/products", cataloging.ProductInput{
		Name:     "Blusa Rosa Feminina",
		Category: "roupas",
		Cost:     20,
		Price:    45,
		Stock:    15,
		MinStock: 5,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[domain.ProductView](t, rec)
	require.NotEmpty(t, product.ID)

	rec = doRequest(t, h, http.MethodPost, "/v1/sales", selling.SaleInput{
		ClientName:    "Maria Silva",
		Items:         []domain.SaleItem{{ProductID: product.ID, Quantity: 2, Price: 45}},
		Shipping:      12,
		Discount:      2,
		PaymentMethod: domain.PaymentMethodPix,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[selling.SaleResult](t, rec)
	require.NotNil(t, result.Sale)
	assert.Equal(t, float64(90), result.Sale.Subtotal)
	assert.Equal(t, float64(100), result.Sale.Total)
	assert.Equal(t, domain.SaleStatusCompleted, result.Sale.Status)
	assert.Equal(t, "Blusa Rosa Feminina", result.Sale.Items[0].ProductName)
	require.NotNil(t, result.Stock)
	assert.Equal(t, 0, result.Stock.Failed)

	rec = doRequest(t, h, http.MethodGet, "/v1/products/"+product.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 13, decode[domain.ProductView](t, rec).Stock)

	saleID := result.Sale.ID

	rec = doRequest(t, h, http.MethodPost, "/v1/sales/"+saleID+"/cancel", nil, nil)
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Equal(t, apiErrors.ErrConfirmationRequired, decode[apiErrors.APIError](t, rec).Code)

	rec = doRequest(t, h, http.MethodPost, "/v1/sales/"+saleID+"/cancel", nil, map[string]string{"X-Confirm": "true"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decode[selling.SaleResult](t, rec)
	assert.Equal(t, domain.SaleStatusCancelled, cancelled.Sale.Status)
}

func TestServer_Erros(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Produto inexistente",
			method: http.MethodGet,
			path:   "/v1/products/prod_inexistente",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, apiErrors.ErrNotFound, decode[apiErrors.APIError](t, rec).Code)
			},
		},
		{
			name:   "Venda inexistente",
			method: http.MethodGet,
			path:   "/v1/sales/sale_inexistente",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
		{
			name:   "Produto inválido",
			method: http.MethodPost,
			path:   "/v1/products",
			body:   cataloging.ProductInput{Name: "B", Price: -1},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decode[apiErrors.APIError](t, rec).Code)
			},
		},
		{
			name:   "Venda sem itens",
			method: http.MethodPost,
			path:   "/v1/sales",
			body:   selling.SaleInput{PaymentMethod: domain.PaymentMethodPix},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decode[apiErrors.APIError](t, rec).Code)
			},
		},
		{
			name:   "Período de estatística inválido",
			method: http.MethodGet,
			path:   "/v1/reports/sales-stats?period=decada",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decode[apiErrors.APIError](t, rec).Code)
			},
		},
		{
			name:   "Sem token segue como usuário demo",
			method: http.MethodGet,
			path:   "/v1/products",
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, tt.body, nil)
			tt.validate(t, rec)
		})
	}
}

func TestServer_BackupExigeDono(t *testing.T) {
	h := newTestHandler(t)

	owner := doRequest(t, h, http.MethodPost, "/v1/register", authenticating.RegisterInput{
		Name: "Dona", Email: "dona@loja.com", Password: "segredo123",
	}, nil)
	require.Equal(t, http.StatusCreated, owner.Code, owner.Body.String())
	ownerSession := decode[authenticating.Session](t, owner)
	assert.Equal(t, domain.RoleOwner, ownerSession.User.RoleID)

	seller := doRequest(t, h, http.MethodPost, "/v1/register", authenticating.RegisterInput{
		Name: "Vendedora", Email: "vendas@loja.com", Password: "segredo123",
	}, nil)
	require.Equal(t, http.StatusCreated, seller.Code, seller.Body.String())
	sellerSession := decode[authenticating.Session](t, seller)
	assert.Equal(t, domain.RoleSeller, sellerSession.User.RoleID)

	snapshot := kvs.Snapshot{Version: "test", Data: map[string]string{}}

	rec := doRequest(t, h, http.MethodPost, "/v1/backup", snapshot, map[string]string{
		"Authorization": "Bearer " + sellerSession.Token,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decode[apiErrors.APIError](t, rec).Code)

	rec = doRequest(t, h, http.MethodGet, "/v1/backup", nil, map[string]string{
		"Authorization": "Bearer " + sellerSession.Token,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rec = doRequest(t, h, http.MethodPost, "/v1/login", handler.LoginRequest{Email: "dona@loja.com", Password: "errada"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidCredentials, decode[apiErrors.APIError](t, rec).Code)

	rec = doRequest(t, h, http.MethodPost, "/v1/login", handler.LoginRequest{Email: "naoexiste@loja.com", Password: "segredo123"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/v1/login", handler.LoginRequest{Email: "dona@loja.com", Password: "segredo123"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[authenticating.Session](t, rec).Token)

	rec = doRequest(t, h, http.MethodGet, "/v1/me", nil, map[string]string{
		"Authorization": "Bearer invalido",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_Status(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/v1/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[repository.Status](t, rec)
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
}
