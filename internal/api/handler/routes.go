package handler

import (
	"net/http"

	"github.com/vfg2006/c4-store-api/internal/api/handler/router"
	"github.com/vfg2006/c4-store-api/internal/notification"
	"github.com/vfg2006/c4-store-api/internal/usecases/authenticating"
	"github.com/vfg2006/c4-store-api/internal/usecases/cataloging"
	"github.com/vfg2006/c4-store-api/internal/usecases/customer"
	"github.com/vfg2006/c4-store-api/internal/usecases/planning"
	"github.com/vfg2006/c4-store-api/internal/usecases/reporting"
	"github.com/vfg2006/c4-store-api/internal/usecases/seeding"
	"github.com/vfg2006/c4-store-api/internal/usecases/selling"
	"github.com/vfg2006/c4-store-api/pkg/middleware"
)

func Healthcheck(version string) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(version),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/login/demo",
			Method:  http.MethodPost,
			Handler: LoginDemo(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Products(service cataloging.CatalogService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/products",
			Method:  http.MethodGet,
			Handler: ListProducts(service),
		},
		{
			Path:    "/v1/products",
			Method:  http.MethodPost,
			Handler: CreateProduct(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodGet,
			Handler: GetProduct(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodPut,
			Handler: UpdateProduct(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodDelete,
			Handler: DeleteProduct(service),
		},
		{
			Path:    "/v1/products/:id/duplicate",
			Method:  http.MethodPost,
			Handler: DuplicateProduct(service),
		},
		{
			Path:    "/v1/products/:id/stock",
			Method:  http.MethodPost,
			Handler: AdjustProductStock(service),
		},
		{
			Path:    "/v1/products/:id/movements",
			Method:  http.MethodGet,
			Handler: ProductMovements(service),
		},
		{
			Path:    "/v1/product-categories",
			Method:  http.MethodGet,
			Handler: ProductCategories(service),
		},
		{
			Path:    "/v1/stock/low",
			Method:  http.MethodGet,
			Handler: LowStockProducts(service),
		},
	}
}

func Clients(service customer.ClientService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/clients",
			Method:  http.MethodGet,
			Handler: ListClients(service),
		},
		{
			Path:    "/v1/clients",
			Method:  http.MethodPost,
			Handler: CreateClient(service),
		},
		{
			Path:    "/v1/clients/:id",
			Method:  http.MethodGet,
			Handler: GetClient(service),
		},
		{
			Path:    "/v1/clients/:id",
			Method:  http.MethodPut,
			Handler: UpdateClient(service),
		},
		{
			Path:    "/v1/clients/:id",
			Method:  http.MethodDelete,
			Handler: DeleteClient(service),
		},
	}
}

func Sales(service selling.SaleService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: CreateSale(service),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodGet,
			Handler: GetSale(service),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodPut,
			Handler: UpdateSale(service),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSale(service),
		},
		{
			Path:    "/v1/sales/:id/complete",
			Method:  http.MethodPost,
			Handler: CompleteSale(service),
		},
		{
			Path:    "/v1/sales/:id/cancel",
			Method:  http.MethodPost,
			Handler: CancelSale(service),
		},
	}
}

func Planning(service planning.PlanningService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/goals",
			Method:  http.MethodGet,
			Handler: ListGoals(service),
		},
		{
			Path:    "/v1/goals",
			Method:  http.MethodPost,
			Handler: SaveGoal(service),
		},
		{
			Path:    "/v1/goals/:id",
			Method:  http.MethodPut,
			Handler: SaveGoal(service),
		},
		{
			Path:    "/v1/expenses",
			Method:  http.MethodGet,
			Handler: ListExpenses(service),
		},
		{
			Path:    "/v1/expenses",
			Method:  http.MethodPost,
			Handler: CreateExpense(service),
		},
		{
			Path:    "/v1/expenses/:id",
			Method:  http.MethodDelete,
			Handler: DeleteExpense(service),
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/reports/sales-stats",
			Method:  http.MethodGet,
			Handler: GetSalesStats(service),
		},
	}
}

func Storage(store BackupStore, status StatusSource, feed *notification.Feed) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/backup",
			Method:  http.MethodGet,
			Handler: ExportBackup(store),
		},
		{
			Path:        "/v1/backup",
			Method:      http.MethodPost,
			Handler:     ImportBackup(store, feed),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
		{
			Path:    "/v1/storage/stats",
			Method:  http.MethodGet,
			Handler: StorageStats(store),
		},
		{
			Path:    "/v1/storage/cache",
			Method:  http.MethodDelete,
			Handler: ClearCache(store),
		},
		{
			Path:    "/v1/status",
			Method:  http.MethodGet,
			Handler: StoreStatus(status),
		},
		{
			Path:    "/v1/notifications",
			Method:  http.MethodGet,
			Handler: Notifications(feed),
		},
	}
}

func Demo(seeder seeding.Seeder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/demo/load",
			Method:      http.MethodPost,
			Handler:     LoadDemo(seeder),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
