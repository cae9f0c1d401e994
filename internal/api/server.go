package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/c4-store-api/internal/api/handler"
	"github.com/vfg2006/c4-store-api/internal/api/handler/router"
	"github.com/vfg2006/c4-store-api/internal/config"
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

type Server struct {
	httpServer *http.Server
}

// Services reúne os casos de uso e a infraestrutura expostos pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Catalog       cataloging.CatalogService
	Clients       customer.ClientService
	Sales         selling.SaleService
	Planning      planning.PlanningService
	Reports       reporting.ReportService
	Seeder        seeding.Seeder
	Backup        handler.BackupStore
	Status        handler.StatusSource
	Feed          *notification.Feed
	Cron          handler.CronJobServices
}

func New(config *config.Config, services Services) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(config.App.Version)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Products(services.Catalog)...),
		router.WithRoutes(handler.Clients(services.Clients)...),
		router.WithRoutes(handler.Sales(services.Sales)...),
		router.WithRoutes(handler.Planning(services.Planning)...),
		router.WithRoutes(handler.Reports(services.Reports)...),
		router.WithRoutes(handler.Storage(services.Backup, services.Status, services.Feed)...),
		router.WithRoutes(handler.Demo(services.Seeder)...),
		router.WithRoutes(handler.CronJobs(services.Cron)...),
	)
	logrus.WithField("routes", len(rt.Routes())).Debug("Rotas registradas")

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator, config.Auth.Required),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
