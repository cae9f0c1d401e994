package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/c4-store-api/infrastructure/database/postgres"
	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/infrastructure/storage/kvs"
	"github.com/vfg2006/c4-store-api/infrastructure/storage/medium"
	"github.com/vfg2006/c4-store-api/internal/api"
	"github.com/vfg2006/c4-store-api/internal/api/handler"
	"github.com/vfg2006/c4-store-api/internal/config"
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
)

const notificationFeedSize = 50

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kvsStore := kvs.New(openMedium(cfg.Storage), kvs.Config{
		Prefix:          cfg.Storage.Prefix,
		Version:         cfg.App.Version,
		DefaultCacheTTL: cfg.Cache.DefaultTTL,
	})
	if err := kvsStore.UpdateLastAccess(); err != nil {
		logrus.WithError(err).Warn("Erro ao registrar último acesso ao armazenamento local")
	}
	local := repository.NewLocalStore(kvsStore)

	var remote repository.Remote
	if conn := pgconn(cfg.Database); conn != nil {
		defer conn.Close()
		remote = repository.NewRemoteStore(conn)
	}

	store := repository.NewFallbackStore(remote, local, kvsStore, repository.FallbackOptions{
		PingTimeout: cfg.Database.PingTimeout,
	})
	if store.Init(ctx) {
		logrus.Info("Backend remoto disponível, usando PostgreSQL")
	} else {
		logrus.Info("Usando armazenamento local")
	}

	bus := events.NewBus()
	feed := notification.NewFeed(notificationFeedSize)

	productRepo := repository.NewProductRepository(store, bus, feed)
	clientRepo := repository.NewClientRepository(store, bus, feed)
	saleRepo := repository.NewSaleRepository(store, bus, feed)
	goalRepo := repository.NewGoalRepository(store, bus, feed)
	expenseRepo := repository.NewExpenseRepository(store, bus, feed)
	movementRepo := repository.NewStockMovementRepository(store, bus, feed)
	userRepo := repository.NewUserRepository(store, bus, feed)

	adjuster := stocking.NewAdjuster(productRepo, movementRepo, stocking.Config{
		RestoreOnCancel:   cfg.Stock.RestoreOnCancel,
		RollbackOnFailure: cfg.Stock.RollbackOnFailure,
	})

	loc := cfg.Location()

	authenticator := authenticating.NewService(userRepo, cfg)
	catalogService := cataloging.NewService(productRepo, adjuster, cfg.Business.MinStockDefault)
	clientService := customer.NewService(clientRepo)
	saleService := selling.NewService(saleRepo, productRepo, clientRepo, adjuster, loc)
	planningService := planning.NewService(goalRepo, expenseRepo, loc)
	reportService := reporting.NewService(saleRepo, productRepo, goalRepo, expenseRepo, kvsStore, reporting.Config{
		TTL:        cfg.Cache.ReportsTTL,
		DefaultMin: cfg.Business.MinStockDefault,
		Location:   loc,
	})
	seeder := seeding.NewService(store, productRepo, clientRepo, saleRepo, goalRepo, expenseRepo, kvsStore)

	// Relatórios em cache são descartados a cada alteração dos dados de origem
	bus.Subscribe("reporting", reportService.Invalidate)
	bus.Subscribe("audit", func(ctx context.Context, event events.DataChanged) error {
		logrus.WithFields(logrus.Fields{
			"data_type": event.DataType,
			"action":    event.Action,
			"id":        event.ID,
		}).Debug("Dados alterados")
		return nil
	})

	if cfg.Demo.SeedOnStart {
		if _, err := seeder.Load(ctx, false); err != nil {
			logrus.WithError(err).Error("Erro ao instalar dados de demonstração")
		}
	}

	// Inicializa as rotinas agendadas
	reconnectService := scheduler.NewReconnectService(store, cfg)
	cacheSweepService := scheduler.NewCacheSweepService(kvsStore, cfg)
	offlineSyncService := scheduler.NewOfflineSyncService(store, cfg)
	reconnectService.OnReconnect(offlineSyncService.TriggerManualSync)

	if err := reconnectService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de reconexão")
	} else {
		logrus.Info("Agendador de reconexão iniciado com sucesso")
	}

	if err := cacheSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de cache")
	} else {
		logrus.Info("Agendador de limpeza de cache iniciado com sucesso")
	}

	if err := offlineSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização offline")
	} else {
		logrus.Info("Agendador de sincronização offline iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Catalog:       catalogService,
		Clients:       clientService,
		Sales:         saleService,
		Planning:      planningService,
		Reports:       reportService,
		Seeder:        seeder,
		Backup:        kvsStore,
		Status:        store,
		Feed:          feed,
		Cron: handler.CronJobServices{
			OfflineSync: offlineSyncService,
			Reconnect:   reconnectService,
			CacheSweep:  cacheSweepService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// openMedium abre o meio do armazenamento local. Sem meio disponível a API sobe com um
// armazenamento que falha em todas as operações.
func openMedium(cfg config.Storage) medium.Medium {
	if cfg.Driver == "memory" {
		return medium.NewMemory().WithQuota(cfg.QuotaBytes)
	}

	file, err := medium.OpenFile(cfg.Path, medium.FileOptions{QuotaBytes: cfg.QuotaBytes})
	if err != nil {
		logrus.WithError(errors.Wrapf(err, "arquivo %s", cfg.Path)).Error("Armazenamento local indisponível")
		return medium.Unavailable()
	}

	logrus.WithField("path", cfg.Path).Info("Armazenamento local aberto")
	return file
}

// pgconn abre a conexão com o banco de dados quando o backend remoto está habilitado.
// A disponibilidade é verificada pelo armazenamento com fallback.
func pgconn(dbConfig config.Database) *postgres.Connection {
	if !dbConfig.Enabled {
		logrus.Info("Backend remoto desabilitado")
		return nil
	}

	conn, err := postgres.Open(dbConfig)
	if err != nil {
		logrus.WithError(errors.Wrap(err, "erro ao abrir conexão com PostgreSQL")).Error("Seguindo apenas com o armazenamento local")
		return nil
	}

	return conn
}
