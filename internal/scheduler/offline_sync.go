package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/config"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

type Syncer interface {
	Sync(ctx context.Context) (repository.SyncReport, error)
}

type OfflineSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// OfflineSyncService envia ao remoto as tabelas alteradas enquanto ele estava fora
type OfflineSyncService struct {
	scheduler           *gocron.Scheduler
	config              OfflineSyncConfig
	store               Syncer
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          repository.SyncReport
}

func NewOfflineSyncService(store Syncer, cfg *config.Config) *OfflineSyncService {
	syncConfig := OfflineSyncConfig{
		CronSchedule: cfg.OfflineSync.CronSchedule,
		SyncEnabled:  cfg.OfflineSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização offline carregada")

	return &OfflineSyncService{
		scheduler: gocron.NewScheduler(cfg.Location()),
		config:    syncConfig,
		store:     store,
		ctx:       context.Background(),
	}
}

func (s *OfflineSyncService) Start(ctx context.Context) error {
	s.ctx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização offline desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização offline")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncPending(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização offline: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização offline")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *OfflineSyncService) syncPending(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização offline já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logger := log.ForComponent(ctx, "offline_sync")
	startTime := time.Now()

	report, err := s.store.Sync(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro na sincronização offline")
		return
	}

	if report.Skipped {
		logger.Debug("Backend remoto indisponível, sincronização adiada")
	} else {
		logger.WithFields(log.Fields{
			"duration": time.Since(startTime).String(),
			"tables":   len(report.Tables),
		}).Info("Sincronização offline concluída")
	}

	s.syncMutex.Lock()
	s.lastReport = report
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia uma sincronização fora do agendamento
func (s *OfflineSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização offline já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização offline manual")
	go s.syncPending(s.ctx)
}

func (s *OfflineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report":            s.lastReport,
	}
}
