package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/c4-store-api/internal/config"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

type CachePurger interface {
	PurgeExpiredCache() (int, error)
}

type CacheSweepConfig struct {
	Interval time.Duration
	Enabled  bool
}

// CacheSweepService remove do KVS as entradas de cache vencidas
type CacheSweepService struct {
	scheduler   *gocron.Scheduler
	config      CacheSweepConfig
	cache       CachePurger
	mu          sync.Mutex
	lastSweepAt time.Time
	removed     int
}

func NewCacheSweepService(cache CachePurger, cfg *config.Config) *CacheSweepService {
	sweepConfig := CacheSweepConfig{
		Interval: cfg.CacheSweep.Interval,
		Enabled:  cfg.CacheSweep.Enabled,
	}
	if sweepConfig.Interval <= 0 {
		sweepConfig.Interval = time.Minute
	}

	logrus.WithFields(logrus.Fields{
		"interval": sweepConfig.Interval.String(),
		"enabled":  sweepConfig.Enabled,
	}).Info("Configuração da limpeza de cache carregada")

	return &CacheSweepService{
		scheduler: gocron.NewScheduler(cfg.Location()),
		config:    sweepConfig,
		cache:     cache,
	}
}

func (s *CacheSweepService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de cache desabilitada por configuração")
		return nil
	}

	logrus.WithField("interval", s.config.Interval.String()).Info("Iniciando agendador de limpeza de cache")

	_, err := s.scheduler.Every(s.config.Interval).WaitForSchedule().Do(func() {
		s.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de cache: %w", err)
	}

	s.scheduler.SingletonModeAll()
	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de cache")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CacheSweepService) sweep(ctx context.Context) {
	logger := log.ForComponent(ctx, "cache_sweep")

	removed, err := s.cache.PurgeExpiredCache()
	if err != nil {
		logger.WithError(err).Error("Erro ao limpar cache expirado")
		return
	}

	s.mu.Lock()
	s.lastSweepAt = time.Now()
	s.removed += removed
	s.mu.Unlock()

	if removed > 0 {
		logger.WithField("removed", removed).Debug("Entradas de cache expiradas removidas")
	}
}

func (s *CacheSweepService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"sweep_enabled":  s.config.Enabled,
		"sweep_interval": s.config.Interval.String(),
		"last_sweep_at":  s.lastSweepAt,
		"total_removed":  s.removed,
	}
}
