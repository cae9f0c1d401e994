// Package scheduler contém as rotinas agendadas do armazenamento
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

// Reconnector é a parte do FallbackStore que reavalia a conexão com o remoto
type Reconnector interface {
	Init(ctx context.Context) bool
	Connected() bool
	Configured() bool
}

type ReconnectConfig struct {
	Interval time.Duration
	Enabled  bool
}

// ReconnectService verifica periodicamente o backend remoto e avisa quando ele volta
type ReconnectService struct {
	scheduler       *gocron.Scheduler
	config          ReconnectConfig
	store           Reconnector
	onReconnect     func()
	mu              sync.Mutex
	lastCheckAt     time.Time
	lastConnectedAt time.Time
}

func NewReconnectService(store Reconnector, cfg *config.Config) *ReconnectService {
	reconnectConfig := ReconnectConfig{
		Interval: cfg.Reconnect.Interval,
		Enabled:  cfg.Reconnect.Enabled,
	}
	if reconnectConfig.Interval <= 0 {
		reconnectConfig.Interval = 30 * time.Second
	}

	logrus.WithFields(logrus.Fields{
		"interval": reconnectConfig.Interval.String(),
		"enabled":  reconnectConfig.Enabled,
	}).Info("Configuração do agendador de reconexão carregada")

	return &ReconnectService{
		scheduler: gocron.NewScheduler(cfg.Location()),
		config:    reconnectConfig,
		store:     store,
	}
}

// OnReconnect registra a ação executada quando o remoto volta a responder
func (s *ReconnectService) OnReconnect(fn func()) {
	s.onReconnect = fn
}

func (s *ReconnectService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Reconexão automática desabilitada por configuração")
		return nil
	}

	if !s.store.Configured() {
		logrus.Info("Backend remoto não configurado, reconexão automática não iniciada")
		return nil
	}

	logrus.WithField("interval", s.config.Interval.String()).Info("Iniciando agendador de reconexão")

	_, err := s.scheduler.Every(s.config.Interval).WaitForSchedule().Do(func() {
		s.check(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reconexão: %w", err)
	}

	s.scheduler.SingletonModeAll()
	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de reconexão")
		s.scheduler.Stop()
	}()

	return nil
}

// check chama Init a cada ciclo, então uma queda também é detectada
func (s *ReconnectService) check(ctx context.Context) {
	logger := log.ForComponent(ctx, "reconnect")

	wasConnected := s.store.Connected()
	connected := s.store.Init(ctx)

	s.mu.Lock()
	s.lastCheckAt = time.Now()
	if connected {
		s.lastConnectedAt = s.lastCheckAt
	}
	s.mu.Unlock()

	switch {
	case connected && !wasConnected:
		logger.Info("Backend remoto disponível novamente")
		if s.onReconnect != nil {
			s.onReconnect()
		}
	case !connected && wasConnected:
		logger.Warn("Conexão com o backend remoto perdida")
	}
}

func (s *ReconnectService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"reconnect_enabled":  s.config.Enabled,
		"reconnect_interval": s.config.Interval.String(),
		"remote_configured":  s.store.Configured(),
		"remote_connected":   s.store.Connected(),
		"last_check_at":      s.lastCheckAt,
		"last_connected_at":  s.lastConnectedAt,
	}
}
