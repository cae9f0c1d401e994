package repository

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

// LocalTier é o armazenamento local usado como reserva
type LocalTier interface {
	Store
	Replace(ctx context.Context, table string, records []domain.Record) error
}

// DirtyTracker registra as tabelas alteradas localmente enquanto o remoto estava fora
type DirtyTracker interface {
	MarkDirty(table string) error
	MarkClean(table string) error
	Dirty() []string
	IsDirty(table string) bool
}

type FallbackOptions struct {
	PingTimeout time.Duration
}

type Status struct {
	Configured bool     `json:"configured"`
	Connected  bool     `json:"connected"`
	Dirty      []string `json:"dirty"`
}

type TableSync struct {
	Table   string `json:"table"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

type SyncReport struct {
	Skipped bool        `json:"skipped"`
	Tables  []TableSync `json:"tables"`
}

// FallbackStore tenta o remoto quando conectado e recorre ao local em qualquer falha.
// A falha de uma chamada não altera o estado de conexão; apenas Init o reavalia.
type FallbackStore struct {
	remote    Remote
	local     LocalTier
	dirty     DirtyTracker
	opts      FallbackOptions
	mu        sync.RWMutex
	connected bool
}

// NewFallbackStore aceita remote nil para operar apenas localmente
func NewFallbackStore(remote Remote, local LocalTier, dirty DirtyTracker, opts FallbackOptions) *FallbackStore {
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 5 * time.Second
	}

	return &FallbackStore{
		remote: remote,
		local:  local,
		dirty:  dirty,
		opts:   opts,
	}
}

// Init verifica o remoto e atualiza o estado de conexão
func (s *FallbackStore) Init(ctx context.Context) bool {
	logger := log.ForComponent(ctx, "fallback_store")

	if s.remote == nil {
		logger.Info("Backend remoto não configurado, operando apenas com armazenamento local")
		s.setConnected(false)
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.opts.PingTimeout)
	defer cancel()

	if err := s.remote.Ping(pingCtx); err != nil {
		logger.WithError(err).Warn("Backend remoto inacessível, operando em modo offline")
		s.setConnected(false)
		return false
	}

	logger.Info("Conectado ao backend remoto")
	s.setConnected(true)
	return true
}

func (s *FallbackStore) setConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

func (s *FallbackStore) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *FallbackStore) Configured() bool {
	return s.remote != nil
}

func (s *FallbackStore) Status() Status {
	return Status{
		Configured: s.Configured(),
		Connected:  s.Connected(),
		Dirty:      s.dirty.Dirty(),
	}
}

func (s *FallbackStore) useRemote() bool {
	return s.remote != nil && s.Connected()
}

func (s *FallbackStore) degrade(ctx context.Context, op Op, table string, err error) {
	log.ForComponent(ctx, "fallback_store").WithError(err).WithFields(log.Fields{
		"table":     table,
		"operation": op,
	}).Warn("Falha no backend remoto, usando armazenamento local")
}

// markDirty só faz sentido quando existe um remoto para sincronizar depois
func (s *FallbackStore) markDirty(ctx context.Context, table string) {
	if s.remote == nil {
		return
	}
	if err := s.dirty.MarkDirty(table); err != nil {
		log.ForComponent(ctx, "fallback_store").WithError(err).WithField("table", table).
			Warn("Erro ao marcar tabela como pendente de sincronização")
	}
}

func (s *FallbackStore) Select(ctx context.Context, table string, filters domain.Filters) ([]domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	if s.useRemote() {
		records, err := s.remote.Select(ctx, table, filters)
		if err == nil {
			if len(filters) == 0 && !s.dirty.IsDirty(table) {
				if cacheErr := s.local.Replace(ctx, table, records); cacheErr != nil {
					log.ForComponent(ctx, "fallback_store").WithError(cacheErr).WithField("table", table).
						Warn("Erro ao atualizar cópia local da tabela")
				}
			}
			return records, nil
		}
		s.degrade(ctx, OpSelect, table, err)
	}

	return s.local.Select(ctx, table, filters)
}

func (s *FallbackStore) Insert(ctx context.Context, table string, data domain.Record) (domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	if s.useRemote() {
		record, err := s.remote.Insert(ctx, table, data)
		if err == nil {
			return record, nil
		}
		s.degrade(ctx, OpInsert, table, err)
	}

	record, err := s.local.Insert(ctx, table, data)
	if err != nil {
		return nil, err
	}
	s.markDirty(ctx, table)
	return record, nil
}

func (s *FallbackStore) Update(ctx context.Context, table string, data domain.Record, filters domain.Filters) ([]domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	if s.useRemote() {
		records, err := s.remote.Update(ctx, table, data, filters)
		if err == nil {
			return records, nil
		}
		s.degrade(ctx, OpUpdate, table, err)
	}

	records, err := s.local.Update(ctx, table, data, filters)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		s.markDirty(ctx, table)
	}
	return records, nil
}

func (s *FallbackStore) Delete(ctx context.Context, table string, filters domain.Filters) error {
	if err := checkTable(table); err != nil {
		return err
	}

	if s.useRemote() {
		err := s.remote.Delete(ctx, table, filters)
		if err == nil {
			return nil
		}
		s.degrade(ctx, OpDelete, table, err)
	}

	if err := s.local.Delete(ctx, table, filters); err != nil {
		return err
	}
	s.markDirty(ctx, table)
	return nil
}

// Sync envia as tabelas pendentes para o remoto e as marca como sincronizadas.
// Remoções feitas offline não são propagadas, apenas inserções e alterações.
func (s *FallbackStore) Sync(ctx context.Context) (SyncReport, error) {
	if !s.useRemote() {
		return SyncReport{Skipped: true, Tables: []TableSync{}}, nil
	}

	logger := log.ForComponent(ctx, "fallback_store")
	report := SyncReport{Tables: []TableSync{}}

	for _, table := range s.dirty.Dirty() {
		result := TableSync{Table: table}

		records, err := s.local.Select(ctx, table, nil)
		if err == nil {
			result.Records = len(records)
			err = s.remote.Upsert(ctx, table, records)
		}

		if err != nil {
			logger.WithError(err).WithField("table", table).Error("Erro ao sincronizar tabela")
			result.Error = err.Error()
			report.Tables = append(report.Tables, result)
			continue
		}

		if err := s.dirty.MarkClean(table); err != nil {
			logger.WithError(err).WithField("table", table).Warn("Erro ao marcar tabela como sincronizada")
		}

		logger.WithFields(log.Fields{
			"table":   table,
			"records": result.Records,
		}).Info("Tabela sincronizada com o backend remoto")
		report.Tables = append(report.Tables, result)
	}

	return report, nil
}
