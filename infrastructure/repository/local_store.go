package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/c4-store-api/infrastructure/storage/kvs"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/utils"
)

// LocalStore guarda cada tabela como uma lista de registros no KVS, sob a chave com o nome da tabela
type LocalStore struct {
	kvs   *kvs.Store
	mu    sync.Mutex
	clock func() time.Time
	newID func(prefix string) (string, error)
}

type LocalOption func(*LocalStore)

func WithLocalClock(clock func() time.Time) LocalOption {
	return func(s *LocalStore) {
		s.clock = clock
	}
}

func WithIDGenerator(gen func(prefix string) (string, error)) LocalOption {
	return func(s *LocalStore) {
		s.newID = gen
	}
}

func NewLocalStore(store *kvs.Store, opts ...LocalOption) *LocalStore {
	s := &LocalStore{
		kvs:   store,
		clock: time.Now,
		newID: utils.GenerateID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *LocalStore) load(table string) ([]domain.Record, error) {
	var records []domain.Record
	if _, err := s.kvs.Get(table, &records); err != nil {
		return nil, fmt.Errorf("erro ao ler tabela %s: %w", table, err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

func (s *LocalStore) save(table string, records []domain.Record) error {
	if err := s.kvs.Set(table, records, 0); err != nil {
		return fmt.Errorf("erro ao salvar tabela %s: %w", table, err)
	}
	return nil
}

func (s *LocalStore) Select(_ context.Context, table string, filters domain.Filters) ([]domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	records, err := s.load(table)
	if err != nil {
		return nil, err
	}

	if len(filters) == 0 {
		return records, nil
	}

	matched := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if rec.MatchesLoose(filters) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (s *LocalStore) Insert(_ context.Context, table string, data domain.Record) (domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(table)
	if err != nil {
		return nil, err
	}

	record, err := normalize(data)
	if err != nil {
		return nil, err
	}
	if record.ID() == "" {
		id, err := s.newID(domain.TablePrefix(table))
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id: %w", err)
		}
		record[domain.FieldID] = id
	}

	for _, existing := range records {
		if existing.ID() == record.ID() {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, record.ID())
		}
	}

	now := utils.FormatTimestamp(s.clock())
	record[domain.FieldCreatedAt] = now
	record[domain.FieldUpdatedAt] = now

	records = append(records, record)
	if err := s.save(table, records); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *LocalStore) Update(_ context.Context, table string, data domain.Record, filters domain.Filters) ([]domain.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(table)
	if err != nil {
		return nil, err
	}

	patch, err := normalize(data.WithoutImmutable())
	if err != nil {
		return nil, err
	}
	now := utils.FormatTimestamp(s.clock())

	updated := make([]domain.Record, 0)
	for _, rec := range records {
		if !rec.MatchesStrict(filters) {
			continue
		}
		for k, v := range patch {
			rec[k] = v
		}
		rec[domain.FieldUpdatedAt] = now
		updated = append(updated, rec)
	}

	if len(updated) == 0 {
		return updated, nil
	}

	if err := s.save(table, records); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *LocalStore) Delete(_ context.Context, table string, filters domain.Filters) error {
	if err := checkTable(table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(table)
	if err != nil {
		return err
	}

	kept := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if !rec.MatchesStrict(filters) {
			kept = append(kept, rec)
		}
	}

	if len(kept) == len(records) {
		return nil
	}

	return s.save(table, kept)
}

// Replace substitui a tabela inteira, usado para manter a cópia local após leituras remotas
func (s *LocalStore) Replace(_ context.Context, table string, records []domain.Record) error {
	if err := checkTable(table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []domain.Record{}
	}
	return s.save(table, records)
}
