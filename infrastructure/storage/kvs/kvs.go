// Package kvs implementa o armazenamento chave/valor com namespace, expiração e controle de dados pendentes
package kvs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/c4-store-api/infrastructure/storage/medium"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrSerialize       = errors.New("valor não pode ser serializado")
	ErrInvalidSnapshot = errors.New("dados de backup inválidos")
)

const (
	CachePrefix   = "cache_"
	dirtyKey      = "dirty_data"
	lastAccessKey = "last_access"
)

type Config struct {
	Prefix          string
	Version         string
	DefaultCacheTTL time.Duration
}

// Envelope é o formato gravado no meio: valor, instante da gravação e ttl, ambos em milissegundos
type Envelope struct {
	Value     jsoniter.RawMessage `json:"value"`
	Timestamp int64               `json:"timestamp"`
	TTL       int64               `json:"ttl,omitempty"`
}

func (e Envelope) expired(now time.Time) bool {
	return e.TTL > 0 && now.UnixMilli()-e.Timestamp > e.TTL
}

// Snapshot é o backup completo do namespace
type Snapshot struct {
	Version   string            `json:"version"`
	Timestamp int64             `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

type Stats struct {
	Bytes      int64 `json:"bytes"`
	Items      int   `json:"items"`
	CacheItems int   `json:"cacheItems"`
}

type Option func(*Store)

// WithClock substitui o relógio usado nos carimbos de tempo
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

type Store struct {
	medium  medium.Medium
	cfg     Config
	clock   func() time.Time
	dirtyMu sync.Mutex
}

func New(m medium.Medium, cfg Config, opts ...Option) *Store {
	if cfg.DefaultCacheTTL <= 0 {
		cfg.DefaultCacheTTL = 5 * time.Minute
	}

	s := &Store{
		medium: m,
		cfg:    cfg,
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Set grava o valor. Um ttl zero nunca expira.
func (s *Store) Set(key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	envelope, err := json.Marshal(Envelope{
		Value:     raw,
		Timestamp: s.clock().UnixMilli(),
		TTL:       ttl.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	if err := s.medium.Set(s.cfg.Prefix+key, string(envelope)); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Erro ao salvar no armazenamento local")
		return err
	}

	return nil
}

// Get decodifica o valor em dst. Retorna false quando ausente, expirado ou ilegível.
func (s *Store) Get(key string, dst any) (bool, error) {
	envelope, ok, err := s.read(key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal(envelope.Value, dst); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Valor ilegível no armazenamento local")
		return false, nil
	}

	return true, nil
}

func (s *Store) read(key string) (Envelope, bool, error) {
	raw, ok, err := s.medium.Get(s.cfg.Prefix + key)
	if err != nil {
		return Envelope{}, false, err
	}
	if !ok {
		return Envelope{}, false, nil
	}

	var envelope Envelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Envelope ilegível no armazenamento local")
		return Envelope{}, false, nil
	}

	if envelope.expired(s.clock()) {
		if err := s.medium.Remove(s.cfg.Prefix + key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Erro ao remover chave expirada")
		}
		return Envelope{}, false, nil
	}

	return envelope, true, nil
}

func (s *Store) Has(key string) bool {
	_, ok, err := s.read(key)
	return err == nil && ok
}

func (s *Store) Remove(key string) error {
	return s.medium.Remove(s.cfg.Prefix + key)
}

// Keys lista as chaves do namespace sem o prefixo
func (s *Store) Keys() ([]string, error) {
	all, err := s.medium.Keys()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, s.cfg.Prefix) {
			keys = append(keys, strings.TrimPrefix(k, s.cfg.Prefix))
		}
	}
	return keys, nil
}

// Clear remove apenas as chaves deste namespace
func (s *Store) Clear() error {
	keys, err := s.Keys()
	if err != nil {
		return err
	}

	for _, k := range keys {
		if err := s.Remove(k); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Size() (Stats, error) {
	keys, err := s.Keys()
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, k := range keys {
		raw, ok, err := s.medium.Get(s.cfg.Prefix + k)
		if err != nil {
			return Stats{}, err
		}
		if !ok {
			continue
		}
		stats.Items++
		stats.Bytes += int64(len(s.cfg.Prefix) + len(k) + len(raw))
		if strings.HasPrefix(k, CachePrefix) {
			stats.CacheItems++
		}
	}
	return stats, nil
}

// SetCache grava no sub-namespace de cache. ttl zero usa o padrão configurado.
func (s *Store) SetCache(key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.cfg.DefaultCacheTTL
	}
	return s.Set(CachePrefix+key, value, ttl)
}

func (s *Store) GetCache(key string, dst any) (bool, error) {
	return s.Get(CachePrefix+key, dst)
}

func (s *Store) RemoveCache(key string) error {
	return s.Remove(CachePrefix + key)
}

func (s *Store) ClearCache() error {
	keys, err := s.Keys()
	if err != nil {
		return err
	}

	for _, k := range keys {
		if strings.HasPrefix(k, CachePrefix) {
			if err := s.Remove(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// PurgeExpiredCache remove as entradas de cache já expiradas e retorna quantas foram removidas
func (s *Store) PurgeExpiredCache() (int, error) {
	keys, err := s.Keys()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, k := range keys {
		if !strings.HasPrefix(k, CachePrefix) {
			continue
		}

		raw, ok, err := s.medium.Get(s.cfg.Prefix + k)
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}

		var envelope Envelope
		if err := json.Unmarshal([]byte(raw), &envelope); err != nil || envelope.expired(s.clock()) {
			if err := s.Remove(k); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// Export gera o snapshot do namespace com os valores brutos gravados
func (s *Store) Export() (Snapshot, error) {
	keys, err := s.Keys()
	if err != nil {
		return Snapshot{}, err
	}

	data := make(map[string]string, len(keys))
	for _, k := range keys {
		raw, ok, err := s.medium.Get(s.cfg.Prefix + k)
		if err != nil {
			return Snapshot{}, err
		}
		if ok {
			data[k] = raw
		}
	}

	return Snapshot{
		Version:   s.cfg.Version,
		Timestamp: s.clock().UnixMilli(),
		Data:      data,
	}, nil
}

// Import substitui todo o namespace pelo snapshot. Se alguma gravação falhar,
// o conteúdo anterior é restaurado.
func (s *Store) Import(snapshot Snapshot) error {
	if snapshot.Data == nil {
		return ErrInvalidSnapshot
	}

	previous, err := s.Export()
	if err != nil {
		return err
	}

	if err := s.replace(snapshot.Data); err != nil {
		logrus.WithError(err).Error("Erro ao importar dados, restaurando conteúdo anterior")
		if restoreErr := s.replace(previous.Data); restoreErr != nil {
			logrus.WithError(restoreErr).Error("Erro ao restaurar conteúdo anterior")
		}
		return err
	}

	return nil
}

func (s *Store) replace(data map[string]string) error {
	if err := s.Clear(); err != nil {
		return err
	}

	for k, raw := range data {
		if err := s.medium.Set(s.cfg.Prefix+k, raw); err != nil {
			return err
		}
	}
	return nil
}

// MarkDirty registra que a tabela tem alterações locais não sincronizadas
func (s *Store) MarkDirty(table string) error {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()

	dirty := s.dirtySet()
	for _, t := range dirty {
		if t == table {
			return nil
		}
	}

	dirty = append(dirty, table)
	sort.Strings(dirty)
	return s.Set(dirtyKey, dirty, 0)
}

func (s *Store) MarkClean(table string) error {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()

	dirty := s.dirtySet()
	remaining := make([]string, 0, len(dirty))
	for _, t := range dirty {
		if t != table {
			remaining = append(remaining, t)
		}
	}

	if len(remaining) == len(dirty) {
		return nil
	}
	return s.Set(dirtyKey, remaining, 0)
}

// Dirty retorna as tabelas pendentes em ordem alfabética
func (s *Store) Dirty() []string {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()

	return s.dirtySet()
}

func (s *Store) IsDirty(table string) bool {
	for _, t := range s.Dirty() {
		if t == table {
			return true
		}
	}
	return false
}

func (s *Store) ClearDirty() error {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()

	return s.Remove(dirtyKey)
}

func (s *Store) dirtySet() []string {
	var dirty []string
	if ok, err := s.Get(dirtyKey, &dirty); err != nil || !ok {
		return []string{}
	}
	return dirty
}

func (s *Store) UpdateLastAccess() error {
	return s.Set(lastAccessKey, s.clock().UnixMilli(), 0)
}
