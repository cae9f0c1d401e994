package medium

import (
	"sort"
	"sync"
)

// Memory mantém os dados apenas em memória
type Memory struct {
	mu         sync.RWMutex
	items      map[string]string
	quotaBytes int64
	disabled   bool
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// WithQuota limita o total de bytes de chaves e valores. Zero desativa o limite.
func (m *Memory) WithQuota(bytes int64) *Memory {
	m.quotaBytes = bytes
	return m
}

// SetDisabled simula um meio desabilitado
func (m *Memory) SetDisabled(disabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled = disabled
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.disabled {
		return "", false, ErrUnavailable
	}

	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disabled {
		return ErrUnavailable
	}

	if m.quotaBytes > 0 {
		current := usage(m.items)
		if old, ok := m.items[key]; ok {
			current -= int64(len(key) + len(old))
		}
		if current+int64(len(key)+len(value)) > m.quotaBytes {
			return ErrQuotaExceeded
		}
	}

	m.items[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disabled {
		return ErrUnavailable
	}

	delete(m.items, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.disabled {
		return nil, ErrUnavailable
	}

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
