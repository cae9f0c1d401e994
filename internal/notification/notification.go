// Package notification recebe as mensagens destinadas ao usuário
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/c4-store-api/pkg/log"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

type Entry struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

const defaultCapacity = 50

// Feed guarda as últimas mensagens para consulta e espelha cada uma no log
type Feed struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Feed{capacity: capacity}
}

func (f *Feed) Notify(ctx context.Context, level Level, message string) {
	logger := log.ForComponent(ctx, "notification")
	switch level {
	case LevelError:
		logger.Error(message)
	case LevelWarning:
		logger.Warn(message)
	default:
		logger.Info(message)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, Entry{Level: level, Message: message, At: time.Now()})
	if len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
	}
}

// Recent retorna as mensagens da mais nova para a mais antiga
func (f *Feed) Recent() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Entry, 0, len(f.entries))
	for i := len(f.entries) - 1; i >= 0; i-- {
		out = append(out, f.entries[i])
	}
	return out
}

// Discard ignora todas as mensagens
type Discard struct{}

func (Discard) Notify(context.Context, Level, string) {}
