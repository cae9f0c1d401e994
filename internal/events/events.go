// Package events publica as alterações de dados para os interessados
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/c4-store-api/pkg/log"
)

// EventName é o único tipo de evento publicado
const EventName = "c4:data:changed"

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type DataChanged struct {
	DataType string    `json:"dataType"`
	Action   Action    `json:"action"`
	Data     any       `json:"data,omitempty"`
	ID       string    `json:"id,omitempty"`
	At       time.Time `json:"at"`
}

// Listener recebe os eventos de forma síncrona
type Listener func(ctx context.Context, event DataChanged) error

type Publisher interface {
	Publish(ctx context.Context, event DataChanged)
}

type subscription struct {
	id       int
	name     string
	listener Listener
}

// Bus entrega cada evento a todos os inscritos, em ordem de inscrição.
// Um inscrito que falha ou entra em pânico não impede a entrega aos demais.
type Bus struct {
	mu            sync.RWMutex
	subscriptions []subscription
	nextID        int
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registra o listener e retorna a função de cancelamento
func (b *Bus) Subscribe(name string, listener Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subscriptions = append(b.subscriptions, subscription{id: id, name: name, listener: listener})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for i, s := range b.subscriptions {
			if s.id == id {
				b.subscriptions = append(b.subscriptions[:i], b.subscriptions[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) Publish(ctx context.Context, event DataChanged) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.subscriptions))
	copy(subs, b.subscriptions)
	b.mu.RUnlock()

	for _, s := range subs {
		if err := deliver(ctx, s, event); err != nil {
			log.ForComponent(ctx, "events").WithError(err).WithFields(log.Fields{
				"listener": s.name,
				"table":    event.DataType,
				"action":   event.Action,
			}).Warn("Listener falhou ao processar evento")
		}
	}
}

func deliver(ctx context.Context, s subscription, event DataChanged) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic no listener %s: %v", s.name, r)
		}
	}()

	return s.listener(ctx, event)
}

// Len retorna a quantidade de inscritos
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
