package repository

import (
	"context"
	"fmt"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
	"github.com/vfg2006/c4-store-api/pkg/actor"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

// entityRepository faz a ponte entre os registros genéricos e as entidades tipadas
type entityRepository[T any] struct {
	store    Store
	bus      events.Publisher
	notifier notification.Notifier
	table    string
	label    string
}

func newEntityRepository[T any](
	store Store,
	bus events.Publisher,
	notifier notification.Notifier,
	table string,
	label string,
) *entityRepository[T] {
	if notifier == nil {
		notifier = notification.Discard{}
	}

	return &entityRepository[T]{
		store:    store,
		bus:      bus,
		notifier: notifier,
		table:    table,
		label:    label,
	}
}

func (r *entityRepository[T]) fail(ctx context.Context, action string, err error) error {
	r.notifier.Notify(ctx, notification.LevelError, fmt.Sprintf("Erro ao %s %s", action, r.label))
	return fmt.Errorf("erro ao %s %s: %w", action, r.label, err)
}

func (r *entityRepository[T]) publish(ctx context.Context, action events.Action, id string, data any) {
	if r.bus == nil {
		return
	}

	r.bus.Publish(ctx, events.DataChanged{
		DataType: r.table,
		Action:   action,
		ID:       id,
		Data:     data,
	})
}

func (r *entityRepository[T]) decodeAll(records []domain.Record) ([]*T, error) {
	out := make([]*T, 0, len(records))
	for _, rec := range records {
		entity, err := decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

func (r *entityRepository[T]) List(ctx context.Context, filters domain.Filters) ([]*T, error) {
	records, err := r.store.Select(ctx, r.table, filters)
	if err != nil {
		return nil, r.fail(ctx, "carregar", err)
	}

	entities, err := r.decodeAll(records)
	if err != nil {
		return nil, r.fail(ctx, "carregar", err)
	}
	return entities, nil
}

// Get retorna nil quando o id não existe
func (r *entityRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}

	records, err := r.store.Select(ctx, r.table, domain.Filters{domain.FieldID: id})
	if err != nil {
		return nil, r.fail(ctx, "carregar", err)
	}

	// o filtro de leitura casa por substring, então o id é conferido aqui
	for _, rec := range records {
		if rec.ID() != id {
			continue
		}
		entity, err := decode[T](rec)
		if err != nil {
			return nil, r.fail(ctx, "carregar", err)
		}
		return entity, nil
	}

	return nil, nil
}

func (r *entityRepository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	rec, err := ToRecord(entity)
	if err != nil {
		return nil, r.fail(ctx, "salvar", err)
	}

	if _, ok := rec[domain.FieldUserID]; !ok {
		rec[domain.FieldUserID] = actor.FromContext(ctx).ID
	}

	inserted, err := r.store.Insert(ctx, r.table, rec)
	if err != nil {
		return nil, r.fail(ctx, "salvar", err)
	}

	created, err := decode[T](inserted)
	if err != nil {
		return nil, r.fail(ctx, "salvar", err)
	}

	log.ForComponent(ctx, "repository").WithFields(log.Fields{
		"table": r.table,
		"id":    inserted.ID(),
	}).Debug("Registro criado")

	r.publish(ctx, events.ActionCreate, inserted.ID(), created)
	return created, nil
}

// Update aplica o patch ao registro do id e retorna nil quando ele não existe
func (r *entityRepository[T]) Update(ctx context.Context, id string, patch domain.Record) (*T, error) {
	if id == "" {
		return nil, nil
	}

	records, err := r.store.Update(ctx, r.table, patch, domain.Filters{domain.FieldID: id})
	if err != nil {
		return nil, r.fail(ctx, "atualizar", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	updated, err := decode[T](records[0])
	if err != nil {
		return nil, r.fail(ctx, "atualizar", err)
	}

	r.publish(ctx, events.ActionUpdate, id, updated)
	return updated, nil
}

// Delete é idempotente: remover um id inexistente não é erro
func (r *entityRepository[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := r.store.Delete(ctx, r.table, domain.Filters{domain.FieldID: id}); err != nil {
		return r.fail(ctx, "excluir", err)
	}

	r.publish(ctx, events.ActionDelete, id, nil)
	return nil
}
