package repository

import (
	"context"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
)

type ClientRepository interface {
	List(ctx context.Context, filters domain.Filters) ([]*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id string, patch domain.Record) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientRepository struct {
	*entityRepository[domain.Client]
}

func NewClientRepository(store Store, bus events.Publisher, notifier notification.Notifier) ClientRepository {
	return &clientRepository{
		entityRepository: newEntityRepository[domain.Client](store, bus, notifier, domain.TableClients, "clientes"),
	}
}
