package repository

import (
	"context"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
)

type ProductRepository interface {
	List(ctx context.Context, filters domain.Filters) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.Record) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	*entityRepository[domain.Product]
}

func NewProductRepository(store Store, bus events.Publisher, notifier notification.Notifier) ProductRepository {
	return &productRepository{
		entityRepository: newEntityRepository[domain.Product](store, bus, notifier, domain.TableProducts, "produtos"),
	}
}
