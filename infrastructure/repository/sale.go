package repository

import (
	"context"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
)

type SaleRepository interface {
	List(ctx context.Context, filters domain.Filters) ([]*domain.Sale, error)
	Get(ctx context.Context, id string) (*domain.Sale, error)
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	Update(ctx context.Context, id string, patch domain.Record) (*domain.Sale, error)
	Delete(ctx context.Context, id string) error
}

type saleRepository struct {
	*entityRepository[domain.Sale]
}

func NewSaleRepository(store Store, bus events.Publisher, notifier notification.Notifier) SaleRepository {
	return &saleRepository{
		entityRepository: newEntityRepository[domain.Sale](store, bus, notifier, domain.TableSales, "vendas"),
	}
}
