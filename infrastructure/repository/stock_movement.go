package repository

import (
	"context"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
)

// StockMovementRepository é apenas de inclusão; o histórico não é alterado
type StockMovementRepository interface {
	List(ctx context.Context, filters domain.Filters) ([]*domain.StockMovement, error)
	Create(ctx context.Context, movement *domain.StockMovement) (*domain.StockMovement, error)
}

type stockMovementRepository struct {
	*entityRepository[domain.StockMovement]
}

func NewStockMovementRepository(store Store, bus events.Publisher, notifier notification.Notifier) StockMovementRepository {
	return &stockMovementRepository{
		entityRepository: newEntityRepository[domain.StockMovement](store, bus, notifier, domain.TableStockMovements, "movimentações de estoque"),
	}
}
