package repository

import (
	"context"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
)

// GoalRepository não remove metas; uma meta encerrada apenas sai do período
type GoalRepository interface {
	List(ctx context.Context, filters domain.Filters) ([]*domain.Goal, error)
	Get(ctx context.Context, id string) (*domain.Goal, error)
	Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	Update(ctx context.Context, id string, patch domain.Record) (*domain.Goal, error)
}

type goalRepository struct {
	*entityRepository[domain.Goal]
}

func NewGoalRepository(store Store, bus events.Publisher, notifier notification.Notifier) GoalRepository {
	return &goalRepository{
		entityRepository: newEntityRepository[domain.Goal](store, bus, notifier, domain.TableGoals, "metas"),
	}
}
