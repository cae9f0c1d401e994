package repository

import (
	"context"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
)

type ExpenseRepository interface {
	List(ctx context.Context, filters domain.Filters) ([]*domain.Expense, error)
	Get(ctx context.Context, id string) (*domain.Expense, error)
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

type expenseRepository struct {
	*entityRepository[domain.Expense]
}

func NewExpenseRepository(store Store, bus events.Publisher, notifier notification.Notifier) ExpenseRepository {
	return &expenseRepository{
		entityRepository: newEntityRepository[domain.Expense](store, bus, notifier, domain.TableExpenses, "despesas"),
	}
}
