package repository

import (
	"context"
	"strings"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
)

type UserRepository interface {
	List(ctx context.Context, filters domain.Filters) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	*entityRepository[domain.User]
}

func NewUserRepository(store Store, bus events.Publisher, notifier notification.Notifier) UserRepository {
	return &userRepository{
		entityRepository: newEntityRepository[domain.User](store, bus, notifier, domain.TableUsers, "usuários"),
	}
}

// GetByEmail compara o e-mail inteiro, sem diferenciar maiúsculas
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}

	users, err := r.List(ctx, domain.Filters{"email": email})
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, nil
}
