package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/internal/notification"
	"github.com/vfg2006/c4-store-api/pkg/actor"
)

func recordEvents(bus *events.Bus) *[]events.DataChanged {
	received := &[]events.DataChanged{}
	bus.Subscribe("teste", func(_ context.Context, event events.DataChanged) error {
		*received = append(*received, event)
		return nil
	})
	return received
}

func TestEntityRepository_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	local, _, _ := newTestLocalStore(t)
	bus := events.NewBus()
	received := recordEvents(bus)

	repo := NewProductRepository(local, bus, notification.Discard{})

	created, err := repo.Create(ctx, &domain.Product{
		Name:     "Blusa Rosa Feminina",
		Category: "roupas",
		Cost:     20,
		Price:    45,
		Stock:    15,
		MinStock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "prod_1", created.ID)
	assert.Equal(t, domain.DemoUserID, created.UserID)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Equal(t, 15, created.Stock)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := repo.Update(ctx, created.ID, domain.Record{"stock": 13})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 13, updated.Stock)
	assert.Equal(t, "Blusa Rosa Feminina", updated.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))

	got, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.Len(t, *received, 3)
	assert.Equal(t, events.ActionCreate, (*received)[0].Action)
	assert.Equal(t, domain.TableProducts, (*received)[0].DataType)
	assert.Equal(t, events.ActionUpdate, (*received)[1].Action)
	assert.Equal(t, events.ActionDelete, (*received)[2].Action)
	assert.Equal(t, created.ID, (*received)[2].ID)
}

func TestEntityRepository_UsuarioDoContexto(t *testing.T) {
	ctx := actor.WithActor(context.Background(), actor.Actor{ID: "user_42", Name: "Vendedora", RoleID: domain.RoleSeller})
	local, _, _ := newTestLocalStore(t)

	repo := NewClientRepository(local, nil, nil)
	created, err := repo.Create(ctx, &domain.Client{Name: "Maria Silva", Address: domain.Address{City: "São Paulo"}})
	require.NoError(t, err)

	assert.Equal(t, "user_42", created.UserID)
	assert.Equal(t, "São Paulo", created.Address.City)
}

func TestEntityRepository_GetExigeIDExato(t *testing.T) {
	ctx := context.Background()
	local, _, _ := newTestLocalStore(t)
	repo := NewSaleRepository(local, nil, nil)

	for i := 0; i < 10; i++ {
		_, err := repo.Create(ctx, &domain.Sale{ClientName: "Maria", Total: float64(i)})
		require.NoError(t, err)
	}

	sale, err := repo.Get(ctx, "sale_1")
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, "sale_1", sale.ID)
	assert.Equal(t, float64(0), sale.Total)
}

func TestEntityRepository_IDInexistente(t *testing.T) {
	ctx := context.Background()
	local, _, _ := newTestLocalStore(t)
	bus := events.NewBus()
	received := recordEvents(bus)
	repo := NewSaleRepository(local, bus, nil)

	updated, err := repo.Update(ctx, "sale_999", domain.Record{"status": "completed"})
	assert.NoError(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, *received)

	assert.NoError(t, repo.Delete(ctx, "sale_999"))
}

func TestEntityRepository_FalhaNotificaUsuario(t *testing.T) {
	ctx := context.Background()
	local, _, mem := newTestLocalStore(t)
	feed := notification.NewFeed(10)
	repo := NewExpenseRepository(local, nil, feed)

	mem.SetDisabled(true)

	_, err := repo.Create(ctx, &domain.Expense{Category: domain.ExpenseCategoryFixed, Description: "MEI", Amount: 66.6})
	require.Error(t, err)

	entries := feed.Recent()
	require.Len(t, entries, 1)
	assert.Equal(t, notification.LevelError, entries[0].Level)
	assert.Equal(t, "Erro ao salvar despesas", entries[0].Message)
}

func TestEntityRepository_DecodificaDatasEPeriodos(t *testing.T) {
	ctx := context.Background()
	local, _, _ := newTestLocalStore(t)
	repo := NewGoalRepository(local, nil, nil)

	_, err := local.Insert(ctx, domain.TableGoals, domain.Record{
		"id":     "goal_1",
		"type":   "monthly",
		"target": "5000",
		"period": map[string]any{"start": "2024-03-01", "end": "2024-03-31T23:59:59.999Z"},
	})
	require.NoError(t, err)

	goal, err := repo.Get(ctx, "goal_1")
	require.NoError(t, err)
	require.NotNil(t, goal)
	require.NotNil(t, goal.Period)

	assert.Equal(t, float64(5000), goal.Target)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), goal.Period.Start)
	assert.True(t, goal.IsActive(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	local, _, _ := newTestLocalStore(t)
	repo := NewUserRepository(local, nil, nil)

	_, err := repo.Create(ctx, &domain.User{Name: "Ana", Email: "ana@c4.com.br", RoleID: domain.RoleOwner, Active: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Name: "Mariana", Email: "mariana@c4.com.br", RoleID: domain.RoleSeller, Active: true})
	require.NoError(t, err)

	user, err := repo.GetByEmail(ctx, "ANA@c4.com.br")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ana", user.Name)

	user, err = repo.GetByEmail(ctx, "na@c4.com.br")
	require.NoError(t, err)
	assert.Nil(t, user)
}
