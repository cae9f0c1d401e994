// Package seeding instala os dados de demonstração da loja
package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/actor"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

const loadedFlag = "demo_loaded"

var ErrSeed = errors.New("erro ao instalar dados de demonstração")

// Flags é a parte do KVS usada para lembrar que a demonstração já foi instalada
type Flags interface {
	Set(key string, value any, ttl time.Duration) error
	Get(key string, dst any) (bool, error)
}

type Result struct {
	Loaded   bool `json:"loaded"`
	Products int  `json:"products"`
	Clients  int  `json:"clients"`
	Sales    int  `json:"sales"`
	Goals    int  `json:"goals"`
	Expenses int  `json:"expenses"`
}

type Seeder interface {
	Load(ctx context.Context, force bool) (*Result, error)
}

type Service struct {
	store    repository.Store
	products repository.ProductRepository
	clients  repository.ClientRepository
	sales    repository.SaleRepository
	goals    repository.GoalRepository
	expenses repository.ExpenseRepository
	flags    Flags
	clock    func() time.Time
}

func NewService(
	store repository.Store,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	sales repository.SaleRepository,
	goals repository.GoalRepository,
	expenses repository.ExpenseRepository,
	flags Flags,
) *Service {
	return &Service{
		store:    store,
		products: products,
		clients:  clients,
		sales:    sales,
		goals:    goals,
		expenses: expenses,
		flags:    flags,
		clock:    time.Now,
	}
}

// WithClock substitui o relógio usado nos períodos da demonstração
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Load instala a demonstração uma única vez. Com force, os registros do usuário demo são
// removidos e a demonstração é instalada de novo.
func (s *Service) Load(ctx context.Context, force bool) (*Result, error) {
	logger := log.ForComponent(ctx, "seeding")
	ctx = actor.WithActor(ctx, actor.Demo())

	if !force {
		loaded, err := s.alreadyLoaded(ctx)
		if err != nil {
			return nil, err
		}
		if loaded {
			logger.Info("Dados de demonstração já instalados, pulando")
			return &Result{}, nil
		}
	} else if err := s.clear(ctx); err != nil {
		return nil, err
	}

	result, err := s.install(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.flags.Set(loadedFlag, true, 0); err != nil {
		logger.WithError(err).Warn("Erro ao gravar indicador da demonstração")
	}

	logger.WithFields(log.Fields{
		"products": result.Products,
		"sales":    result.Sales,
	}).Info("Dados de demonstração instalados")

	return result, nil
}

// alreadyLoaded considera instalada a demonstração marcada no KVS ou um catálogo já existente
func (s *Service) alreadyLoaded(ctx context.Context) (bool, error) {
	var loaded bool
	if found, err := s.flags.Get(loadedFlag, &loaded); err == nil && found && loaded {
		return true, nil
	}

	existing, err := s.products.List(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSeed, err)
	}
	return len(existing) > 0, nil
}

func (s *Service) clear(ctx context.Context) error {
	for _, table := range []string{
		domain.TableSales,
		domain.TableProducts,
		domain.TableClients,
		domain.TableGoals,
		domain.TableExpenses,
		domain.TableStockMovements,
	} {
		if err := s.store.Delete(ctx, table, domain.Filters{domain.FieldUserID: domain.DemoUserID}); err != nil {
			return fmt.Errorf("%w: %v", ErrSeed, err)
		}
	}
	return nil
}

func (s *Service) install(ctx context.Context) (*Result, error) {
	now := s.clock()
	result := &Result{Loaded: true}

	products := make([]*domain.Product, 0, len(demoProducts))
	for i := range demoProducts {
		p := demoProducts[i]
		created, err := s.products.Create(ctx, &p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSeed, err)
		}
		products = append(products, created)
	}
	result.Products = len(products)

	clients := make([]*domain.Client, 0, len(demoClients))
	for i := range demoClients {
		c := demoClients[i]
		created, err := s.clients.Create(ctx, &c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSeed, err)
		}
		clients = append(clients, created)
	}
	result.Clients = len(clients)

	for _, ds := range demoSales {
		client := clients[ds.client]
		sale := &domain.Sale{
			ClientID:      client.ID,
			ClientName:    client.Name,
			Shipping:      ds.shipping,
			Discount:      ds.discount,
			PaymentMethod: ds.paymentMethod,
			Status:        ds.status,
		}
		for _, item := range ds.items {
			product := products[item.product]
			sale.Items = append(sale.Items, domain.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.quantity,
				Price:       product.Price,
			})
		}
		sale.Recalculate()

		if _, err := s.sales.Create(ctx, sale); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSeed, err)
		}
		result.Sales++
	}

	goal := demoGoal(now)
	if _, err := s.goals.Create(ctx, &goal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeed, err)
	}
	result.Goals = 1

	for _, e := range demoExpenses(now) {
		expense := e
		if _, err := s.expenses.Create(ctx, &expense); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSeed, err)
		}
		result.Expenses++
	}

	return result, nil
}
