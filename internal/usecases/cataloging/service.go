package cataloging

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/usecases/reporting"
	"github.com/vfg2006/c4-store-api/internal/usecases/stocking"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

type CatalogService interface {
	List(ctx context.Context, filter ListFilter) ([]domain.ProductView, error)
	Get(ctx context.Context, id string) (*domain.ProductView, error)
	Create(ctx context.Context, input ProductInput) (*domain.ProductView, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.ProductView, error)
	Delete(ctx context.Context, id string, dlg dialog.Dialog) error
	Duplicate(ctx context.Context, id string, dlg dialog.Dialog) (*domain.ProductView, error)
	Categories(ctx context.Context) ([]string, error)
	LowStock(ctx context.Context) ([]domain.ProductView, error)
	AdjustStock(ctx context.Context, id string, delta int) (*domain.ProductView, error)
	Movements(ctx context.Context, id string) ([]*domain.StockMovement, error)
}

type Service struct {
	products   repository.ProductRepository
	adjuster   stocking.StockAdjuster
	defaultMin int
}

func NewService(
	products repository.ProductRepository,
	adjuster stocking.StockAdjuster,
	defaultMin int,
) CatalogService {
	if defaultMin <= 0 {
		defaultMin = domain.DefaultMinStock
	}

	return &Service{
		products:   products,
		adjuster:   adjuster,
		defaultMin: defaultMin,
	}
}

type ListFilter struct {
	Search   string
	Category string
	Sort     string // name, price, cost ou stock
	Order    string // asc ou desc
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.ProductView, error) {
	products, err := s.products.List(ctx, nil)
	if err != nil {
		return nil, NewProductError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	filtered := FilterProducts(products, filter)

	views := make([]domain.ProductView, 0, len(filtered))
	for _, p := range filtered {
		views = append(views, p.View(s.defaultMin))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.ProductView, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, NewProductError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return s.view(product), nil
}

func (s *Service) Create(ctx context.Context, input ProductInput) (*domain.ProductView, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	created, err := s.products.Create(ctx, input.product())
	if err != nil {
		return nil, NewProductError(ErrCreateProduct, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	log.ForComponent(ctx, "cataloging").WithField("id", created.ID).Infof("Produto %s cadastrado", created.Name)
	return s.view(created), nil
}

func (s *Service) Update(ctx context.Context, id string, input ProductInput) (*domain.ProductView, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	updated, err := s.products.Update(ctx, id, input.patch())
	if err != nil {
		return nil, NewProductError(ErrUpdateProduct, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return s.view(updated), nil
}

func (s *Service) Delete(ctx context.Context, id string, dlg dialog.Dialog) error {
	if !dlg.Confirm(ctx, "Tem certeza que deseja excluir este produto?") {
		return NewProductError(ErrDeletionNotConfirmed, apiErrors.ErrConfirmationRequired, id, "")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return NewProductError(ErrDeleteProduct, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return nil
}

// Duplicate cria uma cópia do produto com o nome informado pelo usuário
func (s *Service) Duplicate(ctx context.Context, id string, dlg dialog.Dialog) (*domain.ProductView, error) {
	original, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, NewProductError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if original == nil {
		return nil, NewProductError(ErrProductNotFound, apiErrors.ErrNotFound, id, "")
	}

	name, ok := dlg.Prompt(ctx, "Nome do novo produto:", fmt.Sprintf("%s (Cópia)", original.Name))
	if !ok {
		return nil, NewProductError(ErrDuplicationCancelled, apiErrors.ErrConfirmationRequired, id, "")
	}

	input := ProductInput{
		Name:        name,
		Category:    original.Category,
		Cost:        original.Cost,
		Price:       original.Price,
		Stock:       original.Stock,
		MinStock:    original.MinStock,
		Description: original.Description,
	}
	return s.Create(ctx, input)
}

// Categories retorna as categorias distintas, em ordem alfabética
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.products.List(ctx, nil)
	if err != nil {
		return nil, NewProductError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)

	return categories, nil
}

func (s *Service) LowStock(ctx context.Context) ([]domain.ProductView, error) {
	products, err := s.products.List(ctx, nil)
	if err != nil {
		return nil, NewProductError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, "", err.Error())
	}
	return reporting.LowStock(products, s.defaultMin), nil
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*domain.ProductView, error) {
	product, err := s.adjuster.Adjust(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	return s.view(product), nil
}

func (s *Service) Movements(ctx context.Context, id string) ([]*domain.StockMovement, error) {
	return s.adjuster.Movements(ctx, id)
}

func (s *Service) view(product *domain.Product) *domain.ProductView {
	if product == nil {
		return nil
	}
	v := product.View(s.defaultMin)
	return &v
}

// FilterProducts aplica categoria e busca por nome ou descrição, e ordena o resultado
func FilterProducts(products []*domain.Product, filter ListFilter) []*domain.Product {
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}

	var less func(a, b *domain.Product) bool
	switch filter.Sort {
	case "price":
		less = func(a, b *domain.Product) bool { return a.Price < b.Price }
	case "cost":
		less = func(a, b *domain.Product) bool { return a.Cost < b.Cost }
	case "stock":
		less = func(a, b *domain.Product) bool { return a.Stock < b.Stock }
	case "name":
		less = func(a, b *domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		return out
	}

	desc := filter.Order == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	return out
}
