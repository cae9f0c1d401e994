package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/events"
	"github.com/vfg2006/c4-store-api/pkg/log"
	"github.com/vfg2006/c4-store-api/pkg/utils"
)

const (
	dashboardCacheKey = "dashboard"
	chartSize         = 5
)

var ErrLoadData = errors.New("erro ao carregar dados do painel")

// Cache é a parte do KVS usada para guardar o painel calculado
type Cache interface {
	SetCache(key string, value any, ttl time.Duration) error
	GetCache(key string, dst any) (bool, error)
	RemoveCache(key string) error
}

type ReportService interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	SalesStats(ctx context.Context, period domain.StatsPeriod) (*domain.PeriodStats, error)
	Invalidate(ctx context.Context, event events.DataChanged) error
}

type Config struct {
	TTL        time.Duration
	DefaultMin int
	Location   *time.Location
}

type Service struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	goals    repository.GoalRepository
	expenses repository.ExpenseRepository
	cache    Cache
	cfg      Config
	clock    func() time.Time
}

func NewService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	goals repository.GoalRepository,
	expenses repository.ExpenseRepository,
	cache Cache,
	cfg Config,
) *Service {
	if cfg.DefaultMin <= 0 {
		cfg.DefaultMin = domain.DefaultMinStock
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		sales:    sales,
		products: products,
		goals:    goals,
		expenses: expenses,
		cache:    cache,
		cfg:      cfg,
		clock:    time.Now,
	}
}

// WithClock substitui o relógio de referência dos cálculos
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

func (s *Service) now() time.Time {
	return s.clock().In(s.cfg.Location)
}

func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	logger := log.ForComponent(ctx, "reporting")

	if s.cache != nil {
		var cached domain.Dashboard
		found, err := s.cache.GetCache(dashboardCacheKey, &cached)
		if err != nil {
			logger.WithError(err).Warn("Erro ao ler painel do cache")
		}
		if found {
			return &cached, nil
		}
	}

	sales, err := s.sales.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadData, err)
	}
	products, err := s.products.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadData, err)
	}
	goals, err := s.goals.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadData, err)
	}
	expenses, err := s.expenses.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadData, err)
	}

	dashboard := BuildDashboard(sales, products, goals, expenses, s.now(), s.cfg.DefaultMin)

	if s.cache != nil {
		if err := s.cache.SetCache(dashboardCacheKey, dashboard, s.cfg.TTL); err != nil {
			logger.WithError(err).Warn("Erro ao gravar painel no cache")
		}
	}

	return dashboard, nil
}

// BuildDashboard monta o painel com os dados já carregados
func BuildDashboard(
	sales []*domain.Sale,
	products []*domain.Product,
	goals []*domain.Goal,
	expenses []*domain.Expense,
	now time.Time,
	defaultMin int,
) *domain.Dashboard {
	month := SalesStats(sales, domain.StatsPeriodMonth, now)
	goal := ActiveGoal(goals, domain.GoalTypeMonthly, now)
	lowStock := LowStock(products, defaultMin)
	monthExpenses := MonthExpenses(expenses, now)

	return &domain.Dashboard{
		MonthlySales:    month.TotalSales,
		MonthlyOrders:   month.TotalOrders,
		GoalProgress:    GoalProgress(month.TotalSales, goal),
		MonthlyGoal:     goal,
		LowStockCount:   len(lowStock),
		TotalProducts:   len(products),
		LowStock:        lowStock,
		SalesChart:      LastSevenDays(sales, now, now.Location()),
		ProductsChart:   TopProductsByQuantity(sales, chartSize),
		TopProducts:     TopProductsByRevenue(sales, chartSize),
		RecentSales:     RecentSales(sales, chartSize),
		MonthlyExpenses: monthExpenses,
		NetResult:       utils.RoundWithTwoDecimalPlace(month.TotalSales - monthExpenses),
		GeneratedAt:     now,
	}
}

func (s *Service) SalesStats(ctx context.Context, period domain.StatsPeriod) (*domain.PeriodStats, error) {
	sales, err := s.sales.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadData, err)
	}

	stats := SalesStats(sales, period, s.now())
	return &stats, nil
}

// Invalidate descarta o painel em cache quando os dados que o compõem mudam
func (s *Service) Invalidate(ctx context.Context, event events.DataChanged) error {
	switch event.DataType {
	case domain.TableSales, domain.TableProducts, domain.TableGoals, domain.TableExpenses:
	default:
		return nil
	}

	if s.cache == nil {
		return nil
	}

	log.ForComponent(ctx, "reporting").WithField("table", event.DataType).Debug("Painel invalidado")
	return s.cache.RemoveCache(dashboardCacheKey)
}
