// Package reporting calcula as métricas do painel a partir dos registros já carregados.
// As funções são puras: o instante de referência é sempre informado.
package reporting

import (
	"sort"
	"time"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/utils"
)

var weekdayLabels = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// PeriodStart retorna o início do período. A semana são os últimos sete dias corridos.
// Período desconhecido começa na época Unix.
func PeriodStart(period domain.StatsPeriod, now time.Time) time.Time {
	switch period {
	case domain.StatsPeriodDay:
		return utils.StartOfDay(now)
	case domain.StatsPeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case domain.StatsPeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case domain.StatsPeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Unix(0, 0).In(now.Location())
}

// SalesStats soma as vendas criadas a partir do início do período
func SalesStats(sales []*domain.Sale, period domain.StatsPeriod, now time.Time) domain.PeriodStats {
	start := PeriodStart(period, now)
	stats := domain.PeriodStats{
		Period:    period,
		StartDate: start,
		EndDate:   now,
	}

	for _, sale := range sales {
		if sale == nil || sale.CreatedAt.Before(start) {
			continue
		}
		stats.TotalSales += sale.Total
		stats.TotalOrders++
	}

	stats.TotalSales = utils.RoundWithTwoDecimalPlace(stats.TotalSales)
	if stats.TotalOrders > 0 {
		stats.AverageOrder = utils.RoundWithTwoDecimalPlace(stats.TotalSales / float64(stats.TotalOrders))
	}

	return stats
}

// ActiveGoal retorna a primeira meta do tipo vigente no instante
func ActiveGoal(goals []*domain.Goal, goalType domain.GoalType, now time.Time) *domain.Goal {
	for _, goal := range goals {
		if goal != nil && goal.Type == goalType && goal.IsActive(now) {
			return goal
		}
	}
	return nil
}

// GoalProgress retorna o percentual atingido; sem meta ou com alvo zero, 0
func GoalProgress(total float64, goal *domain.Goal) float64 {
	if goal == nil || goal.Target <= 0 {
		return 0
	}
	return utils.Percent(total, goal.Target)
}

// LowStock lista os produtos com estoque menor ou igual ao limite
func LowStock(products []*domain.Product, defaultMin int) []domain.ProductView {
	out := make([]domain.ProductView, 0)
	for _, p := range products {
		if p != nil && p.IsLowStock(defaultMin) {
			out = append(out, p.View(defaultMin))
		}
	}
	return out
}

// aggregateProducts agrupa os itens por produto, na ordem em que aparecem
func aggregateProducts(sales []*domain.Sale) []domain.ProductRanking {
	index := make(map[string]int)
	out := make([]domain.ProductRanking, 0)

	for _, sale := range sales {
		if sale == nil {
			continue
		}
		for _, item := range sale.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(out)
				index[item.ProductID] = i
				out = append(out, domain.ProductRanking{ProductID: item.ProductID})
			}
			if out[i].ProductName == "" {
				out[i].ProductName = item.ProductName
			}
			out[i].Quantity += item.Quantity
			out[i].Revenue += float64(item.Quantity) * item.Price
		}
	}

	for i := range out {
		out[i].Revenue = utils.RoundWithTwoDecimalPlace(out[i].Revenue)
	}
	return out
}

func top(rankings []domain.ProductRanking, n int, less func(a, b domain.ProductRanking) bool) []domain.ProductRanking {
	sort.SliceStable(rankings, func(i, j int) bool {
		return less(rankings[i], rankings[j])
	})
	if n >= 0 && len(rankings) > n {
		rankings = rankings[:n]
	}
	return rankings
}

// TopProductsByQuantity ordena pela quantidade vendida; empates mantêm a ordem de aparição
func TopProductsByQuantity(sales []*domain.Sale, n int) []domain.ProductRanking {
	return top(aggregateProducts(sales), n, func(a, b domain.ProductRanking) bool {
		return a.Quantity > b.Quantity
	})
}

// TopProductsByRevenue ordena pelo faturamento; empates mantêm a ordem de aparição
func TopProductsByRevenue(sales []*domain.Sale, n int) []domain.ProductRanking {
	return top(aggregateProducts(sales), n, func(a, b domain.ProductRanking) bool {
		return a.Revenue > b.Revenue
	})
}

// LastSevenDays gera sete dias consecutivos terminando hoje, com o total vendido em cada um
func LastSevenDays(sales []*domain.Sale, now time.Time, loc *time.Location) []domain.DayBucket {
	if loc == nil {
		loc = now.Location()
	}
	today := utils.StartOfDay(now.In(loc))

	buckets := make([]domain.DayBucket, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6)
		key := day.Format("2006-01-02")
		buckets[i] = domain.DayBucket{Date: key, Label: weekdayLabels[day.Weekday()]}
		index[key] = i
	}

	for _, sale := range sales {
		if sale == nil {
			continue
		}
		if i, ok := index[sale.CreatedAt.In(loc).Format("2006-01-02")]; ok {
			buckets[i].Total += sale.Total
		}
	}

	for i := range buckets {
		buckets[i].Total = utils.RoundWithTwoDecimalPlace(buckets[i].Total)
	}
	return buckets
}

// RecentSales retorna as n vendas mais novas
func RecentSales(sales []*domain.Sale, n int) []domain.RecentSale {
	sorted := make([]*domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale != nil {
			sorted = append(sorted, sale)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]domain.RecentSale, 0, len(sorted))
	for _, sale := range sorted {
		out = append(out, domain.RecentSale{
			ID:         sale.ID,
			ClientName: sale.ClientName,
			Total:      sale.Total,
			Date:       sale.CreatedAt,
			Status:     sale.Status,
		})
	}
	return out
}

// MonthExpenses soma as despesas do mês corrente
func MonthExpenses(expenses []*domain.Expense, now time.Time) float64 {
	month := domain.MonthPeriod(now)

	total := 0.0
	for _, expense := range expenses {
		if expense == nil {
			continue
		}
		date := expense.Date
		if date.IsZero() {
			date = expense.CreatedAt
		}
		if month.Contains(date) {
			total += expense.Amount
		}
	}
	return utils.RoundWithTwoDecimalPlace(total)
}
