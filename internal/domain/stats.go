package domain

import "time"

type StatsPeriod string

const (
	StatsPeriodDay   StatsPeriod = "day"
	StatsPeriodWeek  StatsPeriod = "week"
	StatsPeriodMonth StatsPeriod = "month"
	StatsPeriodYear  StatsPeriod = "year"
)

type PeriodStats struct {
	TotalSales   float64     `json:"totalSales"`
	TotalOrders  int         `json:"totalOrders"`
	AverageOrder float64     `json:"averageOrder"`
	Period       StatsPeriod `json:"period"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
}

type ProductRanking struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type DayBucket struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

type RecentSale struct {
	ID         string     `json:"id"`
	ClientName string     `json:"clientName"`
	Total      float64    `json:"total"`
	Date       time.Time  `json:"date"`
	Status     SaleStatus `json:"status"`
}

type Dashboard struct {
	MonthlySales    float64          `json:"monthlySales"`
	MonthlyOrders   int              `json:"monthlyOrders"`
	GoalProgress    float64          `json:"goalProgress"`
	MonthlyGoal     *Goal            `json:"monthlyGoal,omitempty"`
	LowStockCount   int              `json:"lowStockCount"`
	TotalProducts   int              `json:"totalProducts"`
	LowStock        []ProductView    `json:"lowStock"`
	SalesChart      []DayBucket      `json:"salesChart"`
	ProductsChart   []ProductRanking `json:"productsChart"`
	TopProducts     []ProductRanking `json:"topProducts"`
	RecentSales     []RecentSale     `json:"recentSales"`
	MonthlyExpenses float64          `json:"monthlyExpenses"`
	NetResult       float64          `json:"netResult"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}
