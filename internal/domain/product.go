package domain

import (
	"time"

	"github.com/vfg2006/c4-store-api/pkg/utils"
)

// DefaultMinStock é o limite de estoque baixo quando o produto não define um
const DefaultMinStock = 5

type StockStatus string

const (
	StockStatusEmpty StockStatus = "empty"
	StockStatusLow   StockStatus = "low"
	StockStatusOK    StockStatus = "ok"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Cost        float64   `json:"cost"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"minStock"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductView é o produto com os campos calculados para exibição
type ProductView struct {
	Product
	Margin      float64     `json:"margin"`
	StockStatus StockStatus `json:"stockStatus"`
}

// Threshold retorna o limite de estoque baixo do produto
func (p Product) Threshold(defaultMin int) int {
	if p.MinStock > 0 {
		return p.MinStock
	}
	return defaultMin
}

// IsLowStock indica estoque menor ou igual ao limite
func (p Product) IsLowStock(defaultMin int) bool {
	return p.Stock <= p.Threshold(defaultMin)
}

// StockStatusFor classifica o estoque do produto
func (p Product) StockStatusFor(defaultMin int) StockStatus {
	switch {
	case p.Stock <= 0:
		return StockStatusEmpty
	case p.IsLowStock(defaultMin):
		return StockStatusLow
	default:
		return StockStatusOK
	}
}

// Margin calcula a margem percentual sobre o preço de venda
func (p Product) Margin() float64 {
	if p.Price <= 0 {
		return 0
	}
	return utils.Percent(p.Price-p.Cost, p.Price)
}

func (p Product) View(defaultMin int) ProductView {
	return ProductView{
		Product:     p,
		Margin:      p.Margin(),
		StockStatus: p.StockStatusFor(defaultMin),
	}
}
