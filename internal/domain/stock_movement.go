package domain

import "time"

type MovementType string

const (
	MovementTypeSale          MovementType = "venda"
	MovementTypeCancelRestore MovementType = "restauracao_cancelamento"
	MovementTypeAdjustment    MovementType = "ajuste"
	MovementTypeReversal      MovementType = "reversao"
)

// StockMovement registra cada alteração de estoque feita pelo ajustador
type StockMovement struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"productId"`
	ProductName   string       `json:"productName"`
	SaleID        string       `json:"saleId,omitempty"`
	Type          MovementType `json:"type"`
	Delta         int          `json:"delta"`
	PreviousStock int          `json:"previousStock"`
	NewStock      int          `json:"newStock"`
	UserID        string       `json:"user_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
