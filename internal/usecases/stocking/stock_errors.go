package stocking

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrInvalidItem     = errors.New("item sem produto ou quantidade")
	ErrUpdateStock     = errors.New("erro ao atualizar estoque")
	ErrInvalidDelta    = errors.New("ajuste de estoque deve ser diferente de zero")
)

// StockError é um erro com contexto adicional para estoque
type StockError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ProductID string // Produto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *StockError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *StockError) Unwrap() error {
	return e.Err
}

func NewStockError(err error, code string, productID string, details string) *StockError {
	return &StockError{
		Err:       err,
		Code:      code,
		ProductID: productID,
		Details:   details,
	}
}
