package selling

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de vendas
var (
	ErrCancellationNotConfirmed = errors.New("cancelamento da venda não confirmado")
	ErrDeletionNotConfirmed     = errors.New("exclusão da venda não confirmada")

	// Erros de armazenamento
	ErrFetchSales  = errors.New("erro ao carregar vendas")
	ErrCreateSale  = errors.New("erro ao salvar venda")
	ErrUpdateSale  = errors.New("erro ao atualizar venda")
	ErrDeleteSale  = errors.New("erro ao excluir venda")
	ErrResolveName = errors.New("erro ao buscar nomes de produtos e clientes")
)

// SaleError é um erro com contexto adicional para vendas
type SaleError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	SaleID  string // Venda envolvida (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SaleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SaleError) Unwrap() error {
	return e.Err
}

// NewSaleError cria um novo SaleError
func NewSaleError(err error, code string, saleID string, details string) *SaleError {
	return &SaleError{
		Err:     err,
		Code:    code,
		SaleID:  saleID,
		Details: details,
	}
}
