package cataloging

import (
	"errors"
	"fmt"
)

// Erros específicos para o catálogo de produtos
var (
	ErrDeletionNotConfirmed = errors.New("exclusão do produto não confirmada")
	ErrDuplicationCancelled = errors.New("duplicação do produto cancelada")
	ErrProductNotFound      = errors.New("produto não encontrado")

	// Erros de armazenamento
	ErrFetchProducts = errors.New("erro ao carregar produtos")
	ErrCreateProduct = errors.New("erro ao salvar produto")
	ErrUpdateProduct = errors.New("erro ao atualizar produto")
	ErrDeleteProduct = errors.New("erro ao excluir produto")
)

// ProductError é um erro com contexto adicional para produtos
type ProductError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ProductID string // Produto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ProductError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ProductError) Unwrap() error {
	return e.Err
}

// NewProductError cria um novo ProductError
func NewProductError(err error, code string, productID string, details string) *ProductError {
	return &ProductError{
		Err:       err,
		Code:      code,
		ProductID: productID,
		Details:   details,
	}
}
