package planning

import (
	"errors"
	"fmt"
)

// Erros específicos para metas e despesas
var (
	ErrDeletionNotConfirmed = errors.New("exclusão da despesa não confirmada")

	// Erros de armazenamento
	ErrFetchGoals    = errors.New("erro ao carregar metas")
	ErrSaveGoal      = errors.New("erro ao salvar meta")
	ErrFetchExpenses = errors.New("erro ao carregar despesas")
	ErrCreateExpense = errors.New("erro ao salvar despesa")
	ErrDeleteExpense = errors.New("erro ao excluir despesa")
)

// PlanningError é um erro com contexto adicional para metas e despesas
type PlanningError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	ID      string // Registro envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *PlanningError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *PlanningError) Unwrap() error {
	return e.Err
}

// NewPlanningError cria um novo PlanningError
func NewPlanningError(err error, code string, id string, details string) *PlanningError {
	return &PlanningError{
		Err:     err,
		Code:    code,
		ID:      id,
		Details: details,
	}
}
