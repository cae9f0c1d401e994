package customer

import (
	"errors"
	"fmt"
)

// Erros específicos para o cadastro de clientes
var (
	ErrDeletionNotConfirmed = errors.New("exclusão do cliente não confirmada")

	// Erros de armazenamento
	ErrFetchClients = errors.New("erro ao carregar clientes")
	ErrCreateClient = errors.New("erro ao salvar cliente")
	ErrUpdateClient = errors.New("erro ao atualizar cliente")
	ErrDeleteClient = errors.New("erro ao excluir cliente")
)

// ClientError é um erro com contexto adicional para clientes
type ClientError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ClientID string // Cliente envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ClientError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError cria um novo ClientError
func NewClientError(err error, code string, clientID string, details string) *ClientError {
	return &ClientError{
		Err:      err,
		Code:     code,
		ClientID: clientID,
		Details:  details,
	}
}
