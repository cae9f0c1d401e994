package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotConfirmed indica que uma ação destrutiva não foi confirmada pelo usuário
var ErrNotConfirmed = errors.New("ação não confirmada")

// ValidationError agrupa as mensagens por campo para exibição no formulário
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add registra a primeira mensagem de cada campo
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil retorna nil quando não há erros, evitando interface não nula com ponteiro vazio
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}
