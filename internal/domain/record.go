package domain

import (
	"fmt"
	"reflect"
	"strings"
)

// Campos reservados presentes em todo registro
const (
	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Record é um registro genérico armazenado em qualquer tabela
type Record map[string]any

// Filters mapeia campo -> valor esperado; todas as condições são combinadas com AND
type Filters map[string]any

// ID retorna o identificador do registro ou vazio
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Clone cria uma cópia rasa do registro
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// WithoutImmutable remove os campos que não podem ser alterados por update
func (r Record) WithoutImmutable() Record {
	out := r.Clone()
	delete(out, FieldID)
	delete(out, FieldUserID)
	delete(out, FieldCreatedAt)
	return out
}

// IsReservedField indica se o campo é gerenciado pelo armazenamento
func IsReservedField(field string) bool {
	switch field {
	case FieldID, FieldUserID, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	return false
}

// MatchesLoose aplica a semântica de filtro de leitura: valores nulos ou vazios são ignorados,
// strings comparam por substring sem diferenciar maiúsculas, demais valores por igualdade.
func (r Record) MatchesLoose(filters Filters) bool {
	for field, want := range filters {
		if want == nil {
			continue
		}

		if s, ok := want.(string); ok {
			if s == "" {
				continue
			}
			got, exists := r[field]
			if !exists || got == nil {
				return false
			}
			if !strings.Contains(strings.ToLower(fmt.Sprint(got)), strings.ToLower(s)) {
				return false
			}
			continue
		}

		if !ValuesEqual(r[field], want) {
			return false
		}
	}
	return true
}

// MatchesStrict exige igualdade em todos os filtros. Filtro vazio não casa com nada.
func (r Record) MatchesStrict(filters Filters) bool {
	if len(filters) == 0 {
		return false
	}
	for field, want := range filters {
		if !ValuesEqual(r[field], want) {
			return false
		}
	}
	return true
}

// ValuesEqual compara valores normalizando tipos numéricos para float64
func ValuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
