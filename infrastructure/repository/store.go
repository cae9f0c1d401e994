package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/c4-store-api/internal/domain"
)

var (
	ErrUnknownTable      = errors.New("tabela desconhecida")
	ErrDuplicateID       = errors.New("id já existe na tabela")
	ErrRemoteUnavailable = errors.New("backend remoto não configurado ou inacessível")
	ErrUnknownOperation  = errors.New("operação desconhecida")
)

// Store é o contrato comum dos armazenamentos local e remoto
type Store interface {
	Select(ctx context.Context, table string, filters domain.Filters) ([]domain.Record, error)
	Insert(ctx context.Context, table string, data domain.Record) (domain.Record, error)
	Update(ctx context.Context, table string, data domain.Record, filters domain.Filters) ([]domain.Record, error)
	Delete(ctx context.Context, table string, filters domain.Filters) error
}

// Remote é o backend externo, opcional e sujeito a falhas
type Remote interface {
	Store
	Ping(ctx context.Context) error
	Upsert(ctx context.Context, table string, records []domain.Record) error
}

type Op string

const (
	OpSelect Op = "select"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type Result struct {
	Records []domain.Record
	Err     error
}

func (r Result) Success() bool {
	return r.Err == nil
}

// Query executa a operação nomeada sobre qualquer Store
func Query(ctx context.Context, store Store, op Op, table string, data domain.Record, filters domain.Filters) Result {
	switch op {
	case OpSelect:
		records, err := store.Select(ctx, table, filters)
		return Result{Records: records, Err: err}
	case OpInsert:
		record, err := store.Insert(ctx, table, data)
		if err != nil {
			return Result{Records: []domain.Record{}, Err: err}
		}
		return Result{Records: []domain.Record{record}}
	case OpUpdate:
		records, err := store.Update(ctx, table, data, filters)
		return Result{Records: records, Err: err}
	case OpDelete:
		err := store.Delete(ctx, table, filters)
		return Result{Records: []domain.Record{}, Err: err}
	default:
		return Result{Records: []domain.Record{}, Err: fmt.Errorf("%w: %s", ErrUnknownOperation, op)}
	}
}

func checkTable(table string) error {
	if !domain.IsKnownTable(table) {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return nil
}
