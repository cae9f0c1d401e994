// Package medium contém os meios persistentes de chave/valor usados pelo armazenamento local
package medium

import "errors"

var (
	ErrUnavailable   = errors.New("meio de armazenamento indisponível")
	ErrQuotaExceeded = errors.New("cota de armazenamento excedida")
)

// Medium é um armazenamento de strings por chave, como o localStorage do navegador
type Medium interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
}

// Unavailable retorna um meio que falha em todas as operações
func Unavailable() Medium {
	return unavailable{}
}

type unavailable struct{}

func (unavailable) Get(string) (string, bool, error) { return "", false, ErrUnavailable }
func (unavailable) Set(string, string) error         { return ErrUnavailable }
func (unavailable) Remove(string) error              { return ErrUnavailable }
func (unavailable) Keys() ([]string, error)          { return nil, ErrUnavailable }

func usage(items map[string]string) int64 {
	var total int64
	for k, v := range items {
		total += int64(len(k) + len(v))
	}
	return total
}
