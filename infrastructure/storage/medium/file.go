package medium

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type FileOptions struct {
	QuotaBytes int64
}

// File persiste um objeto JSON em disco e regrava o arquivo a cada alteração
type File struct {
	mu    sync.RWMutex
	path  string
	items map[string]string
	opts  FileOptions
}

// OpenFile carrega o arquivo existente ou cria um novo vazio
func OpenFile(path string, opts FileOptions) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de armazenamento: %w", err)
	}

	f := &File{
		path:  path,
		items: make(map[string]string),
		opts:  opts,
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("erro ao ler arquivo de armazenamento: %w", err)
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &f.items); err != nil {
			return nil, fmt.Errorf("arquivo de armazenamento corrompido: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"items": len(f.items),
	}).Debug("Armazenamento local carregado")

	return f, nil
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.items[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, existed := f.items[key]

	if f.opts.QuotaBytes > 0 {
		current := usage(f.items)
		if existed {
			current -= int64(len(key) + len(old))
		}
		if current+int64(len(key)+len(value)) > f.opts.QuotaBytes {
			return ErrQuotaExceeded
		}
	}

	f.items[key] = value
	if err := f.flush(); err != nil {
		if existed {
			f.items[key] = old
		} else {
			delete(f.items, key)
		}
		return err
	}
	return nil
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, existed := f.items[key]
	if !existed {
		return nil
	}

	delete(f.items, key)
	if err := f.flush(); err != nil {
		f.items[key] = old
		return err
	}
	return nil
}

func (f *File) Keys() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// flush grava em arquivo temporário e renomeia, para nunca deixar o arquivo pela metade
func (f *File) flush() error {
	content, err := json.Marshal(f.items)
	if err != nil {
		return fmt.Errorf("erro ao serializar armazenamento: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}
