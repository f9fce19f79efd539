package json

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/drakos74/free-fit/internal/storage"
)

// LocalShard creates in-memory shards, all of them sharing the same values.
func LocalShard() storage.Shard {
	s := NewLocalStorage()
	return func(shard string) (storage.Persistence, error) {
		return s, nil
	}
}

// LocalStorage keeps the json encoded values in memory.
type LocalStorage struct {
	files map[string]string
	mutex *sync.RWMutex
}

// NewLocalStorage creates a new in-memory storage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		files: make(map[string]string),
		mutex: new(sync.RWMutex),
	}
}

func (l LocalStorage) Store(k storage.Key, value interface{}) error {
	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %v: %w", err, storage.CouldNotStoreErr)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.files[k.Path()] = string(bb)
	return nil
}

func (l LocalStorage) Load(k storage.Key, value interface{}) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	v, ok := l.files[k.Path()]
	if !ok {
		matches := 0
		for path, file := range l.files {
			if strings.HasPrefix(path, k.Path()) {
				v = file
				matches++
			}
		}
		switch matches {
		case 0:
			return fmt.Errorf("file not found: %+v: %w", k, storage.NotFoundErr)
		case 1:
		default:
			return fmt.Errorf("multiple sources found for %+v: %w", k, storage.CouldNotLoadErr)
		}
	}

	err := json.Unmarshal([]byte(v), value)
	if err != nil {
		return fmt.Errorf("could not unmarshal value: %v: %w", err, storage.CouldNotLoadErr)
	}
	return nil
}
