package storage

import (
	"errors"
	"fmt"
)

const (
	// ModelDir is the table for fitted models.
	ModelDir = "models"
)

var (
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr      = errors.New("not found")
	CouldNotLoadErr  = errors.New("could not load")
	CouldNotStoreErr = errors.New("could not store")
)

// Key is the storage key for a stored item.
type Key struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Path returns the file name of the key.
// Keys of the same label share the prefix, so shortened ids still match.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%s", k.Label, k.ID)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
