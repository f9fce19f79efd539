package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drakos74/free-fit/internal/storage"
	"github.com/rs/zerolog/log"
)

// BlobStorage stores every value as a json file under <path>/<table>/<shard>.
type BlobStorage struct {
	path  string
	table string
	shard string
	debug bool
}

// BlobShard creates json blob storage shards for the table under the given root path.
// In debug mode every stored file is logged.
func BlobShard(path, table string, debug bool) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewJsonBlob(path, table, shard, debug), nil
	}
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	p := filepath.Join(s.path, s.table, s.shard)
	err := Save(p, k.Path(), value)
	if err == nil && s.debug {
		log.Info().Str("path", p).Str("file", k.Path()).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(filepath.Join(s.path, s.table, s.shard), k.Path(), value)
}

// NewJsonBlob creates a new json blob storage.
// table has the same schema
// shard is a logical split
func NewJsonBlob(path, table, shard string, debug bool) *BlobStorage {
	if path == "" {
		path = storage.DefaultDir
	}
	return &BlobStorage{
		table: table,
		shard: shard,
		path:  path,
		debug: debug,
	}
}

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s: %w", filePath, storage.CouldNotStoreErr)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal '%s': %v: %w", fileName, err, storage.CouldNotStoreErr)
	}

	p := filepath.Join(filePath, fmt.Sprintf("%s.json", fileName))
	err = os.WriteFile(p, b, 0644)
	if err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}

	return nil
}

// Load loads the payload from the given filePath and fileName.
// If there is no exact match, a single file starting with fileName is loaded instead.
func Load(filePath string, fileName string, value interface{}) error {
	p := filepath.Join(filePath, fmt.Sprintf("%s.json", fileName))

	data, err := os.ReadFile(p)
	if err != nil {
		data, err = loadPrefix(filePath, fileName)
		if err != nil {
			return err
		}
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal key for '%s': '%v': %w", fileName, err, storage.CouldNotLoadErr)
	}

	return nil
}

func loadPrefix(filePath string, prefix string) ([]byte, error) {
	entries, err := os.ReadDir(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %v: %w", filePath, err, storage.NotFoundErr)
	}

	matches := make([]string, 0)
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) && strings.HasSuffix(entry.Name(), ".json") {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("could not find '%s' in '%s': %w", prefix, filePath, storage.NotFoundErr)
	case 1:
		return os.ReadFile(filepath.Join(filePath, matches[0]))
	default:
		return nil, fmt.Errorf("multiple sources found for '%s': %v: %w", prefix, matches, storage.CouldNotLoadErr)
	}
}
