package json

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/free-fit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestStorage_StoreAndLoad(t *testing.T) {

	type test struct {
		shard func(t *testing.T) storage.Shard
	}

	tests := map[string]test{
		"blob": {
			shard: func(t *testing.T) storage.Shard {
				return BlobShard(t.TempDir(), storage.ModelDir, false)
			},
		},
		"local": {
			shard: func(t *testing.T) storage.Shard {
				return LocalShard()
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := tt.shard(t)("fit")
			require.NoError(t, err)

			r := record{Name: "line", Values: []float64{1, 2.5}}
			err = p.Store(storage.Key{ID: "abcdef", Label: "model"}, r)
			require.NoError(t, err)

			var loaded record
			err = p.Load(storage.Key{ID: "abcdef", Label: "model"}, &loaded)
			require.NoError(t, err)
			assert.Equal(t, r, loaded)

			// prefix match
			loaded = record{}
			err = p.Load(storage.Key{ID: "abc", Label: "model"}, &loaded)
			require.NoError(t, err)
			assert.Equal(t, r, loaded)

			err = p.Load(storage.Key{ID: "xyz", Label: "model"}, &loaded)
			assert.True(t, errors.Is(err, storage.NotFoundErr), err)

			err = p.Store(storage.Key{ID: "abcxyz", Label: "model"}, r)
			require.NoError(t, err)
			err = p.Load(storage.Key{ID: "abc", Label: "model"}, &loaded)
			assert.True(t, errors.Is(err, storage.CouldNotLoadErr), err)

			var wrong int
			err = p.Load(storage.Key{ID: "abcdef", Label: "model"}, &wrong)
			assert.True(t, errors.Is(err, storage.CouldNotLoadErr), err)
		})
	}

}

func TestBlobStorage_Layout(t *testing.T) {

	dir := t.TempDir()
	s := NewJsonBlob(dir, "models", "fit", true)

	err := s.Store(storage.Key{ID: "1", Label: "model"}, record{Name: "x"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "models", "fit", "model_1.json"))
	assert.NoError(t, err)

	// missing directory
	var r record
	err = NewJsonBlob(dir, "other", "fit", false).Load(storage.Key{ID: "1", Label: "model"}, &r)
	assert.True(t, errors.Is(err, storage.NotFoundErr), err)

}
