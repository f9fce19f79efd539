package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Path(t *testing.T) {
	k := Key{ID: "1234", Label: "fit"}
	assert.Equal(t, "fit_1234", k.Path())
}

func TestVoidStorage(t *testing.T) {

	p, err := VoidShard()("any")
	require.NoError(t, err)

	k := Key{ID: "1", Label: "fit"}
	assert.NoError(t, p.Store(k, 1))

	var v int
	err = p.Load(k, &v)
	assert.True(t, errors.Is(err, NotFoundErr))

}
