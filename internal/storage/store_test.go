package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Path(t *testing.T) {
	k := Key{Hash: 3, Name: "report", Label: "abc"}
	assert.Equal(t, "report_3_abc", k.Path())
}

func TestKey_Validate(t *testing.T) {
	type test struct {
		key Key
		err error
	}

	tests := map[string]test{
		"plain": {
			key: Key{Name: "report", Label: "7b1c2a4e-8f0d-4c55-9a35-1d2e3f4a5b6c"},
		},
		"parent": {
			key: Key{Name: "report", Label: "/../../../../secret/creds"},
			err: InvalidKeyErr,
		},
		"dots": {
			key: Key{Name: "report", Label: "..x"},
			err: InvalidKeyErr,
		},
		"separator": {
			key: Key{Name: "report", Label: "a/b"},
			err: InvalidKeyErr,
		},
		"windows-separator": {
			key: Key{Name: "report", Label: `a\b`},
			err: InvalidKeyErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.err))
			}
		})
	}
}

func TestK_Validate(t *testing.T) {
	assert.NoError(t, K{Name: "runs", Label: "kmeans"}.Validate())
	assert.NoError(t, K{Name: "runs"}.Validate())
	assert.True(t, errors.Is(K{}.Validate(), InvalidKeyErr))
	assert.True(t, errors.Is(K{Name: "runs", Label: ".."}.Validate(), InvalidKeyErr))
	assert.True(t, errors.Is(K{Name: "../runs"}.Validate(), InvalidKeyErr))
}

func TestVoidStorage(t *testing.T) {
	store := NewVoidStorage()
	assert.NoError(t, store.Store(Key{Name: "x"}, 1))
	var v int
	assert.True(t, errors.Is(store.Load(Key{Name: "x"}, &v), NotFoundErr))
}

func TestMockStorage(t *testing.T) {
	store := NewMockStorage()
	k := Key{Name: "report", Label: "1"}
	require.NoError(t, store.Store(k, []int{1, 2}))

	var v []int
	require.NoError(t, store.Load(k, &v))
	assert.Equal(t, []int{1, 2}, v)
	assert.True(t, errors.Is(store.Load(Key{Name: "other"}, &v), NotFoundErr))
}

func TestMockRegistry(t *testing.T) {
	registry := NewMockRegistry()
	k := K{Name: "runs", Label: "kmeans"}
	require.NoError(t, registry.Add(k, map[string]int{"a": 1}))
	require.NoError(t, registry.Add(k, map[string]int{"a": 2}))

	var events []map[string]int
	require.NoError(t, registry.GetAll(k, &events))
	assert.Equal(t, []map[string]int{{"a": 1}, {"a": 2}}, events)
}
