package csv

import (
	"errors"
	"strings"
	"testing"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	table, err := Import("testdata/customers.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"recency", "frequency", "monetary"}, table.Header)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, table.IDs)
	assert.Equal(t, model.Matrix{{10, 1, 100}, {12, 1, 110}, {200, 20, 5000}, {210, 22, 5200}}, table.Features)
}

func TestImport_Missing(t *testing.T) {
	_, err := Import("testdata/missing.csv")
	assert.Error(t, err)
}

func TestRead_Errors(t *testing.T) {
	type test struct {
		input string
		err   error
	}

	tests := map[string]test{
		"empty": {
			input: "",
			err:   EmptyErr,
		},
		"no-features": {
			input: "id\nc1\n",
			err:   model.InvalidDataErr,
		},
		"not-numeric": {
			input: "id,a\nc1,x\n",
			err:   model.InvalidDataErr,
		},
		"ragged": {
			input: "id,a,b\nc1,1\n",
			err:   model.InvalidDataErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, tt.err), "unexpected error: %v", err)
		})
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	table, err := Read(strings.NewReader("id, a, b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Empty(t, table.Features)
}
