package ml

import (
	"testing"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGMM_Run(t *testing.T) {
	data := blocks()

	result, err := NewGMM(2, 10, 42).Run(data)
	require.NoError(t, err)

	assert.Equal(t, model.GMM, result.Method)
	assert.Nil(t, result.Centroids)
	assert.Len(t, result.ComponentMeans, 2)
	assert.Equal(t, result.ComponentMeans, result.Prototypes())
	assert.LessOrEqual(t, result.Iterations, 10)

	// same as the equivalent k-means pass
	km, err := NewKMeans(2, 10, 42).Run(data)
	require.NoError(t, err)
	assert.Equal(t, km.Labels, result.Labels)
	assert.Equal(t, km.Centroids, result.ComponentMeans)
	assert.Equal(t, km.Quality, result.Quality)
}

func TestGMM_Errors(t *testing.T) {
	_, err := NewGMM(0, 10, 42).Run(blocks())
	assert.ErrorIs(t, err, model.InvalidConfigErr)

	_, err = NewGMM(5, 10, 42).Run(model.Matrix{{1}, {2}})
	assert.ErrorIs(t, err, model.InsufficientDataErr)
}
