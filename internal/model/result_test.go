package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalingParameters(t *testing.T) {
	p := ScalingParameters{
		Mean:   []float64{10, 5},
		StdDev: []float64{2, 0},
	}

	scaled := p.Transform(Matrix{{12, 5}, {8, 5}})
	assert.Equal(t, Matrix{{1, 0}, {-1, 0}}, scaled)
	assert.Equal(t, Matrix{{12, 5}, {8, 5}}, p.Inverse(scaled))
}

func TestResult_Predict(t *testing.T) {
	type test struct {
		result Result
		v      Vector
		label  Label
		err    error
	}

	tests := map[string]test{
		"kmeans": {
			result: Result{Method: KMeans, Centroids: Matrix{{0, 0}, {10, 10}}},
			v:      Vector{9, 8},
			label:  ClusterLabel(1),
		},
		"gmm": {
			result: Result{Method: GMM, ComponentMeans: Matrix{{0, 0}, {10, 10}}},
			v:      Vector{1, 2},
			label:  ClusterLabel(0),
		},
		"dbscan": {
			result: Result{Method: DBSCAN, Centroids: Matrix{{0, 0}}},
			v:      Vector{1, 2},
			err:    UnsupportedMethodErr,
		},
		"no-prototypes": {
			result: Result{Method: KMeans},
			v:      Vector{1, 2},
			err:    InsufficientDataErr,
		},
		"dimensions": {
			result: Result{Method: KMeans, Centroids: Matrix{{0, 0}}},
			v:      Vector{1},
			err:    ShapeMismatchErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l, err := tt.result.Predict(tt.v)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, l)
		})
	}
}

func TestResult_ClusterIDs(t *testing.T) {
	r := Result{Sizes: map[int]int{2: 1, 0: 3, 1: 0}}
	assert.Equal(t, []int{0, 1, 2}, r.ClusterIDs())
}
