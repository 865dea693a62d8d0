package ml

import (
	"testing"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSilhouette(t *testing.T) {

	type test struct {
		data   model.Matrix
		labels []int
		score  float64
	}

	tests := map[string]test{
		"two-pairs": {
			data:   model.Matrix{{0}, {1}, {10}, {11}},
			labels: []int{0, 0, 1, 1},
			score:  (2*9.5/10.5 + 2*8.5/9.5) / 4,
		},
		"singleton-excluded": {
			data:   model.Matrix{{0}, {1}, {10}},
			labels: []int{0, 0, 1},
			// row 0 : a = 1, b = 10 ; row 1 : a = 1, b = 9
			score: (9.0/10 + 8.0/9) / 2,
		},
		"noise-ignored": {
			data:   model.Matrix{{0}, {1}, {10}, {11}, {100}},
			labels: []int{0, 0, 1, 1, -1},
			score:  (2*9.5/10.5 + 2*8.5/9.5) / 4,
		},
		"single-cluster": {
			data:   model.Matrix{{0}, {1}, {10}},
			labels: []int{0, 0, 0},
			score:  0,
		},
		"only-noise": {
			data:   model.Matrix{{0}, {1}},
			labels: []int{-1, -1},
			score:  0,
		},
		"all-singletons": {
			data:   model.Matrix{{0}, {1}, {2}},
			labels: []int{0, 1, 2},
			score:  0,
		},
		"zero-distances": {
			data:   model.Matrix{{1, 1}, {1, 1}, {1, 1}, {1, 1}},
			labels: []int{0, 0, 1, 1},
			score:  0,
		},
		"wrong-assignment": {
			data:   model.Matrix{{0}, {10}, {1}, {11}},
			labels: []int{0, 0, 1, 1},
			// every row is closer to the other cluster
			score: -1 * (0.4 + 0.5 + 0.5 + 0.4) / 4,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			labels := model.Labels(tt.labels)
			s := Silhouette(tt.data, labels, 1)
			assert.InDelta(t, tt.score, s, 1e-12)
			assert.GreaterOrEqual(t, s, -1.0)
			assert.LessOrEqual(t, s, 1.0)
			// parallel execution gives the exact same score
			assert.Equal(t, s, Silhouette(tt.data, labels, 3))
		})
	}
}

func TestDaviesBouldin(t *testing.T) {

	type test struct {
		data      model.Matrix
		labels    []int
		centroids model.Matrix
		index     float64
	}

	tests := map[string]test{
		"two-pairs": {
			data:      model.Matrix{{0}, {1}, {10}, {11}},
			labels:    []int{0, 0, 1, 1},
			centroids: model.Matrix{{0.5}, {10.5}},
			index:     0.1,
		},
		"three-clusters": {
			data:      model.Matrix{{0}, {2}, {10}, {12}, {30}, {32}},
			labels:    []int{0, 0, 1, 1, 2, 2},
			centroids: model.Matrix{{1}, {11}, {31}},
			// scatter is 1 for all, maxima are 2/10, 2/10, 2/20
			index: (0.2 + 0.2 + 0.1) / 3,
		},
		"single-cluster": {
			data:      model.Matrix{{0}, {1}},
			labels:    []int{0, 0},
			centroids: model.Matrix{{0.5}},
			index:     0,
		},
		"coinciding-centroids": {
			data:      model.Matrix{{1}, {1}, {1}},
			labels:    []int{0, 0, 1},
			centroids: model.Matrix{{1}, {1}},
			index:     0,
		},
		"noise-ignored": {
			data:      model.Matrix{{0}, {1}, {10}, {11}, {1000}},
			labels:    []int{0, 0, 1, 1, -1},
			centroids: model.Matrix{{0.5}, {10.5}},
			index:     0.1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			db := DaviesBouldin(tt.data, model.Labels(tt.labels), tt.centroids)
			assert.InDelta(t, tt.index, db, 1e-12)
			assert.GreaterOrEqual(t, db, 0.0)
		})
	}
}
