package ml

import (
	"testing"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTransform(t *testing.T) {

	type test struct {
		data model.Matrix
		mean []float64
		std  []float64
	}

	tests := map[string]test{
		"rfm": {
			data: model.Matrix{{10, 1, 100}, {12, 1, 110}, {200, 20, 5000}, {210, 22, 5200}},
			mean: []float64{108, 11, 2602.5},
		},
		"constant-column": {
			data: model.Matrix{{1, 5}, {2, 5}, {3, 5}},
			mean: []float64{2, 5},
		},
		"single-row": {
			data: model.Matrix{{7, 8, 9}},
			mean: []float64{7, 8, 9},
			std:  []float64{0, 0, 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			orig := tt.data.Copy()
			scaled, params := FitTransform(tt.data)
			// input must not be touched
			assert.Equal(t, orig, tt.data)
			require.Equal(t, len(tt.data), len(scaled))
			assert.InDeltaSlice(t, tt.mean, params.Mean, 1e-9)
			if tt.std != nil {
				assert.Equal(t, tt.std, params.StdDev)
			}

			// scaled columns have zero mean and unit variance, constant columns are all 0
			check := Fit(scaled)
			for j := range params.StdDev {
				assert.InDelta(t, 0, check.Mean[j], 1e-9)
				if params.StdDev[j] == 0 {
					for i := range scaled {
						assert.Equal(t, 0.0, scaled[i][j])
					}
					assert.Equal(t, 0.0, check.StdDev[j])
				} else {
					assert.InDelta(t, 1, check.StdDev[j], 1e-9)
				}
			}

			// round trip
			back := params.Inverse(scaled)
			for i := range back {
				assert.InDeltaSlice(t, tt.data[i], back[i], 1e-9)
			}
		})
	}
}

func TestFit_Idempotent(t *testing.T) {
	data := model.Matrix{{1, 2}, {3, 5}, {8, 13}}
	_, p1 := FitTransform(data)
	_, p2 := FitTransform(data)
	assert.Equal(t, p1, p2)
}
