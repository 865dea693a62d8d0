package model

import (
	"fmt"
	"sort"

	seg_math "github.com/drakos74/free-segment/internal/math"
)

// ScalingParameters holds the per column mean and population standard deviation
// used to standardise a matrix.
type ScalingParameters struct {
	Mean   []float64 `json:"mean"`
	StdDev []float64 `json:"std"`
}

// Apply standardises the given vector, constant columns map to 0.
func (p ScalingParameters) Apply(v Vector) Vector {
	s := make(Vector, len(v))
	for j, x := range v {
		if p.StdDev[j] == 0 {
			continue
		}
		s[j] = (x - p.Mean[j]) / p.StdDev[j]
	}
	return s
}

// Transform standardises every row of the matrix into a new matrix.
func (p ScalingParameters) Transform(m Matrix) Matrix {
	scaled := make(Matrix, len(m))
	for i, v := range m {
		scaled[i] = p.Apply(v)
	}
	return scaled
}

// Revert reverses the standardisation of the given vector.
// Constant columns map back to their mean e.g. the original constant.
func (p ScalingParameters) Revert(v Vector) Vector {
	r := make(Vector, len(v))
	for j, x := range v {
		r[j] = x*p.StdDev[j] + p.Mean[j]
	}
	return r
}

// Inverse reverses the standardisation of every row of the matrix.
func (p ScalingParameters) Inverse(m Matrix) Matrix {
	orig := make(Matrix, len(m))
	for i, v := range m {
		orig[i] = p.Revert(v)
	}
	return orig
}

// Quality holds the quality scores of a partition.
// Scores that are not defined for a run are omitted.
type Quality struct {
	Silhouette    *float64 `json:"silhouette,omitempty"`
	DaviesBouldin *float64 `json:"daviesBouldin,omitempty"`
	NoiseRatio    *float64 `json:"noiseRatio,omitempty"`
}

// Score is a helper for assigning optional scores.
func Score(f float64) *float64 {
	return &f
}

// Result is the output of a clustering run.
type Result struct {
	Method         Method      `json:"method"`
	Labels         []Label     `json:"labels"`
	Centroids      Matrix      `json:"centroids,omitempty"`
	ComponentMeans Matrix      `json:"componentMeans,omitempty"`
	Sizes          map[int]int `json:"sizes"`
	Clusters       int         `json:"clusters"`
	Noise          int         `json:"noise"`
	Iterations     int         `json:"iterations"`
	Converged      bool        `json:"converged"`
	Quality        Quality     `json:"quality"`
	// Scaling is set only if the input was standardised.
	Scaling *ScalingParameters `json:"scaling,omitempty"`
	// OriginalCentroids are the prototypes in the units of the input.
	OriginalCentroids Matrix `json:"originalCentroids,omitempty"`
}

// Prototypes returns the centroids or component means of the result.
func (r Result) Prototypes() Matrix {
	if len(r.ComponentMeans) > 0 {
		return r.ComponentMeans
	}
	return r.Centroids
}

// Predict assigns the given vector to the nearest prototype.
// The vector must be in the same space as the clustered matrix e.g. already standardised.
func (r Result) Predict(v Vector) (Label, error) {
	if r.Method == DBSCAN {
		return Label{}, fmt.Errorf("no prototypes for density clusters: %w", UnsupportedMethodErr)
	}
	prototypes := r.Prototypes()
	if len(prototypes) == 0 {
		return Label{}, fmt.Errorf("result has no prototypes: %w", InsufficientDataErr)
	}
	if len(v) != len(prototypes[0]) {
		return Label{}, fmt.Errorf("vector of %d features for prototypes of %d: %w", len(v), len(prototypes[0]), ShapeMismatchErr)
	}
	return ClusterLabel(seg_math.Nearest(v, prototypes)), nil
}

// ClusterIDs returns the sorted ids of the clusters present in the result.
func (r Result) ClusterIDs() []int {
	ids := make([]int, 0, len(r.Sizes))
	for id := range r.Sizes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
