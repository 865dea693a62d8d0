package math

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Euclidean returns the euclidean distance of the two vectors.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// SquaredEuclidean returns the squared euclidean distance of the two vectors.
func SquaredEuclidean(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// Nearest returns the index of the closest vector to v.
// Ties are resolved to the lowest index.
func Nearest[V ~[]float64](v []float64, vv []V) int {
	var n int
	m := math.MaxFloat64
	for i, c := range vv {
		if d := Euclidean(v, c); d < m {
			m = d
			n = i
		}
	}
	return n
}

// Mean returns the coordinate-wise mean of the given rows of the set.
// It returns nil if there are no rows.
func Mean[V ~[]float64](set []V, rows []int) []float64 {
	if len(rows) == 0 {
		return nil
	}
	m := make([]float64, len(set[rows[0]]))
	for _, i := range rows {
		floats.Add(m, set[i])
	}
	floats.Scale(1/float64(len(rows)), m)
	return m
}
