package model

import (
	"fmt"
	"math"
)

// Vector is a single feature row e.g. recency, frequency and monetary value of a customer.
type Vector []float64

// Matrix is an ordered set of feature rows.
// The row index identifies the sample across labels and customer identifiers.
type Matrix []Vector

// NewMatrix wraps the given raw rows into a matrix without copying them.
func NewMatrix(rows [][]float64) Matrix {
	m := make(Matrix, len(rows))
	for i, r := range rows {
		m[i] = r
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Dim returns the number of feature columns.
func (m Matrix) Dim() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Copy creates a deep copy of the matrix.
func (m Matrix) Copy() Matrix {
	c := make(Matrix, len(m))
	for i, v := range m {
		c[i] = v.Copy()
	}
	return c
}

// Validate checks that all rows have the same length and only finite values.
func (m Matrix) Validate() error {
	dim := m.Dim()
	for i, v := range m {
		if len(v) != dim {
			return fmt.Errorf("row %d has %d features instead of %d: %w", i, len(v), dim, InvalidDataErr)
		}
		for j, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("row %d column %d is not finite: %w", i, j, InvalidDataErr)
			}
		}
	}
	if len(m) > 0 && dim == 0 {
		return fmt.Errorf("rows have no features: %w", InvalidDataErr)
	}
	return nil
}

// Copy creates a copy of the vector.
func (v Vector) Copy() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}
