// Package ml contains the clustering engines and the quality metrics of a partition.
// Engines are pure computations, every run owns its own random generator and buffers.
package ml

import "github.com/drakos74/free-segment/internal/model"

// Engine partitions a feature matrix.
type Engine interface {
	Run(data model.Matrix) (model.Result, error)
}
