package ml

import (
	"github.com/drakos74/free-segment/internal/model"
)

// GMM partitions a matrix into n components.
// NOTE : this is an approximation of a gaussian mixture, it runs a short k-means pass
// and reports the centroids as component means. There is no covariance estimation
// and no soft assignment.
type GMM struct {
	kmeans *KMeans
}

// NewGMM creates a new mixture engine.
func NewGMM(components, iterations int, seed int64) *GMM {
	return &GMM{
		kmeans: NewKMeans(components, iterations, seed),
	}
}

// WithWorkers sets the number of workers used for the assignment and scoring steps.
func (g *GMM) WithWorkers(workers int) *GMM {
	g.kmeans.WithWorkers(workers)
	return g
}

// Run clusters the given matrix.
func (g *GMM) Run(data model.Matrix) (model.Result, error) {
	result, err := g.kmeans.Run(data)
	if err != nil {
		return model.Result{}, err
	}
	result.Method = model.GMM
	result.ComponentMeans = result.Centroids
	result.Centroids = nil
	return result, nil
}
