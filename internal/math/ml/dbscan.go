package ml

import (
	"fmt"

	seg_math "github.com/drakos74/free-segment/internal/math"
	"github.com/drakos74/free-segment/internal/model"
)

// DBSCAN partitions a matrix into density connected clusters plus noise.
// Neighbourhoods are computed with a full scan, there is no spatial index.
type DBSCAN struct {
	eps        float64
	minSamples int
	workers    int
}

// NewDBSCAN creates a new density based engine.
func NewDBSCAN(eps float64, minSamples int) *DBSCAN {
	return &DBSCAN{
		eps:        eps,
		minSamples: minSamples,
		workers:    1,
	}
}

// WithWorkers sets the number of workers used for neighbourhood scans and scoring.
func (db *DBSCAN) WithWorkers(workers int) *DBSCAN {
	db.workers = workers
	return db
}

// Run clusters the given matrix.
func (db *DBSCAN) Run(data model.Matrix) (model.Result, error) {
	if db.eps <= 0 {
		return model.Result{}, fmt.Errorf("eps must be positive '%f': %w", db.eps, model.InvalidConfigErr)
	}
	if db.minSamples < 1 {
		return model.Result{}, fmt.Errorf("minSamples must be at least 1 '%d': %w", db.minSamples, model.InvalidConfigErr)
	}
	if len(data) == 0 {
		return model.Result{}, fmt.Errorf("no rows to cluster: %w", model.InsufficientDataErr)
	}

	labels := make([]model.Label, len(data))
	queued := make([]bool, len(data))
	var cluster int

	for i := range data {
		if !labels[i].IsUnvisited() {
			continue
		}
		neighbours := db.neighbours(data, i)
		if len(neighbours) < db.minSamples {
			labels[i] = model.NoiseLabel()
			continue
		}

		labels[i] = model.ClusterLabel(cluster)
		frontier := make([]int, 0, len(neighbours))
		frontier = db.enqueue(frontier, neighbours, labels, queued)

		for len(frontier) > 0 {
			q := frontier[0]
			frontier = frontier[1:]
			queued[q] = false

			switch labels[q].Kind {
			case model.Noise:
				// border point
				labels[q] = model.ClusterLabel(cluster)
			case model.Unvisited:
				labels[q] = model.ClusterLabel(cluster)
				if qn := db.neighbours(data, q); len(qn) >= db.minSamples {
					frontier = db.enqueue(frontier, qn, labels, queued)
				}
			}
		}
		cluster++
	}

	groups := members(labels)
	sizes := make(map[int]int, cluster)
	centroids := make(model.Matrix, cluster)
	for c := 0; c < cluster; c++ {
		sizes[c] = len(groups[c])
		centroids[c] = seg_math.Mean(data, groups[c])
	}

	var noise int
	for _, l := range labels {
		if l.IsNoise() {
			noise++
		}
	}

	quality := model.Quality{
		NoiseRatio: model.Score(float64(noise) / float64(len(data))),
	}
	if cluster >= 2 {
		quality.Silhouette = model.Score(Silhouette(data, labels, db.workers))
		quality.DaviesBouldin = model.Score(DaviesBouldin(data, labels, centroids))
	}

	return model.Result{
		Method:     model.DBSCAN,
		Labels:     labels,
		Centroids:  centroids,
		Sizes:      sizes,
		Clusters:   cluster,
		Noise:      noise,
		Iterations: 1,
		Converged:  true,
		Quality:    quality,
	}, nil
}

// enqueue adds the rows that can still change label and are not already waiting in the frontier.
func (db *DBSCAN) enqueue(frontier, rows []int, labels []model.Label, queued []bool) []int {
	for _, r := range rows {
		if queued[r] {
			continue
		}
		if _, ok := labels[r].Cluster(); ok {
			continue
		}
		queued[r] = true
		frontier = append(frontier, r)
	}
	return frontier
}

// neighbours returns all other rows within eps of row p, boundary included, in row order.
func (db *DBSCAN) neighbours(data model.Matrix, p int) []int {
	found := make([][]int, len(split(len(data), db.workers)))
	parallel(len(data), db.workers, func(w, a, b int) {
		var nn []int
		for i := a; i < b; i++ {
			if i != p && seg_math.Euclidean(data[p], data[i]) <= db.eps {
				nn = append(nn, i)
			}
		}
		found[w] = nn
	})
	var neighbours []int
	for _, nn := range found {
		neighbours = append(neighbours, nn...)
	}
	return neighbours
}
