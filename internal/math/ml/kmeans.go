package ml

import (
	"fmt"

	seg_math "github.com/drakos74/free-segment/internal/math"
	"github.com/drakos74/free-segment/internal/model"
)

// KMeans partitions a matrix into exactly k clusters with k-means++ seeding and Lloyd's iterations.
type KMeans struct {
	k          int
	iterations int
	seed       int64
	workers    int
}

// NewKMeans creates a new k-means engine.
func NewKMeans(k, iterations int, seed int64) *KMeans {
	return &KMeans{
		k:          k,
		iterations: iterations,
		seed:       seed,
		workers:    1,
	}
}

// WithWorkers sets the number of workers used for the assignment and scoring steps.
func (km *KMeans) WithWorkers(workers int) *KMeans {
	km.workers = workers
	return km
}

// Run clusters the given matrix.
func (km *KMeans) Run(data model.Matrix) (model.Result, error) {
	if km.k < 1 {
		return model.Result{}, fmt.Errorf("k must be at least 1 '%d': %w", km.k, model.InvalidConfigErr)
	}
	if km.iterations < 1 {
		return model.Result{}, fmt.Errorf("iterations must be at least 1 '%d': %w", km.iterations, model.InvalidConfigErr)
	}
	if len(data) < km.k {
		return model.Result{}, fmt.Errorf("%d rows for %d clusters: %w", len(data), km.k, model.InsufficientDataErr)
	}

	centroids := km.seedCentroids(data)
	assignments := make([]int, len(data))
	for i := range assignments {
		assignments[i] = -1
	}

	var (
		iterations int
		converged  bool
	)
	for iterations < km.iterations {
		iterations++
		if km.assign(data, centroids, assignments) == 0 {
			converged = true
			break
		}
		centroids = update(data, centroids, assignments)
	}

	labels := make([]model.Label, len(data))
	sizes := make(map[int]int, km.k)
	for c := 0; c < km.k; c++ {
		sizes[c] = 0
	}
	for i, a := range assignments {
		labels[i] = model.ClusterLabel(a)
		sizes[a]++
	}

	var clusters int
	for _, s := range sizes {
		if s > 0 {
			clusters++
		}
	}

	return model.Result{
		Method:     model.KMeans,
		Labels:     labels,
		Centroids:  centroids,
		Sizes:      sizes,
		Clusters:   clusters,
		Iterations: iterations,
		Converged:  converged,
		Quality: model.Quality{
			Silhouette:    model.Score(Silhouette(data, labels, km.workers)),
			DaviesBouldin: model.Score(DaviesBouldin(data, labels, centroids)),
		},
	}, nil
}

// seedCentroids picks the initial centroids with the k-means++ strategy.
func (km *KMeans) seedCentroids(data model.Matrix) model.Matrix {
	rnd := seg_math.NewRand(km.seed)

	centroids := make(model.Matrix, 0, km.k)
	centroids = append(centroids, data[rnd.Intn(len(data))].Copy())

	d := make([]float64, len(data))
	for i := 1; i < km.k; i++ {
		for j, v := range data {
			l := seg_math.SquaredEuclidean(v, centroids[0])
			for g := 1; g < len(centroids); g++ {
				if f := seg_math.SquaredEuclidean(v, centroids[g]); f < l {
					l = f
				}
			}
			d[j] = l
		}
		centroids = append(centroids, data[rnd.Weighted(d)].Copy())
	}
	return centroids
}

// assign moves every row to its nearest centroid and returns the number of rows that changed cluster.
func (km *KMeans) assign(data, centroids model.Matrix, assignments []int) int {
	next := make([]int, len(data))
	parallel(len(data), km.workers, func(_, a, b int) {
		for i := a; i < b; i++ {
			next[i] = seg_math.Nearest(data[i], centroids)
		}
	})
	var changes int
	for i, n := range next {
		if assignments[i] != n {
			changes++
			assignments[i] = n
		}
	}
	return changes
}

// update recomputes each centroid as the mean of its rows.
// A centroid without rows keeps its previous position.
func update(data, centroids model.Matrix, assignments []int) model.Matrix {
	members := make([][]int, len(centroids))
	for i, a := range assignments {
		members[a] = append(members[a], i)
	}
	next := make(model.Matrix, len(centroids))
	for c := range centroids {
		if m := seg_math.Mean(data, members[c]); m != nil {
			next[c] = m
			continue
		}
		next[c] = centroids[c]
	}
	return next
}
