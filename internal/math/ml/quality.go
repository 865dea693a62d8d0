package ml

import (
	"sort"

	seg_math "github.com/drakos74/free-segment/internal/math"
	"github.com/drakos74/free-segment/internal/model"
)

// members groups the non-noise row indices by cluster id.
func members(labels []model.Label) map[int][]int {
	groups := make(map[int][]int)
	for i, l := range labels {
		if c, ok := l.Cluster(); ok {
			groups[c] = append(groups[c], i)
		}
	}
	return groups
}

func sortedKeys(groups map[int][]int) []int {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Silhouette computes the mean silhouette coefficient of the labeled rows.
// Noise rows are ignored, as are rows that are the only member of their cluster.
// It returns 0 if there are fewer than 2 clusters.
func Silhouette(data model.Matrix, labels []model.Label, workers int) float64 {
	groups := members(labels)
	if len(groups) < 2 {
		return 0
	}
	ids := sortedKeys(groups)
	index := make(map[int]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	scores := make([]float64, len(data))
	included := make([]bool, len(data))
	parallel(len(data), workers, func(_, a, b int) {
		sums := make([]float64, len(ids))
		for i := a; i < b; i++ {
			own, ok := labels[i].Cluster()
			if !ok || len(groups[own]) < 2 {
				continue
			}
			for c := range sums {
				sums[c] = 0
			}
			for c, id := range ids {
				for _, j := range groups[id] {
					if j != i {
						sums[c] += seg_math.Euclidean(data[i], data[j])
					}
				}
			}
			ownIndex := index[own]
			ai := sums[ownIndex] / float64(len(groups[own])-1)
			bi := -1.0
			for c, id := range ids {
				if c == ownIndex {
					continue
				}
				if m := sums[c] / float64(len(groups[id])); bi < 0 || m < bi {
					bi = m
				}
			}
			if bi < 0 {
				continue
			}
			included[i] = true
			if denom := maxFloat(ai, bi); denom > 0 {
				scores[i] = (bi - ai) / denom
			}
		}
	})

	var (
		sum   float64
		count int
	)
	for i, ok := range included {
		if ok {
			sum += scores[i]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// DaviesBouldin computes the Davies-Bouldin index of the labeled rows against the given centroids,
// where centroids are indexed by cluster id. Lower is better.
// Pairs of clusters with coinciding centroids do not contribute.
// It returns 0 if there are fewer than 2 clusters.
func DaviesBouldin(data model.Matrix, labels []model.Label, centroids model.Matrix) float64 {
	groups := members(labels)
	if len(groups) < 2 {
		return 0
	}
	ids := sortedKeys(groups)

	scatter := make([]float64, len(ids))
	for c, id := range ids {
		var s float64
		for _, i := range groups[id] {
			s += seg_math.Euclidean(data[i], centroids[id])
		}
		scatter[c] = s / float64(len(groups[id]))
	}

	var sum float64
	for c, id := range ids {
		var worst float64
		for o, other := range ids {
			if o == c {
				continue
			}
			d := seg_math.Euclidean(centroids[id], centroids[other])
			if d == 0 {
				continue
			}
			if r := (scatter[c] + scatter[o]) / d; r > worst {
				worst = r
			}
		}
		sum += worst
	}
	return sum / float64(len(ids))
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
