package buffer

import (
	"fmt"
	"math"
)

// Stats is a set of statistical properties of a set of numbers.
// Mean and variance are accumulated with Welford's method,
// so a constant sequence has a variance of exactly 0.
type Stats struct {
	count          int
	min, max       float64
	mean, dSquared float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{
		min: math.MaxFloat64,
		max: -math.MaxFloat64,
	}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	s.count++
	diff := (v - s.mean) / float64(s.count)
	mean := s.mean + diff
	squaredDiff := (v - mean) * (v - s.mean)
	s.dSquared += squaredDiff
	s.mean = mean

	if s.min > v {
		s.min = v
	}

	if s.max < v {
		s.max = v
	}
}

// Avg returns the average value of the set.
func (s Stats) Avg() float64 {
	return s.mean
}

// Min returns the smallest element.
func (s Stats) Min() float64 {
	return s.min
}

// Max returns the largest element.
func (s Stats) Max() float64 {
	return s.max
}

// Variance is the population variance of the set.
func (s Stats) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.dSquared / float64(s.count)
}

// StDev is the population standard deviation of the set.
func (s Stats) StDev() float64 {
	return math.Sqrt(s.Variance())
}

// StatsCollector is a collection of Stats variables.
// This enables column-wise tracking of feature rows.
type StatsCollector struct {
	dim   int
	stats []*Stats
}

// NewStatsCollector creates a new Stats collector.
func NewStatsCollector(dim int) *StatsCollector {
	stats := make([]*Stats, dim)
	for i := 0; i < dim; i++ {
		stats[i] = NewStats()
	}
	return &StatsCollector{
		dim:   dim,
		stats: stats,
	}
}

// Push pushes each value to the corresponding dimension.
func (sc *StatsCollector) Push(v ...float64) {
	if len(v) != sc.dim {
		panic(fmt.Sprintf("inconsistent dimensions %d vs %d", len(v), sc.dim))
	}
	for i := 0; i < len(sc.stats); i++ {
		sc.stats[i].Push(v[i])
	}
}

// Avg returns the per dimension averages.
func (sc StatsCollector) Avg() []float64 {
	avg := make([]float64, sc.dim)
	for i, s := range sc.stats {
		avg[i] = s.Avg()
	}
	return avg
}

// Min returns the per dimension minimum.
func (sc StatsCollector) Min() []float64 {
	m := make([]float64, sc.dim)
	for i, s := range sc.stats {
		m[i] = s.Min()
	}
	return m
}

// Max returns the per dimension maximum.
func (sc StatsCollector) Max() []float64 {
	m := make([]float64, sc.dim)
	for i, s := range sc.stats {
		m[i] = s.Max()
	}
	return m
}

// StDev returns the per dimension population standard deviations.
func (sc StatsCollector) StDev() []float64 {
	std := make([]float64, sc.dim)
	for i, s := range sc.stats {
		std[i] = s.StDev()
	}
	return std
}
