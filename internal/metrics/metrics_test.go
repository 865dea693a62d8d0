package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.Observe(model.DBSCAN, &model.Result{
		Clusters: 3,
		Quality:  model.Quality{NoiseRatio: model.Score(0.25)},
	}, nil, 10*time.Millisecond)
	m.Observe(model.DBSCAN, nil, errors.New("failed"), time.Millisecond)
	m.Observe(model.KMeans, &model.Result{Clusters: 2}, nil, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Runs.WithLabelValues("dbscan", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Runs.WithLabelValues("dbscan", StatusError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.prometheus.Clusters.WithLabelValues("dbscan")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Clusters.WithLabelValues("kmeans")))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.prometheus.NoiseRatio))
}
