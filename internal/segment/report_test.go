package segment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/drakos74/free-segment/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []string {
	ii := make([]string, n)
	for i := range ii {
		ii[i] = fmt.Sprintf("customer-%d", i)
	}
	return ii
}

func TestNewReport(t *testing.T) {
	cfg := config(model.KMeans, func(cfg *model.Config) {
		cfg.K = 2
	})

	report, err := NewReport(ids(4), rfm(), cfg)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, model.KMeans, report.Config.Method)
	assert.Len(t, report.Assignments, 4)
	assert.Len(t, report.Summaries, 2)
	assert.Equal(t, model.Vector{10, 1, 100}, report.Assignments[0].Features)

	event := report.Event()
	assert.Equal(t, report.ID, event.ID)
	assert.Equal(t, 4, event.Rows)
	assert.Equal(t, 2, event.Clusters)
}

func TestNewReport_ShapeMismatch(t *testing.T) {
	_, err := NewReport(ids(3), rfm(), model.DefaultConfig())
	assert.True(t, errors.Is(err, model.ShapeMismatchErr))
}

func TestReport_Predict(t *testing.T) {
	cfg := config(model.KMeans, func(cfg *model.Config) {
		cfg.K = 2
	})
	report, err := NewReport(ids(4), rfm(), cfg)
	require.NoError(t, err)

	low, err := report.Predict(model.Vector{11, 1, 90})
	require.NoError(t, err)
	assert.Equal(t, report.Assignments[0].Label, low)

	high, err := report.Predict(model.Vector{190, 19, 4800})
	require.NoError(t, err)
	assert.Equal(t, report.Assignments[3].Label, high)

	_, err = report.Predict(model.Vector{1, 2})
	assert.True(t, errors.Is(err, model.ShapeMismatchErr))
}

func TestReport_PredictDensity(t *testing.T) {
	cfg := config(model.DBSCAN, func(cfg *model.Config) {
		cfg.Eps = 0.5
		cfg.MinSamples = 3
	})
	report, err := NewReport(ids(20), blobs(), cfg)
	require.NoError(t, err)

	_, err = report.Predict(model.Vector{0, 0})
	assert.True(t, errors.Is(err, model.UnsupportedMethodErr))
}

func TestSaveAndLoad(t *testing.T) {
	cfg := config(model.KMeans, func(cfg *model.Config) {
		cfg.K = 2
	})
	report, err := NewReport(ids(4), rfm(), cfg)
	require.NoError(t, err)

	store := storage.NewMockStorage()
	registry := storage.NewMockRegistry()
	require.NoError(t, Save(store, registry, report))

	loaded, err := Load(store, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, loaded.ID)
	assert.Equal(t, report.Result.Labels, loaded.Result.Labels)
	assert.Equal(t, report.Result.Sizes, loaded.Result.Sizes)
	assert.Equal(t, report.Summaries, loaded.Summaries)
	assert.Equal(t, report.Config, loaded.Config)

	history, err := History(registry, model.KMeans)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, report.ID, history[0].ID)

	_, err = Load(store, "missing")
	assert.True(t, errors.Is(err, storage.NotFoundErr))
}

func TestSave_VoidRegistry(t *testing.T) {
	report, err := NewReport(ids(4), rfm(), config(model.KMeans, func(cfg *model.Config) {
		cfg.K = 2
	}))
	require.NoError(t, err)
	assert.NoError(t, Save(storage.NewMockStorage(), nil, report))
	assert.NoError(t, Save(storage.NewVoidStorage(), storage.NewVoidRegistry(), report))
}
