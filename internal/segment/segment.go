// Package segment runs a configured clustering engine over a feature matrix
// and joins the outcome back to the customers it came from.
package segment

import (
	"fmt"
	"time"

	"github.com/drakos74/free-segment/internal/math/ml"
	"github.com/drakos74/free-segment/internal/model"
	"github.com/rs/zerolog/log"
)

// Engine creates the clustering engine for the given configuration.
func Engine(cfg model.Config) (ml.Engine, error) {
	method, err := model.ParseMethod(string(cfg.Method))
	if err != nil {
		return nil, err
	}
	cfg.Method = method
	switch method {
	case model.KMeans:
		return ml.NewKMeans(cfg.K, cfg.Iterations(), cfg.RandomState).WithWorkers(cfg.Workers), nil
	case model.DBSCAN:
		return ml.NewDBSCAN(cfg.Eps, cfg.MinSamples).WithWorkers(cfg.Workers), nil
	case model.GMM:
		return ml.NewGMM(cfg.NComponents, cfg.Iterations(), cfg.RandomState).WithWorkers(cfg.Workers), nil
	}
	return nil, fmt.Errorf("no engine for '%s': %w", cfg.Method, model.UnsupportedMethodErr)
}

// Run standardises the matrix if configured, and clusters it with the configured engine.
// The input matrix is never modified.
func Run(data model.Matrix, cfg model.Config) (model.Result, error) {
	if len(data) == 0 {
		return model.Result{}, fmt.Errorf("no rows to cluster: %w", model.InsufficientDataErr)
	}
	if err := data.Validate(); err != nil {
		return model.Result{}, err
	}
	method, err := model.ParseMethod(string(cfg.Method))
	if err != nil {
		return model.Result{}, err
	}
	cfg.Method = method
	if err := cfg.Validate(); err != nil {
		return model.Result{}, err
	}
	if k := cfg.Clusters(); k > len(data) {
		return model.Result{}, fmt.Errorf("%d rows for %d clusters: %w", len(data), k, model.InsufficientDataErr)
	}

	engine, err := Engine(cfg)
	if err != nil {
		return model.Result{}, err
	}

	start := time.Now()
	log.Debug().
		Str("method", string(cfg.Method)).
		Int("rows", data.Rows()).
		Int("features", data.Dim()).
		Bool("standardize", cfg.Standardize).
		Msg("starting clustering")

	input := data
	var params *model.ScalingParameters
	if cfg.Standardize {
		scaled, p := ml.FitTransform(data)
		input = scaled
		params = &p
	}

	result, err := engine.Run(input)
	if err != nil {
		return model.Result{}, fmt.Errorf("could not cluster with '%s': %w", cfg.Method, err)
	}

	prototypes := result.Prototypes()
	if params != nil {
		result.Scaling = params
		result.OriginalCentroids = params.Inverse(prototypes)
	} else {
		result.OriginalCentroids = prototypes.Copy()
	}

	for id, size := range result.Sizes {
		if size == 0 {
			log.Debug().
				Str("method", string(cfg.Method)).
				Int("cluster", id).
				Msg("cluster ended up empty")
		}
	}
	if result.Clusters == 0 {
		log.Debug().
			Str("method", string(cfg.Method)).
			Int("noise", result.Noise).
			Msg("no clusters found")
	}

	event := log.Info().
		Str("method", string(cfg.Method)).
		Int("rows", data.Rows()).
		Int("clusters", result.Clusters).
		Int("iterations", result.Iterations).
		Dur("duration", time.Since(start))
	if s := result.Quality.Silhouette; s != nil {
		event = event.Float64("silhouette", *s)
	}
	if db := result.Quality.DaviesBouldin; db != nil {
		event = event.Float64("davies-bouldin", *db)
	}
	if nr := result.Quality.NoiseRatio; nr != nil {
		event = event.Float64("noise-ratio", *nr)
	}
	event.Msg("clustering completed")

	return result, nil
}
