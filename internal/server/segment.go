package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/drakos74/free-segment/internal/metrics"
	"github.com/drakos74/free-segment/internal/model"
	"github.com/drakos74/free-segment/internal/segment"
	"github.com/drakos74/free-segment/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Request is the payload of a clustering request.
// Missing ids default to the row index, a missing config to the service defaults.
type Request struct {
	IDs      []string      `json:"ids"`
	Features [][]float64   `json:"features"`
	Config   *model.Config `json:"config"`
}

// Segmentation serves clustering requests and the persisted reports.
type Segmentation struct {
	defaults   model.Config
	minSamples int
	debug      bool
	store      storage.Persistence
	registry   storage.Registry
	metrics    *metrics.Metrics
}

// NewSegmentation creates the clustering handlers.
func NewSegmentation(defaults model.Config, minSamples int) *Segmentation {
	if minSamples < model.MinimumRequestSamples {
		minSamples = model.MinimumRequestSamples
	}
	return &Segmentation{
		defaults:   defaults,
		minSamples: minSamples,
		store:      storage.NewVoidStorage(),
		registry:   storage.NewVoidRegistry(),
		metrics:    metrics.Observer,
	}
}

// WithStorage persists every report into the given store and registry.
func (s *Segmentation) WithStorage(store storage.Persistence, registry storage.Registry) *Segmentation {
	s.store = store
	s.registry = registry
	return s
}

// WithMetrics records the runs on the given metrics.
func (s *Segmentation) WithMetrics(m *metrics.Metrics) *Segmentation {
	s.metrics = m
	return s
}

// Debug logs the request payloads.
func (s *Segmentation) Debug() *Segmentation {
	s.debug = true
	return s
}

// Routes returns the routes of the clustering api.
func (s *Segmentation) Routes() []Route {
	return []Route{
		{Action: Api, Path: "segment", Method: POST, Exec: s.segment},
		{Action: Api, Path: "report", Method: GET, Exec: s.report},
		{Action: Api, Path: "history", Method: GET, Exec: s.history},
	}
}

func (s *Segmentation) segment(ctx context.Context, r *http.Request) ([]byte, int, error) {
	var request Request
	if err := JsonRead(r, s.debug, &request); err != nil {
		return nil, 0, err
	}

	cfg := s.defaults
	if request.Config != nil {
		cfg = *request.Config
	}
	if len(request.Features) < s.minSamples {
		return nil, 0, fmt.Errorf("%d rows below the minimum of %d: %w", len(request.Features), s.minSamples, model.InsufficientDataErr)
	}
	ids := request.IDs
	if len(ids) == 0 {
		ids = make([]string, len(request.Features))
		for i := range ids {
			ids[i] = strconv.Itoa(i)
		}
	}

	type outcome struct {
		report *segment.Report
		err    error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		report, err := segment.NewReport(ids, model.NewMatrix(request.Features), cfg)
		done <- outcome{report: report, err: err}
	}()

	select {
	case <-ctx.Done():
		s.metrics.Observe(cfg.Method, nil, ctx.Err(), time.Since(start))
		return nil, 0, fmt.Errorf("clustering %d rows did not complete: %w", len(request.Features), ctx.Err())
	case o := <-done:
		if o.err != nil {
			s.metrics.Observe(cfg.Method, nil, o.err, time.Since(start))
			return nil, 0, o.err
		}
		s.metrics.Observe(o.report.Result.Method, &o.report.Result, nil, time.Since(start))
		if err := segment.Save(s.store, s.registry, o.report); err != nil {
			log.Error().Err(err).Str("id", o.report.ID).Msg("could not persist report")
		}
		b, err := json.Marshal(o.report)
		if err != nil {
			return nil, 0, fmt.Errorf("could not encode report: %w", err)
		}
		return b, http.StatusOK, nil
	}
}

func (s *Segmentation) report(ctx context.Context, r *http.Request) ([]byte, int, error) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid report id: %s: %w", err.Error(), BadRequestErr)
	}
	report, err := segment.Load(s.store, id.String())
	if err != nil {
		return nil, 0, err
	}
	b, err := json.Marshal(report)
	if err != nil {
		return nil, 0, fmt.Errorf("could not encode report: %w", err)
	}
	return b, http.StatusOK, nil
}

func (s *Segmentation) history(ctx context.Context, r *http.Request) ([]byte, int, error) {
	method, err := model.ParseMethod(r.URL.Query().Get("method"))
	if err != nil {
		return nil, 0, err
	}
	events, err := segment.History(s.registry, method)
	if err != nil {
		return nil, 0, err
	}
	b, err := json.Marshal(events)
	if err != nil {
		return nil, 0, fmt.Errorf("could not encode history: %w", err)
	}
	return b, http.StatusOK, nil
}
