package segment

import (
	"fmt"
	"time"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/drakos74/free-segment/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	reportKey = "report"
	runsKey   = "runs"
)

// Report is the complete outcome of clustering a customer set.
type Report struct {
	ID          string             `json:"id"`
	Created     time.Time          `json:"created"`
	Config      model.Config       `json:"config"`
	Result      model.Result       `json:"result"`
	Assignments []model.Assignment `json:"assignments"`
	Summaries   []model.Summary    `json:"summaries"`
}

// NewReport clusters the given rows and summarises the outcome per customer.
func NewReport(ids []string, data model.Matrix, cfg model.Config) (*Report, error) {
	if len(ids) != len(data) {
		return nil, fmt.Errorf("%d ids for %d rows: %w", len(ids), len(data), model.ShapeMismatchErr)
	}
	result, err := Run(data, cfg)
	if err != nil {
		return nil, err
	}
	assignments, summaries, err := Summarize(ids, data, result.Labels)
	if err != nil {
		return nil, err
	}
	cfg.Method = result.Method
	return &Report{
		ID:          uuid.New().String(),
		Created:     time.Now(),
		Config:      cfg,
		Result:      result,
		Assignments: assignments,
		Summaries:   summaries,
	}, nil
}

// Predict assigns a new customer in original feature units to one of the report clusters.
func (r *Report) Predict(v model.Vector) (model.Label, error) {
	if scaling := r.Result.Scaling; scaling != nil {
		if len(v) != len(scaling.Mean) {
			return model.Label{}, fmt.Errorf("vector of %d features for %d columns: %w", len(v), len(scaling.Mean), model.ShapeMismatchErr)
		}
		v = scaling.Apply(v)
	}
	return r.Result.Predict(v)
}

// RunEvent is the registry entry of a single clustering run.
type RunEvent struct {
	ID         string       `json:"id"`
	Time       time.Time    `json:"time"`
	Method     model.Method `json:"method"`
	Rows       int          `json:"rows"`
	Clusters   int          `json:"clusters"`
	Noise      int          `json:"noise"`
	Converged  bool         `json:"converged"`
	Silhouette *float64     `json:"silhouette,omitempty"`
}

// Event creates the registry entry for the report.
func (r *Report) Event() RunEvent {
	return RunEvent{
		ID:         r.ID,
		Time:       r.Created,
		Method:     r.Result.Method,
		Rows:       len(r.Assignments),
		Clusters:   r.Result.Clusters,
		Noise:      r.Result.Noise,
		Converged:  r.Result.Converged,
		Silhouette: r.Result.Quality.Silhouette,
	}
}

// Save stores the report under its id and appends the run to the registry.
func Save(store storage.Persistence, registry storage.Registry, r *Report) error {
	err := store.Store(storage.Key{Name: reportKey, Label: r.ID}, r)
	if err != nil {
		return fmt.Errorf("could not store report '%s': %w", r.ID, err)
	}
	if registry == nil {
		return nil
	}
	err = registry.Add(storage.K{Name: runsKey, Label: string(r.Result.Method)}, r.Event())
	if err != nil {
		// the report itself is already stored
		log.Warn().Err(err).Str("id", r.ID).Msg("could not register run")
	}
	return nil
}

// Load retrieves the report with the given id.
func Load(store storage.Persistence, id string) (*Report, error) {
	var r Report
	if err := store.Load(storage.Key{Name: reportKey, Label: id}, &r); err != nil {
		return nil, fmt.Errorf("could not load report '%s': %w", id, err)
	}
	return &r, nil
}

// History returns the registered runs for the given method.
func History(registry storage.Registry, method model.Method) ([]RunEvent, error) {
	events := make([]RunEvent, 0)
	if err := registry.GetAll(storage.K{Name: runsKey, Label: string(method)}, &events); err != nil {
		return nil, fmt.Errorf("could not load history for '%s': %w", method, err)
	}
	return events, nil
}
