package segment

import (
	"fmt"
	"sort"

	"github.com/drakos74/free-segment/internal/buffer"
	seg_math "github.com/drakos74/free-segment/internal/math"
	"github.com/drakos74/free-segment/internal/model"
)

// Summarize joins every row with its customer identifier and label,
// and describes each cluster in the units of the original features.
// Clusters are ordered by id, noise comes last.
func Summarize(ids []string, features model.Matrix, labels []model.Label) ([]model.Assignment, []model.Summary, error) {
	if len(ids) != len(features) || len(features) != len(labels) {
		return nil, nil, fmt.Errorf("%d ids, %d rows and %d labels: %w", len(ids), len(features), len(labels), model.ShapeMismatchErr)
	}
	dim := features.Dim()
	for i, v := range features {
		if len(v) != dim {
			return nil, nil, fmt.Errorf("row %d has %d features instead of %d: %w", i, len(v), dim, model.ShapeMismatchErr)
		}
	}

	assignments := make([]model.Assignment, len(ids))
	groups := make(map[model.Label][]int)
	for i, id := range ids {
		assignments[i] = model.Assignment{
			CustomerID: id,
			Label:      labels[i],
			Features:   features[i],
		}
		groups[labels[i]] = append(groups[labels[i]], i)
	}

	keys := make([]model.Label, 0, len(groups))
	for l := range groups {
		keys = append(keys, l)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].IsNoise() != keys[j].IsNoise() {
			return keys[j].IsNoise()
		}
		return keys[i].ID < keys[j].ID
	})

	summaries := make([]model.Summary, len(keys))
	for i, l := range keys {
		rows := groups[l]
		stats := buffer.NewStatsCollector(dim)
		members := make([]string, len(rows))
		for j, r := range rows {
			stats.Push(features[r]...)
			members[j] = ids[r]
		}
		summaries[i] = model.Summary{
			Label:      l,
			Size:       len(rows),
			Percentage: seg_math.Percent(len(rows), len(ids)),
			Averages:   stats.Avg(),
			Min:        stats.Min(),
			Max:        stats.Max(),
			Members:    members,
		}
	}

	return assignments, summaries, nil
}
