package model

import (
	"encoding/json"
	"fmt"
)

// Kind defines the state of a row label.
type Kind byte

const (
	// Unvisited marks a row not yet processed by the algorithm.
	Unvisited Kind = iota
	// Noise marks a row that does not belong to any cluster.
	Noise
	// Member marks a row assigned to a cluster.
	Member
)

// NoiseID is the external integer representation of the noise label.
const NoiseID = -1

// Label is the cluster assignment of a single row.
type Label struct {
	Kind Kind
	ID   int
}

// ClusterLabel creates a label for the given cluster index.
func ClusterLabel(id int) Label {
	return Label{Kind: Member, ID: id}
}

// NoiseLabel creates a noise label.
func NoiseLabel() Label {
	return Label{Kind: Noise}
}

// IsNoise returns true if the row is noise.
func (l Label) IsNoise() bool {
	return l.Kind == Noise
}

// IsUnvisited returns true if the row has not been labeled yet.
func (l Label) IsUnvisited() bool {
	return l.Kind == Unvisited
}

// Cluster returns the cluster index and true if the label is a cluster member.
func (l Label) Cluster() (int, bool) {
	if l.Kind != Member {
		return 0, false
	}
	return l.ID, true
}

// Int returns the external integer representation, NoiseID for noise.
func (l Label) Int() int {
	switch l.Kind {
	case Member:
		return l.ID
	default:
		return NoiseID
	}
}

func (l Label) String() string {
	switch l.Kind {
	case Member:
		return fmt.Sprintf("%d", l.ID)
	case Noise:
		return "noise"
	default:
		return "unvisited"
	}
}

// MarshalJSON encodes the label as its integer representation.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Int())
}

// UnmarshalJSON decodes the integer representation, negative values become noise.
func (l *Label) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("could not decode label '%s': %w", string(data), err)
	}
	if i < 0 {
		*l = NoiseLabel()
		return nil
	}
	*l = ClusterLabel(i)
	return nil
}

// Labels converts integer labels into labels, negative values become noise.
func Labels(ii []int) []Label {
	ll := make([]Label, len(ii))
	for i, v := range ii {
		if v < 0 {
			ll[i] = NoiseLabel()
		} else {
			ll[i] = ClusterLabel(v)
		}
	}
	return ll
}

// Ints converts labels into their integer representation.
func Ints(ll []Label) []int {
	ii := make([]int, len(ll))
	for i, l := range ll {
		ii[i] = l.Int()
	}
	return ii
}
