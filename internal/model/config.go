package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Method defines the clustering algorithm.
type Method string

const (
	// KMeans partitions the rows into exactly k clusters.
	KMeans Method = "kmeans"
	// DBSCAN partitions the rows into density connected clusters plus noise.
	DBSCAN Method = "dbscan"
	// GMM partitions the rows into n components.
	// NOTE : this is a k-means approximation, there is no soft assignment.
	GMM Method = "gmm"
)

// Methods returns the known methods.
func Methods() []Method {
	return []Method{KMeans, DBSCAN, GMM}
}

// ParseMethod parses the given string into a known method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case KMeans, DBSCAN, GMM:
		return m, nil
	}
	return m, fmt.Errorf("unknown method '%s': %w", s, UnsupportedMethodErr)
}

const (
	DefaultK              = 4
	DefaultEps            = 0.6
	DefaultMinSamples     = 10
	DefaultNComponents    = 4
	DefaultRandomState    = 42
	DefaultKMeansIter     = 100
	DefaultGMMIter        = 10
	DefaultWorkers        = 1
	DefaultStandardize    = true
	MinimumRequestSamples = 10
)

// Config is the flat configuration of a clustering run.
// MaxIterations set to 0 means the engine default.
type Config struct {
	Method        Method  `json:"method" yaml:"method"`
	K             int     `json:"k" yaml:"k"`
	Eps           float64 `json:"eps" yaml:"eps"`
	MinSamples    int     `json:"minSamples" yaml:"minSamples"`
	NComponents   int     `json:"nComponents" yaml:"nComponents"`
	Standardize   bool    `json:"standardize" yaml:"standardize"`
	RandomState   int64   `json:"randomState" yaml:"randomState"`
	MaxIterations int     `json:"maxIterations,omitempty" yaml:"maxIterations,omitempty"`
	Workers       int     `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// DefaultConfig returns the configuration with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Method:      KMeans,
		K:           DefaultK,
		Eps:         DefaultEps,
		MinSamples:  DefaultMinSamples,
		NComponents: DefaultNComponents,
		Standardize: DefaultStandardize,
		RandomState: DefaultRandomState,
		Workers:     DefaultWorkers,
	}
}

// UnmarshalJSON decodes the flat configuration keeping the defaults for omitted fields.
func (c *Config) UnmarshalJSON(data []byte) error {
	type config Config
	cfg := config(DefaultConfig())
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("could not decode config: %w", err)
	}
	*c = Config(cfg)
	return nil
}

// UnmarshalYAML decodes the flat configuration keeping the defaults for omitted fields.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type config Config
	cfg := config(DefaultConfig())
	if err := value.Decode(&cfg); err != nil {
		return fmt.Errorf("could not decode config: %w", err)
	}
	*c = Config(cfg)
	return nil
}

// Iterations returns the iteration budget for the configured method.
func (c Config) Iterations() int {
	if c.MaxIterations > 0 {
		return c.MaxIterations
	}
	if c.Method == GMM {
		return DefaultGMMIter
	}
	return DefaultKMeansIter
}

// Clusters returns the requested number of clusters, 0 if the method does not fix it.
func (c Config) Clusters() int {
	switch c.Method {
	case KMeans:
		return c.K
	case GMM:
		return c.NComponents
	}
	return 0
}

// Validate checks the parameters relevant to the configured method.
func (c Config) Validate() error {
	method, err := ParseMethod(string(c.Method))
	if err != nil {
		return err
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("maxIterations must not be negative '%d': %w", c.MaxIterations, InvalidConfigErr)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative '%d': %w", c.Workers, InvalidConfigErr)
	}
	switch method {
	case KMeans:
		if c.K < 1 {
			return fmt.Errorf("k must be at least 1 '%d': %w", c.K, InvalidConfigErr)
		}
	case GMM:
		if c.NComponents < 1 {
			return fmt.Errorf("nComponents must be at least 1 '%d': %w", c.NComponents, InvalidConfigErr)
		}
	case DBSCAN:
		if c.Eps <= 0 {
			return fmt.Errorf("eps must be positive '%f': %w", c.Eps, InvalidConfigErr)
		}
		if c.MinSamples < 1 {
			return fmt.Errorf("minSamples must be at least 1 '%d': %w", c.MinSamples, InvalidConfigErr)
		}
	}
	return nil
}
