package config

import (
	"fmt"
	"os"
	"time"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/drakos74/free-segment/internal/storage"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = 6090
	DefaultTimeout         = 30 * time.Second
	DefaultMaxRequestBytes = 32 << 20
)

// Storage defines where reports are persisted.
type Storage struct {
	Dir     string `yaml:"dir" json:"dir"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// Service is the configuration of the segmentation service.
type Service struct {
	Name    string        `yaml:"name" json:"name"`
	Port    int           `yaml:"port" json:"port"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// MinSamples is the minimum number of rows accepted per request.
	MinSamples int `yaml:"minSamples" json:"minSamples"`
	// MaxRequestBytes limits the size of a request body.
	MaxRequestBytes int64        `yaml:"maxRequestBytes" json:"maxRequestBytes"`
	Debug           bool         `yaml:"debug" json:"debug"`
	Storage         Storage      `yaml:"storage" json:"storage"`
	Defaults        model.Config `yaml:"defaults" json:"defaults"`
}

// DefaultService returns the service configuration with all defaults applied.
func DefaultService() Service {
	return Service{
		Name:            "segment",
		Port:            DefaultPort,
		Timeout:         DefaultTimeout,
		MinSamples:      model.MinimumRequestSamples,
		MaxRequestBytes: DefaultMaxRequestBytes,
		Storage: Storage{
			Dir: storage.DefaultDir,
		},
		Defaults: model.DefaultConfig(),
	}
}

// UnmarshalYAML decodes the service configuration keeping the defaults for omitted fields.
func (s *Service) UnmarshalYAML(value *yaml.Node) error {
	type service Service
	svc := service(DefaultService())
	if err := value.Decode(&svc); err != nil {
		return fmt.Errorf("could not decode service config: %w", err)
	}
	if svc.MinSamples < model.MinimumRequestSamples {
		log.Warn().
			Int("min-samples", svc.MinSamples).
			Int("floor", model.MinimumRequestSamples).
			Msg("request sample floor raised")
		svc.MinSamples = model.MinimumRequestSamples
	}
	if svc.Timeout <= 0 {
		svc.Timeout = DefaultTimeout
	}
	if svc.MaxRequestBytes <= 0 {
		svc.MaxRequestBytes = DefaultMaxRequestBytes
	}
	*s = Service(svc)
	return nil
}

// Load loads the yaml (or json) config file into v.
func Load(file string, v interface{}) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not load config '%s': %w", file, err)
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal config '%s': %w", file, err)
	}
	return nil
}
