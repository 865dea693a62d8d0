package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	type test struct {
		file    string
		service Service
	}

	tests := map[string]test{
		"partial": {
			file: "partial.yaml",
			service: func() Service {
				s := DefaultService()
				s.Port = 7000
				s.Defaults.Method = model.DBSCAN
				s.Defaults.Eps = 0.4
				return s
			}(),
		},
		"json": {
			file: "service.json",
			service: func() Service {
				s := DefaultService()
				s.Port = 7001
				s.Timeout = 5 * time.Second
				s.MinSamples = 50
				s.MaxRequestBytes = 1024
				s.Storage = Storage{Dir: "/tmp/reports", Enabled: true}
				return s
			}(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var s Service
			err := Load(filepath.Join("testdata", tt.file), &s)
			require.NoError(t, err)
			assert.Equal(t, tt.service, s)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	var s Service
	assert.Error(t, Load(filepath.Join("testdata", "missing.yaml"), &s))
}

func TestServiceFile(t *testing.T) {
	var s Service
	err := Load("segment.yaml", &s)
	require.NoError(t, err)
	assert.Equal(t, 6090, s.Port)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.True(t, s.Storage.Enabled)
	assert.Equal(t, 4, s.Defaults.Workers)
	assert.Equal(t, int64(1<<20), s.MaxRequestBytes)
	assert.NoError(t, s.Defaults.Validate())
}
