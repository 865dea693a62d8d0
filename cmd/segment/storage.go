package main

import (
	"fmt"

	"github.com/drakos74/free-segment/internal/storage"
	"github.com/drakos74/free-segment/internal/storage/file/json"
)

const (
	reportShard  = "segment"
	registryPath = "segment"
)

// persistence opens the report store and the run registry under dir.
// run and serve share the layout, so reports stored by one can be read by the other.
func persistence(dir string) (storage.Persistence, storage.Registry, error) {
	store, err := json.BlobShard(dir, storage.ReportDir)(reportShard)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open report storage: %w", err)
	}
	registry, err := json.EventRegistry(dir, registryPath)("")
	if err != nil {
		return nil, nil, fmt.Errorf("could not open run registry: %w", err)
	}
	return store, registry, nil
}
