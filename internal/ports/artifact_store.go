package ports

import (
	"context"
	"errors"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// Port: per-run storage for rendered outputs (route geometry, itinerary documents).
// Artifacts are namespaced by run id so concurrent runs never overwrite each other.
type ArtifactStore interface {
	// Save stores data and returns a reference usable with Load.
	Save(ctx context.Context, runID, name string, data []byte) (string, error)
	Load(ctx context.Context, runID, name string) ([]byte, error)
}
