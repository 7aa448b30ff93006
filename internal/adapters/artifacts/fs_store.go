package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

var (
	validRunID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
	validName  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)
)

// FSStore keeps artifacts under <Root>/<runID>/<name>.
// Every run writes to its own directory, so concurrent runs never collide.
type FSStore struct {
	Root   string
	Logger *zap.Logger
}

func NewFSStore(root string, logger *zap.Logger) *FSStore {
	return &FSStore{Root: root, Logger: logger}
}

// Save writes data atomically and returns the path it was stored at.
func (s *FSStore) Save(ctx context.Context, runID, name string, data []byte) (_ string, err error) {
	defer obs.Time(ctx, s.Logger, "artifacts.Save")(&err)

	path, err := s.path(runID, name)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save artifact: create %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("save artifact: create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("save artifact: write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("save artifact: close %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("save artifact: rename %q: %w", name, err)
	}

	return path, nil
}

// Load returns the stored artifact or ports.ErrArtifactNotFound.
func (s *FSStore) Load(ctx context.Context, runID, name string) (_ []byte, err error) {
	defer obs.Time(ctx, s.Logger, "artifacts.Load")(&err)

	path, err := s.path(runID, name)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load artifact %s/%s: %w", runID, name, ports.ErrArtifactNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact %s/%s: %w", runID, name, err)
	}
	return b, nil
}

func (s *FSStore) path(runID, name string) (string, error) {
	if !validRunID.MatchString(runID) {
		return "", fmt.Errorf("artifact run id %q: %w", runID, ports.ErrArtifactNotFound)
	}
	if !validName.MatchString(name) {
		return "", fmt.Errorf("artifact name %q: %w", name, ports.ErrArtifactNotFound)
	}
	return filepath.Join(s.Root, runID, name), nil
}
