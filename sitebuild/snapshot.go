package sitebuild

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toothbrush/site-routes/routing"
	"gopkg.in/yaml.v3"
)

// SnapshotFile is where the last crawl is kept inside the store directory.
const SnapshotFile = "content-graph.yaml"

var ErrNoSnapshot = errors.New("sitebuild: no content snapshot, run generate without --offline first")

// Snapshot is a crawl saved to disk so that routes can be rebuilt without the CMS.
type Snapshot struct {
	FetchedAt   time.Time            `yaml:"fetched-at"`
	Space       string               `yaml:"space,omitempty"`
	Environment string               `yaml:"environment,omitempty"`
	Graph       routing.ContentGraph `yaml:"graph"`
}

func WriteSnapshot(storePath string, snap Snapshot) error {
	stat, err := os.Stat(storePath)
	if err != nil {
		return fmt.Errorf("sitebuild: cannot stat '%s': %w", storePath, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("sitebuild: local store path not a directory: '%s'", storePath)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("sitebuild: couldn't encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("sitebuild: couldn't encode snapshot: %w", err)
	}

	return writeFile(filepath.Join(storePath, SnapshotFile), buf.Bytes())
}

func ReadSnapshot(storePath string) (Snapshot, error) {
	fullPath := filepath.Join(storePath, SnapshotFile)
	source, err := os.ReadFile(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNoSnapshot, fullPath)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("sitebuild: couldn't read file %s: %w", fullPath, err)
	}

	var snap Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(source))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("sitebuild: couldn't parse snapshot %s: %w", fullPath, err)
	}

	return snap, nil
}
