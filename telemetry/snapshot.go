package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/sporefield/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot describes a saved match. The cell grid itself lives in a binary
// field file next to the JSON metadata.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Tick    int32 `json:"tick"`

	Width  int    `json:"width"`
	Height int    `json:"height"`
	Phase  string `json:"phase"`

	// FieldFile is the binary grid, relative to the snapshot directory.
	FieldFile string `json:"field_file"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// SaveSnapshot writes the snapshot metadata and the field grid to dir.
// Returns the path of the metadata file.
func SaveSnapshot(snapshot *Snapshot, field *systems.PlayingField, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}

	snapshot.Version = SnapshotVersion
	snapshot.Width = field.Width()
	snapshot.Height = field.Height()
	snapshot.FieldFile = name + ".field"
	if err := field.SaveFile(filepath.Join(dir, snapshot.FieldFile)); err != nil {
		return "", fmt.Errorf("write snapshot field: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads snapshot metadata from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	return &snapshot, nil
}

// RestoreField loads the snapshot's grid into field. path is the metadata
// file the snapshot was read from.
func (s *Snapshot) RestoreField(path string, field *systems.PlayingField) error {
	return field.LoadFile(filepath.Join(filepath.Dir(path), s.FieldFile))
}
