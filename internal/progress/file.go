package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend persists the state as one JSON file. Writes go to a temp
// file in the same directory followed by a rename, so a crash mid-write
// never corrupts the previous state.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend at the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the state file. A missing file is an empty state, not an
// error.
func (b *FileBackend) Load() (State, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("reading progress state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt file is discarded rather than wedging the store.
		return State{}, nil
	}
	return state, nil
}

// Save writes the state atomically.
func (b *FileBackend) Save(state State) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating progress dir: %w", err)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding progress state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "progress-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing progress state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming progress file: %w", err)
	}
	return nil
}
