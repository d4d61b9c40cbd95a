package statefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vocabsender/internal/domain"
)

// StateRepo implements repository.StateRepository backed by a JSON file.
// The file layout matches the original state contract: used, last_sent
// and sent_hours fields. A single writer at a time is assumed.
type StateRepo struct {
	path string
}

// NewStateRepo creates a new file state repository
func NewStateRepo(path string) *StateRepo {
	return &StateRepo{path: path}
}

// Load reads the state file, returning an empty state when the file
// does not exist yet
func (r *StateRepo) Load() (*domain.State, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return domain.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	state := domain.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", r.path, err)
	}
	if state.Used == nil {
		state.Used = []int{}
	}
	if state.SentHours == nil {
		state.SentHours = map[string][]int{}
	}
	return state, nil
}

// Save writes the state atomically via a temp file and rename
func (r *StateRepo) Save(state *domain.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod state file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
