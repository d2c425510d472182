package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"help-queue/models"
)

// Store reads and writes whole QueueState snapshots as JSON files. Writes
// overwrite the target in place; a crash mid-write can corrupt it, which is
// an accepted risk for this tool.
type Store struct {
	backupFile string
}

func NewStore(backupFile string) *Store {
	return &Store{backupFile: backupFile}
}

func (s *Store) BackupFile() string {
	return s.backupFile
}

// Save writes a compact snapshot of state to path.
func (s *Store) Save(state *models.QueueState, path string) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serialize state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SavePretty writes an indented snapshot of state to path, for stats dumps
// meant to be read by humans.
func (s *Store) SavePretty(state *models.QueueState, path string) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a snapshot from path. The state is fully deserialized before
// anything is returned, so a parse failure cannot leave a caller holding a
// half-loaded aggregate.
func (s *Store) Load(path string) (*models.QueueState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	state := models.NewQueueState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// Snapshots written before any students or staff existed can carry
	// null maps.
	if state.Students == nil {
		state.Students = make(map[string]*models.Student)
	}
	if state.Staff == nil {
		state.Staff = make(map[string]*models.StaffMember)
	}
	return state, nil
}

// Backup writes the automatic snapshot to the fixed backup file.
func (s *Store) Backup(state *models.QueueState) error {
	return s.Save(state, s.backupFile)
}
