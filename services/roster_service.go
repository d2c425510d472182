package services

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"help-queue/internal/status"
	"help-queue/models"
	"help-queue/storage"
)

// RosterService imports the student directory from a registrar export:
// plain text, one student per line, four comma-separated fields
// (last,first,netid,section), no header row.
type RosterService struct {
	state *models.QueueState
	store *storage.Store
	auth  AuthFunc
}

func NewRosterService(state *models.QueueState, store *storage.Store, auth AuthFunc) *RosterService {
	return &RosterService{
		state: state,
		store: store,
		auth:  auth,
	}
}

// LoadRoster replaces the student directory with the roster at path and
// returns the number of students imported. Netids and names are lowercased;
// the first occurrence of a duplicate netid wins.
//
// The directory is cleared before parsing starts, so a malformed line
// aborts the import with the directory already empty. Re-running the import
// with a fixed file is the recovery path.
func (s *RosterService) LoadRoster(path string) (int, error) {
	if err := s.auth(); err != nil {
		return 0, err
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	s.state.Students = make(map[string]*models.Student)

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		fields := strings.Split(text, ",")
		if len(fields) != 4 {
			return 0, &status.RosterLineError{Line: line, Content: text}
		}
		netid := strings.ToLower(fields[2])
		if _, ok := s.state.Students[netid]; ok {
			continue
		}
		s.state.Students[netid] = &models.Student{
			First: strings.ToLower(fields[1]),
			Last:  strings.ToLower(fields[0]),
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	if err := s.store.Backup(s.state); err != nil {
		slog.Error("backup failed", "file", s.store.BackupFile(), "error", err)
	}
	return len(s.state.Students), nil
}
