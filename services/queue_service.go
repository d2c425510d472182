package services

import (
	"fmt"
	"log/slog"
	"time"

	"help-queue/internal/status"
	"help-queue/models"
	"help-queue/storage"
)

// timestampLayout is the wall-clock format recorded in pop and check-in
// histories: day/month/year hour:minute, local time.
const timestampLayout = "02/01/2006 15:04"

// AuthFunc gates privileged operations. It runs before any part of the
// operation's effect and its error fails the whole command.
type AuthFunc func() error

// QueueService owns the canonical in-memory state and implements every
// queue mutation. It is driven by the single command loop; there are no
// concurrent callers.
type QueueService struct {
	state *models.QueueState
	store *storage.Store
	auth  AuthFunc
}

func NewQueueService(state *models.QueueState, store *storage.Store, auth AuthFunc) *QueueService {
	return &QueueService{
		state: state,
		store: store,
		auth:  auth,
	}
}

func (s *QueueService) State() *models.QueueState {
	return s.state
}

// saveBackup mirrors the current state to the backup file. Failures are
// diagnostics only: a backup problem must not fail the command that
// triggered it.
func (s *QueueService) saveBackup() {
	if err := s.store.Backup(s.state); err != nil {
		slog.Error("backup failed", "file", s.store.BackupFile(), "error", err)
	}
}

// Add puts netid at the back of the queue and returns its 1-based position.
func (s *QueueService) Add(netid string) (int, error) {
	if _, ok := s.state.Students[netid]; !ok {
		return 0, status.ErrNotAStudent
	}
	if s.state.Locked {
		return 0, status.ErrQueueLocked
	}
	if pos := s.state.Position(netid); pos >= 0 {
		return 0, &status.AlreadyQueuedError{Position: pos}
	}
	s.state.Queue = append(s.state.Queue, models.QueuedStudent{
		EntryTime: models.EntryTimeNow(),
		NetID:     netid,
	})
	s.saveBackup()
	return len(s.state.Queue), nil
}

// PopResult describes the student removed from the head of the queue.
type PopResult struct {
	Name        string
	TimeInQueue time.Duration
}

// Pop removes the earliest-inserted entry and appends its wait time to the
// student's history.
func (s *QueueService) Pop() (*PopResult, error) {
	if err := s.auth(); err != nil {
		return nil, err
	}
	if len(s.state.Queue) == 0 {
		return nil, status.ErrQueueEmpty
	}
	head := s.state.Queue[0]
	s.state.Queue = s.state.Queue[1:]
	elapsed := head.EntryTime.Elapsed()

	student, ok := s.state.Students[head.NetID]
	if !ok {
		// Directory membership is checked on insert and entries are never
		// edited afterward, so a missing student means the aggregate is
		// corrupted.
		panic(fmt.Sprintf("queued netid %q missing from student directory", head.NetID))
	}
	student.QueueTimes = append(student.QueueTimes, models.HelpRecord{
		TimeInQueue: elapsed,
		PoppedAt:    time.Now().Format(timestampLayout),
	})
	s.saveBackup()
	return &PopResult{Name: student.FullName(), TimeInQueue: elapsed}, nil
}

// QueueEntryView is one row of the live queue listing. Waiting is
// recomputed at view time, never stored.
type QueueEntryView struct {
	Position int
	Name     string
	Waiting  time.Duration
}

// View lists the queue in FIFO order and reports the lock flag.
func (s *QueueService) View() ([]QueueEntryView, bool) {
	entries := make([]QueueEntryView, 0, len(s.state.Queue))
	for i, entry := range s.state.Queue {
		name := entry.NetID
		if student, ok := s.state.Students[entry.NetID]; ok {
			name = student.FullName()
		}
		entries = append(entries, QueueEntryView{
			Position: i,
			Name:     name,
			Waiting:  entry.EntryTime.Elapsed(),
		})
	}
	return entries, s.state.Locked
}

// Lock blocks new queue entries. Existing entries can still be viewed and
// popped.
func (s *QueueService) Lock() error {
	if err := s.auth(); err != nil {
		return err
	}
	s.state.Locked = true
	return nil
}

func (s *QueueService) Unlock() error {
	if err := s.auth(); err != nil {
		return err
	}
	s.state.Locked = false
	return nil
}

// Reset clears every student's history, the queue, and the lock flag. The
// staff directory and its check-in histories are untouched.
func (s *QueueService) Reset() error {
	if err := s.auth(); err != nil {
		return err
	}
	for _, student := range s.state.Students {
		student.QueueTimes = nil
	}
	s.state.Queue = nil
	s.state.Locked = false
	return nil
}

// Checkin appends the current wall-clock timestamp to a staff member's
// history.
func (s *QueueService) Checkin(netid string) error {
	if err := s.auth(); err != nil {
		return err
	}
	member, ok := s.state.Staff[netid]
	if !ok {
		return status.ErrNotStaff
	}
	member.CheckinTimes = append(member.CheckinTimes, time.Now().Format(timestampLayout))
	s.saveBackup()
	return nil
}

// AddStaff registers a staff member with an empty check-in history.
func (s *QueueService) AddStaff(netid string) error {
	if err := s.auth(); err != nil {
		return err
	}
	if _, ok := s.state.Staff[netid]; ok {
		return &status.AlreadyStaffError{NetID: netid}
	}
	s.state.Staff[netid] = &models.StaffMember{}
	s.saveBackup()
	return nil
}

// Save dumps the full state to path as a compact snapshot.
func (s *QueueService) Save(path string) error {
	if err := s.auth(); err != nil {
		return err
	}
	return s.store.Save(s.state, path)
}

// Stats dumps the full state to path, pretty-printed.
func (s *QueueService) Stats(path string) error {
	if err := s.auth(); err != nil {
		return err
	}
	return s.store.SavePretty(s.state, path)
}

// Load replaces the live state with the snapshot at path. The swap only
// happens after the whole file deserializes, so a parse failure leaves the
// current state unchanged.
func (s *QueueService) Load(path string) error {
	if err := s.auth(); err != nil {
		return err
	}
	loaded, err := s.store.Load(path)
	if err != nil {
		return err
	}
	*s.state = *loaded
	return nil
}

// LoadBackup restores the last automatic snapshot at startup. No
// authentication: the process is just resuming where it left off.
func (s *QueueService) LoadBackup() error {
	loaded, err := s.store.Load(s.store.BackupFile())
	if err != nil {
		return err
	}
	*s.state = *loaded
	return nil
}

// Shutdown authenticates and takes a final backup before the process
// exits.
func (s *QueueService) Shutdown() error {
	if err := s.auth(); err != nil {
		return err
	}
	s.saveBackup()
	return nil
}
