package models

import "time"

// EntryTime is the moment a student joined the queue, taken from the
// monotonic clock. It exists only to measure elapsed wait, so it serializes
// as a placeholder and deserializes to "now": in-flight wait timers restart
// from zero after a process reload.
type EntryTime struct {
	t time.Time
}

func EntryTimeNow() EntryTime {
	return EntryTime{t: time.Now()}
}

// Elapsed returns how long ago this entry was created.
func (e EntryTime) Elapsed() time.Duration {
	return time.Since(e.t)
}

func (e EntryTime) MarshalJSON() ([]byte, error) {
	return []byte("0"), nil
}

func (e *EntryTime) UnmarshalJSON(data []byte) error {
	e.t = time.Now()
	return nil
}

// QueuedStudent is one transient wait-line entry. NetID is a key into the
// student directory; membership is checked when the entry is created.
type QueuedStudent struct {
	EntryTime EntryTime `json:"entry_time"`
	NetID     string    `json:"net_id"`
}

// QueueState is the root aggregate: the whole tool's state, owned by the
// single command loop and persisted as one unit.
type QueueState struct {
	Students map[string]*Student     `json:"students"`
	Staff    map[string]*StaffMember `json:"staff"`
	Queue    []QueuedStudent         `json:"queue"`
	Locked   bool                    `json:"locked"`
}

func NewQueueState() *QueueState {
	return &QueueState{
		Students: make(map[string]*Student),
		Staff:    make(map[string]*StaffMember),
	}
}

// Position returns the 0-based queue index of netid, or -1 if it is not
// waiting.
func (qs *QueueState) Position(netid string) int {
	for i, entry := range qs.Queue {
		if entry.NetID == netid {
			return i
		}
	}
	return -1
}
