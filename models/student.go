package models

import "time"

// HelpRecord is one completed visit: how long the student waited and the
// wall-clock time they were popped.
type HelpRecord struct {
	TimeInQueue time.Duration `json:"time_in_queue"`
	PoppedAt    string        `json:"popped_at"`
}

// Student is one entry in the roster, keyed by lowercase netid in the
// directory. Names are stored lowercased, exactly as imported.
type Student struct {
	First      string       `json:"first"`
	Last       string       `json:"last"`
	QueueTimes []HelpRecord `json:"queue_times"`
}

func (s *Student) FullName() string {
	return s.First + " " + s.Last
}
