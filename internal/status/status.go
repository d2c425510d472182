package status

import (
	"errors"
	"fmt"
)

// These texts are printed to the operator verbatim behind an "Error: "
// prefix, so they are full sentences rather than wrap-friendly fragments.
var (
	ErrNotAStudent     = errors.New("Not a student. Contact course staff if you believe this is a mistake.")
	ErrNotStaff        = errors.New("Not a member of staff.")
	ErrQueueLocked     = errors.New("Queue is locked.")
	ErrQueueEmpty      = errors.New("Queue is empty.")
	ErrInvalidPassword = errors.New("Invalid password.")
	ErrEmptyCommand    = errors.New("Command is empty.")
	ErrUnknownCommand  = errors.New("Unknown command.")
)

// AlreadyQueuedError reports the current 0-based position of a netid that
// is already waiting.
type AlreadyQueuedError struct {
	Position int
}

func (e *AlreadyQueuedError) Error() string {
	return fmt.Sprintf("Already in the queue, position: %d", e.Position)
}

// AlreadyStaffError reports a duplicate staff registration.
type AlreadyStaffError struct {
	NetID string
}

func (e *AlreadyStaffError) Error() string {
	return fmt.Sprintf("%s is already a staff member.", e.NetID)
}

// RosterLineError reports a roster line that does not split into the
// expected four comma-separated fields.
type RosterLineError struct {
	Line    int
	Content string
}

func (e *RosterLineError) Error() string {
	return fmt.Sprintf("Err on line %d: %s", e.Line, e.Content)
}

// UsageError names the correct invocation form for a command that was
// called with too few arguments.
type UsageError struct {
	Form string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: %q.", e.Form)
}
