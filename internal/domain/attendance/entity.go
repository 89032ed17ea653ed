package attendance

import (
	"time"
)

// Status enum
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
)

// Record - per-student attendance mark for one session. A student is
// billable for the session unless the mark is excused.
type Record struct {
	ID        string
	SessionID string
	StudentID string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Billable reports whether the record counts toward session revenue.
func (r Record) Billable() bool {
	return r.Status != StatusExcused
}
