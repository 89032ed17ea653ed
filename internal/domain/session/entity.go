package session

import (
	"time"
)

// Status enum
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusHappening Status = "happening"
	StatusEnded     Status = "ended"
	StatusCancelled Status = "cancelled"
	StatusDayOff    Status = "day_off"
)

// Session - one scheduled class meeting. Status advances externally over
// time; only ended sessions are eligible for payout calculation.
type Session struct {
	ID                  string
	ClassID             string
	Date                time.Time
	StartTime           time.Time
	EndTime             time.Time
	Status              Status
	TeacherID           *string
	SubstituteTeacherID *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EffectiveTeacherID returns the teacher the payout belongs to: the
// substitute when one is set, otherwise the assigned teacher.
func (s Session) EffectiveTeacherID() (string, error) {
	if s.SubstituteTeacherID != nil && *s.SubstituteTeacherID != "" {
		return *s.SubstituteTeacherID, nil
	}
	if s.TeacherID != nil && *s.TeacherID != "" {
		return *s.TeacherID, nil
	}
	return "", ErrNoTeacherAssigned
}
