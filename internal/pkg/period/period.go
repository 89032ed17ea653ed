package period

import (
	"fmt"
	"time"
)

// Window is a half-open time range [Start, End) used to select sessions
// for payout calculation.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// Month is a closed calendar-month billing period [Start, End].
// End is the last representable millisecond of the month.
type Month struct {
	Start time.Time
	End   time.Time
}

func (m Month) String() string {
	return fmt.Sprintf("%s..%s", m.Start.Format("2006-01-02"), m.End.Format("2006-01-02"))
}

// DailyWindow returns [start-of-yesterday, start-of-today) in now's location.
// Callers must derive the window from a single clock read at run start so a
// run never straddles a day boundary mid-execution.
func DailyWindow(now time.Time) Window {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{
		Start: today.AddDate(0, 0, -1),
		End:   today,
	}
}

// PreviousMonth returns the previous full calendar month in now's location:
// the first day at 00:00:00.000 through the last day at 23:59:59.999.
func PreviousMonth(now time.Time) Month {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Month{
		Start: firstOfCurrent.AddDate(0, -1, 0),
		End:   firstOfCurrent.Add(-time.Millisecond),
	}
}
