package attendance

import "context"

type AttendanceRepository interface {
	// CountBillable returns the number of attendance records for the
	// session whose status is not excused.
	CountBillable(ctx context.Context, sessionID string) (int, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]Record, error)
}
