package attendance

import (
	"testing"
)

func TestRecordBillable(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusPresent, true},
		{StatusAbsent, true},
		{StatusLate, true},
		{StatusExcused, false},
	}
	for _, c := range cases {
		rec := Record{Status: c.status}
		if got := rec.Billable(); got != c.want {
			t.Errorf("Record{Status: %s}.Billable() = %v, want %v", c.status, got, c.want)
		}
	}
}
