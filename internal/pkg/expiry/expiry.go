// Package expiry implements the status derivation rule shared by companies
// and domestic records: a record is only as healthy as its worst expiry date.
package expiry

import (
	"math"
	"time"
)

// Status values are wire-level strings; the dashboard renders them verbatim.
const (
	StatusExpired       = "Expired"
	StatusNearlyExpired = "Nearly Expired"
	StatusActive        = "Active"
)

// ThresholdDays is the window within which an upcoming date counts as
// nearly expired (inclusive).
const ThresholdDays = 30

// DaysUntil returns the ceiling of the number of days between now and t.
// A date earlier today yields 0; yesterday yields a negative value.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// Compute maps a set of expiry dates to a tri-state status. Zero dates are
// skipped. Precedence: Expired > Nearly Expired > Active.
func Compute(dates []time.Time, now time.Time) string {
	nearly := false
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		diff := DaysUntil(d, now)
		if diff < 0 {
			return StatusExpired
		}
		if diff <= ThresholdDays {
			nearly = true
		}
	}
	if nearly {
		return StatusNearlyExpired
	}
	return StatusActive
}

// Rank orders statuses for display: worst first.
func Rank(status string) int {
	switch status {
	case StatusExpired:
		return 0
	case StatusNearlyExpired:
		return 1
	default:
		return 2
	}
}
