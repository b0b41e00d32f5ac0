package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func days(n int) time.Time { return now.Add(time.Duration(n) * 24 * time.Hour) }

func TestCompute_AnyPastDate_Expired(t *testing.T) {
	// One date in the past dominates regardless of the others.
	dates := []time.Time{days(200), days(-1), days(10)}
	assert.Equal(t, StatusExpired, Compute(dates, now))
}

func TestCompute_WithinThreshold_NearlyExpired(t *testing.T) {
	dates := []time.Time{days(10), days(200)}
	assert.Equal(t, StatusNearlyExpired, Compute(dates, now))
}

func TestCompute_ThresholdBoundary_Inclusive(t *testing.T) {
	assert.Equal(t, StatusNearlyExpired, Compute([]time.Time{days(30)}, now))
	assert.Equal(t, StatusActive, Compute([]time.Time{days(31)}, now))
}

func TestCompute_AllFarOut_Active(t *testing.T) {
	dates := []time.Time{days(60), days(200), days(365)}
	assert.Equal(t, StatusActive, Compute(dates, now))
}

func TestCompute_SkipsZeroDates(t *testing.T) {
	dates := []time.Time{{}, days(200)}
	assert.Equal(t, StatusActive, Compute(dates, now))
	assert.Equal(t, StatusActive, Compute([]time.Time{{}}, now))
}

func TestCompute_EmptyInput_Active(t *testing.T) {
	assert.Equal(t, StatusActive, Compute(nil, now))
}

func TestDaysUntil_CeilBehavior(t *testing.T) {
	// Later today still counts as day 0; any portion of a future day rounds up.
	assert.Equal(t, 0, DaysUntil(now.Add(-2*time.Hour), now))
	assert.Equal(t, 1, DaysUntil(now.Add(2*time.Hour), now))
	assert.Equal(t, -1, DaysUntil(now.Add(-26*time.Hour), now))
	assert.Equal(t, 10, DaysUntil(days(10), now))
}

func TestRank_Ordering(t *testing.T) {
	assert.Equal(t, 0, Rank(StatusExpired))
	assert.Equal(t, 1, Rank(StatusNearlyExpired))
	assert.Equal(t, 2, Rank(StatusActive))
	assert.Equal(t, 2, Rank("anything else"))
}
