package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func TestSobrietyDays(t *testing.T) {
	days, err := SobrietyDays("2020-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, 2435, days)
}

func TestSobrietyDaysPartialDayDoesNotCount(t *testing.T) {
	days, err := SobrietyDays("2020-01-01", time.Date(2020, 1, 2, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestSobrietyYears(t *testing.T) {
	years, err := SobrietyYears("2020-01-01", 2, now)
	require.NoError(t, err)
	// 2435 / 365.25 rounded to 2 places
	assert.Equal(t, 6.67, years)

	whole, err := SobrietyYears("2020-01-01", 0, now)
	require.NoError(t, err)
	assert.Equal(t, 7.0, whole)
}

func TestFutureDateYieldsZero(t *testing.T) {
	days, err := SobrietyDays("2030-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, 0, days)
}

func TestInvalidDateIsAnError(t *testing.T) {
	_, err := SobrietyDays("not-a-date", now)
	assert.Error(t, err)
}

func TestFullTimestampAccepted(t *testing.T) {
	days, err := SobrietyDays("2020-01-01T00:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, 2435, days)
}
