// Package dates holds the sobriety date math shared by the services and
// the HTTP surface.
package dates

import (
	"math"
	"time"
)

// daysPerYear uses the Julian year so leap years average out.
const daysPerYear = 365.25

// SobrietyDays returns the number of whole days between the sobriety date
// (YYYY-MM-DD or full ISO-8601) and now.
func SobrietyDays(sobrietyDate string, now time.Time) (int, error) {
	start, err := parseDate(sobrietyDate)
	if err != nil {
		return 0, err
	}
	diff := now.Sub(start)
	if diff < 0 {
		return 0, nil
	}
	return int(diff.Hours() / 24), nil
}

// SobrietyYears converts sober days into years rounded to the requested
// number of decimal places.
func SobrietyYears(sobrietyDate string, decimalPlaces int, now time.Time) (float64, error) {
	days, err := SobrietyDays(sobrietyDate, now)
	if err != nil {
		return 0, err
	}
	years := float64(days) / daysPerYear
	shift := math.Pow(10, float64(decimalPlaces))
	return math.Round(years*shift) / shift, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
