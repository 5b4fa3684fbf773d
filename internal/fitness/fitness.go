// Package fitness computes the spiritual fitness score: a bounded 0-100
// summary of recent recovery-activity engagement. Everything here is a
// pure function of the activity set, the timeframe and the clock, so the
// engine is testable without any storage.
package fitness

import (
	"math"
	"time"

	"github.com/soberlog/soberlog/internal/models"
)

// Scoring constants. The scale is 0-100.
//
//	score = baseline
//	      + min(pointsCap, sum of weighted activity points)
//	      + min(varietyCap, 5 per distinct type)
//	      + min(consistencyCap, distinctDays/timeframe * consistencyCap)
const (
	Baseline       = 20.0
	PointsCap      = 40.0
	VarietyPerType = 5.0
	VarietyCap     = 20.0
	ConsistencyCap = 25.0
)

// Weights gives each activity type its point value. Meetings and
// step/service work weigh more than passive activities like reading.
// The table is floored at VarietyPerType so trading one activity type
// for another never costs more points than the variety bonus returns.
var Weights = map[string]float64{
	models.ActivityMeeting:        10,
	models.ActivityStepwork:       10,
	models.ActivityService:        9,
	models.ActivityPrayer:         8,
	models.ActivityMeditation:     8,
	models.ActivityReading:        6,
	models.ActivitySponsorContact: 5,
	models.ActivityCall:           5,
	models.ActivityOther:          5,
}

// Result is the outcome of one score computation.
type Result struct {
	Score         float64                         `json:"score"`
	Breakdown     map[string]models.TypeBreakdown `json:"breakdown"`
	TimeframeDays int                             `json:"timeframeDays"`
}

// Calculate scores the activities falling inside [now - timeframeDays,
// now]. An empty window yields the baseline score with an empty
// breakdown; the result is always within [0, 100], rounded to two
// decimal places.
func Calculate(activities []models.Activity, timeframeDays int, now time.Time) Result {
	if timeframeDays < 1 {
		timeframeDays = 30
	}
	windowStart := now.AddDate(0, 0, -timeframeDays)

	breakdown := make(map[string]models.TypeBreakdown)
	days := make(map[string]bool)
	totalPoints := 0.0

	for _, a := range activities {
		at, ok := parseWhen(a.Date)
		if !ok || at.Before(windowStart) || at.After(now) {
			continue
		}

		w, known := Weights[a.Type]
		if !known {
			w = Weights[models.ActivityOther]
		}

		entry := breakdown[a.Type]
		entry.Count++
		entry.Points += w
		breakdown[a.Type] = entry

		totalPoints += w
		days[at.UTC().Format("2006-01-02")] = true
	}

	if len(breakdown) == 0 {
		return Result{Score: Baseline, Breakdown: map[string]models.TypeBreakdown{}, TimeframeDays: timeframeDays}
	}

	variety := math.Min(VarietyCap, float64(len(breakdown))*VarietyPerType)
	consistency := math.Min(ConsistencyCap, float64(len(days))/float64(timeframeDays)*ConsistencyCap)
	score := Baseline + math.Min(PointsCap, totalPoints) + variety + consistency

	score = math.Max(0, math.Min(100, score))
	score = math.Round(score*100) / 100

	return Result{Score: score, Breakdown: breakdown, TimeframeDays: timeframeDays}
}

// parseWhen accepts full ISO-8601 timestamps and bare calendar dates,
// which older records sometimes carry.
func parseWhen(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
