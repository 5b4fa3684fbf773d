package fitness

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soberlog/soberlog/internal/models"
)

var now = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

// act builds an activity daysAgo days before the fixed test clock.
func act(typ string, daysAgo int) models.Activity {
	return models.Activity{
		Type: typ,
		Date: now.AddDate(0, 0, -daysAgo).Format(time.RFC3339),
	}
}

func TestEmptyInputReturnsBaseline(t *testing.T) {
	for _, timeframe := range []int{1, 7, 30, 90, 365} {
		result := Calculate(nil, timeframe, now)
		assert.Equal(t, Baseline, result.Score, "timeframe %d", timeframe)
		assert.Empty(t, result.Breakdown)
	}
}

func TestActivitiesOutsideWindowAreIgnored(t *testing.T) {
	result := Calculate([]models.Activity{
		act("meeting", 31),
		act("meeting", 200),
	}, 30, now)
	assert.Equal(t, Baseline, result.Score)
	assert.Empty(t, result.Breakdown)
}

func TestKnownScenario(t *testing.T) {
	// Two meetings on two distinct days in a 30-day window:
	// 20 + 20 points + 5 variety + 2/30*25 consistency = 46.67
	result := Calculate([]models.Activity{
		act("meeting", 1),
		act("meeting", 2),
	}, 30, now)

	assert.Equal(t, 46.67, result.Score)
	require.Contains(t, result.Breakdown, "meeting")
	assert.Equal(t, 2, result.Breakdown["meeting"].Count)
	assert.Equal(t, 20.0, result.Breakdown["meeting"].Points)
}

func TestScoreIsAlwaysBounded(t *testing.T) {
	types := []string{"meeting", "prayer", "service", "stepwork", "reading", "call", "other", "unheard_of"}
	for _, timeframe := range []int{1, 7, 30, 365} {
		var activities []models.Activity
		for i := 0; i < 200; i++ {
			activities = append(activities, act(types[i%len(types)], i%40))
		}
		result := Calculate(activities, timeframe, now)
		assert.GreaterOrEqual(t, result.Score, 0.0, "timeframe %d", timeframe)
		assert.LessOrEqual(t, result.Score, 100.0, "timeframe %d", timeframe)
	}
}

func TestSaturatedInputsHitTheCeiling(t *testing.T) {
	// Five types every day for 30 days saturates every component:
	// 20 + 40 + 20 + 25 clamps to 100.
	var activities []models.Activity
	for day := 0; day < 30; day++ {
		for _, typ := range []string{"meeting", "prayer", "service", "stepwork", "reading"} {
			activities = append(activities, act(typ, day))
		}
	}
	result := Calculate(activities, 30, now)
	assert.Equal(t, 100.0, result.Score)
}

func TestVarietyNeverLowersTheScore(t *testing.T) {
	// Same count, same days, points capped both ways: the spread set must
	// score at least as high as the concentrated one.
	var concentrated, spread []models.Activity
	types := []string{"meeting", "service", "stepwork", "prayer"}
	for i := 0; i < 12; i++ {
		concentrated = append(concentrated, act("meeting", i%6))
		spread = append(spread, act(types[i%len(types)], i%6))
	}

	one := Calculate(concentrated, 30, now)
	many := Calculate(spread, 30, now)
	assert.GreaterOrEqual(t, many.Score, one.Score)
	assert.Len(t, many.Breakdown, 4)
	assert.Len(t, one.Breakdown, 1)
}

func TestVarietyHoldsBelowThePointsCap(t *testing.T) {
	// Two activities keep the weighted points well under the cap, so the
	// variety bonus has to carry the comparison on its own: mixing in a
	// second type must never score below two of the heaviest type,
	// whichever type gets mixed in.
	concentrated := Calculate([]models.Activity{
		act("meeting", 1),
		act("meeting", 2),
	}, 30, now)

	for typ := range Weights {
		mixed := Calculate([]models.Activity{
			act("meeting", 1),
			act(typ, 2),
		}, 30, now)
		assert.GreaterOrEqual(t, mixed.Score, concentrated.Score, "mixed-in type %s", typ)
	}
}

func TestConsistencyRewardsDistinctDaysNotVolume(t *testing.T) {
	var spread, bunched []models.Activity
	for i := 0; i < 30; i++ {
		spread = append(spread, act("meeting", i))
		bunched = append(bunched, act("meeting", 3))
	}

	spreadResult := Calculate(spread, 30, now)
	bunchedResult := Calculate(bunched, 30, now)

	// Both cap activity points and share one type; only the consistency
	// component differs.
	assert.Greater(t, spreadResult.Score, bunchedResult.Score)
}

func TestUnknownTypesWeighLikeOther(t *testing.T) {
	unknown := Calculate([]models.Activity{act("interpretive_dance", 1)}, 30, now)
	other := Calculate([]models.Activity{act("other", 1)}, 30, now)
	assert.Equal(t, other.Score, unknown.Score)
}

func TestScoreIsRoundedToTwoDecimals(t *testing.T) {
	// 20 + 10 + 5 + 1/7*25 = 38.5714... must come back as 38.57.
	result := Calculate([]models.Activity{act("meeting", 1)}, 7, now)
	assert.Equal(t, 38.57, result.Score)
}

func TestCalculateIsPure(t *testing.T) {
	activities := []models.Activity{act("meeting", 1), act("prayer", 2)}
	first := Calculate(activities, 30, now)
	second := Calculate(activities, 30, now)
	assert.Equal(t, first, second)
}

func TestBareDateStringsAreAccepted(t *testing.T) {
	a := models.Activity{Type: "meeting", Date: now.AddDate(0, 0, -1).Format("2006-01-02")}
	result := Calculate([]models.Activity{a}, 30, now)
	assert.Contains(t, result.Breakdown, "meeting")
}

func ExampleCalculate() {
	activities := []models.Activity{
		{Type: "meeting", Date: "2025-06-29T19:00:00Z"},
		{Type: "prayer", Date: "2025-06-30T07:00:00Z"},
	}
	result := Calculate(activities, 30, time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC))
	fmt.Println(result.Score)
	// Output: 49.67
}
