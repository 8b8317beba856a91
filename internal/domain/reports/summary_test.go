package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElideLabelShortTitleUntouched(t *testing.T) {
	assert.Equal(t, "Leg Day Basics", ElideLabel("Leg Day Basics"))
}

func TestElideLabelLongTitleTruncatedWithEllipsis(t *testing.T) {
	long := "A Very Long Workout Title That Keeps Going And Going"
	got := ElideLabel(long)

	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, 31, len([]rune(got))) // 30 runes + ellipsis
}

func TestTopLabelsCountsSortsAndTruncates(t *testing.T) {
	labels := []string{"A", "B", "B", "C", "C", "C", "D", "E", "F", "F"}

	items := TopLabels(labels)

	require.Len(t, items, TopN)
	assert.Equal(t, RankedItem{Label: "C", Count: 3}, items[0])
	assert.Equal(t, RankedItem{Label: "B", Count: 2}, items[1])
	assert.Equal(t, RankedItem{Label: "F", Count: 2}, items[2])
	// ties (A, D, E at count 1) keep first-appearance order; E is cut.
	assert.Equal(t, RankedItem{Label: "A", Count: 1}, items[3])
	assert.Equal(t, RankedItem{Label: "D", Count: 1}, items[4])
}

func TestTopLabelsEmptyInput(t *testing.T) {
	assert.Empty(t, TopLabels(nil))
}

func TestDaySeriesBucketsLastSevenDays(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	stamps := []time.Time{
		now,
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -8), // outside the window, dropped
	}

	series := DaySeries(now, stamps, 7)

	require.Len(t, series, 7)
	assert.Equal(t, "2026-03-08", series[0].Date)
	assert.Equal(t, 0, series[0].Count)
	assert.Equal(t, "2026-03-13", series[5].Date)
	assert.Equal(t, 2, series[5].Count)
	assert.Equal(t, "2026-03-14", series[6].Date)
	assert.Equal(t, 1, series[6].Count)
}

func TestDaySeriesEmptyDataHasAllZeroes(t *testing.T) {
	series := DaySeries(time.Now(), nil, 7)

	for _, d := range series {
		assert.Equal(t, 0, d.Count)
		assert.GreaterOrEqual(t, d.Count, 0)
	}
}

func TestCountSince(t *testing.T) {
	now := time.Now()
	stamps := []time.Time{
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -40),
	}

	assert.Equal(t, 1, CountSince(now, stamps, 30))
}
