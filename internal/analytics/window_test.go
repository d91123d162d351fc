package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindow_ThreeMonthsEndingDecember(t *testing.T) {
	w := ResolveWindow(date(2024, time.December, 15), 3)

	assert.Equal(t, date(2024, time.October, 1), w.Start)
	assert.Equal(t, date(2024, time.December, 1), w.End)
	assert.Equal(t, date(2025, time.January, 1), w.EndExclusive)
	assert.Equal(t, 3, w.MonthsBack)
}

func TestResolveWindow_SingleMonth(t *testing.T) {
	w := ResolveWindow(date(2025, time.March, 31), 1)

	assert.Equal(t, date(2025, time.March, 1), w.Start)
	assert.Equal(t, date(2025, time.March, 1), w.End)
	assert.Equal(t, date(2025, time.April, 1), w.EndExclusive)
}

func TestResolveWindow_ClampsMonthsBack(t *testing.T) {
	for _, monthsBack := range []int{0, -5} {
		w := ResolveWindow(date(2025, time.March, 10), monthsBack)
		assert.Equal(t, 1, w.MonthsBack)
		assert.Equal(t, date(2025, time.March, 1), w.Start)
	}
}

func TestResolveWindow_CrossesYearBoundary(t *testing.T) {
	w := ResolveWindow(date(2025, time.February, 5), 12)

	assert.Equal(t, date(2024, time.March, 1), w.Start)
	assert.Equal(t, date(2025, time.February, 1), w.End)
}

func TestWindowContains(t *testing.T) {
	w := ResolveWindow(date(2024, time.December, 15), 3)

	assert.True(t, w.Contains(date(2024, time.October, 1)))
	assert.True(t, w.Contains(date(2024, time.December, 31)))
	assert.False(t, w.Contains(date(2024, time.September, 30)))
	assert.False(t, w.Contains(date(2025, time.January, 1)))
}

func TestResolveForward_TwelveMonthsFromToday(t *testing.T) {
	fw := ResolveForward(time.Date(2024, time.December, 15, 14, 30, 0, 0, time.UTC))

	assert.Equal(t, date(2024, time.December, 15), fw.Start)
	assert.Equal(t, date(2025, time.December, 15), fw.End)

	assert.True(t, fw.Contains(date(2024, time.December, 15)))
	assert.True(t, fw.Contains(date(2025, time.December, 14)))
	assert.False(t, fw.Contains(date(2024, time.December, 14)))
	assert.False(t, fw.Contains(date(2025, time.December, 15)))
}
