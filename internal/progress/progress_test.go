package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsLeap(t *testing.T) {
	cases := map[int]bool{
		1900: false,
		2000: true,
		2023: false,
		2024: true,
		2100: false,
		2400: true,
	}
	for year, want := range cases {
		assert.Equal(t, want, IsLeap(year), "year %d", year)
	}

	for year := 1583; year <= 2600; year++ {
		want := year%4 == 0 && (year%100 != 0 || year%400 == 0)
		got := DaysInYear(year) == 366
		if got != want {
			t.Fatalf("DaysInYear(%d) leap=%v, want %v", year, got, want)
		}
	}
}

func TestComputeLeapYearScenario(t *testing.T) {
	p := Compute(date(2024, time.January, 27))

	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, 27, p.ElapsedDays)
	assert.Equal(t, 366, p.TotalDays)
	assert.Equal(t, 339, p.RemainingDays)
	assert.Equal(t, 7, p.Percent)
	assert.InDelta(t, 7.377, p.Ratio(), 0.001)

	bar := RenderBar(float64(p.Percent), 10, "#", ".")
	assert.Equal(t, "#.........", bar)
}

func TestComputeCommonYearScenario(t *testing.T) {
	p := Compute(date(2023, time.July, 1))

	assert.Equal(t, 182, p.ElapsedDays)
	assert.Equal(t, 365, p.TotalDays)
	assert.Equal(t, 183, p.RemainingDays)
	assert.Equal(t, 50, p.Percent)
	assert.Equal(t, 5, FilledCount(float64(p.Percent), 10))
}

func TestComputeBoundaries(t *testing.T) {
	first := Compute(date(2023, time.January, 1))
	assert.Equal(t, 1, first.ElapsedDays)
	assert.Equal(t, 364, first.RemainingDays)
	assert.Equal(t, 0, first.Percent)

	last := Compute(date(2024, time.December, 31))
	assert.Equal(t, 366, last.ElapsedDays)
	assert.Equal(t, 0, last.RemainingDays)
	assert.Equal(t, 100, last.Percent)
}

func TestComputeInvariantsAcrossYears(t *testing.T) {
	for _, year := range []int{2023, 2024, 2100} {
		prev := -1
		for d := date(year, time.January, 1); d.Year() == year; d = d.AddDate(0, 0, 1) {
			p := Compute(d)
			require.Equal(t, p.TotalDays, p.ElapsedDays+p.RemainingDays, "date %s", d.Format("2006-01-02"))
			require.GreaterOrEqual(t, p.Percent, prev, "percent decreased at %s", d.Format("2006-01-02"))
			require.LessOrEqual(t, p.Percent, 100)
			prev = p.Percent
		}
	}
}

func TestPercentHalfUp(t *testing.T) {
	// 1/8 = 12.5% rounds up, 1/3 = 33.33% rounds down, 2/3 = 66.67% rounds up
	assert.Equal(t, 13, percentHalfUp(1, 8))
	assert.Equal(t, 33, percentHalfUp(1, 3))
	assert.Equal(t, 67, percentHalfUp(2, 3))
	assert.Equal(t, 0, percentHalfUp(5, 0))
}

func TestComputeIsDeterministic(t *testing.T) {
	d := date(2024, time.March, 15)
	a, b := Compute(d), Compute(d)
	assert.Equal(t, a, b)
	assert.Equal(t,
		RenderBar(float64(a.Percent), 10, DefaultFilledGlyph, DefaultEmptyGlyph),
		RenderBar(float64(b.Percent), 10, DefaultFilledGlyph, DefaultEmptyGlyph),
	)
}

func TestToday(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	// 2023-12-31 20:00 UTC is already New Year's Day in Tokyo
	now := time.Date(2023, time.December, 31, 20, 0, 0, 0, time.UTC)

	got := Today(now, jst)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, 1, got.YearDay())
	assert.Equal(t, 0, got.Hour())

	utc := Today(now, nil)
	assert.Equal(t, 2023, utc.Year())
	assert.Equal(t, 365, utc.YearDay())
}
