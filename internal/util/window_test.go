package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utc8 = time.FixedZone("UTC+8", 8*60*60)

func TestTodayWindow(t *testing.T) {
	ref := time.Date(2025, time.January, 13, 23, 58, 0, 0, utc8)
	w := TodayWindow(ref, utc8)

	assert.Equal(t, time.Date(2025, time.January, 13, 0, 0, 0, 0, utc8), w.Start)
	assert.Equal(t, time.Date(2025, time.January, 13, 23, 59, 59, 999000000, utc8), w.End)
	assert.True(t, w.Contains(ref))
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(ref.Add(3*time.Minute)))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
}

func TestTodayWindowUsesSchoolTimezone(t *testing.T) {
	// 16:30 UTC 已是学校时区的次日 00:30
	ref := time.Date(2025, time.January, 13, 16, 30, 0, 0, time.UTC)
	w := TodayWindow(ref, utc8)

	assert.Equal(t, time.Date(2025, time.January, 14, 0, 0, 0, 0, utc8), w.Start)
	assert.Equal(t, "2025-01-14", DayKey(ref, utc8))
	assert.Equal(t, "2025-01-13", DayKey(ref, time.UTC))

	u := w.UTC()
	assert.Equal(t, time.Date(2025, time.January, 13, 16, 0, 0, 0, time.UTC), u.Start)
	assert.True(t, u.Start.Equal(w.Start))
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		name       string
		week, year int
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name: "mid january",
			week: 3, year: 2025,
			wantStart: time.Date(2025, time.January, 13, 0, 0, 0, 0, utc8),
			wantEnd:   time.Date(2025, time.January, 19, 23, 59, 59, 999000000, utc8),
		},
		{
			name: "week one starts in previous year",
			week: 1, year: 2026,
			wantStart: time.Date(2025, time.December, 29, 0, 0, 0, 0, utc8),
			wantEnd:   time.Date(2026, time.January, 4, 23, 59, 59, 999000000, utc8),
		},
		{
			name: "week 53",
			week: 53, year: 2020,
			wantStart: time.Date(2020, time.December, 28, 0, 0, 0, 0, utc8),
			wantEnd:   time.Date(2021, time.January, 3, 23, 59, 59, 999000000, utc8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := WeekWindow(tt.week, tt.year, utc8)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			assert.Equal(t, time.Monday, w.Start.Weekday())

			y, wk := ISOWeek(w.End, utc8)
			assert.Equal(t, tt.year, y)
			assert.Equal(t, tt.week, wk)
		})
	}
}

func TestWeekWindowRejectsInvalidWeeks(t *testing.T) {
	for _, tc := range []struct{ week, year int }{{0, 2025}, {54, 2025}, {53, 2021}} {
		_, err := WeekWindow(tc.week, tc.year, utc8)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "week %d/%d", tc.week, tc.year)
	}
}

func TestISOWeekAtYearBoundary(t *testing.T) {
	// 2024-12-30 是 2025 年第 1 周的周一
	y, w := ISOWeek(time.Date(2024, time.December, 30, 9, 0, 0, 0, utc8), utc8)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, w)

	// 周日 23:59 仍属本周
	y, w = ISOWeek(time.Date(2025, time.January, 19, 23, 59, 0, 0, utc8), utc8)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 3, w)
}

func TestReferenceTime(t *testing.T) {
	server := time.Date(2025, time.January, 13, 12, 0, 0, 0, time.UTC)
	near := server.Add(-4 * time.Minute)
	far := server.Add(-2 * time.Hour)
	zero := time.Time{}

	assert.Equal(t, server, ReferenceTime(server, nil, 10*time.Minute))
	assert.Equal(t, server, ReferenceTime(server, &zero, 10*time.Minute))
	assert.Equal(t, near, ReferenceTime(server, &near, 10*time.Minute))
	assert.Equal(t, server, ReferenceTime(server, &far, 10*time.Minute))
	assert.Equal(t, server, ReferenceTime(server, &near, 0))
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, time.January, 13, 8, 0, 0, 0, utc8)
	clock := NewFixedClock(start)
	assert.Equal(t, start, clock.Now())

	clock.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())

	clock.Set(start)
	assert.Equal(t, start, clock.Now())
}
