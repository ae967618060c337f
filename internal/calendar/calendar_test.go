package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		kind   ViewKind
		anchor time.Time
		start  time.Time
		end    time.Time
	}{
		{
			name:   "day",
			kind:   ViewDay,
			anchor: time.Date(2026, time.January, 20, 18, 30, 0, 0, time.UTC),
			start:  date(2026, time.January, 20),
			end:    date(2026, time.January, 21),
		},
		{
			name:   "week starts on monday",
			kind:   ViewWeek,
			anchor: date(2024, time.January, 10), // a Wednesday
			start:  date(2024, time.January, 8),
			end:    date(2024, time.January, 15),
		},
		{
			name:   "week anchored on monday",
			kind:   ViewWeek,
			anchor: date(2024, time.January, 8),
			start:  date(2024, time.January, 8),
			end:    date(2024, time.January, 15),
		},
		{
			name:   "week anchored on sunday",
			kind:   ViewWeek,
			anchor: date(2024, time.January, 14),
			start:  date(2024, time.January, 8),
			end:    date(2024, time.January, 15),
		},
		{
			name:   "week across month boundary",
			kind:   ViewWeek,
			anchor: date(2023, time.December, 31), // Sunday
			start:  date(2023, time.December, 25),
			end:    date(2024, time.January, 1),
		},
		{
			name:   "leap february ends at march 1",
			kind:   ViewMonth,
			anchor: date(2024, time.February, 15),
			start:  date(2024, time.February, 1),
			end:    date(2024, time.March, 1),
		},
		{
			name:   "december rolls into next year",
			kind:   ViewMonth,
			anchor: date(2023, time.December, 5),
			start:  date(2023, time.December, 1),
			end:    date(2024, time.January, 1),
		},
		{
			name:   "year",
			kind:   ViewYear,
			anchor: date(2023, time.June, 1),
			start:  date(2023, time.January, 1),
			end:    date(2024, time.January, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := Resolve(tt.kind, tt.anchor)
			require.True(t, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestResolve_UnknownKind(t *testing.T) {
	_, _, ok := Resolve(ViewKind("fortnight"), date(2024, time.January, 1))
	assert.False(t, ok)
}

func TestParseAnchor(t *testing.T) {
	got, err := ParseAnchor("2026-01-20")
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.January, 20), got)

	got, err = ParseAnchor("2026-01-20T18:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 20, 18, 30, 0, 0, time.UTC), got)

	got, err = ParseAnchor("2026-01-20T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 20, 18, 30, 0, 0, time.UTC), got)

	_, err = ParseAnchor("20/01/2026")
	assert.Error(t, err)

	_, err = ParseAnchor("")
	assert.Error(t, err)
}
