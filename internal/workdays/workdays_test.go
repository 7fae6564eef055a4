package workdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCountBetween(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "same weekday counts itself",
			start: date(2024, time.January, 1), // Monday
			end:   date(2024, time.January, 1),
			want:  1,
		},
		{
			name:  "same saturday counts nothing",
			start: date(2024, time.January, 6),
			end:   date(2024, time.January, 6),
			want:  0,
		},
		{
			name:  "full week",
			start: date(2024, time.January, 1), // Monday
			end:   date(2024, time.January, 7), // Sunday
			want:  5,
		},
		{
			name:  "weekend only",
			start: date(2024, time.January, 6), // Saturday
			end:   date(2024, time.January, 7), // Sunday
			want:  0,
		},
		{
			name:  "spanning two weekends",
			start: date(2024, time.January, 1),  // Monday
			end:   date(2024, time.January, 15), // Monday two weeks later
			want:  11,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CountBetween(tt.start, tt.end))
		})
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{
			name:  "zero days returns start unchanged",
			start: date(2024, time.January, 6), // Saturday stays Saturday
			n:     0,
			want:  date(2024, time.January, 6),
		},
		{
			name:  "one day from friday skips weekend",
			start: date(2024, time.January, 5), // Friday
			n:     1,
			want:  date(2024, time.January, 8), // Monday
		},
		{
			name:  "statutory deadline from monday",
			start: date(2024, time.January, 1), // Monday
			n:     15,
			want:  date(2024, time.January, 22), // Monday three weeks later
		},
		{
			name:  "from saturday the start is not counted",
			start: date(2024, time.January, 6), // Saturday
			n:     1,
			want:  date(2024, time.January, 8), // Monday
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Add(tt.start, tt.n))
		})
	}
}

// Add must land on a weekday for any positive n, be strictly increasing in n,
// and round-trip through CountBetween without counting the start date.
func TestAddProperties(t *testing.T) {
	t.Parallel()
	// Cover every weekday as a starting point.
	for day := 1; day <= 7; day++ {
		start := date(2024, time.January, day)
		previous := start
		for n := 1; n <= 30; n++ {
			got := Add(start, n)
			weekday := got.Weekday()
			require.NotEqual(t, time.Saturday, weekday, "Add(%v, %d) landed on Saturday", start, n)
			require.NotEqual(t, time.Sunday, weekday, "Add(%v, %d) landed on Sunday", start, n)
			require.True(t, got.After(previous), "Add(%v, %d) is not strictly increasing", start, n)
			previous = got

			// The start date itself is never counted toward n, so counting from
			// the next day recovers n exactly.
			require.Equal(t, n, CountBetween(start.AddDate(0, 0, 1), got),
				"round trip mismatch for Add(%v, %d)", start, n)
		}
	}
}

func TestUntil(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		today    time.Time
		deadline time.Time
		want     int
	}{
		{
			name:     "deadline today reports one day left",
			today:    date(2024, time.January, 22), // Monday
			deadline: date(2024, time.January, 22),
			want:     1,
		},
		{
			name:     "deadline tomorrow",
			today:    date(2024, time.January, 22),
			deadline: date(2024, time.January, 23),
			want:     2,
		},
		{
			name:     "one weekday past deadline",
			today:    date(2024, time.January, 23),
			deadline: date(2024, time.January, 22),
			want:     -2,
		},
		{
			name:     "deadline long past",
			today:    date(2024, time.February, 5),
			deadline: date(2024, time.January, 22),
			want:     -11,
		},
		{
			name:     "time of day is stripped",
			today:    time.Date(2024, time.January, 22, 23, 59, 0, 0, time.UTC),
			deadline: time.Date(2024, time.January, 22, 0, 1, 0, 0, time.UTC),
			want:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Until(tt.today, tt.deadline))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	require.Equal(t, Overdue, Classify(-1))
	require.Equal(t, Urgent, Classify(0))
	require.Equal(t, Urgent, Classify(1))
	require.Equal(t, Urgent, Classify(2))
	require.Equal(t, Normal, Classify(3))

	// A deadline of today classifies as urgent through the preserved
	// one-day-left quirk in Until.
	today := date(2024, time.January, 22)
	require.Equal(t, Urgent, Classify(Until(today, today)))
}
