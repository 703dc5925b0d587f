package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, s string) ClockTime {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func slot(t *testing.T, start, end string) TimeSlot {
	t.Helper()
	return TimeSlot{Start: mustClock(t, start), End: mustClock(t, end)}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(9*60+30), c)
	assert.Equal(t, "09:30", c.String())
	assert.True(t, c.OnHalfHour())

	c, err = ParseClock("21:45")
	require.NoError(t, err)
	assert.False(t, c.OnHalfHour())

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     TimeSlot
		overlaps bool
	}{
		{"identical", slot(t, "09:00", "10:00"), slot(t, "09:00", "10:00"), true},
		{"partial", slot(t, "09:00", "10:00"), slot(t, "09:30", "10:30"), true},
		{"contained", slot(t, "09:00", "12:00"), slot(t, "10:00", "11:00"), true},
		{"adjacent after", slot(t, "09:00", "10:00"), slot(t, "10:00", "11:00"), false},
		{"adjacent before", slot(t, "10:00", "11:00"), slot(t, "09:00", "10:00"), false},
		{"disjoint", slot(t, "09:00", "10:00"), slot(t, "14:00", "15:00"), false},
		{"touching start", slot(t, "09:00", "10:30"), slot(t, "10:00", "11:00"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			// symmetric
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
		})
	}
}

// Exhaustive check of the half-open rule on a small grid: overlap iff
// s1 < e2 && s2 < e1.
func TestTimeSlot_Overlaps_Property(t *testing.T) {
	const step = ClockTime(30)
	for s1 := ClockTime(0); s1 < 8*step; s1 += step {
		for e1 := s1 + step; e1 <= 8*step; e1 += step {
			for s2 := ClockTime(0); s2 < 8*step; s2 += step {
				for e2 := s2 + step; e2 <= 8*step; e2 += step {
					a := TimeSlot{Start: s1, End: e1}
					b := TimeSlot{Start: s2, End: e2}
					want := s1 < e2 && s2 < e1
					assert.Equal(t, want, a.Overlaps(b), "[%s,%s) vs [%s,%s)", s1, e1, s2, e2)
				}
			}
		}
	}
}

func TestFirstConflict(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	approved := []BookingRequest{
		{BookingID: "a", VenueID: 1, EventDate: date, StartTime: mustClock(t, "09:00"), EndTime: mustClock(t, "10:00")},
		{BookingID: "b", VenueID: 1, EventDate: date, StartTime: mustClock(t, "13:00"), EndTime: mustClock(t, "15:00")},
	}

	assert.Nil(t, FirstConflict(slot(t, "10:00", "11:00"), approved, ""))

	c := FirstConflict(slot(t, "09:30", "10:30"), approved, "")
	require.NotNil(t, c)
	assert.Equal(t, "a", c.BookingID)

	// the booking being re-checked must not conflict with itself
	assert.Nil(t, FirstConflict(slot(t, "09:00", "10:00"), approved, "a"))

	c = FirstConflict(slot(t, "14:00", "16:00"), approved, "a")
	require.NotNil(t, c)
	assert.Equal(t, "b", c.BookingID)
}
