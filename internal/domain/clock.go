package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a wall-clock time of day in minutes since midnight.
// Bookings are same-day only, so a pair of ClockTimes fully describes a slot.
type ClockTime int

// ParseClock parses "15:04" into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// OnHalfHour reports whether the time lands on a :00 or :30 boundary.
func (c ClockTime) OnHalfHour() bool {
	return int(c)%30 == 0
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// TimeSlot is a half-open [Start, End) interval within one day.
type TimeSlot struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Overlaps uses the half-open rule: [s1,e1) and [s2,e2) overlap iff
// s1 < e2 && s2 < e1. Adjacent slots (one ends where the other starts)
// do not overlap.
func (t TimeSlot) Overlaps(o TimeSlot) bool {
	return t.Start < o.End && o.Start < t.End
}
