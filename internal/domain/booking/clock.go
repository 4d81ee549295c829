package booking

import (
	"fmt"
	"time"
)

// Clock is a wall-clock time of day measured from midnight.
type Clock time.Duration

const day = Clock(24 * time.Hour)

// ParseClock accepts "15:04" and "15:04:05".
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) Clock {
	h, m, s := t.Clock()
	return Clock(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()))
}

// On combines the calendar date of d with c, in d's location.
func (c Clock) On(d time.Time) time.Time {
	y, mo, dd := d.Date()
	rest := time.Duration(c)
	h := rest / time.Hour
	rest -= h * time.Hour
	m := rest / time.Minute
	rest -= m * time.Minute
	s := rest / time.Second
	rest -= s * time.Second
	return time.Date(y, mo, dd, int(h), int(m), int(s), int(rest), d.Location())
}

func (c Clock) Valid() bool {
	return c >= 0 && c < day
}

func (c Clock) String() string {
	d := time.Duration(c)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
