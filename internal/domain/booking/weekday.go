package booking

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the three-letter token a work schedule is stored under.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

var byTimeWeekday = [7]Weekday{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// Weekdays returns the tokens Monday first.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOf derives the token from t's calendar date in t's location.
func WeekdayOf(t time.Time) Weekday {
	return byTimeWeekday[t.Weekday()]
}

func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if !w.Valid() {
		return "", fmt.Errorf("invalid weekday %q", s)
	}
	return w, nil
}

func (w Weekday) Valid() bool {
	for _, d := range byTimeWeekday {
		if d == w {
			return true
		}
	}
	return false
}

// Index orders tokens Monday first (MON=0 .. SUN=6).
func (w Weekday) Index() int {
	for i, d := range Weekdays() {
		if d == w {
			return i
		}
	}
	return -1
}
