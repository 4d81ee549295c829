package timezone

import (
	"sync"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Asia/Tashkent"

var (
	fallback = DefaultTimezone

	// loaded zones, keyed by name
	cache sync.Map
)

// SetDefault changes the zone used for businesses without a valid one.
// Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		fallback = tz
	}
}

func Default() string {
	return fallback
}

func load(tz string) (*time.Location, error) {
	if loc, ok := cache.Load(tz); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(tz, loc)
	return actual.(*time.Location), nil
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := load(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := load(tz); err == nil {
			return loc
		}
	}

	if loc, err := load(fallback); err == nil {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location(fallback))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today is midnight of the current date in tz.
func Today(tz string) time.Time {
	now := NowIn(tz)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
