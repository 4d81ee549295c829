package booking

import (
	"iter"
	"slices"
	"time"
)

// AvailableSlots returns the bookable slots for emp/svc on every calendar
// day from the date of from through the date of to, in from's location.
//
// Each schedule block of a day is walked on its own with a fixed stride of
// the expected duration, starting at the block start and continuing while
// the cursor is before the block end. The last slot of a block may extend
// past the block end when the stride does not divide it. Slots overlapping
// an order are skipped.
//
// The sequence is finite and restartable: every iteration recomputes from
// the inputs captured at call time.
func AvailableSlots(
	emp Employee,
	svc Service,
	from, to time.Time,
	schedules []WorkSchedule,
	orders []Booking,
) (iter.Seq[Slot], error) {
	loc := from.Location()
	first := startOfDay(from)
	last := startOfDay(to.In(loc))
	if last.Before(first) {
		return nil, ErrInvalidRange
	}

	stride := ResolveDuration(emp, svc)
	if stride <= 0 {
		return nil, ErrDurationMismatch
	}

	schedules = slices.Clone(schedules)
	orders = slices.Clone(orders)

	return func(yield func(Slot) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			for _, s := range daySlots(d, stride, schedules, orders) {
				if !yield(s) {
					return
				}
			}
		}
	}, nil
}

func daySlots(d time.Time, stride time.Duration, schedules []WorkSchedule, orders []Booking) []Slot {
	wd := WeekdayOf(d)

	var out []Slot
	for _, s := range schedules {
		if s.Weekday != wd {
			continue
		}

		blockEnd := s.End.On(d)
		for cur := s.Start.On(d); cur.Before(blockEnd); cur = cur.Add(stride) {
			slot := Slot{Start: cur, End: cur.Add(stride)}
			if conflicts(slot, orders) {
				continue
			}
			out = append(out, slot)
		}
	}

	slices.SortStableFunc(out, func(a, b Slot) int {
		return a.Start.Compare(b.Start)
	})
	return out
}

func conflicts(s Slot, orders []Booking) bool {
	for _, o := range orders {
		if Overlaps(o.Start, o.End, s.Start, s.End) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
