package booking

import "time"

// ValidateOrder decides whether c may be booked for emp/svc. It checks, in
// order and stopping at the first failure: range, duration, containment in
// a single schedule block of the start's weekday, and overlap with orders.
//
// schedules may hold the employee's whole week; orders must cover at least
// the candidate's day. Nothing is written.
func ValidateOrder(
	emp Employee,
	svc Service,
	c Candidate,
	schedules []WorkSchedule,
	orders []Booking,
) error {
	if !c.Start.Before(c.End) {
		return ErrInvalidRange
	}

	if c.End.Sub(c.Start) != ResolveDuration(emp, svc) {
		return ErrDurationMismatch
	}

	if !WithinSchedule(c.Start, c.End, schedules) {
		return ErrOutsideWorkingHours
	}

	return CheckNoOverlap(c, orders)
}

// WithinSchedule reports whether [start, end] is nested in one block of
// start's weekday. Both block boundaries are inclusive.
func WithinSchedule(start, end time.Time, schedules []WorkSchedule) bool {
	wd := WeekdayOf(start)
	for _, s := range schedules {
		if s.Weekday != wd {
			continue
		}
		if start.Before(s.Start.On(start)) {
			continue
		}
		if end.After(s.End.On(start)) {
			continue
		}
		return true
	}
	return false
}

// CheckNoOverlap returns ErrDoubleBooked when c overlaps any order other
// than c.ExcludeOrderID. Back-to-back orders do not overlap.
func CheckNoOverlap(c Candidate, orders []Booking) error {
	for _, o := range orders {
		if c.ExcludeOrderID != 0 && o.ID == c.ExcludeOrderID {
			continue
		}
		if Overlaps(o.Start, o.End, c.Start, c.End) {
			return ErrDoubleBooked
		}
	}
	return nil
}
