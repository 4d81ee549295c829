package booking

import "time"

// ===============================
// Core inputs
// ===============================

// Employee carries only what the engine reads. Duration zero means the
// employee has no fixed duration and the service's applies.
type Employee struct {
	ID       uint
	Duration time.Duration
}

type Service struct {
	ID       uint
	Duration time.Duration
}

// WorkSchedule is a recurring half-open block [Start, End) on Weekday.
type WorkSchedule struct {
	Weekday Weekday
	Start   Clock
	End     Clock
}

// Booking is an existing order as seen by the overlap test.
type Booking struct {
	ID    uint
	Start time.Time
	End   time.Time
}

// Candidate is a proposed order. ExcludeOrderID zero excludes nothing.
type Candidate struct {
	Start          time.Time
	End            time.Time
	ExcludeOrderID uint
}

type Slot struct {
	Start time.Time
	End   time.Time
}

// ResolveDuration returns the duration an order for (emp, svc) must match.
func ResolveDuration(emp Employee, svc Service) time.Duration {
	if emp.Duration > 0 {
		return emp.Duration
	}
	return svc.Duration
}

// Overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// overlap iff aStart < bEnd and bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
