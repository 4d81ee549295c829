package booking

import "errors"

// RejectReason is a deterministic validation outcome. Callers match it
// with errors.Is against the sentinels below.
type RejectReason string

const (
	ReasonInvalidRange        RejectReason = "invalid_range"
	ReasonDurationMismatch    RejectReason = "duration_mismatch"
	ReasonOutsideWorkingHours RejectReason = "outside_working_hours"
	ReasonDoubleBooked        RejectReason = "double_booked"
)

var (
	ErrInvalidRange        error = ReasonInvalidRange
	ErrDurationMismatch    error = ReasonDurationMismatch
	ErrOutsideWorkingHours error = ReasonOutsideWorkingHours
	ErrDoubleBooked        error = ReasonDoubleBooked

	// ErrNotFound is returned by repositories for unknown identifiers.
	ErrNotFound = errors.New("not found")
)

func (r RejectReason) Error() string {
	return string(r)
}

// Message is the user-facing text for the reason.
func (r RejectReason) Message() string {
	switch r {
	case ReasonInvalidRange:
		return "The start time must be before the end time."
	case ReasonDurationMismatch:
		return "The duration between start_time and end_time must match the employee or service duration."
	case ReasonOutsideWorkingHours:
		return "The order times must fall within the employee's work schedule for the selected day."
	case ReasonDoubleBooked:
		return "The employee is not available during the specified times."
	}
	return string(r)
}

// AsReason extracts the RejectReason wrapped in err, if any.
func AsReason(err error) (RejectReason, bool) {
	var r RejectReason
	if errors.As(err, &r) {
		return r, true
	}
	return "", false
}
