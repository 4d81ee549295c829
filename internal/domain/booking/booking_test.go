package booking

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tashkent = time.FixedZone("UTC+5", 5*60*60)

// 2024-01-01 is a Monday.
func at(day int, hm string) time.Time {
	c, err := ParseClock(hm)
	if err != nil {
		panic(err)
	}
	return c.On(time.Date(2024, time.January, day, 0, 0, 0, 0, tashkent))
}

func clock(hm string) Clock {
	c, err := ParseClock(hm)
	if err != nil {
		panic(err)
	}
	return c
}

func mondayNineToFive() []WorkSchedule {
	return []WorkSchedule{{Weekday: Monday, Start: clock("09:00"), End: clock("17:00")}}
}

var (
	noFixed = Employee{ID: 1}
	thirty  = Service{ID: 7, Duration: 30 * time.Minute}
	withFix = Employee{ID: 2, Duration: 45 * time.Minute}
)

// ======================================================
// Helpers
// ======================================================

func TestWeekdayOf(t *testing.T) {
	for i, want := range Weekdays() {
		assert.Equal(t, want, WeekdayOf(at(1+i, "12:00")))
		assert.Equal(t, i, want.Index())
	}
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday(" mon ")
	require.NoError(t, err)
	assert.Equal(t, Monday, wd)

	_, err = ParseWeekday("MONDAY")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(9*time.Hour+30*time.Minute), c)
	assert.Equal(t, "09:30", c.String())

	c, err = ParseClock("17:00:15")
	require.NoError(t, err)
	assert.Equal(t, "17:00:15", c.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestClockOnKeepsLocation(t *testing.T) {
	got := clock("09:15").On(at(3, "22:00"))
	assert.Equal(t, at(3, "09:15"), got)
	assert.Equal(t, tashkent, got.Location())
}

func TestResolveDuration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, ResolveDuration(noFixed, thirty))
	assert.Equal(t, 45*time.Minute, ResolveDuration(withFix, thirty))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(at(1, "10:00"), at(1, "10:30"), at(1, "10:15"), at(1, "10:45")))
	assert.False(t, Overlaps(at(1, "10:00"), at(1, "10:30"), at(1, "10:30"), at(1, "11:00")))
	assert.True(t, Overlaps(at(1, "10:00"), at(1, "12:00"), at(1, "10:30"), at(1, "11:00")))
}

// ======================================================
// ValidateOrder
// ======================================================

func TestValidateOrder(t *testing.T) {
	existing := []Booking{{ID: 11, Start: at(1, "10:00"), End: at(1, "10:30")}}

	cases := []struct {
		name  string
		emp   Employee
		start time.Time
		end   time.Time
		want  error
	}{
		{"exact service duration", noFixed, at(1, "09:00"), at(1, "09:30"), nil},
		{"one minute too long", noFixed, at(1, "09:00"), at(1, "09:31"), ErrDurationMismatch},
		{"employee duration wins", withFix, at(1, "09:00"), at(1, "09:30"), ErrDurationMismatch},
		{"employee duration matches", withFix, at(1, "09:00"), at(1, "09:45"), nil},
		{"ends on block end", noFixed, at(1, "16:30"), at(1, "17:00"), nil},
		{"crosses block end", noFixed, at(1, "16:45"), at(1, "17:15"), ErrOutsideWorkingHours},
		{"starts before block", noFixed, at(1, "08:45"), at(1, "09:15"), ErrOutsideWorkingHours},
		{"no schedule that day", noFixed, at(2, "09:00"), at(2, "09:30"), ErrOutsideWorkingHours},
		{"overlaps existing", noFixed, at(1, "10:15"), at(1, "10:45"), ErrDoubleBooked},
		{"back to back after", noFixed, at(1, "10:30"), at(1, "11:00"), nil},
		{"back to back before", noFixed, at(1, "09:30"), at(1, "10:00"), nil},
		{"end before start", noFixed, at(1, "10:30"), at(1, "10:00"), ErrInvalidRange},
		{"empty range", noFixed, at(1, "10:30"), at(1, "10:30"), ErrInvalidRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOrder(tc.emp, thirty, Candidate{Start: tc.start, End: tc.end}, mondayNineToFive(), existing)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateOrderStopsAtFirstFailure(t *testing.T) {
	// wrong duration, outside hours and overlapping at once
	existing := []Booking{{ID: 1, Start: at(2, "07:00"), End: at(2, "09:00")}}
	err := ValidateOrder(noFixed, thirty, Candidate{Start: at(2, "07:00"), End: at(2, "08:00")}, mondayNineToFive(), existing)
	assert.ErrorIs(t, err, ErrDurationMismatch)

	err = ValidateOrder(noFixed, thirty, Candidate{Start: at(2, "07:00"), End: at(2, "07:30")}, mondayNineToFive(), existing)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestValidateOrderIsPure(t *testing.T) {
	existing := []Booking{{ID: 11, Start: at(1, "10:00"), End: at(1, "10:30")}}
	c := Candidate{Start: at(1, "10:15"), End: at(1, "10:45")}

	first := ValidateOrder(noFixed, thirty, c, mondayNineToFive(), existing)
	second := ValidateOrder(noFixed, thirty, c, mondayNineToFive(), existing)
	assert.Equal(t, first, second)
}

func TestValidateOrderRequiresSingleBlock(t *testing.T) {
	split := []WorkSchedule{
		{Weekday: Monday, Start: clock("09:00"), End: clock("12:00")},
		{Weekday: Monday, Start: clock("12:00"), End: clock("17:00")},
	}
	err := ValidateOrder(noFixed, thirty, Candidate{Start: at(1, "11:45"), End: at(1, "12:15")}, split, nil)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	err = ValidateOrder(noFixed, thirty, Candidate{Start: at(1, "12:00"), End: at(1, "12:30")}, split, nil)
	assert.NoError(t, err)
}

// The end is compared as an instant on the start's date, so an order that
// runs into the next day never fits a late block.
func TestValidateOrderRejectsEndPastMidnight(t *testing.T) {
	late := []WorkSchedule{{Weekday: Monday, Start: clock("23:00"), End: clock("23:59")}}

	err := ValidateOrder(noFixed, thirty, Candidate{Start: at(1, "23:30"), End: at(2, "00:00")}, late, nil)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	err = ValidateOrder(noFixed, thirty, Candidate{Start: at(1, "23:00"), End: at(1, "23:30")}, late, nil)
	assert.NoError(t, err)

	assert.False(t, WithinSchedule(at(1, "23:30"), at(2, "00:00"), late))
}

func TestValidateOrderExcludesOrderBeingChanged(t *testing.T) {
	existing := []Booking{
		{ID: 11, Start: at(1, "10:00"), End: at(1, "10:30")},
		{ID: 12, Start: at(1, "11:00"), End: at(1, "11:30")},
	}

	err := ValidateOrder(noFixed, thirty, Candidate{Start: at(1, "10:15"), End: at(1, "10:45"), ExcludeOrderID: 11}, mondayNineToFive(), existing)
	assert.NoError(t, err)

	err = ValidateOrder(noFixed, thirty, Candidate{Start: at(1, "10:45"), End: at(1, "11:15"), ExcludeOrderID: 11}, mondayNineToFive(), existing)
	assert.ErrorIs(t, err, ErrDoubleBooked)
}

func TestRejectReason(t *testing.T) {
	wrapped := fmt.Errorf("create order: %w", ErrDoubleBooked)

	r, ok := AsReason(wrapped)
	require.True(t, ok)
	assert.Equal(t, ReasonDoubleBooked, r)
	assert.True(t, errors.Is(wrapped, ErrDoubleBooked))
	assert.Equal(t, "double_booked", ErrDoubleBooked.Error())
	assert.Contains(t, r.Message(), "not available")

	_, ok = AsReason(errors.New("boom"))
	assert.False(t, ok)
}

// ======================================================
// AvailableSlots
// ======================================================

func collect(t *testing.T, emp Employee, from, to time.Time, schedules []WorkSchedule, orders []Booking) []Slot {
	t.Helper()
	seq, err := AvailableSlots(emp, thirty, from, to, schedules, orders)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestAvailableSlotsFreeHour(t *testing.T) {
	schedules := []WorkSchedule{{Weekday: Monday, Start: clock("09:00"), End: clock("10:00")}}

	got := collect(t, noFixed, at(1, "00:00"), at(1, "00:00"), schedules, nil)

	assert.Equal(t, []Slot{
		{Start: at(1, "09:00"), End: at(1, "09:30")},
		{Start: at(1, "09:30"), End: at(1, "10:00")},
	}, got)
}

func TestAvailableSlotsSkipsBooked(t *testing.T) {
	schedules := []WorkSchedule{{Weekday: Monday, Start: clock("09:00"), End: clock("10:00")}}
	orders := []Booking{{ID: 1, Start: at(1, "09:00"), End: at(1, "09:30")}}

	got := collect(t, noFixed, at(1, "00:00"), at(1, "00:00"), schedules, orders)

	assert.Equal(t, []Slot{{Start: at(1, "09:30"), End: at(1, "10:00")}}, got)
}

func TestAvailableSlotsIsRestartable(t *testing.T) {
	seq, err := AvailableSlots(noFixed, thirty, at(1, "00:00"), at(7, "00:00"), mondayNineToFive(), nil)
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Len(t, first, 16)
	assert.Equal(t, first, second)
}

func TestAvailableSlotsStrideOvershoot(t *testing.T) {
	schedules := []WorkSchedule{{Weekday: Monday, Start: clock("09:00"), End: clock("10:00")}}

	got := collect(t, withFix, at(1, "00:00"), at(1, "00:00"), schedules, nil)

	require.Len(t, got, 2)
	assert.Equal(t, at(1, "09:45"), got[1].Start)
	assert.Equal(t, at(1, "10:30"), got[1].End)
}

func TestAvailableSlotsBlocksAreNotMerged(t *testing.T) {
	schedules := []WorkSchedule{
		{Weekday: Monday, Start: clock("14:00"), End: clock("14:30")},
		{Weekday: Monday, Start: clock("09:00"), End: clock("09:45")},
	}

	got := collect(t, noFixed, at(1, "00:00"), at(1, "00:00"), schedules, nil)

	assert.Equal(t, []Slot{
		{Start: at(1, "09:00"), End: at(1, "09:30")},
		{Start: at(1, "09:30"), End: at(1, "10:00")},
		{Start: at(1, "14:00"), End: at(1, "14:30")},
	}, got)
}

func TestAvailableSlotsAcrossDays(t *testing.T) {
	schedules := []WorkSchedule{
		{Weekday: Wednesday, Start: clock("10:00"), End: clock("10:30")},
		{Weekday: Monday, Start: clock("09:00"), End: clock("09:30")},
	}

	got := collect(t, noFixed, at(1, "15:00"), at(8, "08:00"), schedules, nil)

	assert.Equal(t, []Slot{
		{Start: at(1, "09:00"), End: at(1, "09:30")},
		{Start: at(3, "10:00"), End: at(3, "10:30")},
		{Start: at(8, "09:00"), End: at(8, "09:30")},
	}, got)
}

func TestAvailableSlotsStopsWhenConsumerStops(t *testing.T) {
	seq, err := AvailableSlots(noFixed, thirty, at(1, "00:00"), at(1, "00:00"), mondayNineToFive(), nil)
	require.NoError(t, err)

	var n int
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestAvailableSlotsInvalidRange(t *testing.T) {
	_, err := AvailableSlots(noFixed, thirty, at(2, "00:00"), at(1, "23:00"), mondayNineToFive(), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAvailableSlotsZeroDuration(t *testing.T) {
	_, err := AvailableSlots(noFixed, Service{ID: 1}, at(1, "00:00"), at(1, "00:00"), mondayNineToFive(), nil)
	assert.ErrorIs(t, err, ErrDurationMismatch)
}

func TestAvailableSlotsDoesNotAliasInputs(t *testing.T) {
	schedules := []WorkSchedule{{Weekday: Monday, Start: clock("09:00"), End: clock("10:00")}}
	seq, err := AvailableSlots(noFixed, thirty, at(1, "00:00"), at(1, "00:00"), schedules, nil)
	require.NoError(t, err)

	schedules[0].End = clock("09:30")
	assert.Len(t, slices.Collect(seq), 2)
}
