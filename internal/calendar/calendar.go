// Package calendar expands and tests inclusive date ranges on the local
// calendar. Range bounds are expected at local midnight; every step uses
// AddDate so DST transitions never skip or repeat a day.
package calendar

import (
	"errors"
	"iter"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected yyyy-mm-dd")

// ParseLocalDate parses a timezone-less yyyy-mm-dd string into midnight of
// that day in loc.
func ParseLocalDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Days yields every calendar day in [start, end], both ends included, as
// midnight in start's location. Nothing is yielded when end precedes start.
func Days(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		loc := start.Location()
		day := StartOfDay(start, loc)
		last := StartOfDay(end, loc)
		for !day.After(last) {
			if !yield(day) {
				return
			}
			day = day.AddDate(0, 0, 1)
		}
	}
}

// AppendDayKeys appends the yyyy-mm-dd key of every day in [start, end] to
// dst and returns the extended slice. Passing dst[:0] reuses its storage.
func AppendDayKeys(dst []string, start, end time.Time) []string {
	for day := range Days(start, end) {
		dst = append(dst, DayKey(day))
	}
	return dst
}

func DaysCovered(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}
	return AppendDayKeys(make([]string, 0, SpanDays(start, end)), start, end)
}

// SpanDays counts the days in [start, end]; zero when end precedes start.
func SpanDays(start, end time.Time) int {
	loc := start.Location()
	s := StartOfDay(start, loc)
	e := StartOfDay(end, loc)
	if e.Before(s) {
		return 0
	}
	// Compare civil dates in UTC so a 23h or 25h DST day still counts as one.
	sy, sm, sd := s.Date()
	ey, em, ed := e.Date()
	su := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	eu := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(eu.Sub(su).Hours()/24) + 1
}

// Covers reports whether day falls inside [start, end]. It agrees with
// membership in Days(start, end) without expanding the range.
func Covers(start, end, day time.Time) bool {
	loc := start.Location()
	d := StartOfDay(day, loc)
	return !d.Before(StartOfDay(start, loc)) && !d.After(StartOfDay(end, loc))
}

// IndexByDay groups items under every day key they cover, restricted to
// [from, to]. span returns the item's inclusive range.
func IndexByDay[T any](items []T, from, to time.Time, span func(T) (time.Time, time.Time)) map[string][]T {
	index := make(map[string][]T)
	loc := from.Location()
	from = StartOfDay(from, loc)
	to = StartOfDay(to, loc)
	for _, item := range items {
		start, end := span(item)
		start = StartOfDay(start, loc)
		end = StartOfDay(end, loc)
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for day := range Days(start, end) {
			key := DayKey(day)
			index[key] = append(index[key], item)
		}
	}
	return index
}

// Civil encodes the calendar date of t as UTC midnight. Date columns are
// stored this way so they compare the same on every driver.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FromCivil turns a stored date back into local midnight in loc.
func FromCivil(c time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := c.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
