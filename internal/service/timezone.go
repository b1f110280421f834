package service

import (
	"fmt"
	"time"

	pkgerrors "github.com/aubrey-sherman/baby-bootcamp-be/pkg/errors"
)

// TimezoneConverter converts between a user's local wall-clock time and
// stored UTC instants. All methods are pure and DST-correct; the zero
// value is ready to use and safe for concurrent callers.
//
// Day arithmetic never divides raw durations by 24h: local calendar days
// are compared as civil dates so a DST transition inside a range cannot
// shift a day count.
type TimezoneConverter struct{}

// LoadZone resolves an IANA zone identifier. An empty name is a bad
// request (the timezone header is required); an unrecognized name is a
// configuration error.
func (TimezoneConverter) LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, pkgerrors.BadRequest("timezone is required")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindConfiguration, fmt.Sprintf("unrecognized timezone %q", name), err)
	}
	return loc, nil
}

// ToUTC resolves a client-supplied date string to a UTC instant. An
// RFC 3339 timestamp carries its own offset and is normalized; a bare
// YYYY-MM-DD is read as midnight of that calendar day in loc, so a
// west-of-UTC caller's date never slips onto the previous local day.
func (TimezoneConverter) ToUTC(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, pkgerrors.BadRequest(fmt.Sprintf("invalid date %q", s))
	}
	return t.UTC(), nil
}

// DayStart returns the instant at which t's local calendar day begins.
func (TimezoneConverter) DayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).UTC()
}

// WeekRange returns the half-open [start, end) UTC window of the 7-day
// local week containing anchor. Weeks start on Monday.
func (TimezoneConverter) WeekRange(anchor time.Time, loc *time.Location) (time.Time, time.Time) {
	local := anchor.In(loc)
	// days since Monday
	offset := (int(local.Weekday()) + 6) % 7
	y, m, d := local.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d-offset+7, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}

// CombineDayAndClock keeps day's local calendar day and replaces its
// time-of-day with clock's local time-of-day.
func (TimezoneConverter) CombineDayAndClock(day, clock time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	hh, mm, ss := clock.In(loc).Clock()
	return time.Date(y, m, d, hh, mm, ss, 0, loc).UTC()
}

// AddDays advances t by whole local calendar days, preserving its local
// time-of-day across DST transitions.
func (TimezoneConverter) AddDays(t time.Time, days int, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	hh, mm, ss := local.Clock()
	return time.Date(y, m, d+days, hh, mm, ss, 0, loc).UTC()
}

// LocalNoon returns 12:00 local time on t's local calendar day.
func (TimezoneConverter) LocalNoon(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, loc).UTC()
}

// SameLocalDay reports whether two instants fall on the same local
// calendar day.
func (TimezoneConverter) SameLocalDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// CivilDay returns t's local calendar day as a date-only value (UTC
// midnight), the representation persisted in feeding_day.
func (TimezoneConverter) CivilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole local calendar days from start to end, both
// floored to local midnight first, so instants on the same local day
// yield 0 regardless of time of day. Negative when end precedes start.
func (c TimezoneConverter) DaysBetween(start, end time.Time, loc *time.Location) int {
	s := c.CivilDay(start, loc)
	e := c.CivilDay(end, loc)
	return int(e.Sub(s) / (24 * time.Hour))
}
