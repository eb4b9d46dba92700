// Package clock holds the civil-time rules shared by the attendance engine:
// which zone "today" lives in, how persisted wall-clock values are read back,
// and where the next local midnight falls.
package clock

import (
	"fmt"
	"time"
)

const (
	DefaultTimezone = "Asia/Kolkata"

	// istOffset is used only when the default zone cannot be loaded from tzdata.
	istOffset = 5*time.Hour + 30*time.Minute
)

// Clock reports the current instant. Implementations return values already
// expressed in the configured zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// System returns a wall clock in loc.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c systemClock) Location() *time.Location { return c.loc }

type fixedClock struct {
	t time.Time
}

// Fixed always reports t. Intended for tests and one-off CLI runs with an
// explicit "now".
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

func (c fixedClock) Now() time.Time           { return c.t }
func (c fixedClock) Location() *time.Location { return c.t.Location() }

// LoadLocation resolves an IANA zone name. An empty name means the default
// zone. The fixed +05:30 fallback applies to the default zone only; any other
// unknown name is an error.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc, nil
	}
	if name == DefaultTimezone {
		return time.FixedZone("IST", int(istOffset.Seconds())), nil
	}
	return nil, fmt.Errorf("load timezone %q: %w", name, err)
}

// In converts an aware instant to loc.
func In(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// Localize reinterprets a naive wall-clock value (as read back from a
// timestamp-without-time-zone column) as a wall clock in loc. The instant is
// never treated as UTC.
func Localize(naive time.Time, loc *time.Location) time.Time {
	return time.Date(
		naive.Year(), naive.Month(), naive.Day(),
		naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(),
		loc,
	)
}

// LocalizePtr is Localize for nullable columns.
func LocalizePtr(naive *time.Time, loc *time.Location) *time.Time {
	if naive == nil {
		return nil
	}
	v := Localize(*naive, loc)
	return &v
}

// Naive drops the zone of t after converting it to loc, producing the
// wall-clock value that is persisted.
func Naive(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		time.UTC,
	)
}

// NaivePtr is Naive for nullable columns.
func NaivePtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := Naive(*t, loc)
	return &v
}

// DateOf returns 00:00 of the civil day containing t in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// NextMidnight returns the first 00:00 in loc strictly after now.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// UntilNextMidnight is the sleep needed from now to the next local midnight.
func UntilNextMidnight(now time.Time, loc *time.Location) time.Duration {
	return NextMidnight(now, loc).Sub(now)
}

// FormatDate renders a civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDate parses YYYY-MM-DD as a civil date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, loc)
}
