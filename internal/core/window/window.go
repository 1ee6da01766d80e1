// Package window models business time-of-day slots and converts them
// between the business region's clock and the log-writing host's clock
package window

import (
	"fmt"
	"time"

	perr "slotwatch/internal/platform/errors"
)

// TimeOfDay is a civil time within one calendar day, second resolution
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var td TimeOfDay
	switch {
	case len(s) == 5:
		if _, err := fmt.Sscanf(s, "%2d:%2d", &td.Hour, &td.Minute); err != nil {
			return TimeOfDay{}, perr.Configf("bad time of day %q", s)
		}
	case len(s) == 8:
		if _, err := fmt.Sscanf(s, "%2d:%2d:%2d", &td.Hour, &td.Minute, &td.Second); err != nil {
			return TimeOfDay{}, perr.Configf("bad time of day %q", s)
		}
	default:
		return TimeOfDay{}, perr.Configf("bad time of day %q", s)
	}
	if td.Hour > 23 || td.Minute > 59 || td.Second > 59 || td.Hour < 0 || td.Minute < 0 || td.Second < 0 {
		return TimeOfDay{}, perr.Configf("time of day out of range %q", s)
	}
	return td, nil
}

// String renders HH:MM:SS
func (td TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", td.Hour, td.Minute, td.Second)
}

// seconds since midnight, for ordering
func (td TimeOfDay) seconds() int { return td.Hour*3600 + td.Minute*60 + td.Second }

// Date is a calendar date with no clock attached
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date of t
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate accepts "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad date %q", s)
	}
	return DateOf(t), nil
}

// String renders YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Window is an inclusive (start, end) pair of times of day scoped to one
// calendar date. A window never crosses midnight
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Validate reports an inverted window as a configuration error
func (w Window) Validate() error {
	if w.Start.seconds() > w.End.seconds() {
		return perr.Configf("window start %s after end %s", w.Start, w.End)
	}
	return nil
}

// Resolved is a window re-expressed as a pair of wall-clock instants on a
// single clock (usually the host's). The instants are naive: they carry the
// clock's reading in the UTC frame with no offset applied, so they compare
// directly against instants produced by stamp.Extract
type Resolved struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the resolved window, both ends
// inclusive
func (r Resolved) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// naive strips the location from a zoned instant, keeping its wall-clock
// components
func naive(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// loadZone resolves an IANA zone id; an unknown id is a configuration
// error, distinct from any parsing or classification failure
func loadZone(id string) (*time.Location, error) {
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "unknown timezone %q", id)
	}
	return loc, nil
}

// Resolve converts w, read as fromTZ local time on date d, into the
// equivalent wall-clock range on the toTZ clock. Each zone's own
// daylight-saving rule governs its side of the conversion, so the two sides
// may shift by different amounts (southern and northern hemisphere DST
// calendars do not align). The target-side date falls out of the converted
// instants; when the offset shift crosses midnight the resolved range simply
// lands on the neighbouring date
func Resolve(d Date, fromTZ, toTZ string, w Window) (Resolved, error) {
	if err := w.Validate(); err != nil {
		return Resolved{}, err
	}
	from, err := loadZone(fromTZ)
	if err != nil {
		return Resolved{}, err
	}
	to, err := loadZone(toTZ)
	if err != nil {
		return Resolved{}, err
	}
	start := time.Date(d.Year, d.Month, d.Day, w.Start.Hour, w.Start.Minute, w.Start.Second, 0, from)
	end := time.Date(d.Year, d.Month, d.Day, w.End.Hour, w.End.Minute, w.End.Second, 0, from)
	return Resolved{Start: naive(start.In(to)), End: naive(end.In(to))}, nil
}

// Invert re-reads a resolved range's wall times on the fromTZ clock and maps
// them onto the toTZ clock. Applying it to Resolve's output with the zone
// arguments swapped round-trips the original window
func Invert(r Resolved, fromTZ, toTZ string) (Resolved, error) {
	from, err := loadZone(fromTZ)
	if err != nil {
		return Resolved{}, err
	}
	to, err := loadZone(toTZ)
	if err != nil {
		return Resolved{}, err
	}
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(),
		r.Start.Hour(), r.Start.Minute(), r.Start.Second(), 0, from)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(),
		r.End.Hour(), r.End.Minute(), r.End.Second(), 0, from)
	return Resolved{Start: naive(start.In(to)), End: naive(end.In(to))}, nil
}
