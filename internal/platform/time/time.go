// Package time contains site clock and date text helpers
package time

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Layout is the stored form of every entity and history date
const Layout = "2006-01-02 15:04:05"

// Clock reports the current instant
type Clock interface {
	Now() time.Time
}

// System is the wall clock
type System struct{}

// Now returns time.Now
func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant; handy in tests
type Fixed time.Time

// Now returns the fixed instant
func (f Fixed) Now() time.Time { return time.Time(f) }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Site resolves the site's location from an IANA zone name or an hour offset
// a non empty tz wins; gmtOffset may be fractional (5.5 for +05:30)
func Site(tz string, gmtOffset float64) (*time.Location, error) {
	if tz = strings.TrimSpace(tz); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("site timezone %q: %w", tz, err)
		}
		return loc, nil
	}
	if gmtOffset == 0 {
		return time.UTC, nil
	}
	if gmtOffset < -14 || gmtOffset > 14 {
		return nil, fmt.Errorf("site gmt offset %v out of range", gmtOffset)
	}
	secs := int(math.Round(gmtOffset * 3600))
	return time.FixedZone(offsetName(secs), secs), nil
}

func offsetName(secs int) string {
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, secs/3600, (secs%3600)/60)
}

// Format renders t in loc using Layout
func Format(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// FormatGMT renders the UTC twin of t
func FormatGMT(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse reads a Layout string as wall time in loc
func Parse(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(Layout, strings.TrimSpace(s), loc)
}

// LocalToGMT converts a stored local date to its GMT twin
func LocalToGMT(local string, loc *time.Location) (string, error) {
	t, err := Parse(local, loc)
	if err != nil {
		return "", err
	}
	return FormatGMT(t), nil
}

// StartOfDay is local midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay is 23:59:59 of t's calendar day in loc
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}
