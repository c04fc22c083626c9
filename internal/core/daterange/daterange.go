// Package daterange turns operator range and time-of-day input into a
// validated distribution interval and an optional clock window.
//
// Malformed input never fails: the resolver substitutes a safe default
// and reports it as a Warning next to the result.
package daterange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	ptime "bulkdate/internal/platform/time"

	"github.com/araddon/dateparse"
)

// Fallback is the lookback used when no usable range is supplied
const Fallback = 3 * time.Hour

// DaySeconds is the last second of a day, 23:59:59
const DaySeconds = 86399

// Interval is an absolute [From, To] span; From never after To
type Interval struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t lies inside the interval, bounds included
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.From) && !t.After(iv.To)
}

// Window is a time-of-day span in seconds since local midnight
type Window struct {
	Start int `json:"start_seconds"`
	End   int `json:"end_seconds"`
}

// FullDay is the window used when no valid bounds are given
func FullDay() Window { return Window{Start: 0, End: DaySeconds} }

// Contains reports whether the local clock time of t lies inside w
func (w Window) Contains(t time.Time, loc *time.Location) bool {
	h, m, s := t.In(loc).Clock()
	sec := h*3600 + m*60 + s
	return sec >= w.Start && sec <= w.End
}

// WarningCode classifies a normalization the resolver applied
type WarningCode string

const (
	WarnNoRange       WarningCode = "range_missing"
	WarnRangeShape    WarningCode = "range_shape"
	WarnRangeToken    WarningCode = "range_token"
	WarnRangeBounds   WarningCode = "range_out_of_bounds"
	WarnSwapped       WarningCode = "range_swapped"
	WarnStartTime     WarningCode = "start_time_invalid"
	WarnEndTime       WarningCode = "end_time_invalid"
	WarnWindowSwapped WarningCode = "time_window_swapped"
)

// Warning records a substituted default
type Warning struct {
	Code    WarningCode `json:"code"`
	Input   string      `json:"input,omitempty"`
	Message string      `json:"message"`
}

// Input is the raw operator input, parsed once at the boundary
type Input struct {
	Distribute      int64
	Range           string
	EnableTimeRange bool
	StartTime       string
	EndTime         string
}

// Result is the resolved interval plus the time-of-day window
type Result struct {
	Interval      Interval  `json:"interval"`
	Window        Window    `json:"window"`
	UseCustomTime bool      `json:"use_custom_time"`
	Warnings      []Warning `json:"warnings,omitempty"`
}

// Resolver interprets date tokens in the site's location
type Resolver struct {
	loc *time.Location
}

// New returns a resolver for loc; nil means UTC
func New(loc *time.Location) Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return Resolver{loc: loc}
}

// Location returns the site location the resolver works in
func (r Resolver) Location() *time.Location { return r.loc }

// Resolve computes the interval and, when enabled, the clock window
func (r Resolver) Resolve(in Input, now time.Time) Result {
	iv, warns := r.Interval(in.Distribute, in.Range, now)
	res := Result{Interval: iv, Window: FullDay(), UseCustomTime: in.EnableTimeRange}
	if in.EnableTimeRange {
		w, ww := ParseWindow(in.StartTime, in.EndTime)
		res.Window = w
		warns = append(warns, ww...)
	}
	res.Warnings = warns
	return res
}

// Interval resolves a distribute offset or an "A - B" range string
// a non zero distribute is the lower bound with now as the upper bound
func (r Resolver) Interval(distribute int64, raw string, now time.Time) (Interval, []Warning) {
	now = now.In(r.loc)
	if distribute != 0 {
		if distribute < minUnix || distribute > maxUnix {
			return r.fallback(now, Warning{
				Code:    WarnRangeBounds,
				Input:   strconv.FormatInt(distribute, 10),
				Message: "distribute offset is outside years 0001-9999, using the last 3 hours",
			})
		}
		return r.ordered(time.Unix(distribute, 0).In(r.loc), now, false, false, nil)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r.fallback(now, Warning{Code: WarnNoRange, Message: "no range supplied, using the last 3 hours"})
	}

	toks := splitRange(raw)
	if len(toks) != 2 {
		return r.fallback(now, Warning{
			Code:    WarnRangeShape,
			Input:   raw,
			Message: "range must look like \"<from> - <to>\", using the last 3 hours",
		})
	}

	from, fromDay, err := r.ParseToken(toks[0], now)
	if err != nil {
		return r.fallback(now, tokenWarning(toks[0], err))
	}
	to, toDay, err := r.ParseToken(toks[1], now)
	if err != nil {
		return r.fallback(now, tokenWarning(toks[1], err))
	}
	return r.ordered(from, to, fromDay, toDay, nil)
}

// Instants outside the years a Y-m-d H:i:s date can hold
var (
	minUnix = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).Unix() + 14*3600
	maxUnix = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC).Unix() - 14*3600
)

func representable(t time.Time) bool {
	u := t.Unix()
	return u >= minUnix && u <= maxUnix
}

// ordered swaps inverted bounds and widens a date-only upper bound to 23:59:59
func (r Resolver) ordered(from, to time.Time, fromDay, toDay bool, warns []Warning) (Interval, []Warning) {
	if from.After(to) {
		from, to = to, from
		fromDay, toDay = toDay, fromDay
		warns = append(warns, Warning{Code: WarnSwapped, Message: "range bounds were inverted and have been swapped"})
	}
	if toDay {
		to = ptime.EndOfDay(to, r.loc)
	}
	return Interval{From: from, To: to}, warns
}

func (r Resolver) fallback(now time.Time, w Warning) (Interval, []Warning) {
	return Interval{From: now.Add(-Fallback), To: now}, []Warning{w}
}

func tokenWarning(tok string, err error) Warning {
	return Warning{
		Code:    WarnRangeToken,
		Input:   tok,
		Message: fmt.Sprintf("could not read %q (%v), using the last 3 hours", tok, err),
	}
}

// splitRange prefers the spaced separator so ISO dates keep their dashes
func splitRange(raw string) []string {
	var parts []string
	if strings.Contains(raw, " - ") {
		parts = strings.Split(raw, " - ")
	} else {
		parts = strings.Split(raw, "-")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var (
	relRe     = regexp.MustCompile(`^([+-]?\d+)\s*(seconds?|secs?|minutes?|mins?|hours?|days?|weeks?|fortnights?|months?|years?)(\s+ago)?$`)
	compactRe = regexp.MustCompile(`^(\d+)([hdw])$`)
)

// ParseToken reads one side of a range: a keyword, a relative offset from
// now, or an absolute date. dateOnly is true when the token names a day
// without a clock time.
func (r Resolver) ParseToken(tok string, now time.Time) (t time.Time, dateOnly bool, err error) {
	s := strings.ToLower(strings.TrimSpace(tok))
	if s == "" {
		return time.Time{}, false, fmt.Errorf("empty date")
	}
	now = now.In(r.loc)
	today := ptime.StartOfDay(now, r.loc)

	switch s {
	case "now":
		return now, false, nil
	case "today", "midnight":
		return today, true, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), true, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), true, nil
	}

	if m := relRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false, err
		}
		if m[3] != "" {
			n = -n
		}
		at, err := relative(now, n, m[2])
		return at, false, err
	}
	if m := compactRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false, err
		}
		at, err := relative(now, -n, m[2])
		return at, false, err
	}

	at, err := dateparse.ParseIn(strings.TrimSpace(tok), r.loc)
	if err != nil {
		return time.Time{}, false, err
	}
	at = at.In(r.loc)
	if !representable(at) {
		return time.Time{}, false, errOutOfRange
	}
	h, m, sec := at.Clock()
	midnight := h == 0 && m == 0 && sec == 0 && at.Nanosecond() == 0
	return at, midnight && !strings.Contains(tok, ":"), nil
}

var errOutOfRange = errors.New("date outside years 0001-9999")

// unitSeconds approximates each relative unit, enough to reject offsets past maxOffset
var unitSeconds = map[string]int64{
	"second": 1, "sec": 1,
	"minute": 60, "min": 60,
	"hour": 3600, "h": 3600,
	"day": 86400, "d": 86400,
	"week": 7 * 86400, "w": 7 * 86400,
	"fortnight": 14 * 86400,
	"month":     31 * 86400,
	"year":      366 * 86400,
}

// maxOffset is the widest relative shift accepted, ten thousand years
const maxOffset = 10_000 * 366 * 86400

// relative shifts now by n units after checking the result stays representable
func relative(now time.Time, n int, unit string) (time.Time, error) {
	limit := maxOffset / unitSeconds[strings.TrimSuffix(unit, "s")]
	if int64(n) > limit || int64(n) < -limit {
		return time.Time{}, errOutOfRange
	}
	at := shift(now, n, unit)
	if !representable(at) {
		return time.Time{}, errOutOfRange
	}
	return at, nil
}

// shift moves now by n units; compact units h d w are looked back
func shift(now time.Time, n int, unit string) time.Time {
	unit = strings.TrimSuffix(unit, "s")
	switch unit {
	case "second", "sec", "minute", "min", "hour", "h":
		// whole seconds, a Duration overflows past ~292 years
		return time.Unix(now.Unix()+int64(n)*unitSeconds[unit], int64(now.Nanosecond())).In(now.Location())
	case "day", "d":
		return now.AddDate(0, 0, n)
	case "week", "w":
		return now.AddDate(0, 0, 7*n)
	case "fortnight":
		return now.AddDate(0, 0, 14*n)
	case "month":
		return now.AddDate(0, n, 0)
	default:
		return now.AddDate(n, 0, 0)
	}
}

var clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseWindow reads HH:MM bounds; invalid start is 00:00 and invalid end is 23:59
// the end bound covers its whole minute, so 23:59 ends at 86399
func ParseWindow(start, end string) (Window, []Warning) {
	var warns []Warning
	startMin, ok := clockMinutes(start)
	if !ok {
		startMin = 0
		if strings.TrimSpace(start) != "" {
			warns = append(warns, Warning{Code: WarnStartTime, Input: start, Message: "start time must be HH:MM, using 00:00"})
		}
	}
	endMin, ok := clockMinutes(end)
	if !ok {
		endMin = 23*60 + 59
		if strings.TrimSpace(end) != "" {
			warns = append(warns, Warning{Code: WarnEndTime, Input: end, Message: "end time must be HH:MM, using 23:59"})
		}
	}
	if startMin > endMin {
		startMin, endMin = endMin, startMin
		warns = append(warns, Warning{Code: WarnWindowSwapped, Message: "start time was after end time and has been swapped"})
	}
	return Window{Start: startMin * 60, End: endMin*60 + 59}, warns
}

func clockMinutes(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, true
}
