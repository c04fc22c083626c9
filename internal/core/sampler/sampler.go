// Package sampler draws random timestamps inside a distribution interval
package sampler

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"bulkdate/internal/core/daterange"
)

// FloorGrace is how far past a floor the upper bound reaches when the floor
// lies after the interval
const FloorGrace = 60 * time.Second

// Sampler draws timestamps; safe for concurrent use
type Sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
	loc *time.Location
}

// New builds a sampler over src in the site location
// a nil src seeds a PCG source from the clock
func New(src rand.Source, loc *time.Location) *Sampler {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>17|1)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Sampler{rnd: rand.New(src), loc: loc}
}

// Seeded is a deterministic sampler for tests and replays
func Seeded(seed uint64, loc *time.Location) *Sampler {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), loc)
}

// Bounds returns the effective [lo, hi] for a draw
// a floor raises lo; a floor after iv.To moves hi to floor plus FloorGrace
func Bounds(iv daterange.Interval, floor *time.Time) (lo, hi time.Time) {
	lo, hi = iv.From, iv.To
	if floor == nil {
		return lo, hi
	}
	if floor.After(lo) {
		lo = *floor
	}
	if floor.After(iv.To) {
		hi = floor.Add(FloorGrace)
	}
	return lo, hi
}

// Sample draws one instant, whole seconds, uniform over the effective bounds
//
// With a window the calendar day of the first draw is kept and the clock
// time is drawn again inside the window, so the result may leave [lo, hi] on
// the first or last day. A result before the floor is raised to the floor:
// a comment never precedes its post, and there the window gives way.
func (s *Sampler) Sample(iv daterange.Interval, floor *time.Time, win *daterange.Window) time.Time {
	lo, hi := Bounds(iv, floor)

	s.mu.Lock()
	defer s.mu.Unlock()

	at := time.Unix(s.between(lo.Unix(), hi.Unix()), 0).In(s.loc)
	if win == nil {
		return at
	}

	y, m, d := at.Date()
	off := s.between(int64(win.Start), int64(win.End))
	at = time.Date(y, m, d, 0, 0, int(off), 0, s.loc)

	if floor != nil && at.Before(*floor) {
		at = floor.In(s.loc)
	}
	return at
}

// between draws uniformly from [a, b]; callers hold mu
// the width is taken as uint64 so spans wider than MaxInt64 cannot overflow
func (s *Sampler) between(a, b int64) int64 {
	if b < a {
		a, b = b, a
	}
	width := uint64(b) - uint64(a)
	if width == math.MaxUint64 {
		return int64(s.rnd.Uint64())
	}
	return a + int64(s.rnd.Uint64N(width+1))
}
