// Package srs schedules vocabulary reviews with increasing intervals.
//
// The engine is a pure function over a word's scheduling state: callers load
// the state from storage, apply Transition with the user's rating and the
// current time, and persist the result. The package itself knows nothing
// about storage, transport, or clocks.
package srs

import (
	"math"
	"time"
)

const (
	// InitialEase is the ease factor assigned to a freshly created word.
	InitialEase = 2.5
	// MinEase is the floor below which the ease factor never drops.
	MinEase = 1.3
)

// Interval growth factors per rating.
const (
	hardFactor = 1.2
	goodFactor = 2.5
	easyFactor = 3.0
)

// State is the scheduling state of a single word.
type State struct {
	// IntervalDays is the number of days until the next review after the
	// last one. Zero means the word has never been successfully reviewed.
	IntervalDays int
	// Ease is the multiplier controlling how fast intervals grow.
	Ease float64
	// Reps counts consecutive successful reviews; a lapse resets it.
	Reps int
}

// Result is the outcome of a single review.
type Result struct {
	State State
	DueAt time.Time
}

// InitialState returns the state for a word that has never been reviewed.
// The caller makes a new word immediately due by setting its due timestamp
// to the creation time.
func InitialState() State {
	return State{IntervalDays: 0, Ease: InitialEase, Reps: 0}
}

// Transition computes the next scheduling state for a word given the user's
// rating and the review time. It never mutates its input and is total:
// malformed stored state is normalized first instead of rejected.
//
// DueAt advances by calendar days, so a 3-day interval on Jan 30 lands on
// Feb 2 and a review near a DST change keeps the time of day of now.
func Transition(state State, rating Rating, now time.Time) Result {
	s := normalize(state)

	if rating == Again {
		// Full lapse: treat the word as freshly forgotten.
		s.Reps = 0
		s.IntervalDays = 1
		s.Ease = math.Max(MinEase, s.Ease-0.2)
		return Result{State: s, DueAt: now.AddDate(0, 0, s.IntervalDays)}
	}

	s.Reps++
	switch rating {
	case Hard:
		s.IntervalDays = grow(s.IntervalDays, hardFactor, 1)
		s.Ease = math.Max(MinEase, s.Ease-0.15)
	case Easy:
		s.IntervalDays = grow(s.IntervalDays, easyFactor, 2)
		// Reward has no ceiling, unlike the penalty floor.
		s.Ease += 0.15
	default: // Good
		s.IntervalDays = grow(s.IntervalDays, goodFactor, 1)
	}

	return Result{State: s, DueAt: now.AddDate(0, 0, s.IntervalDays)}
}

// grow scales an interval by factor, rounds to whole days, and clamps to the
// given minimum. A zero interval (never reviewed) starts at the minimum.
func grow(interval int, factor float64, min int) int {
	if interval == 0 {
		return min
	}
	next := int(math.Round(float64(interval) * factor))
	if next < min {
		return min
	}
	return next
}

// normalize coerces malformed stored state into the valid domain: intervals
// and reps become non-negative integers, a non-finite ease falls back to the
// initial value.
func normalize(s State) State {
	if s.IntervalDays < 0 {
		s.IntervalDays = 0
	}
	if s.Reps < 0 {
		s.Reps = 0
	}
	if math.IsNaN(s.Ease) || math.IsInf(s.Ease, 0) || s.Ease <= 0 {
		s.Ease = InitialEase
	}
	return s
}
