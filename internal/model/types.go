// Package model defines shared data structures.
package model

import "time"

// DefaultWarmupSeconds is the get-ready period used when none is configured.
const DefaultWarmupSeconds = 5

// Workout defines an interval workout plan.
type Workout struct {
	WarmupSeconds int
	RoundSeconds  int
	RestSeconds   int
	Rounds        int
}

// TotalSeconds returns the countdown length of the whole workout.
// Rest only happens between rounds, so there is no trailing rest.
func (w Workout) TotalSeconds() int {
	if w.Rounds <= 0 {
		return w.WarmupSeconds
	}
	return w.WarmupSeconds + w.Rounds*w.RoundSeconds + (w.Rounds-1)*w.RestSeconds
}

// SessionRecord captures one workout session for history.
type SessionRecord struct {
	ID              int64
	UUID            string
	StartedAt       time.Time
	EndedAt         time.Time
	Workout         Workout
	RoundsCompleted int
	Completed       bool
	Skips           int
	CountedSeconds  int
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Since         *time.Time
	Last          int
	CompletedOnly bool
}

// HistorySummary aggregates sessions for reporting.
type HistorySummary struct {
	Sessions       int
	Completed      int
	Rounds         int
	CountedSeconds int
	LongestSeconds int
}
