package domain

import (
	"fmt"
	"math"
	"time"
)

// TimeLogEntry is one contiguous interval of tracked work. The entry is
// "open" while EndedAt is null; sealing it (end time + duration) happens
// exactly once, on stop.
type TimeLogEntry struct {
	ID              uint64
	UserID          uint64
	TaskID          uint64
	SubtaskID       *uint64
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationMinutes int
	Note            *string
	CreatedAt       time.Time
}

func (e TimeLogEntry) Open() bool {
	return e.EndedAt == nil
}

// TaskLevel reports whether the entry tracks the task itself rather than
// one of its subtasks.
func (e TimeLogEntry) TaskLevel() bool {
	return e.SubtaskID == nil
}

// StopResult describes the outcome of sealing an entry: its own duration
// plus how many open subtask entries were sealed alongside it.
type StopResult struct {
	DurationMinutes int
	CascadedCount   int
}

func (r StopResult) FormattedDuration() string {
	return FormatDuration(r.DurationMinutes)
}

type HoursSummary struct {
	TotalMinutes int
	SessionCount int
}

// DurationMinutes converts an interval to whole minutes, never negative.
func DurationMinutes(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// HoursFromMinutes converts a minute total to hours rounded to 2 decimals,
// the representation stored in Task.ActualHours.
func HoursFromMinutes(totalMinutes int) float64 {
	return math.Round(float64(totalMinutes)/60*100) / 100
}

// FormatDuration renders minutes as "3h 05m" or "45m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
