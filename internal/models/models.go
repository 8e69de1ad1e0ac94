package models

import (
	"time"
)

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Label is the phase name as shown in the UI.
func (p Phase) Label() string {
	if p == PhaseBreak {
		return "Break"
	}
	return "Focus"
}

type Settings struct {
	WorkSeconds            int // Full duration of a work phase
	BreakSeconds           int // Full duration of a regular break
	LongBreakSeconds       int // Full duration of every Nth break
	SessionsUntilLongBreak int // Which work completions earn the long break
}

func DefaultSettings() Settings {
	return Settings{
		WorkSeconds:            25 * 60,
		BreakSeconds:           5 * 60,
		LongBreakSeconds:       15 * 60,
		SessionsUntilLongBreak: 4,
	}
}

// Normalized clamps every field to its minimum of 1.
func (s Settings) Normalized() Settings {
	if s.WorkSeconds < 1 {
		s.WorkSeconds = 1
	}
	if s.BreakSeconds < 1 {
		s.BreakSeconds = 1
	}
	if s.LongBreakSeconds < 1 {
		s.LongBreakSeconds = 1
	}
	if s.SessionsUntilLongBreak < 1 {
		s.SessionsUntilLongBreak = 1
	}
	return s
}

type TimerState struct {
	Phase            Phase
	RemainingSeconds int
	PhaseSeconds     int // Duration loaded when the phase was entered
	Running          bool
	LongBreak        bool // Current break uses the long duration
}

type Lap struct {
	ID             string
	Phase          Phase
	ElapsedSeconds int // Actual seconds spent, always > 0
	RecordedAt     time.Time
}

type DailyStats struct {
	WorkSessions      int
	BreakSessions     int
	TotalWorkSeconds  int
	TotalBreakSeconds int
	DailyGoal         int
	StreakDays        int
}

// Record folds a finished lap into the day's totals. A work lap that
// pushes WorkSessions across DailyGoal bumps the streak exactly once;
// further laps the same day leave it alone.
func (d *DailyStats) Record(lap Lap) {
	switch lap.Phase {
	case PhaseWork:
		before := d.WorkSessions
		d.WorkSessions++
		d.TotalWorkSeconds += lap.ElapsedSeconds
		if before < d.DailyGoal && d.WorkSessions >= d.DailyGoal {
			d.StreakDays++
		}
	case PhaseBreak:
		d.BreakSessions++
		d.TotalBreakSeconds += lap.ElapsedSeconds
	}
}
