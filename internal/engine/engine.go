package engine

import (
	"time"

	"github.com/google/uuid"

	"pendulum/internal/models"
	"pendulum/internal/notify"
)

// Options carries the engine's collaborators. Zero values fall back to a
// silent notifier, a goal of 1 and the wall clock.
type Options struct {
	Notifier  notify.Notifier
	DailyGoal int
	Now       func() time.Time
}

// Engine owns the timer's runtime state: the countdown, a settings copy,
// the day's stats and the lap history. It is single-threaded; the UI
// event loop serializes all calls, and a tick that crosses a phase
// boundary decrements, records and switches in one step.
type Engine struct {
	settings  models.Settings
	phase     models.Phase
	remaining int
	length    int // Duration loaded when the phase was entered
	running   bool
	longBreak bool

	stats   models.DailyStats
	history []models.Lap

	notifier notify.Notifier
	now      func() time.Time
}

func New(settings models.Settings, opts Options) *Engine {
	settings = settings.Normalized()

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.New(false)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	goal := opts.DailyGoal
	if goal < 1 {
		goal = 1
	}

	return &Engine{
		settings:  settings,
		phase:     models.PhaseWork,
		remaining: settings.WorkSeconds,
		length:    settings.WorkSeconds,
		stats:     models.DailyStats{DailyGoal: goal},
		notifier:  notifier,
		now:       now,
	}
}

// Start begins or resumes the countdown. The start cue fires only on the
// actual not-running to running transition.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.notifier.SessionStarted()
}

func (e *Engine) Pause() {
	e.running = false
}

func (e *Engine) Toggle() {
	if e.running {
		e.Pause()
	} else {
		e.Start()
	}
}

// Tick advances the countdown by one second and reports whether this tick
// finished the phase. On expiry the completion cue fires and the next
// phase is entered within the same call; the engine stops at every phase
// boundary rather than auto-continuing.
func (e *Engine) Tick() bool {
	if !e.running || e.remaining <= 0 {
		return false
	}

	e.remaining--
	if e.remaining > 0 {
		return false
	}

	if e.phase == models.PhaseWork {
		e.notifier.WorkCompleted()
		e.switchTo(models.PhaseBreak)
	} else {
		e.notifier.BreakCompleted()
		e.switchTo(models.PhaseWork)
	}
	return true
}

// Reset stops the countdown and reloads the full duration of the current
// phase. No lap is recorded and the phase is kept, long breaks included.
func (e *Engine) Reset() {
	e.running = false
	e.length = e.phaseDuration(e.phase, e.longBreak)
	e.remaining = e.length
}

// SetPhase switches to the target phase by hand. The current phase's
// partial time is recorded exactly as on natural expiry, but completion
// cues stay tied to expiry. Switching to the current phase is a no-op.
func (e *Engine) SetPhase(target models.Phase) {
	if target == e.phase {
		return
	}
	e.switchTo(target)
}

// UpdateSettings swaps in clamped settings. A running countdown keeps the
// duration it was entered with; otherwise the current phase is reloaded
// from the new values.
func (e *Engine) UpdateSettings(s models.Settings) {
	e.settings = s.Normalized()
	if !e.running {
		e.length = e.phaseDuration(e.phase, e.longBreak)
		e.remaining = e.length
	}
}

// SetDailyGoal changes the goal going forward; past streak crossings are
// never re-evaluated.
func (e *Engine) SetDailyGoal(goal int) {
	if goal < 1 {
		goal = 1
	}
	e.stats.DailyGoal = goal
}

func (e *Engine) SetNotifier(n notify.Notifier) {
	if n == nil {
		n = notify.New(false)
	}
	e.notifier = n
}

func (e *Engine) State() models.TimerState {
	return models.TimerState{
		Phase:            e.phase,
		RemainingSeconds: e.remaining,
		PhaseSeconds:     e.length,
		Running:          e.running,
		LongBreak:        e.longBreak,
	}
}

func (e *Engine) Stats() models.DailyStats {
	return e.stats
}

func (e *Engine) Settings() models.Settings {
	return e.settings
}

// History returns the recorded laps, newest first.
func (e *Engine) History() []models.Lap {
	laps := make([]models.Lap, len(e.history))
	copy(laps, e.history)
	return laps
}

// switchTo records the lap for the phase being left, folds it into the
// stats and enters target with its full duration. Zero elapsed time
// leaves no trace in history or stats.
func (e *Engine) switchTo(target models.Phase) {
	elapsed := e.length - e.remaining
	if elapsed > 0 {
		lap := models.Lap{
			ID:             uuid.New().String(),
			Phase:          e.phase,
			ElapsedSeconds: elapsed,
			RecordedAt:     e.now(),
		}
		e.history = append([]models.Lap{lap}, e.history...)
		e.stats.Record(lap)
	}

	e.phase = target
	e.longBreak = target == models.PhaseBreak && e.dueLongBreak()
	e.length = e.phaseDuration(target, e.longBreak)
	e.remaining = e.length
	e.running = false
}

// dueLongBreak checks the cadence against the work count after the fold
// of the lap that triggered the switch.
func (e *Engine) dueLongBreak() bool {
	n := e.settings.SessionsUntilLongBreak
	return e.stats.WorkSessions > 0 && e.stats.WorkSessions%n == 0
}

func (e *Engine) phaseDuration(phase models.Phase, long bool) int {
	if phase == models.PhaseWork {
		return e.settings.WorkSeconds
	}
	if long {
		return e.settings.LongBreakSeconds
	}
	return e.settings.BreakSeconds
}
