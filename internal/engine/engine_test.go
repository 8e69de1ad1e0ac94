package engine_test

import (
	"testing"
	"time"

	"pendulum/internal/engine"
	"pendulum/internal/models"
)

var testClock = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type cueRecorder struct {
	starts    int
	workDone  int
	breakDone int
}

func (c *cueRecorder) SessionStarted() { c.starts++ }
func (c *cueRecorder) WorkCompleted()  { c.workDone++ }
func (c *cueRecorder) BreakCompleted() { c.breakDone++ }

func shortSettings() models.Settings {
	return models.Settings{WorkSeconds: 5, BreakSeconds: 3, LongBreakSeconds: 8, SessionsUntilLongBreak: 2}
}

func newEngine(rec *cueRecorder, goal int) *engine.Engine {
	return engine.New(shortSettings(), engine.Options{
		Notifier:  rec,
		DailyGoal: goal,
		Now:       func() time.Time { return testClock },
	})
}

func tickN(t *testing.T, eng *engine.Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		eng.Tick()
	}
}

// completePhase starts the engine and ticks it to the next boundary.
func completePhase(t *testing.T, eng *engine.Engine) {
	t.Helper()
	eng.Start()
	for i := 0; i < 100000; i++ {
		if eng.Tick() {
			return
		}
	}
	t.Fatal("phase never completed")
}

func TestNewStartsIdleInWorkPhase(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	state := eng.State()
	if state.Phase != models.PhaseWork {
		t.Fatalf("expected work phase, got %s", state.Phase)
	}
	if state.RemainingSeconds != 5 || state.PhaseSeconds != 5 {
		t.Fatalf("expected full work duration loaded, got %d/%d", state.RemainingSeconds, state.PhaseSeconds)
	}
	if state.Running {
		t.Fatal("engine must start idle")
	}
	if stats := eng.Stats(); stats.DailyGoal != 4 || stats.WorkSessions != 0 {
		t.Fatalf("unexpected initial stats: %+v", stats)
	}
	if len(eng.History()) != 0 {
		t.Fatal("expected empty history")
	}
}

func TestNewClampsGoalAndSettings(t *testing.T) {
	eng := engine.New(models.Settings{}, engine.Options{})
	if got := eng.Stats().DailyGoal; got != 1 {
		t.Fatalf("expected goal clamped to 1, got %d", got)
	}
	if got := eng.Settings(); got.WorkSeconds != 1 || got.SessionsUntilLongBreak != 1 {
		t.Fatalf("expected clamped settings, got %+v", got)
	}
}

func TestStartCueFiresOncePerTransition(t *testing.T) {
	rec := &cueRecorder{}
	eng := newEngine(rec, 4)

	eng.Start()
	eng.Start()
	if rec.starts != 1 {
		t.Fatalf("expected 1 start cue after double start, got %d", rec.starts)
	}

	eng.Pause()
	if rec.starts != 1 || rec.workDone != 0 || rec.breakDone != 0 {
		t.Fatalf("pause fired a cue: %+v", rec)
	}

	eng.Start()
	if rec.starts != 2 {
		t.Fatalf("expected 2 start cues after resume, got %d", rec.starts)
	}
}

func TestToggleFlipsRunning(t *testing.T) {
	rec := &cueRecorder{}
	eng := newEngine(rec, 4)

	eng.Toggle()
	if !eng.State().Running {
		t.Fatal("toggle did not start the engine")
	}
	eng.Toggle()
	if eng.State().Running {
		t.Fatal("toggle did not pause the engine")
	}
	eng.Toggle()
	if rec.starts != 2 {
		t.Fatalf("expected a start cue per toggle-to-running, got %d", rec.starts)
	}
}

func TestTickOnlyAdvancesWhileRunning(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	if eng.Tick() {
		t.Fatal("idle tick reported a completed phase")
	}
	if got := eng.State().RemainingSeconds; got != 5 {
		t.Fatalf("idle tick advanced the countdown: %d", got)
	}

	eng.Start()
	tickN(t, eng, 2)
	if got := eng.State().RemainingSeconds; got != 3 {
		t.Fatalf("expected 3 remaining, got %d", got)
	}

	eng.Pause()
	eng.Tick()
	if got := eng.State().RemainingSeconds; got != 3 {
		t.Fatalf("paused tick advanced the countdown: %d", got)
	}
}

func TestWorkExpiryRecordsLapAndEntersBreak(t *testing.T) {
	rec := &cueRecorder{}
	eng := newEngine(rec, 4)

	eng.Start()
	tickN(t, eng, 4)
	if eng.State().RemainingSeconds != 1 {
		t.Fatalf("expected 1 second left, got %d", eng.State().RemainingSeconds)
	}

	if !eng.Tick() {
		t.Fatal("final tick did not report completion")
	}

	state := eng.State()
	if state.Phase != models.PhaseBreak {
		t.Fatalf("expected break phase, got %s", state.Phase)
	}
	if state.RemainingSeconds != 3 || state.PhaseSeconds != 3 {
		t.Fatalf("expected short break loaded, got %d/%d", state.RemainingSeconds, state.PhaseSeconds)
	}
	if state.Running {
		t.Fatal("engine must stop at the phase boundary")
	}
	if state.LongBreak {
		t.Fatal("first break must be the short one")
	}

	laps := eng.History()
	if len(laps) != 1 {
		t.Fatalf("expected 1 lap, got %d", len(laps))
	}
	if laps[0].Phase != models.PhaseWork || laps[0].ElapsedSeconds != 5 {
		t.Fatalf("unexpected lap: %+v", laps[0])
	}
	if laps[0].ID == "" {
		t.Fatal("lap is missing its id")
	}
	if !laps[0].RecordedAt.Equal(testClock) {
		t.Fatalf("lap timestamp = %v, want %v", laps[0].RecordedAt, testClock)
	}

	stats := eng.Stats()
	if stats.WorkSessions != 1 || stats.TotalWorkSeconds != 5 {
		t.Fatalf("unexpected stats after work lap: %+v", stats)
	}
	if rec.workDone != 1 || rec.breakDone != 0 {
		t.Fatalf("unexpected cues: %+v", rec)
	}

	// Stopped at the boundary: a further tick is a no-op.
	if eng.Tick() {
		t.Fatal("tick after boundary reported completion")
	}
	if eng.State().RemainingSeconds != 3 {
		t.Fatal("tick after boundary advanced the countdown")
	}
}

func TestBreakExpiryReturnsToWork(t *testing.T) {
	rec := &cueRecorder{}
	eng := newEngine(rec, 4)

	completePhase(t, eng) // work
	completePhase(t, eng) // break

	state := eng.State()
	if state.Phase != models.PhaseWork || state.RemainingSeconds != 5 {
		t.Fatalf("expected fresh work phase, got %+v", state)
	}
	if rec.breakDone != 1 {
		t.Fatalf("expected 1 break cue, got %d", rec.breakDone)
	}

	stats := eng.Stats()
	if stats.BreakSessions != 1 || stats.TotalBreakSeconds != 3 {
		t.Fatalf("unexpected stats after break lap: %+v", stats)
	}
}

func TestLongBreakCadence(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	var kinds []bool
	for i := 0; i < 4; i++ {
		completePhase(t, eng) // work
		kinds = append(kinds, eng.State().LongBreak)
		completePhase(t, eng) // break
	}

	// Every 2nd completed work session earns the long break.
	want := []bool{false, true, false, true}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("break %d long=%v, want %v", i+1, kinds[i], want[i])
		}
	}
}

func TestLongBreakLoadsLongDuration(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	completePhase(t, eng) // work 1
	completePhase(t, eng) // break
	completePhase(t, eng) // work 2

	state := eng.State()
	if !state.LongBreak {
		t.Fatal("expected the long break after the second work session")
	}
	if state.RemainingSeconds != 8 || state.PhaseSeconds != 8 {
		t.Fatalf("expected long break duration, got %d/%d", state.RemainingSeconds, state.PhaseSeconds)
	}
}

func TestSetPhaseToCurrentIsNoop(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	eng.Start()
	tickN(t, eng, 2)
	eng.SetPhase(models.PhaseWork)

	state := eng.State()
	if state.RemainingSeconds != 3 || !state.Running {
		t.Fatalf("same-phase switch disturbed the countdown: %+v", state)
	}
	if len(eng.History()) != 0 {
		t.Fatal("same-phase switch recorded a lap")
	}
}

func TestSetPhaseRecordsPartialLap(t *testing.T) {
	rec := &cueRecorder{}
	eng := newEngine(rec, 4)

	eng.Start()
	tickN(t, eng, 2)
	eng.SetPhase(models.PhaseBreak)

	laps := eng.History()
	if len(laps) != 1 || laps[0].Phase != models.PhaseWork || laps[0].ElapsedSeconds != 2 {
		t.Fatalf("unexpected laps: %+v", laps)
	}

	stats := eng.Stats()
	if stats.WorkSessions != 1 || stats.TotalWorkSeconds != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	state := eng.State()
	if state.Phase != models.PhaseBreak || state.RemainingSeconds != 3 || state.Running {
		t.Fatalf("unexpected state after manual switch: %+v", state)
	}

	// Manual switches never fire completion cues.
	if rec.workDone != 0 || rec.breakDone != 0 {
		t.Fatalf("manual switch fired a completion cue: %+v", rec)
	}
}

func TestSetPhaseWithNoElapsedLeavesNoTrace(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	eng.SetPhase(models.PhaseBreak)
	eng.SetPhase(models.PhaseWork)

	if len(eng.History()) != 0 {
		t.Fatalf("zero-elapsed switches recorded laps: %+v", eng.History())
	}
	if stats := eng.Stats(); stats.WorkSessions != 0 || stats.BreakSessions != 0 {
		t.Fatalf("zero-elapsed switches touched stats: %+v", stats)
	}
	if state := eng.State(); state.Phase != models.PhaseWork || state.RemainingSeconds != 5 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestResetReloadsCurrentPhase(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	eng.Start()
	tickN(t, eng, 3)
	eng.Reset()

	state := eng.State()
	if state.RemainingSeconds != 5 || state.PhaseSeconds != 5 || state.Running {
		t.Fatalf("unexpected state after reset: %+v", state)
	}
	if len(eng.History()) != 0 {
		t.Fatal("reset recorded a lap")
	}

	// Idempotent.
	eng.Reset()
	if got := eng.State().RemainingSeconds; got != 5 {
		t.Fatalf("second reset changed the countdown: %d", got)
	}
}

func TestResetKeepsLongBreak(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	completePhase(t, eng) // work 1
	completePhase(t, eng) // break
	completePhase(t, eng) // work 2 -> long break

	eng.Start()
	tickN(t, eng, 3)
	eng.Reset()

	state := eng.State()
	if !state.LongBreak {
		t.Fatal("reset dropped the long break")
	}
	if state.RemainingSeconds != 8 {
		t.Fatalf("expected long duration reloaded, got %d", state.RemainingSeconds)
	}
}

func TestUpdateSettingsClampsAndReloadsWhenIdle(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	eng.UpdateSettings(models.Settings{WorkSeconds: -1, BreakSeconds: 0, LongBreakSeconds: 0, SessionsUntilLongBreak: 0})
	if got := eng.Settings(); got != (models.Settings{WorkSeconds: 1, BreakSeconds: 1, LongBreakSeconds: 1, SessionsUntilLongBreak: 1}) {
		t.Fatalf("settings not clamped: %+v", got)
	}
	if state := eng.State(); state.RemainingSeconds != 1 || state.PhaseSeconds != 1 {
		t.Fatalf("idle update did not reload the phase: %+v", state)
	}

	eng.UpdateSettings(models.Settings{WorkSeconds: 90, BreakSeconds: 3, LongBreakSeconds: 8, SessionsUntilLongBreak: 2})
	if got := eng.State().RemainingSeconds; got != 90 {
		t.Fatalf("expected 90 remaining after idle update, got %d", got)
	}
}

func TestUpdateSettingsLeavesRunningCountdownAlone(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	eng.Start()
	tickN(t, eng, 2)
	bigger := models.Settings{WorkSeconds: 100, BreakSeconds: 3, LongBreakSeconds: 8, SessionsUntilLongBreak: 2}
	eng.UpdateSettings(bigger)

	state := eng.State()
	if state.RemainingSeconds != 3 || state.PhaseSeconds != 5 {
		t.Fatalf("running countdown disturbed: %+v", state)
	}
	if got := eng.Settings().WorkSeconds; got != 100 {
		t.Fatalf("settings not stored: %d", got)
	}

	eng.Pause()
	eng.UpdateSettings(bigger)
	if got := eng.State().RemainingSeconds; got != 100 {
		t.Fatalf("idle update after pause did not reload: %d", got)
	}
}

func TestSetDailyGoalIsForwardLooking(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 2)

	completePhase(t, eng) // work 1
	completePhase(t, eng) // break
	completePhase(t, eng) // work 2 crosses the goal

	if got := eng.Stats().StreakDays; got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}

	eng.SetDailyGoal(0)
	stats := eng.Stats()
	if stats.DailyGoal != 1 {
		t.Fatalf("expected goal clamped to 1, got %d", stats.DailyGoal)
	}
	if stats.StreakDays != 1 {
		t.Fatalf("goal change re-evaluated the streak: %d", stats.StreakDays)
	}
}

func TestHistoryNewestFirstAndDetached(t *testing.T) {
	eng := newEngine(&cueRecorder{}, 4)

	eng.Start()
	tickN(t, eng, 2)
	eng.SetPhase(models.PhaseBreak)
	eng.Start()
	tickN(t, eng, 1)
	eng.SetPhase(models.PhaseWork)

	laps := eng.History()
	if len(laps) != 2 {
		t.Fatalf("expected 2 laps, got %d", len(laps))
	}
	if laps[0].Phase != models.PhaseBreak || laps[1].Phase != models.PhaseWork {
		t.Fatalf("history not newest-first: %+v", laps)
	}

	laps[0].ElapsedSeconds = 999
	if eng.History()[0].ElapsedSeconds == 999 {
		t.Fatal("History returned the engine's own slice")
	}
}

func TestFullWorkCycleWithDefaultDurations(t *testing.T) {
	eng := engine.New(models.Settings{
		WorkSeconds:            1500,
		BreakSeconds:           300,
		LongBreakSeconds:       900,
		SessionsUntilLongBreak: 4,
	}, engine.Options{DailyGoal: 8, Now: func() time.Time { return testClock }})

	eng.Start()
	tickN(t, eng, 1499)
	if got := eng.State().RemainingSeconds; got != 1 {
		t.Fatalf("expected 1 second left, got %d", got)
	}
	if !eng.Tick() {
		t.Fatal("expected completion on the 1500th tick")
	}

	state := eng.State()
	if state.Phase != models.PhaseBreak || state.RemainingSeconds != 300 || state.Running {
		t.Fatalf("unexpected state: %+v", state)
	}

	laps := eng.History()
	if len(laps) != 1 || laps[0].ElapsedSeconds != 1500 {
		t.Fatalf("unexpected laps: %+v", laps)
	}
	if stats := eng.Stats(); stats.WorkSessions != 1 || stats.TotalWorkSeconds != 1500 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
