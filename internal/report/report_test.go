package report_test

import (
	"strings"
	"testing"
	"time"

	"pendulum/internal/models"
	"pendulum/internal/report"
)

var reportClock = time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC)

func TestRenderIncludesTotals(t *testing.T) {
	stats := models.DailyStats{
		WorkSessions:      2,
		BreakSessions:     1,
		TotalWorkSeconds:  3000,
		TotalBreakSeconds: 300,
		DailyGoal:         8,
		StreakDays:        1,
	}

	out := report.Render(stats, nil, reportClock)

	for _, want := range []string{
		"Pendulum - Session Report",
		"Generated: March 14, 2025 3:04 PM",
		"Work Sessions: 2 (goal 8)",
		"Break Sessions: 1",
		"Focus Time: 50m",
		"Break Time: 5m",
		"Goal Streak: 1",
		"No laps recorded yet.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderListsLapsNewestFirst(t *testing.T) {
	history := []models.Lap{
		{ID: "3", Phase: models.PhaseBreak, ElapsedSeconds: 45, RecordedAt: reportClock},
		{ID: "2", Phase: models.PhaseWork, ElapsedSeconds: 3900, RecordedAt: reportClock.Add(-time.Hour)},
		{ID: "1", Phase: models.PhaseWork, ElapsedSeconds: 1500, RecordedAt: reportClock.Add(-2 * time.Hour)},
	}

	out := report.Render(models.DailyStats{DailyGoal: 4}, history, reportClock)

	first := strings.Index(out, "Break 45s")
	second := strings.Index(out, "Focus 1h 5m")
	third := strings.Index(out, "Focus 25m")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("lap lines missing:\n%s", out)
	}
	if !(first < second && second < third) {
		t.Fatalf("laps out of order:\n%s", out)
	}
	if !strings.Contains(out, "3:04 PM") || !strings.Contains(out, "2:04 PM") {
		t.Fatalf("lap timestamps missing:\n%s", out)
	}
}
