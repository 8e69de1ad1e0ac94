package report

import (
	"fmt"
	"strings"
	"time"

	"pendulum/internal/models"
)

// Render builds the plain-text session report: today's totals followed
// by the lap history, newest first.
func Render(stats models.DailyStats, history []models.Lap, now time.Time) string {
	var b strings.Builder

	b.WriteString("Pendulum - Session Report\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", now.Format("January 2, 2006 3:04 PM")))
	b.WriteString("=====================================\n\n")

	b.WriteString("TODAY'S TOTALS\n")
	b.WriteString("--------------\n")
	b.WriteString(fmt.Sprintf("Work Sessions: %d (goal %d)\n", stats.WorkSessions, stats.DailyGoal))
	b.WriteString(fmt.Sprintf("Break Sessions: %d\n", stats.BreakSessions))
	b.WriteString(fmt.Sprintf("Focus Time: %s\n", formatSpan(stats.TotalWorkSeconds)))
	b.WriteString(fmt.Sprintf("Break Time: %s\n", formatSpan(stats.TotalBreakSeconds)))
	b.WriteString(fmt.Sprintf("Goal Streak: %d\n", stats.StreakDays))
	b.WriteString("\n")

	b.WriteString("LAP HISTORY (newest first)\n")
	b.WriteString("--------------------------\n")
	if len(history) == 0 {
		b.WriteString("No laps recorded yet.\n")
		return b.String()
	}

	for i, lap := range history {
		b.WriteString(fmt.Sprintf(
			"%3d. %-5s %-8s %s\n",
			i+1,
			lap.Phase.Label(),
			formatSpan(lap.ElapsedSeconds),
			lap.RecordedAt.Format("3:04 PM"),
		))
	}

	return b.String()
}

func formatSpan(totalSeconds int) string {
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60

	if hours > 0 {
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if mins > 0 {
		if secs > 0 {
			return fmt.Sprintf("%dm %ds", mins, secs)
		}
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", secs)
}
