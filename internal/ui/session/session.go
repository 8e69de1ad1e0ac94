package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pendulum/internal/config"
	"pendulum/internal/engine"
	"pendulum/internal/models"
	"pendulum/internal/notify"
	"pendulum/internal/report"
	"pendulum/internal/ui/help"
)

// tickMsg carries a tag so ticks from an abandoned chain can be
// dropped instead of double-driving the countdown.
type tickMsg struct {
	tag int
}

type exportResultMsg struct {
	success bool
	message string
}
type clearStatusMsg struct{}

type ViewState int

const (
	SessionView ViewState = iota
	HelpView
)

type Model struct {
	engine *engine.Engine
	cfg    config.Config
	logger *slog.Logger

	viewState ViewState
	width     int
	height    int

	timerProgress progress.Model
	tickTag       int

	// Sub-models
	helpModel help.Model

	showHistory bool
	soundOn     bool

	// Transient feedback line shown above the key help
	statusMessage string
	showStatus    bool

	shouldQuit   bool
	openSettings bool
}

func New(eng *engine.Engine, cfg config.Config, logger *slog.Logger) Model {
	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 40

	return Model{
		engine:        eng,
		cfg:           cfg,
		logger:        logger,
		viewState:     SessionView,
		timerProgress: prog,
		helpModel:     help.New(),
		soundOn:       cfg.Sound,
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	// Resume the tick chain if the countdown was left running
	if m.engine.State().Running {
		cmds = append(cmds, tickCmd(m.tickTag))
	}

	// Start progress bar animation
	cmds = append(cmds, m.timerProgress.Init())

	return tea.Batch(cmds...)
}

func tickCmd(tag int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{tag: tag}
	})
}

func (m Model) exportReport() tea.Cmd {
	// Snapshot outside the closure; the command runs on another goroutine
	stats := m.engine.Stats()
	history := m.engine.History()

	return func() tea.Msg {
		content := report.Render(stats, history, time.Now())

		homeDir, err := os.UserHomeDir()
		if err != nil {
			return exportResultMsg{success: false, message: fmt.Sprintf("Failed to get home directory: %v", err)}
		}

		timestamp := time.Now().Format("2006-01-02-150405")
		filename := fmt.Sprintf("pendulum-report-%s.txt", timestamp)
		filePath := filepath.Join(homeDir, "Downloads", filename)

		err = os.WriteFile(filePath, []byte(content), 0644)
		if err != nil {
			// Try alternative location if Downloads doesn't exist
			filePath = filepath.Join(homeDir, filename)
			err = os.WriteFile(filePath, []byte(content), 0644)
			if err != nil {
				return exportResultMsg{success: false, message: fmt.Sprintf("Failed to save file: %v", err)}
			}
		}

		return exportResultMsg{success: true, message: fmt.Sprintf("[OK] Exported to %s", filePath)}
	}
}

func (m Model) clearStatusAfterDelay() tea.Cmd {
	return tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timerProgress.Width = min(msg.Width-20, 60)
		if m.viewState == HelpView {
			helpModel, _ := m.helpModel.Update(msg)
			m.helpModel = helpModel.(help.Model)
		}
		return m, nil

	case tea.KeyMsg:
		// Handle help view specially
		if m.viewState == HelpView {
			helpModel, _ := m.helpModel.Update(msg)
			m.helpModel = helpModel.(help.Model)
			if m.helpModel.ShouldQuit() {
				m.viewState = SessionView
			}
			// Don't process other keys when in help view, but don't break tick chain
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.shouldQuit = true
			return m, tea.Quit

		case key.Matches(msg, keys.Help):
			m.viewState = HelpView
			// Ensure help model gets window size
			if m.width > 0 && m.height > 0 {
				sizeMsg := tea.WindowSizeMsg{Width: m.width, Height: m.height}
				helpModel, _ := m.helpModel.Update(sizeMsg)
				m.helpModel = helpModel.(help.Model)
			}
			return m, nil

		case key.Matches(msg, keys.Settings):
			m.openSettings = true
			return m, tea.Quit

		case key.Matches(msg, keys.Start) && !m.engine.State().Running:
			m.engine.Start()
			m.tickTag++
			return m, tickCmd(m.tickTag)

		case key.Matches(msg, keys.Pause) && m.engine.State().Running:
			m.engine.Pause()
			return m, nil

		case key.Matches(msg, keys.Reset):
			m.engine.Reset()
			return m, nil

		case key.Matches(msg, keys.Work):
			m.engine.SetPhase(models.PhaseWork)
			return m, nil

		case key.Matches(msg, keys.Break):
			m.engine.SetPhase(models.PhaseBreak)
			return m, nil

		case key.Matches(msg, keys.History):
			m.showHistory = !m.showHistory
			return m, nil

		case key.Matches(msg, keys.Sound):
			return m.toggleSound()

		case key.Matches(msg, keys.Export):
			return m, m.exportReport()
		}

	case tickMsg:
		// Ignore ticks from a chain that was replaced by a later start
		if msg.tag != m.tickTag {
			return m, nil
		}

		state := m.engine.State()
		if !state.Running {
			// Paused, reset, or switched away; let this chain die
			return m, nil
		}

		finished := state.Phase
		if m.engine.Tick() {
			m.statusMessage = m.completionMessage(finished)
			m.showStatus = true
			m.logger.Info("phase complete",
				"phase", string(finished),
				"work_sessions", m.engine.Stats().WorkSessions,
				"long_break", m.engine.State().LongBreak)
			return m, m.clearStatusAfterDelay()
		}

		return m, tickCmd(m.tickTag)

	case progress.FrameMsg:
		progressModel, cmd := m.timerProgress.Update(msg)
		m.timerProgress = progressModel.(progress.Model)
		// Don't break the chain - the tick and progress should work independently
		return m, cmd

	case exportResultMsg:
		m.statusMessage = msg.message
		m.showStatus = true
		m.logger.Info("report export", "success", msg.success, "message", msg.message)
		return m, m.clearStatusAfterDelay()

	case clearStatusMsg:
		m.showStatus = false
		m.statusMessage = ""
		return m, nil
	}

	return m, nil
}

func (m Model) toggleSound() (tea.Model, tea.Cmd) {
	m.soundOn = !m.soundOn
	m.engine.SetNotifier(notify.New(m.soundOn))

	m.cfg.Sound = m.soundOn
	if err := config.Save(m.cfg); err != nil {
		m.logger.Warn("persist sound preference", "error", err)
	}

	if m.soundOn {
		m.statusMessage = "🔔 Sound on"
	} else {
		m.statusMessage = "🔕 Sound off"
	}
	m.showStatus = true
	return m, m.clearStatusAfterDelay()
}

func (m Model) completionMessage(finished models.Phase) string {
	stats := m.engine.Stats()

	if finished == models.PhaseWork {
		if stats.WorkSessions >= stats.DailyGoal {
			return fmt.Sprintf("*** DAILY GOAL ACHIEVED! You completed %d/%d focus sessions! ***",
				stats.WorkSessions, stats.DailyGoal)
		}
		if m.engine.State().LongBreak {
			return "*** Focus session complete! You earned the long break! ***"
		}
		return "*** Focus session complete! Time for a break! ***"
	}

	return "*** Break over. Ready to focus! ***"
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.viewState == HelpView {
		return m.helpModel.View()
	}

	return m.renderSessionView()
}

func (m Model) renderSessionView() string {
	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(4)

	sections := []string{
		m.renderTimer(),
		m.renderToday(),
	}
	if m.showHistory {
		sections = append(sections, m.renderHistory())
	}
	sections = append(sections, m.renderHelp())

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m Model) renderTimer() string {
	timerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(2, 4).
		Align(lipgloss.Center).
		MarginBottom(2)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		Align(lipgloss.Center).
		MarginBottom(1)

	state := m.engine.State()

	phaseName, phaseColor := phaseBanner(state)
	phaseStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(phaseColor)).
		Align(lipgloss.Center).
		MarginBottom(1)

	minutes := state.RemainingSeconds / 60
	seconds := state.RemainingSeconds % 60
	timerDisplay := timerStyle.Render(m.renderBigTime(minutes, seconds))

	percent := 0.0
	if state.PhaseSeconds > 0 {
		percent = float64(state.PhaseSeconds-state.RemainingSeconds) / float64(state.PhaseSeconds)
	}
	progressBar := m.timerProgress.ViewAs(percent)

	var status string
	switch {
	case state.Running && state.Phase == models.PhaseWork:
		status = statusStyle.Render("🎯 Stay focused!")
	case state.Running:
		status = statusStyle.Render("☕ Break in progress - recharge")
	case state.RemainingSeconds < state.PhaseSeconds:
		status = statusStyle.Render("⏸️  Paused - press 's' to resume")
	default:
		status = statusStyle.Render("Press 's' to start")
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		phaseStyle.Render(phaseName),
		timerDisplay,
		progressBar,
		status,
	)
}

func phaseBanner(state models.TimerState) (string, string) {
	if state.Phase == models.PhaseWork {
		return "FOCUS", "#FF7CCB"
	}
	if state.LongBreak {
		return "LONG BREAK", "#00BFFF"
	}
	return "BREAK", "#4CAF50"
}

func (m Model) renderBigTime(minutes, seconds int) string {
	// ASCII art for digits 0-9
	digits := map[int][]string{
		0: {"███", "█ █", "█ █", "█ █", "███"},
		1: {" █ ", "██ ", " █ ", " █ ", "███"},
		2: {"███", "  █", "███", "█  ", "███"},
		3: {"███", "  █", "███", "  █", "███"},
		4: {"█ █", "█ █", "███", "  █", "  █"},
		5: {"███", "█  ", "███", "  █", "███"},
		6: {"███", "█  ", "███", "█ █", "███"},
		7: {"███", "  █", "  █", "  █", "  █"},
		8: {"███", "█ █", "███", "█ █", "███"},
		9: {"███", "█ █", "███", "  █", "███"},
	}

	colon := []string{" ", "█", " ", "█", " "}

	m1 := minutes / 10
	m2 := minutes % 10
	s1 := seconds / 10
	s2 := seconds % 10

	var lines []string
	for row := 0; row < 5; row++ {
		line := digits[m1][row] + " " + digits[m2][row] + " " + colon[row] + " " + digits[s1][row] + " " + digits[s2][row]
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) renderToday() string {
	progressStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		Align(lipgloss.Center).
		MarginTop(2)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		Align(lipgloss.Center).
		MarginBottom(1)

	stats := m.engine.Stats()

	currentDate := time.Now().Format("Monday, January 2, 2006")
	progressText := fmt.Sprintf(
		"Today: %d/%d focus sessions • streak %d",
		stats.WorkSessions,
		stats.DailyGoal,
		stats.StreakDays,
	)

	// Simple progress bar
	barWidth := 40
	filledWidth := int(float64(stats.WorkSessions) / float64(stats.DailyGoal) * float64(barWidth))
	if filledWidth > barWidth {
		filledWidth = barWidth
	}

	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filledWidth {
			bar += "■"
		} else {
			bar += "□"
		}
	}

	totals := fmt.Sprintf(
		"Focus: %s • Break: %s",
		formatDuration(stats.TotalWorkSeconds),
		formatDuration(stats.TotalBreakSeconds),
	)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		dateStyle.Render(currentDate),
		progressStyle.Render(progressText),
		progressStyle.Render(bar),
		progressStyle.Render(totals),
	)
}

func (m Model) renderHistory() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(2).
		MarginBottom(1)

	lapStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	title := titleStyle.Render("🗂  Lap History")

	laps := m.engine.History()
	if len(laps) == 0 {
		return lipgloss.JoinVertical(
			lipgloss.Center,
			title,
			lapStyle.Render("No laps yet. Finish a phase to record one! 🚀"),
		)
	}

	shown := min(len(laps), 8)
	lines := []string{title}
	for _, lap := range laps[:shown] {
		icon := "✅"
		if lap.Phase == models.PhaseBreak {
			icon = "☕"
		}
		lines = append(lines, lapStyle.Render(fmt.Sprintf(
			"%s %s %s • %s",
			icon,
			lap.Phase.Label(),
			formatDuration(lap.ElapsedSeconds),
			lap.RecordedAt.Format("3:04 PM"),
		)))
	}
	if len(laps) > shown {
		lines = append(lines, lapStyle.Render(fmt.Sprintf("+ %d more • e: export full report", len(laps)-shown)))
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	var helpText string
	if m.engine.State().Running {
		if m.width > 100 {
			helpText = "p: pause • r: reset • w/b: switch phase • l: history • e: export • n: sound • g: settings • ?: help • q: quit"
		} else {
			helpText = "p: pause • r: reset • l: history • q: quit"
		}
	} else {
		if m.width > 100 {
			helpText = "s: start • r: reset • w/b: switch phase • l: history • e: export • n: sound • g: settings • ?: help • q: quit"
		} else {
			helpText = "s: start • l: history • ?: help • q: quit"
		}
	}

	// Show transient feedback if present
	if m.showStatus && m.statusMessage != "" {
		messageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true).
			MarginBottom(1)
		return lipgloss.JoinVertical(
			lipgloss.Center,
			messageStyle.Render(m.statusMessage),
			helpStyle.Render(helpText),
		)
	}

	return helpStyle.Render(helpText)
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func (m Model) ShouldOpenSettings() bool {
	return m.openSettings
}

func formatDuration(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		if seconds > 0 {
			return fmt.Sprintf("%dm %ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", seconds)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type keyMap struct {
	Start    key.Binding
	Pause    key.Binding
	Reset    key.Binding
	Work     key.Binding
	Break    key.Binding
	History  key.Binding
	Export   key.Binding
	Sound    key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start/resume"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Work: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "focus phase"),
	),
	Break: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "break phase"),
	),
	History: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "lap history"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export report"),
	),
	Sound: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "sound on/off"),
	),
	Settings: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "settings"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?/f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
