package help

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width  int
	height int
	quit   bool
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() string {
	// Use reasonable defaults if dimensions aren't set
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		Align(lipgloss.Center).
		MarginBottom(1)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		Align(lipgloss.Center).
		MarginBottom(2)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2).
		Align(lipgloss.Center)

	currentYear := time.Now().Year()
	currentDate := time.Now().Format("Monday, January 2, 2006")

	title := titleStyle.Render(fmt.Sprintf("🆘 Pendulum Help - %d", currentYear))
	dateInfo := dateStyle.Render(currentDate)

	timerSection := sectionTitleStyle.Render("⏱️  Timer Controls")
	timerContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("s"), descStyle.Render("Start or resume the countdown"),
		keyStyle.Render("p"), descStyle.Render("Pause the countdown"),
		keyStyle.Render("r"), descStyle.Render("Reset the current phase to its full duration"))

	phaseSection := sectionTitleStyle.Render("🔁 Phases")
	phaseContent := fmt.Sprintf("%s - %s\n%s - %s\n%s",
		keyStyle.Render("w"), descStyle.Render("Switch to the focus phase"),
		keyStyle.Render("b"), descStyle.Render("Switch to the break phase"),
		descStyle.Render("Switching mid-phase records the elapsed time as a lap."))

	panelSection := sectionTitleStyle.Render("📊 Panels & Reports")
	panelContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("l"), descStyle.Render("Show or hide the lap history"),
		keyStyle.Render("e"), descStyle.Render("Export the session report to a text file"),
		keyStyle.Render("n"), descStyle.Render("Toggle the terminal bell"))

	appSection := sectionTitleStyle.Render("⚙️  Settings & App")
	appContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("g"), descStyle.Render("Open settings"),
		keyStyle.Render("? / f1"), descStyle.Render("Show this help page"),
		keyStyle.Render("q / Ctrl+C"), descStyle.Render("Quit the application"))

	memorySection := sectionTitleStyle.Render("🧠 In-Memory by Design")
	memoryContent := descStyle.Render(
		"Laps and daily stats live in memory for the current run only;\n" +
			"quitting clears them. Export a report with 'e' if you want to\n" +
			"keep a copy. Only your preferences are stored on disk.")

	aboutSection := sectionTitleStyle.Render("ℹ️  About Pendulum")
	aboutContent := descStyle.Render(
		"Pendulum swings between focus and break phases. Every finished\n" +
			"phase is recorded as a lap, and every Nth focus session earns\n" +
			"the long break. Reach your daily goal to grow the streak.\n\n" +
			"Default focus duration: 25 minutes\n" +
			"Customize settings with the 'g' key")

	footer := footerStyle.Render("Press 'esc' to go back • 'q' to quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		dateInfo,
		timerSection,
		timerContent,
		phaseSection,
		phaseContent,
		panelSection,
		panelContent,
		appSection,
		appContent,
		memorySection,
		memoryContent,
		aboutSection,
		aboutContent,
		footer,
	)

	return containerStyle.Render(content)
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
