package settings

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pendulum/internal/config"
)

type Model struct {
	cfg        config.Config
	inputs     []textinput.Model
	focusIndex int
	saved      bool
	errorMsg   string
	infoMsg    string
	width      int
	height     int
}

func New(cfg config.Config) Model {
	inputs := make([]textinput.Model, 5)

	// Validation function to allow only numeric input
	numericValidation := func(text string) error {
		if text == "" {
			return nil // Allow empty input temporarily
		}
		for _, char := range text {
			if !unicode.IsDigit(char) {
				return fmt.Errorf("only numbers allowed")
			}
		}
		return nil
	}

	// Focus Duration
	inputs[0] = textinput.New()
	inputs[0].Placeholder = "25"
	inputs[0].SetValue(strconv.Itoa(cfg.WorkMinutes))
	inputs[0].Focus()
	inputs[0].CharLimit = 3
	inputs[0].Width = 20
	inputs[0].Validate = numericValidation

	// Break Duration
	inputs[1] = textinput.New()
	inputs[1].Placeholder = "5"
	inputs[1].SetValue(strconv.Itoa(cfg.BreakMinutes))
	inputs[1].CharLimit = 3
	inputs[1].Width = 20
	inputs[1].Validate = numericValidation

	// Long Break Duration
	inputs[2] = textinput.New()
	inputs[2].Placeholder = "15"
	inputs[2].SetValue(strconv.Itoa(cfg.LongBreakMinutes))
	inputs[2].CharLimit = 3
	inputs[2].Width = 20
	inputs[2].Validate = numericValidation

	// Sessions Until Long Break
	inputs[3] = textinput.New()
	inputs[3].Placeholder = "4"
	inputs[3].SetValue(strconv.Itoa(cfg.SessionsUntilLongBreak))
	inputs[3].CharLimit = 2
	inputs[3].Width = 20
	inputs[3].Validate = numericValidation

	// Daily Goal
	inputs[4] = textinput.New()
	inputs[4].Placeholder = "8"
	inputs[4].SetValue(strconv.Itoa(cfg.DailyGoal))
	inputs[4].CharLimit = 2
	inputs[4].Width = 20
	inputs[4].Validate = numericValidation

	return Model{
		cfg:        cfg,
		inputs:     inputs,
		focusIndex: 0,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			m.focusIndex++
			if m.focusIndex > len(m.inputs)-1 {
				m.focusIndex = 0
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs) - 1
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.Save):
			if err := m.saveConfig(); err == nil {
				m.saved = true
				m.errorMsg = ""
				return m, tea.Quit
			} else {
				m.errorMsg = err.Error()
				m.saved = false
			}

		case key.Matches(msg, keys.Defaults):
			m.restoreDefaults()
			return m, nil

		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *Model) updateFocus() tea.Model {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		oldValue := m.inputs[i].Value()
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
		// Clear stale feedback when the user starts typing
		if m.inputs[i].Value() != oldValue {
			m.errorMsg = ""
			m.infoMsg = ""
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) saveConfig() error {
	labels := []string{
		"focus duration",
		"break duration",
		"long break duration",
		"sessions until long break",
		"daily goal",
	}

	values := make([]int, len(m.inputs))
	for i := range m.inputs {
		raw := m.inputs[i].Value()
		if raw == "" {
			return fmt.Errorf("%s is required", labels[i])
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be a number", labels[i])
		}
		// Values below the minimum are raised, not rejected
		if value < 1 {
			value = 1
		}
		values[i] = value
	}

	m.cfg.WorkMinutes = values[0]
	m.cfg.BreakMinutes = values[1]
	m.cfg.LongBreakMinutes = values[2]
	m.cfg.SessionsUntilLongBreak = values[3]
	m.cfg.DailyGoal = values[4]

	return config.Save(m.cfg)
}

func (m *Model) restoreDefaults() {
	defaults := config.Default()

	m.inputs[0].SetValue(strconv.Itoa(defaults.WorkMinutes))
	m.inputs[1].SetValue(strconv.Itoa(defaults.BreakMinutes))
	m.inputs[2].SetValue(strconv.Itoa(defaults.LongBreakMinutes))
	m.inputs[3].SetValue(strconv.Itoa(defaults.SessionsUntilLongBreak))
	m.inputs[4].SetValue(strconv.Itoa(defaults.DailyGoal))

	m.errorMsg = ""
	m.infoMsg = "Defaults restored - press 's' to save them"
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(4)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(3).
		Align(lipgloss.Center)

	formStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginTop(2).
		MarginBottom(2)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	inputStyle := lipgloss.NewStyle().
		MarginBottom(2)

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true).
		MarginTop(2)

	title := titleStyle.Render("⚙️  Settings")

	labels := []string{
		"Focus Duration (minutes):",
		"Break Duration (minutes):",
		"Long Break Duration (minutes):",
		"Sessions Until Long Break:",
		"Daily Goal (focus sessions):",
	}

	var form string
	for i, label := range labels {
		form += labelStyle.Render(label) + "\n"
		form += inputStyle.Render(m.inputs[i].View()) + "\n"
	}

	help := m.renderHelp()

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		formStyle.Render(form),
		help,
	)

	if m.saved {
		content += "\n" + successStyle.Render("✅ Settings saved successfully!")
	}

	if m.infoMsg != "" {
		content += "\n" + successStyle.Render("🔄 "+m.infoMsg)
	}

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + errorStyle.Render("❌ "+m.errorMsg)
	}

	return containerStyle.Render(content)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	return helpStyle.Render("tab/↓: next field • shift+tab/↑: previous • s: save • d: defaults • b: back • q: quit")
}

func (m Model) Saved() bool {
	return m.saved
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Save     key.Binding
	Defaults key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Defaults: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "restore defaults"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
