package keywatch

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	lipgloss "github.com/charmbracelet/lipgloss"
	domain "github.com/inference-gateway/keybind/internal/domain"
	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	logger "github.com/inference-gateway/keybind/internal/logger"
	colors "github.com/inference-gateway/keybind/internal/ui/styles/colors"
)

// DefaultHistory is how many events the monitor keeps on screen
const DefaultHistory = 10

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colors.InfoColor.GetLipglossColor())
	tokenStyle    = lipgloss.NewStyle().Bold(true).Foreground(colors.SuccessColor.GetLipglossColor())
	commandStyle  = lipgloss.NewStyle().Foreground(colors.CommandColor.GetLipglossColor())
	dimStyle      = lipgloss.NewStyle().Foreground(colors.DimColor.GetLipglossColor())
	selectorStyle = lipgloss.NewStyle().Foreground(colors.SelectorColor.GetLipglossColor())
)

// Observation is one recorded key event
type Observation struct {
	Event     domain.KeyEvent
	Keystroke string
	Token     string
	Matches   []keybinding.SourcedEntry
}

// Model is the bubbletea model of the key monitor
type Model struct {
	registry     *keybinding.Registry
	observations []Observation
	history      int
	width        int
	quitting     bool
}

// NewModel creates a monitor resolving events through registry
func NewModel(registry *keybinding.Registry, history int) *Model {
	if history <= 0 {
		history = DefaultHistory
	}
	return &Model{
		registry: registry,
		history:  history,
		width:    80,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		m.Observe(msg)
	}

	return m, nil
}

// Observe resolves msg and records the result
func (m *Model) Observe(msg tea.KeyMsg) Observation {
	ev, keystroke := FromKeyMsg(msg)
	token := m.registry.ResolveEvent(keystroke, ev, "")

	matches := m.registry.FindKeyBindings(token)
	if len(matches) == 0 && token != keystroke {
		matches = m.registry.FindKeyBindings(keystroke)
	}

	obs := Observation{Event: ev, Keystroke: keystroke, Token: token, Matches: matches}
	m.observations = append(m.observations, obs)
	if len(m.observations) > m.history {
		m.observations = m.observations[len(m.observations)-m.history:]
	}

	logger.Debug("Observed key event", "event", ev.String(), "keystroke", keystroke, "token", token, "matches", len(matches))
	return obs
}

// Observations returns the recorded events, oldest first
func (m *Model) Observations() []Observation {
	return m.observations
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Key event monitor"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press keys to inspect them, ctrl+c to quit"))
	b.WriteString("\n")
	b.WriteString(colors.CreateSeparator(min(m.width, 80), "─"))
	b.WriteString("\n")

	for _, obs := range m.observations {
		b.WriteString(fmt.Sprintf("%s %s\n", tokenStyle.Render(obs.Token), dimStyle.Render("<- "+obs.Keystroke)))
		b.WriteString(dimStyle.Render("  " + obs.Event.String()))
		b.WriteString("\n")
		for _, match := range obs.Matches {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				selectorStyle.Render(match.Selector),
				dimStyle.Render("->"),
				commandStyle.Render(match.Command)))
		}
	}

	return b.String()
}
