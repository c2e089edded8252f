// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hopwise/hopwise/internal/adapters/driving/tui/keymap"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/styles"
	"github.com/hopwise/hopwise/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateAsking  State = "asking"
	StateError   State = "error"
	StateResults State = "results"
)

// Bar displays the active priority, progress and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	spinner     spinner.Model
	state       State
	message     string
	priority    domain.Priority
	resultCount int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	return &Bar{
		styles:   s,
		keymap:   km,
		spinner:  sp,
		state:    StateReady,
		priority: domain.PriorityBalanced,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Tick starts the spinner animation.
func (s *Bar) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner while a query is running.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && s.state == StateAsking {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	prio := s.styles.Muted.Render("priority: ") + s.styles.Normal.Render(s.priority.String())

	switch s.state {
	case StateAsking:
		return s.spinner.View() + " " + s.styles.Muted.Render("Asking...") + "  " + prio
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateResults:
		if s.message != "" {
			return s.styles.Warning.Render(s.message) + "  " + prio
		}
		return s.styles.Normal.Render(fmt.Sprintf("%d options", s.resultCount)) + "  " + prio
	case StateReady:
	}
	return s.styles.Muted.Render("Ready") + "  " + prio
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPriority sets the displayed priority.
func (s *Bar) SetPriority(p domain.Priority) {
	s.priority = p
}

// Priority returns the displayed priority.
func (s *Bar) Priority() domain.Priority {
	return s.priority
}

// SetResultCount sets the option count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the option count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to the ready state, keeping the priority.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
