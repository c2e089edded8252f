// Package ask provides the main query view for the TUI: type a request,
// get ranked options and a recommendation per domain.
package ask

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hopwise/hopwise/internal/adapters/driving/tui/components/input"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/components/list"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/components/status"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/keymap"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/messages"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/styles"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// View is the ask view with input, options list, recommendations and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.OptionList
	statusbar *status.Bar

	orchestrator driving.Orchestrator
	qctx         domain.QueryContext
	ctx          context.Context

	priority   domain.Priority
	result     *domain.AskResult
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing, false = navigating options
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, orchestrator driving.Orchestrator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQueryInput(s),
		list:         list.NewOptionList(s),
		statusbar:    status.NewBar(s, km),
		orchestrator: orchestrator,
		ctx:          context.Background(),
		priority:     domain.PriorityBalanced,
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithQueryContext sets the location and preferences sent with every query.
func (v *View) WithQueryContext(qctx domain.QueryContext) *View {
	v.qctx = qctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	cmds = append(cmds, cmd)
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyTab {
		v.cyclePriority()
		return v, nil
	}

	if msg.Type == tea.KeyEnter && v.focusInput {
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.err = nil
		v.statusbar.SetMessage("")
		v.statusbar.SetState(status.StateAsking)
		v.focusInput = false
		v.input.Blur()
		return v, tea.Batch(v.performAsk(query, v.priority), v.statusbar.Tick())
	}

	// Input mode: all keys go to input
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if keymap.Matches(msg.String(), v.keymap.NewQuery) {
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) cyclePriority() {
	all := domain.AllPriorities()
	for i, p := range all {
		if p == v.priority {
			v.priority = all[(i+1)%len(all)]
			break
		}
	}
	v.statusbar.SetPriority(v.priority)
}

// performAsk runs the orchestrator off the UI goroutine.
func (v *View) performAsk(query string, priority domain.Priority) tea.Cmd {
	orch, ctx, qctx := v.orchestrator, v.ctx, v.qctx
	return func() tea.Msg {
		if orch == nil {
			return messages.ErrorOccurred{Err: ErrNoOrchestrator}
		}
		res, err := orch.Ask(ctx, query, qctx, priority)
		return messages.AskCompleted{Result: res, Err: err}
	}
}

func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	res := msg.Result
	v.result = &res
	v.list.SetRows(list.RowsFor(res))

	if msg.Err != nil && !domain.IsValidationError(msg.Err) {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(v.list.Count())
	switch {
	case res.Decision.IsEmpty():
		v.statusbar.SetMessage("Not sure what you need: mention a ride or a place to eat")
	case len(res.Clarifications) > 0:
		v.statusbar.SetMessage(fmt.Sprintf("%d domain(s) need more detail", len(res.Clarifications)))
	default:
		v.statusbar.SetMessage("")
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.focusInput = true
	v.input.Focus()
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Hopwise"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.result != nil {
		sections = append(sections, v.renderRecommendations()...)
		sections = append(sections, v.renderClarifications()...)
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderRecommendations() []string {
	var out []string
	for _, hr := range v.result.Results {
		rec := hr.Recommendation()
		if rec.Text == "" {
			continue
		}
		label := v.styles.Domain.Render(hr.Domain.String())
		out = append(out, v.styles.Recommendation.Width(max(v.width-4, 20)).Render(label+"  "+rec.Text), "")
	}
	return out
}

func (v *View) renderClarifications() []string {
	if len(v.result.Clarifications) == 0 {
		return nil
	}
	doms := make([]string, 0, len(v.result.Clarifications))
	for d := range v.result.Clarifications {
		doms = append(doms, d.String())
	}
	sort.Strings(doms)

	out := make([]string, 0, len(doms)+1)
	for _, d := range doms {
		out = append(out, v.styles.Warning.Render("? "+v.result.Clarifications[domain.Domain(d)]))
	}
	return append(out, "")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14) // header, input, recommendations, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Priority returns the active priority.
func (v *View) Priority() domain.Priority {
	return v.priority
}

// Result returns the last answer, or nil before the first one.
func (v *View) Result() *domain.AskResult {
	return v.result
}

// Rows returns the displayed option rows.
func (v *View) Rows() []list.Row {
	return v.list.Rows()
}

// SelectedIndex returns the index of the selected row.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to input mode, keeping the priority.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetRows(nil)
	v.result = nil
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
