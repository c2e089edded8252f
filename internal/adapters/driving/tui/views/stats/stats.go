// Package stats shows cache counters and rate-limit windows in the TUI.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hopwise/hopwise/internal/adapters/driving/tui/keymap"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/messages"
	"github.com/hopwise/hopwise/internal/adapters/driving/tui/styles"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// View renders shared infrastructure state.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.StatsService
	ctx     context.Context

	cache   *domain.CacheStats
	windows []domain.RateWindow
	err     error
	loaded  bool
	width   int
}

// NewView creates a stats view. service may be nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.StatsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, service: service, ctx: context.Background(), width: 80}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the stats.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	svc, ctx := v.service, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.StatsLoaded{}
		}
		msg := messages.StatsLoaded{}
		if cs, err := svc.CacheStats(ctx); err == nil {
			msg.Cache = &cs
		}
		msg.Windows, msg.Err = svc.RateWindows(ctx)
		return msg
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.StatsLoaded:
		v.cache, v.windows, v.err = msg.Cache, msg.Windows, msg.Err
		v.loaded = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyEsc:
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case keymap.Matches(msg.String(), v.keymap.Refresh):
			return v, v.load()
		}
	}
	return v, nil
}

// View renders the stats.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Hopwise stats"))
	b.WriteString("\n\n")

	if !v.loaded {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	}
	if v.service == nil {
		b.WriteString(v.styles.Muted.Render("Stats are not available"))
		return b.String()
	}

	b.WriteString(v.styles.Domain.Render("Cache"))
	b.WriteString("\n")
	if v.cache == nil {
		b.WriteString(v.styles.Muted.Render("unavailable"))
	} else {
		b.WriteString(CacheTable(*v.cache).Render())
	}
	b.WriteString("\n\n")

	b.WriteString(v.styles.Domain.Render("Rate limits"))
	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.windows) == 0:
		b.WriteString(v.styles.Muted.Render("No provider called yet"))
	default:
		b.WriteString(WindowTable(v.windows).Render())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("[r] refresh  [esc] back"))
	return b.String()
}

// CacheTable renders cache counters.
func CacheTable(cs domain.CacheStats) *table.Table {
	return newTable().
		Headers("Backend", "Hits", "Misses", "Sets", "Expired", "Entries", "Hit rate").
		Row(cs.Backend,
			fmt.Sprint(cs.Hits), fmt.Sprint(cs.Misses), fmt.Sprint(cs.Sets),
			fmt.Sprint(cs.Expired), fmt.Sprint(cs.Entries),
			fmt.Sprintf("%.0f%%", cs.HitRate()*100))
}

// WindowTable renders one row per provider window.
func WindowTable(windows []domain.RateWindow) *table.Table {
	t := newTable().Headers("Provider", "Window start", "Used", "Limit", "Remaining", "Rejected")
	for _, w := range windows {
		t.Row(w.Provider, w.WindowStart.Format("15:04:05"),
			fmt.Sprint(w.Count), fmt.Sprint(w.Threshold), fmt.Sprint(w.Remaining()), fmt.Sprint(w.Rejected))
	}
	return t
}

func newTable() *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
}
