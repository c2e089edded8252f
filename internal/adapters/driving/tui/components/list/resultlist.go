// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hopwise/hopwise/internal/adapters/driving/tui/styles"
	"github.com/hopwise/hopwise/internal/core/domain"
)

// Row is one ranked option flattened for display.
type Row struct {
	Domain domain.Domain
	Title  string
	Detail string
	Best   bool
}

// RowsFor flattens every domain result into rows, keeping routing order
// and each domain's ranking.
func RowsFor(res domain.AskResult) []Row {
	var rows []Row
	for _, hr := range res.Results {
		rows = append(rows, RowsForDomain(hr)...)
	}
	return rows
}

// RowsForDomain flattens one domain result.
func RowsForDomain(hr domain.HandlerResult) []Row {
	best := hr.Recommendation().Best
	var rows []Row
	if hr.Rides != nil {
		for _, r := range hr.Rides.Options {
			rows = append(rows, Row{
				Domain: hr.Domain,
				Title:  r.Label(),
				Detail: RideDetail(r),
				Best:   best != "" && r.Label() == best,
			})
		}
	}
	if hr.Restaurants != nil {
		for _, r := range hr.Restaurants.Options {
			rows = append(rows, Row{
				Domain: hr.Domain,
				Title:  r.Label(),
				Detail: RestaurantDetail(r),
				Best:   best != "" && r.Label() == best,
			})
		}
	}
	return rows
}

// RideDetail summarises a ride estimate on one line.
func RideDetail(r domain.RideEstimate) string {
	if !r.IsAvailable {
		return r.Provider + " · unavailable"
	}
	parts := []string{
		r.Provider,
		fmt.Sprintf("$%.2f ($%.2f-$%.2f)", r.PriceEstimate, r.PriceLow, r.PriceHigh),
		fmt.Sprintf("%d min pickup", r.PickupETAMinutes),
		fmt.Sprintf("%d min ride", r.DurationMinutes),
	}
	if r.SurgeMultiplier > 1 {
		parts = append(parts, fmt.Sprintf("%.1fx surge", r.SurgeMultiplier))
	}
	return strings.Join(parts, " · ")
}

// RestaurantDetail summarises a restaurant on one line.
func RestaurantDetail(r domain.Restaurant) string {
	parts := []string{
		r.Provider,
		fmt.Sprintf("%.1f★ (%d)", r.Rating, r.ReviewCount),
	}
	if r.PriceRange != "" {
		parts = append(parts, r.PriceRange)
	}
	parts = append(parts, fmt.Sprintf("%.1f mi", r.DistanceMiles))
	if r.IsOpenNow {
		parts = append(parts, "open")
	} else {
		parts = append(parts, "closed")
	}
	if r.Cuisine != "" {
		parts = append(parts, r.Cuisine)
	}
	return strings.Join(parts, " · ")
}

// OptionList displays ranked options grouped by domain.
type OptionList struct {
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewOptionList creates a new option list component.
func NewOptionList(s *styles.Styles) *OptionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OptionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *OptionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *OptionList) Update(msg tea.Msg) (*OptionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of rows with a header per domain.
func (l *OptionList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render("No options")
	}

	// Each row takes two lines.
	visible := max((l.height-2)/2, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.rows))

	lines := make([]string, 0, (end-start)*2+2)
	var current domain.Domain
	for i := start; i < end; i++ {
		row := l.rows[i]
		if row.Domain != current {
			current = row.Domain
			lines = append(lines, l.styles.Domain.Render(strings.ToUpper(current.String())))
		}
		lines = append(lines, l.renderRow(i, row))
	}
	return strings.Join(lines, "\n")
}

func (l *OptionList) renderRow(index int, row Row) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := truncate(row.Title, max(l.width-20, 10))
	if row.Best {
		title += " ★"
	}

	var titleLine string
	switch {
	case index == l.selected:
		titleLine = l.styles.Selected.Render(indicator + title)
	case row.Best:
		titleLine = l.styles.Normal.Render(indicator) + l.styles.Best.Render(title)
	default:
		titleLine = l.styles.Normal.Render(indicator + title)
	}

	detail := truncate(row.Detail, max(l.width-6, 20))
	return titleLine + "\n" + l.styles.Muted.Render("    "+detail)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetRows replaces the rows and resets the selection.
func (l *OptionList) SetRows(rows []Row) {
	l.rows = rows
	l.selected = 0
}

// Rows returns the current rows.
func (l *OptionList) Rows() []Row {
	return l.rows
}

// Selected returns the index of the selected row.
func (l *OptionList) Selected() int {
	return l.selected
}

// SelectedRow returns the selected row, or nil if the list is empty.
func (l *OptionList) SelectedRow() *Row {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return &l.rows[l.selected]
}

// MoveUp moves selection up.
func (l *OptionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *OptionList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *OptionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *OptionList) Count() int {
	return len(l.rows)
}
