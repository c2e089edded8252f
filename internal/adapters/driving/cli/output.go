package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hopwise/hopwise/internal/core/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bestStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// styled reports whether output goes to a terminal.
func styled(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printer writes plain or styled output depending on the terminal.
type printer struct {
	cmd   *cobra.Command
	fancy bool
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{cmd: cmd, fancy: styled(cmd)}
}

func (p printer) heading(s string) string {
	if p.fancy {
		return headingStyle.Render(s)
	}
	return s
}

func (p printer) muted(s string) string {
	if p.fancy {
		return mutedStyle.Render(s)
	}
	return s
}

func (p printer) table(headers []string, rows [][]string, best int) string {
	t := table.New().Headers(headers...).Rows(rows...)
	if !p.fancy {
		return t.Border(lipgloss.ASCIIBorder()).String()
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	return t.Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cell.Bold(true)
			case row == best:
				return bestStyle.Padding(0, 1)
			}
			return cell
		}).String()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func (p printer) decision(d domain.RoutingDecision) {
	if d.IsEmpty() {
		p.cmd.Println("No travel domain matched. Mention a ride or a place to eat.")
	} else {
		p.cmd.Printf("%s %s\n", p.heading("Domains:"), joinDomains(d.Domains))
	}
	p.cmd.Printf("%s %s\n", p.heading("Source:"), d.Source)
	if d.Reasoning != "" {
		p.cmd.Printf("%s %s\n", p.heading("Reasoning:"), d.Reasoning)
	}
	if d.FallbackReason != "" {
		p.cmd.Println(p.muted("Fallback: " + d.FallbackReason))
	}
}

func (p printer) answer(res domain.AskResult) {
	if res.Decision.IsEmpty() {
		p.decision(res.Decision)
		return
	}
	for i, hr := range res.Results {
		if i > 0 {
			p.cmd.Println()
		}
		p.result(hr)
	}
	p.clarifications(res.Clarifications)
}

func (p printer) clarifications(c map[domain.Domain]string) {
	if len(c) == 0 {
		return
	}
	keys := make([]string, 0, len(c))
	for d := range c {
		keys = append(keys, string(d))
	}
	sort.Strings(keys)

	p.cmd.Println()
	for _, k := range keys {
		p.cmd.Printf("%s %s\n", p.heading(k+": need more detail:"), c[domain.Domain(k)])
	}
}

func (p printer) result(hr domain.HandlerResult) {
	p.cmd.Println(p.heading(strings.ToUpper(hr.Domain.String())))

	rec := hr.Recommendation()
	switch hr.Domain {
	case domain.DomainRideshare:
		if hr.Rides != nil {
			headers, rows, best := rideRows(hr.Rides.Options, rec.Best)
			p.options(headers, rows, best)
		}
	case domain.DomainRestaurants:
		if hr.Restaurants != nil {
			headers, rows, best := restaurantRows(hr.Restaurants.Options, rec.Best)
			p.options(headers, rows, best)
		}
	}

	if rec.Text != "" {
		p.cmd.Printf("%s %s\n", p.heading("Recommendation:"), rec.Text)
	}
	if rec.FallbackReason != "" {
		p.cmd.Println(p.muted("Fallback: " + rec.FallbackReason))
	}

	meta := hr.Metadata()
	if len(meta.Providers) > 0 {
		p.cmd.Println(p.muted("Providers: " + providerSummary(meta.Providers)))
	}
	for _, n := range meta.Notes {
		p.cmd.Println(p.muted("Note: " + n))
	}
}

func (p printer) options(headers []string, rows [][]string, best int) {
	if len(rows) == 0 {
		p.cmd.Println("No options found.")
		return
	}
	p.cmd.Println(p.table(headers, rows, best))
}

func rideRows(opts []domain.RideEstimate, best string) ([]string, [][]string, int) {
	headers := []string{"", "Provider", "Vehicle", "Price", "Range", "Pickup", "Ride", "Surge"}
	rows := make([][]string, 0, len(opts))
	bestRow := -1
	for i, r := range opts {
		mark := ""
		if best != "" && r.Label() == best && bestRow < 0 {
			mark, bestRow = "*", i
		}
		if !r.IsAvailable {
			rows = append(rows, []string{mark, r.Provider, r.VehicleType, "unavailable", "", "", "", ""})
			continue
		}
		surge := ""
		if r.SurgeMultiplier > 1 {
			surge = fmt.Sprintf("%.1fx", r.SurgeMultiplier)
		}
		rows = append(rows, []string{
			mark, r.Provider, r.VehicleType,
			fmt.Sprintf("$%.2f", r.PriceEstimate),
			fmt.Sprintf("$%.2f-$%.2f", r.PriceLow, r.PriceHigh),
			fmt.Sprintf("%d min", r.PickupETAMinutes),
			fmt.Sprintf("%d min", r.DurationMinutes),
			surge,
		})
	}
	return headers, rows, bestRow
}

func restaurantRows(opts []domain.Restaurant, best string) ([]string, [][]string, int) {
	headers := []string{"", "Name", "Provider", "Cuisine", "Rating", "Price", "Distance", "Open"}
	rows := make([][]string, 0, len(opts))
	bestRow := -1
	for i, r := range opts {
		mark := ""
		if best != "" && r.Label() == best && bestRow < 0 {
			mark, bestRow = "*", i
		}
		open := "no"
		if r.IsOpenNow {
			open = "yes"
		}
		rows = append(rows, []string{
			mark, r.Name, r.Provider, r.Cuisine,
			fmt.Sprintf("%.1f (%d)", r.Rating, r.ReviewCount),
			r.PriceRange,
			fmt.Sprintf("%.1f mi", r.DistanceMiles),
			open,
		})
	}
	return headers, rows, bestRow
}

func providerSummary(reports []domain.ProviderReport) string {
	parts := make([]string, 0, len(reports))
	for _, r := range reports {
		s := fmt.Sprintf("%s %s", r.Provider, r.Status)
		if r.Results > 0 {
			s += fmt.Sprintf(" (%d)", r.Results)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func joinDomains(ds []domain.Domain) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
