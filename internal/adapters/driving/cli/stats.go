package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hopwise/hopwise/internal/bootstrap"
	"github.com/hopwise/hopwise/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache counters and provider rate-limit windows",
	Long: `Shows hits, misses, sets and expirations for the configured cache
backend, and the current fixed window for every provider seen so far.

With the memory backends the numbers only cover this process; use the
redis or sqlite backends to see state shared across runs.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type statsOutput struct {
	Cache       *domain.CacheStats  `json:"cache,omitempty"`
	CacheError  string              `json:"cache_error,omitempty"`
	RateWindows []domain.RateWindow `json:"rate_windows"`
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context(), bootstrap.Options{}); err != nil {
		return err
	}
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	out := statsOutput{RateWindows: []domain.RateWindow{}}
	cs, err := statsService.CacheStats(cmd.Context())
	if err != nil {
		out.CacheError = err.Error()
	} else {
		out.Cache = &cs
	}
	windows, err := statsService.RateWindows(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read rate limits: %w", err)
	}
	if windows != nil {
		out.RateWindows = windows
	}

	if jsonOutput {
		return printJSON(cmd, out)
	}

	p := newPrinter(cmd)
	cmd.Println(p.heading("Cache"))
	if out.Cache == nil {
		cmd.Printf("unavailable: %s\n", out.CacheError)
	} else {
		cmd.Println(p.table(
			[]string{"Backend", "Hits", "Misses", "Sets", "Expired", "Entries", "Hit rate"},
			[][]string{{
				cs.Backend,
				fmt.Sprint(cs.Hits), fmt.Sprint(cs.Misses), fmt.Sprint(cs.Sets),
				fmt.Sprint(cs.Expired), fmt.Sprint(cs.Entries),
				fmt.Sprintf("%.0f%%", cs.HitRate()*100),
			}}, -1))
	}

	cmd.Println()
	cmd.Println(p.heading("Rate limits"))
	if len(out.RateWindows) == 0 {
		cmd.Println("No provider called yet.")
		return nil
	}
	rows := make([][]string, 0, len(out.RateWindows))
	for _, w := range out.RateWindows {
		rows = append(rows, []string{
			w.Provider, w.WindowStart.Format("2006-01-02 15:04:05"),
			fmt.Sprint(w.Count), fmt.Sprint(w.Threshold), fmt.Sprint(w.Remaining()), fmt.Sprint(w.Rejected),
		})
	}
	cmd.Println(p.table([]string{"Provider", "Window start", "Used", "Limit", "Remaining", "Rejected"}, rows, -1))
	return nil
}
