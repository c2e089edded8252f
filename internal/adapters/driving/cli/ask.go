package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hopwise/hopwise/internal/bootstrap"
	"github.com/hopwise/hopwise/internal/core/domain"
)

var askPriority string

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Answer a travel question across every matching domain",
	Long: `Routes the question to rideshare, restaurants or both, queries every
configured provider and recommends one option per domain.

Priorities: balanced, price, time, rating, distance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var routeCmd = &cobra.Command{
	Use:   "route [query]",
	Short: "Show which domains a question would be sent to",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoute,
}

func init() {
	askCmd.Flags().StringVarP(&askPriority, "priority", "p", string(domain.PriorityBalanced), "what matters most")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(routeCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	priority, err := parsePriority(askPriority)
	if err != nil {
		return err
	}
	if err := ensureServices(cmd.Context(), bootstrap.Options{ValidateLLM: true}); err != nil {
		return err
	}

	res, err := orchestrator.Ask(cmd.Context(), strings.Join(args, " "), queryContext(), priority)
	if err != nil && !domain.IsValidationError(err) {
		return fmt.Errorf("ask failed: %w", err)
	}

	if jsonOutput {
		if jerr := printJSON(cmd, res); jerr != nil {
			return jerr
		}
	} else {
		newPrinter(cmd).answer(res)
	}
	if err != nil {
		return fmt.Errorf("need more detail: %w", err)
	}
	return nil
}

func runRoute(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context(), bootstrap.Options{ValidateLLM: true}); err != nil {
		return err
	}
	if router == nil {
		return errors.New("router not configured")
	}

	decision := router.Route(cmd.Context(), strings.Join(args, " "), queryContext())
	if jsonOutput {
		return printJSON(cmd, decision)
	}
	newPrinter(cmd).decision(decision)
	return nil
}

// parsePriority accepts the documented priority names only.
func parsePriority(s string) (domain.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return domain.PriorityBalanced, nil
	}
	p := domain.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown priority %q (want one of %s)",
			domain.ErrInvalidInput, s, priorityNames())
	}
	return p, nil
}

func priorityNames() string {
	all := domain.AllPriorities()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
