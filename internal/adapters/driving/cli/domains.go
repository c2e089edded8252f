package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hopwise/hopwise/internal/bootstrap"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/services"
)

var (
	ridePriority string

	foodPriority   string
	foodCategory   string
	foodPriceRange string
	foodDietary    []string
)

var rideCmd = &cobra.Command{
	Use:   "ride [query]",
	Short: "Compare rideshare options",
	Long: `Compares estimates from every configured rideshare provider, skipping
routing. Example:

  hopwise ride --priority time "from Grand Central to LaGuardia for 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRide,
}

var foodCmd = &cobra.Command{
	Use:   "food [query]",
	Short: "Find restaurants",
	Long: `Searches every configured restaurant provider, skipping routing.
Example:

  hopwise food --category Drinks --price '$$' "cocktails near the East Village"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFood,
}

func init() {
	rideCmd.Flags().StringVarP(&ridePriority, "priority", "p", string(domain.PriorityBalanced), "what matters most")

	foodCmd.Flags().StringVarP(&foodPriority, "priority", "p", string(domain.PriorityBalanced), "what matters most")
	foodCmd.Flags().StringVarP(&foodCategory, "category", "c", "", "place type: Food, Drinks, Ice Cream or Cafe")
	foodCmd.Flags().StringVar(&foodPriceRange, "price", "", "highest price level, $ to $$$$")
	foodCmd.Flags().StringSliceVar(&foodDietary, "dietary", nil, "dietary restrictions (comma separated)")

	rootCmd.AddCommand(rideCmd)
	rootCmd.AddCommand(foodCmd)
}

func runRide(cmd *cobra.Command, args []string) error {
	priority, err := parsePriority(ridePriority)
	if err != nil {
		return err
	}
	return runDomain(cmd, domain.DomainRideshare, strings.Join(args, " "), queryContext(), priority)
}

func runFood(cmd *cobra.Command, args []string) error {
	priority, err := parsePriority(foodPriority)
	if err != nil {
		return err
	}

	qctx := queryContext()
	prefs := map[string]string{}
	if foodCategory != "" {
		prefs[services.PrefFilterCategory] = foodCategory
	}
	if foodPriceRange != "" {
		prefs[services.PrefPriceRange] = foodPriceRange
	}
	if len(foodDietary) > 0 {
		prefs[services.PrefDietary] = strings.Join(foodDietary, ",")
	}
	if len(prefs) > 0 {
		qctx.Preferences = prefs
	}
	return runDomain(cmd, domain.DomainRestaurants, strings.Join(args, " "), qctx, priority)
}

// runDomain sends the query straight to one domain handler.
func runDomain(
	cmd *cobra.Command, d domain.Domain, query string, qctx domain.QueryContext, priority domain.Priority,
) error {
	if err := ensureServices(cmd.Context(), bootstrap.Options{ValidateLLM: true}); err != nil {
		return err
	}
	handler, err := orchestrator.Handler(d)
	if err != nil {
		return fmt.Errorf("%s is not enabled: %w", d, err)
	}

	res, err := handler.Process(cmd.Context(), query, qctx, priority)
	if err != nil {
		if domain.IsValidationError(err) {
			return fmt.Errorf("need more detail: %w", err)
		}
		return fmt.Errorf("%s failed: %w", d, err)
	}

	if jsonOutput {
		return printJSON(cmd, res)
	}
	newPrinter(cmd).result(res)
	return nil
}
