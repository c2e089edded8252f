package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write settings",
	Long: `Reads and writes ~/.hopwise/config.toml (or the file given with --config).

Keys use dots, for example:
  llm.provider            openai, anthropic or ollama
  cache.backend           memory, redis or sqlite
  ratelimit.backend       memory or redis
  ratelimit.uber.limit    calls per window for one provider
  providers.rideshare     comma separated provider names
  domains.enabled         rideshare,restaurants

HOPWISE_* environment variables override the file at run time.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting, or every stored setting",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Validate and store one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if len(args) == 1 {
		v, ok := settingsService.Value(args[0])
		if !ok {
			return fmt.Errorf("%s is not set", args[0])
		}
		if jsonOutput {
			return printJSON(cmd, map[string]any{args[0]: displayValue(args[0], v)})
		}
		cmd.Println(displayValue(args[0], v))
		return nil
	}

	keys := settingsService.Keys()
	sort.Strings(keys)
	if jsonOutput {
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			v, _ := settingsService.Value(k)
			out[k] = displayValue(k, v)
		}
		return printJSON(cmd, out)
	}
	if len(keys) == 0 {
		cmd.Println("No settings stored; defaults apply.")
		return nil
	}
	for _, k := range keys {
		v, _ := settingsService.Value(k)
		cmd.Printf("%s = %v\n", k, displayValue(k, v))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", strings.ToLower(strings.TrimSpace(args[0])))
	return nil
}

// displayValue masks secrets.
func displayValue(key string, v any) any {
	if s, ok := v.(string); ok && strings.HasSuffix(key, "api_key") {
		return maskAPIKey(s)
	}
	return v
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
