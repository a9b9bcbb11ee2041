// Package cli provides the cobra command tree for wbrank.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services injected by main.
var (
	productService  driving.ProductService
	rankJobService  driving.RankJobService
	sessionService  driving.SessionService
	settingsService driving.SettingsService
	configWatcher   driven.ConfigWatcher
)

var rootCmd = &cobra.Command{
	Use:   "wbrank",
	Short: "Find where a product ranks in marketplace search",
	Long: `wbrank looks up a Wildberries product, derives search keywords from its
card, and walks the marketplace search results page by page to report the
product's position for each keyword.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services holds the core services the commands run against.
type Services struct {
	Product  driving.ProductService
	Jobs     driving.RankJobService
	Sessions driving.SessionService
	Settings driving.SettingsService

	// ConfigWatcher reloads configuration in long-running commands. Optional.
	ConfigWatcher driven.ConfigWatcher
}

// SetServices wires the services used by all commands.
func SetServices(s *Services) {
	productService = s.Product
	rankJobService = s.Jobs
	sessionService = s.Sessions
	settingsService = s.Settings
	configWatcher = s.ConfigWatcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
