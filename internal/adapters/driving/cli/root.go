// Package cli implements the Pulseboard command-line interface using cobra.
// Commands are wired to core services by the composition root via
// SetServices before Execute runs.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driving"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verboseFlag bool

// Services holds the core service implementations the commands run against.
type Services struct {
	Connection driving.ConnectionService
	Bindings   driving.BindingService
	Registry   driving.ProviderRegistry

	// CallbackAddr is the listen address for the callback receiver started
	// by the connect command.
	CallbackAddr string
}

// services holds the current wiring.
var services *Services

// SetServices wires the commands to their service implementations.
func SetServices(s *Services) {
	services = s
}

var rootCmd = &cobra.Command{
	Use:   "pulseboard",
	Short: "Connect data providers to your Pulseboard projects",
	Long: `Pulseboard CLI connects analytics and marketing data providers
(Google Analytics, Meta Ads, LinkedIn, Mailchimp and others) to your
Pulseboard dashboard projects.

A connection authorizes Pulseboard with the provider, lets you pick which
account or property to track, and binds that choice to the project.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose diagnostic output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context; cancellation aborts
// in-flight sessions.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
