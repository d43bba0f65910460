package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List connectable data providers",
	Long: `List the data providers this CLI can connect to a project, with the
resource each one binds (a property, an account, an audience, and so on).

Providers can be extended or overridden via providers.toml in the config
directory.`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Registry == nil {
		return errors.New("provider registry not configured")
	}

	descs := services.Registry.List()
	if len(descs) == 0 {
		cmd.Println("No providers registered.")
		return nil
	}

	cmd.Println("Available Providers")
	cmd.Println("===================")
	cmd.Println()
	for _, desc := range descs {
		cmd.Printf("  %-18s %s", desc.ID, desc.DisplayName())
		if desc.ResourceNoun != "" {
			cmd.Printf(" (binds a %s)", desc.ResourceNoun)
		}
		cmd.Println()
	}
	cmd.Println()
	cmd.Println("Connect one with: pulseboard connect <provider> --project <id>")
	return nil
}
