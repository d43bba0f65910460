package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

var bindingsProjectFlag string

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Inspect locally recorded provider bindings",
	Long: `View and manage the provider bindings recorded for a project.

Bindings are local records of committed connections. Removing one here does
not disconnect the provider on the dashboard; it only clears the local
record.`,
	RunE: runBindingsList,
}

var bindingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bindings for a project",
	RunE:  runBindingsList,
}

var bindingsRemoveCmd = &cobra.Command{
	Use:   "remove <provider>",
	Short: "Remove the local binding record for a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runBindingsRemove,
}

var bindingsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show connection history for a project",
	RunE:  runBindingsHistory,
}

func init() {
	bindingsCmd.PersistentFlags().StringVarP(&bindingsProjectFlag, "project", "p", "", "project id (required)")
	bindingsCmd.AddCommand(bindingsListCmd)
	bindingsCmd.AddCommand(bindingsRemoveCmd)
	bindingsCmd.AddCommand(bindingsHistoryCmd)
	rootCmd.AddCommand(bindingsCmd)
}

func requireBindingService() error {
	if services == nil || services.Bindings == nil {
		return errors.New("binding service not configured")
	}
	if bindingsProjectFlag == "" {
		return errors.New("--project is required")
	}
	return nil
}

func runBindingsList(cmd *cobra.Command, _ []string) error {
	if err := requireBindingService(); err != nil {
		return err
	}

	bindings, err := services.Bindings.List(cmd.Context(), bindingsProjectFlag)
	if err != nil {
		return fmt.Errorf("failed to list bindings: %w", err)
	}
	if len(bindings) == 0 {
		cmd.Printf("No bindings recorded for project %s.\n", bindingsProjectFlag)
		return nil
	}

	cmd.Printf("Bindings for project %s\n", bindingsProjectFlag)
	cmd.Println()
	for _, b := range bindings {
		cmd.Printf("  %-18s %s = %s (committed %s)\n",
			b.ProviderID, b.Field, b.Value, b.CommittedAt.Format("2006-01-02 15:04"))
		if b.Warning != "" {
			cmd.Printf("  %-18s warning: %s\n", "", b.Warning)
		}
	}
	return nil
}

func runBindingsRemove(cmd *cobra.Command, args []string) error {
	if err := requireBindingService(); err != nil {
		return err
	}

	provider := domain.ProviderID(args[0])
	if err := services.Bindings.Remove(cmd.Context(), bindingsProjectFlag, provider); err != nil {
		return fmt.Errorf("failed to remove binding: %w", err)
	}
	cmd.Printf("Removed local binding record for %s on project %s.\n", provider, bindingsProjectFlag)
	return nil
}

func runBindingsHistory(cmd *cobra.Command, _ []string) error {
	if err := requireBindingService(); err != nil {
		return err
	}

	events, err := services.Bindings.History(cmd.Context(), bindingsProjectFlag)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(events) == 0 {
		cmd.Printf("No connection history for project %s.\n", bindingsProjectFlag)
		return nil
	}

	cmd.Printf("Connection history for project %s\n", bindingsProjectFlag)
	cmd.Println()
	for _, e := range events {
		cmd.Printf("  %s  %-18s %s", e.At.Format("2006-01-02 15:04:05"), e.ProviderID, e.Outcome)
		if e.Detail != "" {
			cmd.Printf(": %s", e.Detail)
		}
		cmd.Println()
	}
	return nil
}
