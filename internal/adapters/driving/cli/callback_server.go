package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var callbackServerCmd = &cobra.Command{
	Use:   "callback-server",
	Short: "Run the authorization callback receiver in the foreground",
	Long: `Run the local callback receiver on its own.

Useful when authorization is driven from the dashboard rather than the
connect command: redirects arriving with no connect session listening are
completed directly against the backend and sent back to the dashboard.`,
	RunE: runCallbackServer,
}

func init() {
	rootCmd.AddCommand(callbackServerCmd)
}

func runCallbackServer(cmd *cobra.Command, _ []string) error {
	if connectReceiver == nil || services == nil {
		return errors.New("callback receiver not configured")
	}

	if err := connectReceiver.Start(services.CallbackAddr); err != nil {
		return err
	}
	cmd.Printf("Callback receiver listening on %s. Press Ctrl+C to stop.\n", connectReceiver.Addr())

	<-cmd.Context().Done()
	return connectReceiver.Stop()
}
