package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pulseboard/pulseboard-cli/internal/adapters/driving/callback"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driving/tui/picker"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driving/tui/styles"
	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	coreservices "github.com/pulseboard/pulseboard-cli/internal/core/services"
)

var (
	connectProjectFlag  string
	connectResourceFlag string
)

// connectReceiver is the callback receiver started for the duration of the
// connect command. Wired by the composition root.
var connectReceiver *callback.Receiver

// SetCallbackReceiver wires the callback receiver used during connect.
func SetCallbackReceiver(r *callback.Receiver) {
	connectReceiver = r
}

var connectCmd = &cobra.Command{
	Use:   "connect <provider>",
	Short: "Connect a data provider to a project",
	Long: `Connect a data provider to a Pulseboard project.

Opens the provider's authorization page in a browser window, waits for you
to approve access, then lets you pick which account or property to track.
If the window is closed without approving, the connection is cancelled.

Use --resource to skip the interactive picker and bind a known resource id
directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().StringVarP(&connectProjectFlag, "project", "p", "", "project id (required)")
	connectCmd.Flags().StringVarP(&connectResourceFlag, "resource", "r", "", "resource id to bind without the picker")
	_ = connectCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	if services == nil || services.Connection == nil || services.Registry == nil {
		return errors.New("connection service not configured")
	}

	provider := domain.ProviderID(args[0])
	descPtr, err := services.Registry.Get(provider)
	if err != nil {
		return fmt.Errorf("unknown provider %q, run 'pulseboard providers' to see the list", args[0])
	}
	desc := *descPtr

	if connectReceiver != nil {
		if err := connectReceiver.Start(services.CallbackAddr); err != nil {
			return fmt.Errorf("failed to start callback receiver: %w", err)
		}
		defer func() { _ = connectReceiver.Stop() }()
	}

	ctx := cmd.Context()
	defer services.Connection.Dismiss(provider, connectProjectFlag)

	state, err := services.Connection.Start(ctx, provider, connectProjectFlag)
	switch {
	case errors.Is(err, domain.ErrCancelled):
		cmd.Println("Connection cancelled.")
		return nil
	case errors.Is(err, domain.ErrPopupBlocked):
		return fmt.Errorf("could not open a browser window: %w", err)
	case err != nil:
		return err
	}

	resource, ok, err := chooseResource(cmd, desc, state)
	if err != nil {
		return err
	}
	if !ok {
		cmd.Println("Connection cancelled.")
		return nil
	}

	binding, err := services.Connection.Confirm(ctx, provider, connectProjectFlag, resource)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", desc.DisplayName(), err)
	}

	cmd.Printf("Connected %s to project %s: %s = %s\n",
		desc.DisplayName(), binding.ProjectID, binding.Field, binding.Value)
	if binding.Warning != "" {
		cmd.Printf("Warning: %s\n", binding.Warning)
	}
	return nil
}

// chooseResource resolves the resource to bind: the --resource flag when
// given, otherwise the interactive picker. ok is false when the user backed
// out.
func chooseResource(cmd *cobra.Command, desc domain.ProviderDescriptor, state *domain.ConnectionState) (domain.CandidateResource, bool, error) {
	if connectResourceFlag != "" {
		for _, r := range state.Resources {
			if r.ID == connectResourceFlag {
				return r, true, nil
			}
		}
		// Not in the discovered list: treated as a manual entry and
		// validated on confirm.
		return domain.CandidateResource{ID: connectResourceFlag, DisplayLabel: connectResourceFlag}, true, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return domain.CandidateResource{}, false,
			errors.New("no interactive terminal; pass --resource <id> to bind directly")
	}

	selector, err := coreservices.NewResourceSelector(desc)
	if err != nil {
		return domain.CandidateResource{}, false, err
	}

	if state.Notice != "" {
		cmd.Println(state.Notice)
	}

	return runPicker(picker.Options{
		Provider:       desc,
		Resources:      state.Resources,
		ManualOnly:     state.ManualOnly,
		Notice:         state.Notice,
		ValidateManual: selector.ValidateManualID,
	})
}

// runPicker is swapped out in tests.
var runPicker = func(opts picker.Options) (domain.CandidateResource, bool, error) {
	return picker.Run(styles.NewStyles(nil), opts)
}
