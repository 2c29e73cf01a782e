package attr

import (
	"github.com/miyamoto-hai-lab/participants-id/cmd/util"
	"github.com/miyamoto-hai-lab/participants-id/lib/participant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	manager participant.IParticipant

	// AttributeCommands represents the attribute command group
	AttributeCommands = &cobra.Command{
		Use:               "attr",
		Short:             "Manage namespaced participant attributes",
		PersistentPreRunE: setupManager,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common storage flags to the attr command
	util.SetupStorageFlags(AttributeCommands)
	util.SetupParticipantFlags(AttributeCommands)

	// Add subcommands
	AttributeCommands.AddCommand(setCmd)
	AttributeCommands.AddCommand(getCmd)
	AttributeCommands.AddCommand(hasCmd)
	AttributeCommands.AddCommand(delCmd)
}

// setupManager builds the participant manager from the configured storage
func setupManager(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get the backing store
	st, err := util.GetStorage()
	if err != nil {
		return err
	}

	// Create the participant manager
	manager, err = participant.New(st, viper.GetString("app-name"), &participant.Options{
		Prefix: viper.GetString("prefix"),
	})

	return err
}
