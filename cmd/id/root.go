package id

import (
	"github.com/miyamoto-hai-lab/participants-id/cmd/util"
	"github.com/miyamoto-hai-lab/participants-id/lib/idgen"
	"github.com/miyamoto-hai-lab/participants-id/lib/participant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	manager participant.IParticipant

	// IdentityCommands represents the identifier command group
	IdentityCommands = &cobra.Command{
		Use:               "id",
		Short:             "Manage the participant identifier",
		PersistentPreRunE: setupManager,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common storage flags to the id command
	util.SetupStorageFlags(IdentityCommands)
	util.SetupParticipantFlags(IdentityCommands)

	// Add subcommands
	IdentityCommands.AddCommand(getCmd)
	IdentityCommands.AddCommand(regenerateCmd)
	IdentityCommands.AddCommand(existsCmd)
	IdentityCommands.AddCommand(versionCmd)
	IdentityCommands.AddCommand(createdCmd)
	IdentityCommands.AddCommand(updatedCmd)
	IdentityCommands.AddCommand(deleteCmd)
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
		Prefix:  viper.GetString("prefix"),
		Schemes: []idgen.Scheme{idgen.Scheme(viper.GetString("id-scheme"))},
	})

	return err
}
