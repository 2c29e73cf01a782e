package cmd

import (
	"fmt"
	"os"

	"github.com/miyamoto-hai-lab/participants-id/cmd/attr"
	"github.com/miyamoto-hai-lab/participants-id/cmd/id"
	"github.com/miyamoto-hai-lab/participants-id/cmd/serve"
	"github.com/miyamoto-hai-lab/participants-id/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "participants-id",
		Short: "durable anonymous participant identifiers",
		Long: fmt.Sprintf(`participants-id (v%s)

Manages a durable, anonymous per-client identifier plus namespaced
attributes on top of a pluggable key-value backing store.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of participants-id",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("participants-id v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(id.IdentityCommands)
	RootCmd.AddCommand(attr.AttributeCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
