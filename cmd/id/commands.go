package id

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get",
		Short: "Reads the identifier, generating one if absent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id, err := manager.BrowserID(); err != nil {
				return err
			} else {
				fmt.Println(id)
			}
			return nil
		},
	}
	regenerateCmd = &cobra.Command{
		Use:   "regenerate",
		Short: "Generates a fresh identifier, overwriting any stored one",
		Long:  `Generates a fresh identifier, overwriting any stored one. Caution: every experiment project sharing the configured prefix loses correlation with previously collected data.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id, err := manager.Regenerate(); err != nil {
				return err
			} else {
				fmt.Println(id)
			}
			return nil
		},
	}
	existsCmd = &cobra.Command{
		Use:   "exists",
		Short: "Checks whether an identifier is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := manager.Exists(); err != nil {
				return err
			} else {
				fmt.Printf("exists=%t\n", ok)
			}
			return nil
		},
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the UUID version of the stored identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, loaded, err := manager.Version(); err != nil {
				return err
			} else if !loaded {
				fmt.Println("no identifier stored")
			} else {
				fmt.Printf("version=%d\n", v)
			}
			return nil
		},
	}
	createdCmd = &cobra.Command{
		Use:   "created",
		Short: "Prints the identifier creation timestamp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ts, loaded, err := manager.CreatedAt(); err != nil {
				return err
			} else if !loaded {
				fmt.Println("no identifier has been generated yet")
			} else {
				fmt.Println(ts)
			}
			return nil
		},
	}
	updatedCmd = &cobra.Command{
		Use:   "updated",
		Short: "Prints the identifier update timestamp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ts, loaded, err := manager.UpdatedAt(); err != nil {
				return err
			} else if !loaded {
				fmt.Println("identifier has never been regenerated")
			} else {
				fmt.Println(ts)
			}
			return nil
		},
	}
	deleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Deletes the stored identifier and its timestamps",
		Long:  `Deletes the stored identifier and its timestamps. Attributes are left untouched. Caution: this invalidates correlation for every consumer keyed on the configured prefix.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := manager.Delete(); err != nil {
				return err
			} else {
				fmt.Printf("deleted=%t\n", ok)
			}
			return nil
		},
	}
)
