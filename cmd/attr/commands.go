package attr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [field] [value]",
		Short: "Sets an attribute value",
		Long:  `Sets an attribute value. The value is parsed according to the --type flag: string (default), int, float, bool or list (comma-separated strings).`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			value, err := parseValue(cmd, args[1])
			if err != nil {
				return err
			}
			if err := manager.SetAttribute(field, value); err != nil {
				return err
			} else {
				fmt.Println("set successfully")
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [field]",
		Short: "Reads an attribute value",
		Long:  `Reads an attribute value. Absent and falsy values (0, 0.0, false, "", empty list) both print as unset; use "attr has" to tell them apart.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			if value, err := manager.GetAttribute(field, nil); err != nil {
				return err
			} else if value == nil {
				fmt.Printf("field=%s, unset\n", field)
			} else {
				fmt.Printf("field=%s, value=%v\n", field, value)
			}
			return nil
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [field]",
		Short: "Checks if an attribute key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			if found, err := manager.HasAttribute(field); err != nil {
				return err
			} else {
				fmt.Printf("field=%s, found=%t\n", field, found)
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [field]",
		Short: "Deletes an attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			if err := manager.DeleteAttribute(field); err != nil {
				return err
			} else {
				fmt.Println("delete successfully")
			}
			return nil
		},
	}
)

func init() {
	setCmd.Flags().String("type", "string", "Value type (string, int, float, bool, list)")
}

// parseValue converts the raw CLI argument into the typed attribute value
func parseValue(cmd *cobra.Command, raw string) (any, error) {
	valueType, _ := cmd.Flags().GetString("type")
	switch valueType {
	case "string":
		return raw, nil
	case "int":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer: %w", err)
		}
		return v, nil
	case "float":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("value must be a float: %w", err)
		}
		return v, nil
	case "bool":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("value must be a bool: %w", err)
		}
		return v, nil
	case "list":
		if raw == "" {
			return []string{}, nil
		}
		return strings.Split(raw, ","), nil
	default:
		return nil, fmt.Errorf("invalid value type %s (expected one of: string, int, float, bool, list)", valueType)
	}
}
