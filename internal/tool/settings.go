package tool

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/pkg/settings"
)

// newSettingsCmd manages the persistent user settings shared by all
// sensorctl tools.
func (t *Tool) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Short:   "Manage persistent settings",
		GroupID: "meta",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return err
			}
			fmt.Printf("env: %s\n", s.GetEnv())
			if s.ProfilePath != "" {
				fmt.Printf("profiles: %s\n", s.ProfilePath)
			}
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting (env, profiles)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return err
			}
			switch args[0] {
			case "env":
				s.SetEnv(args[1])
			case "profiles":
				s.SetProfilePath(args[1])
			default:
				return fmt.Errorf("unknown setting %q (valid: env, profiles)", args[0])
			}
			return s.Save()
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset all settings to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &settings.Settings{}
			return s.Save()
		},
	}

	cmd.AddCommand(showCmd, setCmd, clearCmd)
	return cmd
}
