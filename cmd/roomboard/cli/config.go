package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/erazemk/roomboard/internal/config"
)

// NewConfigCommand prints the effective configuration as YAML, or the
// built-in defaults with --defaults.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, _ := cmd.Flags().GetBool("defaults")

			cfg := config.Default()
			if !defaults {
				loaded, err := config.Load(viper.GetViper())
				if err != nil {
					return err
				}
				cfg = *loaded
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().Bool("defaults", false, "print the built-in defaults instead")

	return cmd
}
