package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjglira/go-supportcode/internal/config"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the supportcode.yaml configuration file",
		Long:  `Loads the configuration file and checks for errors, missing required fields, and invalid values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := a.configure(cfg); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %q is valid.\n", a.cfgFile)
			a.log.Debugf("Loaded config: %+v", cfg)
			return nil
		},
	}
}
