package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/inputmask/internal/config"
)

var initForce bool

// initCmd: inputmask init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample mask definition file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigurationFile(cfgFile, initForce); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", cfgFile)
		return nil
	},
}

func initConfigurationFile(path string, force bool) error {
	if path == "" {
		path = config.DefaultPath
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	d, err := config.Marshal(path, config.Sample())
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
}
