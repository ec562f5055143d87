package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/inputmask/internal/config"
	"github.com/gnoswap-labs/inputmask/mask"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
	cache  *mask.Cache
)

var rootCmd = &cobra.Command{
	Use:               "inputmask",
	Short:             "inputmask - format and validate text against input masks",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	cache = mask.NewCache(logger)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "Path to the mask definition file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for batch processing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(placeholderCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(batchCmd)
}
