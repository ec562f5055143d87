package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/inputmask/internal/watch"
)

// watchCmd: inputmask watch
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run check whenever the config file changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		reload := func() error {
			cache.Purge()
			return runCheck(out, cfgFile)
		}
		if err := reload(); err != nil {
			logger.Warn("Initial check failed", zap.Error(err))
		}

		w, err := watch.New(cfgFile, logger, reload)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		logger.Info("Watching config", zap.String("path", cfgFile))
		return w.Run(ctx)
	},
}
