package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/inputmask/formatter"
	"github.com/gnoswap-labs/inputmask/internal/config"
)

// checkCmd: inputmask check
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile every mask in the config file and report malformed patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.OutOrStdout(), cfgFile)
	},
}

func runCheck(out io.Writer, path string) error {
	file, err := config.Load(path)
	if err != nil {
		logger.Error("Error loading config", zap.String("path", path), zap.Error(err))
		return err
	}

	failed := 0
	for _, name := range file.MaskNames() {
		if _, err := file.Build(cache, name); err != nil {
			logger.Error("Malformed mask", zap.String("mask", name), zap.Error(err))
			fmt.Fprint(out, formatter.FormatError(name, err))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d masks failed to compile", failed, len(file.Masks))
	}
	fmt.Fprintf(out, "%d masks OK in %s\n", len(file.Masks), path)
	return nil
}
