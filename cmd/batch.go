package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/inputmask/batch"
)

var (
	batchMask     maskFlags
	batchPattern  string
	batchField    string
	batchJSON     bool
	batchOutPath  string
	batchProgress bool
)

// batchCmd: inputmask batch PATHS...
var batchCmd = &cobra.Command{
	Use:   "batch PATHS...",
	Short: "Mask every line of .txt and .jsonl files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maskArgs []string
		if batchPattern != "" {
			maskArgs = []string{batchPattern}
		} else if batchMask.name == "" {
			return errors.New("either --mask or --pattern is required")
		}
		sel, _, err := batchMask.selector(maskArgs)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		opts := batch.Options{Field: batchField}
		if batchProgress {
			opts.Progress = cmd.ErrOrStderr()
		}

		records, err := batch.ProcessFiles(ctx, logger, sel, args, opts, batch.ProcessFile)
		if err != nil {
			return err
		}

		incomplete := 0
		for _, r := range records {
			if !r.Complete && !r.Missing {
				incomplete++
			}
		}
		logger.Info("Batch finished", zap.Int("records", len(records)), zap.Int("incomplete", incomplete))

		out := cmd.OutOrStdout()
		if batchOutPath != "" {
			f, err := os.Create(batchOutPath)
			if err != nil {
				logger.Error("Error creating output file", zap.Error(err))
				return err
			}
			defer f.Close()
			out = f
		}
		return writeRecords(out, records, batchJSON)
	},
}

func writeRecords(w io.Writer, records []batch.Record, asJSON bool) error {
	if asJSON {
		return batch.WriteJSON(w, records)
	}
	return batch.WriteOutput(w, records)
}

func init() {
	batchMask.register(batchCmd.Flags())
	batchCmd.Flags().StringVarP(&batchPattern, "pattern", "p", "", "Pattern to apply when --mask is not set")
	batchCmd.Flags().StringVar(&batchField, "field", "", "JSON path of the value to mask in .jsonl records")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Print one JSON report object per record")
	batchCmd.Flags().StringVarP(&batchOutPath, "output", "o", "", "Write output to a file instead of stdout")
	batchCmd.Flags().BoolVar(&batchProgress, "progress", false, "Show a progress bar on stderr for directories")
}
