package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/inputmask/formatter"
)

var placeholderMask maskFlags

// placeholderCmd: inputmask placeholder [PATTERN]
var placeholderCmd = &cobra.Command{
	Use:   "placeholder [PATTERN]",
	Short: "Print the placeholder and length limits of a mask",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, _, err := placeholderMask.selector(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, formatter.FormatPlaceholder(sel.Primary))
		for _, m := range sel.Affine {
			fmt.Fprint(out, formatter.FormatPlaceholder(m))
		}
		return nil
	},
}

func init() {
	placeholderMask.register(placeholderCmd.Flags())
}
