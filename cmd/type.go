package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/inputmask/formatter"
	"github.com/gnoswap-labs/inputmask/mask"
)

// backspaceKey deletes the rune before the caret when replaying keys.
const backspaceKey = "BS"

var (
	typeMask         maskFlags
	typeAutocomplete bool
	typeAutoskip     bool
)

// typeCmd: inputmask type [PATTERN] KEYS...
var typeCmd = &cobra.Command{
	Use:   "type [PATTERN] KEYS...",
	Short: "Replay keystrokes through a masked field",
	Long: `Replay keystrokes through a masked field and print the field after each one.
Each KEY is typed at the caret; the key BS deletes the rune before the caret.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, keys, err := typeMask.selector(args)
		if err != nil {
			return err
		}

		field := mask.NewField(sel, typeAutocomplete, typeAutoskip)
		out := cmd.OutOrStdout()
		for i, key := range keys {
			var r mask.Result
			if key == backspaceKey {
				r = field.Backspace()
			} else {
				r = field.Type(key)
			}
			fmt.Fprint(out, formatter.FormatStep(fmt.Sprintf("step %d", i+1), key, r))
		}
		return nil
	},
}

func init() {
	typeMask.register(typeCmd.Flags())
	typeCmd.Flags().BoolVar(&typeAutocomplete, "autocomplete", true, "Append upcoming literals while typing")
	typeCmd.Flags().BoolVar(&typeAutoskip, "autoskip", false, "Skip literals on backspace")
}
