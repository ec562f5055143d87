package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/inputmask/formatter"
	"github.com/gnoswap-labs/inputmask/mask"
)

var (
	applyMask         maskFlags
	applyCaret        int
	applyBackward     bool
	applyAutocomplete bool
	applyAutoskip     bool
	applyJSON         bool
)

// applyCmd: inputmask apply [PATTERN] TEXT
var applyCmd = &cobra.Command{
	Use:   "apply [PATTERN] TEXT",
	Short: "Apply a mask to a text and print the result",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, rest, err := applyMask.selector(args)
		if err != nil {
			return err
		}
		if len(rest) != 1 {
			return errors.New("expected exactly one TEXT argument")
		}
		text := rest[0]

		caretPos := applyCaret
		if caretPos < 0 {
			caretPos = utf8.RuneCountInString(text)
		}
		gravity := mask.Forward(applyAutocomplete)
		if applyBackward {
			gravity = mask.Backward(applyAutoskip)
		}

		r := sel.Apply(mask.NewCaretString(text, caretPos, gravity))
		if applyJSON {
			return writeJSON(cmd, text, r)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(text, r))
		return nil
	},
}

type jsonResult struct {
	Input           string `json:"input"`
	Formatted       string `json:"formatted"`
	Caret           int    `json:"caret"`
	Value           string `json:"value"`
	Complete        bool   `json:"complete"`
	Affinity        int    `json:"affinity"`
	TailPlaceholder string `json:"tail_placeholder"`
}

func writeJSON(cmd *cobra.Command, input string, r mask.Result) error {
	d, err := json.Marshal(jsonResult{
		Input:           input,
		Formatted:       r.FormattedText.Text,
		Caret:           r.FormattedText.Caret,
		Value:           r.ExtractedValue,
		Complete:        r.Complete,
		Affinity:        r.Affinity,
		TailPlaceholder: r.TailPlaceholder,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(d))
	return nil
}

func init() {
	applyMask.register(applyCmd.Flags())
	applyCmd.Flags().IntVar(&applyCaret, "caret", -1, "Caret position in runes (default: end of text)")
	applyCmd.Flags().BoolVar(&applyBackward, "backward", false, "Apply with backward gravity, as after a deletion")
	applyCmd.Flags().BoolVar(&applyAutocomplete, "autocomplete", true, "Append upcoming literals (forward gravity)")
	applyCmd.Flags().BoolVar(&applyAutoskip, "autoskip", false, "Skip literals before the caret (backward gravity)")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "Print the result as JSON")
}
