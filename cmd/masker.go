package cmd

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/gnoswap-labs/inputmask/internal/config"
	"github.com/gnoswap-labs/inputmask/mask"
)

var errNoPattern = errors.New("a PATTERN argument or --mask is required")

// maskFlags selects a mask either by name from the config file or from a
// pattern given on the command line.
type maskFlags struct {
	name      string
	rtl       bool
	shorthand bool
	affine    []string
	strategy  string
}

func (f *maskFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.name, "mask", "m", "", "Use the named mask from the config file instead of a PATTERN argument")
	fs.BoolVar(&f.rtl, "rtl", false, "Compile the pattern right to left")
	fs.BoolVar(&f.shorthand, "shorthand", false, "Treat each run of 'n' as a block of digits")
	fs.StringSliceVar(&f.affine, "affine", nil, "Affine patterns competing with the primary one")
	fs.StringVar(&f.strategy, "strategy", "", "Affinity strategy: whole-string, prefix, capacity or extracted-value-capacity")
}

// selector builds the masker and returns the arguments left after the
// pattern.
func (f *maskFlags) selector(args []string) (*mask.Selector, []string, error) {
	if f.name != "" {
		file, err := config.Load(cfgFile)
		if err != nil {
			return nil, nil, err
		}
		sel, err := file.Build(cache, f.name)
		return sel, args, err
	}

	if len(args) == 0 {
		return nil, nil, errNoPattern
	}
	spec := config.MaskSpec{
		Pattern:   args[0],
		Shorthand: f.shorthand,
		RTL:       f.rtl,
		Affine:    f.affine,
		Strategy:  f.strategy,
	}
	sel, err := spec.Build(cache)
	return sel, args[1:], err
}
