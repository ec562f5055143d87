// Package config loads named mask definitions from a YAML or TOML file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/inputmask/internal/notation"
	"github.com/gnoswap-labs/inputmask/mask"
)

// DefaultPath is where the CLI looks for mask definitions.
const DefaultPath = ".inputmask.yaml"

// NotationSpec declares a custom placeholder character. Exactly one of
// Class and Characters is set.
type NotationSpec struct {
	Character  string `yaml:"character" toml:"character"`
	Class      string `yaml:"class,omitempty" toml:"class,omitempty"`
	Characters string `yaml:"characters,omitempty" toml:"characters,omitempty"`
	Optional   bool   `yaml:"optional,omitempty" toml:"optional,omitempty"`
}

// MaskSpec declares one named mask.
type MaskSpec struct {
	Pattern   string   `yaml:"pattern" toml:"pattern"`
	Shorthand bool     `yaml:"shorthand,omitempty" toml:"shorthand,omitempty"`
	RTL       bool     `yaml:"rtl,omitempty" toml:"rtl,omitempty"`
	Affine    []string `yaml:"affine,omitempty" toml:"affine,omitempty"`
	Strategy  string   `yaml:"strategy,omitempty" toml:"strategy,omitempty"`
}

// File is the whole configuration document.
type File struct {
	Name      string              `yaml:"name" toml:"name"`
	Notations []NotationSpec      `yaml:"notations,omitempty" toml:"notations,omitempty"`
	Masks     map[string]MaskSpec `yaml:"masks" toml:"masks"`
}

// Load reads path, decoding TOML for a .toml extension and YAML otherwise.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &f, nil
}

// Marshal encodes f in the format implied by path.
func Marshal(path string, f *File) ([]byte, error) {
	if filepath.Ext(path) == ".toml" {
		return toml.Marshal(f)
	}
	return yaml.Marshal(f)
}

// Sample is the document written by `inputmask init`.
func Sample() *File {
	return &File{
		Name: "inputmask",
		Notations: []NotationSpec{
			{Character: "H", Class: "hex"},
		},
		Masks: map[string]MaskSpec{
			"card": {
				Pattern:  "[0000] [0000] [0000] [0000]",
				Affine:   []string{"[0000] [000000] [00000]"},
				Strategy: mask.WholeString.String(),
			},
			"phone": {Pattern: "nnn nnn nn nn", Shorthand: true},
			"iban_tr": {
				Pattern:   "TRnn nnnn nnnn nnnn nnnn nnnn nn",
				Shorthand: true,
			},
			"amount": {Pattern: "[000],[000],[000]", RTL: true},
			"color":  {Pattern: "#[HHHHHH]"},
		},
	}
}

// MaskNames returns the declared mask names in sorted order.
func (f *File) MaskNames() []string {
	names := make([]string, 0, len(f.Masks))
	for name := range f.Masks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildNotations converts the declared notations.
func (f *File) BuildNotations() ([]mask.Notation, error) {
	notations := make([]mask.Notation, 0, len(f.Notations))
	for i, spec := range f.Notations {
		n, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("notation #%d: %w", i+1, err)
		}
		notations = append(notations, n)
	}
	return notations, nil
}

func (s NotationSpec) build() (mask.Notation, error) {
	if utf8.RuneCountInString(s.Character) != 1 {
		return mask.Notation{}, fmt.Errorf("character %q must be a single rune", s.Character)
	}
	r, _ := utf8.DecodeRuneInString(s.Character)

	var set mask.CharacterSet
	switch {
	case s.Class != "" && s.Characters != "":
		return mask.Notation{}, fmt.Errorf("notation %q sets both class and characters", s.Character)
	case s.Class != "":
		cs, ok := notation.Class(s.Class)
		if !ok {
			return mask.Notation{}, fmt.Errorf("notation %q: unknown class %q (want one of %v)", s.Character, s.Class, notation.ClassNames())
		}
		set = cs
	case s.Characters != "":
		set = notation.Chars(s.Characters)
	default:
		return mask.Notation{}, fmt.Errorf("notation %q needs a class or characters", s.Character)
	}

	return mask.Notation{Character: r, Set: set, Optional: s.Optional}, nil
}

// Build compiles one named mask through cache.
func (f *File) Build(cache *mask.Cache, name string) (*mask.Selector, error) {
	spec, ok := f.Masks[name]
	if !ok {
		return nil, fmt.Errorf("mask %q is not defined", name)
	}
	notations, err := f.BuildNotations()
	if err != nil {
		return nil, err
	}
	sel, err := spec.Build(cache, notations...)
	if err != nil {
		return nil, fmt.Errorf("mask %q: %w", name, err)
	}
	return sel, nil
}

// BuildAll compiles every mask and returns them by name. Compilation stops
// at the first malformed mask in name order.
func (f *File) BuildAll(cache *mask.Cache) (map[string]*mask.Selector, error) {
	selectors := make(map[string]*mask.Selector, len(f.Masks))
	for _, name := range f.MaskNames() {
		sel, err := f.Build(cache, name)
		if err != nil {
			return nil, err
		}
		selectors[name] = sel
	}
	return selectors, nil
}

// Build compiles the primary and affine patterns of the mask.
func (s MaskSpec) Build(cache *mask.Cache, notations ...mask.Notation) (*mask.Selector, error) {
	strategy, err := mask.ParseStrategy(s.Strategy)
	if err != nil {
		return nil, err
	}

	primary, err := s.compile(cache, s.Pattern, notations)
	if err != nil {
		return nil, err
	}
	sel := &mask.Selector{Primary: primary, Strategy: strategy}
	for _, pattern := range s.Affine {
		m, err := s.compile(cache, pattern, notations)
		if err != nil {
			return nil, fmt.Errorf("affine: %w", err)
		}
		sel.Affine = append(sel.Affine, m)
	}
	return sel, nil
}

func (s MaskSpec) compile(cache *mask.Cache, pattern string, notations []mask.Notation) (*mask.Mask, error) {
	if s.Shorthand {
		pattern = mask.Shorthand(pattern)
	}
	if s.RTL {
		return cache.GetRTL(pattern, notations...)
	}
	return cache.Get(pattern, notations...)
}
