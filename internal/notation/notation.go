// Package notation holds user-defined placeholder characters that extend
// the built-in pattern alphabet.
package notation

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gnoswap-labs/inputmask/internal/types"
)

// reserved characters are part of the pattern syntax and cannot be
// rebound by a notation.
const reserved = "09Aa_-…[]{}\\"

// CharacterSet decides membership of a single rune.
type CharacterSet interface {
	Contains(r rune) bool
}

// SetFunc adapts a predicate to CharacterSet.
type SetFunc func(r rune) bool

func (f SetFunc) Contains(r rune) bool { return f(r) }

// Chars is a CharacterSet made of an explicit list of characters.
type Chars string

func (c Chars) Contains(r rune) bool { return strings.ContainsRune(string(c), r) }

var classes = map[string]CharacterSet{
	"digit":        SetFunc(unicode.IsDigit),
	"letter":       SetFunc(unicode.IsLetter),
	"alphanumeric": SetFunc(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }),
	"hex":          Chars("0123456789abcdefABCDEF"),
	"upper":        SetFunc(unicode.IsUpper),
	"lower":        SetFunc(unicode.IsLower),
	"space":        SetFunc(unicode.IsSpace),
}

// Class returns a named character class such as "digit" or "hex".
func Class(name string) (CharacterSet, bool) {
	set, ok := classes[strings.ToLower(name)]
	return set, ok
}

// ClassNames lists the names accepted by Class.
func ClassNames() []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Notation binds a pattern character to a character class.
type Notation struct {
	Character rune
	Set       CharacterSet
	Optional  bool
}

// Registry is a lookup table of notations keyed by their character.
type Registry struct {
	byChar map[rune]Notation
	order  []rune
}

// NewRegistry builds a registry and fails on a reserved or repeated character.
func NewRegistry(notations ...Notation) (*Registry, error) {
	reg := &Registry{byChar: make(map[rune]Notation, len(notations))}
	for _, n := range notations {
		if err := reg.add(n); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (r *Registry) add(n Notation) error {
	if n.Set == nil {
		return fmt.Errorf("notation %q: %w", n.Character, types.ErrMalformed)
	}
	if strings.ContainsRune(reserved, n.Character) {
		return fmt.Errorf("notation %q shadows a pattern character: %w", n.Character, types.ErrMalformed)
	}
	if _, dup := r.byChar[n.Character]; dup {
		return fmt.Errorf("notation %q registered twice: %w", n.Character, types.ErrMalformed)
	}
	r.byChar[n.Character] = n
	r.order = append(r.order, n.Character)
	return nil
}

// Lookup finds the notation registered for c.
func (r *Registry) Lookup(c rune) (Notation, bool) {
	if r == nil {
		return Notation{}, false
	}
	n, ok := r.byChar[c]
	return n, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Signature identifies the registered characters and their optionality in
// registration order. Two registries with the same signature are assumed to
// bind the same classes.
func (r *Registry) Signature() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for _, c := range r.order {
		sb.WriteRune(c)
		if r.byChar[c].Optional {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
