// Package compiler turns a mask pattern into a chain of states.
//
// Pattern alphabet:
//
//	[ ]   optional-value section; inside it
//	        0 mandatory digit      9 optional digit
//	        A mandatory letter     a optional letter
//	        _ mandatory alnum      - optional alnum
//	        … repeat the previous class until the end of input
//	        any registered notation character
//	{ }   fixed literals, kept in the extracted value
//	\     escape the next character
//	other free literals, inserted and removed automatically
package compiler

import (
	"fmt"

	"github.com/gnoswap-labs/inputmask/internal/notation"
	"github.com/gnoswap-labs/inputmask/internal/sanitizer"
	"github.com/gnoswap-labs/inputmask/internal/state"
	"github.com/gnoswap-labs/inputmask/internal/types"
)

const (
	ellipsis = '…'
	escape   = '\\'
	noRune   = rune(-1)
)

// Compiler compiles patterns against a fixed set of notations.
type Compiler struct {
	notations *notation.Registry
}

// New returns a compiler for the given notations.
func New(notations ...notation.Notation) (*Compiler, error) {
	reg, err := notation.NewRegistry(notations...)
	if err != nil {
		return nil, err
	}
	return &Compiler{notations: reg}, nil
}

// Signature identifies the notation set, for cache keys.
func (c *Compiler) Signature() string {
	return c.notations.Signature()
}

// Compile sanitizes pattern and builds its state chain.
func (c *Compiler) Compile(pattern string) (*state.Chain, error) {
	sanitized, err := sanitizer.Sanitize(pattern)
	if err != nil {
		return nil, err
	}

	nodes, err := c.scan(pattern, sanitized)
	if err != nil {
		return nil, err
	}

	// link tail first: every node's child is already in the arena
	b := state.NewBuilder(len(nodes))
	next := state.EOL
	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i].Child = next
		next = b.Add(nodes[i])
	}
	return b.Build(next), nil
}

// scan walks the sanitized pattern once, tracking whether it is inside
// '[...]' or '{...}', and returns one unlinked state per emitting rune.
func (c *Compiler) scan(pattern, sanitized string) ([]state.State, error) {
	var (
		nodes    []state.State
		valuable bool
		fixed    bool
		escaped  bool
		prev     = noRune
	)

	for pos, r := range []rune(sanitized) {
		if !escaped {
			switch r {
			case '[':
				valuable, fixed = true, false
				prev = r
				continue
			case '{':
				valuable, fixed = false, true
				prev = r
				continue
			case ']', '}':
				valuable, fixed = false, false
				prev = r
				continue
			case escape:
				escaped = true
				prev = r
				continue
			}
		}
		escaped = false

		switch {
		case valuable:
			node, err := c.valueState(r, prev)
			if err != nil {
				// positions only map back when sanitizing changed nothing
				if sanitized != pattern {
					pos = -1
				}
				return nil, types.NewFormatError(pattern, pos, err.Error())
			}
			nodes = append(nodes, node)
		case fixed:
			nodes = append(nodes, state.State{Kind: state.KindFixed, Char: r})
		default:
			nodes = append(nodes, state.State{Kind: state.KindFree, Char: r})
		}
		prev = r
	}

	return nodes, nil
}

func (c *Compiler) valueState(r, prev rune) (state.State, error) {
	switch r {
	case '0':
		return value(state.Numeric), nil
	case 'A':
		return value(state.Literal), nil
	case '_':
		return value(state.AlphaNumeric), nil
	case '9':
		return optional(state.Numeric), nil
	case 'a':
		return optional(state.Literal), nil
	case '-':
		return optional(state.AlphaNumeric), nil
	case ellipsis:
		typ, err := c.inheritedType(prev)
		if err != nil {
			return state.State{}, err
		}
		typ.Elliptical = true
		return state.State{Kind: state.KindValue, Type: typ, Char: state.NoChar}, nil
	}

	n, ok := c.notations.Lookup(r)
	if !ok {
		return state.State{}, fmt.Errorf("no notation registered for %q", r)
	}
	typ := state.ValueType{Kind: state.Custom, Notation: n}
	if n.Optional {
		return state.State{Kind: state.KindOptionalValue, Type: typ, Char: state.NoChar}, nil
	}
	return state.State{Kind: state.KindValue, Type: typ, Char: state.NoChar}, nil
}

// inheritedType resolves the class an ellipsis repeats from the character
// right before it.
func (c *Compiler) inheritedType(prev rune) (state.ValueType, error) {
	switch prev {
	case '0', '9':
		return state.ValueType{Kind: state.Numeric}, nil
	case 'A', 'a':
		return state.ValueType{Kind: state.Literal}, nil
	case '_', '-', '[', ellipsis:
		return state.ValueType{Kind: state.AlphaNumeric}, nil
	case noRune:
		return state.ValueType{}, fmt.Errorf("ellipsis has no preceding character")
	}
	if n, ok := c.notations.Lookup(prev); ok {
		return state.ValueType{Kind: state.Custom, Notation: n}, nil
	}
	return state.ValueType{}, fmt.Errorf("ellipsis cannot inherit from %q", prev)
}

func value(kind state.ValueKind) state.State {
	return state.State{Kind: state.KindValue, Type: state.ValueType{Kind: kind}, Char: state.NoChar}
}

func optional(kind state.ValueKind) state.State {
	return state.State{Kind: state.KindOptionalValue, Type: state.ValueType{Kind: kind}, Char: state.NoChar}
}
