package state

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gnoswap-labs/inputmask/internal/notation"
)

/*
Arena-based state chain

A compiled pattern is a singly linked list of states, one per pattern
position, ending in an end-of-line sentinel. States live in one slice and
refer to their child by index:

  - index 0 is always the EOL state and its child is itself, so walks never
    meet a nil successor;
  - every other state has exactly one child with a smaller index, because
    the chain is built tail first;
  - a Chain is never mutated after Build, so it can be shared freely.
*/

// Index addresses a state inside a Chain.
type Index int

// EOL is the end-of-line sentinel present in every chain.
const EOL Index = 0

// Kind enumerates the closed set of state variants.
type Kind uint8

const (
	KindEOL           Kind = iota // terminal, rejects everything
	KindFixed                     // literal that is part of the value
	KindFree                      // decorative literal, not part of the value
	KindValue                     // mandatory value slot
	KindOptionalValue             // value slot that may stay empty
)

func (k Kind) String() string {
	switch k {
	case KindEOL:
		return "EOL"
	case KindFixed:
		return "Fixed"
	case KindFree:
		return "Free"
	case KindValue:
		return "Value"
	case KindOptionalValue:
		return "OptionalValue"
	default:
		return "unknown"
	}
}

// ValueKind is the character class of a value slot.
type ValueKind uint8

const (
	Numeric ValueKind = iota
	Literal
	AlphaNumeric
	Custom
)

func (k ValueKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Literal:
		return "literal"
	case AlphaNumeric:
		return "alphanumeric"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// ValueType describes what a value slot accepts. An elliptical slot
// accepts its class forever and never advances.
type ValueType struct {
	Kind       ValueKind
	Elliptical bool
	Notation   notation.Notation // only for Custom
}

// Accepts reports whether r belongs to the slot's class.
func (t ValueType) Accepts(r rune) bool {
	switch t.Kind {
	case Numeric:
		return unicode.IsDigit(r)
	case Literal:
		return unicode.IsLetter(r)
	case AlphaNumeric:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case Custom:
		return t.Notation.Set != nil && t.Notation.Set.Contains(r)
	}
	return false
}

// Placeholder is the ghost character shown for an empty slot.
func (t ValueType) Placeholder() rune {
	switch t.Kind {
	case Numeric:
		return '0'
	case Literal:
		return 'a'
	case AlphaNumeric:
		return '-'
	case Custom:
		return t.Notation.Character
	}
	return NoChar
}

func (t ValueType) String() string {
	s := t.Kind.String()
	if t.Kind == Custom {
		s += "(" + string(t.Notation.Character) + ")"
	}
	if t.Elliptical {
		s += "…"
	}
	return s
}

// State is one node of the chain. Char is set for Fixed and Free, Type for
// Value and OptionalValue.
type State struct {
	Kind  Kind
	Char  rune
	Type  ValueType
	Child Index
}

// NoChar marks an absent rune in Next.
const NoChar rune = -1

// Next is the outcome of feeding one character to a state, or of letting a
// state complete itself.
type Next struct {
	State  Index
	Insert rune // rune appended to the output, NoChar for none
	Pass   bool // input character consumed
	Value  rune // rune appended to the extracted value, NoChar for none
}

func (n Next) Inserts() bool  { return n.Insert != NoChar }
func (n Next) Extracts() bool { return n.Value != NoChar }

// Chain is an immutable compiled pattern.
type Chain struct {
	states []State
	head   Index
}

func (c *Chain) Head() Index         { return c.head }
func (c *Chain) At(i Index) State    { return c.states[i] }
func (c *Chain) Child(i Index) Index { return c.states[i].Child }

// Len counts the states reachable from the head, EOL excluded.
func (c *Chain) Len() int {
	n := 0
	for i := c.head; i != EOL; i = c.states[i].Child {
		n++
	}
	return n
}

// Accept feeds r to state i. The boolean is false when the state rejects r
// outright.
func (c *Chain) Accept(i Index, r rune) (Next, bool) {
	s := c.states[i]
	switch s.Kind {
	case KindFixed:
		if s.Char == r {
			return Next{State: s.Child, Insert: r, Pass: true, Value: r}, true
		}
		return Next{State: s.Child, Insert: s.Char, Pass: false, Value: s.Char}, true
	case KindFree:
		if s.Char == r {
			return Next{State: s.Child, Insert: r, Pass: true, Value: NoChar}, true
		}
		return Next{State: s.Child, Insert: s.Char, Pass: false, Value: NoChar}, true
	case KindValue:
		if !s.Type.Accepts(r) {
			return Next{}, false
		}
		next := s.Child
		if s.Type.Elliptical {
			next = i
		}
		return Next{State: next, Insert: r, Pass: true, Value: r}, true
	case KindOptionalValue:
		if s.Type.Accepts(r) {
			return Next{State: s.Child, Insert: r, Pass: true, Value: r}, true
		}
		return Next{State: s.Child, Insert: NoChar, Pass: false, Value: NoChar}, true
	case KindEOL:
		return Next{}, false
	}
	panic(fmt.Sprintf("state: unhandled kind %d", s.Kind))
}

// Autocomplete returns what state i would emit without any input. Only
// literal states complete themselves.
func (c *Chain) Autocomplete(i Index) (Next, bool) {
	s := c.states[i]
	switch s.Kind {
	case KindFixed:
		return Next{State: s.Child, Insert: s.Char, Pass: false, Value: s.Char}, true
	case KindFree:
		return Next{State: s.Child, Insert: s.Char, Pass: false, Value: NoChar}, true
	case KindValue, KindOptionalValue, KindEOL:
		return Next{}, false
	}
	panic(fmt.Sprintf("state: unhandled kind %d", s.Kind))
}

// String renders the chain one state per arrow, for debugging.
func (c *Chain) String() string {
	var parts []string
	for i := c.head; i != EOL; i = c.states[i].Child {
		s := c.states[i]
		switch s.Kind {
		case KindFixed, KindFree:
			parts = append(parts, fmt.Sprintf("%s(%q)", s.Kind, s.Char))
		default:
			parts = append(parts, fmt.Sprintf("%s(%s)", s.Kind, s.Type))
		}
	}
	parts = append(parts, KindEOL.String())
	return strings.Join(parts, " -> ")
}

// Builder appends states to an arena. Children must be added before their
// parents.
type Builder struct {
	states []State
}

func NewBuilder(capacity int) *Builder {
	b := &Builder{states: make([]State, 0, capacity+1)}
	b.states = append(b.states, State{Kind: KindEOL, Char: NoChar, Child: EOL})
	return b
}

// Add stores s and returns its index.
func (b *Builder) Add(s State) Index {
	if s.Child < 0 || int(s.Child) >= len(b.states) {
		panic(fmt.Sprintf("state: child %d not in arena", s.Child))
	}
	b.states = append(b.states, s)
	return Index(len(b.states) - 1)
}

// Build freezes the arena with head as the first state.
func (b *Builder) Build(head Index) *Chain {
	states := b.states
	b.states = nil
	return &Chain{states: states, head: head}
}
