// Package mask formats user input against a compiled pattern while keeping
// track of the caret.
//
// A Mask is compiled once per pattern and is safe for concurrent use. Apply
// is called with the whole proposed text of a field on every edit and never
// fails: characters that do not fit are dropped, missing literals are
// inserted.
//
//	m, err := mask.New("+7 ([000]) [000]-[00]-[00]")
//	res := m.Apply(mask.NewCaretString("9001234567", 10, mask.Forward(false)))
//	// res.FormattedText.Text == "+7 (900) 123-45-67"
//	// res.ExtractedValue     == "9001234567"
package mask

import (
	"github.com/gnoswap-labs/inputmask/internal/caret"
	"github.com/gnoswap-labs/inputmask/internal/compiler"
	"github.com/gnoswap-labs/inputmask/internal/notation"
	"github.com/gnoswap-labs/inputmask/internal/state"
)

type (
	// CaretString is a text value with a caret offset counted in runes.
	CaretString = caret.String
	// Gravity decides how the caret reacts to inserted or removed literals.
	Gravity = caret.Gravity
	// Notation binds a custom pattern character to a character class.
	Notation = notation.Notation
	// CharacterSet decides which runes a notation accepts.
	CharacterSet = notation.CharacterSet
)

var (
	Forward        = caret.Forward
	Backward       = caret.Backward
	NewCaretString = caret.New
)

// Chars builds a character set from an explicit list of runes.
func Chars(s string) CharacterSet { return notation.Chars(s) }

// Class returns a named character class: digit, letter, alphanumeric, hex,
// upper, lower or space.
func Class(name string) (CharacterSet, bool) { return notation.Class(name) }

// Shorthand converts an 'n'-digit grouping pattern ("nnnn nnnn") into
// regular pattern syntax.
func Shorthand(pattern string) string { return compiler.Shorthand(pattern) }

// Result is the outcome of applying a mask to one edit.
type Result struct {
	FormattedText   CaretString
	ExtractedValue  string
	Affinity        int
	Complete        bool
	TailPlaceholder string
}

// Mask is a compiled pattern.
type Mask struct {
	pattern string
	chain   *state.Chain
	rtl     bool
}

// New compiles pattern with the given custom notations. The digit
// shorthand is not recognized here: "nnnn nnnn" compiles to free 'n'
// literals, so pass such patterns through Shorthand first.
func New(pattern string, notations ...Notation) (*Mask, error) {
	c, err := compiler.New(notations...)
	if err != nil {
		return nil, err
	}
	return compile(c, pattern, false)
}

// MustNew is like New but panics on a malformed pattern.
func MustNew(pattern string, notations ...Notation) *Mask {
	m, err := New(pattern, notations...)
	if err != nil {
		panic(err)
	}
	return m
}

// IsValid reports whether pattern compiles.
func IsValid(pattern string, notations ...Notation) bool {
	_, err := New(pattern, notations...)
	return err == nil
}

func compile(c *compiler.Compiler, pattern string, rtl bool) (*Mask, error) {
	source := pattern
	if rtl {
		source = reversedFormat(pattern)
	}
	chain, err := c.Compile(source)
	if err != nil {
		return nil, err
	}
	return &Mask{pattern: pattern, chain: chain, rtl: rtl}, nil
}

// Pattern returns the pattern the mask was compiled from.
func (m *Mask) Pattern() string { return m.pattern }

// RightToLeft reports whether the mask fills from the end of the text.
func (m *Mask) RightToLeft() bool { return m.rtl }

// Apply reformats text and moves its caret accordingly.
func (m *Mask) Apply(text CaretString) Result {
	if m.rtl {
		return m.apply(text.Reversed()).reversed()
	}
	return m.apply(text)
}

func (m *Mask) apply(text CaretString) Result {
	it := caret.NewIterator(text)
	_, caretPos := text.Runes()

	var (
		affinity  int
		extracted []rune
		modified  []rune
		stack     autocompletionStack
		current   = m.chain.Head()
	)

	insertionAffectsCaret := it.InsertionAffectsCaret()
	deletionAffectsCaret := it.DeletionAffectsCaret()
	char, ok := it.Next()

	for ok {
		next, accepted := m.chain.Accept(current, char)
		if !accepted {
			// dropped character
			if deletionAffectsCaret {
				caretPos--
			}
			insertionAffectsCaret = it.InsertionAffectsCaret()
			deletionAffectsCaret = it.DeletionAffectsCaret()
			char, ok = it.Next()
			affinity--
			continue
		}

		if deletionAffectsCaret {
			stack.push(m.chain.Autocomplete(current))
		}
		current = next.State
		if next.Inserts() {
			modified = append(modified, next.Insert)
		}
		if next.Extracts() {
			extracted = append(extracted, next.Value)
		}

		if next.Pass {
			insertionAffectsCaret = it.InsertionAffectsCaret()
			deletionAffectsCaret = it.DeletionAffectsCaret()
			char, ok = it.Next()
			affinity++
		} else {
			if insertionAffectsCaret && next.Inserts() {
				caretPos++
			}
			affinity--
		}
	}

	for text.Gravity.Autocomplete() && insertionAffectsCaret {
		next, ok := m.chain.Autocomplete(current)
		if !ok {
			break
		}
		current = next.State
		if next.Inserts() {
			modified = append(modified, next.Insert)
			caretPos++
		}
		if next.Extracts() {
			extracted = append(extracted, next.Value)
		}
	}

	tailState := current
	var tail []rune
	for text.Gravity.Autoskip() && !stack.empty() {
		skip := stack.pop()
		if len(modified) == caretPos {
			if skip.Inserts() && len(modified) > 0 && modified[len(modified)-1] == skip.Insert {
				modified = modified[:len(modified)-1]
				caretPos--
			}
			if skip.Extracts() && len(extracted) > 0 && extracted[len(extracted)-1] == skip.Value {
				extracted = extracted[:len(extracted)-1]
			}
		} else if skip.Inserts() {
			caretPos--
		}
		tailState = skip.State
		tail = tail[:0]
		if skip.Inserts() {
			tail = append(tail, skip.Insert)
		}
	}

	return Result{
		FormattedText:   caret.New(string(modified), caretPos, text.Gravity),
		ExtractedValue:  string(extracted),
		Affinity:        affinity,
		Complete:        m.noMandatoryLeft(current),
		TailPlaceholder: m.appendPlaceholder(tailState, tail),
	}
}

// autocompletionStack remembers the literals passed right before the caret.
// A state that cannot complete itself breaks the run and clears the stack.
type autocompletionStack []state.Next

func (s *autocompletionStack) push(next state.Next, ok bool) {
	if !ok {
		*s = (*s)[:0]
		return
	}
	*s = append(*s, next)
}

func (s *autocompletionStack) pop() state.Next {
	old := *s
	next := old[len(old)-1]
	*s = old[:len(old)-1]
	return next
}

func (s autocompletionStack) empty() bool { return len(s) == 0 }

func (r Result) reversed() Result {
	return Result{
		FormattedText:   r.FormattedText.Reversed(),
		ExtractedValue:  reverseString(r.ExtractedValue),
		Affinity:        r.Affinity,
		Complete:        r.Complete,
		TailPlaceholder: reverseString(r.TailPlaceholder),
	}
}

func reverseString(s string) string {
	return string(caret.Reverse([]rune(s)))
}
