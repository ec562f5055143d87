package state

import (
	"testing"

	"github.com/gnoswap-labs/inputmask/internal/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainOf links the given states in order, tail first.
func chainOf(states ...State) *Chain {
	b := NewBuilder(len(states))
	next := EOL
	for i := len(states) - 1; i >= 0; i-- {
		s := states[i]
		s.Child = next
		next = b.Add(s)
	}
	return b.Build(next)
}

func TestAcceptFixedAndFree(t *testing.T) {
	c := chainOf(State{Kind: KindFixed, Char: 'T'}, State{Kind: KindFree, Char: '-'})
	head := c.Head()

	next, ok := c.Accept(head, 'T')
	require.True(t, ok)
	assert.Equal(t, Next{State: c.Child(head), Insert: 'T', Pass: true, Value: 'T'}, next)

	next, ok = c.Accept(head, 'x')
	require.True(t, ok)
	assert.False(t, next.Pass)
	assert.Equal(t, 'T', next.Insert)
	assert.Equal(t, 'T', next.Value)

	free := c.Child(head)
	next, ok = c.Accept(free, '-')
	require.True(t, ok)
	assert.True(t, next.Pass)
	assert.False(t, next.Extracts())

	next, ok = c.Accept(free, '5')
	require.True(t, ok)
	assert.False(t, next.Pass)
	assert.Equal(t, '-', next.Insert)
	assert.Equal(t, EOL, next.State)
}

func TestAcceptValue(t *testing.T) {
	c := chainOf(
		State{Kind: KindValue, Type: ValueType{Kind: Numeric}},
		State{Kind: KindOptionalValue, Type: ValueType{Kind: Literal}},
	)
	head := c.Head()

	_, ok := c.Accept(head, 'x')
	assert.False(t, ok)

	next, ok := c.Accept(head, '7')
	require.True(t, ok)
	assert.Equal(t, Next{State: c.Child(head), Insert: '7', Pass: true, Value: '7'}, next)

	opt := c.Child(head)
	next, ok = c.Accept(opt, 'q')
	require.True(t, ok)
	assert.True(t, next.Pass)

	next, ok = c.Accept(opt, '1')
	require.True(t, ok, "optional slots skip instead of rejecting")
	assert.False(t, next.Pass)
	assert.False(t, next.Inserts())
	assert.Equal(t, EOL, next.State)
}

func TestAcceptElliptical(t *testing.T) {
	c := chainOf(State{Kind: KindValue, Type: ValueType{Kind: AlphaNumeric, Elliptical: true}})
	head := c.Head()
	for _, r := range "abc123" {
		next, ok := c.Accept(head, r)
		require.True(t, ok)
		assert.Equal(t, head, next.State)
	}
	_, ok := c.Accept(head, ' ')
	assert.False(t, ok)
}

func TestAcceptCustom(t *testing.T) {
	hex := notation.Notation{Character: 'H', Set: notation.Chars("0123456789abcdef")}
	c := chainOf(State{Kind: KindValue, Type: ValueType{Kind: Custom, Notation: hex}})

	_, ok := c.Accept(c.Head(), 'f')
	assert.True(t, ok)
	_, ok = c.Accept(c.Head(), 'g')
	assert.False(t, ok)
	assert.Equal(t, 'H', c.At(c.Head()).Type.Placeholder())
}

func TestEOL(t *testing.T) {
	c := chainOf()
	assert.Equal(t, EOL, c.Head())
	assert.Equal(t, EOL, c.Child(EOL))
	assert.Equal(t, 0, c.Len())

	_, ok := c.Accept(EOL, 'a')
	assert.False(t, ok)
	_, ok = c.Autocomplete(EOL)
	assert.False(t, ok)
}

func TestAutocomplete(t *testing.T) {
	c := chainOf(
		State{Kind: KindFixed, Char: '+'},
		State{Kind: KindFree, Char: ' '},
		State{Kind: KindValue, Type: ValueType{Kind: Numeric}},
	)
	head := c.Head()

	next, ok := c.Autocomplete(head)
	require.True(t, ok)
	assert.Equal(t, '+', next.Insert)
	assert.Equal(t, '+', next.Value)

	next, ok = c.Autocomplete(next.State)
	require.True(t, ok)
	assert.Equal(t, ' ', next.Insert)
	assert.False(t, next.Extracts())

	_, ok = c.Autocomplete(next.State)
	assert.False(t, ok)
}

func TestChainString(t *testing.T) {
	c := chainOf(
		State{Kind: KindFree, Char: '('},
		State{Kind: KindValue, Type: ValueType{Kind: Numeric, Elliptical: true}},
	)
	assert.Equal(t, `Free('(') -> Value(numeric…) -> EOL`, c.String())
	assert.Equal(t, 2, c.Len())
}

func TestBuilderRejectsForwardChild(t *testing.T) {
	b := NewBuilder(1)
	assert.Panics(t, func() { b.Add(State{Kind: KindFree, Char: 'x', Child: 5}) })
}
