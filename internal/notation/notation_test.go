package notation

import (
	"errors"
	"testing"

	"github.com/gnoswap-labs/inputmask/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	hex, ok := Class("hex")
	require.True(t, ok)

	reg, err := NewRegistry(
		Notation{Character: 'H', Set: hex},
		Notation{Character: 'h', Set: hex, Optional: true},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, "Hh?", reg.Signature())

	n, ok := reg.Lookup('h')
	require.True(t, ok)
	assert.True(t, n.Optional)
	assert.True(t, n.Set.Contains('f'))
	assert.False(t, n.Set.Contains('g'))

	_, ok = reg.Lookup('x')
	assert.False(t, ok)
}

func TestRegistryRejects(t *testing.T) {
	digit, _ := Class("digit")
	tests := []struct {
		name      string
		notations []Notation
	}{
		{"duplicate", []Notation{{Character: 'x', Set: digit}, {Character: 'x', Set: digit}}},
		{"reserved", []Notation{{Character: '0', Set: digit}}},
		{"bracket", []Notation{{Character: '[', Set: digit}}},
		{"nil set", []Notation{{Character: 'x'}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.notations...)
			assert.True(t, errors.Is(err, types.ErrMalformed))
		})
	}
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	_, ok := reg.Lookup('a')
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, "", reg.Signature())
}

func TestClasses(t *testing.T) {
	for _, name := range ClassNames() {
		_, ok := Class(name)
		assert.True(t, ok, name)
	}
	upper, _ := Class("UPPER")
	assert.True(t, upper.Contains('Q'))
	assert.False(t, upper.Contains('q'))

	_, ok := Class("emoji")
	assert.False(t, ok)

	assert.True(t, Chars("xyz").Contains('y'))
}
