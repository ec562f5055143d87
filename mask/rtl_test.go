package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReversedFormat(t *testing.T) {
	tests := []struct {
		pattern  string
		expected string
	}{
		{"[000],[000]", "[000],[000]"},
		{"$[000]", "[000]$"},
		{"{TR}[00]", "[00]{RT}"},
		{`\[[00]`, `[00]\[`},
		{`[0]\\`, `\\[0]`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, reversedFormat(tt.pattern), tt.pattern)
	}
}

func TestRTLApply(t *testing.T) {
	m, err := NewRTL("[000],[000]")
	require.NoError(t, err)
	assert.True(t, m.RightToLeft())
	assert.Equal(t, "[000],[000]", m.Pattern())

	res := m.Apply(NewCaretString("1234", 4, Forward(false)))
	assert.Equal(t, "1,234", res.FormattedText.Text)
	assert.Equal(t, 5, res.FormattedText.Caret)
	assert.Equal(t, "1234", res.ExtractedValue)
	assert.False(t, res.Complete)
	assert.Equal(t, "00", res.TailPlaceholder)
}

func TestRTLPlaceholder(t *testing.T) {
	m, err := NewRTL("$[000]")
	require.NoError(t, err)
	assert.Equal(t, "$000", m.Placeholder())

	res := m.Apply(NewCaretString("123", 3, Forward(false)))
	assert.Equal(t, "123", res.FormattedText.Text)
	assert.True(t, res.Complete)
}

func TestRTLMalformed(t *testing.T) {
	_, err := NewRTL("[00")
	assert.Error(t, err)
}
