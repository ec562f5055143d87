package compiler

import "strings"

// Shorthand rewrites the digit shorthand used by grouping patterns such as
// "nnnn nnnn" or "TRnn nnnn" into regular pattern syntax: every run of 'n'
// becomes one mandatory digit block and every other character is kept as a
// free literal, escaped when it would otherwise be structural.
func Shorthand(pattern string) string {
	var (
		sb  strings.Builder
		run int
	)
	flush := func() {
		if run > 0 {
			sb.WriteByte('[')
			sb.WriteString(strings.Repeat("0", run))
			sb.WriteByte(']')
			run = 0
		}
	}

	for _, r := range pattern {
		if r == 'n' {
			run++
			continue
		}
		flush()
		if strings.ContainsRune(`[]{}\`, r) {
			sb.WriteRune(escape)
		}
		sb.WriteRune(r)
	}
	flush()

	return sb.String()
}
