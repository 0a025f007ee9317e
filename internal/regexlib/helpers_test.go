package regexlib

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func compileDFA(t *testing.T, pattern string, opts ...Option) *DFA {
	t.Helper()
	d, err := CompileRegex(pattern, opts...)
	require.NoError(t, err, "compile %q", pattern)
	return d
}

// wordsUpTo lists every word over alphabet of length 0..n.
func wordsUpTo(alphabet []rune, n int) []string {
	out := []string{""}
	layer := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range layer {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

func requireSameVerdicts(t *testing.T, want, got *DFA, words []string) {
	t.Helper()
	for _, w := range words {
		require.Equal(t, want.Accepts(w), got.Accepts(w), "word %q", w)
	}
}

// goSyntax renders e for the standard library matcher, used as an oracle.
func goSyntax(e RegExpr) string {
	switch n := e.(type) {
	case Empty:
		return "(?:)"
	case Char:
		return regexp.QuoteMeta(string(rune(n)))
	case Cat:
		if len(n) == 0 {
			return `[^\x00-\x{10FFFF}]`
		}
		var b strings.Builder
		for _, sub := range n {
			b.WriteString("(?:" + goSyntax(sub) + ")")
		}
		return b.String()
	case Or:
		if len(n) == 0 {
			return `[^\x00-\x{10FFFF}]`
		}
		parts := make([]string, len(n))
		for i, sub := range n {
			parts[i] = goSyntax(sub)
		}
		return "(?:" + strings.Join(parts, "|") + ")"
	case Repeat:
		return "(?:" + goSyntax(n.Expr) + ")*"
	}
	panic("unreachable")
}

var samplePatterns = []string{
	"0|1",
	"(0|1)*",
	"φ",
	"0*1*",
	"(00|11)*",
	"0(0|1)*1",
	"(01|10)*|1",
	"((0|φ)1)*",
	"11(11|0)*|(11|0)*11|(00|1)*00",
}
