package regexlib

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want RegExpr
	}{
		{"0", Char('0')},
		{"φ", Empty{}},
		{"#", Empty{}},
		{"0|1", Or{Char('0'), Char('1')}},
		{"01", Cat{Char('0'), Char('1')}},
		{"0*", Repeat{Expr: Char('0')}},
		{"01*", Cat{Char('0'), Repeat{Expr: Char('1')}}},
		{"01|1*", Or{Cat{Char('0'), Char('1')}, Repeat{Expr: Char('1')}}},
		{"(0|1)*", Repeat{Expr: Or{Char('0'), Char('1')}}},
		{"((0))", Char('0')},
		{" 0 |\t1\n", Or{Char('0'), Char('1')}},
		{"a B 9", Cat{Char('a'), Char('B'), Char('9')}},
		{"0φ", Cat{Char('0'), Empty{}}},
		{"(0|1)0", Cat{Or{Char('0'), Char('1')}, Char('0')}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in        string
		offset    int
		remaining string
	}{
		{"", 0, ""},
		{"0)", 1, ")"},
		{"0+1", 1, "+1"},
		{"0**", 2, "*"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		require.Error(t, err, "Parse(%q)", tt.in)
		assert.True(t, errors.Is(err, ErrParse))

		var pe *ParseError
		require.True(t, errors.As(err, &pe), "Parse(%q) returned %T", tt.in, err)
		assert.Equal(t, tt.offset, pe.Offset, "Parse(%q): %v", tt.in, err)
		assert.Equal(t, tt.remaining, pe.Remaining, "Parse(%q)", tt.in)
	}
}

func TestParseErrorSuffixMatchesOffset(t *testing.T) {
	for _, in := range []string{"(0", "|0", "0|", "()", "0(1", "a-b", "0 1 )"} {
		_, err := Parse(in)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "Parse(%q) = %v", in, err)
		require.LessOrEqual(t, pe.Offset, len(in))
		assert.Equal(t, in[pe.Offset:], pe.Remaining)
		assert.NotEmpty(t, pe.Error())
	}
}

func TestStringReparses(t *testing.T) {
	for _, p := range append(samplePatterns, "(0*)*", "(01)*0", "φ*|0") {
		e, err := Parse(p)
		require.NoError(t, err)
		back, err := Parse(e.String())
		require.NoError(t, err, "reparse %q (from %q)", e.String(), p)
		assert.Equal(t, e.String(), back.String())
	}
}

func TestAlphabet(t *testing.T) {
	e, err := Parse("b(a|c)*b0")
	require.NoError(t, err)
	assert.Equal(t, []rune{'0', 'a', 'b', 'c'}, Alphabet(e))
	assert.Empty(t, Alphabet(Empty{}))
	assert.Equal(t, []rune("01"), Alphabet(CatString("1001")))
}

func TestParseConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range samplePatterns {
				_, err := Parse(p)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestNothingPrintsDistinctly(t *testing.T) {
	assert.Equal(t, "∅", Cat{}.String())
	assert.Equal(t, "∅", Or{}.String())
	assert.NotEqual(t, Empty{}.String(), Cat{}.String())
	assert.Equal(t, "(∅)*", Repeat{Expr: Or{}}.String())
	assert.Equal(t, "0∅", Cat{Char('0'), Or{}}.String())

	_, err := Parse(Cat{}.String())
	assert.True(t, errors.Is(err, ErrParse))
}
