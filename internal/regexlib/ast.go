package regexlib

import (
	"slices"
	"strings"
)

// EmptyMarker is the surface spelling of the empty-string atom.
const EmptyMarker = 'φ'

// NothingMarker is how Cat{} and Or{} print. The parser never produces them
// and does not accept it.
const NothingMarker = '∅'

// RegExpr is a parsed regular expression. The concrete types are Empty,
// Char, Cat, Or and Repeat.
type RegExpr interface {
	String() string
	regExpr()
}

// Empty matches only the empty string.
type Empty struct{}

// Char matches exactly one symbol.
type Char rune

// Cat matches its operands one after another. Cat{} matches nothing.
type Cat []RegExpr

// Or matches any of its operands. Or{} matches nothing.
type Or []RegExpr

// Repeat matches zero or more repetitions of Expr.
type Repeat struct {
	Expr RegExpr
}

func (Empty) regExpr()  {}
func (Char) regExpr()   {}
func (Cat) regExpr()    {}
func (Or) regExpr()     {}
func (Repeat) regExpr() {}

func (Empty) String() string { return string(EmptyMarker) }

func (c Char) String() string { return string(rune(c)) }

func (c Cat) String() string {
	if len(c) == 0 {
		return string(NothingMarker)
	}
	var b strings.Builder
	for _, e := range c {
		if o, ok := e.(Or); ok && len(o) > 1 {
			b.WriteString("(" + e.String() + ")")
			continue
		}
		b.WriteString(e.String())
	}
	return b.String()
}

func (o Or) String() string {
	if len(o) == 0 {
		return string(NothingMarker)
	}
	parts := make([]string, len(o))
	for i, e := range o {
		parts[i] = e.String()
	}
	return strings.Join(parts, "|")
}

func (r Repeat) String() string {
	switch e := r.Expr.(type) {
	case Char, Empty:
		return e.String() + "*"
	}
	return "(" + r.Expr.String() + ")*"
}

// CatString builds the concatenation of the characters of s.
func CatString(s string) Cat {
	c := make(Cat, 0, len(s))
	for _, r := range s {
		c = append(c, Char(r))
	}
	return c
}

// Alphabet returns the symbols occurring in e, sorted and without
// duplicates.
func Alphabet(e RegExpr) []rune {
	seen := map[rune]struct{}{}
	var walk func(RegExpr)
	walk = func(e RegExpr) {
		switch n := e.(type) {
		case Char:
			seen[rune(n)] = struct{}{}
		case Cat:
			for _, c := range n {
				walk(c)
			}
		case Or:
			for _, c := range n {
				walk(c)
			}
		case Repeat:
			walk(n.Expr)
		}
	}
	walk(e)
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
