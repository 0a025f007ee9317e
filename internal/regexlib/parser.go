package regexlib

import (
	"errors"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
)

// expr := orterm ('|' orterm)*
type regexGrammar struct {
	Alternatives []*orTerm `parser:"@@ ( '|' @@ )*"`
}

// orterm := catterm+
type orTerm struct {
	Factors []*catTerm `parser:"@@+"`
}

// catterm := repterm '*'?
type catTerm struct {
	Atom *repTerm `parser:"@@"`
	Star bool     `parser:"@'*'?"`
}

// repterm := '(' expr ')' | symbol | emptyMarker
type repTerm struct {
	Group  *regexGrammar `parser:"  '(' @@ ')'"`
	Empty  bool          `parser:"| @Empty"`
	Symbol *string       `parser:"| @Symbol"`
}

var regexParser = participle.MustBuild[regexGrammar](participle.Lexer(regexDefinition{}))

// Parse turns regex source into a RegExpr. The whole input must be consumed;
// otherwise the error is a *ParseError.
func Parse(text string) (RegExpr, error) {
	tree, err := regexParser.ParseString("", text)
	if err != nil {
		return nil, newParseError(text, err)
	}
	return tree.lower(), nil
}

func newParseError(text string, err error) *ParseError {
	pe := &ParseError{Line: 1, Column: 1, Msg: err.Error(), Err: err}
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		pe.Offset, pe.Line, pe.Column, pe.Msg = pos.Offset, pos.Line, pos.Column, perr.Message()
	}
	if pe.Offset < 0 || pe.Offset > len(text) {
		pe.Offset = len(text)
	}
	pe.Remaining = text[pe.Offset:]
	return pe
}

// Single-operand alternations and concatenations collapse to the operand.
func (g *regexGrammar) lower() RegExpr {
	alts := make(Or, 0, len(g.Alternatives))
	for _, t := range g.Alternatives {
		alts = append(alts, t.lower())
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return alts
}

func (t *orTerm) lower() RegExpr {
	cat := make(Cat, 0, len(t.Factors))
	for _, f := range t.Factors {
		cat = append(cat, f.lower())
	}
	if len(cat) == 1 {
		return cat[0]
	}
	return cat
}

func (c *catTerm) lower() RegExpr {
	e := c.Atom.lower()
	if c.Star {
		return Repeat{Expr: e}
	}
	return e
}

func (r *repTerm) lower() RegExpr {
	switch {
	case r.Group != nil:
		return r.Group.lower()
	case r.Empty:
		return Empty{}
	default:
		c, _ := utf8.DecodeRuneInString(*r.Symbol)
		return Char(c)
	}
}
