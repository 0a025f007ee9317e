package regexlib

import (
	"errors"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tSymbol plexer.TokenType = iota + 1
	tEmpty
	tUnion
	tStar
	tLParen
	tRParen
)

var tokenSymbols = map[string]plexer.TokenType{
	"EOF":    plexer.EOF,
	"Symbol": tSymbol,
	"Empty":  tEmpty,
	"Union":  tUnion,
	"Star":   tStar,
	"LParen": tLParen,
	"RParen": tRParen,
}

// compiledLexer is shared by every scan; lexmachine scanners never write to
// the compiled machine.
var compiledLexer = sync.OnceValues(func() (*lexmachine.Lexer, error) {
	lm := lexmachine.NewLexer()
	lm.Add([]byte(`[ \t\n\r]+`), skip)
	lm.Add([]byte(`[0-9a-zA-Z]`), tokAction(tSymbol))
	lm.Add([]byte(`φ|[#]`), tokAction(tEmpty))
	lm.Add([]byte(`[|]`), tokAction(tUnion))
	lm.Add([]byte(`[*]`), tokAction(tStar))
	lm.Add([]byte(`[(]`), tokAction(tLParen))
	lm.Add([]byte(`[)]`), tokAction(tRParen))
	if err := lm.Compile(); err != nil {
		return nil, err
	}
	return lm, nil
})

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(typ plexer.TokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return plexer.Token{
			Type:  typ,
			Value: string(m.Bytes),
			Pos:   plexer.Position{Offset: m.TC, Line: m.StartLine, Column: m.StartColumn},
		}, nil
	}
}

// regexDefinition is the participle lexer definition for regex source.
type regexDefinition struct{}

func (regexDefinition) Symbols() map[string]plexer.TokenType { return tokenSymbols }

func (d regexDefinition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexBytes(filename, text)
}

func (d regexDefinition) LexString(filename string, input string) (plexer.Lexer, error) {
	return d.LexBytes(filename, []byte(input))
}

func (regexDefinition) LexBytes(filename string, input []byte) (plexer.Lexer, error) {
	lm, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	scan, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	end := plexer.Position{Filename: filename, Line: 1, Column: 1}
	end.Advance(string(input))
	return &tokenStream{filename: filename, input: input, scan: scan, end: end}, nil
}

type tokenStream struct {
	filename string
	input    []byte
	scan     *lexmachine.Scanner
	end      plexer.Position
}

func (s *tokenStream) Next() (plexer.Token, error) {
	tok, err, eof := s.scan.Next()
	if eof {
		return plexer.EOFToken(s.end), nil
	}
	if err != nil {
		var ui *machines.UnconsumedInput
		if !errors.As(err, &ui) {
			return plexer.Token{}, err
		}
		pos := plexer.Position{
			Filename: s.filename,
			Offset:   ui.StartTC,
			Line:     ui.StartLine,
			Column:   ui.StartColumn,
		}
		r, _ := utf8.DecodeRune(s.input[ui.StartTC:])
		return plexer.Token{}, participle.Errorf(pos, "unexpected character %q", r)
	}
	t := tok.(plexer.Token)
	t.Pos.Filename = s.filename
	return t, nil
}
