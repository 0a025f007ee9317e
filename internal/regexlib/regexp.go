package regexlib

import (
	"fmt"
	"io"
	"log/slog"
)

type config struct {
	alphabet []rune
	minimize bool
	logger   *slog.Logger
}

// Option configures Compile.
type Option func(*config)

// WithAlphabet adds symbols to the alphabet of the compiled DFA. The symbols
// of the pattern are always included; Epsilon is dropped.
func WithAlphabet(symbols ...rune) Option {
	return func(c *config) { c.alphabet = append(c.alphabet, symbols...) }
}

// WithMinimize makes Compile minimize the determinized automaton.
func WithMinimize() Option {
	return func(c *config) { c.minimize = true }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Regex keeps every stage of one compilation.
type Regex struct {
	pattern string
	expr    RegExpr
	nfa     *NFA
	rawDFA  *DFA
	dfa     *DFA
}

// Compile parses pattern, builds its Thompson NFA and determinizes it. All
// states come from one allocator.
func Compile(pattern string, opts ...Option) (*Regex, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, o := range opts {
		o(&cfg)
	}

	expr, err := Parse(pattern)
	if err != nil {
		return nil, err
	}

	alloc := NewAllocator()
	nfa := Thompson(expr, alloc)
	alphabet := append(Alphabet(expr), cfg.alphabet...)
	raw := Determinize(nfa, alphabet, alloc)
	cfg.logger.Debug("determinized",
		"pattern", pattern,
		"nfa_states", len(nfa.States()),
		"dfa_states", len(raw.States()),
		"alphabet", string(raw.Alphabet),
	)

	re := &Regex{pattern: pattern, expr: expr, nfa: nfa, rawDFA: raw, dfa: raw}
	if cfg.minimize {
		minimal, err := Minimize(raw, alloc)
		if err != nil {
			return nil, fmt.Errorf("minimize %q: %w", pattern, err)
		}
		cfg.logger.Debug("minimized", "pattern", pattern, "dfa_states", len(minimal.States()))
		re.dfa = minimal
	}
	return re, nil
}

func MustCompile(pattern string, opts ...Option) *Regex {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return re
}

// CompileRegex runs the whole pipeline and returns only the DFA.
func CompileRegex(text string, opts ...Option) (*DFA, error) {
	re, err := Compile(text, opts...)
	if err != nil {
		return nil, err
	}
	return re.DFA(), nil
}

func (r *Regex) String() string { return r.pattern }

func (r *Regex) Expr() RegExpr { return r.expr }

func (r *Regex) NFA() *NFA { return r.nfa }

// RawDFA is the determinized automaton before minimization.
func (r *Regex) RawDFA() *DFA { return r.rawDFA }

// DFA is the final automaton: minimized when WithMinimize was given.
func (r *Regex) DFA() *DFA { return r.dfa }

// Match reports whether the whole of word belongs to the language.
func (r *Regex) Match(word string) bool { return r.dfa.Accepts(word) }
