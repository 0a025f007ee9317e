package regexlib

import (
	"errors"
	"fmt"
)

var (
	ErrParse              = errors.New("regexlib: malformed regular expression")
	ErrMalformedTable     = errors.New("regexlib: malformed transition table")
	ErrNonTotalTransition = errors.New("regexlib: no transition for symbol")
	ErrEmptyLanguage      = errors.New("regexlib: automaton accepts no word")
	ErrAlphabetMismatch   = errors.New("regexlib: automata have different alphabets")
)

// ParseError reports where a regular expression stopped making sense.
type ParseError struct {
	Offset    int    // byte offset of the failing token
	Line      int    // 1-based
	Column    int    // 1-based
	Remaining string // unconsumed input starting at Offset
	Msg       string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d (offset %d, remaining %q): %s",
		e.Line, e.Column, e.Offset, e.Remaining, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MalformedTableError is returned when a table does not have exactly one
// start row.
type MalformedTableError struct {
	Starts []State
}

func (e *MalformedTableError) Error() string {
	if len(e.Starts) == 0 {
		return "malformed table: no start state"
	}
	return fmt.Sprintf("malformed table: %d start states %v", len(e.Starts), e.Starts)
}

func (e *MalformedTableError) Is(target error) bool { return target == ErrMalformedTable }

// NonTotalTransitionError means a DFA has no rule for a symbol of its own
// alphabet. Determinize never produces such a DFA.
type NonTotalTransitionError struct {
	State  State
	Symbol rune
}

func (e *NonTotalTransitionError) Error() string {
	return fmt.Sprintf("no transition from %v on %q", e.State, e.Symbol)
}

func (e *NonTotalTransitionError) Is(target error) bool { return target == ErrNonTotalTransition }
