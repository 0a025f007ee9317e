package regexlib

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Row is one state of a transition table.
type Row struct {
	Finish bool
	Start  bool
	Next   map[rune]State
}

// Table is the canonical, serializable form of a DFA.
type Table map[State]Row

// ToTable returns the table form of d. Every state of d gets a row, even
// one without outgoing rules.
func (d *DFA) ToTable() Table {
	d.index()
	t := make(Table)
	for _, s := range d.States() {
		t[s] = Row{Finish: d.final[s], Start: s == d.Start, Next: map[rune]State{}}
	}
	for _, r := range d.Rules {
		t[r.From].Next[r.Symbol] = r.To
	}
	return t
}

// FromTable rebuilds a DFA from t. t must have exactly one start row.
func FromTable(t Table) (*DFA, error) {
	var alphabet []rune
	for _, row := range t {
		for sym := range row.Next {
			alphabet = append(alphabet, sym)
		}
	}
	return fromTable(t, alphabet)
}

func fromTable(t Table, alphabet []rune) (*DFA, error) {
	start, err := t.start()
	if err != nil {
		return nil, err
	}
	var finish []State
	var rules []DFARule
	for _, s := range t.states() {
		row := t[s]
		if row.Finish {
			finish = append(finish, s)
		}
		for sym, to := range row.Next {
			rules = append(rules, DFARule{From: s, Symbol: sym, To: to})
		}
	}
	return newDFA(start, finish, rules, alphabet), nil
}

func (t Table) start() (State, error) {
	var starts []State
	for _, s := range t.states() {
		if t[s].Start {
			starts = append(starts, s)
		}
	}
	if len(starts) != 1 {
		return NoState, &MalformedTableError{Starts: starts}
	}
	return starts[0], nil
}

func (t Table) states() []State {
	return slices.Sorted(maps.Keys(t))
}

// signature is equal for two rows exactly when they agree on finality and on
// every transition target.
func (r Row) signature() string {
	var b strings.Builder
	if r.Finish {
		b.WriteString("F")
	} else {
		b.WriteString("N")
	}
	for _, sym := range slices.Sorted(maps.Keys(r.Next)) {
		b.WriteByte(' ')
		b.WriteString(strconv.QuoteRune(sym))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(r.Next[sym])))
	}
	return b.String()
}

type yamlRow struct {
	State  State            `yaml:"state"`
	Start  bool             `yaml:"start,omitempty"`
	Finish bool             `yaml:"finish,omitempty"`
	Next   map[string]State `yaml:"next,omitempty"`
}

// MarshalYAML writes the table as a list of rows ordered by state, with
// symbols as one-character strings.
func (t Table) MarshalYAML() (interface{}, error) {
	rows := make([]yamlRow, 0, len(t))
	for _, s := range t.states() {
		row := t[s]
		yr := yamlRow{State: s, Start: row.Start, Finish: row.Finish}
		if len(row.Next) > 0 {
			yr.Next = make(map[string]State, len(row.Next))
			for sym, to := range row.Next {
				yr.Next[string(sym)] = to
			}
		}
		rows = append(rows, yr)
	}
	return rows, nil
}

func (t *Table) UnmarshalYAML(value *yaml.Node) error {
	var rows []yamlRow
	if err := value.Decode(&rows); err != nil {
		return err
	}
	out := make(Table, len(rows))
	for _, yr := range rows {
		if _, dup := out[yr.State]; dup {
			return fmt.Errorf("%w: state %v listed twice", ErrMalformedTable, yr.State)
		}
		row := Row{Start: yr.Start, Finish: yr.Finish, Next: make(map[rune]State, len(yr.Next))}
		for sym, to := range yr.Next {
			if utf8.RuneCountInString(sym) != 1 {
				return fmt.Errorf("%w: state %v: symbol %q is not a single character", ErrMalformedTable, yr.State, sym)
			}
			r, _ := utf8.DecodeRuneInString(sym)
			row.Next[r] = to
		}
		out[yr.State] = row
	}
	*t = out
	return nil
}
