package regexlib

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// DFARule is a DFA transition.
type DFARule struct {
	From   State
	Symbol rune
	To     State
}

func (r DFARule) String() string {
	return fmt.Sprintf("%v -- '%c' --> %v", r.From, r.Symbol, r.To)
}

// DFA is a deterministic automaton over a sorted alphabet. A DFA is never
// modified after construction and may be run from several goroutines.
type DFA struct {
	Start    State
	Finish   []State
	Rules    []DFARule
	Alphabet []rune

	once  sync.Once
	delta map[transition]State
	final map[State]bool
}

type transition struct {
	from   State
	symbol rune
}

func newDFA(start State, finish []State, rules []DFARule, alphabet []rune) *DFA {
	finish = slices.Clone(finish)
	slices.Sort(finish)
	rules = slices.Clone(rules)
	slices.SortFunc(rules, func(a, b DFARule) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.Symbol, b.Symbol))
	})
	return &DFA{Start: start, Finish: finish, Rules: rules, Alphabet: normalizeAlphabet(alphabet)}
}

// normalizeAlphabet sorts and dedups alphabet and drops Epsilon, which can
// never be a symbol.
func normalizeAlphabet(alphabet []rune) []rune {
	out := slices.DeleteFunc(slices.Clone(alphabet), func(r rune) bool { return r == Epsilon })
	slices.Sort(out)
	return slices.Compact(out)
}

// Determinize builds a DFA equivalent to n by subset construction. The result
// is total over alphabet: an empty set of NFA states becomes an ordinary dead
// state.
func Determinize(n *NFA, alphabet []rune, alloc *Allocator) *DFA {
	alpha := normalizeAlphabet(alphabet)

	memo := map[string]State{}
	// sets doubles as the breadth-first frontier; ids[i] is the state of sets[i]
	var sets []StateSet
	var ids []State
	stateOf := func(set StateSet) State {
		key := set.Key()
		if s, ok := memo[key]; ok {
			return s
		}
		s := alloc.Next()
		memo[key] = s
		sets = append(sets, set)
		ids = append(ids, s)
		return s
	}

	start := stateOf(n.Closure(NewStateSet(n.Start)))
	var rules []DFARule
	for i := 0; i < len(sets); i++ {
		for _, a := range alpha {
			to := stateOf(n.DFAEdge(sets[i], a))
			rules = append(rules, DFARule{From: ids[i], Symbol: a, To: to})
		}
	}

	var finish []State
	for i, set := range sets {
		if set.Contains(n.Finish) {
			finish = append(finish, ids[i])
		}
	}
	return newDFA(start, finish, rules, alpha)
}

func (d *DFA) index() {
	d.once.Do(func() {
		d.delta = make(map[transition]State, len(d.Rules))
		for _, r := range d.Rules {
			d.delta[transition{r.From, r.Symbol}] = r.To
		}
		d.final = make(map[State]bool, len(d.Finish))
		for _, s := range d.Finish {
			d.final[s] = true
		}
	})
}

// Step returns the target of the rule (from, symbol).
func (d *DFA) Step(from State, symbol rune) (State, bool) {
	d.index()
	to, ok := d.delta[transition{from, symbol}]
	return to, ok
}

// IsFinish reports whether s is an accepting state.
func (d *DFA) IsFinish(s State) bool {
	d.index()
	return d.final[s]
}

func (d *DFA) inAlphabet(r rune) bool {
	_, ok := slices.BinarySearch(d.Alphabet, r)
	return ok
}

// Run feeds word to d and returns the state it ends in and whether that
// state accepts. A symbol outside the alphabet rejects the word with
// NoState. A missing rule for a symbol of the alphabet is reported as a
// *NonTotalTransitionError; it means d was not built by Determinize or
// Minimize.
func (d *DFA) Run(word string) (State, bool, error) {
	cur := d.Start
	for _, r := range word {
		if !d.inAlphabet(r) {
			return NoState, false, nil
		}
		next, ok := d.Step(cur, r)
		if !ok {
			return cur, false, &NonTotalTransitionError{State: cur, Symbol: r}
		}
		cur = next
	}
	return cur, d.IsFinish(cur), nil
}

// Accepts is Run without the bookkeeping. Errors count as rejection.
func (d *DFA) Accepts(word string) bool {
	_, ok, err := d.Run(word)
	return ok && err == nil
}

// States returns every state mentioned by d in ascending order.
func (d *DFA) States() []State {
	seen := map[State]struct{}{d.Start: {}}
	for _, s := range d.Finish {
		seen[s] = struct{}{}
	}
	for _, r := range d.Rules {
		seen[r.From] = struct{}{}
		seen[r.To] = struct{}{}
	}
	out := make([]State, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// IsTotal reports whether every state has exactly one rule per symbol of the
// alphabet.
func (d *DFA) IsTotal() bool {
	count := map[transition]int{}
	for _, r := range d.Rules {
		count[transition{r.From, r.Symbol}]++
	}
	for _, s := range d.States() {
		for _, a := range d.Alphabet {
			if count[transition{s, a}] != 1 {
				return false
			}
		}
	}
	return len(count) == len(d.Rules)
}

func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA start=%v finish=%v\n", d.Start, d.Finish)
	for _, r := range d.Rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}
