package regexlib

import (
	"fmt"
	"slices"
)

// Complement accepts exactly the words over d's alphabet that d rejects.
// Words with foreign symbols are rejected by both.
func Complement(d *DFA) (*DFA, error) {
	if !d.IsTotal() {
		return nil, fmt.Errorf("complement: %w", ErrNonTotalTransition)
	}
	var finish []State
	for _, s := range d.States() {
		if !d.IsFinish(s) {
			finish = append(finish, s)
		}
	}
	return newDFA(d.Start, finish, d.Rules, d.Alphabet), nil
}

type statePair struct{ a, b State }

// Product runs a and b in lockstep; a pair of states accepts when
// op(a accepts, b accepts). Both automata must be total over the same
// alphabet.
func Product(a, b *DFA, op func(bool, bool) bool, alloc *Allocator) (*DFA, error) {
	if !slices.Equal(a.Alphabet, b.Alphabet) {
		return nil, fmt.Errorf("product %q/%q: %w", string(a.Alphabet), string(b.Alphabet), ErrAlphabetMismatch)
	}
	if !a.IsTotal() || !b.IsTotal() {
		return nil, fmt.Errorf("product: %w", ErrNonTotalTransition)
	}

	memo := map[statePair]State{}
	var queue []statePair
	stateOf := func(p statePair) State {
		if s, ok := memo[p]; ok {
			return s
		}
		s := alloc.Next()
		memo[p] = s
		queue = append(queue, p)
		return s
	}

	start := stateOf(statePair{a.Start, b.Start})
	var rules []DFARule
	var finish []State
	for i := 0; i < len(queue); i++ {
		p := queue[i]
		from := memo[p]
		if op(a.IsFinish(p.a), b.IsFinish(p.b)) {
			finish = append(finish, from)
		}
		for _, c := range a.Alphabet {
			ta, _ := a.Step(p.a, c)
			tb, _ := b.Step(p.b, c)
			rules = append(rules, DFARule{From: from, Symbol: c, To: stateOf(statePair{ta, tb})})
		}
	}
	return newDFA(start, finish, rules, a.Alphabet), nil
}

func Intersect(a, b *DFA, alloc *Allocator) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x && y }, alloc)
}

func Union(a, b *DFA, alloc *Allocator) (*DFA, error) {
	return Product(a, b, func(x, y bool) bool { return x || y }, alloc)
}

// Distinguish returns a shortest word accepted by exactly one of a and b.
// found is false when the two accept the same language.
func Distinguish(a, b *DFA) (word string, found bool, err error) {
	if !slices.Equal(a.Alphabet, b.Alphabet) {
		return "", false, fmt.Errorf("distinguish: %w", ErrAlphabetMismatch)
	}
	if !a.IsTotal() || !b.IsTotal() {
		return "", false, fmt.Errorf("distinguish: %w", ErrNonTotalTransition)
	}

	type visit struct {
		pair statePair
		word []rune
	}
	seen := map[statePair]bool{}
	queue := []visit{{pair: statePair{a.Start, b.Start}}}
	seen[queue[0].pair] = true
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if a.IsFinish(v.pair.a) != b.IsFinish(v.pair.b) {
			return string(v.word), true, nil
		}
		for _, c := range a.Alphabet {
			ta, _ := a.Step(v.pair.a, c)
			tb, _ := b.Step(v.pair.b, c)
			next := statePair{ta, tb}
			if seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, visit{pair: next, word: append(slices.Clone(v.word), c)})
		}
	}
	return "", false, nil
}

// Equivalent reports whether a and b accept the same words.
func Equivalent(a, b *DFA) (bool, error) {
	_, found, err := Distinguish(a, b)
	if err != nil {
		return false, err
	}
	return !found, nil
}

// Reverse accepts the mirror image of every word d accepts. It builds an NFA
// with a fresh start linked by epsilon to every finish state of d, flips
// every rule, and determinizes it. States of d may carry any identifiers;
// only the states of the result come from alloc.
func Reverse(d *DFA, alloc *Allocator) *DFA {
	// NFA states are positions in d.States() shifted by one, so a StateSet
	// never sees a negative or sparse identifier
	states := d.States()
	pos := make(map[State]State, len(states))
	for i, s := range states {
		pos[s] = State(i + 1)
	}
	start := State(len(states) + 1)

	n := &NFA{Start: start, Finish: pos[d.Start]}
	for _, f := range d.Finish {
		n.Rules = append(n.Rules, NFARule{From: start, To: pos[f], Label: Epsilon})
	}
	for _, r := range d.Rules {
		n.Rules = append(n.Rules, NFARule{From: pos[r.To], To: pos[r.From], Label: r.Symbol})
	}
	return Determinize(n, d.Alphabet, alloc)
}
