package regexlib

import (
	"fmt"
	"slices"
)

// Epsilon labels rules that consume no input. Symbols are alphanumeric, so
// it never collides with a real label.
const Epsilon rune = 0

// NFARule is a labeled NFA transition.
type NFARule struct {
	From  State
	To    State
	Label rune
}

// NFA has exactly one start and one finish state. Queries index the rules
// on first use, so an NFA must not be queried from several goroutines.
type NFA struct {
	Start  State
	Finish State
	Rules  []NFARule

	out map[State][]NFARule
}

// Thompson translates e into an NFA, drawing every state from alloc.
func Thompson(e RegExpr, alloc *Allocator) *NFA {
	b := &thompsonBuilder{alloc: alloc}
	start, finish := b.build(e)
	return &NFA{Start: start, Finish: finish, Rules: b.rules}
}

type thompsonBuilder struct {
	alloc *Allocator
	rules []NFARule
}

func (b *thompsonBuilder) link(from, to State, label rune) {
	b.rules = append(b.rules, NFARule{From: from, To: to, Label: label})
}

func (b *thompsonBuilder) build(e RegExpr) (start, finish State) {
	switch n := e.(type) {
	case Empty:
		start, finish = b.alloc.Next(), b.alloc.Next()
		b.link(start, finish, Epsilon)
	case Char:
		start, finish = b.alloc.Next(), b.alloc.Next()
		b.link(start, finish, rune(n))
	case Cat:
		start, finish = b.alloc.Next(), b.alloc.Next()
		// zero operands: start and finish stay disconnected
		prev := start
		for _, sub := range n {
			s, f := b.build(sub)
			b.link(prev, s, Epsilon)
			prev = f
		}
		if len(n) > 0 {
			b.link(prev, finish, Epsilon)
		}
	case Or:
		start, finish = b.alloc.Next(), b.alloc.Next()
		for _, sub := range n {
			s, f := b.build(sub)
			b.link(start, s, Epsilon)
			b.link(f, finish, Epsilon)
		}
	case Repeat:
		start = b.alloc.Next()
		s, f := b.build(n.Expr)
		// the inner finish is both the loop boundary and the outer finish
		b.link(start, f, Epsilon)
		b.link(f, s, Epsilon)
		finish = f
	default:
		panic(fmt.Sprintf("regexlib: unknown expression %T", e))
	}
	return start, finish
}

func (n *NFA) outgoing(s State) []NFARule {
	if n.out == nil {
		n.out = make(map[State][]NFARule)
		for _, r := range n.Rules {
			n.out[r.From] = append(n.out[r.From], r)
		}
	}
	return n.out[s]
}

// Edge returns the states reachable from s by exactly one rule labeled
// label.
func (n *NFA) Edge(s State, label rune) StateSet {
	set := NewStateSet()
	for _, r := range n.outgoing(s) {
		if r.Label == label {
			set.Add(r.To)
		}
	}
	return set
}

// Closure returns the epsilon-closure of set. set itself is not modified.
func (n *NFA) Closure(set StateSet) StateSet {
	closed := set.Clone()
	stack := set.States()
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, r := range n.outgoing(s) {
			if r.Label != Epsilon || closed.Contains(r.To) {
				continue
			}
			closed.Add(r.To)
			stack = append(stack, r.To)
		}
	}
	return closed
}

// DFAEdge is the transition function lifted to sets of states: the closure
// of everything reachable from set on symbol.
func (n *NFA) DFAEdge(set StateSet, symbol rune) StateSet {
	moved := NewStateSet()
	for _, s := range set.States() {
		moved.AddAll(n.Edge(s, symbol))
	}
	return n.Closure(moved)
}

// States returns every state mentioned by n in ascending order.
func (n *NFA) States() []State {
	set := NewStateSet(n.Start, n.Finish)
	for _, r := range n.Rules {
		set.Add(r.From)
		set.Add(r.To)
	}
	return set.States()
}

// Labels returns the non-epsilon labels used by n, sorted.
func (n *NFA) Labels() []rune {
	var out []rune
	for _, r := range n.Rules {
		if r.Label != Epsilon && !slices.Contains(out, r.Label) {
			out = append(out, r.Label)
		}
	}
	slices.Sort(out)
	return out
}

func (n *NFA) String() string {
	s := fmt.Sprintf("NFA start=%v finish=%v\n", n.Start, n.Finish)
	for _, r := range n.Rules {
		label := string(r.Label)
		if r.Label == Epsilon {
			label = "ε"
		}
		s += fmt.Sprintf("%v -- %s --> %v\n", r.From, label, r.To)
	}
	return s
}
