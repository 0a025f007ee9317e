package regexlib

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// State identifies an NFA or DFA state. Identifiers carry no meaning beyond
// identity and are unique within one compilation.
type State int

// NoState is never issued by an Allocator.
const NoState State = 0

func (s State) String() string { return "q" + strconv.Itoa(int(s)) }

// Allocator issues fresh state identifiers. One allocator serves one
// compilation; it is not safe for concurrent use.
type Allocator struct {
	current State
}

func NewAllocator() *Allocator { return &Allocator{} }

// AllocatorAbove returns an allocator whose identifiers are all greater than
// every state mentioned by d.
func AllocatorAbove(d *DFA) *Allocator {
	a := &Allocator{}
	for _, s := range d.States() {
		if s > a.current {
			a.current = s
		}
	}
	return a
}

// Next returns a state that has not been issued before.
func (a *Allocator) Next() State {
	a.current++
	return a.current
}

// StateSet is a set of states with an order-independent canonical key.
type StateSet struct {
	bits *bitset.BitSet
}

func NewStateSet(states ...State) StateSet {
	s := StateSet{bits: bitset.New(0)}
	for _, st := range states {
		s.Add(st)
	}
	return s
}

func (s StateSet) Add(st State) { s.bits.Set(uint(st)) }

func (s StateSet) Contains(st State) bool { return st > 0 && s.bits.Test(uint(st)) }

func (s StateSet) Len() int { return int(s.bits.Count()) }

func (s StateSet) Empty() bool { return s.bits.None() }

// AddAll adds every member of o to s and reports whether s grew.
func (s StateSet) AddAll(o StateSet) bool {
	before := s.bits.Count()
	s.bits.InPlaceUnion(o.bits)
	return s.bits.Count() != before
}

func (s StateSet) Clone() StateSet { return StateSet{bits: s.bits.Clone()} }

// States returns the members in ascending order.
func (s StateSet) States() []State {
	out := make([]State, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, State(i))
	}
	return out
}

// Key is equal for two sets exactly when they hold the same members.
func (s StateSet) Key() string {
	var b strings.Builder
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		b.WriteString(strconv.FormatUint(uint64(i), 10))
		b.WriteByte(',')
	}
	return b.String()
}

func (s StateSet) String() string { return s.bits.String() }
