package regexlib

import (
	"cmp"
	"fmt"
	"slices"
)

// Minimize merges states of d that agree on finality and on every transition
// target, repeating until the state count stops shrinking. Representatives
// come from alloc, which must not have issued any state of d. d is not
// modified.
func Minimize(d *DFA, alloc *Allocator) (*DFA, error) {
	t, err := MinimizeTable(d.ToTable(), alloc)
	if err != nil {
		return nil, err
	}
	return fromTable(t, d.Alphabet)
}

// Minimize is Minimize(d, AllocatorAbove(d)).
func (d *DFA) Minimize() (*DFA, error) {
	return Minimize(d, AllocatorAbove(d))
}

// MinimizeTable is the table-level minimizer behind Minimize. It fails with a
// *MalformedTableError before doing any work if t does not have exactly one
// start row.
func MinimizeTable(t Table, alloc *Allocator) (Table, error) {
	if _, err := t.start(); err != nil {
		return nil, err
	}
	for {
		before := len(t)
		t = t.mergeEquivalent(alloc)
		if len(t) >= before {
			return t, nil
		}
	}
}

func (t Table) mergeEquivalent(alloc *Allocator) Table {
	groups := map[string][]State{}
	var order []string
	for _, s := range t.states() {
		sig := t[s].signature()
		if _, ok := groups[sig]; !ok {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], s)
	}

	migrate := map[State]State{}
	for _, sig := range order {
		members := groups[sig]
		if len(members) < 2 {
			continue
		}
		rep := alloc.Next()
		for _, s := range members {
			migrate[s] = rep
		}
	}
	if len(migrate) == 0 {
		return t
	}

	rename := func(s State) State {
		if rep, ok := migrate[s]; ok {
			return rep
		}
		return s
	}
	out := make(Table, len(t)-len(migrate))
	for _, s := range t.states() {
		row := t[s]
		id := rename(s)
		merged, ok := out[id]
		if !ok {
			merged = Row{Finish: row.Finish, Next: make(map[rune]State, len(row.Next))}
		}
		merged.Start = merged.Start || row.Start
		for sym, to := range row.Next {
			merged.Next[sym] = rename(to)
		}
		out[id] = merged
	}
	return out
}

// MinimizeHopcroft computes the minimal DFA equivalent to d by Hopcroft's
// partition refinement. d must be total.
func MinimizeHopcroft(d *DFA, alloc *Allocator) (*DFA, error) {
	if !d.IsTotal() {
		return nil, fmt.Errorf("hopcroft: %w", ErrNonTotalTransition)
	}
	states := d.States()
	pos := make(map[State]int, len(states))
	for i, s := range states {
		pos[s] = i
	}

	// initial partition: accepting / non-accepting
	acc, non := NewStateSet(), NewStateSet()
	for i, s := range states {
		// positions are shifted by one; StateSet never stores 0
		if d.IsFinish(s) {
			acc.Add(State(i + 1))
		} else {
			non.Add(State(i + 1))
		}
	}
	var partitions []StateSet
	for _, p := range []StateSet{acc, non} {
		if !p.Empty() {
			partitions = append(partitions, p)
		}
	}
	work := make([]int, len(partitions))
	inWork := make([]bool, len(partitions))
	for i := range work {
		work[i] = i
		inWork[i] = true
	}

	for len(work) > 0 {
		idx := work[0]
		work = work[1:]
		inWork[idx] = false
		a := partitions[idx]

		for _, c := range d.Alphabet {
			// x is the preimage of a under c
			x := NewStateSet()
			for i, s := range states {
				to, _ := d.Step(s, c)
				if a.Contains(State(pos[to] + 1)) {
					x.Add(State(i + 1))
				}
			}

			for p := 0; p < len(partitions); p++ {
				y := partitions[p]
				inter, diff := NewStateSet(), NewStateSet()
				for _, s := range y.States() {
					if x.Contains(s) {
						inter.Add(s)
					} else {
						diff.Add(s)
					}
				}
				if inter.Empty() || diff.Empty() {
					continue
				}
				partitions[p] = inter
				partitions = append(partitions, diff)
				inWork = append(inWork, false)
				last := len(partitions) - 1
				switch {
				case inWork[p]:
					work = append(work, last)
					inWork[last] = true
				case inter.Len() < diff.Len():
					work = append(work, p)
					inWork[p] = true
				default:
					work = append(work, last)
					inWork[last] = true
				}
			}
		}
	}

	block := make([]int, len(states))
	for b, p := range partitions {
		for _, s := range p.States() {
			block[int(s)-1] = b
		}
	}
	// blocks are numbered in order of their smallest state for stable output
	order := make([]int, len(partitions))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(x, y int) int {
		return cmp.Compare(partitions[x].States()[0], partitions[y].States()[0])
	})
	rep := make([]State, len(partitions))
	for _, b := range order {
		rep[b] = alloc.Next()
	}

	var finish []State
	var rules []DFARule
	for b, p := range partitions {
		first := states[int(p.States()[0])-1]
		if d.IsFinish(first) {
			finish = append(finish, rep[b])
		}
		for _, c := range d.Alphabet {
			to, _ := d.Step(first, c)
			rules = append(rules, DFARule{From: rep[b], Symbol: c, To: rep[block[pos[to]]]})
		}
	}
	return newDFA(rep[block[pos[d.Start]]], finish, rules, d.Alphabet), nil
}
