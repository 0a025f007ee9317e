package regexlib

// ToRegexp returns a regular expression for the language of d using Kleene's
// construction over the live states of d (reachable from the start and able
// to reach a finish state). The expression grows quickly with the number of
// states; minimize first. ErrEmptyLanguage is returned when d accepts
// nothing.
func (d *DFA) ToRegexp() (RegExpr, error) {
	live := d.liveStates()
	if !live[d.Start] {
		return nil, ErrEmptyLanguage
	}
	var states []State
	for _, s := range d.States() {
		if live[s] {
			states = append(states, s)
		}
	}
	idx := make(map[State]int, len(states))
	for i, s := range states {
		idx[s] = i
	}

	n := len(states)
	// r[i][j] is the expression for paths i -> j; nil means no path
	r := make([][]RegExpr, n)
	for i := range r {
		r[i] = make([]RegExpr, n)
		r[i][i] = Empty{}
	}
	for _, rule := range d.Rules {
		i, ok1 := idx[rule.From]
		j, ok2 := idx[rule.To]
		if ok1 && ok2 {
			r[i][j] = union(r[i][j], Char(rule.Symbol))
		}
	}

	for k := 0; k < n; k++ {
		loop := star(r[k][k])
		next := make([][]RegExpr, n)
		for i := 0; i < n; i++ {
			next[i] = make([]RegExpr, n)
			for j := 0; j < n; j++ {
				next[i][j] = union(r[i][j], concat(r[i][k], loop, r[k][j]))
			}
		}
		r = next
	}

	var out RegExpr
	for _, f := range d.Finish {
		if j, ok := idx[f]; ok {
			out = union(out, r[idx[d.Start]][j])
		}
	}
	return out, nil
}

func (d *DFA) liveStates() map[State]bool {
	forward := map[State][]State{}
	backward := map[State][]State{}
	for _, r := range d.Rules {
		forward[r.From] = append(forward[r.From], r.To)
		backward[r.To] = append(backward[r.To], r.From)
	}
	reach := func(from []State, edges map[State][]State) map[State]bool {
		seen := map[State]bool{}
		stack := append([]State(nil), from...)
		for _, s := range from {
			seen[s] = true
		}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, t := range edges[s] {
				if !seen[t] {
					seen[t] = true
					stack = append(stack, t)
				}
			}
		}
		return seen
	}
	fromStart := reach([]State{d.Start}, forward)
	toFinish := reach(d.Finish, backward)
	live := map[State]bool{}
	for s := range fromStart {
		if toFinish[s] {
			live[s] = true
		}
	}
	return live
}

func union(a, b RegExpr) RegExpr {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	var out Or
	seen := map[string]bool{}
	for _, e := range append(operands(a), operands(b)...) {
		key := e.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func operands(e RegExpr) []RegExpr {
	if o, ok := e.(Or); ok {
		return o
	}
	return []RegExpr{e}
}

func concat(parts ...RegExpr) RegExpr {
	var out Cat
	for _, p := range parts {
		switch e := p.(type) {
		case nil:
			return nil
		case Empty:
		case Cat:
			out = append(out, e...)
		default:
			out = append(out, e)
		}
	}
	switch len(out) {
	case 0:
		return Empty{}
	case 1:
		return out[0]
	}
	return out
}

func star(e RegExpr) RegExpr {
	switch n := e.(type) {
	case nil, Empty:
		return Empty{}
	case Repeat:
		return n
	case Or:
		// ε inside a starred alternation is redundant
		var rest Or
		for _, o := range n {
			if _, ok := o.(Empty); !ok {
				rest = append(rest, o)
			}
		}
		switch len(rest) {
		case 0:
			return Empty{}
		case 1:
			return star(rest[0])
		}
		return Repeat{Expr: rest}
	}
	return Repeat{Expr: e}
}
