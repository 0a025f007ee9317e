package regexlib

import (
	"fmt"
	"io"
	"strings"
)

// ExportDOT writes a Graphviz rendering of an *NFA or a *DFA to w.
func ExportDOT(w io.Writer, g interface{}) error {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("    rankdir=LR;\n")

	switch t := g.(type) {
	case *DFA:
		for _, s := range t.States() {
			shape := "circle"
			if t.IsFinish(s) {
				shape = "doublecircle"
			}
			fmt.Fprintf(&b, "    q%d [shape=%s];\n", s, shape)
		}
		for _, r := range t.Rules {
			fmt.Fprintf(&b, "    q%d -> q%d [label=\"%c\"];\n", r.From, r.To, r.Symbol)
		}
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> q%d;\n", t.Start)

	case *NFA:
		for _, s := range t.States() {
			shape := "circle"
			if s == t.Finish {
				shape = "doublecircle"
			}
			fmt.Fprintf(&b, "    n%d [shape=%s];\n", s, shape)
		}
		for _, r := range t.Rules {
			label := string(r.Label)
			if r.Label == Epsilon {
				label = "ε"
			}
			fmt.Fprintf(&b, "    n%d -> n%d [label=\"%s\"];\n", r.From, r.To, label)
		}
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> n%d;\n", t.Start)

	default:
		return fmt.Errorf("dot: cannot render %T", g)
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
