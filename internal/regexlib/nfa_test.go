package regexlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThompsonChar(t *testing.T) {
	n := Thompson(Char('a'), NewAllocator())
	assert.Equal(t, State(1), n.Start)
	assert.Equal(t, State(2), n.Finish)
	assert.Equal(t, []NFARule{{From: 1, To: 2, Label: 'a'}}, n.Rules)
}

func TestThompsonEmpty(t *testing.T) {
	n := Thompson(Empty{}, NewAllocator())
	assert.Equal(t, []NFARule{{From: 1, To: 2, Label: Epsilon}}, n.Rules)
	assert.Empty(t, n.Labels())
}

func TestThompsonCat(t *testing.T) {
	n := Thompson(Cat{Char('a'), Char('b')}, NewAllocator())
	assert.Equal(t, State(1), n.Start)
	assert.Equal(t, State(2), n.Finish)
	assert.Equal(t, []NFARule{
		{From: 3, To: 4, Label: 'a'},
		{From: 1, To: 3, Label: Epsilon},
		{From: 5, To: 6, Label: 'b'},
		{From: 4, To: 5, Label: Epsilon},
		{From: 6, To: 2, Label: Epsilon},
	}, n.Rules)
	assert.Equal(t, []rune("ab"), n.Labels())
}

func TestThompsonRepeatSharesInnerFinish(t *testing.T) {
	n := Thompson(Repeat{Expr: Char('a')}, NewAllocator())
	assert.Equal(t, State(1), n.Start)
	assert.Equal(t, State(3), n.Finish)
	assert.Equal(t, []NFARule{
		{From: 2, To: 3, Label: 'a'},
		{From: 1, To: 3, Label: Epsilon},
		{From: 3, To: 2, Label: Epsilon},
	}, n.Rules)
	assert.Equal(t, []State{1, 2, 3}, n.States())
}

func TestThompsonDegenerateOperands(t *testing.T) {
	for _, e := range []RegExpr{Cat{}, Or{}} {
		alloc := NewAllocator()
		n := Thompson(e, alloc)
		assert.Empty(t, n.Rules, "%T", e)
		assert.NotEqual(t, n.Start, n.Finish)

		d := Determinize(n, nil, alloc)
		assert.False(t, d.Accepts(""), "%T accepts the empty word", e)
	}
}

func TestThompsonUnknownExpressionPanics(t *testing.T) {
	assert.Panics(t, func() { Thompson(nil, NewAllocator()) })
}

func TestClosureFollowsCycles(t *testing.T) {
	n := Thompson(Repeat{Expr: Char('a')}, NewAllocator())

	in := NewStateSet(1)
	assert.Equal(t, []State{1, 2, 3}, n.Closure(in).States())
	assert.Equal(t, []State{1}, in.States(), "closure modified its input")

	assert.Equal(t, []State{2, 3}, n.Closure(NewStateSet(3)).States())
	assert.True(t, n.Closure(NewStateSet()).Empty())
}

func TestClosureOfNestedRepeatTerminates(t *testing.T) {
	n := Thompson(Repeat{Expr: Repeat{Expr: Empty{}}}, NewAllocator())
	c := n.Closure(NewStateSet(n.Start))
	assert.True(t, c.Contains(n.Finish))
	assert.Equal(t, len(n.States()), c.Len())
}

func TestEdgeAndDFAEdge(t *testing.T) {
	n := Thompson(Repeat{Expr: Char('a')}, NewAllocator())
	assert.Equal(t, []State{3}, n.Edge(2, 'a').States())
	assert.True(t, n.Edge(1, 'a').Empty())
	assert.True(t, n.Edge(2, 'b').Empty())

	start := n.Closure(NewStateSet(n.Start))
	assert.Equal(t, []State{2, 3}, n.DFAEdge(start, 'a').States())
	assert.True(t, n.DFAEdge(start, 'b').Empty())
}

func TestNFAString(t *testing.T) {
	n := Thompson(Empty{}, NewAllocator())
	require.Contains(t, n.String(), "start=q1 finish=q2")
	assert.Contains(t, n.String(), "q1 -- ε --> q2")
}
