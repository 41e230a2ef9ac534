package chomsky_test

import (
	"testing"

	"github.com/0x51-dev/chomsky"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rules = map[chomsky.Symbol][]string

func TestDropNonGenerating(t *testing.T) {
	g := mustNew(t, 'S', rules{
		'S': {"AB", "a"},
		'A': {"aA"},
		'B': {"b"},
	})
	before := g.String()
	r := chomsky.DropNonGenerating(g)
	assert.Equal(t, rules{'S': {"a"}, 'B': {"b"}}, r.Rules())
	assert.Equal(t, before, g.String())

	// Dropping S -> AB leaves B unreachable.
	assert.Equal(t, rules{'S': {"a"}}, chomsky.DropUnreachable(r).Rules())
}

func TestDropUnreachable(t *testing.T) {
	g := mustNew(t, 'S', rules{
		'S': {"aA"},
		'A': {"a"},
		'B': {"bS"},
	})
	assert.Equal(t, rules{'S': {"aA"}, 'A': {"a"}}, chomsky.DropUnreachable(g).Rules())
	assert.Contains(t, g.Rules(), chomsky.Symbol('B'))
}

func TestEliminateEpsilon(t *testing.T) {
	for _, test := range []struct {
		name     string
		start    chomsky.Symbol
		in       rules
		outStart chomsky.Symbol
		out      rules
	}{
		{
			name:     "start not nullable",
			start:    'S',
			in:       rules{'S': {"AB"}, 'A': {"aA", ""}, 'B': {"b"}},
			outStart: 'S',
			out:      rules{'S': {"AB", "B"}, 'A': {"a", "aA"}, 'B': {"b"}},
		},
		{
			name:     "start nullable and recursive",
			start:    'S',
			in:       rules{'S': {"SS", "a", ""}},
			outStart: '$',
			out:      rules{'$': {"", "S"}, 'S': {"SS", "a"}},
		},
		{
			name:     "start nullable but never used in a body",
			start:    'S',
			in:       rules{'S': {"AB"}, 'A': {"a", ""}, 'B': {"b", ""}},
			outStart: 'S',
			out:      rules{'S': {"", "A", "AB", "B"}, 'A': {"a"}, 'B': {"b"}},
		},
		{
			name:     "nothing nullable",
			start:    'S',
			in:       rules{'S': {"aS", "a"}},
			outStart: 'S',
			out:      rules{'S': {"a", "aS"}},
		},
		{
			name:     "only ε",
			start:    'S',
			in:       rules{'S': {""}, 'A': {"Aa", ""}},
			outStart: 'S',
			out:      rules{'S': {""}, 'A': {"Aa", "a"}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			g := mustNew(t, test.start, test.in)
			before := g.String()
			r, err := chomsky.EliminateEpsilon(g)
			require.NoError(t, err)
			assert.Equal(t, test.outStart, r.Start())
			assert.Equal(t, test.out, r.Rules())
			assert.Equal(t, before, g.String())
			again, err := chomsky.EliminateEpsilon(r)
			require.NoError(t, err)
			assert.True(t, r.Equal(again), "not idempotent")
		})
	}
}

func TestEliminateUnitRules(t *testing.T) {
	for _, test := range []struct {
		name string
		in   rules
		out  rules
	}{
		{
			name: "chain",
			in:   rules{'S': {"A", "b"}, 'A': {"B", "a"}, 'B': {"c"}},
			out:  rules{'S': {"a", "b", "c"}, 'A': {"a", "c"}, 'B': {"c"}},
		},
		{
			name: "cycle",
			in:   rules{'S': {"A", "a"}, 'A': {"S", "b"}},
			out:  rules{'S': {"a", "b"}, 'A': {"a", "b"}},
		},
		{
			name: "self loop",
			in:   rules{'S': {"S", "aS", "b"}},
			out:  rules{'S': {"aS", "b"}},
		},
		{
			name: "unit to a nonterminal without rules",
			in:   rules{'S': {"A"}},
			out:  rules{},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			g := mustNew(t, 'S', test.in)
			r := chomsky.EliminateUnitRules(g)
			assert.Equal(t, test.out, r.Rules())
			assert.True(t, r.Equal(chomsky.EliminateUnitRules(r)), "not idempotent")
		})
	}
}

func TestBinarizeLongRules(t *testing.T) {
	for _, test := range []struct {
		name string
		in   rules
		out  rules
	}{
		{
			name: "chain",
			in:   rules{'S': {"ABCD"}, 'A': {"a"}, 'B': {"b"}, 'C': {"c"}, 'D': {"d"}},
			out:  rules{'S': {"AE"}, 'E': {"BF"}, 'F': {"CD"}, 'A': {"a"}, 'B': {"b"}, 'C': {"c"}, 'D': {"d"}},
		},
		{
			name: "repeated suffix",
			in:   rules{'S': {"aBC", "dBC"}, 'B': {"b"}, 'C': {"c"}},
			out:  rules{'S': {"aA", "dA"}, 'A': {"BC"}, 'B': {"b"}, 'C': {"c"}},
		},
		{
			name: "existing nonterminal",
			in:   rules{'S': {"aXY"}, 'T': {"XY"}, 'X': {"x"}, 'Y': {"y"}},
			out:  rules{'S': {"aT"}, 'T': {"XY"}, 'X': {"x"}, 'Y': {"y"}},
		},
		{
			name: "short bodies",
			in:   rules{'S': {"ab", "a", ""}},
			out:  rules{'S': {"", "a", "ab"}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			g := mustNew(t, 'S', test.in)
			r, err := chomsky.BinarizeLongRules(g)
			require.NoError(t, err)
			assert.Equal(t, test.out, r.Rules())
			again, err := chomsky.BinarizeLongRules(r)
			require.NoError(t, err)
			assert.True(t, r.Equal(again), "not idempotent")
		})
	}
}

func TestIsolateTerminals(t *testing.T) {
	for _, test := range []struct {
		name string
		in   rules
		out  rules
	}{
		{
			name: "existing nonterminal",
			in:   rules{'S': {"aB", "BA", "a"}, 'A': {"a"}, 'B': {"b"}},
			out:  rules{'S': {"AB", "BA", "a"}, 'A': {"a"}, 'B': {"b"}},
		},
		{
			name: "fresh nonterminals",
			in:   rules{'S': {"aB", "ab"}, 'B': {"b", "c"}},
			out:  rules{'S': {"AB", "AC"}, 'A': {"a"}, 'B': {"b", "c"}, 'C': {"b"}},
		},
		{
			name: "same terminal twice",
			in:   rules{'S': {"aa"}},
			out:  rules{'S': {"AA"}, 'A': {"a"}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			g := mustNew(t, 'S', test.in)
			r, err := chomsky.IsolateTerminals(g)
			require.NoError(t, err)
			assert.Equal(t, test.out, r.Rules())
			again, err := chomsky.IsolateTerminals(r)
			require.NoError(t, err)
			assert.True(t, r.Equal(again), "not idempotent")
		})
	}
}

func TestObserver(t *testing.T) {
	g := mustNew(t, 'S', rules{'S': {"AB", "a"}, 'A': {"aA"}, 'B': {"b"}})
	var events []chomsky.Event
	chomsky.DropNonGenerating(g, chomsky.WithObserver(chomsky.ObserverFunc(func(e chomsky.Event) {
		events = append(events, e)
	})))
	require.Len(t, events, 6)
	assert.Equal(t, chomsky.StageStarted, events[0].Kind)
	assert.Equal(t, chomsky.SetComputed, events[1].Kind)
	assert.Equal(t, "generating", events[1].Set)
	assert.Equal(t, []chomsky.Symbol{'B', 'S'}, events[1].Symbols)
	assert.Equal(t, "non-generating", events[2].Set)
	assert.Equal(t, []chomsky.Symbol{'A'}, events[2].Symbols)
	assert.Equal(t, chomsky.Event{Kind: chomsky.RuleRemoved, Stage: chomsky.StageNonGenerating, LHS: 'S', Body: "AB"}, events[3])
	assert.Equal(t, chomsky.Event{Kind: chomsky.RuleRemoved, Stage: chomsky.StageNonGenerating, LHS: 'A', Body: "aA"}, events[4])
	assert.Equal(t, chomsky.StageFinished, events[5].Kind)
	assert.Equal(t, rules{'S': {"a"}, 'B': {"b"}}, events[5].Grammar.Rules())
}
