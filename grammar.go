package chomsky

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

var (
	// ErrInvalidSymbol is returned when a grammar uses a character outside both admissible alphabets.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrResourceExhausted is returned when no unused nonterminal is left to mint.
	ErrResourceExhausted = errors.New("nonterminal pool exhausted")
)

// Grammar is a context-free grammar (`G = (V, Σ, R, S)`) over single character symbols. Values are never mutated once
// returned: every transformation works on a copy.
type Grammar struct {
	start Symbol
	rules map[Symbol]map[string]struct{}
}

// New creates a grammar from the given start symbol and rules. The rules are copied, the caller keeps ownership of
// the map. An empty body denotes ε.
func New(start Symbol, rules map[Symbol][]string) (*Grammar, error) {
	if !start.IsNonTerminal() {
		return nil, fmt.Errorf("%w: start symbol %q is not a nonterminal", ErrInvalidSymbol, start)
	}
	g := &Grammar{
		start: start,
		rules: make(map[Symbol]map[string]struct{}, len(rules)),
	}
	for a, bodies := range rules {
		if !a.IsNonTerminal() {
			return nil, fmt.Errorf("%w: rule key %q is not a nonterminal", ErrInvalidSymbol, a)
		}
		for _, body := range bodies {
			for _, r := range body {
				if s := Symbol(r); !s.IsNonTerminal() && !s.IsTerminal() {
					return nil, fmt.Errorf("%w: %q in rule %v -> %s", ErrInvalidSymbol, s, a, render(body))
				}
			}
			g.add(a, body)
		}
	}
	return g, nil
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Rules returns a copy of the rule table, with the bodies of each nonterminal sorted.
func (g *Grammar) Rules() map[Symbol][]string {
	rules := make(map[Symbol][]string, len(g.rules))
	for a := range g.rules {
		rules[a] = g.Bodies(a)
	}
	return rules
}

// Bodies returns the sorted production bodies of the given nonterminal, nil if it has none.
func (g *Grammar) Bodies(a Symbol) []string {
	if _, ok := g.rules[a]; !ok {
		return nil
	}
	bodies := maps.Keys(g.rules[a])
	sort.Strings(bodies)
	return bodies
}

// HasRule reports whether `a → body` is a production of the grammar.
func (g *Grammar) HasRule(a Symbol, body string) bool {
	_, ok := g.rules[a][body]
	return ok
}

// NonTerminals returns the nonterminals currently in use: the start symbol, every rule key and every nonterminal that
// occurs in a body.
func (g *Grammar) NonTerminals() []Symbol {
	return sorted(g.nonTerminals())
}

// Terminals returns the terminals that occur in the bodies of the grammar.
func (g *Grammar) Terminals() []Symbol {
	ts := make(map[Symbol]struct{})
	for _, bodies := range g.rules {
		for body := range bodies {
			for _, r := range body {
				if s := Symbol(r); s.IsTerminal() {
					ts[s] = struct{}{}
				}
			}
		}
	}
	return sorted(ts)
}

// Equal checks if two grammars have the same start symbol and the same productions.
func (g *Grammar) Equal(other *Grammar) bool {
	if g.start != other.start || len(g.rules) != len(other.rules) {
		return false
	}
	for a, bodies := range g.rules {
		if len(bodies) != len(other.rules[a]) {
			return false
		}
		for body := range bodies {
			if !other.HasRule(a, body) {
				return false
			}
		}
	}
	return true
}

func (g *Grammar) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "start: %v\n", g.start)
	for _, a := range g.keys() {
		var bodies []string
		for _, body := range g.Bodies(a) {
			bodies = append(bodies, render(body))
		}
		fmt.Fprintf(&sb, "%v -> %s\n", a, strings.Join(bodies, " | "))
	}
	return sb.String()
}

// keys returns the rule keys, start symbol first, then in alphabet order.
func (g *Grammar) keys() []Symbol {
	keys := maps.Keys(g.rules)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == g.start || keys[j] == g.start {
			return keys[i] == g.start && keys[j] != g.start
		}
		return less(keys[i], keys[j])
	})
	return keys
}

func (g *Grammar) clone() *Grammar {
	c := &Grammar{
		start: g.start,
		rules: make(map[Symbol]map[string]struct{}, len(g.rules)),
	}
	for a, bodies := range g.rules {
		c.rules[a] = maps.Clone(bodies)
	}
	return c
}

// add inserts `a → body` and reports whether it was new.
func (g *Grammar) add(a Symbol, body string) bool {
	bodies, ok := g.rules[a]
	if !ok {
		bodies = make(map[string]struct{})
		g.rules[a] = bodies
	}
	if _, ok := bodies[body]; ok {
		return false
	}
	bodies[body] = struct{}{}
	return true
}

// remove deletes `a → body`, dropping the nonterminal entirely once it has no bodies left.
func (g *Grammar) remove(a Symbol, body string) {
	bodies, ok := g.rules[a]
	if !ok {
		return
	}
	delete(bodies, body)
	if len(bodies) == 0 {
		delete(g.rules, a)
	}
}

func (g *Grammar) nonTerminals() map[Symbol]struct{} {
	nts := map[Symbol]struct{}{g.start: {}}
	for a, bodies := range g.rules {
		nts[a] = struct{}{}
		for body := range bodies {
			for _, r := range body {
				if s := Symbol(r); s.IsNonTerminal() {
					nts[s] = struct{}{}
				}
			}
		}
	}
	return nts
}

// soleBody returns the only body of a, if it has exactly one.
func (g *Grammar) soleBody(a Symbol) (string, bool) {
	bodies := g.rules[a]
	if len(bodies) != 1 {
		return "", false
	}
	for body := range bodies {
		return body, true
	}
	return "", false
}

func render(body string) string {
	if body == "" {
		return Epsilon
	}
	return body
}

func sorted(set map[Symbol]struct{}) []Symbol {
	symbols := maps.Keys(set)
	sort.Slice(symbols, func(i, j int) bool {
		return less(symbols[i], symbols[j])
	})
	return symbols
}

// symbols splits a body into its symbols.
func symbols(body string) []Symbol {
	return []Symbol(body)
}

// join is the inverse of symbols.
func join(ss []Symbol) string {
	return string(ss)
}
