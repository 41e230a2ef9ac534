package chomsky

import "fmt"

// EliminateEpsilon returns an equivalent grammar without ε-productions, except for the start symbol when the grammar
// derives the empty word. If the start symbol is nullable and occurs in some body, a new start symbol `$ → ε | S` is
// introduced so that ε never leaks into other derivations. It fails with ErrResourceExhausted when `$` is taken and no
// other nonterminal is left to take its place.
func EliminateEpsilon(g *Grammar, opts ...Option) (*Grammar, error) {
	o := newOptions(opts)
	o.started(StageEpsilon)
	g = g.clone()

	nullable := NullableSet(g)
	if len(nullable) == 0 {
		o.unchanged(StageEpsilon)
		return g, nil
	}
	o.set(StageEpsilon, "nullable", nullable)

	for _, a := range g.keys() {
		for _, body := range g.Bodies(a) {
			for _, reduced := range erasures(body, nullable) {
				// Self loops `A → A` never add anything to the language.
				if reduced == "" || reduced == a.String() {
					continue
				}
				if g.add(a, reduced) {
					o.added(StageEpsilon, a, reduced)
				}
			}
		}
	}

	if nullable.Has(g.start) {
		start, err := newStart(g)
		if err != nil {
			return nil, err
		}
		if start != 0 {
			old := g.start
			g.add(start, "")
			g.add(start, old.String())
			g.start = start
			o.emit(Event{Kind: StartChanged, Stage: StageEpsilon, LHS: start})
			o.added(StageEpsilon, start, "")
			o.added(StageEpsilon, start, old.String())
		} else {
			g.add(g.start, "")
		}
	}

	for _, a := range g.keys() {
		if a != g.start && g.HasRule(a, "") {
			g.remove(a, "")
			o.removed(StageEpsilon, a, "")
		}
	}
	o.finished(StageEpsilon, g)
	return g, nil
}

// newStart picks the symbol for a new start nonterminal, or returns 0 when the current start symbol never occurs in a
// body and can keep its ε-production directly.
func newStart(g *Grammar) (Symbol, error) {
	if !occurs(g, g.start) {
		return 0, nil
	}
	inUse := g.nonTerminals()
	if _, ok := inUse[Reserved]; !ok {
		return Reserved, nil
	}
	if s, ok := mint(inUse); ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: new start symbol for %v", ErrResourceExhausted, g.start)
}

// occurs reports whether s appears in any body.
func occurs(g *Grammar, s Symbol) bool {
	for _, bodies := range g.rules {
		for body := range bodies {
			for _, r := range body {
				if Symbol(r) == s {
					return true
				}
			}
		}
	}
	return false
}

// erasures returns every body obtained by deleting a non-empty subset of the nullable occurrences in body.
func erasures(body string, nullable SymbolSet) []string {
	ss := symbols(body)
	var positions []int
	for i, s := range ss {
		if nullable.Has(s) {
			positions = append(positions, i)
		}
	}
	var reduced []string
	for _, subset := range powerSet(positions) {
		reduced = append(reduced, join(without(ss, subset)))
	}
	return reduced
}

// without returns ss minus the symbols at the given ascending positions.
func without(ss []Symbol, positions []int) []Symbol {
	r := make([]Symbol, 0, len(ss)-len(positions))
	for i, s := range ss {
		if len(positions) != 0 && positions[0] == i {
			positions = positions[1:]
			continue
		}
		r = append(r, s)
	}
	return r
}

// powerSet returns all non-empty subsets of i.
func powerSet(i []int) [][]int {
	var ps [][]int
	for mask := 1; mask < 1<<len(i); mask++ {
		var s []int
		for j, v := range i {
			if mask&(1<<j) != 0 {
				s = append(s, v)
			}
		}
		ps = append(ps, s)
	}
	return ps
}
