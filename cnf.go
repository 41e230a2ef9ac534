package chomsky

import "fmt"

// BinarizeLongRules splits every body longer than two symbols into a chain of binary bodies:
//
//	S → ABCD
//
//	S → AX
//	X → BY
//	Y → CD
//
// A nonterminal whose only body already equals a remaining suffix is reused instead of minting a new one.
func BinarizeLongRules(g *Grammar, opts ...Option) (*Grammar, error) {
	o := newOptions(opts)
	o.started(StageLong)
	input := g
	g = g.clone()

	inUse := g.nonTerminals()
	reverse := make(map[string]Symbol) // Suffixes already bound to a fresh nonterminal in this pass.
	var found bool
	for _, a := range g.keys() {
		for _, body := range g.Bodies(a) {
			if len(symbols(body)) <= 2 {
				continue
			}
			found = true
			g.remove(a, body)
			o.removed(StageLong, a, body)

			prev, rest := a, symbols(body)
			for len(rest) > 2 {
				suffix := join(rest[1:])
				if v, ok := reusable(input, reverse, suffix); ok {
					rest = []Symbol{rest[0], v}
					break
				}
				v, ok := mint(inUse)
				if !ok {
					return nil, fmt.Errorf("%w: splitting %v -> %s", ErrResourceExhausted, a, body)
				}
				reverse[suffix] = v
				if g.add(prev, join([]Symbol{rest[0], v})) {
					o.added(StageLong, prev, join([]Symbol{rest[0], v}))
				}
				prev, rest = v, rest[1:]
			}
			if g.add(prev, join(rest)) {
				o.added(StageLong, prev, join(rest))
			}
		}
	}
	if !found {
		o.unchanged(StageLong)
		return g, nil
	}
	o.finished(StageLong, g)
	return g, nil
}

// reusable looks for a nonterminal that derives exactly body in one step and nothing else.
func reusable(input *Grammar, reverse map[string]Symbol, body string) (Symbol, bool) {
	if v, ok := reverse[body]; ok {
		return v, true
	}
	for _, a := range input.keys() {
		if b, ok := input.soleBody(a); ok && b == body {
			return a, true
		}
	}
	return 0, false
}

// IsolateTerminals replaces the terminals of every two-symbol body by nonterminals that derive exactly that terminal,
// e.g. `S → aB` becomes `S → XB, X → a`.
func IsolateTerminals(g *Grammar, opts ...Option) (*Grammar, error) {
	o := newOptions(opts)
	o.started(StageTerminals)
	input := g
	g = g.clone()

	inUse := g.nonTerminals()
	reverse := make(map[string]Symbol)
	var found bool
	for _, a := range g.keys() {
		for _, body := range g.Bodies(a) {
			ss := symbols(body)
			if len(ss) != 2 || (!ss[0].IsTerminal() && !ss[1].IsTerminal()) {
				continue
			}
			found = true
			r := make([]Symbol, len(ss))
			for i, s := range ss {
				r[i] = s
				if !s.IsTerminal() {
					continue
				}
				v, ok := reusable(input, reverse, s.String())
				if !ok {
					if v, ok = mint(inUse); !ok {
						return nil, fmt.Errorf("%w: isolating %v in %v -> %s", ErrResourceExhausted, s, a, body)
					}
					reverse[s.String()] = v
				}
				if g.add(v, s.String()) {
					o.added(StageTerminals, v, s.String())
				}
				r[i] = v
			}
			g.remove(a, body)
			o.removed(StageTerminals, a, body)
			if g.add(a, join(r)) {
				o.added(StageTerminals, a, join(r))
			}
		}
	}
	if !found {
		o.unchanged(StageTerminals)
		return g, nil
	}
	o.finished(StageTerminals, g)
	return g, nil
}

// mint returns the first admissible nonterminal not in use and marks it used. The reserved start symbol is never
// returned.
func mint(inUse SymbolSet) (Symbol, bool) {
	for _, s := range nonTerminals {
		if s == Reserved || inUse.Has(s) {
			continue
		}
		inUse[s] = struct{}{}
		return s, true
	}
	return 0, false
}
