package chomsky

// EliminateUnitRules returns an equivalent grammar without unit productions `A → B`. Every nonterminal inherits the
// non-unit bodies of all nonterminals it reaches through chains of unit productions.
func EliminateUnitRules(g *Grammar, opts ...Option) *Grammar {
	o := newOptions(opts)
	o.started(StageUnit)
	g = g.clone()

	units := unitRules(g)
	if len(units) == 0 {
		o.unchanged(StageUnit)
		return g
	}
	closure := UnitClosure(g)
	for _, a := range sorted(keySet(closure)) {
		o.set(StageUnit, "unit closure of "+a.String(), closure[a])
	}

	// Bodies are collected first, so that no nonterminal copies bodies another one inherited in the same pass.
	inherited := make(map[Symbol][]string)
	for _, a := range sorted(keySet(closure)) {
		for _, b := range closure[a].Sorted() {
			for _, body := range g.Bodies(b) {
				// Unit bodies, including `A → A`, are covered by the closure itself.
				if _, ok := unit(body); ok {
					continue
				}
				inherited[a] = append(inherited[a], body)
			}
		}
	}
	for _, a := range sorted(keySet(inherited)) {
		for _, body := range inherited[a] {
			if g.add(a, body) {
				o.added(StageUnit, a, body)
			}
		}
	}

	for _, a := range sorted(keySet(units)) {
		for _, b := range units[a].Sorted() {
			g.remove(a, b.String())
			o.removed(StageUnit, a, b.String())
		}
	}
	o.finished(StageUnit, g)
	return g
}

func keySet[V any](m map[Symbol]V) SymbolSet {
	set := make(SymbolSet, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}
