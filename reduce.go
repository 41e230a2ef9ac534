package chomsky

// DropNonGenerating removes every production that mentions a nonterminal which cannot derive a string of terminals.
// Nonterminals left without productions disappear.
func DropNonGenerating(g *Grammar, opts ...Option) *Grammar {
	o := newOptions(opts)
	o.started(StageNonGenerating)
	g = g.clone()

	generating := GeneratingSet(g)
	o.set(StageNonGenerating, "generating", generating)
	nonGenerating := make(SymbolSet)
	for a := range g.nonTerminals() {
		if !generating.Has(a) {
			nonGenerating[a] = struct{}{}
		}
	}
	if len(nonGenerating) == 0 {
		o.unchanged(StageNonGenerating)
		return g
	}
	o.set(StageNonGenerating, "non-generating", nonGenerating)

	for _, a := range g.keys() {
		for _, body := range g.Bodies(a) {
			if !all(body, func(s Symbol) bool { return !nonGenerating.Has(s) }) {
				g.remove(a, body)
				o.removed(StageNonGenerating, a, body)
			}
		}
	}
	o.finished(StageNonGenerating, g)
	return g
}

// DropUnreachable removes the productions of every nonterminal that cannot be reached from the start symbol.
func DropUnreachable(g *Grammar, opts ...Option) *Grammar {
	o := newOptions(opts)
	o.started(StageUnreachable)
	g = g.clone()

	reachable := ReachableSet(g)
	o.set(StageUnreachable, "reachable", reachable)
	unreachable := make(SymbolSet)
	for a := range g.nonTerminals() {
		if !reachable.Has(a) {
			unreachable[a] = struct{}{}
		}
	}
	if len(unreachable) == 0 {
		o.unchanged(StageUnreachable)
		return g
	}
	o.set(StageUnreachable, "unreachable", unreachable)

	for _, a := range g.keys() {
		if unreachable.Has(a) {
			for _, body := range g.Bodies(a) {
				g.remove(a, body)
				o.removed(StageUnreachable, a, body)
			}
		}
	}
	o.finished(StageUnreachable, g)
	return g
}
