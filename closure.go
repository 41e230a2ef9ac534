package chomsky

// SymbolSet is a set of symbols.
type SymbolSet map[Symbol]struct{}

// Has reports whether s is in the set.
func (s SymbolSet) Has(symbol Symbol) bool {
	_, ok := s[symbol]
	return ok
}

// Sorted returns the members in alphabet order.
func (s SymbolSet) Sorted() []Symbol {
	return sorted(s)
}

// GeneratingSet returns the nonterminals that derive at least one string of terminals.
func GeneratingSet(g *Grammar) SymbolSet {
	generating := make(SymbolSet)
	for l := -1; l != len(generating); {
		l = len(generating)
		for a, bodies := range g.rules {
			if generating.Has(a) {
				continue
			}
			for body := range bodies {
				if all(body, func(s Symbol) bool { return !s.IsNonTerminal() || generating.Has(s) }) {
					generating[a] = struct{}{}
					break
				}
			}
		}
	}
	return generating
}

// ReachableSet returns the nonterminals that occur in some sentential form derived from the start symbol.
func ReachableSet(g *Grammar) SymbolSet {
	reachable := SymbolSet{g.start: {}}
	queue := []Symbol{g.start}
	for len(queue) != 0 {
		a := queue[0]
		queue = queue[1:]
		for body := range g.rules[a] {
			for _, s := range symbols(body) {
				if s.IsNonTerminal() && !reachable.Has(s) {
					reachable[s] = struct{}{}
					queue = append(queue, s)
				}
			}
		}
	}
	return reachable
}

// NullableSet returns the nonterminals that derive ε.
func NullableSet(g *Grammar) SymbolSet {
	nullable := make(SymbolSet)
	for l := -1; l != len(nullable); {
		l = len(nullable)
		for a, bodies := range g.rules {
			if nullable.Has(a) {
				continue
			}
			for body := range bodies {
				if all(body, nullable.Has) {
					nullable[a] = struct{}{}
					break
				}
			}
		}
	}
	return nullable
}

// UnitClosure returns, for every nonterminal with a unit production `A → B`, the nonterminals reachable through chains
// of unit productions. A itself is never part of its closure.
func UnitClosure(g *Grammar) map[Symbol]SymbolSet {
	units := unitRules(g)
	closure := make(map[Symbol]SymbolSet, len(units))
	for a := range units {
		visited := make(SymbolSet)
		stack := []Symbol{a}
		for len(stack) != 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited.Has(v) {
				continue
			}
			visited[v] = struct{}{}
			for w := range units[v] {
				stack = append(stack, w)
			}
		}
		delete(visited, a)
		closure[a] = visited
	}
	return closure
}

// unitRules returns the direct unit productions `A → B`, keyed by A.
func unitRules(g *Grammar) map[Symbol]SymbolSet {
	units := make(map[Symbol]SymbolSet)
	for a, bodies := range g.rules {
		for body := range bodies {
			if b, ok := unit(body); ok {
				if units[a] == nil {
					units[a] = make(SymbolSet)
				}
				units[a][b] = struct{}{}
			}
		}
	}
	return units
}

// unit reports whether the body is a single nonterminal.
func unit(body string) (Symbol, bool) {
	ss := symbols(body)
	if len(ss) != 1 || !ss[0].IsNonTerminal() {
		return 0, false
	}
	return ss[0], true
}

func all(body string, f func(Symbol) bool) bool {
	for _, r := range body {
		if !f(Symbol(r)) {
			return false
		}
	}
	return true
}
