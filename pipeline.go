package chomsky

// Simplify returns the reduced form of the grammar: no ε-productions (except possibly on the start symbol), no unit
// productions and no useless nonterminals.
func Simplify(g *Grammar, opts ...Option) (*Grammar, error) {
	g, err := EliminateEpsilon(g, opts...)
	if err != nil {
		return nil, err
	}
	g = EliminateUnitRules(g, opts...)
	g = DropNonGenerating(g, opts...)
	return DropUnreachable(g, opts...), nil
}

// ToCNF converts a context-free grammar to Chomsky Normal Form. Terminals are isolated last, once every body has at
// most two symbols.
func ToCNF(g *Grammar, opts ...Option) (*Grammar, error) {
	g, err := BinarizeLongRules(g, opts...)
	if err != nil {
		return nil, err
	}
	if g, err = Simplify(g, opts...); err != nil {
		return nil, err
	}
	return IsolateTerminals(g, opts...)
}

// IsCNF reports whether every body is a single terminal or two nonterminals, with ε allowed only on the start symbol.
func IsCNF(g *Grammar) bool {
	for a, bodies := range g.rules {
		for body := range bodies {
			ss := symbols(body)
			switch len(ss) {
			case 0:
				if a != g.start {
					return false
				}
			case 1:
				if !ss[0].IsTerminal() {
					return false
				}
			case 2:
				if !ss[0].IsNonTerminal() || !ss[1].IsNonTerminal() {
					return false
				}
			default:
				return false
			}
		}
	}
	return true
}
