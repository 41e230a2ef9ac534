package chomsky

import (
	"fmt"
	"strings"

	"github.com/0x51-dev/upeg/parser"
	"github.com/0x51-dev/upeg/parser/op"
)

var (
	grammar = op.Capture{
		Name: "Grammar",
		Value: op.OneOrMore{
			Value: op.Or{startDeclaration, productionRule},
		},
	}
	nonTerminal = op.Capture{
		Name:  "NonTerminal",
		Value: alternatives(nonTerminals),
	}
	terminal = op.Capture{
		Name:  "Terminal",
		Value: alternatives(terminals),
	}
	epsilon = op.Capture{
		Name:  "Epsilon",
		Value: op.Or{'_', 'ε'},
	}
	expression = op.Capture{
		Name:  "Expression",
		Value: op.OneOrMore{Value: op.Or{terminal, nonTerminal, epsilon}},
	}
	startDeclaration = op.Capture{
		Name: "Start",
		Value: op.And{
			"start:",
			nonTerminal,
			op.EndOfLine{},
		},
	}
	productionRule = op.Capture{
		Name: "ProductionRule",
		Value: op.And{
			nonTerminal,
			op.Or{'→', "->"},
			expression,
			op.ZeroOrMore{Value: op.And{'|', expression}},
			op.EndOfLine{},
		},
	}
)

func alternatives(symbols []Symbol) op.Or {
	var or op.Or
	for _, s := range symbols {
		or = append(or, rune(s))
	}
	return or
}

// Parse reads a grammar file. Each line is either the start declaration `start: S`, which must occur exactly once, or
// a production rule `A -> w1 | w2 | ...`. `_` (or `ε`) inside a body denotes the empty word, `#` starts a comment.
func Parse(input string) (*Grammar, error) {
	var lines []string
	for _, line := range strings.Split(input, "\n") {
		line, _, _ = strings.Cut(line, "#")
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty grammar")
	}

	p, err := parser.New([]rune(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		return nil, err
	}
	p.SetIgnoreList([]any{' ', '\t', '\r'})
	n, err := p.Parse(op.And{grammar, op.EOF{}})
	if err != nil {
		return nil, err
	}
	return parseGrammar(n)
}

func parseGrammar(n *parser.Node) (*Grammar, error) {
	if n.Name != "Grammar" {
		return nil, fmt.Errorf("expected Grammar, got %s", n.Name)
	}

	var start Symbol
	rules := make(map[Symbol][]string)
	for _, n := range n.Children() {
		switch n.Name {
		case "Start":
			if start != 0 {
				return nil, fmt.Errorf("start symbol declared more than once")
			}
			if len(n.Children()) != 1 {
				return nil, fmt.Errorf("expected 1 child, got %d", len(n.Children()))
			}
			start = Symbol([]rune(n.Children()[0].Value())[0])
		case "ProductionRule":
			if len(n.Children()) < 2 {
				return nil, fmt.Errorf("expected at least 2 children, got %d", len(n.Children()))
			}
			a := Symbol([]rune(n.Children()[0].Value())[0])
			for _, n := range n.Children()[1:] {
				if n.Name != "Expression" {
					return nil, fmt.Errorf("expected Expression, got %s", n.Name)
				}
				var body []Symbol
				for _, n := range n.Children() {
					switch n.Name {
					case "Terminal", "NonTerminal":
						body = append(body, Symbol([]rune(n.Value())[0]))
					case "Epsilon":
						// Explicit ε is dropped from the body.
					default:
						return nil, fmt.Errorf("expected Terminal, NonTerminal, or Epsilon, got %s", n.Name)
					}
				}
				rules[a] = append(rules[a], join(body))
			}
		default:
			return nil, fmt.Errorf("expected Start or ProductionRule, got %s", n.Name)
		}
	}
	if start == 0 {
		return nil, fmt.Errorf("no start symbol declared")
	}
	return New(start, rules)
}
