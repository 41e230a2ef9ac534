package chomsky

import (
	"context"
	"sort"
	"strconv"
)

// ShortestWords returns all words of minimal length of a grammar in Chomsky Normal Form. Positions of the sentential
// form are fixed from left to right: a nonterminal that derives a terminal directly is always replaced by it, and only
// nonterminals without such a body are expanded into their binary bodies, one expansion per round. The first round in
// which any form is resolved yields the answer. An empty result means the language is empty.
func ShortestWords(ctx context.Context, g *Grammar, opts ...Option) []string {
	o := newOptions(opts)
	o.started(StageShortest)
	if _, ok := g.rules[g.start]; !ok {
		return nil
	}
	if g.HasRule(g.start, "") {
		o.emit(Event{Kind: WordFound, Stage: StageShortest})
		return []string{""}
	}

	replacements := make(map[Symbol][]Symbol)
	for _, a := range g.keys() {
		for _, body := range g.Bodies(a) {
			if ss := symbols(body); len(ss) == 1 && ss[0].IsTerminal() {
				replacements[a] = append(replacements[a], ss[0])
			}
		}
	}

	type candidate struct {
		form  []Symbol
		index int
	}
	seen := make(map[string]bool)
	curr := []candidate{{form: []Symbol{g.start}}}
	for len(curr) != 0 {
		if ctx.Err() != nil {
			return nil
		}
		words := make(map[string]struct{})
		var next []candidate
		for _, c := range curr {
			stack := []candidate{c}
			for len(stack) != 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for c.index < len(c.form) && c.form[c.index].IsTerminal() {
					c.index++
				}
				if c.index == len(c.form) {
					words[join(c.form)] = struct{}{}
					continue
				}
				a := c.form[c.index]
				if ts := replacements[a]; len(ts) != 0 {
					for _, t := range ts {
						form := append([]Symbol(nil), c.form...)
						form[c.index] = t
						stack = append(stack, candidate{form: form, index: c.index + 1})
					}
					continue
				}
				for _, body := range g.Bodies(a) {
					form := make([]Symbol, 0, len(c.form)+1)
					form = append(form, c.form[:c.index]...)
					form = append(form, symbols(body)...)
					form = append(form, c.form[c.index+1:]...)
					if key := join(form) + "@" + strconv.Itoa(c.index); !seen[key] {
						seen[key] = true
						next = append(next, candidate{form: form, index: c.index})
					}
				}
			}
		}
		if len(words) != 0 {
			result := make([]string, 0, len(words))
			for w := range words {
				result = append(result, w)
			}
			sort.Slice(result, func(i, j int) bool {
				if len(result[i]) == len(result[j]) {
					return result[i] < result[j]
				}
				return len(result[i]) < len(result[j])
			})
			for _, w := range result {
				o.emit(Event{Kind: WordFound, Stage: StageShortest, Word: w})
			}
			return result
		}
		curr = next
	}
	return nil
}
