package chomsky

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/maps"
)

// NoLimit disables the word length bound of EnumerateWords and EnumerateWordsDetailed.
const NoLimit = -1

// Derivation is the chain of sentential forms from the start symbol to a word.
type Derivation []string

// Word returns the last sentential form of the derivation.
func (d Derivation) Word() string {
	if len(d) == 0 {
		return ""
	}
	return d[len(d)-1]
}

func (d Derivation) String() string {
	ss := make([]string, len(d))
	for i, s := range d {
		ss[i] = render(s)
	}
	return strings.Join(ss, " -> ")
}

// EnumerateWords returns the words of the language with at most limit symbols, ordered by length and then
// lexicographically. Sentential forms are expanded one generation at a time. Any bounded limit ends the search, with
// NoLimit it only ends for finite languages. Cancelling ctx stops the generation being expanded.
func EnumerateWords(ctx context.Context, g *Grammar, limit int, opts ...Option) []string {
	o := newOptions(opts)
	o.started(StageWords)
	var words []string
	newSearch(g, limit).run(ctx, false, func(form string, _ Derivation) bool {
		o.emit(Event{Kind: WordFound, Stage: StageWords, Word: form})
		words = append(words, form)
		return false
	})
	sort.Slice(words, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(words[i]), utf8.RuneCountInString(words[j])
		if li == lj {
			return words[i] < words[j]
		}
		return li < lj
	})
	return words
}

// EnumerateWordsDetailed is EnumerateWords, but returns the derivation of every word, ordered by number of steps.
func EnumerateWordsDetailed(ctx context.Context, g *Grammar, limit int, opts ...Option) []Derivation {
	o := newOptions(opts)
	o.started(StageWords)
	var chains []Derivation
	newSearch(g, limit).run(ctx, true, func(form string, chain Derivation) bool {
		o.emit(Event{Kind: WordFound, Stage: StageWords, Word: form, Chain: chain})
		chains = append(chains, chain)
		return false
	})
	sort.SliceStable(chains, func(i, j int) bool {
		return len(chains[i]) < len(chains[j])
	})
	return chains
}

// DeriveSpecificWord returns a derivation of word, or nil if the word is not in the language.
func DeriveSpecificWord(ctx context.Context, g *Grammar, word string, opts ...Option) Derivation {
	o := newOptions(opts)
	o.started(StageDerive)
	s := newSearch(g, utf8.RuneCountInString(word))
	s.target, s.exact = symbols(word), true
	var derivation Derivation
	s.run(ctx, true, func(form string, chain Derivation) bool {
		if form != word {
			return false
		}
		o.emit(Event{Kind: WordFound, Stage: StageDerive, Word: form, Chain: chain})
		derivation = chain
		return true
	})
	return derivation
}

// search is the breadth-first exploration of sentential forms shared by the enumeration algorithms. Forms are
// rewritten with the ε-free rules of the grammar, every body with any subset of its nullable occurrences left out.
// Each symbol of such a form yields at least one terminal, so the length of a form never exceeds the length of the
// words it derives. Derivation chains are replayed with the rules of the grammar itself.
type search struct {
	start  Symbol
	keys   []Symbol
	rules  map[Symbol][]rule
	limit  int
	target []Symbol
	exact  bool

	erase      map[Symbol]string
	generating SymbolSet
}

// rule is an ε-free body and the body of the grammar it comes from.
type rule struct {
	body   []Symbol
	origin []Symbol
	erased []int // Ascending positions in origin that derive ε.
}

func newSearch(g *Grammar, limit int) *search {
	erase := erasers(g)
	nullable := keySet(erase)
	keys := g.keys()
	rules := make(map[Symbol][]rule, len(keys))
	for _, a := range keys {
		seen := make(map[string]bool)
		for _, body := range g.Bodies(a) {
			origin := symbols(body)
			var positions []int
			for i, s := range origin {
				if nullable.Has(s) {
					positions = append(positions, i)
				}
			}
			for _, erased := range append([][]int{nil}, powerSet(positions)...) {
				r := rule{body: without(origin, erased), origin: origin, erased: erased}
				// The empty word is only derived from the start symbol, see run.
				b := join(r.body)
				if b == "" || b == a.String() || seen[b] {
					continue
				}
				seen[b] = true
				rules[a] = append(rules[a], r)
			}
		}
	}
	return &search{
		start:      g.start,
		keys:       keys,
		rules:      rules,
		limit:      limit,
		erase:      erase,
		generating: GeneratingSet(g),
	}
}

// erasers picks an ε-derivation for every nullable nonterminal: a body whose symbols all became nullable in an
// earlier round of the fixpoint, so that erasing a symbol always ends.
func erasers(g *Grammar) map[Symbol]string {
	erase := make(map[Symbol]string)
	for {
		round := make(map[Symbol]string)
		for _, a := range g.keys() {
			if _, ok := erase[a]; ok {
				continue
			}
			for _, body := range g.Bodies(a) {
				if all(body, func(s Symbol) bool { _, ok := erase[s]; return ok }) {
					round[a] = body
					break
				}
			}
		}
		if len(round) == 0 {
			return erase
		}
		maps.Copy(erase, round)
	}
}

type node struct {
	form  []Symbol
	chain Derivation
}

// run expands the forms generation by generation and calls found for every complete form, once per form. The search
// ends when found returns true or a generation is empty. ctx is checked once per form: once it is done, the current
// generation is abandoned and the next one only holds what was produced so far.
func (s *search) run(ctx context.Context, track bool, found func(form string, chain Derivation) bool) {
	if ctx.Err() != nil {
		return
	}
	root := node{form: []Symbol{s.start}}
	if track {
		root.chain = Derivation{s.start.String()}
	}
	if _, ok := s.erase[s.start]; ok {
		var chain Derivation
		if track {
			chain, _ = s.eraseAt(root.chain, root.form, 0)
		}
		if found("", chain) {
			return
		}
	}

	seen := map[string]bool{s.start.String(): true}
	curr := []node{root}
	for len(curr) != 0 {
		var next []node
		for _, n := range curr {
			if ctx.Err() != nil {
				break
			}
			if form := join(n.form); complete(form) {
				if found(form, n.chain) {
					return
				}
				continue
			}
			for _, m := range s.successors(n, track) {
				if key := join(m.form); !seen[key] {
					seen[key] = true
					next = append(next, m)
				}
			}
		}
		curr = next
	}
}

// successors replaces the leftmost occurrence of every rule key by each of its ε-free bodies, keeping the viable
// forms.
func (s *search) successors(n node, track bool) []node {
	var nodes []node
	for _, a := range s.keys {
		i := position(n.form, a)
		if i < 0 {
			continue
		}
		for _, r := range s.rules[a] {
			m := node{form: splice(n.form, i, r.body)}
			if !s.viable(m.form) {
				continue
			}
			if track {
				m.chain = s.replay(n.chain, n.form, i, r)
			}
			nodes = append(nodes, m)
		}
	}
	return nodes
}

// replay extends chain with the steps of the grammar that apply r at position i of form: the original body first,
// then the erasure of every nullable symbol r leaves out, right to left so that positions stay valid.
func (s *search) replay(chain Derivation, form []Symbol, i int, r rule) Derivation {
	form = splice(form, i, r.origin)
	chain = append(chain[:len(chain):len(chain)], join(form))
	for j := len(r.erased) - 1; j >= 0; j-- {
		chain, form = s.eraseAt(chain, form, i+r.erased[j])
	}
	return chain
}

// eraseAt derives ε from the nullable symbol at position i of form.
func (s *search) eraseAt(chain Derivation, form []Symbol, i int) (Derivation, []Symbol) {
	body := symbols(s.erase[form[i]])
	form = splice(form, i, body)
	chain = append(chain, join(form))
	for j := len(body) - 1; j >= 0; j-- {
		chain, form = s.eraseAt(chain, form, i+j)
	}
	return chain, form
}

// viable reports whether a form can still produce a word within the limit, and the target if there is one.
func (s *search) viable(form []Symbol) bool {
	if s.limit >= 0 && len(form) > s.limit {
		return false
	}
	prefix := true
	for i, sym := range form {
		if sym.IsTerminal() {
			if prefix && s.exact && (i >= len(s.target) || s.target[i] != sym) {
				return false
			}
			continue
		}
		prefix = false
		if !s.generating.Has(sym) {
			return false
		}
	}
	return true
}

// complete reports whether the form consists of terminals only.
func complete(form string) bool {
	return all(form, Symbol.IsTerminal)
}

// splice returns a copy of form with the symbol at i replaced by body.
func splice(form []Symbol, i int, body []Symbol) []Symbol {
	r := make([]Symbol, 0, len(form)-1+len(body))
	r = append(r, form[:i]...)
	r = append(r, body...)
	return append(r, form[i+1:]...)
}

func position(form []Symbol, a Symbol) int {
	for i, s := range form {
		if s == a {
			return i
		}
	}
	return -1
}
