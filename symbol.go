package chomsky

// Epsilon is how the empty production body is rendered.
const Epsilon = "ε"

// Reserved is the nonterminal introduced as the new start symbol when the empty word must be kept. It is never handed
// out when minting fresh nonterminals.
const Reserved Symbol = '$'

// Symbol is a single grammar character, either a terminal or a nonterminal.
type Symbol rune

func (s Symbol) String() string {
	return string(s)
}

// IsNonTerminal reports whether the symbol is an admissible nonterminal.
func (s Symbol) IsNonTerminal() bool {
	_, ok := nonTerminalIndex[s]
	return ok
}

// IsTerminal reports whether the symbol is an admissible terminal.
func (s Symbol) IsTerminal() bool {
	_, ok := terminalIndex[s]
	return ok
}

// nonTerminals is the admissible nonterminal alphabet. The order is the order in which fresh nonterminals are minted.
var nonTerminals = []Symbol(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"ÀÁÂÃÄÅÇÈÉÊËÌÍÎÏÑÒÓÔÕÖÙÚÛÜÝ" +
		"ĀĂĄĆĈĊČĎĐĒĔĖĘĚĜĞĠĢĤĨĪĬĮİĴĶĹĻĽĿŁŃŅŇŊŌŎŐŔŖŘŚŜŞŠŢŤŦŨŪŬŮŰŲŴŶŸŹŻŽ" +
		"ƆƏƔƝƠƯƱƲǍǤǦǪǺȘȚȞȲÞƊƋƑƓƗƘƜƟƢƤƦƧƬƮƳƵƸ" +
		"ǏǑǓǕǗǙǛǞǠǨǬǮǴǷǸȀȂȄȆȈȊȌȎȐȒȔȖȠȤȦȨȪȬȮȰɁɃɄɈɊɌ" +
		"$",
)

// terminals is the admissible terminal alphabet.
var terminals = []Symbol(
	"abcdefghijklmnopqrstuvwxyz" +
		"0123456789" +
		`!@%^&*()-=+[]{}\;:<.>/?,`,
)

var (
	nonTerminalIndex = index(nonTerminals)
	terminalIndex    = index(terminals)
)

func index(symbols []Symbol) map[Symbol]int {
	m := make(map[Symbol]int, len(symbols))
	for i, s := range symbols {
		m[s] = i
	}
	return m
}

// less orders symbols the way they appear in the admissible alphabets, nonterminals first.
func less(a, b Symbol) bool {
	return order(a) < order(b)
}

func order(s Symbol) int {
	if i, ok := nonTerminalIndex[s]; ok {
		return i
	}
	if i, ok := terminalIndex[s]; ok {
		return len(nonTerminals) + i
	}
	return len(nonTerminals) + len(terminals) + int(s)
}
