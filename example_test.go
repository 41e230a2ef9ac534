package chomsky_test

import (
	"context"
	"fmt"

	"github.com/0x51-dev/chomsky"
)

func ExampleToCNF() {
	g, _ := chomsky.Parse(`
		start: S
		S -> aSb | ab
	`)
	cnf, _ := chomsky.ToCNF(g)
	fmt.Print(cnf)
	// Output:
	// start: S
	// S -> BA | BC
	// A -> SC
	// B -> a
	// C -> b
}

func ExampleDeriveSpecificWord() {
	g, _ := chomsky.Parse(`
		start: S
		S -> aSb | ab
	`)
	fmt.Println(chomsky.DeriveSpecificWord(context.Background(), g, "aabb"))
	// Output:
	// S -> aSb -> aabb
}

func ExampleEnumerateWords() {
	g, _ := chomsky.Parse(`
		start: S
		S -> aSb | ab
	`)
	for _, w := range chomsky.EnumerateWords(context.Background(), g, 6) {
		fmt.Println(w)
	}
	// Output:
	// ab
	// aabb
	// aaabbb
}

func ExampleShortestWords() {
	g, _ := chomsky.Parse(`
		start: S
		S -> SS | (S) | [S] | () | []
	`)
	cnf, _ := chomsky.ToCNF(g)
	fmt.Println(chomsky.ShortestWords(context.Background(), cnf))
	// Output:
	// [() []]
}
