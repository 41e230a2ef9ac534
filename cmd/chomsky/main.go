package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/0x51-dev/chomsky"
	"github.com/0x51-dev/chomsky/narrate"
	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/olekukonko/tablewriter"
)

var cli struct {
	Grammar string        `short:"g" default:"input.txt" type:"existingfile" env:"CHOMSKY_GRAMMAR" help:"Grammar file."`
	Output  string        `short:"o" type:"path" env:"CHOMSKY_OUTPUT" help:"Also write the result to this file."`
	Quiet   bool          `short:"q" env:"CHOMSKY_QUIET" help:"Do not narrate the steps of the algorithms."`
	NoColor bool          `env:"CHOMSKY_NO_COLOR" help:"Disable colored output."`
	Timeout time.Duration `env:"CHOMSKY_TIMEOUT" help:"Cancel searches after this duration, 0 waits for Enter."`

	Words    wordsCmd  `cmd:"" help:"List the words of the language."`
	Detailed wordsCmd  `cmd:"" help:"List the words of the language with their derivations."`
	Derive   deriveCmd `cmd:"" help:"Show the derivation of a single word."`
	Simplify struct{}  `cmd:"" help:"Remove ε-productions, unit productions and useless nonterminals."`
	CNF      struct{}  `cmd:"" name:"cnf" help:"Convert the grammar to Chomsky Normal Form."`
	Shortest struct{}  `cmd:"" help:"Find the shortest words and their derivations."`
	Menu     struct{}  `cmd:"" help:"Choose the action interactively."`
}

type wordsCmd struct {
	Limit int `short:"l" default:"8" help:"Maximum word length, negative for no limit."`
}

type deriveCmd struct {
	Word string `arg:"" help:"Word to derive, _ for the empty word."`
}

const help = `Normalizes context-free grammars and derives words from them. The grammar file has the form:

  # comment
  start: S
  S -> aSb | _
`

func main() {
	ctx := kong.Parse(&cli, kong.Name("chomsky"), kong.Description(help), kong.UsageOnError())

	data, err := os.ReadFile(cli.Grammar)
	ctx.FatalIfErrorf(err)
	g, err := chomsky.Parse(string(data))
	ctx.FatalIfErrorf(err, "%s", cli.Grammar)

	r := &runner{
		g:       g,
		in:      os.Stdin,
		out:     color.Output,
		output:  cli.Output,
		timeout: cli.Timeout,
	}
	if cli.NoColor {
		r.out = os.Stdout
	}
	if !cli.Quiet {
		r.opts = append(r.opts, chomsky.WithObserver(narrate.New(narrate.NewConsoleSink(r.out, cli.NoColor))))
	}

	command := strings.Fields(ctx.Command())[0]
	if command == "menu" {
		command, err = menu()
		ctx.FatalIfErrorf(err)
	}
	ctx.FatalIfErrorf(r.run(command))
}

// menu asks for the action to run, and the arguments it needs.
func menu() (string, error) {
	prompt := promptui.Select{
		Label: "Action",
		Items: []string{"words", "detailed", "derive", "simplify", "cnf", "shortest"},
	}
	_, action, err := prompt.Run()
	if err != nil {
		return "", err
	}
	switch action {
	case "words", "detailed":
		limit := promptui.Prompt{
			Label:   "Maximum word length",
			Default: strconv.Itoa(cli.Words.Limit),
			Validate: func(s string) error {
				_, err := strconv.Atoi(s)
				return err
			},
		}
		s, err := limit.Run()
		if err != nil {
			return "", err
		}
		cli.Words.Limit, _ = strconv.Atoi(s)
		cli.Detailed.Limit = cli.Words.Limit
	case "derive":
		word := promptui.Prompt{Label: "Word"}
		if cli.Derive.Word, err = word.Run(); err != nil {
			return "", err
		}
	}
	return action, nil
}

type runner struct {
	g       *chomsky.Grammar
	opts    []chomsky.Option
	in      io.Reader
	out     io.Writer
	output  string
	timeout time.Duration
}

func (r *runner) run(command string) error {
	switch command {
	case "words":
		var words []string
		r.search(func(ctx context.Context) {
			words = chomsky.EnumerateWords(ctx, r.g, cli.Words.Limit, r.opts...)
		})
		return r.words(words)
	case "detailed":
		var chains []chomsky.Derivation
		r.search(func(ctx context.Context) {
			chains = chomsky.EnumerateWordsDetailed(ctx, r.g, cli.Detailed.Limit, r.opts...)
		})
		return r.derivations(chains)
	case "derive":
		word := strings.ReplaceAll(cli.Derive.Word, "_", "")
		var chain chomsky.Derivation
		r.search(func(ctx context.Context) {
			chain = chomsky.DeriveSpecificWord(ctx, r.g, word, r.opts...)
		})
		if chain == nil {
			return fmt.Errorf("%q can not be derived", word)
		}
		return r.derivations([]chomsky.Derivation{chain})
	case "simplify":
		fmt.Fprintf(r.out, "initial grammar:\n%v\n", r.g)
		s, err := chomsky.Simplify(r.g, r.opts...)
		if err != nil {
			return err
		}
		return r.write(s.String())
	case "cnf":
		fmt.Fprintf(r.out, "initial grammar:\n%v\n", r.g)
		cnf, err := chomsky.ToCNF(r.g, r.opts...)
		if err != nil {
			return err
		}
		return r.write(cnf.String())
	case "shortest":
		return r.shortest()
	}
	return fmt.Errorf("unknown command %q", command)
}

// shortest finds the shortest words on the CNF of the grammar, but derives them in the original grammar.
func (r *runner) shortest() error {
	cnf, err := chomsky.ToCNF(r.g, r.opts...)
	if err != nil {
		return err
	}
	var chains []chomsky.Derivation
	r.search(func(ctx context.Context) {
		for _, w := range chomsky.ShortestWords(ctx, cnf, r.opts...) {
			if chain := chomsky.DeriveSpecificWord(ctx, r.g, w); chain != nil {
				chains = append(chains, chain)
			}
		}
	})
	if len(chains) == 0 {
		return r.write("the language is empty\n")
	}
	return r.derivations(chains)
}

// search runs f on a worker goroutine. The context passed to f is cancelled when Enter is pressed, on interrupt or
// once the timeout expires.
func (r *runner) search(f func(ctx context.Context)) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(r.out, "press Enter to cancel...")
	// Reads from stdin can not be interrupted: the reader stays blocked after the search returned, until the next line
	// or the end of the process. Only the first search of a run listens for Enter.
	enter := make(chan struct{})
	go func() {
		if _, err := bufio.NewReader(r.in).ReadString('\n'); err != nil && err != io.EOF {
			log.Printf("reading stdin: %v", err)
		}
		close(enter)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		f(ctx)
	}()
	select {
	case <-done:
	case <-enter:
		cancel()
		<-done
	}
}

func (r *runner) words(words []string) error {
	table := tablewriter.NewWriter(r.out)
	table.Header([]string{"#", "Word", "Length"})
	var sb strings.Builder
	for i, w := range words {
		table.Append([]string{strconv.Itoa(i + 1), epsilon(w), strconv.Itoa(len([]rune(w)))})
		fmt.Fprintln(&sb, epsilon(w))
	}
	table.Render()
	return r.save(sb.String())
}

func (r *runner) derivations(chains []chomsky.Derivation) error {
	table := tablewriter.NewWriter(r.out)
	table.Header([]string{"#", "Word", "Derivation"})
	var sb strings.Builder
	for i, chain := range chains {
		table.Append([]string{strconv.Itoa(i + 1), epsilon(chain.Word()), chain.String()})
		fmt.Fprintln(&sb, chain)
	}
	table.Render()
	return r.save(sb.String())
}

func (r *runner) write(s string) error {
	fmt.Fprintln(r.out, s)
	return r.save(s)
}

// save writes the result to the output file, if one was given.
func (r *runner) save(s string) error {
	if r.output == "" {
		return nil
	}
	return os.WriteFile(r.output, []byte(s), 0644)
}

func epsilon(w string) string {
	if w == "" {
		return chomsky.Epsilon
	}
	return w
}
