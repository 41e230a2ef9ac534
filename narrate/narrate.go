// Package narrate renders the steps of the grammar algorithms as colored console text.
package narrate

import (
	"fmt"
	"io"
	"strings"

	"github.com/0x51-dev/chomsky"
	"github.com/fatih/color"
)

// Color tags understood by sinks.
type Color int

const (
	Default Color = iota
	Green
	Red
	Yellow
	Cyan
)

// Sink is where narration text ends up.
type Sink interface {
	Write(text string)
	WriteLine(text string)
	SetColor(c Color)
	ResetColor()
	WriteColored(c Color, text string)
	WriteLineColored(c Color, text string)
}

// ConsoleSink writes to w, coloring text with ANSI escape sequences unless colors are disabled.
type ConsoleSink struct {
	w       io.Writer
	current Color
	colors  map[Color]*color.Color
}

// NewConsoleSink creates a sink writing to w. Pass color.Output to write to a terminal.
func NewConsoleSink(w io.Writer, noColor bool) *ConsoleSink {
	colors := map[Color]*color.Color{
		Default: color.New(color.Reset),
		Green:   color.New(color.FgGreen),
		Red:     color.New(color.FgRed),
		Yellow:  color.New(color.FgYellow),
		Cyan:    color.New(color.FgCyan, color.Bold),
	}
	for _, c := range colors {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return &ConsoleSink{w: w, colors: colors}
}

func (s *ConsoleSink) Write(text string) {
	s.WriteColored(s.current, text)
}

func (s *ConsoleSink) WriteLine(text string) {
	s.WriteLineColored(s.current, text)
}

func (s *ConsoleSink) SetColor(c Color) {
	s.current = c
}

func (s *ConsoleSink) ResetColor() {
	s.current = Default
}

func (s *ConsoleSink) WriteColored(c Color, text string) {
	if c == Default {
		fmt.Fprint(s.w, text)
		return
	}
	s.colors[c].Fprint(s.w, text)
}

func (s *ConsoleSink) WriteLineColored(c Color, text string) {
	s.WriteColored(c, text)
	fmt.Fprintln(s.w)
}

// Narrator is a chomsky.Observer that describes every event on a sink.
type Narrator struct {
	Sink Sink
}

// New creates a narrator for the given sink.
func New(sink Sink) *Narrator {
	return &Narrator{Sink: sink}
}

// Observe implements chomsky.Observer.
func (n *Narrator) Observe(e chomsky.Event) {
	switch e.Kind {
	case chomsky.StageStarted:
		n.Sink.WriteLineColored(Cyan, strings.ToUpper(string(e.Stage)))
	case chomsky.SetComputed:
		n.Sink.Write(fmt.Sprintf("%s: ", e.Set))
		if len(e.Symbols) == 0 {
			n.Sink.WriteLine("none")
			return
		}
		c := Green
		if e.Set == "non-generating" || e.Set == "unreachable" {
			c = Red
		}
		n.Sink.WriteLineColored(c, symbols(e.Symbols))
	case chomsky.RuleRemoved:
		n.Sink.WriteColored(Red, "- ")
		n.Sink.WriteLine(rule(e.LHS, e.Body))
	case chomsky.RuleAdded:
		n.Sink.WriteColored(Yellow, "+ ")
		n.Sink.WriteLine(rule(e.LHS, e.Body))
	case chomsky.StartChanged:
		n.Sink.Write("new start symbol: ")
		n.Sink.WriteLineColored(Yellow, e.LHS.String())
	case chomsky.NothingToDo:
		n.Sink.WriteLine("nothing to do")
		n.Sink.WriteLine("")
	case chomsky.StageFinished:
		n.Sink.WriteLine("result:")
		n.Sink.WriteLine(e.Grammar.String())
	case chomsky.WordFound:
		if e.Chain != nil {
			n.Sink.WriteLineColored(Green, e.Chain.String())
			return
		}
		n.Sink.WriteLineColored(Green, word(e.Word))
	}
}

func rule(a chomsky.Symbol, body string) string {
	return fmt.Sprintf("%v -> %s", a, word(body))
}

func word(w string) string {
	if w == "" {
		return chomsky.Epsilon
	}
	return w
}

func symbols(ss []chomsky.Symbol) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
