package chomsky

// Stage names the algorithm an event belongs to.
type Stage string

const (
	StageNonGenerating Stage = "remove non-generating nonterminals"
	StageUnreachable   Stage = "remove unreachable nonterminals"
	StageEpsilon       Stage = "remove ε-productions"
	StageUnit          Stage = "remove unit productions"
	StageLong          Stage = "split long productions"
	StageTerminals     Stage = "isolate terminals"
	StageWords         Stage = "make words"
	StageDerive        Stage = "derive word"
	StageShortest      Stage = "find shortest words"
)

// EventKind distinguishes narration events.
type EventKind int

const (
	// StageStarted opens a stage.
	StageStarted EventKind = iota
	// SetComputed reports a symbol set computed by a closure, named by Event.Set.
	SetComputed
	// RuleRemoved reports that Event.LHS → Event.Body was deleted.
	RuleRemoved
	// RuleAdded reports that Event.LHS → Event.Body was added.
	RuleAdded
	// StartChanged reports that Event.LHS became the start symbol.
	StartChanged
	// NothingToDo reports that the stage left the grammar unchanged.
	NothingToDo
	// StageFinished closes a stage, Event.Grammar holds the result of transformations.
	StageFinished
	// WordFound reports a complete word, with its derivation if one was tracked.
	WordFound
)

// Event is a single narration step of an algorithm. Only the fields relevant to the kind are set.
type Event struct {
	Kind    EventKind
	Stage   Stage
	Set     string
	Symbols []Symbol
	LHS     Symbol
	Body    string
	Word    string
	Chain   Derivation
	Grammar *Grammar
}

// Observer receives narration events. Observers never influence the algorithms.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Option configures a transformation or a search.
type Option func(*options)

// WithObserver attaches an observer that is told about every step.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

type options struct {
	observer Observer
}

func newOptions(opts []Option) *options {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) emit(e Event) {
	if o.observer != nil {
		o.observer.Observe(e)
	}
}

func (o *options) started(stage Stage) {
	o.emit(Event{Kind: StageStarted, Stage: stage})
}

func (o *options) set(stage Stage, name string, set map[Symbol]struct{}) {
	if o.observer == nil {
		return
	}
	o.emit(Event{Kind: SetComputed, Stage: stage, Set: name, Symbols: sorted(set)})
}

func (o *options) added(stage Stage, a Symbol, body string) {
	o.emit(Event{Kind: RuleAdded, Stage: stage, LHS: a, Body: body})
}

func (o *options) removed(stage Stage, a Symbol, body string) {
	o.emit(Event{Kind: RuleRemoved, Stage: stage, LHS: a, Body: body})
}

func (o *options) unchanged(stage Stage) {
	o.emit(Event{Kind: NothingToDo, Stage: stage})
}

func (o *options) finished(stage Stage, g *Grammar) {
	o.emit(Event{Kind: StageFinished, Stage: stage, Grammar: g})
}
