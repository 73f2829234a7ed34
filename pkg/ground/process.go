package ground

import (
	"context"

	"github.com/pkg/errors"
)

// Listener receives the push-based messages every process node in the
// engine produces: zero or more Result calls, each attributing a ground-DAG
// node to an argument tuple, followed by exactly one Complete call.
// Producers are responsible for the at-most-one-Complete guarantee
// (SPEC_FULL.md §8, invariant 1); listeners may assume it.
type Listener interface {
	Result(args []Term, node NodeID)
	Complete()
}

// listenerFunc adapts two plain functions into a Listener. Ground's own
// top-level collector is the named resultCollector type below, not this.
type listenerFunc struct {
	result   func(args []Term, node NodeID)
	complete func()
}

func (f listenerFunc) Result(args []Term, node NodeID) { f.result(args, node) }
func (f listenerFunc) Complete()                       { f.complete() }

// Config controls engine-wide resource limits and collaborators.
type Config struct {
	// MaxDepth bounds eval recursion; exceeding it surfaces as
	// UnboundProgramError rather than exhausting the host call stack
	// (SPEC_FULL.md §5).
	MaxDepth int

	// Logger receives call/exit/cycle notifications; defaults to a no-op
	// if left nil.
	Logger EngineLogger
}

// DefaultConfig returns the engine's default resource limits.
func DefaultConfig() Config {
	return Config{MaxDepth: 1_000_000, Logger: NewNullLogger()}
}

// Engine evaluates queries against a ClauseDatabase, accumulating every
// proof into one GroundFormula.
type Engine struct {
	db       ClauseDatabase
	gf       *GroundFormula
	cfg      Config
	builtins []builtinEntry
	depth    int

	defines *defineTable
}

// NewEngine constructs an Engine over db, with the given resource limits.
// The returned Engine owns a fresh GroundFormula, accessible via Formula
// after Ground has run.
func NewEngine(db ClauseDatabase, cfg Config) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = NewNullLogger()
	}
	e := &Engine{
		db:      db,
		gf:      NewGroundFormula(),
		cfg:     cfg,
		defines: newDefineTable(),
	}
	registerDefaultBuiltins(e)
	return e
}

// Formula returns the GroundFormula accumulated so far.
func (e *Engine) Formula() *GroundFormula { return e.gf }

type depthExceeded struct{}

// enterDepth increments the recursion counter and panics with a typed,
// unexported value when it exceeds cfg.MaxDepth. The panic is recovered at
// Ground's single recovery point and converted into UnboundProgramError —
// the Go-idiomatic analogue of catching a host stack-exhaustion condition
// (SPEC_FULL.md §5).
func (e *Engine) enterDepth() {
	e.depth++
	if e.depth > e.cfg.MaxDepth {
		panic(depthExceeded{})
	}
}

func (e *Engine) exitDepth() { e.depth-- }

// eval dispatches a database node to its per-construct evaluator. parent
// receives the node's results and exactly one completion.
func (e *Engine) eval(id DBNodeID, ctx *Context, parent Listener) {
	e.enterDepth()
	defer e.exitDepth()

	if k, ok := IsBuiltin(id); ok {
		e.evalBuiltin(k, ctx, parent)
		return
	}

	node := e.db.GetNode(id)
	if node == nil {
		panic(&programError{kind: errUnknownClause, err: errors.Errorf("ground: unknown clause (node id %d)", id)})
	}
	switch n := node.(type) {
	case *FactNode:
		e.evalFact(id, n, ctx, parent)
	case *ChoiceNode:
		e.evalChoice(id, n, ctx, parent)
	case *DefineNode:
		e.evalDefine(id, n, ctx, parent)
	case *ClauseNode:
		e.evalClause(n, ctx, parent)
	case *ConjNode:
		e.evalConj(n, ctx, parent)
	case *DisjNode:
		e.evalDisj(n, ctx, parent)
	case *CallNode:
		e.evalCall(n, ctx, parent)
	case *NegNode:
		e.evalNeg(n, ctx, parent)
	default:
		panic(&programError{kind: errUnknownClause, err: errors.Errorf("ground: unrecognized database node type %T", node)})
	}
}

// resultCollector is the trivial top-level listener Ground uses to
// gather every (args, node) pair produced for one query term.
type resultCollector struct {
	results []struct {
		args []Term
		node NodeID
	}
	complete bool
}

func (c *resultCollector) Result(args []Term, node NodeID) {
	c.results = append(c.results, struct {
		args []Term
		node NodeID
	}{args, node})
}

func (c *resultCollector) Complete() { c.complete = true }

// Ground evaluates every query term against db, in order, accumulating all
// proofs into one shared GroundFormula. A query term need not be ground: an
// unbound argument (a nil slot in the query's Compound) is resolved like any
// other call argument, and every distinct proof is named individually,
// against the query term instantiated with that proof's own result
// arguments (SPEC_FULL.md §4.2, §6) — a query with N proofs
// produces N name entries sharing the same label, not one name entry over
// an Or of all of them. A query with no proof at all is named once, against
// FalseID. It returns the formula, or the first program error encountered
// (UnknownClause, VariableUnification, UnboundProgramError or
// ErrUnsupportedOperation). Any other panic value raised during evaluation,
// a *UserAbort included, is not converted into an error: it is re-panicked.
func (e *Engine) Ground(ctx context.Context, queries []Term, labels []string) (formula *GroundFormula, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case depthExceeded:
				err = &programError{kind: errUnboundProgram, err: errors.New("ground: maximum evaluation depth exceeded")}
			case *programError:
				err = v
			default:
				panic(r)
			}
		}
	}()

	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		defID, ok := e.lookupCallable(q)
		if !ok {
			return nil, &programError{kind: errUnknownClause, err: errors.Errorf("ground: unknown predicate for query %s", q)}
		}
		e.cfg.Logger.OnEnterCall(q)
		collector := &resultCollector{}
		e.eval(defID, ContextFromArgs(termArgs(q), nil), collector)
		e.cfg.Logger.OnExitCall(q)

		if len(collector.results) == 0 {
			e.gf.AddName(q, FalseID, label)
			continue
		}
		for _, r := range collector.results {
			e.gf.AddName(withResultArgs(q, r.args), r.node, label)
		}
	}
	return e.gf, nil
}

// withResultArgs rebuilds q with args in place of its own Args, so each
// proof is named against the term it actually proves rather than the
// (possibly partly unbound) query term it was asked against.
func withResultArgs(q Term, args []Term) Term {
	c, ok := q.(*Compound)
	if !ok {
		return q
	}
	return &Compound{Functor: c.Functor, Args: args}
}

func (e *Engine) lookupCallable(q Term) (DBNodeID, bool) {
	c, ok := q.(*Compound)
	if !ok {
		return 0, false
	}
	return e.db.Find(c.Functor, len(c.Args))
}

func termArgs(q Term) []Term {
	if c, ok := q.(*Compound); ok {
		return c.Args
	}
	return nil
}
