// Package ground implements an event-driven SLD-resolution and tabling
// engine for Horn-clause programs with probabilistic facts and annotated
// disjunctions. It performs full proof enumeration — not first-solution
// search — and emits a shared propositional DAG (a GroundFormula) suitable
// for a downstream weighted-model-counting evaluator.
//
// The engine is deliberately single-threaded: a fixed set of process node
// kinds (Fact, Choice, Define, Clause, Call, Conjunction, Disjunction,
// Negation) exchange result/complete messages synchronously, recursively, on
// one goroutine. There is no internal concurrency to reason about.
package ground

import (
	"fmt"
	"sort"
	"strings"
)

// Term is any value the engine manipulates: a constant, a compound
// (functor applied to argument terms), or a variable reference (an index
// into a Context). A nil Term denotes an unbound variable's current value.
type Term interface {
	// String renders the term for diagnostics and as a tabling-key
	// component (distinct terms must render distinctly).
	String() string

	// Equal reports strict structural equality, not unifiability.
	Equal(other Term) bool

	// IsVar reports whether this term is a variable reference into a
	// Context, as opposed to a constant or compound value.
	IsVar() bool
}

// Constant is an atomic value: a number, string, or other scalar the
// comparison and arithmetic builtins can operate on directly.
type Constant struct {
	Value interface{}
}

// NewConstant wraps a Go scalar (int, float64, string, bool) as a Constant.
func NewConstant(v interface{}) *Constant { return &Constant{Value: v} }

func (c *Constant) String() string { return fmt.Sprintf("%v", c.Value) }

func (c *Constant) Equal(other Term) bool {
	oc, ok := other.(*Constant)
	if !ok {
		return false
	}
	return c.Value == oc.Value
}

func (c *Constant) IsVar() bool { return false }

// Compound is a functor applied to zero or more argument terms, e.g.
// edge(1, 2) or a list cons cell.
type Compound struct {
	Functor string
	Args    []Term
}

// NewCompound builds a compound term. A Compound with zero args is a bare
// 0-arity functor, distinct from a Constant carrying the same name.
func NewCompound(functor string, args ...Term) *Compound {
	return &Compound{Functor: functor, Args: args}
}

func (c *Compound) String() string {
	if len(c.Args) == 0 {
		return c.Functor
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a == nil {
			parts[i] = "_"
		} else {
			parts[i] = a.String()
		}
	}
	return c.Functor + "(" + strings.Join(parts, ", ") + ")"
}

func (c *Compound) Equal(other Term) bool {
	oc, ok := other.(*Compound)
	if !ok || oc.Functor != c.Functor || len(oc.Args) != len(c.Args) {
		return false
	}
	for i := range c.Args {
		if !termsEqual(c.Args[i], oc.Args[i]) {
			return false
		}
	}
	return true
}

func (c *Compound) IsVar() bool { return false }

func termsEqual(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Var is a variable reference: an index into the Context the term is being
// instantiated against. Var only ever appears inside compiled clause
// templates (head/body argument expressions); once instantiated it is
// replaced by whatever the referenced slot holds (possibly nil, meaning
// still unbound).
type Var int

func (v Var) String() string { return fmt.Sprintf("_G%d", int(v)) }

func (v Var) Equal(other Term) bool {
	ov, ok := other.(Var)
	return ok && ov == v
}

func (v Var) IsVar() bool { return true }

// Instantiate resolves a compiled term template against a Context,
// replacing every Var with the value held in the corresponding slot
// (recursively, for compounds) and leaving Constants untouched.
func Instantiate(term Term, ctx *Context) Term {
	switch t := term.(type) {
	case Var:
		return ctx.Get(int(t))
	case *Compound:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = Instantiate(a, ctx)
		}
		return &Compound{Functor: t.Functor, Args: args}
	default:
		return term
	}
}

// IsGround reports whether a term contains no unbound variable, directly or
// nested. A nil term (an unbound value) is never ground.
func IsGround(term Term) bool {
	switch t := term.(type) {
	case nil:
		return false
	case Var:
		return false
	case *Compound:
		for _, a := range t.Args {
			if !IsGround(a) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// canonicalKey renders a result argument tuple into a stable string usable
// as a map key for tabling deduplication (SPEC_FULL.md §4.6). It relies on
// Term.String() being injective over the values the engine actually
// produces as results (always fully or partially ground, never containing
// raw Var placeholders).
func canonicalKey(args []Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "_"
		} else {
			parts[i] = a.String()
		}
	}
	return strings.Join(parts, "\x1f")
}

// sortedIDs returns a sorted copy of ids, used to build a canonical key for
// structural sharing of commutative and/or children (SPEC_FULL.md §4.2).
func sortedIDs(ids []NodeID) []NodeID {
	cp := append([]NodeID(nil), ids...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return cp
}
