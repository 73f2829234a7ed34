package ground

import "github.com/pkg/errors"

// BuiltinFunc evaluates a builtin call: ctx holds the builtin's own
// arity-length argument slots (already instantiated against the call site
// by evalCall), and parent is the ProcessCallReturn that will unify
// whatever Result reports back into the caller's context. A builtin that
// fails simply returns without calling Result; evalBuiltin sends the single
// parent.Complete() after the builtin returns, so a builtin never calls it.
type BuiltinFunc func(ctx *Context, parent Listener)

type builtinEntry struct {
	name  string
	arity int
	fn    BuiltinFunc
}

// defaultBuiltinTable lists the engine's built-in predicates in the fixed
// order their DBNodeID indices are assigned (SPEC_FULL.md §6). It is a
// package-level literal, not per-Engine state, so MemoryDatabase.AddCall and
// Find can resolve a builtin by name/arity without depending on a
// particular Engine instance — the default builtins are pure and
// stateless, unlike the engine-scoped EngineLogger collaborator.
var defaultBuiltinTable = []builtinEntry{
	{"true", 0, builtinTrue},
	{"fail", 0, builtinFail},
	{"=", 2, builtinEq},
	{"\\=", 2, builtinNeq},
	{"==", 2, builtinSame},
	{"\\==", 2, builtinNotSame},
	{">", 2, builtinGt},
	{"<", 2, builtinLt},
	{"=<", 2, builtinLe},
	{">=", 2, builtinGe},
	{"=\\=", 2, builtinValNeq},
	{"=:=", 2, builtinValEq},
	{"is", 2, builtinIs},
}

var defaultBuiltinIndex = func() map[string]int {
	idx := make(map[string]int, len(defaultBuiltinTable))
	for i, b := range defaultBuiltinTable {
		idx[predKey(b.name, b.arity)] = i
	}
	return idx
}()

// BuiltinByName resolves a predicate name/arity to the DBNodeID of a
// default builtin, for use by a ClauseDatabase implementation's own
// Find/AddCall (MemoryDatabase does this; see database.go).
func BuiltinByName(name string, arity int) (DBNodeID, bool) {
	k, ok := defaultBuiltinIndex[predKey(name, arity)]
	if !ok {
		return 0, false
	}
	return BuiltinIndex(k), true
}

// registerDefaultBuiltins seeds a freshly constructed Engine's builtin
// table with every entry in defaultBuiltinTable, in order, so the indices
// BuiltinByName hands out at database-construction time still line up with
// e.builtins at eval time.
func registerDefaultBuiltins(e *Engine) {
	e.builtins = append(e.builtins, defaultBuiltinTable...)
}

// RegisterBuiltin appends a custom builtin to e's table and returns the
// DBNodeID a ClauseDatabase should use as a CallNode's Target to invoke it.
// Custom builtins are engine-scoped: unlike the defaults, they are not
// resolvable by name from MemoryDatabase.AddCall, since a database can be
// built independently of (and before) the engine instance that will run
// it — wire the returned id directly into the CallNode instead.
func (e *Engine) RegisterBuiltin(name string, arity int, fn BuiltinFunc) DBNodeID {
	e.builtins = append(e.builtins, builtinEntry{name: name, arity: arity, fn: fn})
	return BuiltinIndex(len(e.builtins) - 1)
}

func (e *Engine) evalBuiltin(k int, ctx *Context, parent Listener) {
	if k < 0 || k >= len(e.builtins) {
		panic(&programError{kind: errUnknownClause, err: errors.Errorf("ground: unknown builtin index %d", k)})
	}
	e.builtins[k].fn(ctx, parent)
	parent.Complete()
}

func builtinTrue(ctx *Context, parent Listener) {
	parent.Result(nil, TrueID)
}

func builtinFail(ctx *Context, parent Listener) {}

func builtinEq(ctx *Context, parent Listener) {
	a, b := ctx.Get(0), ctx.Get(1)
	if a == nil && b == nil {
		panic(&programError{kind: errVariableUnification, err: errors.New("ground: =/2 over two unbound operands")})
	}
	merged, err := UnifyValue(a, b)
	if err != nil {
		return
	}
	parent.Result([]Term{merged, merged}, TrueID)
}

func builtinNeq(ctx *Context, parent Listener) {
	a, b := ctx.Get(0), ctx.Get(1)
	if _, err := UnifyValue(a, b); err != nil {
		parent.Result([]Term{a, b}, TrueID)
	}
}

// builtinSame and builtinNotSame implement ==/2 and \==/2 as a structural
// equality check over two already-bound terms. Two simultaneously unbound
// operands make the comparison meaningless rather than merely false — the
// original engine's bare RuntimeError for this case was never actually
// implemented, and this module ports it as a typed, catchable error instead
// of leaving it an unimplemented stub (see DESIGN.md's Open Question
// decisions).
func builtinSame(ctx *Context, parent Listener) {
	a, b := ctx.Get(0), ctx.Get(1)
	if a == nil && b == nil {
		panic(&programError{kind: errUnsupportedOperation, err: errors.New("ground: ==/2 over two unbound operands")})
	}
	if a != nil && b != nil && a.Equal(b) {
		parent.Result([]Term{a, b}, TrueID)
	}
}

func builtinNotSame(ctx *Context, parent Listener) {
	a, b := ctx.Get(0), ctx.Get(1)
	if a == nil && b == nil {
		panic(&programError{kind: errUnsupportedOperation, err: errors.New("ground: \\==/2 over two unbound operands")})
	}
	if !(a != nil && b != nil && a.Equal(b)) {
		parent.Result([]Term{a, b}, TrueID)
	}
}

func compareArgs(ctx *Context) (int, error) {
	a, aok := ctx.Get(0).(*Constant)
	b, bok := ctx.Get(1).(*Constant)
	if !aok || !bok {
		return 0, errUnifyMismatch
	}
	return compareConstants(a, b)
}

func builtinGt(ctx *Context, parent Listener) {
	if c, err := compareArgs(ctx); err == nil && c > 0 {
		parent.Result([]Term{ctx.Get(0), ctx.Get(1)}, TrueID)
	}
}

func builtinLt(ctx *Context, parent Listener) {
	if c, err := compareArgs(ctx); err == nil && c < 0 {
		parent.Result([]Term{ctx.Get(0), ctx.Get(1)}, TrueID)
	}
}

func builtinLe(ctx *Context, parent Listener) {
	if c, err := compareArgs(ctx); err == nil && c <= 0 {
		parent.Result([]Term{ctx.Get(0), ctx.Get(1)}, TrueID)
	}
}

func builtinGe(ctx *Context, parent Listener) {
	if c, err := compareArgs(ctx); err == nil && c >= 0 {
		parent.Result([]Term{ctx.Get(0), ctx.Get(1)}, TrueID)
	}
}

func builtinValEq(ctx *Context, parent Listener) {
	if c, err := compareArgs(ctx); err == nil && c == 0 {
		parent.Result([]Term{ctx.Get(0), ctx.Get(1)}, TrueID)
	}
}

func builtinValNeq(ctx *Context, parent Listener) {
	if c, err := compareArgs(ctx); err == nil && c != 0 {
		parent.Result([]Term{ctx.Get(0), ctx.Get(1)}, TrueID)
	}
}

// builtinIs evaluates the right-hand arithmetic expression and unifies it
// with the left-hand operand, mirroring is/2's usual direction (X is Expr).
func builtinIs(ctx *Context, parent Listener) {
	v, err := evalArith(ctx.Get(1))
	if err != nil {
		return
	}
	result := NewConstant(v)
	merged, err := UnifyValue(ctx.Get(0), result)
	if err != nil {
		return
	}
	parent.Result([]Term{merged, ctx.Get(1)}, TrueID)
}
