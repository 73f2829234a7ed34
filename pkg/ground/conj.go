package ground

// evalConj evaluates a two-child conjunction via ProcessLink/ProcessAnd
// (SPEC_FULL.md §4.9).
func (e *Engine) evalConj(n *ConjNode, ctx *Context, parent Listener) {
	link := &processLink{engine: e, second: n.Second, define: ctx.Define(), parent: parent}
	e.eval(n.First, ctx, link)
}

// processLink receives the first child's results; for each, it evaluates
// the second child against a fresh context built from that result's
// argument tuple, sharing the ancestor define pointer closed over at
// construction (the same define the conjunction itself was entered with,
// not derived from the result — a result is a plain argument tuple, not a
// context), combining the two via a fresh processAnd. It forwards Complete
// immediately: under this engine's synchronous single-threaded execution,
// every processAnd spawned above has already run to completion by the time
// processLink itself completes (SPEC_FULL.md §9).
type processLink struct {
	engine *Engine
	second DBNodeID
	define *defineProcess
	parent Listener
}

func (l *processLink) Result(firstArgs []Term, firstNode NodeID) {
	ctx := ContextFromArgs(firstArgs, l.define)
	and := &processAnd{gf: l.engine.gf, firstNode: firstNode, parent: l.parent}
	l.engine.eval(l.second, ctx, and)
}

func (l *processLink) Complete() { l.parent.Complete() }

// processAnd combines the second child's ground node with the first's
// (remembered from processLink) via AddAnd, forwarding the second child's
// argument tuple unchanged. Its own Complete is not forwarded: processLink
// alone completes the conjunction, so the parent sees exactly one Complete.
type processAnd struct {
	gf        *GroundFormula
	firstNode NodeID
	parent    Listener
}

func (a *processAnd) Result(args []Term, secondNode NodeID) {
	node := a.gf.AddAnd([]NodeID{a.firstNode, secondNode})
	a.parent.Result(args, node)
}

func (a *processAnd) Complete() {}
