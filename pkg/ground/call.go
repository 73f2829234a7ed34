package ground

import "github.com/pkg/errors"

// evalCall instantiates the call's own argument terms against the caller's
// context and evaluates the target predicate with them; ProcessCallReturn
// then copies the caller's original context and, for each call-argument
// position, directionally unifies the callee's result value back into the
// copy — this is what actually binds the caller's previously-unbound query
// variables — and forwards the resulting full context snapshot, rather
// than the callee's raw result, so later conjunction siblings and
// ProcessBodyReturn see every binding (SPEC_FULL.md §4.8). A Target left
// unresolved at build time (a non-builtin call, which does not auto-declare
// its predicate) is looked up by Functor/arity here, so a predicate that
// was never declared at all surfaces as UnknownClause at the point
// evaluation actually reaches the call, not before.
func (e *Engine) evalCall(n *CallNode, callerCtx *Context, parent Listener) {
	args := make([]Term, len(n.Args))
	for i, a := range n.Args {
		args[i] = Instantiate(a, callerCtx)
	}
	target := n.Target
	if target == unresolvedCallTarget {
		resolved, ok := e.db.Find(n.Functor, len(n.Args))
		if !ok {
			panic(&programError{kind: errUnknownClause, err: errors.Errorf("ground: unknown predicate %s/%d", n.Functor, len(n.Args))})
		}
		target = resolved
	}
	calleeCtx := ContextFromArgs(args, callerCtx.Define())
	e.eval(target, calleeCtx, &callReturn{
		engine:    e,
		callArgs:  n.Args,
		callerCtx: callerCtx,
		parent:    parent,
	})
}

// callReturn is ProcessCallReturn.
type callReturn struct {
	engine    *Engine
	callArgs  []Term
	callerCtx *Context
	parent    Listener
}

func (r *callReturn) Result(calleeArgs []Term, node NodeID) {
	projected := append([]Term(nil), r.callerCtx.Args()...)
	local := &Context{slots: projected, define: r.callerCtx.Define()}
	for i, callArg := range r.callArgs {
		if err := Unify(calleeArgs[i], callArg, local); err != nil {
			// The callee's answer is incompatible with this call site's
			// own argument pattern; this particular result simply does
			// not extend to a proof here.
			return
		}
	}
	r.parent.Result(local.Args(), node)
}

func (r *callReturn) Complete() { r.parent.Complete() }
