package ground

// evalFact checks the fact's own (ground) argument pattern against the
// caller's context values, with no context to write into (there is nothing
// left unbound in a fact's own args to bind); on a match it emits the
// fact's own arguments paired with a freshly allocated atom node, then
// always completes (SPEC_FULL.md §4.4).
func (e *Engine) evalFact(id DBNodeID, n *FactNode, ctx *Context, parent Listener) {
	matched := true
	for i, a := range n.Args {
		if err := Unify(a, ctx.Get(i), nil); err != nil {
			matched = false
			break
		}
	}
	if matched {
		node := e.gf.AddAtom(id, n.Probability, nil)
		parent.Result(n.Args, node)
	}
	parent.Complete()
}
