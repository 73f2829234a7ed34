package ground

// evalChoice always succeeds: its result is the tuple of call arguments
// themselves (a choice node has no pattern of its own to check against
// them), its probability expression is instantiated against the call
// context (so a choice's probability may itself depend on the call's
// arguments), and the resulting atom carries the choice's group key so the
// downstream evaluator can recognize annotated-disjunction siblings as
// mutually exclusive (SPEC_FULL.md §4.5).
func (e *Engine) evalChoice(id DBNodeID, n *ChoiceNode, ctx *Context, parent Listener) {
	result := snapshotArgs(ctx.Args())
	prob := Instantiate(n.ProbabilityExpr, ctx)
	probVal := 0.0
	if c, ok := prob.(*Constant); ok {
		probVal = toFloat(c.Value)
	}
	argsKey := canonicalKey(result)
	key := choiceKey{define: id, choice: n.Choice, args: argsKey}
	node := e.gf.AddAtom(key, probVal, groupKey{group: n.Group, args: argsKey})
	parent.Result(result, node)
	parent.Complete()
}

// choiceKey identifies one ChoiceNode's atom, for a specific call-argument
// instance, for AddAtom's cache.
type choiceKey struct {
	define DBNodeID
	choice int
	args   string
}

// groupKey identifies the annotated-disjunction group an atom belongs to,
// used only as a value carried on the GNode (not for AddAtom deduplication)
// so the downstream evaluator can find mutually exclusive siblings.
type groupKey struct {
	group interface{}
	args  string
}
