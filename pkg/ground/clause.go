package ground

// evalClause evaluates a clause's body in a fresh local context whose slots
// are populated, at the head-argument positions, by instantiating the call
// arguments against the clause's head pattern; every other slot starts
// unbound. ProcessBodyReturn then validates and projects the body's result
// back through the head (SPEC_FULL.md §4.7).
func (e *Engine) evalClause(n *ClauseNode, callCtx *Context, parent Listener) {
	local := NewContext(n.VarCount, callCtx.Define())
	for i, headArg := range n.HeadArgs {
		if err := Unify(callCtx.Get(i), headArg, local); err != nil {
			parent.Complete()
			return
		}
	}
	occurs := headVarOccurrences(n.HeadArgs)
	e.eval(n.Body, local, &bodyReturn{engine: e, head: n.HeadArgs, occurs: occurs, parent: parent})
}

// bodyReturn is ProcessBodyReturn: it rejects a body result that would bind
// a repeated head-variable index to a non-ground value (this engine does
// not perform general variable-variable unification), and otherwise
// instantiates the head arguments against the body's context and forwards,
// passing the body's ground node through unchanged.
type bodyReturn struct {
	engine *Engine
	head   []Term
	occurs map[Var]int
	parent Listener
}

func (b *bodyReturn) Result(bodyArgs []Term, node NodeID) {
	local := ContextFromArgs(bodyArgs, nil)
	for v, count := range b.occurs {
		if count <= 1 {
			continue
		}
		val := local.Get(int(v))
		if val == nil || !IsGround(val) {
			panic(&programError{kind: errVariableUnification, err: errVarUnifyDetail(v)})
		}
	}
	head := make([]Term, len(b.head))
	for i, h := range b.head {
		head[i] = Instantiate(h, local)
	}
	b.parent.Result(head, node)
}

func (b *bodyReturn) Complete() { b.parent.Complete() }

func errVarUnifyDetail(v Var) error {
	return &varUnifyError{v: v}
}

type varUnifyError struct{ v Var }

func (e *varUnifyError) Error() string {
	return "ground: repeated head variable bound to a non-ground value: " + e.v.String()
}

// headVarOccurrences counts how many times each Var index appears among a
// clause's head argument terms (SPEC_FULL.md §4.7, "extract_vars").
func headVarOccurrences(headArgs []Term) map[Var]int {
	counts := make(map[Var]int)
	var walk func(Term)
	walk = func(t Term) {
		switch v := t.(type) {
		case Var:
			counts[v]++
		case *Compound:
			for _, a := range v.Args {
				walk(a)
			}
		}
	}
	for _, a := range headArgs {
		walk(a)
	}
	return counts
}
