package ground

// ErrUnify signals a structural mismatch during unification: two compounds
// with different functors/arities, or two constants with different values.
// It is always handled locally (turned into "this clause/fact does not
// match" by the caller) and never escapes eval as a program error.
type ErrUnify struct{ msg string }

func (e *ErrUnify) Error() string { return e.msg }

var errUnifyMismatch = &ErrUnify{msg: "ground: unification mismatch"}

// UnifyValue merges two already-instantiated terms, returning the more
// specific of the two (preferring whichever side is non-nil) or a freshly
// rebuilt compound when both sides are bound compounds that agree on
// functor/arity. It is symmetric and writes nothing into any Context; it is
// the form the comparison/assignment builtins use (SPEC_FULL.md §4.1).
func UnifyValue(a, b Term) (Term, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	ac, aOK := a.(*Compound)
	bc, bOK := b.(*Compound)
	if aOK != bOK {
		return nil, errUnifyMismatch
	}
	if !aOK {
		if !a.Equal(b) {
			return nil, errUnifyMismatch
		}
		return a, nil
	}
	if ac.Functor != bc.Functor || len(ac.Args) != len(bc.Args) {
		return nil, errUnifyMismatch
	}
	args := make([]Term, len(ac.Args))
	for i := range ac.Args {
		merged, err := UnifyValue(ac.Args[i], bc.Args[i])
		if err != nil {
			return nil, err
		}
		args[i] = merged
	}
	return &Compound{Functor: ac.Functor, Args: args}, nil
}

// Unify is the directional form: target may be a Var (a reference into ctx),
// in which case an unset slot is bound to source and an already-set slot is
// recursively checked against source; otherwise target is compared
// structurally against source like UnifyValue, recursing into compound
// arguments, where a nested Var is handled as above (so a compound target
// can still write into ctx). With ctx == nil nothing is written (used this
// way to validate a fact's pattern against caller-supplied values that have nowhere to be written back into;
// see SPEC_FULL.md §4.1 and §4.4).
func Unify(source, target Term, ctx *Context) error {
	if v, ok := target.(Var); ok {
		if ctx == nil {
			return errUnifyMismatch
		}
		current := ctx.Get(int(v))
		if current == nil {
			ctx.Set(int(v), source)
			return nil
		}
		return Unify(source, current, ctx)
	}
	if target == nil {
		return nil
	}
	if source == nil {
		return nil
	}
	sc, sOK := source.(*Compound)
	tc, tOK := target.(*Compound)
	if sOK != tOK {
		return errUnifyMismatch
	}
	if sOK {
		if sc.Functor != tc.Functor || len(sc.Args) != len(tc.Args) {
			return errUnifyMismatch
		}
		for i := range sc.Args {
			if err := Unify(sc.Args[i], tc.Args[i], ctx); err != nil {
				return err
			}
		}
		return nil
	}
	if !source.Equal(target) {
		return errUnifyMismatch
	}
	return nil
}
