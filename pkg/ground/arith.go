package ground

// toFloat coerces a Constant's underlying Go value to float64 for
// probability and comparison arithmetic. Non-numeric values coerce to 0,
// since a malformed probability expression is a database-construction bug
// this module does not validate (clause compilation is out of scope).
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// compareConstants orders two Constants numerically, reporting an error if
// either is not a numeric value.
func compareConstants(a, b *Constant) (int, error) {
	af, aok := numericValue(a.Value)
	bf, bok := numericValue(b.Value)
	if !aok || !bok {
		return 0, errUnifyMismatch
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// evalArith evaluates a fully-ground arithmetic expression term (a Constant
// numeric leaf, or a Compound applying one of +, -, *, /, mod over two
// evaluated operands, or unary - over one) to a float64, for the is/2
// builtin. An unbound or non-numeric leaf, or an unrecognized functor, is
// reported as errUnifyMismatch — is/2 requires its right-hand side fully
// ground, which this module does not otherwise validate at compile time.
func evalArith(t Term) (float64, error) {
	switch v := t.(type) {
	case nil:
		return 0, errUnifyMismatch
	case *Constant:
		f, ok := numericValue(v.Value)
		if !ok {
			return 0, errUnifyMismatch
		}
		return f, nil
	case *Compound:
		if len(v.Args) == 1 && v.Functor == "-" {
			x, err := evalArith(v.Args[0])
			if err != nil {
				return 0, err
			}
			return -x, nil
		}
		if len(v.Args) != 2 {
			return 0, errUnifyMismatch
		}
		a, err := evalArith(v.Args[0])
		if err != nil {
			return 0, err
		}
		b, err := evalArith(v.Args[1])
		if err != nil {
			return 0, err
		}
		switch v.Functor {
		case "+":
			return a + b, nil
		case "-":
			return a - b, nil
		case "*":
			return a * b, nil
		case "/":
			if b == 0 {
				return 0, errUnifyMismatch
			}
			return a / b, nil
		case "mod":
			if b == 0 {
				return 0, errUnifyMismatch
			}
			m := float64(int(a) % int(b))
			return m, nil
		default:
			return 0, errUnifyMismatch
		}
	default:
		return 0, errUnifyMismatch
	}
}
