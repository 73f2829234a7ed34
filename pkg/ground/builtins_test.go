package ground

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runQuery(t *testing.T, db ClauseDatabase, q Term, label string) (*GroundFormula, error) {
	t.Helper()
	e := NewEngine(db, DefaultConfig())
	return e.Ground(context.Background(), []Term{q}, []string{label})
}

func TestBuiltinIsEvaluatesArithmetic(t *testing.T) {
	db := NewMemoryDatabase()
	db.AddClause("r", []Term{Var(0)},
		db.AddCall("is", Var(0), NewCompound("+", NewConstant(2.0), NewConstant(3.0))), 1)

	gfOK, err := runQuery(t, db, NewCompound("r", NewConstant(5.0)), "r(5)")
	require.NoError(t, err)
	assert.NotEqual(t, FalseID, findName(t, gfOK, "r(5)").Node)

	gfBad, err := runQuery(t, db, NewCompound("r", NewConstant(6.0)), "r(6)")
	require.NoError(t, err)
	assert.Equal(t, FalseID, findName(t, gfBad, "r(6)").Node)
}

func TestBuiltinComparisons(t *testing.T) {
	db := NewMemoryDatabase()
	db.AddClause("gt", []Term{Var(0), Var(1)}, db.AddCall(">", Var(0), Var(1)), 2)

	gf, err := runQuery(t, db, NewCompound("gt", NewConstant(3.0), NewConstant(2.0)), "3>2")
	require.NoError(t, err)
	assert.NotEqual(t, FalseID, findName(t, gf, "3>2").Node)

	gf2, err := runQuery(t, db, NewCompound("gt", NewConstant(2.0), NewConstant(3.0)), "2>3")
	require.NoError(t, err)
	assert.Equal(t, FalseID, findName(t, gf2, "2>3").Node)
}

func TestBuiltinEqSucceedsOnlyOnUnifiableOperands(t *testing.T) {
	db := NewMemoryDatabase()
	db.AddClause("same1", []Term{Var(0)}, db.AddCall("=", Var(0), NewConstant("x")), 1)

	gfOK, err := runQuery(t, db, NewCompound("same1", NewConstant("x")), "same1(x)")
	require.NoError(t, err)
	assert.NotEqual(t, FalseID, findName(t, gfOK, "same1(x)").Node)

	gfBad, err := runQuery(t, db, NewCompound("same1", NewConstant("y")), "same1(y)")
	require.NoError(t, err)
	assert.Equal(t, FalseID, findName(t, gfBad, "same1(y)").Node)
}

func TestBuiltinNeqFailsOnUnifiableOperands(t *testing.T) {
	db := NewMemoryDatabase()
	db.AddClause("different", []Term{Var(0), Var(1)}, db.AddCall("\\=", Var(0), Var(1)), 2)

	gf, err := runQuery(t, db, NewCompound("different", NewConstant(1.0), NewConstant(2.0)), "1\\=2")
	require.NoError(t, err)
	assert.NotEqual(t, FalseID, findName(t, gf, "1\\=2").Node)

	gf2, err := runQuery(t, db, NewCompound("different", NewConstant(1.0), NewConstant(1.0)), "1\\=1")
	require.NoError(t, err)
	assert.Equal(t, FalseID, findName(t, gf2, "1\\=1").Node)
}

// TestBuiltinSameUnsupportedOnTwoUnboundOperands pins the Open Question
// decision recorded in DESIGN.md: ==/2 (and \==/2) over two still-unbound
// operands is a typed ErrUnsupportedOperation, not a silent failure.
func TestBuiltinSameUnsupportedOnTwoUnboundOperands(t *testing.T) {
	db := NewMemoryDatabase()
	db.AddClause("u", nil, db.AddCall("==", Var(0), Var(1)), 2)

	_, err := runQuery(t, db, NewCompound("u"), "u")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestRegisterBuiltinExtendsTable(t *testing.T) {
	db := NewMemoryDatabase()
	e := NewEngine(db, DefaultConfig())

	always := e.RegisterBuiltin("always", 0, func(ctx *Context, parent Listener) {
		parent.Result(nil, TrueID)
	})
	callID := db.alloc(&CallNode{Functor: "always", Target: always})
	db.AddClause("w", nil, callID, 0)

	gf, err := e.Ground(context.Background(), []Term{NewCompound("w")}, []string{"w"})
	require.NoError(t, err)
	assert.NotEqual(t, FalseID, findName(t, gf, "w").Node)
}
