package ground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyValue(t *testing.T) {
	t.Run("nil absorbs", func(t *testing.T) {
		merged, err := UnifyValue(nil, NewConstant(1))
		require.NoError(t, err)
		assert.Equal(t, NewConstant(1), merged)
	})

	t.Run("matching constants merge", func(t *testing.T) {
		merged, err := UnifyValue(NewConstant("a"), NewConstant("a"))
		require.NoError(t, err)
		assert.Equal(t, NewConstant("a"), merged)
	})

	t.Run("mismatched constants error", func(t *testing.T) {
		_, err := UnifyValue(NewConstant("a"), NewConstant("b"))
		assert.Error(t, err)
	})

	t.Run("compounds merge recursively", func(t *testing.T) {
		a := NewCompound("f", NewConstant(1), nil)
		b := NewCompound("f", nil, NewConstant(2))
		merged, err := UnifyValue(a, b)
		require.NoError(t, err)
		mc := merged.(*Compound)
		assert.Equal(t, NewConstant(1), mc.Args[0])
		assert.Equal(t, NewConstant(2), mc.Args[1])
	})

	t.Run("arity mismatch errors", func(t *testing.T) {
		a := NewCompound("f", NewConstant(1))
		b := NewCompound("f", NewConstant(1), NewConstant(2))
		_, err := UnifyValue(a, b)
		assert.Error(t, err)
	})
}

func TestUnifyDirectional(t *testing.T) {
	ctx := NewContext(1, nil)
	require.NoError(t, Unify(NewConstant(5), Var(0), ctx))
	assert.Equal(t, NewConstant(5), ctx.Get(0))

	// Re-unifying the same slot against an equal value succeeds.
	require.NoError(t, Unify(NewConstant(5), Var(0), ctx))
	// ...but a conflicting value fails.
	assert.Error(t, Unify(NewConstant(6), Var(0), ctx))
}

func TestUnifyNilContextIsPureCheck(t *testing.T) {
	assert.NoError(t, Unify(NewConstant(1), NewConstant(1), nil))
	assert.Error(t, Unify(NewConstant(1), NewConstant(2), nil))
	assert.Error(t, Unify(NewConstant(1), Var(0), nil))
}
