package ground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiate(t *testing.T) {
	ctx := NewContext(2, nil)
	ctx.Set(0, NewConstant("a"))

	got := Instantiate(NewCompound("f", Var(0), Var(1)), ctx)
	c, ok := got.(*Compound)
	require.True(t, ok)
	assert.Equal(t, "a", c.Args[0].(*Constant).Value)
	assert.Nil(t, c.Args[1])
}

func TestIsGround(t *testing.T) {
	assert.True(t, IsGround(NewConstant(1)))
	assert.False(t, IsGround(Var(0)))
	assert.False(t, IsGround(nil))
	assert.True(t, IsGround(NewCompound("f", NewConstant(1), NewConstant(2))))
	assert.False(t, IsGround(NewCompound("f", NewConstant(1), Var(0))))
}

func TestCanonicalKeyDistinguishesTuples(t *testing.T) {
	a := canonicalKey([]Term{NewConstant("x"), NewConstant("y")})
	b := canonicalKey([]Term{NewConstant("x"), NewConstant("z")})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, canonicalKey([]Term{NewConstant("x"), NewConstant("y")}))
}

func TestCompoundEqual(t *testing.T) {
	a := NewCompound("edge", NewConstant(1), NewConstant(2))
	b := NewCompound("edge", NewConstant(1), NewConstant(2))
	c := NewCompound("edge", NewConstant(1), NewConstant(3))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
