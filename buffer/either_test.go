package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEitherVariants(t *testing.T) {
	a := FullBuf([]byte{1, 2, 3})
	ea := EitherA[*Buf, *Buf](a)
	assert.True(t, ea.IsA())
	assert.Same(t, a, ea.A())

	b := FullBuf([]byte{4, 5})
	eb := EitherB[*Buf](b)
	assert.False(t, eb.IsA())
	assert.Same(t, b, eb.B())
}

func TestEitherForwards(t *testing.T) {
	inner := FullBuf([]byte{1, 2, 3, 4})
	e := EitherA[*Buf, *Buf](inner)

	assert.Equal(t, 4, e.Len())
	assert.Equal(t, []byte{1, 2, 3, 4}, e.Bytes())

	e.ShrinkFront(1)
	e.ShrinkBack(1)
	assert.Equal(t, []byte{2, 3}, inner.Bytes(), "operations reach the wrapped buffer")
	assert.Equal(t, 1, e.PrefixLen())
	assert.Equal(t, 1, e.SuffixLen())
	assert.Equal(t, 4, e.Capacity())

	e.GrowFrontZero(1)
	assert.Equal(t, []byte{0, 2, 3}, inner.Bytes())

	e.Reset()
	assert.Equal(t, 4, e.Len())
}
