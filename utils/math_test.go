package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckedAdd(t *testing.T) {
	sum, ok := CheckedAdd(2, 3)
	assert.True(t, ok)
	assert.Equal(t, 5, sum)

	_, ok = CheckedAdd(math.MaxInt, 1)
	assert.False(t, ok)
	_, ok = CheckedAdd(math.MinInt, -1)
	assert.False(t, ok)
}

func TestCheckedSub(t *testing.T) {
	diff, ok := CheckedSub(3, 5)
	assert.True(t, ok)
	assert.Equal(t, -2, diff)

	_, ok = CheckedSub(math.MinInt, 1)
	assert.False(t, ok)
	_, ok = CheckedSub(math.MaxInt, -1)
	assert.False(t, ok)
}

func TestCheckedMul(t *testing.T) {
	prod, ok := CheckedMul(6, 7)
	assert.True(t, ok)
	assert.Equal(t, 42, prod)

	prod, ok = CheckedMul(math.MaxInt, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, prod)

	_, ok = CheckedMul(math.MaxInt/2, 3)
	assert.False(t, ok)
}

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, 2, SaturatingSub(5, 3))
	assert.Equal(t, 0, SaturatingSub(3, 5))
	assert.Equal(t, 0, SaturatingSub(0, math.MaxInt))
}

func TestCeilDiv(t *testing.T) {
	q, ok := CeilDiv(8, 8)
	assert.True(t, ok)
	assert.Equal(t, 1, q)

	q, ok = CeilDiv(9, 8)
	assert.True(t, ok)
	assert.Equal(t, 2, q)

	q, ok = CeilDiv(0, 8)
	assert.True(t, ok)
	assert.Equal(t, 0, q)

	_, ok = CeilDiv(math.MaxInt, 2)
	assert.False(t, ok)
}
