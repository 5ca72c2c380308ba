package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seg3() Segments {
	return Segments{{0, 1, 2}, {3, 4}, {5, 6, 7, 8}}
}

func TestSegmentsLenFlatten(t *testing.T) {
	ss := seg3()
	assert.Equal(t, 9, ss.Len())
	assert.False(t, ss.IsEmpty())
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8}, ss.Flatten())
	assert.True(t, Segments{}.IsEmpty())
}

func TestSegmentsSlice(t *testing.T) {
	ss := seg3()
	assert.Equal(t, []byte{2, 3, 4, 5}, ss.Slice(Range{Start: 2, End: 6}).Flatten())
	assert.Equal(t, []byte{3, 4}, ss.Slice(Range{Start: 3, End: 5}).Flatten())
	assert.Equal(t, 0, ss.Slice(Range{Start: 4, End: 4}).Len())
	assert.Panics(t, func() { ss.Slice(Range{Start: 0, End: 10}) })
}

func TestSegmentsZeroRange(t *testing.T) {
	ss := seg3()
	ss.ZeroRange(Range{Start: 2, End: 6})
	assert.Equal(t, []byte{0, 1, 0, 0, 0, 0, 6, 7, 8}, ss.Flatten())
}

func TestSegmentsCopyWithin(t *testing.T) {
	// Non-overlapping.
	ss := seg3()
	ss.CopyWithin(Range{Start: 0, End: 3}, 6)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 0, 1, 2}, ss.Flatten())

	// Overlap, moving forward: copy must run backward.
	ss = seg3()
	ss.CopyWithin(Range{Start: 0, End: 6}, 3)
	assert.Equal(t, []byte{0, 1, 2, 0, 1, 2, 3, 4, 5}, ss.Flatten())

	// Overlap, moving backward.
	ss = seg3()
	ss.CopyWithin(Range{Start: 3, End: 9}, 0)
	assert.Equal(t, []byte{3, 4, 5, 6, 7, 8, 6, 7, 8}, ss.Flatten())
}

func TestCopySegments(t *testing.T) {
	dst := Segments{make([]byte, 2), make([]byte, 3)}
	n := CopySegments(dst, Segments{{9, 8}, {7}, {6, 5, 4, 3}})
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte{9, 8, 7, 6, 5}, dst.Flatten())

	short := Segments{make([]byte, 2)}
	assert.Equal(t, 2, CopySegments(short, Segments{{1, 2, 3}}))
	assert.Equal(t, []byte{1, 2}, short.Flatten())
}

func TestCopyDispatch(t *testing.T) {
	flatSrc := FullBuf([]byte{1, 2, 3, 4})
	fragSrc := FullSegBuf(Segments{{1, 2}, {3, 4}})

	for name, src := range map[string]FragmentedBuffer{"flat": flatSrc, "frag": fragSrc} {
		flatDst := FullBuf(make([]byte, 4))
		assert.Equal(t, 4, Copy(flatDst, src), name)
		assert.Equal(t, []byte{1, 2, 3, 4}, flatDst.Bytes(), name)

		fragDst := FullSegBuf(Segments{make([]byte, 3), make([]byte, 1)})
		assert.Equal(t, 4, Copy(fragDst, src), name)
		assert.Equal(t, []byte{1, 2, 3, 4}, fragDst.Flatten(), name)
	}
}

func TestSegBufShrinkGrow(t *testing.T) {
	b := FullSegBuf(Segments{{0, 1, 2}, {3, 4, 5}})
	b.ShrinkFront(2)
	b.ShrinkBack(2)
	assert.Equal(t, []byte{2, 3}, b.Flatten())
	assert.Equal(t, 2, b.PrefixLen())
	assert.Equal(t, 2, b.SuffixLen())
	assert.Equal(t, 6, b.Capacity())

	b.GrowFrontZero(1)
	assert.Equal(t, []byte{0, 2, 3}, b.Flatten())
	b.Reset()
	assert.Equal(t, 6, b.Len())
}
