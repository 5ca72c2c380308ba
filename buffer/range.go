package buffer

import "fmt"

// Range is a canonical [Start,End) byte range.
type Range struct {
	Start, End int
}

// NewRange panics unless 0 ≤ start ≤ end.
func NewRange(start, end int) Range {
	if start < 0 || end < start {
		panic(fmt.Sprintf("buffer: invalid range [%d,%d)", start, end))
	}
	return Range{Start: start, End: end}
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Offset shifts both bounds by d.
func (r Range) Offset(d int) Range {
	return Range{Start: r.Start + d, End: r.End + d}
}

// Canon validates r against a region of n bytes and returns it unchanged.
// An out-of-bounds or inverted range is a caller contract violation.
func (r Range) Canon(n int) Range {
	if r.Start < 0 || r.End < r.Start || r.End > n {
		panic(fmt.Sprintf("buffer: range [%d,%d) out of bounds for %d bytes", r.Start, r.End, n))
	}
	return r
}

// Zero fills b with zero bytes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SplitAt splits b into b[:i] and b[i:].
func SplitAt(b []byte, i int) (front, back []byte) {
	if i < 0 || i > len(b) {
		panic(fmt.Sprintf("buffer: split index %d out of bounds for %d bytes", i, len(b)))
	}
	return b[:i], b[i:]
}

// CopyWithin copies b[src.Start:src.End] to b[dst:], handling overlap.
func CopyWithin(b []byte, src Range, dst int) {
	src = src.Canon(len(b))
	if dst < 0 || dst+src.Len() > len(b) {
		panic(fmt.Sprintf("buffer: copy destination %d out of bounds for %d bytes", dst, len(b)))
	}
	copy(b[dst:dst+src.Len()], b[src.Start:src.End])
}
