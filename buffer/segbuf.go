package buffer

import "fmt"

// SegBuf is an owned buffer over scatter/gather storage. Like Buf it
// tracks the body as a range over the logical byte region, so shrink and
// grow never move data between segments. It has no contiguous access;
// use WithBytes or Flatten.
type SegBuf struct {
	segs Segments
	body Range
	cap  int
}

// NewSegBuf wraps segs with the given body sub-range over the logical
// concatenation of all segments.
func NewSegBuf(segs Segments, body Range) *SegBuf {
	total := segs.Len()
	return &SegBuf{segs: segs, body: body.Canon(total), cap: total}
}

// FullSegBuf wraps segs with the body covering everything.
func FullSegBuf(segs Segments) *SegBuf {
	total := segs.Len()
	return &SegBuf{segs: segs, body: Range{Start: 0, End: total}, cap: total}
}

func (b *SegBuf) Len() int {
	return b.body.Len()
}

func (b *SegBuf) IsEmpty() bool {
	return b.body.IsEmpty()
}

func (b *SegBuf) WithBytes(fn func(Segments)) {
	fn(b.segs.Slice(b.body))
}

func (b *SegBuf) WithBytesMut(fn func(Segments)) {
	fn(b.segs.Slice(b.body))
}

func (b *SegBuf) Flatten() []byte {
	return b.segs.Slice(b.body).Flatten()
}

func (b *SegBuf) ZeroRange(r Range) {
	r = r.Canon(b.Len())
	b.segs.ZeroRange(r.Offset(b.body.Start))
}

func (b *SegBuf) CopyWithin(src Range, dst int) {
	src = src.Canon(b.Len())
	if dst < 0 || dst+src.Len() > b.Len() {
		panic("buffer: copy destination out of bounds")
	}
	b.segs.CopyWithin(src.Offset(b.body.Start), dst+b.body.Start)
}

func (b *SegBuf) ShrinkFront(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("buffer: shrink front %d past body length %d", n, b.Len()))
	}
	b.body.Start += n
}

func (b *SegBuf) ShrinkBack(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("buffer: shrink back %d past body length %d", n, b.Len()))
	}
	b.body.End -= n
}

func (b *SegBuf) Shrink(body Range) {
	body = body.Canon(b.Len())
	b.body = body.Offset(b.body.Start)
}

func (b *SegBuf) Capacity() int {
	return b.cap
}

func (b *SegBuf) PrefixLen() int {
	return b.body.Start
}

func (b *SegBuf) SuffixLen() int {
	return b.cap - b.body.End
}

func (b *SegBuf) GrowFront(n int) {
	if n < 0 || n > b.PrefixLen() {
		panic(fmt.Sprintf("buffer: grow front %d past prefix length %d", n, b.PrefixLen()))
	}
	b.body.Start -= n
}

func (b *SegBuf) GrowBack(n int) {
	if n < 0 || n > b.SuffixLen() {
		panic(fmt.Sprintf("buffer: grow back %d past suffix length %d", n, b.SuffixLen()))
	}
	b.body.End += n
}

func (b *SegBuf) GrowFrontZero(n int) {
	b.GrowFront(n)
	b.segs.ZeroRange(Range{Start: b.body.Start, End: b.body.Start + n})
}

func (b *SegBuf) GrowBackZero(n int) {
	b.GrowBack(n)
	b.segs.ZeroRange(Range{Start: b.body.End - n, End: b.body.End})
}

func (b *SegBuf) Reset() {
	b.body = Range{Start: 0, End: b.cap}
}
