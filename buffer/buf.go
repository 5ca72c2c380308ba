package buffer

import "fmt"

// Buf is a contiguous owned buffer: a byte slice plus an explicit body
// sub-range. Shrink and grow mutate only the range, O(1) with no data
// movement, so a parse can be fully undone and the storage reused for
// serialization.
type Buf struct {
	data []byte
	body Range
}

// NewBuf wraps data with the given body sub-range. Panics if the range
// does not fit the storage.
func NewBuf(data []byte, body Range) *Buf {
	return &Buf{data: data, body: body.Canon(len(data))}
}

// FullBuf wraps data with the body covering all of it.
func FullBuf(data []byte) *Buf {
	return &Buf{data: data, body: Range{Start: 0, End: len(data)}}
}

// AllocBuf allocates fresh storage with the given prefix, body and
// suffix lengths.
func AllocBuf(prefix, body, suffix int) *Buf {
	return &Buf{
		data: make([]byte, prefix+body+suffix),
		body: Range{Start: prefix, End: prefix + body},
	}
}

// Bytes returns the body. The slice aliases the buffer.
func (b *Buf) Bytes() []byte {
	return b.data[b.body.Start:b.body.End]
}

// Storage returns the whole backing region, prefix and suffix included.
// Diagnostics only; mutating it bypasses the body partitioning.
func (b *Buf) Storage() []byte {
	return b.data
}

func (b *Buf) Len() int {
	return b.body.Len()
}

func (b *Buf) IsEmpty() bool {
	return b.body.IsEmpty()
}

func (b *Buf) WithBytes(fn func(Segments)) {
	fn(Segments{b.Bytes()})
}

func (b *Buf) WithBytesMut(fn func(Segments)) {
	fn(Segments{b.Bytes()})
}

func (b *Buf) Flatten() []byte {
	flat := make([]byte, b.Len())
	copy(flat, b.Bytes())
	return flat
}

func (b *Buf) ZeroRange(r Range) {
	body := b.Bytes()
	r = r.Canon(len(body))
	Zero(body[r.Start:r.End])
}

func (b *Buf) CopyWithin(src Range, dst int) {
	CopyWithin(b.Bytes(), src, dst)
}

func (b *Buf) ShrinkFront(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("buffer: shrink front %d past body length %d", n, b.Len()))
	}
	b.body.Start += n
}

func (b *Buf) ShrinkBack(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("buffer: shrink back %d past body length %d", n, b.Len()))
	}
	b.body.End -= n
}

func (b *Buf) Shrink(body Range) {
	body = body.Canon(b.Len())
	b.body = body.Offset(b.body.Start)
}

func (b *Buf) Capacity() int {
	return len(b.data)
}

func (b *Buf) PrefixLen() int {
	return b.body.Start
}

func (b *Buf) SuffixLen() int {
	return len(b.data) - b.body.End
}

func (b *Buf) GrowFront(n int) {
	if n < 0 || n > b.PrefixLen() {
		panic(fmt.Sprintf("buffer: grow front %d past prefix length %d", n, b.PrefixLen()))
	}
	b.body.Start -= n
}

func (b *Buf) GrowBack(n int) {
	if n < 0 || n > b.SuffixLen() {
		panic(fmt.Sprintf("buffer: grow back %d past suffix length %d", n, b.SuffixLen()))
	}
	b.body.End += n
}

func (b *Buf) GrowFrontZero(n int) {
	b.GrowFront(n)
	Zero(b.data[b.body.Start : b.body.Start+n])
}

func (b *Buf) GrowBackZero(n int) {
	b.GrowBack(n)
	Zero(b.data[b.body.End-n : b.body.End])
}

func (b *Buf) Reset() {
	b.body = Range{Start: 0, End: len(b.data)}
}
