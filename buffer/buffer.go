/*
Package buffer provides the byte-buffer substrate for parsing and
serializing nested, length-prefixed binary formats without redundant
copying.

# Buffer model

A buffer owns a byte region logically partitioned into prefix, body and
suffix; capacity = prefix + body + suffix. Parsing shrinks the body
(moving header bytes into the prefix and footer bytes into the suffix),
serialization grows it back. For range-tracked buffers such as Buf the
shrunk bytes are reclaimable; for plain storage they are simply gone.

# Ownership

A buffer has exactly one owner at a time. Views handed to WithBytes
callbacks and the View/ViewMut cursors are scoped exclusive borrows and
must not be retained past the call that produced them.

Operations that would shrink or grow past capacity are caller contract
violations and panic rather than returning errors.
*/
package buffer

// ContiguousBuffer is implemented by buffers backed by a single slice.
// Buffers that expose Bytes get the fragmented capability fast paths
// automatically; see Copy.
type ContiguousBuffer interface {
	// Bytes returns the current body. The slice aliases the buffer.
	Bytes() []byte
}

// FragmentedBuffer is uniform read access over single-slice or
// scatter/gather storage.
type FragmentedBuffer interface {
	Len() int
	IsEmpty() bool
	// WithBytes invokes fn with the body as segments. fn must not retain
	// the view after returning.
	WithBytes(fn func(Segments))
	// Flatten returns the body as a single owned copy.
	Flatten() []byte
}

// FragmentedBufferMut adds mutation to FragmentedBuffer.
type FragmentedBufferMut interface {
	FragmentedBuffer
	WithBytesMut(fn func(Segments))
	// ZeroRange zero-fills a range of the body.
	ZeroRange(r Range)
	// CopyWithin copies the body bytes at src to offset dst, both within
	// the body, handling overlap.
	CopyWithin(src Range, dst int)
}

// ShrinkBuffer is a buffer whose body can be shrunk from either end.
// Whether the removed bytes remain reclaimable depends on the
// implementation; GrowBuffer implementations keep them.
type ShrinkBuffer interface {
	FragmentedBuffer
	// ShrinkFront moves n bytes from the front of the body into the prefix.
	// Panics if n exceeds the body length.
	ShrinkFront(n int)
	// ShrinkBack moves n bytes from the back of the body into the suffix.
	// Panics if n exceeds the body length.
	ShrinkBack(n int)
	// Shrink reduces the body to the given sub-range of the current body.
	Shrink(body Range)
}

// GrowBuffer tracks prefix and suffix so that shrunk bytes can be
// reclaimed for reuse during serialization.
type GrowBuffer interface {
	ShrinkBuffer
	Capacity() int
	PrefixLen() int
	SuffixLen() int
	// GrowFront reclaims n bytes from the prefix into the body.
	// Panics if n exceeds PrefixLen.
	GrowFront(n int)
	// GrowBack reclaims n bytes from the suffix into the body.
	// Panics if n exceeds SuffixLen.
	GrowBack(n int)
	// Reset reclaims the entire prefix and suffix.
	Reset()
}

// GrowBufferMut adds mutation and scrubbed reclaim. The Zero variants
// guarantee the reclaimed bytes are zero-filled so stale buffer contents
// cannot leak into newly written headers or padding.
type GrowBufferMut interface {
	GrowBuffer
	FragmentedBufferMut
	GrowFrontZero(n int)
	GrowBackZero(n int)
}

// Buffer is the full capability bundle implemented by concrete
// serialization targets: a growable, mutable buffer with contiguous
// body access.
type Buffer interface {
	GrowBufferMut
	ContiguousBuffer
}

// ParseMetadata records one parsed layer's extents so the layer can be
// losslessly restored later. Discarded trailing padding is not recorded;
// UndoParse reconstructs it from the body-length delta.
type ParseMetadata struct {
	HeaderLen int
	BodyLen   int
	FooterLen int
}

// TotalLen returns the layer's full extent, header + body + footer.
func (m ParseMetadata) TotalLen() int {
	return m.HeaderLen + m.BodyLen + m.FooterLen
}

// UndoParse restores the extents recorded in meta: it first regrows any
// padding discarded after parsing (the difference between meta.BodyLen
// and the current body length), then the header, then the footer.
//
// Across nested layers callers must undo parses most-recently-parsed
// first. That ordering is an unenforced precondition; violating it
// silently mixes up layer boundaries.
func UndoParse(b GrowBuffer, meta ParseMetadata) {
	if pad := meta.BodyLen - b.Len(); pad > 0 {
		b.GrowBack(pad)
	}
	b.GrowFront(meta.HeaderLen)
	b.GrowBack(meta.FooterLen)
}
