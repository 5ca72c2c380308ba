package packbuf

import (
	"fmt"

	"github.com/drpcorg/packbuf/buffer"
)

// TargetBuffer is the capability set a serialization target must carry:
// growable, mutable, contiguous body access.
type TargetBuffer = buffer.Buffer

// SerializeBuffer is a short-lived view of one layer's extent, exposing
// its header, body and footer regions to exactly one builder for one
// Serialize call. The three regions are adjacent slices of a single
// backing array.
type SerializeBuffer struct {
	data      []byte
	headerLen int
	footerLen int
}

// NewSerializeBuffer carves data into header, body and footer regions.
func NewSerializeBuffer(data []byte, headerLen, footerLen int) *SerializeBuffer {
	if headerLen < 0 || footerLen < 0 || headerLen+footerLen > len(data) {
		panic(fmt.Sprintf("packbuf: header %d + footer %d exceed %d bytes", headerLen, footerLen, len(data)))
	}
	return &SerializeBuffer{data: data, headerLen: headerLen, footerLen: footerLen}
}

func (s *SerializeBuffer) Header() []byte {
	return s.data[:s.headerLen]
}

func (s *SerializeBuffer) Body() []byte {
	return s.data[s.headerLen : len(s.data)-s.footerLen]
}

func (s *SerializeBuffer) Footer() []byte {
	return s.data[len(s.data)-s.footerLen:]
}

// PacketBuilder serializes a single protocol layer. When Serialize is
// invoked the buffer's body is already sized within
// [MinBodyLen, MaxBodyLen] and any padding is zero-filled by the
// framework. The builder must itself initialize every header and footer
// byte, even to zero: leaving bytes untouched would leak prior buffer
// contents onto the wire.
type PacketBuilder interface {
	Constraints() PacketConstraints
	Serialize(b *SerializeBuffer)
}

// InnerBuilder serializes an innermost body, one that wraps no payload
// of its own.
type InnerBuilder interface {
	Len() int
	SerializeInto(b []byte)
}

// NestedPacketBuilder is one or more stacked layers serializing around a
// target buffer's current body. TryConstraints returns ok=false when the
// layers cannot be composed (header or footer sums overflow, or an inner
// layer's requirements exceed an outer's body budget); callers must treat
// that as an MTU-class failure and must not call SerializeInto.
type NestedPacketBuilder interface {
	TryConstraints() (PacketConstraints, bool)
	// SerializeInto wraps the target's body in this builder's layers,
	// innermost first. The target must hold prefix and suffix capacity
	// per TryConstraints; calling it when TryConstraints reported ok=false
	// is a contract violation and panics.
	SerializeInto(target TargetBuffer)
}

type leafBuilder struct {
	pb PacketBuilder
}

// NestBuilder adapts a single-layer PacketBuilder into a
// NestedPacketBuilder.
func NestBuilder(pb PacketBuilder) NestedPacketBuilder {
	return leafBuilder{pb: pb}
}

func (l leafBuilder) TryConstraints() (PacketConstraints, bool) {
	return l.pb.Constraints(), true
}

func (l leafBuilder) SerializeInto(target TargetBuffer) {
	c := l.pb.Constraints()
	if target.Len() > c.MaxBodyLen() {
		panic("packbuf: serialize called with body exceeding max body length")
	}
	// Padding demanded by this layer's minimum lands here, directly
	// inside this layer's footer, adjacent to the layer that required it.
	if pad := c.MinBodyLen() - target.Len(); pad > 0 {
		target.GrowBackZero(pad)
	}
	target.GrowFront(c.HeaderLen())
	target.GrowBack(c.FooterLen())
	l.pb.Serialize(NewSerializeBuffer(target.Bytes(), c.HeaderLen(), c.FooterLen()))
}

type nestedBuilder struct {
	inner, outer NestedPacketBuilder
}

// Nest composes two builders; inner serializes first, so the result
// stacks outer's layers around inner's. Composition is associative.
func Nest(inner, outer NestedPacketBuilder) NestedPacketBuilder {
	return nestedBuilder{inner: inner, outer: outer}
}

func (n nestedBuilder) TryConstraints() (PacketConstraints, bool) {
	inner, ok := n.inner.TryConstraints()
	if !ok {
		return PacketConstraints{}, false
	}
	outer, ok := n.outer.TryConstraints()
	if !ok {
		return PacketConstraints{}, false
	}
	return TryCompose(inner, outer)
}

func (n nestedBuilder) SerializeInto(target TargetBuffer) {
	if _, ok := n.TryConstraints(); !ok {
		panic("packbuf: serialize called on uncomposable nested builder")
	}
	n.inner.SerializeInto(target)
	n.outer.SerializeInto(target)
}

type sizeLimitedBuilder struct {
	nb      NestedPacketBuilder
	maxBody int
}

// WithSizeLimit narrows a builder's maximum body length against an
// externally supplied ceiling, typically a link MTU.
func WithSizeLimit(nb NestedPacketBuilder, maxBody int) NestedPacketBuilder {
	return sizeLimitedBuilder{nb: nb, maxBody: maxBody}
}

func (s sizeLimitedBuilder) TryConstraints() (PacketConstraints, bool) {
	c, ok := s.nb.TryConstraints()
	if !ok {
		return PacketConstraints{}, false
	}
	return c.WithMTU(s.maxBody)
}

func (s sizeLimitedBuilder) SerializeInto(target TargetBuffer) {
	if _, ok := s.TryConstraints(); !ok {
		panic("packbuf: serialize called on uncomposable nested builder")
	}
	s.nb.SerializeInto(target)
}
