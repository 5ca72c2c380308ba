package packbuf

import (
	"math"

	"github.com/drpcorg/packbuf/utils"
)

// PacketConstraints are one layer's immutable serialization requirements:
// its header and footer lengths and the bounds on the body it can carry.
// Values are only constructible through the validating factory, so a
// PacketConstraints in hand always satisfies minBody ≤ maxBody and
// header+minBody+footer not overflowing.
type PacketConstraints struct {
	headerLen  int
	footerLen  int
	minBodyLen int
	maxBodyLen int
}

// NewPacketConstraints validates and builds a PacketConstraints.
// ok is false when any length is negative, maxBody < minBody, or
// header+minBody+footer overflows.
func NewPacketConstraints(header, footer, minBody, maxBody int) (PacketConstraints, bool) {
	if header < 0 || footer < 0 || minBody < 0 || maxBody < minBody {
		return PacketConstraints{}, false
	}
	hf, ok := utils.CheckedAdd(header, footer)
	if !ok {
		return PacketConstraints{}, false
	}
	if _, ok := utils.CheckedAdd(hf, minBody); !ok {
		return PacketConstraints{}, false
	}
	return PacketConstraints{
		headerLen:  header,
		footerLen:  footer,
		minBodyLen: minBody,
		maxBodyLen: maxBody,
	}, true
}

// MustPacketConstraints is NewPacketConstraints for statically known
// layouts; it panics on invalid input.
func MustPacketConstraints(header, footer, minBody, maxBody int) PacketConstraints {
	c, ok := NewPacketConstraints(header, footer, minBody, maxBody)
	if !ok {
		panic("packbuf: invalid packet constraints")
	}
	return c
}

// Unconstrained places no requirements at all.
func Unconstrained() PacketConstraints {
	return PacketConstraints{maxBodyLen: math.MaxInt}
}

func (c PacketConstraints) HeaderLen() int  { return c.headerLen }
func (c PacketConstraints) FooterLen() int  { return c.footerLen }
func (c PacketConstraints) MinBodyLen() int { return c.minBodyLen }
func (c PacketConstraints) MaxBodyLen() int { return c.maxBodyLen }

// TryCompose merges the constraints of an inner layer nested immediately
// inside an outer one. Header and footer lengths add (checked); the body
// bounds are the inner's narrowed by whatever the outer leaves once the
// inner's header and footer are accounted for. ok is false when the sums
// overflow or the outer cannot fit the inner's requirements at all; by
// convention callers treat that as an MTU-class failure.
func TryCompose(inner, outer PacketConstraints) (PacketConstraints, bool) {
	header, ok := utils.CheckedAdd(inner.headerLen, outer.headerLen)
	if !ok {
		return PacketConstraints{}, false
	}
	footer, ok := utils.CheckedAdd(inner.footerLen, outer.footerLen)
	if !ok {
		return PacketConstraints{}, false
	}
	encaps, ok := utils.CheckedAdd(inner.headerLen, inner.footerLen)
	if !ok {
		return PacketConstraints{}, false
	}
	minBody := utils.SaturatingSub(outer.minBodyLen, encaps)
	if inner.minBodyLen > minBody {
		minBody = inner.minBodyLen
	}
	maxBody, ok := utils.CheckedSub(outer.maxBodyLen, encaps)
	if !ok || maxBody < 0 {
		return PacketConstraints{}, false
	}
	if inner.maxBodyLen < maxBody {
		maxBody = inner.maxBodyLen
	}
	return NewPacketConstraints(header, footer, minBody, maxBody)
}

// WithMTU narrows the maximum body length against an externally supplied
// ceiling. ok is false when the ceiling dips below the minimum.
func (c PacketConstraints) WithMTU(mtu int) (PacketConstraints, bool) {
	max := c.maxBodyLen
	if mtu < max {
		max = mtu
	}
	return NewPacketConstraints(c.headerLen, c.footerLen, c.minBodyLen, max)
}
