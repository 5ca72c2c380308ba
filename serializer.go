package packbuf

import (
	"errors"

	"github.com/drpcorg/packbuf/buffer"
	"github.com/drpcorg/packbuf/utils"
)

var (
	// ErrSizeLimitExceeded is the MTU-class failure: the body cannot fit
	// the composed constraints. Retriable with adjusted parameters.
	ErrSizeLimitExceeded = errors.New("packbuf: size limit exceeded")
	// ErrAlloc reports that the buffer provider could not satisfy an
	// acquisition request. The provider's own payload is joined in.
	ErrAlloc = errors.New("packbuf: buffer allocation failed")
)

// Serializer drives recursive outward serialization: each nested layer
// contributes its constraints on the way in, the innermost value obtains
// a buffer from the provider, and the layers serialize inner before
// outer on the way back.
//
// Every implementation is transactional: on any failure the serializer's
// value and its buffer are left exactly as they were, so the operation
// can be retried without data loss. Failures are either MTU-class
// (errors.Is ErrSizeLimitExceeded) or allocation failures (errors.Is
// ErrAlloc); callers can always tell the two apart.
type Serializer interface {
	Serialize(outer PacketConstraints, provider BufferProvider) (TargetBuffer, error)
}

// BufSerializer serializes an existing buffer's body as the innermost
// value.
type BufSerializer struct {
	Buf TargetBuffer
}

func NewBufSerializer(b TargetBuffer) BufSerializer {
	return BufSerializer{Buf: b}
}

// acquire obtains storage for a body of the current length under outer:
// prefix for all outer headers, suffix for all outer footers plus any
// padding outer minimums may later demand.
func acquire(buf TargetBuffer, outer PacketConstraints, provider BufferProvider) (TargetBuffer, error) {
	if buf.Len() > outer.MaxBodyLen() {
		return nil, ErrSizeLimitExceeded
	}
	pad := utils.SaturatingSub(outer.MinBodyLen(), buf.Len())
	suffix, ok := utils.CheckedAdd(pad, outer.FooterLen())
	if !ok {
		return nil, ErrSizeLimitExceeded
	}
	out, err := provider.ReuseOrRealloc(buf, outer.HeaderLen(), suffix)
	if err != nil {
		return nil, errors.Join(ErrAlloc, err)
	}
	return out, nil
}

func (s BufSerializer) Serialize(outer PacketConstraints, provider BufferProvider) (TargetBuffer, error) {
	return acquire(s.Buf, outer, provider)
}

// Encap wraps the buffer in a protocol layer.
func (s BufSerializer) Encap(pb PacketBuilder) NestedSerializer {
	return Encap(s, pb)
}

// Truncate selects which end of an oversized body a TruncatingSerializer
// discards from.
type Truncate int

const (
	// TruncateNone disables truncation; exceeding the limit fails.
	TruncateNone Truncate = iota
	TruncateFront
	TruncateBack
)

// TruncatingSerializer enforces a body-length ceiling by discarding
// bytes from the configured end before constraint checking.
type TruncatingSerializer struct {
	Buf TargetBuffer
	Dir Truncate
}

func (s TruncatingSerializer) Serialize(outer PacketConstraints, provider BufferProvider) (TargetBuffer, error) {
	excess := utils.SaturatingSub(s.Buf.Len(), outer.MaxBodyLen())
	if excess > 0 {
		switch s.Dir {
		case TruncateFront:
			s.Buf.ShrinkFront(excess)
		case TruncateBack:
			s.Buf.ShrinkBack(excess)
		default:
			return nil, ErrSizeLimitExceeded
		}
	}
	out, err := acquire(s.Buf, outer, provider)
	if err != nil && excess > 0 {
		// Roll the truncation back so the caller gets its buffer
		// unmodified.
		if s.Dir == TruncateFront {
			s.Buf.GrowFront(excess)
		} else {
			s.Buf.GrowBack(excess)
		}
	}
	return out, err
}

// Encap wraps the truncating serializer in a protocol layer.
func (s TruncatingSerializer) Encap(pb PacketBuilder) NestedSerializer {
	return Encap(s, pb)
}

// NestedSerializer pairs an inner serializer with the builder for the
// layer wrapping it.
type NestedSerializer struct {
	inner   Serializer
	builder NestedPacketBuilder
}

// Encap wraps a serializer in one more layer.
func Encap(inner Serializer, pb PacketBuilder) NestedSerializer {
	return EncapNested(inner, NestBuilder(pb))
}

// EncapNested wraps a serializer in a pre-composed builder stack.
func EncapNested(inner Serializer, nb NestedPacketBuilder) NestedSerializer {
	return NestedSerializer{inner: inner, builder: nb}
}

// Encap adds yet another layer outside this one.
func (n NestedSerializer) Encap(pb PacketBuilder) NestedSerializer {
	return Encap(n, pb)
}

func (n NestedSerializer) Serialize(outer PacketConstraints, provider BufferProvider) (TargetBuffer, error) {
	c, ok := n.builder.TryConstraints()
	if !ok {
		return nil, ErrSizeLimitExceeded
	}
	composed, ok := TryCompose(c, outer)
	if !ok {
		return nil, ErrSizeLimitExceeded
	}
	buf, err := n.inner.Serialize(composed, provider)
	if err != nil {
		return nil, err
	}
	n.builder.SerializeInto(buf)
	return buf, nil
}

// InnerSerializer serializes an InnerBuilder as the innermost value. The
// buffer it offers to the provider is pre-shaped with the outer prefix
// and suffix so a well-behaved provider reuses it as is.
type InnerSerializer struct {
	ib InnerBuilder
}

func NewInnerSerializer(ib InnerBuilder) InnerSerializer {
	return InnerSerializer{ib: ib}
}

func (s InnerSerializer) Serialize(outer PacketConstraints, provider BufferProvider) (TargetBuffer, error) {
	n := s.ib.Len()
	if n > outer.MaxBodyLen() {
		return nil, ErrSizeLimitExceeded
	}
	pad := utils.SaturatingSub(outer.MinBodyLen(), n)
	suffix, ok := utils.CheckedAdd(pad, outer.FooterLen())
	if !ok {
		return nil, ErrSizeLimitExceeded
	}
	buf := buffer.AllocBuf(outer.HeaderLen(), n, suffix)
	s.ib.SerializeInto(buf.Bytes())
	return acquire(buf, outer, provider)
}

// Encap wraps the inner value in a protocol layer.
func (s InnerSerializer) Encap(pb PacketBuilder) NestedSerializer {
	return Encap(s, pb)
}

// Serialize runs a serializer with no outer requirements.
func Serialize(s Serializer, provider BufferProvider) (TargetBuffer, error) {
	return s.Serialize(Unconstrained(), provider)
}
