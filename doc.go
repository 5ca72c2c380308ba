/*
Package packbuf is an allocation-conscious framework for constructing
nested, length-prefixed binary protocol messages. It defines no concrete
wire format; link, network and transport codecs are built on top of it.

# Builders

A PacketBuilder is one protocol layer: a header, a footer, and bounds on
the body it can carry, declared as PacketConstraints. Independently
authored builders compose with Nest into a multi-layer builder whose
constraints merge associatively with overflow-checked arithmetic;
composition can fail (TryConstraints ok=false), which callers treat as an
MTU-class condition.

# Serialization

A Serializer carries the innermost value outward through its layers.
Layers serialize inner before outer, so zero padding demanded by a
layer's minimum body length lands adjacent to that layer, not adjacent
to the innermost body. Storage comes from a BufferProvider, which
reuses, relocates or reallocates per call; failed serializations leave
both the serializer and its buffer untouched so they can be retried.

Typical use:

	payload := packbuf.NewBufSerializer(buf)
	pkt, err := packbuf.Serialize(payload.Encap(transport).Encap(network), provider)
	if errors.Is(err, packbuf.ErrSizeLimitExceeded) {
		// over MTU: shrink the payload or enable truncation
	}

The buffer model itself, including parsing support, lives in the buffer
subpackage; repeated sub-structures such as TLV options live in records
and records/options.
*/
package packbuf
