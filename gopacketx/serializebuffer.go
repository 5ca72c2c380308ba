// Package gopacketx bridges packbuf buffers into gopacket's
// serialization machinery, so layers implemented with gopacket can write
// straight into a packbuf-managed byte region without an extra copy.
package gopacketx

import (
	"errors"

	"github.com/gopacket/gopacket"

	"github.com/drpcorg/packbuf/buffer"
)

var (
	ErrHeadroom = errors.New("gopacketx: prepend exceeds headroom")
	ErrTailroom = errors.New("gopacketx: append exceeds tailroom")
)

// SerializeBuffer implements gopacket.SerializeBuffer over a Buf.
// Prepends grow the body into the prefix, appends into the suffix; the
// buffer never reallocates, so callers size the headroom up front.
type SerializeBuffer struct {
	buf    *buffer.Buf
	prefix int
	layers []gopacket.LayerType
}

// New wraps buf; its current body is the initial payload. The body's
// starting offset is restored by Clear.
func New(buf *buffer.Buf) *SerializeBuffer {
	return &SerializeBuffer{buf: buf, prefix: buf.PrefixLen()}
}

// NewSize allocates an empty buffer with the given head- and tailroom.
func NewSize(headroom, tailroom int) *SerializeBuffer {
	return New(buffer.AllocBuf(headroom, 0, tailroom))
}

// Buf returns the underlying buffer; its body is the serialized packet.
func (s *SerializeBuffer) Buf() *buffer.Buf {
	return s.buf
}

func (s *SerializeBuffer) Bytes() []byte {
	return s.buf.Bytes()
}

func (s *SerializeBuffer) PrependBytes(num int) ([]byte, error) {
	if num < 0 || num > s.buf.PrefixLen() {
		return nil, ErrHeadroom
	}
	s.buf.GrowFrontZero(num)
	return s.buf.Bytes()[:num], nil
}

func (s *SerializeBuffer) AppendBytes(num int) ([]byte, error) {
	if num < 0 || num > s.buf.SuffixLen() {
		return nil, ErrTailroom
	}
	s.buf.GrowBackZero(num)
	body := s.buf.Bytes()
	return body[len(body)-num:], nil
}

func (s *SerializeBuffer) Clear() error {
	s.buf.Reset()
	s.buf.Shrink(buffer.Range{Start: s.prefix, End: s.prefix})
	s.layers = s.layers[:0]
	return nil
}

func (s *SerializeBuffer) Layers() []gopacket.LayerType {
	return s.layers
}

func (s *SerializeBuffer) PushLayer(l gopacket.LayerType) {
	s.layers = append(s.layers, l)
}
