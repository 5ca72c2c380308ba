package options

import (
	"github.com/drpcorg/packbuf/buffer"
)

// Builder serializes one option's value. Kind must not collide with the
// layout's reserved kinds.
type Builder interface {
	Kind() uint16
	// Length is the value length in bytes.
	Length() int
	// SerializeInto writes exactly Length bytes of value.
	SerializeInto(b []byte)
}

// AlignedBuilder is a Builder whose record must start at an offset of
// the form x*n+y.
type AlignedBuilder interface {
	Builder
	Alignment() (x, y int)
}

// SequenceBuilder serializes a sequence of options back to back. It
// satisfies the framework's innermost-body builder contract: Len
// reports the total on-wire size and SerializeInto fills exactly that
// many bytes.
type SequenceBuilder[B Builder] struct {
	layout  Layout
	options []B
}

func NewSequenceBuilder[B Builder](layout Layout, opts ...B) SequenceBuilder[B] {
	return SequenceBuilder[B]{layout: layout, options: opts}
}

func (s SequenceBuilder[B]) recordLen(opt B) int {
	layout := s.layout
	field, ok := layout.Encoding.EncodeLength(layout.headerLen(), opt.Length())
	if !ok || field > layout.maxField() {
		panic("options: length field exceeds field width")
	}
	n, ok := layout.Encoding.RecordLength(layout.headerLen(), opt.Length())
	if !ok {
		panic("options: option record length overflows")
	}
	return n
}

func (s SequenceBuilder[B]) Len() (total int) {
	for _, opt := range s.options {
		total += s.recordLen(opt)
	}
	return
}

// serializeRecord writes one option record at the front of v: kind,
// length field, value, and zero fill up to the encoding's granularity.
func (s SequenceBuilder[B]) serializeRecord(v *buffer.ViewMut, opt B) {
	layout := s.layout
	recLen := s.recordLen(opt)
	field, _ := layout.Encoding.EncodeLength(layout.headerLen(), opt.Length())
	if int(opt.Kind()) > layout.maxField() {
		panic("options: option kind exceeds field width")
	}
	layout.putField(v, opt.Kind())
	layout.putField(v, uint16(field))
	value, ok := v.TakeFrontZero(opt.Length())
	if !ok {
		panic("options: serialize buffer too short")
	}
	opt.SerializeInto(value)
	// Multiplier rounding: scrub the slack between value and record end.
	if _, ok := v.TakeFrontZero(recLen - layout.headerLen() - opt.Length()); !ok {
		panic("options: serialize buffer too short")
	}
}

func (s SequenceBuilder[B]) SerializeInto(b []byte) {
	v := buffer.NewViewMut(b)
	for _, opt := range s.options {
		s.serializeRecord(&v, opt)
	}
}

// AlignedSequenceBuilder serializes options that carry alignment
// requirements, tracking a running position and emitting
// protocol-defined padding between records and after the last one.
type AlignedSequenceBuilder[B AlignedBuilder] struct {
	seq SequenceBuilder[B]
	// padding writes the protocol's inter-record filler (zeros, no-ops).
	padding func(b []byte)
	// tailAlign rounds the whole sequence up to a multiple; 1 disables.
	tailAlign int
	// start is the offset of the sequence within its enclosing header,
	// since alignment is defined against the layer start.
	start int
}

func NewAlignedSequenceBuilder[B AlignedBuilder](layout Layout, padding func(b []byte), tailAlign, start int, opts ...B) AlignedSequenceBuilder[B] {
	if tailAlign < 1 {
		panic("options: tail alignment must be positive")
	}
	return AlignedSequenceBuilder[B]{
		seq:       NewSequenceBuilder[B](layout, opts...),
		padding:   padding,
		tailAlign: tailAlign,
		start:     start,
	}
}

// padLen returns the filler needed at pos to reach the next offset of
// the form x*n+y.
func padLen(pos, x, y int) int {
	if x < 1 {
		panic("options: alignment x must be positive")
	}
	rem := (pos - y) % x
	if rem == 0 {
		return 0
	}
	if rem < 0 {
		rem += x
	}
	return x - rem
}

func (s AlignedSequenceBuilder[B]) walk(emit func(pad int, opt *B)) int {
	pos := s.start
	for i := range s.seq.options {
		opt := s.seq.options[i]
		x, y := opt.Alignment()
		pad := padLen(pos, x, y)
		emit(pad, &s.seq.options[i])
		pos += pad + s.seq.recordLen(opt)
	}
	if tail := padLen(pos, s.tailAlign, 0); tail > 0 {
		emit(tail, nil)
		pos += tail
	}
	return pos - s.start
}

func (s AlignedSequenceBuilder[B]) Len() int {
	return s.walk(func(int, *B) {})
}

func (s AlignedSequenceBuilder[B]) SerializeInto(b []byte) {
	v := buffer.NewViewMut(b)
	s.walk(func(pad int, opt *B) {
		if pad > 0 {
			filler, ok := v.TakeFrontZero(pad)
			if !ok {
				panic("options: serialize buffer too short")
			}
			if s.padding != nil {
				s.padding(filler)
			}
		}
		if opt != nil {
			s.seq.serializeRecord(&v, *opt)
		}
	})
}
