/*
Package options parses and serializes TLV (type-length-value) option
sequences on top of the records engine.

Kind and length share one configurable fixed-width field type. The
length encoding is pluggable: the field can cover the value alone, or
the whole record scaled by a multiplier (as NDP options count units of
eight bytes). Two reserved kinds, end-of-options and no-op, are
recognized generically when a protocol declares them.
*/
package options

import (
	"errors"

	"github.com/drpcorg/packbuf/buffer"
	"github.com/drpcorg/packbuf/records"
	"github.com/drpcorg/packbuf/utils"
)

var (
	ErrTruncated = errors.New("options: truncated option")
	ErrLength    = errors.New("options: invalid length field")
)

// LengthEncoding maps between a record's length field and its value
// length. Both directions use checked arithmetic and fail rather than
// wrap.
type LengthEncoding struct {
	wholeRecord bool
	multiplier  int
}

// ValueOnly encodes only the value length in the length field.
func ValueOnly() LengthEncoding {
	return LengthEncoding{multiplier: 1}
}

// WholeRecord encodes the entire record length, kind and length fields
// included, in units of multiplier bytes.
func WholeRecord(multiplier int) LengthEncoding {
	if multiplier < 1 {
		panic("options: length multiplier must be positive")
	}
	return LengthEncoding{wholeRecord: true, multiplier: multiplier}
}

// EncodeLength computes the length field for a value of valueLen bytes
// under a header of headerLen bytes. Whole-record lengths round up to
// the multiplier; the serializer pads the difference.
func (e LengthEncoding) EncodeLength(headerLen, valueLen int) (int, bool) {
	if !e.wholeRecord {
		return valueLen, true
	}
	total, ok := utils.CheckedAdd(headerLen, valueLen)
	if !ok {
		return 0, false
	}
	return utils.CeilDiv(total, e.multiplier)
}

// DecodeLength recovers the value length from a parsed length field.
func (e LengthEncoding) DecodeLength(headerLen, field int) (int, bool) {
	if field < 0 {
		return 0, false
	}
	if !e.wholeRecord {
		return field, true
	}
	total, ok := utils.CheckedMul(field, e.multiplier)
	if !ok || total < headerLen {
		return 0, false
	}
	return total - headerLen, true
}

// RecordLength computes the full on-wire record length, padding
// included, for a value of valueLen bytes.
func (e LengthEncoding) RecordLength(headerLen, valueLen int) (int, bool) {
	if !e.wholeRecord {
		return utils.CheckedAdd(headerLen, valueLen)
	}
	field, ok := e.EncodeLength(headerLen, valueLen)
	if !ok {
		return 0, false
	}
	return utils.CheckedMul(field, e.multiplier)
}

// Layout is a protocol's option wire format.
type Layout struct {
	// FieldSize is the width in bytes of the kind field and of the
	// length field: 1 or 2.
	FieldSize int
	Encoding  LengthEncoding
	// EndOfOptions and NoOp declare the protocol's reserved kinds, when
	// it has them.
	EndOfOptions *uint16
	NoOp         *uint16
}

func (l Layout) headerLen() int {
	return 2 * l.FieldSize
}

// maxField is the largest value a kind or length field can carry.
func (l Layout) maxField() int {
	return 1<<(8*l.FieldSize) - 1
}

func (l Layout) takeField(v *buffer.View) (uint16, bool) {
	switch l.FieldSize {
	case 1:
		b, ok := v.TakeByteFront()
		return uint16(b), ok
	case 2:
		return v.TakeU16Front()
	default:
		panic("options: field size must be 1 or 2")
	}
}

func (l Layout) putField(v *buffer.ViewMut, x uint16) {
	var ok bool
	if l.FieldSize == 1 {
		ok = v.PutFront([]byte{byte(x)})
	} else {
		ok = v.PutU16Front(x)
	}
	if !ok {
		panic("options: serialize buffer too short")
	}
}

// Option is a raw parsed option; Value references the original bytes.
type Option struct {
	Kind  uint16
	Value []byte
}

// Impl is a protocol's option vocabulary. Parse interprets one
// recognized option; returning ok=false skips it.
type Impl[O any] interface {
	Layout() Layout
	Parse(kind uint16, value []byte) (O, bool, error)
}

// Context is the records context for option sequences.
type Context = records.CounterContext

type implParser[O any] struct {
	impl Impl[O]
}

func (p implParser[O]) ParseWithContext(v *buffer.View, ctx *Context) (O, records.Outcome, error) {
	var zero O
	layout := p.impl.Layout()
	if v.IsEmpty() {
		return zero, records.Done, nil
	}
	kind, ok := layout.takeField(v)
	if !ok {
		return zero, records.Done, ErrTruncated
	}
	if layout.EndOfOptions != nil && kind == *layout.EndOfOptions {
		return zero, records.Done, nil
	}
	if layout.NoOp != nil && kind == *layout.NoOp {
		return zero, records.Skipped, nil
	}
	field, ok := layout.takeField(v)
	if !ok {
		return zero, records.Done, ErrTruncated
	}
	valueLen, ok := layout.Encoding.DecodeLength(layout.headerLen(), int(field))
	if !ok {
		return zero, records.Done, ErrLength
	}
	value, ok := v.TakeFront(valueLen)
	if !ok {
		return zero, records.Done, ErrTruncated
	}
	opt, recognized, err := p.impl.Parse(kind, value)
	if err != nil {
		return zero, records.Done, err
	}
	if !recognized {
		return zero, records.Skipped, nil
	}
	return opt, records.Parsed, nil
}

// Parse validates an option sequence and returns its records; values
// reference data.
func Parse[O any](data []byte, impl Impl[O]) (*records.Records[O, *Context], error) {
	return records.Parse[O, *Context](data, implParser[O]{impl: impl}, records.NewUnlimitedContext())
}

// ParseWithLimit caps the option count; with exact set, fewer options
// than the limit is an error.
func ParseWithLimit[O any](data []byte, impl Impl[O], limit int, exact bool) (*records.Records[O, *Context], error) {
	return records.Parse[O, *Context](data, implParser[O]{impl: impl}, records.NewLimitContext(limit, exact))
}

// rawImpl accepts every well-formed option as a raw Option.
type rawImpl struct {
	layout Layout
}

func (r rawImpl) Layout() Layout {
	return r.layout
}

func (r rawImpl) Parse(kind uint16, value []byte) (Option, bool, error) {
	return Option{Kind: kind, Value: value}, true, nil
}

// ParseAny parses every option in data as a raw Option under layout.
func ParseAny(data []byte, layout Layout) (*records.Records[Option, *Context], error) {
	return Parse[Option](data, rawImpl{layout: layout})
}

type delimiter struct {
	layout Layout
}

func (d delimiter) DelimitWithContext(v *buffer.View, ctx *Context) (records.Outcome, error) {
	_, out, err := implParser[Option]{impl: rawImpl{layout: d.layout}}.ParseWithContext(v, ctx)
	return out, err
}

// ParseRaw only delimits option boundaries, deferring full validation.
func ParseRaw(data []byte, layout Layout) (*records.RecordsRaw[*Context], error) {
	return records.ParseRaw[*Context](data, delimiter{layout: layout}, records.NewUnlimitedContext())
}
