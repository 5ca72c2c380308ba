package options

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drpcorg/packbuf/records"
)

func u16p(v uint16) *uint16 { return &v }

// tcpLayout mirrors TCP options: single-byte fields, the length field
// covering the whole record, end-of-options 0 and no-op 1.
func tcpLayout() Layout {
	return Layout{
		FieldSize:    1,
		Encoding:     WholeRecord(1),
		EndOfOptions: u16p(0),
		NoOp:         u16p(1),
	}
}

// ndpLayout mirrors NDP options: single-byte fields, the length field
// covering the whole record in units of eight bytes.
func ndpLayout() Layout {
	return Layout{FieldSize: 1, Encoding: WholeRecord(8)}
}

type testImpl struct {
	layout Layout
}

func (i testImpl) Layout() Layout { return i.layout }

func (i testImpl) Parse(kind uint16, value []byte) (Option, bool, error) {
	if kind == 99 {
		return Option{}, false, nil
	}
	return Option{Kind: kind, Value: value}, true, nil
}

func TestLengthEncodingValueOnly(t *testing.T) {
	e := ValueOnly()

	field, ok := e.EncodeLength(2, 5)
	assert.True(t, ok)
	assert.Equal(t, 5, field)

	n, ok := e.DecodeLength(2, 5)
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	rec, ok := e.RecordLength(2, 5)
	assert.True(t, ok)
	assert.Equal(t, 7, rec)
}

func TestLengthEncodingWholeRecord(t *testing.T) {
	e := WholeRecord(8)

	field, ok := e.EncodeLength(2, 6)
	assert.True(t, ok)
	assert.Equal(t, 1, field)

	field, ok = e.EncodeLength(2, 7)
	assert.True(t, ok)
	assert.Equal(t, 2, field, "rounds up to the multiplier")

	rec, ok := e.RecordLength(2, 7)
	assert.True(t, ok)
	assert.Equal(t, 16, rec)

	n, ok := e.DecodeLength(2, 1)
	assert.True(t, ok)
	assert.Equal(t, 6, n)

	_, ok = e.DecodeLength(2, 0)
	assert.False(t, ok, "record shorter than its own header")

	assert.Panics(t, func() { WholeRecord(0) })
}

func TestParseZeroLengthOption(t *testing.T) {
	// Kind 3, whole-record length 2: header only, empty value.
	recs, err := ParseAny([]byte{3, 2}, tcpLayout())
	assert.NoError(t, err)
	assert.Equal(t, 1, recs.Len())
	opt := recs.All()[0]
	assert.Equal(t, uint16(3), opt.Kind)
	assert.Len(t, opt.Value, 0)
}

func TestParseReservedKinds(t *testing.T) {
	// no-op, kind 5 with 2 value bytes, end-of-options, trailing garbage.
	data := []byte{1, 5, 4, 0xaa, 0xbb, 0, 9, 9}
	recs, err := ParseAny(data, tcpLayout())
	assert.NoError(t, err)
	assert.Equal(t, 1, recs.Len())
	opt := recs.All()[0]
	assert.Equal(t, uint16(5), opt.Kind)
	assert.Equal(t, []byte{0xaa, 0xbb}, opt.Value)
}

func TestParseUnrecognizedSkipped(t *testing.T) {
	data := []byte{99, 3, 0xff, 5, 2}
	recs, err := Parse[Option](data, testImpl{layout: tcpLayout()})
	assert.NoError(t, err)
	assert.Equal(t, 1, recs.Len())
	assert.Equal(t, uint16(5), recs.All()[0].Kind)
}

func TestParseErrors(t *testing.T) {
	layout := Layout{FieldSize: 1, Encoding: ValueOnly()}

	_, err := ParseAny([]byte{5}, layout)
	assert.ErrorIs(t, err, ErrTruncated, "missing length field")

	_, err = ParseAny([]byte{5, 3, 0xaa}, layout)
	assert.ErrorIs(t, err, ErrTruncated, "value shorter than declared")

	_, err = ParseAny([]byte{5, 0}, tcpLayout())
	assert.ErrorIs(t, err, ErrLength, "whole-record length below the header")
}

func TestParseWithLimit(t *testing.T) {
	data := []byte{5, 2, 6, 2, 7, 2}

	recs, err := ParseWithLimit[Option](data, testImpl{layout: tcpLayout()}, 2, false)
	assert.NoError(t, err)
	assert.Equal(t, 2, recs.Len())

	_, err = ParseWithLimit[Option]([]byte{5, 2}, testImpl{layout: tcpLayout()}, 3, true)
	assert.ErrorIs(t, err, records.ErrTooFewRecords)
}

func TestParseRawThenValidate(t *testing.T) {
	data := []byte{5, 3, 0xaa, 6, 2}
	raw, err := ParseRaw(data, tcpLayout())
	assert.NoError(t, err)
	assert.Equal(t, 2, raw.Len())

	recs, err := records.Validate[Option](raw, implParser[Option]{impl: rawImpl{layout: tcpLayout()}})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xaa}, recs.All()[0].Value)
}

func TestParseU16Fields(t *testing.T) {
	data := []byte{0x01, 0x02, 0x00, 0x03, 0xaa, 0xbb, 0xcc}
	recs, err := ParseAny(data, Layout{FieldSize: 2, Encoding: ValueOnly()})
	assert.NoError(t, err)
	opt := recs.All()[0]
	assert.Equal(t, uint16(0x0102), opt.Kind)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, opt.Value)
}
