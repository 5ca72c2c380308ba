package records

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drpcorg/packbuf/buffer"
)

// pairParser parses 2-byte records. A record whose first byte is 0xff
// terminates the sequence; one whose first byte is 0x00 is skipped.
type pairParser struct{}

func (pairParser) ParseWithContext(v *buffer.View, _ *CounterContext) ([]byte, Outcome, error) {
	if v.IsEmpty() {
		return nil, Done, nil
	}
	rec, ok := v.TakeFront(2)
	if !ok {
		return nil, 0, ErrFormat
	}
	switch rec[0] {
	case 0xff:
		return nil, Done, nil
	case 0x00:
		return nil, Skipped, nil
	}
	return rec, Parsed, nil
}

func (pairParser) DelimitWithContext(v *buffer.View, ctx *CounterContext) (Outcome, error) {
	_, out, err := pairParser{}.ParseWithContext(v, ctx)
	return out, err
}

// stuckParser never consumes anything.
type stuckParser struct{}

func (stuckParser) ParseWithContext(*buffer.View, *CounterContext) ([]byte, Outcome, error) {
	return nil, Skipped, nil
}

func TestParseAndIterate(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	recs, err := Parse[[]byte](data, pairParser{}, NewUnlimitedContext())
	assert.NoError(t, err)
	assert.Equal(t, 3, recs.Len())
	assert.Equal(t, data, recs.Bytes())
	assert.Equal(t, [][]byte{{1, 2}, {3, 4}, {5, 6}}, recs.All())
}

func TestParseSkipsRecords(t *testing.T) {
	recs, err := Parse[[]byte]([]byte{1, 2, 0, 9, 3, 4}, pairParser{}, NewUnlimitedContext())
	assert.NoError(t, err)
	assert.Equal(t, 2, recs.Len(), "skipped records do not count")
	assert.Equal(t, [][]byte{{1, 2}, {3, 4}}, recs.All())
}

func TestParseStopsAtTerminator(t *testing.T) {
	recs, err := Parse[[]byte]([]byte{1, 2, 0xff, 0, 3, 4}, pairParser{}, NewUnlimitedContext())
	assert.NoError(t, err)
	assert.Equal(t, 1, recs.Len())
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse[[]byte]([]byte{1, 2, 3}, pairParser{}, NewUnlimitedContext())
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseLimit(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}

	recs, err := Parse[[]byte](data, pairParser{}, NewLimitContext(2, false))
	assert.NoError(t, err)
	assert.Equal(t, 2, recs.Len(), "the limit stops parsing early")
	assert.Equal(t, [][]byte{{1, 2}, {3, 4}}, recs.All())
}

func TestParseExactTooFew(t *testing.T) {
	_, err := Parse[[]byte]([]byte{1, 2}, pairParser{}, NewLimitContext(3, true))
	assert.ErrorIs(t, err, ErrTooFewRecords)

	recs, err := Parse[[]byte]([]byte{1, 2}, pairParser{}, NewLimitContext(3, false))
	assert.NoError(t, err)
	assert.Equal(t, 1, recs.Len())
}

func TestParseExactSatisfied(t *testing.T) {
	recs, err := Parse[[]byte]([]byte{1, 2, 3, 4}, pairParser{}, NewLimitContext(2, true))
	assert.NoError(t, err)
	assert.Equal(t, 2, recs.Len())
}

func TestParseNoProgress(t *testing.T) {
	_, err := Parse[[]byte]([]byte{1, 2}, stuckParser{}, NewUnlimitedContext())
	assert.ErrorIs(t, err, ErrNoProgress)
}

func TestIteratorsAreIndependent(t *testing.T) {
	recs, err := Parse[[]byte]([]byte{1, 2, 3, 4}, pairParser{}, NewLimitContext(2, false))
	assert.NoError(t, err)

	it1 := recs.Iter()
	it2 := recs.Iter()
	r1, ok := it1.Next()
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2}, r1)
	r2, ok := it2.Next()
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2}, r2, "each iterator has its own cloned context")

	_, ok = it1.Next()
	assert.True(t, ok)
	_, ok = it1.Next()
	assert.False(t, ok)
}

func TestParseRawThenValidate(t *testing.T) {
	data := []byte{1, 2, 0, 9, 3, 4}
	raw, err := ParseRaw(data, pairParser{}, NewUnlimitedContext())
	assert.NoError(t, err)
	assert.Equal(t, 2, raw.Len())
	assert.Equal(t, data, raw.Bytes())

	recs, err := Validate[[]byte](raw, pairParser{})
	assert.NoError(t, err)
	assert.Equal(t, [][]byte{{1, 2}, {3, 4}}, recs.All())
}
