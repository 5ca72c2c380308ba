/*
Package records is a generic validate-once, iterate-infallibly engine for
repeated sequentially encoded sub-structures such as protocol options.

A protocol plugs in a Parser that consumes one record from a cursor and a
Context carrying its per-sequence state, including a counter that limits
how many records remain. Parse makes exactly one validating pass, either
failing fast or caching the record count; iteration afterwards cannot
fail (given a deterministic parser) and reports its exact length.

Contexts are cloned, never shared, when constructing an iterator, so
concurrent iterators cannot interfere with each other's bookkeeping.
*/
package records

import (
	"errors"

	"github.com/drpcorg/packbuf/buffer"
)

var (
	// ErrFormat is the engine's shared malformed-sequence error.
	// Protocol-specific structural errors are the parser's own.
	ErrFormat = errors.New("records: bad sequence format")
	// ErrTooFewRecords reports a sequence that ended before an
	// exact-count counter was satisfied.
	ErrTooFewRecords = errors.New("records: too few records")
	// ErrNoProgress reports a parser that returned without consuming any
	// bytes, which would otherwise loop forever.
	ErrNoProgress = errors.New("records: parser consumed no bytes")
)

// Outcome is the per-record parse result.
type Outcome uint8

const (
	// Parsed: a record was extracted and a counter slot is consumed.
	Parsed Outcome = iota
	// Skipped: bytes were consumed but no record is yielded and no
	// counter slot is consumed.
	Skipped
	// Done: the sequence ended; the counter's end-of-sequence policy
	// decides whether that is acceptable.
	Done
)

// Counter paces a record sequence.
type Counter interface {
	// Allow reports whether another record may be parsed; false stops
	// iteration.
	Allow() bool
	// Commit consumes one slot after a parsed record.
	Commit()
	// Close is invoked when the parser reports Done; exact-count
	// protocols fail here when slots remain.
	Close() error
}

// Unlimited is the counter for open-ended sequences.
type Unlimited struct{}

func (Unlimited) Allow() bool  { return true }
func (Unlimited) Commit()      {}
func (Unlimited) Close() error { return nil }

// LimitCounter caps the record count, optionally requiring it exactly.
type LimitCounter struct {
	Remaining int
	Exact     bool
}

func (c *LimitCounter) Allow() bool { return c.Remaining > 0 }
func (c *LimitCounter) Commit()     { c.Remaining-- }

func (c *LimitCounter) Close() error {
	if c.Exact && c.Remaining > 0 {
		return ErrTooFewRecords
	}
	return nil
}

// Context carries per-sequence parser state. CloneForIterate must deep
// copy everything, counter included.
type Context[C any] interface {
	Counter
	CloneForIterate() C
}

// CounterContext adapts a bare counter into a Context for protocols with
// no state of their own.
type CounterContext struct {
	LimitCounter
	unlimited bool
}

// NewUnlimitedContext allows any number of records.
func NewUnlimitedContext() *CounterContext {
	return &CounterContext{unlimited: true}
}

// NewLimitContext caps the record count; with exact set, ending early is
// an error.
func NewLimitContext(limit int, exact bool) *CounterContext {
	return &CounterContext{LimitCounter: LimitCounter{Remaining: limit, Exact: exact}}
}

func (c *CounterContext) Allow() bool {
	return c.unlimited || c.LimitCounter.Allow()
}

func (c *CounterContext) Commit() {
	if !c.unlimited {
		c.LimitCounter.Commit()
	}
}

func (c *CounterContext) Close() error {
	if c.unlimited {
		return nil
	}
	return c.LimitCounter.Close()
}

func (c *CounterContext) CloneForIterate() *CounterContext {
	cp := *c
	return &cp
}

// Parser consumes one record from the view. On Skipped the parser must
// itself have advanced past the skipped bytes; the engine verifies
// forward progress and fails with ErrNoProgress otherwise.
type Parser[R any, C Context[C]] interface {
	ParseWithContext(v *buffer.View, ctx C) (R, Outcome, error)
}

// RawParser delimits one record without fully validating it.
type RawParser[C Context[C]] interface {
	DelimitWithContext(v *buffer.View, ctx C) (Outcome, error)
}

// Records is a validated sequence: iteration never fails and Len is
// exact. The record values reference the original bytes.
type Records[R any, C Context[C]] struct {
	data   []byte
	parser Parser[R, C]
	ctx    C
	count  int
}

// Parse runs the validating pass over data. It either fails fast or
// returns a Records whose iteration is infallible.
func Parse[R any, C Context[C]](data []byte, parser Parser[R, C], ctx C) (*Records[R, C], error) {
	count := 0
	err := drive(data, ctx.CloneForIterate(), func(v *buffer.View, c C) (Outcome, error) {
		_, out, err := parser.ParseWithContext(v, c)
		if out == Parsed && err == nil {
			count++
		}
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &Records[R, C]{data: data, parser: parser, ctx: ctx, count: count}, nil
}

// drive is the engine loop shared by validation, counting and raw
// delimiting: query the counter, invoke the parser, enforce forward
// progress, commit parsed records, and apply the end-of-sequence policy.
func drive[C Context[C]](data []byte, ctx C, step func(*buffer.View, C) (Outcome, error)) error {
	v := buffer.NewView(data)
	for ctx.Allow() {
		before := v.Len()
		out, err := step(&v, ctx)
		if err != nil {
			return err
		}
		switch out {
		case Done:
			return ctx.Close()
		case Skipped, Parsed:
			if v.Len() == before {
				return ErrNoProgress
			}
			if out == Parsed {
				ctx.Commit()
			}
		default:
			return ErrFormat
		}
	}
	return nil
}

// Len returns the exact number of records.
func (r *Records[R, C]) Len() int {
	return r.count
}

// Bytes returns the backing bytes of the whole sequence.
func (r *Records[R, C]) Bytes() []byte {
	return r.data
}

// Iter starts an iteration over the validated records. The context is
// cloned per iterator.
func (r *Records[R, C]) Iter() *Iterator[R, C] {
	return &Iterator[R, C]{
		v:      buffer.NewView(r.data),
		parser: r.parser,
		ctx:    r.ctx.CloneForIterate(),
	}
}

// All collects every record into a slice.
func (r *Records[R, C]) All() []R {
	out := make([]R, 0, r.count)
	it := r.Iter()
	for rec, ok := it.Next(); ok; rec, ok = it.Next() {
		out = append(out, rec)
	}
	return out
}

// Iterator yields records from a validated sequence. Next never fails.
type Iterator[R any, C Context[C]] struct {
	v      buffer.View
	parser Parser[R, C]
	ctx    C
}

func (it *Iterator[R, C]) Next() (R, bool) {
	var zero R
	for it.ctx.Allow() {
		rec, out, err := it.parser.ParseWithContext(&it.v, it.ctx)
		if err != nil || out == Done {
			// Unreachable after validation with a deterministic parser.
			return zero, false
		}
		if out == Skipped {
			continue
		}
		it.ctx.Commit()
		return rec, true
	}
	return zero, false
}

// RecordsRaw is a sequence whose boundaries were delimited but whose
// records were not fully validated.
type RecordsRaw[C Context[C]] struct {
	data  []byte
	ctx   C
	count int
}

// ParseRaw performs the lighter delimiting pass over data.
func ParseRaw[C Context[C]](data []byte, parser RawParser[C], ctx C) (*RecordsRaw[C], error) {
	count := 0
	err := drive(data, ctx.CloneForIterate(), func(v *buffer.View, c C) (Outcome, error) {
		out, err := parser.DelimitWithContext(v, c)
		if out == Parsed && err == nil {
			count++
		}
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &RecordsRaw[C]{data: data, ctx: ctx, count: count}, nil
}

// Len returns the number of delimited records.
func (r *RecordsRaw[C]) Len() int {
	return r.count
}

func (r *RecordsRaw[C]) Bytes() []byte {
	return r.data
}

// Validate upgrades a raw sequence to a fully validated one.
func Validate[R any, C Context[C]](raw *RecordsRaw[C], parser Parser[R, C]) (*Records[R, C], error) {
	return Parse(raw.data, parser, raw.ctx)
}
