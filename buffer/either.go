package buffer

// Either is a two-variant buffer that forwards every operation to
// whichever concrete buffer is present. It lets "reuse the original
// buffer" and "use a freshly allocated one" share a single return type
// without an extra allocation per call.
type Either[A, B Buffer] struct {
	a   A
	b   B
	isA bool
}

func EitherA[A, B Buffer](a A) *Either[A, B] {
	return &Either[A, B]{a: a, isA: true}
}

func EitherB[A, B Buffer](b B) *Either[A, B] {
	return &Either[A, B]{b: b}
}

// IsA reports whether the first variant is present.
func (e *Either[A, B]) IsA() bool {
	return e.isA
}

// A returns the first variant; valid only when IsA.
func (e *Either[A, B]) A() A {
	return e.a
}

// B returns the second variant; valid only when !IsA.
func (e *Either[A, B]) B() B {
	return e.b
}

func (e *Either[A, B]) pick() Buffer {
	if e.isA {
		return e.a
	}
	return e.b
}

func (e *Either[A, B]) Bytes() []byte               { return e.pick().Bytes() }
func (e *Either[A, B]) Len() int                    { return e.pick().Len() }
func (e *Either[A, B]) IsEmpty() bool               { return e.pick().IsEmpty() }
func (e *Either[A, B]) WithBytes(fn func(Segments)) { e.pick().WithBytes(fn) }
func (e *Either[A, B]) Flatten() []byte             { return e.pick().Flatten() }

func (e *Either[A, B]) WithBytesMut(fn func(Segments)) { e.pick().WithBytesMut(fn) }
func (e *Either[A, B]) ZeroRange(r Range)              { e.pick().ZeroRange(r) }
func (e *Either[A, B]) CopyWithin(src Range, dst int)  { e.pick().CopyWithin(src, dst) }

func (e *Either[A, B]) ShrinkFront(n int)  { e.pick().ShrinkFront(n) }
func (e *Either[A, B]) ShrinkBack(n int)   { e.pick().ShrinkBack(n) }
func (e *Either[A, B]) Shrink(body Range)  { e.pick().Shrink(body) }
func (e *Either[A, B]) Capacity() int      { return e.pick().Capacity() }
func (e *Either[A, B]) PrefixLen() int     { return e.pick().PrefixLen() }
func (e *Either[A, B]) SuffixLen() int     { return e.pick().SuffixLen() }
func (e *Either[A, B]) GrowFront(n int)    { e.pick().GrowFront(n) }
func (e *Either[A, B]) GrowBack(n int)     { e.pick().GrowBack(n) }
func (e *Either[A, B]) GrowFrontZero(n int) { e.pick().GrowFrontZero(n) }
func (e *Either[A, B]) GrowBackZero(n int)  { e.pick().GrowBackZero(n) }
func (e *Either[A, B]) Reset()              { e.pick().Reset() }
