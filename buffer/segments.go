package buffer

// Segments is a scatter/gather byte region, ordered front to back.
// It converts easily to net.Buffers and is the view handed to
// WithBytes/WithBytesMut callbacks; callbacks must not retain it.
type Segments [][]byte

func (ss Segments) Len() (total int) {
	for _, s := range ss {
		total += len(s)
	}
	return
}

func (ss Segments) IsEmpty() bool {
	return ss.Len() == 0
}

// Flatten concatenates all segments into a single owned copy.
func (ss Segments) Flatten() []byte {
	flat := make([]byte, 0, ss.Len())
	for _, s := range ss {
		flat = append(flat, s...)
	}
	return flat
}

// Slice returns a sub-view covering r. The returned segments alias ss.
func (ss Segments) Slice(r Range) Segments {
	r = r.Canon(ss.Len())
	var out Segments
	pos := 0
	for _, s := range ss {
		lo, hi := r.Start-pos, r.End-pos
		pos += len(s)
		if hi <= 0 {
			break
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(s) {
			hi = len(s)
		}
		if lo < hi {
			out = append(out, s[lo:hi])
		}
	}
	return out
}

// ZeroRange zero-fills r.
func (ss Segments) ZeroRange(r Range) {
	for _, s := range ss.Slice(r) {
		Zero(s)
	}
}

// CopySegments copies src into dst front to back and returns the number of
// bytes copied, the smaller of the two lengths.
func CopySegments(dst, src Segments) (n int) {
	var d, s []byte
	di, si := 0, 0
	for {
		for len(d) == 0 {
			if di == len(dst) {
				return
			}
			d = dst[di]
			di++
		}
		for len(s) == 0 {
			if si == len(src) {
				return
			}
			s = src[si]
			si++
		}
		c := copy(d, s)
		d, s = d[c:], s[c:]
		n += c
	}
}

// copySegmentsBackward copies src into dst starting from the back.
// Both views must have equal total length.
func copySegmentsBackward(dst, src Segments) {
	di, si := len(dst)-1, len(src)-1
	var d, s []byte
	for {
		for len(d) == 0 {
			if di < 0 {
				return
			}
			d = dst[di]
			di--
		}
		for len(s) == 0 {
			if si < 0 {
				return
			}
			s = src[si]
			si--
		}
		c := len(d)
		if len(s) < c {
			c = len(s)
		}
		copy(d[len(d)-c:], s[len(s)-c:])
		d, s = d[:len(d)-c], s[:len(s)-c]
	}
}

// CopyWithin copies the bytes at src to offset dst within the same region,
// handling overlap in either direction.
func (ss Segments) CopyWithin(src Range, dst int) {
	src = src.Canon(ss.Len())
	if dst < 0 || dst+src.Len() > ss.Len() {
		panic("buffer: copy destination out of bounds")
	}
	if dst == src.Start || src.IsEmpty() {
		return
	}
	from := ss.Slice(src)
	to := ss.Slice(Range{Start: dst, End: dst + src.Len()})
	if dst < src.Start {
		CopySegments(to, from)
	} else {
		copySegmentsBackward(to, from)
	}
}

// Copy copies src's bytes into dst's bytes front to back, dispatching the
// contiguous fast path on whichever side offers one. It returns the number
// of bytes copied.
func Copy(dst FragmentedBufferMut, src FragmentedBuffer) (n int) {
	cd, dstFlat := dst.(ContiguousBuffer)
	cs, srcFlat := src.(ContiguousBuffer)
	switch {
	case dstFlat && srcFlat:
		n = copy(cd.Bytes(), cs.Bytes())
	case dstFlat:
		src.WithBytes(func(ss Segments) {
			n = CopySegments(Segments{cd.Bytes()}, ss)
		})
	case srcFlat:
		dst.WithBytesMut(func(ds Segments) {
			n = CopySegments(ds, Segments{cs.Bytes()})
		})
	default:
		dst.WithBytesMut(func(ds Segments) {
			src.WithBytes(func(ss Segments) {
				n = CopySegments(ds, ss)
			})
		})
	}
	return
}
