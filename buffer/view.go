package buffer

import "encoding/binary"

// View is a cursor over a contiguous body, consumed from either end
// during one parse step. It is an ephemeral exclusive borrow: create it,
// drain it, drop it. Take operations return exactly n bytes or report
// insufficient data; they never hand out a partial slice.
//
// Multi-byte integers use network byte order.
type View struct {
	data []byte
}

func NewView(b []byte) View {
	return View{data: b}
}

func (v *View) Len() int {
	return len(v.data)
}

func (v *View) IsEmpty() bool {
	return len(v.data) == 0
}

// Bytes returns the unconsumed remainder without consuming it.
func (v *View) Bytes() []byte {
	return v.data
}

// TakeFront consumes n bytes from the front.
func (v *View) TakeFront(n int) ([]byte, bool) {
	if n < 0 || n > len(v.data) {
		return nil, false
	}
	taken := v.data[:n]
	v.data = v.data[n:]
	return taken, true
}

// TakeBack consumes n bytes from the back.
func (v *View) TakeBack(n int) ([]byte, bool) {
	if n < 0 || n > len(v.data) {
		return nil, false
	}
	taken := v.data[len(v.data)-n:]
	v.data = v.data[:len(v.data)-n]
	return taken, true
}

// Rest consumes and returns everything left.
func (v *View) Rest() []byte {
	taken := v.data
	v.data = nil
	return taken
}

func (v *View) TakeByteFront() (byte, bool) {
	b, ok := v.TakeFront(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (v *View) TakeByteBack() (byte, bool) {
	b, ok := v.TakeBack(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (v *View) TakeU16Front() (uint16, bool) {
	b, ok := v.TakeFront(2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(b), true
}

func (v *View) TakeU16Back() (uint16, bool) {
	b, ok := v.TakeBack(2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(b), true
}

func (v *View) TakeU32Front() (uint32, bool) {
	b, ok := v.TakeFront(4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

func (v *View) TakeU32Back() (uint32, bool) {
	b, ok := v.TakeBack(4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

func (v *View) TakeU64Front() (uint64, bool) {
	b, ok := v.TakeFront(8)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}

func (v *View) TakeU64Back() (uint64, bool) {
	b, ok := v.TakeBack(8)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}

// ViewMut is a mutable cursor. Its Zero variants scrub bytes immediately
// after removal so old buffer contents cannot leak into newly written
// headers, and its Put helpers write values directly while consuming.
type ViewMut struct {
	View
}

func NewViewMut(b []byte) ViewMut {
	return ViewMut{View: NewView(b)}
}

// TakeFrontZero consumes n bytes from the front and returns them zeroed.
func (v *ViewMut) TakeFrontZero(n int) ([]byte, bool) {
	b, ok := v.TakeFront(n)
	if !ok {
		return nil, false
	}
	Zero(b)
	return b, true
}

// TakeBackZero consumes n bytes from the back and returns them zeroed.
func (v *ViewMut) TakeBackZero(n int) ([]byte, bool) {
	b, ok := v.TakeBack(n)
	if !ok {
		return nil, false
	}
	Zero(b)
	return b, true
}

// PutFront writes b at the front and consumes it.
func (v *ViewMut) PutFront(b []byte) bool {
	dst, ok := v.TakeFront(len(b))
	if !ok {
		return false
	}
	copy(dst, b)
	return true
}

// PutBack writes b at the back and consumes it.
func (v *ViewMut) PutBack(b []byte) bool {
	dst, ok := v.TakeBack(len(b))
	if !ok {
		return false
	}
	copy(dst, b)
	return true
}

func (v *ViewMut) PutU16Front(x uint16) bool {
	dst, ok := v.TakeFront(2)
	if !ok {
		return false
	}
	binary.BigEndian.PutUint16(dst, x)
	return true
}

func (v *ViewMut) PutU16Back(x uint16) bool {
	dst, ok := v.TakeBack(2)
	if !ok {
		return false
	}
	binary.BigEndian.PutUint16(dst, x)
	return true
}

func (v *ViewMut) PutU32Front(x uint32) bool {
	dst, ok := v.TakeFront(4)
	if !ok {
		return false
	}
	binary.BigEndian.PutUint32(dst, x)
	return true
}

func (v *ViewMut) PutU32Back(x uint32) bool {
	dst, ok := v.TakeBack(4)
	if !ok {
		return false
	}
	binary.BigEndian.PutUint32(dst, x)
	return true
}

func (v *ViewMut) PutU64Front(x uint64) bool {
	dst, ok := v.TakeFront(8)
	if !ok {
		return false
	}
	binary.BigEndian.PutUint64(dst, x)
	return true
}

func (v *ViewMut) PutU64Back(x uint64) bool {
	dst, ok := v.TakeBack(8)
	if !ok {
		return false
	}
	binary.BigEndian.PutUint64(dst, x)
	return true
}
