package netstatus

import "fmt"

// window is an (offset, length) view into a shared immutable byte buffer.
// Windows never own a copy: narrowing produces a new window over the same
// buffer, and only Bytes hands out copied data.
type window struct {
	buf    []byte
	offset int
	length int
}

// newWindow returns a view over all of buf.
func newWindow(buf []byte) window {
	return window{buf: buf, length: len(buf)}
}

// narrow returns a view of length n starting at byte off within w.
// Bounds are checked against w, not the backing buffer: a window can only
// shrink.
func (w window) narrow(off, n int) window {
	if off < 0 || n < 0 || off+n > w.length {
		panic(fmt.Sprintf("window: narrow(%d, %d) out of bounds for length %d", off, n, w.length))
	}
	return window{buf: w.buf, offset: w.offset + off, length: n}
}

// view returns the raw bytes of the window without copying. Callers must
// not mutate the result.
func (w window) view() []byte {
	return w.buf[w.offset : w.offset+w.length]
}

// Bytes returns a copy of the window's bytes, safe to hand to callers.
func (w window) Bytes() []byte {
	out := make([]byte, w.length)
	copy(out, w.view())
	return out
}

func (w window) len() int { return w.length }

func (w window) empty() bool { return w.length == 0 }

// str interprets the window as text. Directory documents are ASCII, so no
// charset handling is needed.
func (w window) str() string {
	return string(w.view())
}
