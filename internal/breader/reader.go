// Package breader provides a sticky-error sequential byte cursor for the
// binary formats in this module. A read past the end of the buffer, a
// constant mismatch, or an overflowing length field sets a single error
// on the Reader; every subsequent read becomes a no-op returning the zero
// value. Callers check Err() once per decode stage instead of threading
// (value, error) through every field read.
package breader

import (
	"encoding/binary"
	"fmt"
)

// Reader is a cursor over an immutable byte slice. Reads advance it;
// Seek can move it to any offset, including backwards.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// New returns a Reader over data. The slice is never copied or modified.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Pos returns the current cursor offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// take returns the next n bytes and advances the cursor, or sets
// ErrOutOfBounds and returns nil if they are not available.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.fail(fmt.Errorf("%w: at %d, want %d bytes, have %d", ErrOutOfBounds, r.pos, n, len(r.data)-r.pos))
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// U8 reads an unsigned 8-bit integer.
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// S8 reads a signed 8-bit integer.
func (r *Reader) S8() int8 {
	return int8(r.U8())
}

// U16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// S16 reads a little-endian signed 16-bit integer.
func (r *Reader) S16() int16 {
	return int16(r.U16())
}

// S16BE reads a big-endian signed 16-bit integer. Used by the SEQ
// keyframe stream, which stores its deltas big-endian unlike everything
// else in this module.
func (r *Reader) S16BE() int16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return int16(binary.BigEndian.Uint16(b))
}

// U32 reads a little-endian unsigned 32-bit integer. If bit 31 is set the
// Reader fails with ErrOverflow: every length/pointer field in these
// formats fits comfortably under 2^31, so a set high bit means the
// cursor has wandered into garbage.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	v := binary.LittleEndian.Uint32(b)
	if v&0x8000_0000 != 0 {
		r.fail(fmt.Errorf("%w: value 0x%x at offset %d", ErrOverflow, v, r.pos-4))
		return 0
	}
	return v
}

// S32 reads a little-endian signed 32-bit integer without the bit-31 check.
func (r *Reader) S32() int32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

// Buffer reads n raw bytes and returns a copy.
func (r *Reader) Buffer(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Raw returns a view (not a copy) of the n bytes starting offset bytes
// past the cursor, without advancing the cursor. Used to peek discriminator bytes ahead of the cursor, as
// the WEP/SHP v2 face decoder does to pick a record layout.
func (r *Reader) Raw(offset, n int) []byte {
	if r.err != nil {
		return nil
	}
	start := r.pos + offset
	if start < 0 || n < 0 || start+n > len(r.data) {
		r.fail(fmt.Errorf("%w: peek at %d, want %d bytes, have %d", ErrOutOfBounds, start, n, len(r.data)-start))
		return nil
	}
	return r.data[start : start+n]
}

// Constant reads len(want) bytes and fails with ErrConstantMismatch if
// they don't equal want.
func (r *Reader) Constant(want []byte) {
	b := r.take(len(want))
	if b == nil {
		return
	}
	for i := range want {
		if b[i] != want[i] {
			r.fail(fmt.Errorf("%w: at %d, want %x got %x", ErrConstantMismatch, r.pos-len(want), want, b))
			return
		}
	}
}

// Padding reads n bytes and fails with ErrConstantMismatch if any of
// them differ from want.
func (r *Reader) Padding(n int, want byte) {
	b := r.take(n)
	if b == nil {
		return
	}
	for _, v := range b {
		if v != want {
			r.fail(fmt.Errorf("%w: padding at %d expected 0x%02x got 0x%02x", ErrConstantMismatch, r.pos-n, want, v))
			return
		}
	}
}

// Skip advances the cursor by n bytes without reading them.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Seek moves the cursor to an absolute offset. Seeking out of bounds
// fails the reader.
func (r *Reader) Seek(pos int) {
	if r.err != nil {
		return
	}
	if pos < 0 || pos > len(r.data) {
		r.fail(fmt.Errorf("%w: seek to %d, length %d", ErrOutOfBounds, pos, len(r.data)))
		return
	}
	r.pos = pos
}
