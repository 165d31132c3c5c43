package breader

import "errors"

var (
	// ErrOutOfBounds is returned when a read or seek would cross the end
	// of the buffer.
	ErrOutOfBounds = errors.New("breader: out of bounds")

	// ErrConstantMismatch is returned when a fixed byte sequence (a magic
	// number, a padding run, an expected discriminator byte) doesn't
	// match what the format requires at that offset.
	ErrConstantMismatch = errors.New("breader: constant mismatch")

	// ErrOverflow is returned by U32 when bit 31 is set, which never
	// happens for a legitimate length or pointer field in these formats.
	ErrOverflow = errors.New("breader: u32 overflow")
)
