package seq

import "vagrant-scene/internal/breader"

// KeyAxis is one axis of a keyframe's delta: Set is false when the
// stream didn't encode a new value for this axis at this key, meaning
// the previous key's delta (for that axis) carries forward unchanged.
// This distinction matters: a delta of exactly 0 and "no new delta" are
// different events and must not collapse into the same zero value.
type KeyAxis struct {
	Value int32
	Set   bool
}

// Key is one decoded keyframe: F frames after the previous key, with
// per-axis deltas.
type Key struct {
	F       int
	X, Y, Z KeyAxis
}

// readKeys decodes a variable-length keyframe stream. It always starts
// with a synthetic zero-frame key carrying all-zero, all-set deltas,
// then reads real keys until the stream signals its own end or the
// accumulated frame count reaches the animation's declared length.
func readKeys(r *breader.Reader, length int) ([]Key, error) {
	keys := []Key{{F: 0, X: KeyAxis{0, true}, Y: KeyAxis{0, true}, Z: KeyAxis{0, true}}}
	facc := 0

	for {
		key, end, err := readKey(r)
		if err != nil {
			return nil, err
		}
		if end {
			break
		}

		keys = append(keys, key)
		facc += key.F

		if facc >= length-1 {
			break
		}
	}

	return keys, nil
}

// readKey decodes a single keyframe record. The encoding packs a
// frame-run-length plus up to three axis deltas into one leading byte.
// A "long run" (any of the top three bits, 0xE0, set) has no inline
// deltas in its low bits, but its top three bits double as trailing
// s8-delta flags, checked against the byte exactly as read. A "short
// run" instead spends its low bits on a shorter run-length plus a
// cascade of optional follow-up reads: a big-endian s16 that carries the
// first flagged axis delta inline (its low bits flag which axes follow,
// each as a further big-endian s16), then signed byte deltas for
// whichever axes weren't already filled — gated by the same three top
// bits, but shifted left 3 and cleared as each axis is consumed.
func readKey(r *breader.Reader) (Key, bool, error) {
	code := r.U8()
	if err := r.Err(); err != nil {
		return Key{}, false, err
	}
	if code == 0x00 {
		return Key{}, true, nil
	}

	var f int
	var x, y, z KeyAxis
	trailing := code

	if code&0xE0 != 0 {
		fBits := int(code & 0x1F)
		if fBits == 0x1F {
			extra := r.U8()
			f = 0x20 + int(extra)
		} else {
			f = 1 + fBits
		}
	} else {
		fBits := int(code & 0x03)
		if fBits == 3 {
			extra := r.U8()
			f = 4 + int(extra)
		} else {
			f = 1 + fBits
		}

		shifted := code << 3
		h := r.S16BE()

		switch {
		case h&0x4 != 0:
			x = KeyAxis{int32(h >> 3), true}
			shifted &= 0x60
			if h&0x2 != 0 {
				y = KeyAxis{int32(r.S16BE()), true}
				shifted &= 0xA0
			}
			if h&0x1 != 0 {
				z = KeyAxis{int32(r.S16BE()), true}
				shifted &= 0xC0
			}
		case h&0x2 != 0:
			y = KeyAxis{int32(h >> 3), true}
			shifted &= 0xA0
			if h&0x1 != 0 {
				z = KeyAxis{int32(r.S16BE()), true}
				shifted &= 0xC0
			}
		case h&0x1 != 0:
			z = KeyAxis{int32(h >> 3), true}
			shifted &= 0xC0
		}

		trailing = shifted
	}

	if trailing&0x80 != 0 {
		x = KeyAxis{int32(r.S8()), true}
	}
	if trailing&0x40 != 0 {
		y = KeyAxis{int32(r.S8()), true}
	}
	if trailing&0x20 != 0 {
		z = KeyAxis{int32(r.S8()), true}
	}

	if err := r.Err(); err != nil {
		return Key{}, false, err
	}
	return Key{F: f, X: x, Y: y, Z: z}, false, nil
}
