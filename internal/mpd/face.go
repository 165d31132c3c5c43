package mpd

import "vagrant-scene/internal/breader"

// faceRaw is one triangle or quad record as it appears in a room's
// geometry data, before scale/anchor are applied.
type faceRaw struct {
	quad bool

	p1x, p1y, p1z int16
	p2x, p2y, p2z int8
	p3x, p3y, p3z int8
	p4x, p4y, p4z int8

	r1, g1, b1 uint8
	r2, g2, b2 uint8
	r3, g3, b3 uint8
	r4, g4, b4 uint8

	u1, v1 uint8
	u2, v2 uint8
	u3, v3 uint8
	u4, v4 uint8

	clutID    uint16
	textureID int16
}

func readFace(r *breader.Reader, quad bool) faceRaw {
	var f faceRaw
	f.quad = quad

	f.p1x = r.S16()
	f.p1y = r.S16()
	f.p1z = r.S16()

	f.p2x = r.S8()
	f.p2y = r.S8()
	f.p2z = r.S8()

	f.p3x = r.S8()
	f.p3y = r.S8()
	f.p3z = r.S8()

	f.r1 = r.U8()
	f.g1 = r.U8()
	f.b1 = r.U8()

	r.U8() // face type, unused for room geometry

	f.r2 = r.U8()
	f.g2 = r.U8()
	f.b2 = r.U8()

	f.u1 = r.U8()

	f.r3 = r.U8()
	f.g3 = r.U8()
	f.b3 = r.U8()

	f.v1 = r.U8()
	f.u2 = r.U8()
	f.v2 = r.U8()

	f.clutID = r.U16()

	f.u3 = r.U8()
	f.v3 = r.U8()

	f.textureID = r.S16()

	if quad {
		f.p4x = r.S8()
		f.p4y = r.S8()
		f.p4z = r.S8()

		f.u4 = r.U8()

		f.r4 = r.U8()
		f.g4 = r.U8()
		f.b4 = r.U8()

		f.v4 = r.U8()
	}

	return f
}
