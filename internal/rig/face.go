package rig

import (
	"errors"
	"fmt"

	"vagrant-scene/internal/breader"
)

// Face is one triangle or quad record, normalized to a common shape
// regardless of which on-disk layout (v1 plain, v2 vertex-colored)
// produced it.
type Face struct {
	Quad bool
	Info uint8

	Vertex1, Vertex2, Vertex3, Vertex4 int

	U1, V1, U2, V2, U3, V3, U4, V4 uint8
	R1, G1, B1                     uint8
	R2, G2, B2                     uint8
	R3, G3, B3                     uint8
	R4, G4, B4                     uint8
}

// Double reports whether this face should be emitted with both windings
// (used for single-sided geometry that needs to read from both sides,
// such as capes or flat blades).
func (f Face) Double() bool {
	return f.Info == 0x05
}

// readFaces decodes n faces starting at the reader's current position,
// trying the plain v1 layout first and falling back to the v2,
// vertex-colored layout if any face's type byte doesn't match a known
// v1 discriminator. The two layouts are mutually exclusive for an
// entire file: if the fallback is needed, it's needed for every face.
func readFaces(r *breader.Reader, n int) ([]Face, int, error) {
	base := r.Pos()

	faces, err := tryReadFacesV1(r, n)
	if err == nil {
		return faces, 1, nil
	}
	if !errors.Is(err, ErrUnknownFaceType) {
		return nil, 0, err
	}

	r.Seek(base)
	faces, err = tryReadFacesV2(r, n)
	if err != nil {
		return nil, 0, err
	}
	return faces, 2, nil
}

func tryReadFacesV1(r *breader.Reader, n int) ([]Face, error) {
	faces := make([]Face, 0, n)
	for i := 0; i < n; i++ {
		typeByte := r.U8()
		if err := r.Err(); err != nil {
			return nil, err
		}

		quad := typeByte == 0x2C
		if !quad && typeByte != 0x24 {
			return nil, fmt.Errorf("%w: 0x%02x at face %d", ErrUnknownFaceType, typeByte, i)
		}

		r.U8() // size
		info := r.U8()
		r.Skip(1)

		var f Face
		f.Quad = quad
		f.Info = info

		f.Vertex1 = int(r.U16() / 4)
		f.Vertex2 = int(r.U16() / 4)
		f.Vertex3 = int(r.U16() / 4)
		if quad {
			f.Vertex4 = int(r.U16() / 4)
		}

		f.U1 = r.U8()
		f.V1 = r.U8()
		f.U2 = r.U8()
		f.V2 = r.U8()
		f.U3 = r.U8()
		f.V3 = r.U8()
		if quad {
			f.U4 = r.U8()
			f.V4 = r.U8()
		}

		f.R1, f.G1, f.B1 = 0x80, 0x80, 0x80
		f.R2, f.G2, f.B2 = 0x80, 0x80, 0x80
		f.R3, f.G3, f.B3 = 0x80, 0x80, 0x80
		if quad {
			f.R4, f.G4, f.B4 = 0x80, 0x80, 0x80
		}

		if err := r.Err(); err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	return faces, nil
}

func tryReadFacesV2(r *breader.Reader, n int) ([]Face, error) {
	faces := make([]Face, 0, n)
	for i := 0; i < n; i++ {
		peek := r.Raw(11, 1)
		if err := r.Err(); err != nil {
			return nil, err
		}
		typeByte := peek[0]

		var f Face
		var err error
		switch typeByte {
		case 0x34:
			f, err = readTriColored(r)
		case 0x3C:
			f, err = readQuadColored(r)
		default:
			err = fmt.Errorf("%w: 0x%02x at face %d", ErrUnknownFaceType, typeByte, i)
		}
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	return faces, r.Err()
}

func readTriColored(r *breader.Reader) (Face, error) {
	var f Face
	f.Vertex1 = int(r.U16() / 4)
	f.Vertex2 = int(r.U16() / 4)
	f.Vertex3 = int(r.U16() / 4)

	f.U1 = r.U8()
	f.V1 = r.U8()

	f.R1 = r.U8()
	f.G1 = r.U8()
	f.B1 = r.U8()
	r.Constant([]byte{0x34})

	f.R2 = r.U8()
	f.G2 = r.U8()
	f.B2 = r.U8()
	r.U8() // size

	f.R3 = r.U8()
	f.G3 = r.U8()
	f.B3 = r.U8()
	f.Info = r.U8()

	f.U2 = r.U8()
	f.V2 = r.U8()
	f.U3 = r.U8()
	f.V3 = r.U8()

	if err := r.Err(); err != nil {
		return Face{}, err
	}
	return f, nil
}

func readQuadColored(r *breader.Reader) (Face, error) {
	var f Face
	f.Quad = true

	f.Vertex1 = int(r.U16() / 4)
	f.Vertex2 = int(r.U16() / 4)
	f.Vertex3 = int(r.U16() / 4)
	f.Vertex4 = int(r.U16() / 4)

	f.R1 = r.U8()
	f.G1 = r.U8()
	f.B1 = r.U8()
	r.Constant([]byte{0x3C})

	f.R2 = r.U8()
	f.G2 = r.U8()
	f.B2 = r.U8()
	r.U8() // size

	f.R3 = r.U8()
	f.G3 = r.U8()
	f.B3 = r.U8()
	f.Info = r.U8()

	f.R4 = r.U8()
	f.G4 = r.U8()
	f.B4 = r.U8()
	r.Skip(1)

	f.U1 = r.U8()
	f.V1 = r.U8()
	f.U2 = r.U8()
	f.V2 = r.U8()
	f.U3 = r.U8()
	f.V3 = r.U8()
	f.U4 = r.U8()
	f.V4 = r.U8()

	if err := r.Err(); err != nil {
		return Face{}, err
	}
	return f, nil
}
