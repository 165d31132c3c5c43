// Package rig decodes WEP (weapon) and SHP (character) rigged mesh
// files: a bone hierarchy, vertex groups bound to those bones, raw
// vertices, faces in one of two on-disk encodings, and an embedded
// indexed texture map with several alternate palettes.
package rig

import (
	"fmt"
	"image"

	"vagrant-scene/internal/breader"
	"vagrant-scene/internal/geom"
	"vagrant-scene/internal/vmath"
)

// RiggedModel is a fully decoded WEP or SHP file.
type RiggedModel struct {
	Bones      []Bone
	Groups     []Group
	Vertices   []Vertex
	Faces      []Face
	TextureMap *TextureMap

	// Version is 1 for the plain face layout, 2 for the vertex-colored
	// fallback layout some SHP/WEP files use instead.
	Version int
}

// DecodeWEP decodes a weapon model: a small fixed header, then the
// shared bone/group/vertex/face/texture sections, with a single
// seven-palette WEP-style texture map.
func DecodeWEP(data []byte) (*RiggedModel, error) {
	r := breader.New(data)

	numBones, numGroups, numAllPolygons, err := readWEPHeader(r)
	if err != nil {
		return nil, err
	}

	return decodeBody(r, numBones, numGroups, numAllPolygons, 7, true)
}

// DecodeSHP decodes a character model: a much larger header carrying
// overlay/shadow/menu metadata irrelevant to geometry, an interior
// AKAO/"magic" section skipped by length, and a two-palette, non-WEP
// style texture map.
func DecodeSHP(data []byte) (*RiggedModel, error) {
	r := breader.New(data)

	numBones, numGroups, numAllPolygons, magicPtr, akaoPtr, err := readSHPHeader(r)
	if err != nil {
		return nil, err
	}

	bones, err := readBones(r, numBones)
	if err != nil {
		return nil, err
	}
	groups, err := readGroups(r, numGroups, bones)
	if err != nil {
		return nil, err
	}
	vertices, err := readVertices(r, groups)
	if err != nil {
		return nil, err
	}
	faces, version, err := readFaces(r, numAllPolygons)
	if err != nil {
		return nil, err
	}

	r.Skip(int(magicPtr - akaoPtr)) // AKAO section
	r.Skip(4)                       // magic section header
	length := r.U32()
	r.Skip(int(length))
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shp: interior sections: %w", err)
	}

	tmap, err := readTextureMap(r, 2, false)
	if err != nil {
		return nil, err
	}

	return &RiggedModel{
		Bones: bones, Groups: groups, Vertices: vertices, Faces: faces,
		TextureMap: tmap, Version: version,
	}, nil
}

func decodeBody(r *breader.Reader, numBones, numGroups, numAllPolygons, numPalettes int, wep bool) (*RiggedModel, error) {
	bones, err := readBones(r, numBones)
	if err != nil {
		return nil, err
	}
	groups, err := readGroups(r, numGroups, bones)
	if err != nil {
		return nil, err
	}
	vertices, err := readVertices(r, groups)
	if err != nil {
		return nil, err
	}
	faces, version, err := readFaces(r, numAllPolygons)
	if err != nil {
		return nil, err
	}
	tmap, err := readTextureMap(r, numPalettes, wep)
	if err != nil {
		return nil, err
	}

	return &RiggedModel{
		Bones: bones, Groups: groups, Vertices: vertices, Faces: faces,
		TextureMap: tmap, Version: version,
	}, nil
}

func readWEPHeader(r *breader.Reader) (numBones, numGroups, numAllPolygons int, err error) {
	r.Constant([]byte{0x48, 0x30, 0x31, 0x00}) // "H01\0"

	nb := r.U8()
	ng := r.U8()
	numTri := r.U16()
	numQuad := r.U16()
	numPoly := r.U16()
	if err = r.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("wep: header: %w", err)
	}

	r.U32() // texture_ptr1, unused: forward-only cursor
	r.Padding(0x30, 0)
	r.U32() // texture_ptr, unused
	r.U32() // group_ptr, unused
	r.U32() // vertex_ptr, unused
	r.U32() // face_ptr, unused
	if err = r.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("wep: header: %w", err)
	}

	return int(nb), int(ng), int(numTri) + int(numQuad) + int(numPoly), nil
}

func readSHPHeader(r *breader.Reader) (numBones, numGroups, numAllPolygons int, magicPtr, akaoPtr uint32, err error) {
	r.Constant([]byte{0x48, 0x30, 0x31, 0x00}) // "H01\0"

	nb := r.U8()
	ng := r.U8()
	numTri := r.U16()
	numQuad := r.U16()
	numPoly := r.U16()
	if err = r.Err(); err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("shp: header: %w", err)
	}

	for i := 0; i < 8; i++ {
		r.U8() // overlay x
		r.U8() // overlay y
		r.U8() // width
		r.U8() // height
	}

	r.Skip(0x24)
	r.Skip(0x06)

	r.S16() // menu position y
	r.Skip(0x0C)

	r.S16() // shadow radius
	r.S16() // shadow size increase
	r.S16() // shadow size decrease
	r.Skip(4)

	r.S16() // menu scale
	r.Skip(2)
	r.S16() // target sphere position y
	r.Skip(8)

	for i := 0; i < 0x0C; i++ {
		r.U32() // anim LBA
	}
	for i := 0; i < 0x0C; i++ {
		r.U16() // chain id
	}
	for i := 0; i < 4; i++ {
		r.U32() // special LBA
	}
	r.Skip(0x20)

	magicPtr = r.U32()
	r.Skip(0x30)
	akaoPtr = r.U32()
	r.U32() // group_ptr, unused: forward-only cursor
	r.U32() // vertex_ptr, unused
	r.U32() // face_ptr, unused
	if err = r.Err(); err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("shp: header: %w", err)
	}

	return int(nb), int(ng), int(numTri) + int(numQuad) + int(numPoly), magicPtr, akaoPtr, nil
}

// BuildMaterial resolves one of the texture map's palettes to an RGBA
// raster, mirroring the first-palette convention the viewer tooling
// uses when no explicit variant is requested.
func (m *RiggedModel) BuildMaterial(paletteIndex int) *image.NRGBA {
	if m.TextureMap == nil {
		return nil
	}
	return m.TextureMap.Build(paletteIndex)
}

// BuildGeometry builds the flattened draw-ready geometry for this model.
func (m *RiggedModel) BuildGeometry() geom.SubMesh {
	return buildGeometry(m)
}

// BuildSkeleton constructs the animatable bone hierarchy for this model.
func (m *RiggedModel) BuildSkeleton() *vmath.Skeleton {
	return buildSkeleton(m)
}
