// Package geom defines the flat vertex-buffer shape shared by every mesh
// decoder (MPD rooms, WEP/SHP rigged models), so a renderer can consume
// either one without caring which file format produced it.
package geom

import "image"

// SubMesh is one draw call's worth of geometry: all faces sharing a
// single (texture, CLUT) material.
type SubMesh struct {
	TextureID   int
	ClutID      int
	MaterialKey string
	Material    *image.NRGBA

	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	Colors    []float32 // rgb per vertex, normalized 0..1
	UVs       []float32 // st per vertex

	Indices []uint32

	// SkinWeights and SkinIndices are 4 floats per vertex each (nil for
	// unskinned geometry such as MPD room meshes).
	SkinWeights []float32
	SkinIndices []float32
}
