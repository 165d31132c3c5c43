package rig

import (
	"encoding/binary"
	"testing"
)

func u16le(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func u32le(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }
func s16le(v int16) []byte  { return u16le(uint16(v)) }

func buildWEPHeader(nb, ng uint8, numTri, numQuad, numPoly uint16) []byte {
	var b []byte
	b = append(b, 'H', '0', '1', 0x00)
	b = append(b, nb, ng)
	b = append(b, u16le(numTri)...)
	b = append(b, u16le(numQuad)...)
	b = append(b, u16le(numPoly)...)
	b = append(b, u32le(0)...)             // texture_ptr1
	b = append(b, make([]byte, 0x30)...)   // padding
	b = append(b, u32le(0)...)             // texture_ptr
	b = append(b, u32le(0)...)             // group_ptr
	b = append(b, u32le(0)...)             // vertex_ptr
	b = append(b, u32le(0)...)             // face_ptr
	return b
}

func buildBone(length int32, parentID, groupID int8) []byte {
	var b []byte
	b = append(b, u32le(uint32(length))...)
	b = append(b, byte(parentID), byte(groupID), 0, 0, 0) // mount, bodypart, mode
	b = append(b, 0, 0, 0) // unknowns
	b = append(b, make([]byte, 4)...) // padding
	return b
}

func buildGroup(boneID int16, lastVertex uint16) []byte {
	var b []byte
	b = append(b, s16le(boneID)...)
	b = append(b, u16le(lastVertex)...)
	return b
}

func buildVertex(x, y, z int16) []byte {
	var b []byte
	b = append(b, s16le(x)...)
	b = append(b, s16le(y)...)
	b = append(b, s16le(z)...)
	b = append(b, 0, 0) // padding
	return b
}

func buildTriFaceV1(v1, v2, v3 uint16) []byte {
	var b []byte
	b = append(b, 0x24) // type: triangle
	b = append(b, 0)    // size, unused
	b = append(b, 0)    // info
	b = append(b, 0)    // skip
	b = append(b, u16le(v1*4)...)
	b = append(b, u16le(v2*4)...)
	b = append(b, u16le(v3*4)...)
	b = append(b, 1, 2, 3, 4, 5, 6) // u1 v1 u2 v2 u3 v3
	return b
}

func buildTextureMap(cpp uint8, numPalettes int, widthWords, heightWords uint8) []byte {
	var b []byte
	b = append(b, u32le(0)...) // size, unused
	b = append(b, 1)           // version 1
	b = append(b, widthWords, heightWords, cpp)

	handleColors := int(cpp) / 3
	perPaletteColors := handleColors * 2

	for i := 0; i < handleColors; i++ {
		b = append(b, u16le(0x001F)...) // pure red
	}
	for p := 0; p < numPalettes; p++ {
		for i := 0; i < perPaletteColors; i++ {
			b = append(b, u16le(0x03E0)...) // pure green
		}
	}

	width := int(widthWords) * 2
	height := int(heightWords) * 2
	for i := 0; i < width*height; i++ {
		b = append(b, 0) // every pixel indexes the handle color
	}
	return b
}

func buildWEP() []byte {
	var data []byte
	data = append(data, buildWEPHeader(1, 1, 1, 0, 0)...)
	data = append(data, buildBone(10, -1, 0)...)
	data = append(data, buildGroup(0, 2)...)
	data = append(data, buildVertex(0, 0, 0)...)
	data = append(data, buildVertex(5, 0, 0)...)
	data = append(data, buildTriFaceV1(0, 1, 0)...)
	data = append(data, buildTextureMap(3, 7, 1, 1)...)
	return data
}

// buildSHPHeader lays out readSHPHeader's field sequence exactly: the
// common nb/ng/poly-count prefix, 8 overlay tuples, a run of
// shadow/menu scalars and padding, 12 anim LBA + 12 chain-id tables, 4
// special LBAs, then magicPtr/akaoPtr/group_ptr/vertex_ptr/face_ptr.
// magicPtr and akaoPtr are set equal so the post-faces AKAO skip in
// DecodeSHP is zero-length.
func buildSHPHeader(nb, ng uint8, numTri, numQuad, numPoly uint16) []byte {
	var b []byte
	b = append(b, 'H', '0', '1', 0x00)
	b = append(b, nb, ng)
	b = append(b, u16le(numTri)...)
	b = append(b, u16le(numQuad)...)
	b = append(b, u16le(numPoly)...)

	b = append(b, make([]byte, 8*4)...) // overlay tuples
	b = append(b, make([]byte, 0x24)...)
	b = append(b, make([]byte, 0x06)...)
	b = append(b, s16le(0)...) // menu position y
	b = append(b, make([]byte, 0x0C)...)
	b = append(b, s16le(0)...) // shadow radius
	b = append(b, s16le(0)...) // shadow size increase
	b = append(b, s16le(0)...) // shadow size decrease
	b = append(b, make([]byte, 4)...)
	b = append(b, s16le(0)...) // menu scale
	b = append(b, make([]byte, 2)...)
	b = append(b, s16le(0)...) // target sphere position y
	b = append(b, make([]byte, 8)...)

	for i := 0; i < 0x0C; i++ {
		b = append(b, u32le(0)...) // anim LBA
	}
	for i := 0; i < 0x0C; i++ {
		b = append(b, u16le(0)...) // chain id
	}
	for i := 0; i < 4; i++ {
		b = append(b, u32le(0)...) // special LBA
	}
	b = append(b, make([]byte, 0x20)...)

	b = append(b, u32le(500)...) // magicPtr
	b = append(b, make([]byte, 0x30)...)
	b = append(b, u32le(500)...) // akaoPtr == magicPtr: zero-length AKAO skip
	b = append(b, u32le(0)...)   // group_ptr
	b = append(b, u32le(0)...)   // vertex_ptr
	b = append(b, u32le(0)...)   // face_ptr
	return b
}

// buildTextureMapSHP builds a non-WEP texture map: each palette reads
// cpp colors directly, with no handle-palette concatenation.
func buildTextureMapSHP(cpp uint8, numPalettes int, widthWords, heightWords uint8) []byte {
	var b []byte
	b = append(b, u32le(0)...) // size, unused
	b = append(b, 1)           // version 1
	b = append(b, widthWords, heightWords, cpp)

	for p := 0; p < numPalettes; p++ {
		for i := 0; i < int(cpp); i++ {
			b = append(b, u16le(0x001F)...) // pure red
		}
	}

	width := int(widthWords) * 2
	height := int(heightWords) * 2
	for i := 0; i < width*height; i++ {
		b = append(b, 0)
	}
	return b
}

func buildSHP() []byte {
	var data []byte
	data = append(data, buildSHPHeader(1, 1, 1, 0, 0)...)
	data = append(data, buildBone(10, -1, 0)...)
	data = append(data, buildGroup(0, 2)...)
	data = append(data, buildVertex(0, 0, 0)...)
	data = append(data, buildVertex(5, 0, 0)...)
	data = append(data, buildTriFaceV1(0, 1, 0)...)
	data = append(data, make([]byte, 4)...) // magic section header
	data = append(data, u32le(0)...)        // magic section length: nothing to skip
	data = append(data, buildTextureMapSHP(3, 2, 1, 1)...)
	return data
}

func TestDecodeSHP(t *testing.T) {
	m, err := DecodeSHP(buildSHP())
	if err != nil {
		t.Fatalf("DecodeSHP: %v", err)
	}

	if len(m.Bones) != 1 || len(m.Groups) != 1 || len(m.Vertices) != 2 || len(m.Faces) != 1 {
		t.Fatalf("decoded counts = bones=%d groups=%d vertices=%d faces=%d, want 1/1/2/1",
			len(m.Bones), len(m.Groups), len(m.Vertices), len(m.Faces))
	}
	if m.Version != 1 {
		t.Errorf("Version = %d, want 1 (plain v1 face layout)", m.Version)
	}
	if len(m.TextureMap.Palettes) != 2 {
		t.Fatalf("Palettes = %d, want 2", len(m.TextureMap.Palettes))
	}
	if len(m.TextureMap.Palettes[0]) != 3 {
		t.Errorf("palette 0 length = %d, want 3 (no WEP handle concatenation)", len(m.TextureMap.Palettes[0]))
	}

	sk := m.BuildSkeleton()
	if sk.Bones[0].Parent != -1 {
		t.Errorf("root bone Parent = %d, want -1", sk.Bones[0].Parent)
	}

	sm := m.BuildGeometry()
	if len(sm.Positions) != 9 || len(sm.Indices) != 3 {
		t.Fatalf("Positions/Indices = %d/%d, want 9/3", len(sm.Positions), len(sm.Indices))
	}
}

func TestDecodeWEP(t *testing.T) {
	m, err := DecodeWEP(buildWEP())
	if err != nil {
		t.Fatalf("DecodeWEP: %v", err)
	}

	if len(m.Bones) != 1 || len(m.Groups) != 1 || len(m.Vertices) != 2 || len(m.Faces) != 1 {
		t.Fatalf("decoded counts = bones=%d groups=%d vertices=%d faces=%d, want 1/1/2/1",
			len(m.Bones), len(m.Groups), len(m.Vertices), len(m.Faces))
	}
	if m.Version != 1 {
		t.Errorf("Version = %d, want 1 (plain v1 face layout)", m.Version)
	}
	if len(m.TextureMap.Palettes) != 7 {
		t.Fatalf("Palettes = %d, want 7", len(m.TextureMap.Palettes))
	}
}

func TestWEPBuildSkeletonRootHasNoParent(t *testing.T) {
	m, err := DecodeWEP(buildWEP())
	if err != nil {
		t.Fatalf("DecodeWEP: %v", err)
	}

	sk := m.BuildSkeleton()
	if sk.Bones[0].Parent != -1 {
		t.Errorf("root bone Parent = %d, want -1", sk.Bones[0].Parent)
	}
}

func TestWEPBuildGeometry(t *testing.T) {
	m, err := DecodeWEP(buildWEP())
	if err != nil {
		t.Fatalf("DecodeWEP: %v", err)
	}

	sm := m.BuildGeometry()
	if len(sm.Positions) != 9 {
		t.Fatalf("Positions len = %d, want 9 (3 verts x 3 floats)", len(sm.Positions))
	}
	if len(sm.Indices) != 3 {
		t.Fatalf("Indices len = %d, want 3", len(sm.Indices))
	}
	if len(sm.SkinWeights) != 12 || len(sm.SkinIndices) != 12 {
		t.Fatalf("SkinWeights/SkinIndices len = %d/%d, want 12/12", len(sm.SkinWeights), len(sm.SkinIndices))
	}
	// A root-bone vertex has no ancestor chain: boneOffsetX contributes 0.
	if sm.Positions[0] != 0 {
		t.Errorf("vertex0 X = %v, want 0 (no ancestor offset)", sm.Positions[0])
	}
}

func TestWEPBuildMaterial(t *testing.T) {
	m, err := DecodeWEP(buildWEP())
	if err != nil {
		t.Fatalf("DecodeWEP: %v", err)
	}

	img := m.BuildMaterial(0)
	if img == nil {
		t.Fatal("BuildMaterial(0) = nil")
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 0xF8 {
		t.Errorf("material pixel red = %d, want 0xF8 (handle color)", r>>8)
	}
}

func TestHasParentRejectsNegativeIndex(t *testing.T) {
	if hasParent(-1, 5) {
		t.Error("hasParent(-1, 5) = true, want false (root sentinel, not wraparound)")
	}
	if !hasParent(2, 5) {
		t.Error("hasParent(2, 5) = false, want true")
	}
	if hasParent(5, 5) {
		t.Error("hasParent(5, 5) = true, want false (out of range)")
	}
}
