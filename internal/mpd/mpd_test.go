package mpd

import (
	"encoding/binary"
	"testing"
)

func u16le(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func u32le(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

func buildTriFace(textureID int16, clutID uint16) []byte {
	var b []byte
	b = append(b, u16le(uint16(int16(10)))...) // p1x
	b = append(b, u16le(0)...)                 // p1y
	b = append(b, u16le(0)...)                 // p1z
	b = append(b, byte(1), byte(0), byte(0))   // p2 delta
	b = append(b, byte(0), byte(1), byte(0))   // p3 delta
	b = append(b, 0xFF, 0, 0)                  // rgb1
	b = append(b, 0)                           // type byte, unused
	b = append(b, 0, 0xFF, 0)                  // rgb2
	b = append(b, 0)                           // u1
	b = append(b, 0, 0, 0xFF)                  // rgb3
	b = append(b, 0)                           // v1
	b = append(b, 0)                           // u2
	b = append(b, 0)                           // v2
	b = append(b, u16le(clutID)...)
	b = append(b, 0) // u3
	b = append(b, 0) // v3
	b = append(b, u16le(uint16(textureID))...)
	return b
}

func buildMPD(tri []byte) []byte {
	var data []byte

	// 6 (ptr,len) header pairs.
	for i := 0; i < 6; i++ {
		data = append(data, u32le(0)...)
		data = append(data, u32le(0)...)
	}

	// 24 room sub-header lengths, all zero (nothing to skip after geometry).
	for i := 0; i < 24; i++ {
		data = append(data, u32le(0)...)
	}

	// Geometry: one group, no scale bit set (scale=8), one triangle.
	data = append(data, u32le(1)...) // groupCount
	data = append(data, make([]byte, 64)...) // group header
	data = append(data, u32le(1)...) // triCount
	data = append(data, u32le(0)...) // quadCount
	data = append(data, tri...)

	return data
}

func TestDecodeSingleTriangleRoom(t *testing.T) {
	data := buildMPD(buildTriFace(7, 3))

	scene, err := Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(scene.SubMeshes) != 1 {
		t.Fatalf("SubMeshes = %d, want 1", len(scene.SubMeshes))
	}

	sm := scene.SubMeshes[0]
	if sm.TextureID != 7 || sm.ClutID != 3 {
		t.Errorf("TextureID/ClutID = %d/%d, want 7/3", sm.TextureID, sm.ClutID)
	}
	if sm.MaterialKey != "7-3" {
		t.Errorf("MaterialKey = %q, want 7-3", sm.MaterialKey)
	}
	if len(sm.Positions) != 9 {
		t.Fatalf("Positions len = %d, want 9 (3 verts x 3 floats)", len(sm.Positions))
	}
	if len(sm.Indices) != 3 {
		t.Fatalf("Indices len = %d, want 3", len(sm.Indices))
	}

	// p1 = (10,0,0); p2 = p1 + (1,0,0)*scale(8); p3 = p1 + (0,1,0)*8
	if sm.Positions[0] != 10 || sm.Positions[1] != 0 || sm.Positions[2] != 0 {
		t.Errorf("p1 = %v, want (10,0,0)", sm.Positions[0:3])
	}
	if sm.Positions[3] != 18 || sm.Positions[4] != 0 || sm.Positions[5] != 0 {
		t.Errorf("p2 = %v, want (18,0,0)", sm.Positions[3:6])
	}
	if sm.Positions[6] != 10 || sm.Positions[7] != 8 || sm.Positions[8] != 0 {
		t.Errorf("p3 = %v, want (10,8,0)", sm.Positions[6:9])
	}
}

func TestDecodeNoMaterialWithoutBank(t *testing.T) {
	data := buildMPD(buildTriFace(1, 1))
	scene, err := Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if scene.SubMeshes[0].Material != nil {
		t.Errorf("Material = %v, want nil when bank is nil", scene.SubMeshes[0].Material)
	}
}
