package znd

import (
	"encoding/binary"
	"testing"
)

func u16le(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func u32le(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

// buildTIM returns a TIM record as laid out on disk: magic, bpp,
// length, fx/fy/width/height, then payload.
func buildTIM(fx, fy, width, height uint16, payload []byte) []byte {
	var b []byte
	b = append(b, u32le(0x00000010)...)
	b = append(b, u32le(2)...)
	b = append(b, u32le(uint32(12+len(payload)))...)
	b = append(b, u16le(fx)...)
	b = append(b, u16le(fy)...)
	b = append(b, u16le(width)...)
	b = append(b, u16le(height)...)
	b = append(b, payload...)
	return b
}

func buildZND(tims [][]byte) []byte {
	var data []byte
	data = append(data, u32le(0)...)  // mpdPtr
	data = append(data, u32le(0)...)  // mpdLen -> 0 rooms
	data = append(data, u32le(0)...)  // enemyPtr
	data = append(data, u32le(0)...)  // enemyLen -> nothing to skip
	data = append(data, u32le(0)...)  // timPtr
	data = append(data, u32le(0)...)  // timLen
	data = append(data, byte(5))      // wave
	data = append(data, make([]byte, 7)...) // padding

	data = append(data, u32le(0)...)        // timLen2
	data = append(data, make([]byte, 12)...) // skipped
	data = append(data, u32le(uint32(len(tims)))...)

	for _, t := range tims {
		data = append(data, u32le(uint32(len(t)))...) // per-TIM length, unused
		data = append(data, t...)
	}
	return data
}

func TestDecodeBankTextureAndClut(t *testing.T) {
	// Texture tile: five 4-bit indexed pixel bytes (0x21: index 1, then
	// index 2) at VRAM (0,0), tall enough (Height >= 5) that it only gets
	// copied into VRAM once.
	texPayload := []byte{0x21, 0x21, 0x21, 0x21, 0x21}
	texTile := buildTIM(0, 0, 1, 5, texPayload)

	// CLUT tile: 16 BGR555 colors, small (Height < 5) so it's copied
	// twice, landing at VRAM (0, 100).
	clutPayload := make([]byte, 32)
	binary.LittleEndian.PutUint16(clutPayload[1*2:], 0x1F) // color index 1 = pure red
	clutTile := buildTIM(0, 100, 16, 1, clutPayload)

	data := buildZND([][]byte{texTile, clutTile})

	bank, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if bank.Wave != 5 {
		t.Errorf("Wave = %d, want 5", bank.Wave)
	}
	if len(bank.Tims) != 2 {
		t.Fatalf("Tims = %d, want 2", len(bank.Tims))
	}

	// clutID such that x = clutID*16 mod 1024 = 0, y = (clutID*16)/1024 = 100
	// i.e. clutID*16 = 100*1024 => clutID = 6400.
	img := bank.Materials(0, 6400)
	if img == nil {
		t.Fatalf("Materials returned nil")
	}

	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 0xF8 {
		t.Errorf("material pixel 0 red = %d, want 0xF8", r>>8)
	}

	// Cached on second call.
	img2 := bank.Materials(0, 6400)
	if img2 != img {
		t.Errorf("Materials not cached: got different pointer")
	}
}

func TestDecodeBankUnresolvedClutNotCached(t *testing.T) {
	texTile := buildTIM(0, 0, 1, 5, []byte{0x00, 0x00, 0x00, 0x00, 0x00})
	data := buildZND([][]byte{texTile})

	bank, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if img := bank.Materials(0, 1); img != nil {
		t.Errorf("Materials with no CLUT tile = %v, want nil", img)
	}
	if _, ok := bank.materials["0-1"]; ok {
		t.Errorf("unresolved material 0-1 was cached, want no cache entry")
	}
}

func TestDecodeBankMissingTexture(t *testing.T) {
	data := buildZND(nil)
	bank, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img := bank.Materials(0, 0); img != nil {
		t.Errorf("Materials with no TIMs = %v, want nil", img)
	}
}
