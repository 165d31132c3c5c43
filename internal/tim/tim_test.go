package tim

import (
	"encoding/binary"
	"testing"

	"vagrant-scene/internal/breader"
	"vagrant-scene/internal/vram"
)

func encodeTile(fx, fy, width, height uint16, payload []byte) []byte {
	buf := make([]byte, 4+4+4+8+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], 0x00000010)
	binary.LittleEndian.PutUint32(buf[4:8], 2) // bpp
	binary.LittleEndian.PutUint32(buf[8:12], uint32(12+len(payload)))
	binary.LittleEndian.PutUint16(buf[12:14], fx)
	binary.LittleEndian.PutUint16(buf[14:16], fy)
	binary.LittleEndian.PutUint16(buf[16:18], width)
	binary.LittleEndian.PutUint16(buf[18:20], height)
	copy(buf[20:], payload)
	return buf
}

func TestParseColor(t *testing.T) {
	if c := ParseColor(0); c.A != 0 {
		t.Errorf("ParseColor(0) = %+v, want fully transparent", c)
	}

	// 5 bits each of r, g, b packed low-to-high, scaled by 8.
	w := int16(0x1F | (0x00 << 5) | (0x00 << 10))
	c := ParseColor(w)
	if c.R != 0xF8 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("ParseColor(%#x) = %+v, want R=0xF8 G=0 B=0 A=255", w, c)
	}
}

func TestReadTile(t *testing.T) {
	payload := []byte{0x34, 0x12, 0x78, 0x56}
	data := encodeTile(64, 0, 1, 2, payload)

	r := breader.New(data)
	tile, err := Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tile.FX != 64 || tile.FY != 0 || tile.Width != 1 || tile.Height != 2 {
		t.Errorf("tile header = %+v, want FX=64 FY=0 Width=1 Height=2", tile)
	}
	if len(tile.Payload) != len(payload) {
		t.Fatalf("Payload length = %d, want %d", len(tile.Payload), len(payload))
	}
}

func TestCopyToFramebuffer(t *testing.T) {
	payload := make([]byte, 2) // one BGR555 word
	binary.LittleEndian.PutUint16(payload, 0x1F) // pure red
	data := encodeTile(10, 20, 1, 1, payload)

	r := breader.New(data)
	tile, err := Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	fb := vram.New()
	tile.CopyToFramebuffer(fb)

	red, green, blue, alpha := fb.Pixel(10, 20)
	if red != 0xF8 || green != 0 || blue != 0 || alpha != 255 {
		t.Errorf("Pixel(10,20) = (%d,%d,%d,%d), want (248,0,0,255)", red, green, blue, alpha)
	}
}

func TestBuildExpandsFourBitIndices(t *testing.T) {
	// Payload byte 0x21: low nibble 1, high nibble 2 -> two pixel indices.
	data := encodeTile(0, 0, 1, 1, []byte{0x21})
	r := breader.New(data)
	tile, err := Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var clut [64]byte
	clut[1*4+0], clut[1*4+3] = 10, 255 // color 1 = (10,0,0,255)
	clut[2*4+0], clut[2*4+3] = 20, 255 // color 2 = (20,0,0,255)

	img := tile.Build(clut)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 1 {
		t.Fatalf("Build bounds = %v, want 4x1", img.Bounds())
	}

	// low nibble (index 1) comes first.
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 10 {
		t.Errorf("pixel 0 red = %d, want 10", r>>8)
	}
	if r, _, _, _ := img.At(1, 0).RGBA(); r>>8 != 20 {
		t.Errorf("pixel 1 red = %d, want 20", r>>8)
	}
}
