// Package tim decodes PS1 "TIM" texture tiles: a small header describing
// where the tile lands in VRAM, followed by raw BGR555 pixel data. A TIM
// tile does double duty as either a texture (indexed 4-bit pixels) or a
// CLUT (16 BGR555 colors used to resolve those indices), depending on
// where in VRAM the texture bank decides to read it back from.
package tim

import (
	"encoding/binary"
	"image"
	"image/color"

	"vagrant-scene/internal/breader"
	"vagrant-scene/internal/vram"
)

// Tile is one decoded TIM entry.
type Tile struct {
	BitDepth uint32
	FX, FY   int
	Width    int // in 16-bit words
	Height   int

	// Payload holds the raw BGR555 (or indexed) bytes, exactly as they
	// sit in the file, independent of the reader cursor that produced
	// them.
	Payload []byte
}

// Read decodes one TIM tile starting at the reader's current position.
func Read(r *breader.Reader) (*Tile, error) {
	r.Skip(4) // magic 0x10000000
	bitDepth := r.U32()
	imgLen := r.U32()
	dataLen := int(imgLen) - 12

	fx := r.U16()
	fy := r.U16()
	width := r.U16()
	height := r.U16()

	payload := r.Buffer(dataLen)
	if err := r.Err(); err != nil {
		return nil, err
	}

	return &Tile{
		BitDepth: bitDepth,
		FX:       int(fx),
		FY:       int(fy),
		Width:    int(width),
		Height:   int(height),
		Payload:  payload,
	}, nil
}

// ParseColor converts a BGR555 pixel word to RGBA, 0 being fully
// transparent black (the PS1's designated "no pixel" sentinel).
func ParseColor(w int16) color.NRGBA {
	c := uint16(w)
	if c == 0 {
		return color.NRGBA{}
	}
	r := uint8(c&0x1F) * 8
	g := uint8((c>>5)&0x1F) * 8
	b := uint8((c>>10)&0x1F) * 8
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// CopyToFramebuffer writes every BGR555 texel in the payload into the
// shared VRAM page at (FX, FY).
func (t *Tile) CopyToFramebuffer(fb *vram.Framebuffer) {
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			off := (y*t.Width + x) * 2
			if off+2 > len(t.Payload) {
				return
			}
			w := int16(binary.LittleEndian.Uint16(t.Payload[off : off+2]))
			c := ParseColor(w)
			fb.SetPixel(t.FX+x, t.FY+y, c.R, c.G, c.B, c.A)
		}
	}
}

// BuildCLUT reads 16 consecutive BGR555 colors starting at VRAM
// coordinate (x, y), which must fall within this tile, and returns them
// as a 16×RGBA (64-byte) lookup table.
func (t *Tile) BuildCLUT(x, y int) [64]byte {
	ox := x - t.FX
	oy := y - t.FY
	base := (oy*t.Width + ox) * 2

	var out [64]byte
	for i := 0; i < 16; i++ {
		off := base + i*2
		var w int16
		if off >= 0 && off+2 <= len(t.Payload) {
			w = int16(binary.LittleEndian.Uint16(t.Payload[off : off+2]))
		}
		c := ParseColor(w)
		out[i*4+0] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = c.A
	}
	return out
}

// Build expands this tile's 4-bit indexed payload into an RGBA raster
// using clut, two pixels per payload byte, low nibble first.
func (t *Tile) Build(clut [64]byte) *image.NRGBA {
	outWidth := t.Width * 4
	img := image.NewNRGBA(image.Rect(0, 0, outWidth, t.Height))

	x, y := 0, 0
	rowWidth := outWidth
	for _, b := range t.Payload {
		lo := (b & 0x0F) * 4
		hi := ((b & 0xF0) >> 4) * 4

		setPixel(img, x, y, clut[lo:lo+4])
		x++
		if x >= rowWidth {
			x = 0
			y++
		}

		setPixel(img, x, y, clut[hi:hi+4])
		x++
		if x >= rowWidth {
			x = 0
			y++
		}
	}

	return img
}

func setPixel(img *image.NRGBA, x, y int, c []byte) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.SetNRGBA(x, y, color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
}
