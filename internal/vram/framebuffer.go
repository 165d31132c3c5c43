// Package vram simulates the PS1's 1024×512 video memory as a single
// RGBA raster. Texture banks copy decoded TIM tiles into it; CLUT tiles
// are read back out of it by coordinate rather than tracked separately,
// matching how the PS1 itself has no notion of "palette" distinct from
// "pixels somewhere in VRAM".
package vram

import (
	"image"
	"image/color"
)

const (
	Width  = 1024
	Height = 512
)

// Framebuffer wraps an *image.NRGBA sized to the full VRAM page. The
// teacher's raster.FrameBuffer also carries a depth buffer for
// rasterization; that concern doesn't exist here; this is video memory,
// not a render target.
type Framebuffer struct {
	img *image.NRGBA
}

func New() *Framebuffer {
	return &Framebuffer{img: image.NewNRGBA(image.Rect(0, 0, Width, Height))}
}

// Image returns the underlying raster.
func (f *Framebuffer) Image() *image.NRGBA {
	return f.img
}

// SetPixel writes a color at (x, y), ignoring writes outside the page.
func (f *Framebuffer) SetPixel(x, y int, r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return
	}
	f.img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
}

// Pixel reads back the color at (x, y).
func (f *Framebuffer) Pixel(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return 0, 0, 0, 0
	}
	c := f.img.NRGBAAt(x, y)
	return c.R, c.G, c.B, c.A
}

// MarkCLUT stamps a single debug pixel at (x, y), used by inspection
// tooling to visualize where a CLUT was read back from. This mirrors
// the original tooling's mark_clut exactly: it touches one pixel's
// worth of bytes at the CLUT's computed VRAM offset, not the full
// 16-color strip.
func (f *Framebuffer) MarkCLUT(x, y int) {
	f.SetPixel(x, y, 255, 0, 0, 255)
}
