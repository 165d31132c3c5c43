package rig

import (
	"fmt"
	"image"
	"image/color"

	"vagrant-scene/internal/breader"
	"vagrant-scene/internal/tim"
)

// TextureMap is a rigged model's embedded indexed texture: one shared
// index grid plus a set of alternate palettes (WEP's "handle" palette
// concatenation lets a weapon's grip stay a fixed color across its
// material variants).
type TextureMap struct {
	Version         uint8
	Width           int
	Height          int
	ColorsPerPalette int

	Palettes [][]color.NRGBA
	indices  []uint8 // row-major, len == Width*Height
}

// EffectiveWidth returns the on-screen pixel width, doubled for version
// 16 (4-bit packed) texture maps.
func (tmap *TextureMap) EffectiveWidth() int {
	if tmap.Version == 16 {
		return tmap.Width * 2
	}
	return tmap.Width
}

func readPalette(r *breader.Reader, n int) []color.NRGBA {
	colors := make([]color.NRGBA, n)
	for i := 0; i < n; i++ {
		colors[i] = tim.ParseColor(int16(r.U16()))
	}
	return colors
}

// readTextureMap decodes a rigged model's texture map. wep selects the
// WEP "handle" palette concatenation scheme; SHP reads each palette's
// colors directly.
func readTextureMap(r *breader.Reader, numPalettes int, wep bool) (*TextureMap, error) {
	r.U32() // size, unused
	version := r.U8()
	width := int(r.U8()) * 2
	height := int(r.U8()) * 2
	cpp := int(r.U8())
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("rig: texture map header: %w", err)
	}

	tmap := &TextureMap{
		Version:          version,
		Width:            width,
		Height:           height,
		ColorsPerPalette: cpp,
	}

	var handle []color.NRGBA
	if wep {
		handle = readPalette(r, cpp/3)
	}

	for i := 0; i < numPalettes; i++ {
		var palette []color.NRGBA
		if wep {
			palette = append(append([]color.NRGBA{}, handle...), readPalette(r, (cpp/3)*2)...)
		} else {
			palette = readPalette(r, cpp)
		}
		tmap.Palettes = append(tmap.Palettes, palette)
	}

	indices := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			indices[y*width+x] = r.U8()
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("rig: texture map pixels: %w", err)
	}
	tmap.indices = indices

	return tmap, nil
}

// Build expands the texture map against one of its palettes into an
// RGBA raster.
func (tmap *TextureMap) Build(paletteIndex int) *image.NRGBA {
	if paletteIndex < 0 || paletteIndex >= len(tmap.Palettes) {
		return nil
	}
	palette := tmap.Palettes[paletteIndex]

	switch tmap.Version {
	case 16:
		return tmap.buildV16(palette)
	default:
		return tmap.buildV1(palette)
	}
}

func (tmap *TextureMap) buildV1(palette []color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tmap.Width, tmap.Height))
	for y := 0; y < tmap.Height; y++ {
		for x := 0; x < tmap.Width; x++ {
			c := tmap.indices[y*tmap.Width+x]
			var out color.NRGBA
			if int(c) < tmap.ColorsPerPalette && int(c) < len(palette) {
				out = palette[c]
			}
			img.SetNRGBA(x, y, out)
		}
	}
	return img
}

func (tmap *TextureMap) buildV16(palette []color.NRGBA) *image.NRGBA {
	outWidth := tmap.Width * 2
	img := image.NewNRGBA(image.Rect(0, 0, outWidth, tmap.Height))

	for y := 0; y < tmap.Height; y++ {
		for x := 0; x < tmap.Width; x++ {
			c := tmap.indices[y*tmap.Width+x]
			lo := c & 0x0F
			hi := c >> 4

			var loColor, hiColor color.NRGBA
			if int(lo) < tmap.ColorsPerPalette && int(lo) < len(palette) {
				loColor = palette[lo]
			}
			if int(hi) < tmap.ColorsPerPalette && int(hi) < len(palette) {
				hiColor = palette[hi]
			}

			img.SetNRGBA(x*2, y, loColor)
			img.SetNRGBA(x*2+1, y, hiColor)
		}
	}
	return img
}
