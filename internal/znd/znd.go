// Package znd decodes ZND texture bank files: a small header, an index
// of MPD rooms carried inside the same bank, a skipped enemy table, and
// a run of TIM tiles that together populate a simulated 1024×512 VRAM
// page. Bank.Materials resolves a (texture, CLUT) pair against that page
// into a ready-to-use RGBA raster, caching by key.
package znd

import (
	"fmt"
	"sync"

	"image"

	"vagrant-scene/internal/breader"
	"vagrant-scene/internal/tim"
	"vagrant-scene/internal/vram"
)

// RoomIndexEntry is one room's location inside the ZND's own data, as
// recorded in the MPD section of the header.
type RoomIndexEntry struct {
	LBA  uint32
	Size uint32
}

// Bank is a fully decoded ZND texture bank.
type Bank struct {
	Wave  uint8
	Rooms []RoomIndexEntry

	FB   *vram.Framebuffer
	Tims []*tim.Tile

	mu        sync.RWMutex
	materials map[string]*image.NRGBA
}

// Decode parses a ZND file in full.
func Decode(data []byte) (*Bank, error) {
	r := breader.New(data)

	_ = r.U32() // mpdPtr, unused: room data is read from mpdLen-derived index below
	mpdLen := r.U32()
	mpdNum := int(mpdLen / 8)

	_ = r.U32() // enemyPtr, unused
	enemyLen := r.U32()

	_ = r.U32() // timPtr, unused: TIMs are read forward-only from the cursor
	_ = r.U32() // timLen, unused

	wave := r.U8()
	r.Padding(7, 0)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("znd: header: %w", err)
	}

	rooms := make([]RoomIndexEntry, 0, mpdNum)
	for i := 0; i < mpdNum; i++ {
		lba := r.U32()
		size := r.U32()
		rooms = append(rooms, RoomIndexEntry{LBA: lba, Size: size})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("znd: room index: %w", err)
	}

	r.Skip(int(enemyLen))
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("znd: enemy section: %w", err)
	}

	bank := &Bank{
		Wave:      wave,
		Rooms:     rooms,
		FB:        vram.New(),
		materials: make(map[string]*image.NRGBA),
	}

	if err := bank.decodeTims(r); err != nil {
		return nil, err
	}

	return bank, nil
}

func (b *Bank) decodeTims(r *breader.Reader) error {
	_ = r.U32() // timLen2, unused
	r.Skip(12)
	timCount := int(r.U32())
	if err := r.Err(); err != nil {
		return fmt.Errorf("znd: tim header: %w", err)
	}

	for i := 0; i < timCount; i++ {
		r.U32() // per-TIM length, unused: TIM.Read derives its own extent

		t, err := tim.Read(r)
		if err != nil {
			return fmt.Errorf("znd: tim %d: %w", i, err)
		}

		// Small TIMs sometimes hold only a CLUT and are copied into VRAM
		// twice, once speculatively and once unconditionally; larger
		// ones (the texture payload itself) only need the one copy.
		if t.Height < 5 {
			t.CopyToFramebuffer(b.FB)
		}
		t.CopyToFramebuffer(b.FB)

		b.Tims = append(b.Tims, t)
	}
	return nil
}

// mod implements Python's floored modulo, which differs from Go's %
// (truncated toward zero) when the dividend is negative.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func (b *Bank) getTile(textureID int) *tim.Tile {
	x := mod(textureID*64, vram.Width)
	for _, t := range b.Tims {
		if t.FX == x {
			return t
		}
	}
	return nil
}

// Materials resolves a (textureID, clutID) pair into an RGBA raster,
// returning nil if the texture tile or its CLUT can't be located in
// VRAM. Results are cached; a nil result (unresolved CLUT) is not
// cached, since a later call might find the CLUT after more of the bank
// has been processed.
func (b *Bank) Materials(textureID, clutID int) *image.NRGBA {
	key := fmt.Sprintf("%d-%d", textureID, clutID)

	b.mu.RLock()
	if img, ok := b.materials[key]; ok {
		b.mu.RUnlock()
		return img
	}
	b.mu.RUnlock()

	texTile := b.getTile(textureID)
	if texTile == nil {
		return nil
	}

	x := mod(clutID*16, vram.Width)
	y := (clutID * 16) / vram.Width

	b.mu.Lock()
	b.FB.MarkCLUT(x, y)
	b.mu.Unlock()

	var clutTile *tim.Tile
	for _, t := range b.Tims {
		if x >= t.FX && x < t.FX+t.Width && y >= t.FY && y < t.FY+t.Height {
			clutTile = t
			break
		}
	}
	if clutTile == nil {
		return nil
	}

	clut := clutTile.BuildCLUT(x, y)
	img := texTile.Build(clut)

	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.materials[key]; ok {
		return cached
	}
	b.materials[key] = img

	return img
}
