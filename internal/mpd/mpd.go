// Package mpd decodes MPD level-geometry files: a room header of
// pointer/length pairs, a room sub-header of 24 section lengths, and a
// geometry section containing textured room mesh data. Every other room
// sub-section (collision, lighting, scripts, AKAO audio, ...) is skipped
// by its declared length; none of it is in scope here.
package mpd

import (
	"fmt"

	"vagrant-scene/internal/breader"
	"vagrant-scene/internal/geom"
	"vagrant-scene/internal/znd"
)

// Scene is a fully decoded MPD room.
type Scene struct {
	SubMeshes []*geom.SubMesh
}

// Decode parses an MPD file. bank may be nil, in which case sub-meshes
// are returned without a resolved Material.
func Decode(data []byte, bank *znd.Bank) (*Scene, error) {
	r := breader.New(data)

	// Header: 6 (ptr, len) pairs. Only lengths matter; every pointer is
	// relative to a base this decoder never needs, since every section
	// is read sequentially off the cursor.
	for i := 0; i < 6; i++ {
		r.U32()
		r.U32()
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mpd: header: %w", err)
	}

	var subLen [24]uint32
	for i := range subLen {
		subLen[i] = r.U32()
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mpd: room sub-header: %w", err)
	}

	subMeshes, err := decodeGeometry(r, bank)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(subLen); i++ {
		r.Skip(int(subLen[i]))
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mpd: room sub-sections: %w", err)
	}

	return &Scene{SubMeshes: subMeshes}, nil
}

func decodeGeometry(r *breader.Reader, bank *znd.Bank) ([]*geom.SubMesh, error) {
	groupCount := int(r.U32())
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mpd: geometry: %w", err)
	}

	groups := make([]*group, 0, groupCount)
	for i := 0; i < groupCount; i++ {
		g, err := readGroup(r)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	for i, g := range groups {
		if err := g.readData(r); err != nil {
			return nil, fmt.Errorf("mpd: group %d data: %w", i, err)
		}
	}

	var out []*geom.SubMesh
	for _, g := range groups {
		out = append(out, g.build(bank)...)
	}
	return out, nil
}
