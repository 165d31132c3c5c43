package rig

import (
	"fmt"

	"vagrant-scene/internal/breader"
)

// Vertex is a raw model-space vertex, tagged with the group (and hence
// bone) it belongs to.
type Vertex struct {
	X, Y, Z int16
	GroupID int
}

func readVertices(r *breader.Reader, groups []Group) ([]Vertex, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	total := int(groups[len(groups)-1].LastVertex)

	vertices := make([]Vertex, 0, total)
	g := 0
	for i := 0; i < total; i++ {
		if i >= int(groups[g].LastVertex) {
			g++
		}

		x := r.S16()
		y := r.S16()
		z := r.S16()
		r.Padding(2, 0)

		vertices = append(vertices, Vertex{X: x, Y: y, Z: z, GroupID: g})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("rig: vertices: %w", err)
	}
	return vertices, nil
}
