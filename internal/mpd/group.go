package mpd

import (
	"fmt"

	"vagrant-scene/internal/breader"
	"vagrant-scene/internal/geom"
	"vagrant-scene/internal/vmath"
	"vagrant-scene/internal/znd"
)

type meshKey struct {
	TextureID int16
	ClutID    uint16
}

// group is one geometry group within a room: a 64-byte header (only a
// single scale-selection bit of which is interpreted) followed by its
// triangle and quad face records.
type group struct {
	scale int

	order   []meshKey
	meshes  map[meshKey]*subMeshBuild
}

func readGroup(r *breader.Reader) (*group, error) {
	header := r.Buffer(64)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mpd: group header: %w", err)
	}

	scale := 8
	if header[1]&0x08 != 0 {
		scale = 1
	}

	g := &group{
		scale:  scale,
		meshes: make(map[meshKey]*subMeshBuild),
	}
	return g, nil
}

func (g *group) readData(r *breader.Reader) error {
	triCount := r.U32()
	quadCount := r.U32()
	if err := r.Err(); err != nil {
		return fmt.Errorf("mpd: group face counts: %w", err)
	}

	for i := uint32(0); i < triCount; i++ {
		f := readFace(r, false)
		g.addFace(f)
	}
	for i := uint32(0); i < quadCount; i++ {
		f := readFace(r, true)
		g.addFace(f)
	}
	return r.Err()
}

func (g *group) addFace(f faceRaw) {
	key := meshKey{TextureID: f.textureID, ClutID: f.clutID}
	m, ok := g.meshes[key]
	if !ok {
		m = &subMeshBuild{key: key}
		g.meshes[key] = m
		g.order = append(g.order, key)
	}
	m.faces = append(m.faces, f)
}

func (g *group) build(bank *znd.Bank) []*geom.SubMesh {
	out := make([]*geom.SubMesh, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.meshes[key].build(g.scale, bank))
	}
	return out
}

// subMeshBuild accumulates faces for one (textureID, clutID) pair within
// a group until build() flattens them into a geom.SubMesh.
type subMeshBuild struct {
	key   meshKey
	faces []faceRaw
}

func (m *subMeshBuild) build(scale int, bank *znd.Bank) *geom.SubMesh {
	const tw, th = 256.0, 256.0

	out := &geom.SubMesh{
		TextureID:   int(m.key.TextureID),
		ClutID:      int(m.key.ClutID),
		MaterialKey: fmt.Sprintf("%d-%d", m.key.TextureID, m.key.ClutID),
	}

	iv := uint32(0)
	for _, f := range m.faces {
		p1 := vmath.Vec3{float64(f.p1x), float64(f.p1y), float64(f.p1z)}
		s := float64(scale)
		p2 := vmath.Vec3{float64(f.p2x)*s + p1[0], float64(f.p2y)*s + p1[1], float64(f.p2z)*s + p1[2]}
		p3 := vmath.Vec3{float64(f.p3x)*s + p1[0], float64(f.p3y)*s + p1[1], float64(f.p3z)*s + p1[2]}

		n := vmath.Vec3{float64(f.p2x), float64(f.p2y), float64(f.p2z)}.
			Cross(vmath.Vec3{float64(f.p3x), float64(f.p3y), float64(f.p3z)}).
			Normalize().Scale(-1)

		if f.quad {
			p4 := vmath.Vec3{float64(f.p4x)*s + p1[0], float64(f.p4y)*s + p1[1], float64(f.p4z)*s + p1[2]}

			verts := []vmath.Vec3{p1, p2, p3, p4}
			cols := [][3]uint8{{f.r1, f.g1, f.b1}, {f.r2, f.g2, f.b2}, {f.r3, f.g3, f.b3}, {f.r4, f.g4, f.b4}}
			uvs := [][2]uint8{{f.u2, f.v2}, {f.u3, f.v3}, {f.u1, f.v1}, {f.u4, f.v4}}

			appendVertices(out, verts, cols, uvs, n, tw, th)

			out.Indices = append(out.Indices, iv+2, iv+1, iv+0, iv+1, iv+2, iv+3)
			iv += 4
		} else {
			verts := []vmath.Vec3{p1, p2, p3}
			cols := [][3]uint8{{f.r1, f.g1, f.b1}, {f.r2, f.g2, f.b2}, {f.r3, f.g3, f.b3}}
			uvs := [][2]uint8{{f.u2, f.v2}, {f.u3, f.v3}, {f.u1, f.v1}}

			appendVertices(out, verts, cols, uvs, n, tw, th)

			out.Indices = append(out.Indices, iv+2, iv+1, iv+0)
			iv += 3
		}
	}

	if bank != nil {
		out.Material = bank.Materials(out.TextureID, out.ClutID)
	}

	return out
}

func appendVertices(out *geom.SubMesh, verts []vmath.Vec3, cols [][3]uint8, uvs [][2]uint8, n vmath.Vec3, tw, th float64) {
	for _, v := range verts {
		out.Positions = append(out.Positions, float32(v[0]), float32(v[1]), float32(v[2]))
		out.Normals = append(out.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
	}
	for _, c := range cols {
		out.Colors = append(out.Colors, float32(c[0])/255, float32(c[1])/255, float32(c[2])/255)
	}
	for _, uv := range uvs {
		out.UVs = append(out.UVs, float32(uv[0])/float32(tw), float32(uv[1])/float32(th))
	}
}
