package rig

import (
	"vagrant-scene/internal/geom"
	"vagrant-scene/internal/vmath"
)

func buildSkeleton(m *RiggedModel) *vmath.Skeleton {
	n := len(m.Bones)
	bones := make([]vmath.Bone, n)

	for i, b := range m.Bones {
		bones[i] = vmath.Bone{Parent: -1, Scale: vmath.Vec3{1, 1, 1}}
		if hasParent(b.ParentID, n) {
			parent := int(b.ParentID)
			bones[i].Parent = parent
			bones[i].Position = vmath.Vec3{-float64(m.Bones[parent].Length), 0, 0}
			bones[parent].Children = append(bones[parent].Children, i)
		}
	}

	root := 0
	for i, b := range bones {
		if b.Parent < 0 {
			root = i
			break
		}
	}

	sk := &vmath.Skeleton{Bones: bones, Root: root}
	sk.UpdateMatrixWorld()
	sk.ComputeInverses()
	return sk
}

// getParentBone returns the index of bone i's parent, or -1 if it's a
// root (per hasParent's documented deviation from the original tooling).
func getParentBone(m *RiggedModel, boneID int) int {
	if boneID < 0 || boneID >= len(m.Bones) {
		return -1
	}
	parentID := m.Bones[boneID].ParentID
	if !hasParent(parentID, len(m.Bones)) {
		return -1
	}
	return int(parentID)
}

// boneOffsetX walks a vertex's bone ancestor chain starting from the
// PARENT of its own bone (not the bone itself), accumulating -length per
// ancestor. This is the pre-bind-pose X offset the original tooling
// bakes directly into vertex positions rather than leaving for a real
// skinning matrix.
func boneOffsetX(m *RiggedModel, ownBone int) float64 {
	offset := 0.0
	bone := getParentBone(m, ownBone)
	for bone >= 0 {
		offset += -float64(m.Bones[bone].Length)
		bone = getParentBone(m, bone)
	}
	return offset
}

func buildGeometry(m *RiggedModel) geom.SubMesh {
	tw := float64(m.TextureMap.EffectiveWidth())
	th := float64(m.TextureMap.Height)

	var out geom.SubMesh
	var faceSizes []int
	var baseIndices []uint32
	iv := uint32(0)

	appendVertex := func(v Vertex, boneID int) {
		offset := boneOffsetX(m, boneID)
		out.Positions = append(out.Positions, float32(float64(v.X)+offset), float32(v.Y), float32(v.Z))
		out.SkinWeights = append(out.SkinWeights, 1, 0, 0, 0)
		out.SkinIndices = append(out.SkinIndices, float32(boneID), 0, 0, 0)
	}

	for _, f := range m.Faces {
		if f.Quad {
			vids := [4]int{f.Vertex1, f.Vertex2, f.Vertex3, f.Vertex4}
			for _, vid := range vids {
				v := m.Vertices[vid]
				appendVertex(v, int(m.Groups[v.GroupID].BoneID))
			}

			out.UVs = append(out.UVs,
				float32(f.U1)/float32(tw), float32(f.V1)/float32(th),
				float32(f.U2)/float32(tw), float32(f.V2)/float32(th),
				float32(f.U3)/float32(tw), float32(f.V3)/float32(th),
				float32(f.U4)/float32(tw), float32(f.V4)/float32(th),
			)
			out.Colors = append(out.Colors,
				float32(f.R1)/255, float32(f.G1)/255, float32(f.B1)/255,
				float32(f.R2)/255, float32(f.G2)/255, float32(f.B2)/255,
				float32(f.R3)/255, float32(f.G3)/255, float32(f.B3)/255,
				float32(f.R4)/255, float32(f.G4)/255, float32(f.B4)/255,
			)

			out.Indices = append(out.Indices, iv+2, iv+1, iv+0, iv+1, iv+2, iv+3)
			baseIndices = append(baseIndices, iv+1, iv+0, iv+2, iv+3)
			faceSizes = append(faceSizes, 4)
			if f.Double() {
				out.Indices = append(out.Indices, iv+0, iv+1, iv+2, iv+3, iv+2, iv+1)
			}
			iv += 4
		} else {
			vids := [3]int{f.Vertex1, f.Vertex2, f.Vertex3}
			for _, vid := range vids {
				v := m.Vertices[vid]
				appendVertex(v, int(m.Groups[v.GroupID].BoneID))
			}

			out.UVs = append(out.UVs,
				float32(f.U2)/float32(tw), float32(f.V2)/float32(th),
				float32(f.U3)/float32(tw), float32(f.V3)/float32(th),
				float32(f.U1)/float32(tw), float32(f.V1)/float32(th),
			)
			out.Colors = append(out.Colors,
				float32(f.R1)/255, float32(f.G1)/255, float32(f.B1)/255,
				float32(f.R2)/255, float32(f.G2)/255, float32(f.B2)/255,
				float32(f.R3)/255, float32(f.G3)/255, float32(f.B3)/255,
			)

			out.Indices = append(out.Indices, iv+2, iv+1, iv+0)
			baseIndices = append(baseIndices, iv+2, iv+1, iv+0)
			faceSizes = append(faceSizes, 3)
			if f.Double() {
				out.Indices = append(out.Indices, iv+0, iv+1, iv+2)
			}
			iv += 3
		}
	}

	out.Normals = computeVertexNormals(out.Positions, baseIndices, faceSizes)

	if len(m.TextureMap.Palettes) > 0 {
		out.Material = m.TextureMap.Build(0)
	}

	return out
}

// computeVertexNormals accumulates a face normal into every vertex of
// every base (non-doubled) triangle or quad, then normalizes. It does
// not replicate the original tooling's normal pass, which walks the
// doubled index buffer (forward and reversed windings for double-sided
// faces) against a face_sizes list that only ever records one entry per
// face: after the first double-sided face, every subsequent chunk is
// read from the wrong offset. indices is not the rendered index buffer
// but a separate per-face list from the caller: 3 entries per triangle,
// 4 per quad (ordered so the fan (0,1,2),(0,2,3) is the rendered split
// along the 1–2 diagonal), with no reversed-winding entries, so
// double-sided faces can't desync it.
func computeVertexNormals(positions []float32, indices []uint32, faceSizes []int) []float32 {
	normals := make([]float32, len(positions))

	idx := 0
	for _, size := range faceSizes {
		face := indices[idx : idx+size]
		idx += size

		var tris [][3]uint32
		if size == 3 {
			tris = [][3]uint32{{face[0], face[1], face[2]}}
		} else {
			tris = [][3]uint32{
				{face[0], face[1], face[2]},
				{face[0], face[2], face[3]},
			}
		}

		for _, tri := range tris {
			v0 := vec3At(positions, tri[0])
			v1 := vec3At(positions, tri[1])
			v2 := vec3At(positions, tri[2])
			n := v1.Sub(v0).Cross(v2.Sub(v0))

			addNormal(normals, tri[0], n)
			addNormal(normals, tri[1], n)
			addNormal(normals, tri[2], n)
		}
	}

	for i := 0; i < len(normals); i += 3 {
		n := vmath.Vec3{float64(normals[i]), float64(normals[i+1]), float64(normals[i+2])}.Normalize()
		normals[i], normals[i+1], normals[i+2] = float32(n[0]), float32(n[1]), float32(n[2])
	}
	return normals
}

func vec3At(positions []float32, i uint32) vmath.Vec3 {
	return vmath.Vec3{float64(positions[i*3]), float64(positions[i*3+1]), float64(positions[i*3+2])}
}

func addNormal(normals []float32, i uint32, n vmath.Vec3) {
	normals[i*3] += float32(n[0])
	normals[i*3+1] += float32(n[1])
	normals[i*3+2] += float32(n[2])
}
