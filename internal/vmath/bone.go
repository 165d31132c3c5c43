package vmath

// Bone is one node of a skeleton, stored by index in a Skeleton rather
// than linked by pointer, so a skeleton can be copied, serialized, or
// walked without chasing owning pointers in either direction (spec
// explicitly calls out avoiding two-way owning pointers here).
type Bone struct {
	Position Vec3
	Scale    Vec3
	// Rotation is an Euler-angle fallback used when RotationQuat is nil.
	Rotation     Vec3
	RotationQuat *Quat

	Parent   int // -1 for root
	Children []int

	Matrix      Mat4 // local transform, set by UpdateMatrixWorld
	MatrixWorld Mat4
}

// LocalMatrix returns this bone's parent-relative transform, using
// RotationQuat when set (animated pose) or building one from the Euler
// Rotation field otherwise (bind pose).
func (b *Bone) LocalMatrix() Mat4 {
	scale := b.Scale
	if scale == (Vec3{}) {
		scale = Vec3{1, 1, 1}
	}
	rot := QuatIdentity()
	if b.RotationQuat != nil {
		rot = *b.RotationQuat
	} else if b.Rotation != (Vec3{}) {
		rot = QuatFromEulerZYX(b.Rotation[0], b.Rotation[1], b.Rotation[2])
	}
	return ComposeMat4(b.Position, rot, scale)
}

// Skeleton is a flat arena of bones addressed by index.
type Skeleton struct {
	Bones        []Bone
	Root         int
	BoneInverses []Mat4
}

// UpdateMatrixWorld recomputes every bone's local and world matrix,
// visiting parents before children. Bones must already be topologically
// ordered (a bone's parent index is always < its own index), which holds
// for every skeleton this module builds.
func (s *Skeleton) UpdateMatrixWorld() {
	for i := range s.Bones {
		b := &s.Bones[i]
		b.Matrix = b.LocalMatrix()
		if b.Parent < 0 {
			b.MatrixWorld = b.Matrix
		} else {
			b.MatrixWorld = Mat4Mul(s.Bones[b.Parent].MatrixWorld, b.Matrix)
		}
	}
}

// ComputeInverses captures the current MatrixWorld of every bone as its
// bind-pose inverse. Call once after building the rest pose and before
// any animated pose is applied.
func (s *Skeleton) ComputeInverses() {
	s.BoneInverses = make([]Mat4, len(s.Bones))
	for i := range s.Bones {
		s.BoneInverses[i] = s.Bones[i].MatrixWorld.Inverse()
	}
}
