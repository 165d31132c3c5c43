package vmath

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVec3CrossAndNormalize(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	c := a.Cross(b)
	if c != (Vec3{0, 0, 1}) {
		t.Errorf("Cross = %v, want (0,0,1)", c)
	}

	n := Vec3{3, 0, 4}.Normalize()
	if !almostEqual(n.Len(), 1) {
		t.Errorf("Normalize length = %v, want 1", n.Len())
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := ComposeMat4(Vec3{1, 2, 3}, AxisAngle(Vec3{0, 1, 0}, math.Pi/3), Vec3{2, 1, 0.5})
	inv := m.Inverse()
	product := Mat4Mul(m, inv)
	ident := Mat4Identity()
	for i := range product {
		if !almostEqual(product[i], ident[i]) {
			t.Fatalf("m * inv(m) = %v, want identity", product)
		}
	}
}

func TestComposeDecomposeRoundTrip(t *testing.T) {
	pos := Vec3{5, -2, 1}
	rot := AxisAngle(Vec3{0, 0, 1}, math.Pi/4).Normalize()
	scale := Vec3{2, 3, 1}

	m := ComposeMat4(pos, rot, scale)
	gotPos, gotRot, gotScale := m.Decompose()

	for i := 0; i < 3; i++ {
		if !almostEqual(pos[i], gotPos[i]) {
			t.Errorf("Decompose position[%d] = %v, want %v", i, gotPos[i], pos[i])
		}
		if !almostEqual(scale[i], gotScale[i]) {
			t.Errorf("Decompose scale[%d] = %v, want %v", i, gotScale[i], scale[i])
		}
	}
	if math.Abs(rot.Dot(gotRot)) < 0.999 {
		t.Errorf("Decompose rotation = %v, want ~%v", gotRot, rot)
	}
}

func TestQuatFromEulerZYXIdentity(t *testing.T) {
	q := QuatFromEulerZYX(0, 0, 0)
	if !almostEqual(q[3], 1) {
		t.Errorf("QuatFromEulerZYX(0,0,0) = %v, want identity", q)
	}
}

func TestQuatSlerpEndpoints(t *testing.T) {
	q0 := QuatIdentity()
	q1 := AxisAngle(Vec3{0, 1, 0}, math.Pi/2)

	got0 := Slerp(q0, q1, 0)
	got1 := Slerp(q0, q1, 1)

	if math.Abs(got0.Dot(q0)) < 0.9999 {
		t.Errorf("Slerp(t=0) = %v, want %v", got0, q0)
	}
	if math.Abs(got1.Dot(q1)) < 0.9999 {
		t.Errorf("Slerp(t=1) = %v, want %v", got1, q1)
	}
}

func TestQuatToMat3RoundTrip(t *testing.T) {
	q := AxisAngle(Vec3{1, 1, 1}, 1.2).Normalize()
	m := QuatToMat3(q)
	q2 := Mat3ToQuat(m)
	if math.Abs(q.Dot(q2)) < 0.999 {
		t.Errorf("Mat3ToQuat(QuatToMat3(q)) = %v, want ~%v", q2, q)
	}
}

func TestSkeletonUpdateMatrixWorld(t *testing.T) {
	sk := &Skeleton{
		Bones: []Bone{
			{Parent: -1, Scale: Vec3{1, 1, 1}},
			{Parent: 0, Position: Vec3{2, 0, 0}, Scale: Vec3{1, 1, 1}, Children: nil},
		},
		Root: 0,
	}
	sk.Bones[0].Children = []int{1}
	sk.UpdateMatrixWorld()

	world := sk.Bones[1].MatrixWorld.Translation()
	if !almostEqual(world[0], 2) || !almostEqual(world[1], 0) || !almostEqual(world[2], 0) {
		t.Errorf("child world translation = %v, want (2,0,0)", world)
	}

	sk.ComputeInverses()
	product := Mat4Mul(sk.Bones[1].MatrixWorld, sk.BoneInverses[1])
	ident := Mat4Identity()
	for i := range product {
		if !almostEqual(product[i], ident[i]) {
			t.Fatalf("world * inverse = %v, want identity", product)
		}
	}
}
