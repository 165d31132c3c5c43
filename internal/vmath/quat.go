package vmath

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

func QuatIdentity() Quat { return Quat{0, 0, 0, 1} }

// Mul returns the Hamilton product a * b (apply b first, then a).
func (a Quat) Mul(b Quat) Quat {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return Quat{
		aw*bx + ax*bw + ay*bz - az*by,
		aw*by - ax*bz + ay*bw + az*bx,
		aw*bz + ax*by - ay*bx + az*bw,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

func (q Quat) Dot(o Quat) float64 {
	return q[0]*o[0] + q[1]*o[1] + q[2]*o[2] + q[3]*o[3]
}

func (q Quat) Len() float64 {
	return math.Sqrt(q.Dot(q))
}

func (q Quat) Normalize() Quat {
	l := q.Len()
	if l < 1e-12 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

func (q Quat) Scale(s float64) Quat {
	return Quat{q[0] * s, q[1] * s, q[2] * s, q[3] * s}
}

func (q Quat) Add(o Quat) Quat {
	return Quat{q[0] + o[0], q[1] + o[1], q[2] + o[2], q[3] + o[3]}
}

// AxisAngle builds a quaternion for a rotation of angle radians about axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return Quat{a[0] * s, a[1] * s, a[2] * s, math.Cos(angle / 2)}
}

// QuatFromEulerZYX builds a quaternion from three Euler angles (radians)
// applied X first, then Y, then Z: Q = Qz * Qy * Qx. This matches the
// Vagrant Story tooling's rot2quat (Three.js convention) used to turn
// decoded PS1 rotation units into bone-pose quaternions.
func QuatFromEulerZYX(rx, ry, rz float64) Quat {
	qx := AxisAngle(Vec3{1, 0, 0}, rx)
	qy := AxisAngle(Vec3{0, 1, 0}, ry)
	qz := AxisAngle(Vec3{0, 0, 1}, rz)
	return qz.Mul(qy.Mul(qx)).Normalize()
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// Mat3ToQuat converts a 3×3 rotation matrix to a quaternion using
// Shepperd's method, choosing the numerically stable branch based on
// the trace.
func Mat3ToQuat(m Mat3) Quat {
	trace := m[0] + m[4] + m[8]
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		q = Quat{
			(m[7] - m[5]) * s,
			(m[2] - m[6]) * s,
			(m[3] - m[1]) * s,
			0.25 / s,
		}
	case m[0] > m[4] && m[0] > m[8]:
		s := 2.0 * math.Sqrt(1.0+m[0]-m[4]-m[8])
		q = Quat{
			0.25 * s,
			(m[1] + m[3]) / s,
			(m[2] + m[6]) / s,
			(m[7] - m[5]) / s,
		}
	case m[4] > m[8]:
		s := 2.0 * math.Sqrt(1.0+m[4]-m[0]-m[8])
		q = Quat{
			(m[1] + m[3]) / s,
			0.25 * s,
			(m[5] + m[7]) / s,
			(m[2] - m[6]) / s,
		}
	default:
		s := 2.0 * math.Sqrt(1.0+m[8]-m[0]-m[4])
		q = Quat{
			(m[2] + m[6]) / s,
			(m[5] + m[7]) / s,
			0.25 * s,
			(m[3] - m[1]) / s,
		}
	}
	return q.Normalize()
}

// Slerp spherically interpolates between q0 and q1 at t in [0,1], taking
// the shortest arc and falling back to linear interpolation (renormalized)
// when the quaternions are nearly parallel, where the slerp formula would
// divide by a near-zero sine.
func Slerp(q0, q1 Quat, t float64) Quat {
	dot := q0.Dot(q1)
	if dot < 0 {
		q1 = q1.Scale(-1)
		dot = -dot
	}
	if dot > 0.9995 {
		return q0.Add(q1.Sub(q0).Scale(t)).Normalize()
	}
	theta0 := math.Acos(dot)
	theta := theta0 * t
	sinTheta0 := math.Sin(theta0)
	s0 := math.Cos(theta) - dot*math.Sin(theta)/sinTheta0
	s1 := math.Sin(theta) / sinTheta0
	return q0.Scale(s0).Add(q1.Scale(s1))
}

func (q Quat) Sub(o Quat) Quat {
	return Quat{q[0] - o[0], q[1] - o[1], q[2] - o[2], q[3] - o[3]}
}
