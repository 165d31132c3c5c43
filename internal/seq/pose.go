package seq

import (
	"fmt"
	"math"

	"vagrant-scene/internal/vmath"
)

// anglePerUnit converts a raw accumulated rotation unit into radians.
const anglePerUnit = math.Pi / 4096

// BonePose is one bone's evaluated local pose at a sampled frame.
type BonePose struct {
	Rotation vmath.Quat
	Scale    vmath.Vec3
}

// Pose is a full animation sample: one local pose per bone, plus the
// root translation (the translation track has no per-bone counterpart;
// it moves the whole skeleton).
type Pose struct {
	Bones           []BonePose
	RootTranslation vmath.Vec3
}

// SamplePose evaluates anim at the given frame. anims is the full bank
// animation list, needed to resolve a donor animation's rotation base
// when anim inherits rather than stores its own.
func SamplePose(anim *Animation, anims []*Animation, frame float64) (*Pose, error) {
	numBones := len(anim.RotationKeys)
	pose := &Pose{Bones: make([]BonePose, numBones)}

	tx, ty, tz := evalTrack(anim.TranslationKeys, frame)
	pose.RootTranslation = vmath.Vec3{
		float64(anim.TranslationBase.X) + tx,
		float64(anim.TranslationBase.Y) + ty,
		float64(anim.TranslationBase.Z) + tz,
	}

	for b := 0; b < numBones; b++ {
		rot, err := evalRotation(anim, anims, b, frame)
		if err != nil {
			return nil, err
		}
		pose.Bones[b] = BonePose{
			Rotation: rot,
			Scale:    evalScale(anim, b, frame),
		}
	}

	return pose, nil
}

func evalRotation(anim *Animation, anims []*Animation, bone int, frame float64) (vmath.Quat, error) {
	base := anim.RotationBase[bone]
	if base == nil {
		if int(anim.BaseAnimationID) < 0 || int(anim.BaseAnimationID) >= len(anims) {
			return vmath.Quat{}, fmt.Errorf("seq: animation %d bone %d: no rotation base and invalid base animation %d", anim.ID, bone, anim.BaseAnimationID)
		}
		donor := anims[anim.BaseAnimationID]
		base = donor.RotationBase[bone]
		if base == nil {
			return vmath.Quat{}, fmt.Errorf("seq: animation %d bone %d: donor animation %d has no rotation base", anim.ID, bone, anim.BaseAnimationID)
		}
	}

	rx, ry, rz := float64(base.X*2), float64(base.Y*2), float64(base.Z*2)
	dx, dy, dz := evalTrack(anim.RotationKeys[bone], frame)
	rx += dx
	ry += dy
	rz += dz

	return vmath.QuatFromEulerZYX(rx*anglePerUnit, ry*anglePerUnit, rz*anglePerUnit), nil
}

func evalScale(anim *Animation, bone int, frame float64) vmath.Vec3 {
	sx, sy, sz := 1.0, 1.0, 1.0
	if anim.ScaleFlags&0x1 != 0 && anim.ScaleBase[bone] != nil {
		base := anim.ScaleBase[bone]
		sx, sy, sz = float64(base.X)/64, float64(base.Y)/64, float64(base.Z)/64
	}

	if anim.ScaleFlags&0x2 != 0 {
		dx, dy, dz := evalTrack(anim.ScaleKeys[bone], frame)
		sx += dx / 64
		sy += dy / 64
		sz += dz / 64
	}

	return vmath.Vec3{sx, sy, sz}
}

// evalTrack walks a keyframe stream's running-delta accumulation up to
// (and including a partial span into) targetF frames, returning the
// total per-axis displacement contributed by the stream. Each key's
// per-axis delta, once set, stays active ("carries forward") across
// every subsequent key that leaves that axis absent.
func evalTrack(keys []Key, targetF float64) (x, y, z float64) {
	facc := 0.0
	px, py, pz := 0.0, 0.0, 0.0

	for _, k := range keys {
		if k.X.Set {
			px = float64(k.X.Value)
		}
		if k.Y.Set {
			py = float64(k.Y.Value)
		}
		if k.Z.Set {
			pz = float64(k.Z.Value)
		}

		ticks := float64(k.F)
		if facc+ticks > targetF {
			ticks = targetF - facc
		}
		if ticks < 0 {
			ticks = 0
		}

		x += px * ticks
		y += py * ticks
		z += pz * ticks

		facc += float64(k.F)
		if facc >= targetF {
			break
		}
	}

	return
}
