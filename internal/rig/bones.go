package rig

import (
	"fmt"

	"vagrant-scene/internal/breader"
)

// Bone is one entry of a rigged model's skeleton. Unlike the teacher's
// MU bone format, Vagrant Story bones carry no "is dummy" flag — every
// bone here is a real, length-bearing joint.
type Bone struct {
	ID          int
	Length      int32
	ParentID    int8
	GroupID     int8
	MountID     uint8
	BodyPartID  uint8
	Mode        int8
}

func readBones(r *breader.Reader, n int) ([]Bone, error) {
	bones := make([]Bone, n)
	for i := 0; i < n; i++ {
		b := Bone{ID: i}
		b.Length = r.S32()
		b.ParentID = r.S8()
		b.GroupID = r.S8()
		b.MountID = r.U8()
		b.BodyPartID = r.U8()
		b.Mode = r.S8()
		r.U8() // unknown
		r.U8() // unknown
		r.U8() // unknown
		r.Padding(4, 0)
		bones[i] = b
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("rig: bones: %w", err)
	}
	return bones, nil
}

// hasParent reports whether a bone's parent_id names a real bone. A
// negative id or one past the end of the bone array means "root" -- the
// original tooling's literal `parent_id < num_bones` check doesn't guard
// the negative case and silently wraps to the last bone via Python's
// negative indexing; this is the clearer, bug-free contract spec.md
// describes.
func hasParent(parentID int8, numBones int) bool {
	return int(parentID) >= 0 && int(parentID) < numBones
}
