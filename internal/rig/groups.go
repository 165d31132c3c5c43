package rig

import (
	"fmt"

	"vagrant-scene/internal/breader"
)

// Group maps a contiguous run of vertices onto a single bone.
type Group struct {
	ID         int
	BoneID     int16
	LastVertex uint16
}

func readGroups(r *breader.Reader, n int, bones []Bone) ([]Group, error) {
	groups := make([]Group, n)
	for i := 0; i < n; i++ {
		boneID := r.S16()
		lastVertex := r.U16()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("rig: group %d: %w", i, err)
		}

		if int(boneID) < 0 || int(boneID) >= len(bones) {
			return nil, fmt.Errorf("rig: group %d: %w: bone id %d out of range", i, ErrGroupBoneMismatch, boneID)
		}
		if int(bones[boneID].GroupID) != i {
			return nil, fmt.Errorf("rig: group %d: %w", i, ErrGroupBoneMismatch)
		}

		groups[i] = Group{ID: i, BoneID: boneID, LastVertex: lastVertex}
	}
	return groups, nil
}
