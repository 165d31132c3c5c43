package rig

import "errors"

var (
	// ErrUnknownFaceType is returned by the v1 face decoder when a face
	// record's leading byte isn't 0x24 (triangle) or 0x2C (quad). This
	// is recoverable: DecodeWEP/DecodeSHP rewind and retry with the v2,
	// vertex-colored face layout.
	ErrUnknownFaceType = errors.New("rig: unknown face type")

	// ErrGroupBoneMismatch is returned when a group's declared bone
	// doesn't point back at that same group, which the file format
	// guarantees never happens for a well-formed model.
	ErrGroupBoneMismatch = errors.New("rig: group/bone reference mismatch")
)
