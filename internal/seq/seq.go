// Package seq decodes SEQ animation banks: a header naming how many
// bones and "slots" (playable animation ids) the bank has, a run of
// per-animation headers giving pointer tables into the shared keyframe
// data area, a slot-to-animation lookup table, and finally the keyframe
// streams themselves, each a variable-length run-length-and-delta
// encoded track rather than a fixed-size sample array.
package seq

import (
	"fmt"

	"vagrant-scene/internal/breader"
)

// Bank is a fully decoded SEQ file.
type Bank struct {
	NumBones int
	Slots    []uint8
	Animations []*Animation
}

// Animation is one named pose-and-action track within a bank.
type Animation struct {
	ID              int
	Length          int
	BaseAnimationID int8
	ScaleFlags      uint8

	TranslationBase Vec3I
	TranslationKeys []Key

	// RotationBase entries are nil for a bone that inherits its base
	// pose from BaseAnimationID instead of storing its own. ScaleBase
	// entries are nil when ScaleFlags lacks 0x1; scale is never inherited.
	RotationBase []*Vec3I
	RotationKeys [][]Key

	ScaleBase []*ScaleI
	ScaleKeys [][]Key

	Actions []Action

	ptrActions     uint16
	ptrTranslation uint16
	ptrRotation    []uint16
	ptrScale       []uint16
}

// Vec3I is an integer 3-vector, used for the raw base poses the
// keyframe streams are deltas against.
type Vec3I struct{ X, Y, Z int32 }

// ScaleI is a raw, unscaled base bone scale (divide by 64 to use).
type ScaleI struct{ X, Y, Z uint8 }

// Decode parses a SEQ animation bank in full.
func Decode(data []byte) (*Bank, error) {
	r := breader.New(data)
	base := r.Pos()

	numSlots := int(r.U16())
	numBones := int(r.U8())
	r.Padding(1, 0)
	r.U32() // file size, unused
	r.U32() // data offset, captured but never referenced downstream
	slotOffset := int(r.U32()) + 8
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("seq: header: %w", err)
	}

	headerOffset := slotOffset + numSlots
	perAnimSize := numBones*4 + 10
	numAnimations := (headerOffset - numSlots - 16) / perAnimSize

	anims := make([]*Animation, numAnimations)
	for i := 0; i < numAnimations; i++ {
		a, err := readAnimHeader(r, i, numBones)
		if err != nil {
			return nil, err
		}
		anims[i] = a
	}

	slots := make([]uint8, numSlots)
	for i := 0; i < numSlots; i++ {
		s := r.U8()
		if int(s) >= numAnimations && s != 0xFF {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, s)
		}
		slots[i] = s
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("seq: slot table: %w", err)
	}

	ptrData := func(i int) int { return i + headerOffset + base }

	for _, a := range anims {
		if err := readAnimData(r, a, anims, numBones, ptrData); err != nil {
			return nil, err
		}
	}

	return &Bank{NumBones: numBones, Slots: slots, Animations: anims}, nil
}

func readAnimHeader(r *breader.Reader, id, numBones int) (*Animation, error) {
	a := &Animation{ID: id}

	a.Length = int(r.U16())
	a.BaseAnimationID = r.S8()
	a.ScaleFlags = r.U8()
	a.ptrActions = r.U16()
	a.ptrTranslation = r.U16()
	r.Padding(2, 0)

	a.ptrRotation = make([]uint16, numBones)
	for i := range a.ptrRotation {
		a.ptrRotation[i] = r.U16()
	}
	a.ptrScale = make([]uint16, numBones)
	for i := range a.ptrScale {
		a.ptrScale[i] = r.U16()
	}

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("seq: animation %d header: %w", id, err)
	}
	return a, nil
}

func readAnimData(r *breader.Reader, a *Animation, anims []*Animation, numBones int, ptrData func(int) int) error {
	r.Seek(ptrData(int(a.ptrTranslation)))
	a.TranslationBase = readVec3I(r)
	keys, err := readKeys(r, a.Length)
	if err != nil {
		return fmt.Errorf("seq: animation %d translation keys: %w", a.ID, err)
	}
	a.TranslationKeys = keys

	if a.ptrActions > 0 {
		r.Seek(ptrData(int(a.ptrActions)))
		actions, err := readActions(r, a.Length)
		if err != nil {
			return fmt.Errorf("seq: animation %d actions: %w", a.ID, err)
		}
		a.Actions = actions
	}

	a.RotationBase = make([]*Vec3I, numBones)
	a.RotationKeys = make([][]Key, numBones)
	a.ScaleBase = make([]*ScaleI, numBones)
	a.ScaleKeys = make([][]Key, numBones)

	for b := 0; b < numBones; b++ {
		r.Seek(ptrData(int(a.ptrRotation[b])))
		if a.BaseAnimationID == -1 {
			v := readVec3I(r)
			a.RotationBase[b] = &v
		}
		keys, err := readKeys(r, a.Length)
		if err != nil {
			return fmt.Errorf("seq: animation %d bone %d rotation keys: %w", a.ID, b, err)
		}
		a.RotationKeys[b] = keys

		r.Seek(ptrData(int(a.ptrScale[b])))
		if a.ScaleFlags&0x1 != 0 {
			s := ScaleI{X: r.U8(), Y: r.U8(), Z: r.U8()}
			a.ScaleBase[b] = &s
		}
		if a.ScaleFlags&0x2 != 0 {
			keys, err := readKeys(r, a.Length)
			if err != nil {
				return fmt.Errorf("seq: animation %d bone %d scale keys: %w", a.ID, b, err)
			}
			a.ScaleKeys[b] = keys
		}
	}

	return r.Err()
}

func readVec3I(r *breader.Reader) Vec3I {
	return Vec3I{X: int32(r.S16BE()), Y: int32(r.S16BE()), Z: int32(r.S16BE())}
}
