package seq

import "errors"

var (
	// ErrInvalidSlot is returned when a slot table entry names an
	// animation index that doesn't exist (and isn't the explicit
	// "unused slot" sentinel 0xFF).
	ErrInvalidSlot = errors.New("seq: invalid animation slot")

	// ErrUnknownAction is returned when an action-track opcode isn't in
	// the fixed opcode table.
	ErrUnknownAction = errors.New("seq: unknown action opcode")

	// ErrInvalidActionFrame is returned when an action's frame number
	// exceeds the animation's declared length.
	ErrInvalidActionFrame = errors.New("seq: invalid action frame")
)
