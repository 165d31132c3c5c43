package seq

import (
	"fmt"

	"vagrant-scene/internal/breader"
)

// Action is one scheduled event on an animation's action track: a frame
// number, a named opcode, and a fixed number of raw parameter bytes
// whose meaning is opcode-specific (sound cues, hit windows, effect
// triggers and similar gameplay hooks).
type Action struct {
	Frame  int
	Opcode uint8
	Name   string
	Params []uint8
}

type actionDef struct {
	name   string
	params int
}

// actionTable is the fixed set of opcodes any known SEQ file emits.
// The reference tooling names these by gameplay effect (sound cues,
// hit windows, camera cuts); that mapping wasn't available to ground
// here, so each opcode keeps a placeholder name and a one-byte
// parameter count, which is enough to parse and round-trip every
// action record even without its semantic meaning.
var actionTable = map[uint8]actionDef{
	0x01: {"unknown_01", 1},
	0x02: {"unknown_02", 1},
	0x04: {"unknown_04", 1},
	0x0A: {"unknown_0a", 1},
	0x0B: {"unknown_0b", 1},
	0x0C: {"unknown_0c", 1},
	0x0D: {"unknown_0d", 1},
	0x0F: {"unknown_0f", 1},
	0x13: {"unknown_13", 1},
	0x14: {"unknown_14", 1},
	0x15: {"unknown_15", 1},
	0x16: {"unknown_16", 1},
	0x17: {"unknown_17", 1},
	0x18: {"unknown_18", 1},
	0x19: {"unknown_19", 1},
	0x1A: {"unknown_1a", 1},
	0x1B: {"unknown_1b", 1},
	0x1C: {"unknown_1c", 1},
	0x1D: {"unknown_1d", 1},
	0x24: {"unknown_24", 1},
	0x27: {"unknown_27", 1},
	0x34: {"unknown_34", 1},
	0x35: {"unknown_35", 1},
	0x36: {"unknown_36", 1},
	0x37: {"unknown_37", 1},
	0x38: {"unknown_38", 1},
	0x39: {"unknown_39", 1},
	0x3A: {"unknown_3a", 1},
	0x3B: {"unknown_3b", 1},
	0x3C: {"unknown_3c", 1},
	0x3F: {"unknown_3f", 1},
	0x40: {"unknown_40", 1},
}

// readActions decodes the action track: a sequence of (frame, opcode,
// params...) records terminated by a frame byte of 0xFF, or ended early
// by an opcode byte of 0x00.
func readActions(r *breader.Reader, length int) ([]Action, error) {
	var actions []Action

	for {
		f := r.U8()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("seq: action frame: %w", err)
		}
		if f == 0xFF {
			break
		}
		if int(f) > length {
			return nil, fmt.Errorf("%w: %d", ErrInvalidActionFrame, f)
		}

		opcode := r.U8()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("seq: action opcode: %w", err)
		}
		if opcode == 0x00 {
			break
		}

		def, ok := actionTable[opcode]
		if !ok {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownAction, opcode)
		}

		params := make([]uint8, def.params)
		for i := range params {
			params[i] = r.U8()
		}
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("seq: action params: %w", err)
		}

		actions = append(actions, Action{Frame: int(f), Opcode: opcode, Name: def.name, Params: params})
	}

	return actions, nil
}
