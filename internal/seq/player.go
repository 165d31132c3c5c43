package seq

import "math"

// timeUnitsPerFrame is the number of "time units" per animation frame;
// Advance accumulates time in these units and Frame converts back down.
const timeUnitsPerFrame = 24

// Player drives a single active animation through time, looping at its
// declared length. Only one animation plays at once: switching Anim
// resets AnimTime.
type Player struct {
	Bank *Bank
	Anim *Animation
	AnimTime float64
}

// NewPlayer starts a player on the given animation.
func NewPlayer(bank *Bank, anim *Animation) *Player {
	return &Player{Bank: bank, Anim: anim}
}

// SetAnimation switches the active animation and resets playback time.
func (p *Player) SetAnimation(anim *Animation) {
	p.Anim = anim
	p.AnimTime = 0
}

// Advance steps playback by dt time units, wrapping at the animation's
// full length.
func (p *Player) Advance(dt float64) {
	if p.Anim == nil {
		return
	}
	p.AnimTime += dt
	span := float64(p.Anim.Length) * timeUnitsPerFrame
	if span > 0 {
		p.AnimTime = math.Mod(p.AnimTime, span)
		if p.AnimTime < 0 {
			p.AnimTime += span
		}
	}
}

// Frame returns the current playback position in frames.
func (p *Player) Frame() float64 {
	return math.Floor(p.AnimTime / timeUnitsPerFrame)
}

// Sample evaluates the active animation's pose at the current frame.
func (p *Player) Sample() (*Pose, error) {
	return SamplePose(p.Anim, p.Bank.Animations, p.Frame())
}
