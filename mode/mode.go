package mode

import (
	"github.com/handegar/taplfo/signal"
)

//
// Selection-mode UI. The single rotary encoder adjusts one parameter at a
// time; the mode switch cycles through which one. Holding the mode switch
// resets the current parameter instead (timed by the 1kHz dispatcher).
//

type Mode uint8

const (
	ModeWaveform Mode = iota
	ModeMultiplier
	ModeDepth
	ModeSpeed
	modeCount
)

var modeNames = [modeCount]string{"waveform", "multiplier", "depth", "speed"}

func (m Mode) String() string {
	if m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

type Selector struct {
	current Mode
	gen     *signal.Generator
}

func NewSelector(gen *signal.Generator) *Selector {
	return &Selector{current: ModeWaveform, gen: gen}
}

func (s *Selector) Current() Mode {
	return s.current
}

// SetNextSelectionMode advances to the next parameter, wrapping around.
func (s *Selector) SetNextSelectionMode() {
	s.current = (s.current + 1) % modeCount
}

// ResetCurrentSelectionMode restores the current parameter to its default.
func (s *Selector) ResetCurrentSelectionMode() {
	switch s.current {
	case ModeWaveform:
		s.gen.ResetWaveformSetting()
	case ModeMultiplier:
		s.gen.ResetMultiplierSetting()
	case ModeDepth:
		s.gen.ResetDepthSetting()
	case ModeSpeed:
		s.gen.ResetSpeedAdjustSetting()
	}
}

// ModifyCurrentSelectionMode applies one or more encoder detents to the
// current parameter.
func (s *Selector) ModifyCurrentSelectionMode(changeValue int) {
	switch s.current {
	case ModeWaveform:
		s.gen.SetWaveform(changeValue)
	case ModeMultiplier:
		s.gen.SetMultiplier(changeValue)
	case ModeDepth:
		s.gen.SetDepth(changeValue)
	case ModeSpeed:
		s.gen.AdjustSpeed(changeValue * s.speedStep())
	}
}

// speedStep scales the speed trim by how fast the knob is being turned.
// The trim range spans milliseconds to ten seconds, so single-millisecond
// steps are only useful close to the previous adjustment.
func (s *Selector) speedStep() int {
	idle := s.gen.SpeedAdjustIdleMs()
	if idle < 50 {
		return 25
	} else if idle < 250 {
		return 5
	}
	return 1
}
