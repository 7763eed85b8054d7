package signal

import (
	"math/rand"

	"github.com/handegar/taplfo/base"
)

const tempoToFrequency = 1000.0

//
// Generator is the DDS waveform generator and tempo state of the pedal.
// The original firmware keeps all of this in process-wide volatiles shared
// between ISRs; here it is collected into one owned struct. The methods
// are not safe for concurrent use: callers running the generator from more
// than one goroutine must serialize access (see machine.Controller).
//

type Generator struct {
	rng          *rand.Rand
	randomNumber uint8 // Used with the "random" waveform.

	baseTempo         uint16 // Milliseconds per base cycle.
	tempoAdjustOffset int16  // Signed trim added to the base tempo.

	baseDutyCycle        uint32
	baseTableIndex       uint8
	basePhaseAccumulator uint32
	dutyCycle            uint32 // Working duty cycle, multiplier applied.
	tableIndex           uint8
	phaseAccumulator     uint32

	multiplierAlignmentIndex uint8

	waveform   base.Waveform
	multiplier base.Multiplier

	depthRatio  uint8
	depthOffset uint8
	depthTable  [base.WaveformResolution]uint8

	tempoMsCount       uint16
	modeResetMsCount   uint16
	speedAdjustMsCount uint16

	countingTempo     bool
	receivedTapInput  bool
	hasRandomSeed     bool
	countingModeReset bool
	resettingMode     bool

	pwm      uint8 // Last emitted PWM compare value.
	tempoOut bool  // Tempo indicator / sync-out level.

	// Collaborators driven from the 1kHz tick.
	debounceSwitches func()
	resetCurrentMode func()
}

func NewGenerator() *Generator {
	g := new(Generator)
	g.rng = rand.New(rand.NewSource(0))
	g.updateRandomNumber()
	g.waveform = base.WaveformSine
	g.multiplier = base.MultiplierQuarter
	g.depthRatio = 100
	g.depthOffset = 0
	g.baseTableIndex = 0xff
	g.SetBaseTempo(base.DefaultTempoMs)
	g.calcDepthTable()
	return g
}

// OnDebounce installs the switch-debounce collaborator called once per
// millisecond tick.
func (g *Generator) OnDebounce(fn func()) {
	g.debounceSwitches = fn
}

// OnModeReset installs the collaborator called when the mode switch has
// been held long enough to reset the current parameter.
func (g *Generator) OnModeReset(fn func()) {
	g.resetCurrentMode = fn
}

//
// Tempo model.
//

func (g *Generator) SetBaseTempo(milliseconds int) {
	// Boundary check on the requested period. Only periods corresponding
	// to 0.1Hz - 20Hz are accepted; anything else is rejected silently.
	if milliseconds > base.MinTempoMs || milliseconds < base.MaxTempoMs {
		return
	}

	// No need to recalculate if the new tempo count is just a few
	// milliseconds off (typical when running off an external clock
	// pulse). 2ms +/- eliminates syncing irregularities when clocked
	// from an external tap-tempo chip.
	if int(g.baseTempo) > milliseconds+2 || int(g.baseTempo) < milliseconds-2 {
		g.baseTempo = uint16(milliseconds)
		g.tempoAdjustOffset = 0

		g.recalculateTempo()
	}
}

// BaseTempo returns the committed base tempo in milliseconds, without the
// speed-adjust trim.
func (g *Generator) BaseTempo() int {
	return int(g.baseTempo)
}

// EffectiveTempo returns the base tempo with the speed-adjust trim applied.
func (g *Generator) EffectiveTempo() int {
	return int(g.baseTempo) + int(g.tempoAdjustOffset)
}

func (g *Generator) AdjustSpeed(changeValue int) {
	// Make sure the result doesn't exceed either LFO limit.
	newTempoCount := int(g.baseTempo) + int(g.tempoAdjustOffset) + changeValue
	if newTempoCount > base.MinTempoMs || newTempoCount < base.MaxTempoMs {
		return
	}

	g.tempoAdjustOffset += int16(changeValue)
	g.speedAdjustMsCount = 0
	g.recalculateTempo()
}

func (g *Generator) ResetSpeedAdjustSetting() {
	g.tempoAdjustOffset = 0
	g.recalculateTempo()
}

// SpeedAdjustIdleMs reports how long ago the last speed adjustment was
// made, saturating at 0xffff. The mode collaborator uses this to scale
// encoder steps when the knob is turned quickly.
func (g *Generator) SpeedAdjustIdleMs() int {
	return int(g.speedAdjustMsCount)
}

func (g *Generator) SetMultiplier(changeValue int) {
	var multiplier base.Multiplier

	// Move to the next multiplier in line, either forward or back,
	// stopping at either end (no wrap-around). This, plus the
	// hold-to-reset, makes it easier to find the desired multiplier
	// without a visual indicator.
	if g.multiplier == base.MultiplierWhole && changeValue < 0 {
		multiplier = base.MultiplierWhole
	} else if g.multiplier == base.MultiplierSixteenth && changeValue > 0 {
		multiplier = base.MultiplierSixteenth
	} else {
		multiplier = base.Multiplier(int(g.multiplier) + changeValue)
	}

	if multiplier != g.multiplier {
		g.multiplier = multiplier

		g.recalculateTempo()
		g.adjustPhaseAccumulation()
	}
}

func (g *Generator) ResetMultiplierSetting() {
	if g.multiplier != base.MultiplierQuarter {
		g.multiplier = base.MultiplierQuarter

		g.recalculateTempo()
		g.adjustPhaseAccumulation()
	}
}

func (g *Generator) Multiplier() base.Multiplier {
	return g.multiplier
}

func (g *Generator) SetWaveform(changeValue int) {
	// The waveform selection wraps around at both ends.
	if g.waveform == base.WaveformSine && changeValue < 0 {
		g.waveform = base.WaveformRandom
	} else if g.waveform == base.WaveformRandom && changeValue > 0 {
		g.waveform = base.WaveformSine
	} else {
		g.waveform = base.Waveform(int(g.waveform) + changeValue)
	}

	g.calcDepthTable()
}

func (g *Generator) ResetWaveformSetting() {
	g.waveform = base.WaveformSine
	g.calcDepthTable()
}

func (g *Generator) Waveform() base.Waveform {
	return g.waveform
}

func (g *Generator) SetDepth(changeValue int) {
	updateDepthTable := false
	ratio := int(g.depthRatio)

	// Between 5 and 95 the ratio steps freely; at the endpoints only
	// movement back towards the middle is accepted.
	if ratio >= 5 && ratio <= 95 {
		ratio += changeValue * 5
		updateDepthTable = true
	} else if changeValue > 0 && ratio == 0 {
		ratio += changeValue * 5
		updateDepthTable = true
	} else if changeValue < 0 && ratio == 100 {
		ratio += changeValue * 5
		updateDepthTable = true
	}

	// The physical encoder only ever produces single steps; clamping
	// keeps larger synthetic deltas inside the range as well.
	if ratio < 0 {
		ratio = 0
	} else if ratio > 100 {
		ratio = 100
	}

	g.depthRatio = uint8(ratio)
	g.depthOffset = uint8(255.0 * float64(100-ratio) / 100.0)
	if updateDepthTable {
		g.calcDepthTable()
	}
}

func (g *Generator) ResetDepthSetting() {
	g.depthRatio = 100
	g.depthOffset = 0
	g.calcDepthTable()
}

func (g *Generator) DepthRatio() int {
	return int(g.depthRatio)
}

func (g *Generator) DepthOffset() uint8 {
	return g.depthOffset
}

//
// Internals.
//

func (g *Generator) recalculateTempo() {
	// Convert the tempo from a millisecond count to a frequency, then
	// derive the per-sample phase step from it.
	newFrequency := tempoToFrequency / float64(int(g.baseTempo)+int(g.tempoAdjustOffset))

	g.baseDutyCycle = uint32(newFrequency * base.DutyCycleDivisor)

	// The working duty cycle is the base one scaled by the current
	// multiplier.
	g.dutyCycle = uint32(float64(g.baseDutyCycle) * base.MultiplierRatios[g.multiplier])
}

func (g *Generator) adjustPhaseAccumulation() {
	// When the tempo multiplier changes, the working phase accumulator
	// has to be moved to wherever the new duty cycle would have got had
	// it been running since the last alignment point. This keeps the
	// multiplied output in sync with the base tempo.
	//
	// For multipliers faster than 1:1 the product exceeds 32 bits; the
	// original firmware relies on modular uint32 wraparound there. The
	// product is bounded by 4 * 11 * 2^32 < 2^38, so truncating the
	// float through uint64 reproduces the same low 32 bits.
	product := float64(g.basePhaseAccumulator) *
		base.MultiplierRatios[g.multiplier] * float64(g.multiplierAlignmentIndex)
	g.phaseAccumulator = uint32(uint64(product))
}

func (g *Generator) resetBaseTempo() {
	// Reset phase accumulator and wave table index for the base tempo.
	g.baseTableIndex = 0
	g.basePhaseAccumulator = 0
}
