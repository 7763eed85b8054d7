package signal

import "github.com/handegar/taplfo/base"

const (
	randomStepCount = 8
	randomStepSize  = 32 // 8 quantized levels across the table.
)

//
// The DDS sample tick. This is the hot path: one call per PWM sample at
// 31.25kHz, so nothing heavier than the table lookups below belongs here.
//

// TickSample advances both phase accumulators by one sample period and
// returns the new PWM compare value. The top 8 bits of each accumulator
// index the waveform table; the base accumulator tracks the unscaled tempo
// for the indicator and alignment, the working one drives the output.
func (g *Generator) TickSample() uint8 {
	previousBaseIndex := g.baseTableIndex
	g.basePhaseAccumulator += g.baseDutyCycle
	g.baseTableIndex = uint8(g.basePhaseAccumulator >> 24)

	previousTableIndex := g.tableIndex
	g.phaseAccumulator += g.dutyCycle
	g.tableIndex = uint8(g.phaseAccumulator >> 24)

	if g.waveform == base.WaveformRandom {
		// Use whatever is the current random number; it changes once
		// per complete working cycle.
		g.pwm = g.depthTable[g.randomNumber]
	} else {
		g.pwm = g.depthTable[g.tableIndex]
	}

	// A working-index wraparound means one full output cycle: toggle the
	// tempo indicator and pick the next random level.
	if previousTableIndex > g.tableIndex {
		g.tempoOut = !g.tempoOut
		g.updateRandomNumber()
	}

	// A base-index wraparound is a base-cycle boundary; re-align the
	// working waveform there when the current multiplier calls for it.
	if previousBaseIndex > g.baseTableIndex {
		g.AlignWaveform()
	}

	return g.pwm
}

// AlignWaveform runs at every base-cycle boundary. Multipliers re-join the
// base tempo at different intervals; when the modulo-12 alignment counter
// hits the current multiplier's interval the working phase is forced back
// to zero.
func (g *Generator) AlignWaveform() {
	if g.multiplierAlignmentIndex >= base.MultiplierAlignmentOffset {
		g.multiplierAlignmentIndex = 0
	}

	if g.multiplierAlignmentIndex%base.MultiplierAlignments[g.multiplier] == 0 {
		g.phaseAccumulator = 0
	}

	g.multiplierAlignmentIndex++
}

// PWM returns the last emitted PWM compare value.
func (g *Generator) PWM() uint8 {
	return g.pwm
}

// TempoOut returns the level of the tempo indicator output. It toggles
// once per completed output cycle.
func (g *Generator) TempoOut() bool {
	return g.tempoOut
}

// AlignmentIndex returns the modulo-12 base-cycle counter.
func (g *Generator) AlignmentIndex() int {
	return int(g.multiplierAlignmentIndex)
}

func (g *Generator) seedRandomNumberGenerator(seed int64) {
	g.rng.Seed(seed)
}

func (g *Generator) updateRandomNumber() {
	g.randomNumber = uint8(g.rng.Intn(randomStepCount)) * randomStepSize
}
