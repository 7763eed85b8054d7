package signal

import "github.com/handegar/taplfo/base"

//
// Quarter-period sine table, 64 samples rising from 0 to 124. The full
// 256-entry cycle is reconstructed by mirroring it four ways, realigned so
// the cycle starts at the lowest peak to match the phase of the other
// waveforms.
//

var quarterSineTable = [base.WaveformResolution / 4]uint8{
	0, 0, 0, 0, 1, 1, 1, 2, 2, 3, 4, 5, 5, 6, 7, 9,
	10, 11, 12, 14, 15, 17, 18, 20, 21, 23, 25, 27, 29, 31, 33, 35,
	37, 40, 42, 44, 47, 49, 52, 54, 57, 59, 62, 65, 67, 70, 73, 76,
	79, 82, 85, 88, 90, 93, 97, 100, 103, 106, 109, 112, 115, 118, 121, 124,
}

// calcDepthTable repopulates the 256-entry output table for the current
// waveform with the depth scaling applied. Called whenever the waveform or
// the depth ratio changes; multiplier and tempo changes don't touch it.
func (g *Generator) calcDepthTable() {
	switch g.waveform {
	case base.WaveformSine:
		g.buildSine()
	case base.WaveformRampUp, base.WaveformRandom:
		// The random waveform reads the ramp-up table at random offsets.
		g.buildRampUp()
	case base.WaveformRampDown:
		g.buildRampDown()
	case base.WaveformTriangle:
		g.buildTriangle()
	case base.WaveformSquare:
		g.buildSquare()
	case base.WaveformQuadPulse:
		g.buildQuadPulse()
	}
}

func (g *Generator) buildSine() {
	// Mirror the quarter table four ways: trough, rising, crest, falling.
	for i := 0; i < base.WaveformResolution/4; i++ {
		g.depthTable[i] = g.calcSignalDepth(quarterSineTable[i])
		g.depthTable[255-i] = g.depthTable[i]
		g.depthTable[127-i] = g.calcSignalDepth(255 - quarterSineTable[i])
		g.depthTable[128+i] = g.depthTable[127-i]
	}
}

//
//   /|  /|
//  / | / |
// /  |/  |
//

func (g *Generator) buildRampUp() {
	for i := 0; i < base.WaveformResolution; i++ {
		g.depthTable[i] = g.calcSignalDepth(uint8(i))
	}
}

//
// \  |\  |
//  \ | \ |
//   \|  \|
//

func (g *Generator) buildRampDown() {
	for i := 0; i < base.WaveformResolution; i++ {
		g.depthTable[i] = g.calcSignalDepth(uint8(0xff - i))
	}
}

//
// \    /\    /
//  \  /  \  /
//   \/    \/
//
// First half: x = 2i, then mirrored.
//

func (g *Generator) buildTriangle() {
	for i := 0; i < base.WaveformResolution/2; i++ {
		g.depthTable[i] = g.calcSignalDepth(uint8(i * 2))
		g.depthTable[255-i] = g.depthTable[i]
	}
}

//
// +-----+     |
// |     |     |
// |     +-----+
//
// The low level is the depth baseline, the high level stays at full scale.
// Entry 0 is seeded first and reused for the whole low half.
//

func (g *Generator) buildSquare() {
	g.depthTable[0] = g.calcSignalDepth(0x00)

	for i := 1; i < base.WaveformResolution; i++ {
		if i < 0x80 {
			g.depthTable[i] = g.depthTable[0]
		} else {
			g.depthTable[i] = 0xff
		}
	}
}

//
// +-+ +-+ +-+ +-+              |
// | | | | | | | |              |
// | +-+ +-+ +-+ +--------------+
//
// Four narrow full-scale pulses in the first half of the cycle, baseline
// in the second. The baseline entry is seeded at the tail end first.
//

func (g *Generator) buildQuadPulse() {
	g.depthTable[0xff] = g.calcSignalDepth(0x00)

	for i := 0; i < base.WaveformResolution; i++ {
		if (i >= 0x00 && i < 0x10) || (i >= 0x20 && i < 0x30) ||
			(i >= 0x40 && i < 0x50) || (i >= 0x60 && i < 0x70) {
			g.depthTable[i] = 0xff
		} else {
			g.depthTable[i] = g.depthTable[0xff]
		}
	}
}

// calcSignalDepth compresses a sample towards the depth baseline. At 100%
// the sample passes through untouched.
func (g *Generator) calcSignalDepth(value uint8) uint8 {
	if g.depthRatio == 100 {
		return value
	}
	return uint8(float64(g.depthOffset) + float64(value)*float64(g.depthRatio)/100.0)
}

// DepthTable returns a copy of the current 256-entry output table.
func (g *Generator) DepthTable() [base.WaveformResolution]uint8 {
	return g.depthTable
}
