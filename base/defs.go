package base

import "strings"

//
// Timing constants for the simulated controller. The original pedal runs
// its MCU at 8MHz and clocks the PWM/DDS tick once every 256 cycles:
// 8MHz / 256 = 31.25kHz.
//

const (
	ClockFrequency     = 8000000
	WaveformResolution = 256
	SampleRate         = ClockFrequency / WaveformResolution

	// One phase-accumulator turn is 2^32; a 1Hz signal therefore needs a
	// per-sample step of 2^32/SampleRate. Integer division, like the
	// original firmware's preprocessor arithmetic.
	DutyCycleDivisor = (1 << 32) / SampleRate
)

//
// Tempo bounds in milliseconds. MinTempo is the slowest rate (0.1Hz) and
// is numerically the largest period; MaxTempo is the fastest (20Hz).
//

const (
	MinTempoMs     = 10000
	MaxTempoMs     = 50
	DefaultTempoMs = 1000

	// How long the mode switch must be held before release resets the
	// current parameter instead of advancing to the next mode.
	ModeResetMinTimeMs = 2000
)

//
// Available waveforms.
//

type Waveform uint8

const (
	WaveformSine Waveform = iota
	WaveformRampUp
	WaveformRampDown
	WaveformTriangle
	WaveformSquare
	WaveformQuadPulse
	WaveformRandom
	WaveformCount // Dummy entry to get the enum count.
)

var waveformNames = [WaveformCount]string{
	"sine", "rampup", "rampdown", "triangle", "square", "quadpulse", "random",
}

func (w Waveform) String() string {
	if w >= WaveformCount {
		return "unknown"
	}
	return waveformNames[w]
}

func ParseWaveform(name string) (Waveform, bool) {
	for i, n := range waveformNames {
		if n == strings.ToLower(name) {
			return Waveform(i), true
		}
	}
	return WaveformSine, false
}

//
// Available tempo multipliers.
//

type Multiplier uint8

const (
	MultiplierWhole Multiplier = iota
	MultiplierDottedHalf
	MultiplierHalf
	MultiplierDottedQuarter
	MultiplierQuarter
	MultiplierDottedEighth
	MultiplierEighth
	MultiplierDottedSixteenth
	MultiplierTriplet
	MultiplierSixteenth
	MultiplierCount // Dummy entry to get the enum count.
)

var multiplierNames = [MultiplierCount]string{
	"whole", "dottedhalf", "half", "dottedquarter", "quarter",
	"dottedeighth", "eighth", "dottedsixteenth", "triplet", "sixteenth",
}

func (m Multiplier) String() string {
	if m >= MultiplierCount {
		return "unknown"
	}
	return multiplierNames[m]
}

func ParseMultiplier(name string) (Multiplier, bool) {
	for i, n := range multiplierNames {
		if n == strings.ToLower(name) {
			return Multiplier(i), true
		}
	}
	return MultiplierQuarter, false
}

//
// The working duty cycle for multiplier[x] is the base duty cycle scaled
// by the corresponding ratio.
//

var MultiplierRatios = [MultiplierCount]float64{
	0.25,     // Whole note.              (1/4) = 0.25 rate
	0.333334, // Dotted half note.        (1/3) = ~0.333334 rate
	0.5,      // Half note.               (1/2) = 0.5 rate
	0.666667, // Dotted quarter note.     (2/3) = ~0.666667 rate
	1.0,      // Quarter note.            (1/1) = 1 rate
	1.333334, // Dotted eighth note.      (4/3) = ~1.333334 rate
	2.0,      // Eighth note.             (2/1) = 2 rate
	2.666667, // Dotted sixteenth note.   (8/3) = ~2.666667 rate
	3.0,      // Triplet note.            (3/1) = 3 rate
	4.0,      // Sixteenth note.          (4/1) = 4 rate
}

var MultiplierAlignments = [MultiplierCount]uint8{
	4, // Whole note.              Matches base tempo at 4/4.
	3, // Dotted half note.        Matches base tempo at 3/4.
	2, // Half note.               Matches base tempo at 2/4.
	3, // Dotted quarter note.     Matches base tempo at 3/4.
	1, // Quarter note.            Base tempo.
	3, // Dotted eighth note.      Matches base tempo at 3/4.
	1, // Eighth note.             Matches base tempo at 1/4.
	3, // Dotted sixteenth note.   Matches base tempo at 3/4.
	2, // Triplet note.            Matches base tempo at 1/4.
	1, // Sixteenth note.          Matches base tempo at 1/4.
}

// Number of base tempo counts between each time all multipliers align.
// Smallest value divisible by every entry in MultiplierAlignments.
const MultiplierAlignmentOffset = 12
