package base

import "testing"

func Test_DerivedTimingConstants(t *testing.T) {
	if SampleRate != 31250 {
		t.Errorf("SampleRate=%d, want 31250", SampleRate)
	}
	if DutyCycleDivisor != 137438 {
		t.Errorf("DutyCycleDivisor=%d, want 137438", DutyCycleDivisor)
	}
}

func Test_WaveformNames(t *testing.T) {
	for w := WaveformSine; w < WaveformCount; w++ {
		name := w.String()
		if name == "unknown" {
			t.Fatalf("waveform %d has no name", w)
		}
		parsed, ok := ParseWaveform(name)
		if !ok || parsed != w {
			t.Errorf("ParseWaveform(%q)=%v,%v, want %v", name, parsed, ok, w)
		}
	}

	if _, ok := ParseWaveform("sawtooth"); ok {
		t.Error("unknown waveform name accepted")
	}
	if got, _ := ParseWaveform("SINE"); got != WaveformSine {
		t.Error("waveform names are not case-insensitive")
	}
	if WaveformCount.String() != "unknown" {
		t.Error("out-of-range waveform did not stringify as unknown")
	}
}

func Test_MultiplierNames(t *testing.T) {
	for m := MultiplierWhole; m < MultiplierCount; m++ {
		name := m.String()
		if name == "unknown" {
			t.Fatalf("multiplier %d has no name", m)
		}
		parsed, ok := ParseMultiplier(name)
		if !ok || parsed != m {
			t.Errorf("ParseMultiplier(%q)=%v,%v, want %v", name, parsed, ok, m)
		}
	}

	if _, ok := ParseMultiplier("fifth"); ok {
		t.Error("unknown multiplier name accepted")
	}
}

func Test_MultiplierTables(t *testing.T) {
	// The ratios must rise monotonically from 1/4 to 4x.
	for m := 1; m < int(MultiplierCount); m++ {
		if MultiplierRatios[m] <= MultiplierRatios[m-1] {
			t.Errorf("ratio[%d]=%v not above ratio[%d]=%v",
				m, MultiplierRatios[m], m-1, MultiplierRatios[m-1])
		}
	}
	if MultiplierRatios[MultiplierQuarter] != 1.0 {
		t.Error("quarter-note ratio is not unity")
	}

	// Every alignment interval must divide the common realignment period.
	for m, a := range MultiplierAlignments {
		if a == 0 || MultiplierAlignmentOffset%int(a) != 0 {
			t.Errorf("alignment[%d]=%d does not divide %d",
				m, a, MultiplierAlignmentOffset)
		}
	}
}
