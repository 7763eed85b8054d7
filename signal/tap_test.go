package signal

import (
	"math/rand"
	"testing"

	"github.com/handegar/taplfo/base"
)

func Test_TwoTapsSetTempo(t *testing.T) {
	g := NewGenerator()

	g.Tap()
	if !g.IsCountingTempo() {
		t.Fatal("first tap did not start the tempo count")
	}

	for i := 0; i < 500; i++ {
		g.TickMillisecond()
	}
	g.Tap()

	if g.IsCountingTempo() {
		t.Error("second tap did not stop the tempo count")
	}
	if g.BaseTempo() != 500 {
		t.Errorf("expected base tempo 500, got %d", g.BaseTempo())
	}
	if !g.HasReceivedTapInput() {
		t.Error("tap input not flagged")
	}
}

func Test_TapResetsSignals(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 12345; i++ {
		g.TickSample()
	}

	g.Tap()

	if g.basePhaseAccumulator != 0 || g.phaseAccumulator != 0 {
		t.Errorf("accumulators not reset: base=%#x working=%#x",
			g.basePhaseAccumulator, g.phaseAccumulator)
	}
	if g.AlignmentIndex() != 1 {
		t.Errorf("expected alignment index 1 after restart, got %d",
			g.AlignmentIndex())
	}
}

func Test_TapCountTimeout(t *testing.T) {
	g := NewGenerator()

	g.Tap()
	for i := 0; i <= base.MinTempoMs; i++ {
		g.TickMillisecond()
	}

	if g.IsCountingTempo() {
		t.Error("tempo count still running past the timeout")
	}
	if g.BaseTempo() != base.DefaultTempoMs {
		t.Errorf("timeout changed the tempo to %d", g.BaseTempo())
	}
	if g.HasReceivedTapInput() {
		t.Error("abandoned count flagged as tap input")
	}
}

func Test_SyncEdgesSetTempo(t *testing.T) {
	g := NewGenerator()

	g.SyncEdge(false) // falling edge starts the count
	if !g.IsCountingTempo() {
		t.Fatal("falling sync edge did not start the tempo count")
	}
	for i := 0; i < 400; i++ {
		g.TickMillisecond()
	}
	g.SyncEdge(true) // rising edge stops it

	if g.BaseTempo() != 400 {
		t.Errorf("expected base tempo 400, got %d", g.BaseTempo())
	}
}

func Test_SyncRisingEdgeWithoutCount(t *testing.T) {
	g := NewGenerator()

	// A rising edge with no count in flight just restarts the base phase.
	g.basePhaseAccumulator = 0x12345678
	g.SyncEdge(true)

	if g.BaseTempo() != base.DefaultTempoMs {
		t.Errorf("stray rising edge changed the tempo to %d", g.BaseTempo())
	}
	if g.basePhaseAccumulator != 0 {
		t.Error("stray rising edge did not restart the base phase")
	}
}

func Test_RandomSeededFromFirstTapInterval(t *testing.T) {
	g := NewGenerator()

	g.Tap()
	for i := 0; i < 321; i++ {
		g.TickMillisecond()
	}
	g.Tap()

	if !g.hasRandomSeed {
		t.Fatal("first tap pair did not seed the random generator")
	}

	want := uint8(rand.New(rand.NewSource(321)).Intn(randomStepCount)) * randomStepSize
	if g.randomNumber != want {
		t.Errorf("random level %d, want %d from seed 321", g.randomNumber, want)
	}
}

func Test_ModeResetHold(t *testing.T) {
	g := NewGenerator()
	resets := 0
	g.OnModeReset(func() { resets++ })

	g.StartModeResetCount()
	for i := 0; i < base.ModeResetMinTimeMs; i++ {
		g.TickMillisecond()
	}

	if resets != 1 {
		t.Fatalf("expected 1 reset callback, got %d", resets)
	}
	if !g.ConsumeModeReset() {
		t.Error("reset not latched for the switch release")
	}
	if g.ConsumeModeReset() {
		t.Error("reset latch not cleared after consumption")
	}
}

func Test_ModeResetCancelled(t *testing.T) {
	g := NewGenerator()
	resets := 0
	g.OnModeReset(func() { resets++ })

	g.StartModeResetCount()
	for i := 0; i < base.ModeResetMinTimeMs/2; i++ {
		g.TickMillisecond()
	}
	g.CancelModeResetCount()
	for i := 0; i < base.ModeResetMinTimeMs; i++ {
		g.TickMillisecond()
	}

	if resets != 0 {
		t.Errorf("early release still reset the mode %d times", resets)
	}
	if g.ConsumeModeReset() {
		t.Error("cancelled hold latched a reset")
	}
}

func Test_TickMillisecondRunsDebounce(t *testing.T) {
	g := NewGenerator()
	calls := 0
	g.OnDebounce(func() { calls++ })

	for i := 0; i < 10; i++ {
		g.TickMillisecond()
	}

	if calls != 10 {
		t.Errorf("debounce callback ran %d times over 10 ticks", calls)
	}
}
