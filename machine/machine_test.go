package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handegar/taplfo/base"
	"github.com/handegar/taplfo/mode"
	"github.com/handegar/taplfo/reader"
)

func TestApplyConfig(t *testing.T) {
	ctl := NewController(Config{
		TempoMs:    750,
		Waveform:   base.WaveformSquare,
		Multiplier: base.MultiplierEighth,
		DepthRatio: 50,
	})

	state := ctl.State()
	assert.Equal(t, 750, state.TempoMs)
	assert.Equal(t, base.WaveformSquare, state.Waveform)
	assert.Equal(t, base.MultiplierEighth, state.Multiplier)
	assert.Equal(t, 50, state.DepthRatio)
	assert.Equal(t, mode.ModeWaveform, state.Mode)
}

func TestScriptedTapsSetTempo(t *testing.T) {
	ctl := NewController(DefaultConfig())
	ctl.Queue([]reader.Event{
		{AtMs: 1000, Kind: reader.EventTap},
		{AtMs: 1500, Kind: reader.EventTap},
	})

	ctl.RenderMs(2000)

	// Both taps pass through the same debounce delay, so the measured
	// interval comes out at the scripted 500ms give or take a tick.
	state := ctl.State()
	assert.InDelta(t, 500, state.TempoMs, 2)
	assert.False(t, state.CountingTempo)
}

func TestScriptedSingleTapTimesOut(t *testing.T) {
	ctl := NewController(DefaultConfig())
	ctl.Queue([]reader.Event{{AtMs: 100, Kind: reader.EventTap}})

	ctl.RenderMs(base.MinTempoMs + 1000)

	state := ctl.State()
	assert.False(t, state.CountingTempo)
	assert.Equal(t, base.DefaultTempoMs, state.TempoMs)
}

func TestShortModePressAdvancesMode(t *testing.T) {
	ctl := NewController(DefaultConfig())
	ctl.Queue([]reader.Event{
		{AtMs: 100, Kind: reader.EventModeDown},
		{AtMs: 200, Kind: reader.EventModeUp},
	})

	ctl.RenderMs(500)

	assert.Equal(t, mode.ModeMultiplier, ctl.State().Mode)
}

func TestLongModeHoldResetsParameter(t *testing.T) {
	ctl := NewController(Config{
		TempoMs:    base.DefaultTempoMs,
		Waveform:   base.WaveformTriangle,
		Multiplier: base.MultiplierQuarter,
		DepthRatio: 100,
	})
	require.Equal(t, base.WaveformTriangle, ctl.State().Waveform)

	ctl.Queue([]reader.Event{
		{AtMs: 100, Kind: reader.EventModeDown},
		{AtMs: 100 + base.ModeResetMinTimeMs + 300, Kind: reader.EventModeUp},
	})
	ctl.RenderMs(base.ModeResetMinTimeMs + 1000)

	state := ctl.State()
	assert.Equal(t, base.WaveformSine, state.Waveform, "held mode switch resets the waveform")
	assert.Equal(t, mode.ModeWaveform, state.Mode, "release after a reset must not advance the mode")
}

func TestScriptedTurnsStepParameter(t *testing.T) {
	ctl := NewController(DefaultConfig())
	ctl.Queue([]reader.Event{
		{AtMs: 100, Kind: reader.EventTurn, Steps: 2},
		{AtMs: 200, Kind: reader.EventTurn, Steps: -1},
	})

	ctl.RenderMs(500)

	assert.Equal(t, base.WaveformRampUp, ctl.State().Waveform)
}

func TestSyncPulsesSetTempo(t *testing.T) {
	ctl := NewController(DefaultConfig())
	ctl.Queue([]reader.Event{
		{AtMs: 500, Kind: reader.EventSyncHigh},
		{AtMs: 1000, Kind: reader.EventSyncLow},
		{AtMs: 1400, Kind: reader.EventSyncHigh},
		{AtMs: 1410, Kind: reader.EventSyncLow},
	})

	ctl.RenderMs(2000)

	// The count runs from the falling edge at 1000ms to the rising edge
	// at 1400ms.
	assert.Equal(t, 400, ctl.State().TempoMs)
}

func TestRepeatedSyncLevelIsIgnored(t *testing.T) {
	ctl := NewController(DefaultConfig())
	ctl.Queue([]reader.Event{
		{AtMs: 50, Kind: reader.EventSyncHigh},
		{AtMs: 100, Kind: reader.EventSyncLow},
		{AtMs: 200, Kind: reader.EventSyncLow}, // no edge, must not restart the count
		{AtMs: 400, Kind: reader.EventSyncHigh},
	})

	ctl.RenderMs(1000)

	assert.Equal(t, 300, ctl.State().TempoMs)
}

func TestFrontendTap(t *testing.T) {
	ctl := NewController(DefaultConfig())

	ctl.Tap()
	ctl.RenderMs(500)
	ctl.Tap()

	assert.InDelta(t, 500, ctl.State().TempoMs, 1)
}

func TestFrontendEncoderAndMode(t *testing.T) {
	ctl := NewController(DefaultConfig())

	ctl.TurnEncoder(1)
	assert.Equal(t, base.WaveformRampUp, ctl.State().Waveform)

	ctl.NextMode()
	ctl.TurnEncoder(-1)
	state := ctl.State()
	assert.Equal(t, mode.ModeMultiplier, state.Mode)
	assert.Equal(t, base.MultiplierDottedQuarter, state.Multiplier)

	ctl.ResetMode()
	assert.Equal(t, base.MultiplierQuarter, ctl.State().Multiplier)
}

func TestRenderOutput(t *testing.T) {
	ctl := NewController(DefaultConfig())

	out := ctl.Render(base.SampleRate)
	require.Len(t, out, base.SampleRate)

	// A full-depth sine over one second must span close to the whole CV
	// range.
	min, max := out[0], out[0]
	for _, v := range out {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	assert.LessOrEqual(t, min, uint8(1))
	assert.GreaterOrEqual(t, max, uint8(253))
}

func TestRenderAdvancesClock(t *testing.T) {
	ctl := NewController(DefaultConfig())

	ctl.RenderMs(1236)

	state := ctl.State()
	assert.Equal(t, 1236, state.NowMs)
	assert.Equal(t, uint64(1236*base.SampleRate/1000), state.SampleCount)
}

func TestOutputPins(t *testing.T) {
	ctl := NewController(DefaultConfig())

	assert.Equal(t, WaveformLED, ctl.OutputPins()&^TempoOutPin)

	ctl.NextMode()
	ctl.NextMode()
	assert.Equal(t, DepthLED, ctl.OutputPins()&^TempoOutPin)
}

func TestHistoryIsNormalized(t *testing.T) {
	ctl := NewController(DefaultConfig())
	ctl.RenderMs(3000)

	history := ctl.History()
	require.Len(t, history, historyLen)
	for i, v := range history {
		require.GreaterOrEqualf(t, v, 0.0, "history[%d]", i)
		require.LessOrEqualf(t, v, 1.0, "history[%d]", i)
	}
}
