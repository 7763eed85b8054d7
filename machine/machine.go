package machine

import (
	"sync"

	"github.com/handegar/taplfo/base"
	"github.com/handegar/taplfo/encoder"
	"github.com/handegar/taplfo/mode"
	"github.com/handegar/taplfo/reader"
	"github.com/handegar/taplfo/signal"
	"github.com/handegar/taplfo/switching"
)

//
// The virtual controller. Everything the hardware does with three nested
// interrupt contexts happens here in one deterministic sample loop: the
// DDS tick runs once per output sample, a millisecond accumulator fires
// the 1kHz dispatcher every SampleRate/1000 samples, and the background
// switch polling runs right after each 1kHz tick. Interactive frontends
// call in from their own goroutines, so every entry point takes the one
// controller mutex -- the Go stand-in for the firmware's ATOMIC_BLOCKs.
//

// Debounced input pins on the shared port image.
const (
	TapIn  uint8 = 1 << 0
	ModeIn uint8 = 1 << 1
)

// Output pins: the tempo indicator and one LED per selection mode.
const (
	TempoOutPin   uint8 = 1 << 0
	WaveformLED   uint8 = 1 << 1
	MultiplierLED uint8 = 1 << 2
	DepthLED      uint8 = 1 << 3
	SpeedLED      uint8 = 1 << 4
)

// How long a scripted tap keeps the switch closed. Long enough for the
// debouncer to accept it, well short of a double tap.
const tapHoldMs = 40

// The scope keeps roughly two seconds of CV history, decimated.
const (
	historyDecimation = 64
	historyLen        = 1024
)

type Config struct {
	TempoMs    int
	Waveform   base.Waveform
	Multiplier base.Multiplier
	DepthRatio int
}

func DefaultConfig() Config {
	return Config{
		TempoMs:    base.DefaultTempoMs,
		Waveform:   base.WaveformSine,
		Multiplier: base.MultiplierQuarter,
		DepthRatio: 100,
	}
}

type Controller struct {
	mu sync.Mutex

	gen   *signal.Generator
	sw    *switching.Debouncer
	enc   *encoder.Decoder
	modes *mode.Selector

	events    []reader.Event
	nextEvent int

	nowMs          int
	msRemainder    int
	sampleCount    uint64
	tapReleaseAtMs int
	syncLevel      bool

	history    [historyLen]float64
	historyPos int
}

func NewController(cfg Config) *Controller {
	c := new(Controller)
	c.gen = signal.NewGenerator()
	c.sw = switching.NewDebouncer()
	c.enc = encoder.NewDecoder()
	c.modes = mode.NewSelector(c.gen)
	c.tapReleaseAtMs = -1

	c.gen.OnDebounce(c.sw.Debounce)
	c.gen.OnModeReset(c.modes.ResetCurrentSelectionMode)

	c.applyConfig(cfg)
	return c
}

// applyConfig walks the panel controls to the requested startup settings,
// going through the same setters the encoder would use.
func (c *Controller) applyConfig(cfg Config) {
	c.gen.SetBaseTempo(cfg.TempoMs)

	for c.gen.Waveform() != cfg.Waveform && cfg.Waveform < base.WaveformCount {
		c.gen.SetWaveform(1)
	}
	for c.gen.Multiplier() != cfg.Multiplier && cfg.Multiplier < base.MultiplierCount {
		if c.gen.Multiplier() < cfg.Multiplier {
			c.gen.SetMultiplier(1)
		} else {
			c.gen.SetMultiplier(-1)
		}
	}
	for c.gen.DepthRatio() > cfg.DepthRatio && cfg.DepthRatio >= 0 {
		c.gen.SetDepth(-1)
	}
}

// Queue appends scheduled input events. Events whose time has already
// passed fire on the next millisecond tick.
func (c *Controller) Queue(events []reader.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, events...)
}

//
// Rendering.
//

// NextSample advances the controller by one sample period and returns the
// PWM compare value.
func (c *Controller) NextSample() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step()
}

// Render produces n samples of CV output.
func (c *Controller) Render(n int) []uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]uint8, n)
	for i := range out {
		out[i] = c.step()
	}
	return out
}

// RenderMs advances the controller by the given number of milliseconds,
// discarding the output. Used by interactive frontends between redraws.
func (c *Controller) RenderMs(ms int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := ms * base.SampleRate / 1000
	for i := 0; i < n; i++ {
		c.step()
	}
}

func (c *Controller) step() uint8 {
	// The 1kHz dispatcher slots in between samples; with a 31.25kHz
	// sample rate that is every 31-32 samples.
	c.msRemainder += 1000
	if c.msRemainder >= base.SampleRate {
		c.msRemainder -= base.SampleRate
		c.tickMillisecond()
	}

	pwm := c.gen.TickSample()

	if c.sampleCount%historyDecimation == 0 {
		c.history[c.historyPos] = float64(pwm) / 255.0
		c.historyPos = (c.historyPos + 1) % historyLen
	}
	c.sampleCount++

	return pwm
}

func (c *Controller) tickMillisecond() {
	c.nowMs++

	// Feed due scripted events into the raw inputs.
	for c.nextEvent < len(c.events) && c.events[c.nextEvent].AtMs <= c.nowMs {
		c.applyEvent(c.events[c.nextEvent])
		c.nextEvent++
	}

	if c.tapReleaseAtMs >= 0 && c.nowMs >= c.tapReleaseAtMs {
		c.sw.SetRaw(TapIn, false)
		c.tapReleaseAtMs = -1
	}

	// Runs the debouncer (via collaborator), tempo counting, mode-reset
	// hold timing and the speed-adjust idle counter.
	c.gen.TickMillisecond()

	c.pollSwitches()
}

// pollSwitches is the background loop: interpret debounced switch edges.
func (c *Controller) pollSwitches() {
	if c.sw.WasClosed(TapIn) {
		c.gen.Tap()
	}

	if c.sw.WasClosed(ModeIn) {
		c.gen.StartModeResetCount()
	}

	if c.sw.WasOpened(ModeIn) {
		// A release after a long hold means the current parameter was
		// already reset; don't also advance the mode.
		if !c.gen.ConsumeModeReset() {
			c.gen.CancelModeResetCount()
			c.modes.SetNextSelectionMode()
		}
	}
}

func (c *Controller) applyEvent(event reader.Event) {
	switch event.Kind {
	case reader.EventTap:
		c.sw.SetRaw(TapIn, true)
		c.tapReleaseAtMs = c.nowMs + tapHoldMs
	case reader.EventModeDown:
		c.sw.SetRaw(ModeIn, true)
	case reader.EventModeUp:
		c.sw.SetRaw(ModeIn, false)
	case reader.EventSyncHigh:
		if !c.syncLevel {
			c.syncLevel = true
			c.gen.SyncEdge(true)
		}
	case reader.EventSyncLow:
		if c.syncLevel {
			c.syncLevel = false
			c.gen.SyncEdge(false)
		}
	case reader.EventTurn:
		c.turn(event.Steps)
	}
}

// turn walks the quadrature decoder through full detent cycles, one per
// requested step.
func (c *Controller) turn(steps int) {
	cw := [4][2]bool{{true, false}, {false, false}, {false, true}, {true, true}}
	ccw := [4][2]bool{{false, true}, {false, false}, {true, false}, {true, true}}

	phases := cw
	count := steps
	if steps < 0 {
		phases = ccw
		count = -steps
	}

	for i := 0; i < count; i++ {
		for _, p := range phases {
			if dir := c.enc.Sample(p[0], p[1]); dir != 0 {
				c.modes.ModifyCurrentSelectionMode(dir)
			}
		}
	}
}

//
// Frontend entry points. UI keys are clean signals, so they go straight to
// the state machine rather than through the debouncer.
//

// Tap feeds one manual tap.
func (c *Controller) Tap() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen.Tap()
}

// TurnEncoder applies encoder detents (positive = clockwise).
func (c *Controller) TurnEncoder(steps int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turn(steps)
}

// NextMode advances the selection mode, as a short mode-switch press does.
func (c *Controller) NextMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modes.SetNextSelectionMode()
}

// ResetMode resets the current parameter, as a long mode-switch hold does.
func (c *Controller) ResetMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modes.ResetCurrentSelectionMode()
}

// Sync drives the external clock input level.
func (c *Controller) Sync(high bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if high != c.syncLevel {
		c.syncLevel = high
		c.gen.SyncEdge(high)
	}
}

//
// Introspection for frontends and tests.
//

type Snapshot struct {
	TempoMs          int
	EffectiveTempoMs int
	Waveform         base.Waveform
	Multiplier       base.Multiplier
	DepthRatio       int
	Mode             mode.Mode
	CountingTempo    bool
	TempoOut         bool
	AlignmentIndex   int
	NowMs            int
	SampleCount      uint64
}

func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		TempoMs:          c.gen.BaseTempo(),
		EffectiveTempoMs: c.gen.EffectiveTempo(),
		Waveform:         c.gen.Waveform(),
		Multiplier:       c.gen.Multiplier(),
		DepthRatio:       c.gen.DepthRatio(),
		Mode:             c.modes.Current(),
		CountingTempo:    c.gen.IsCountingTempo(),
		TempoOut:         c.gen.TempoOut(),
		AlignmentIndex:   c.gen.AlignmentIndex(),
		NowMs:            c.nowMs,
		SampleCount:      c.sampleCount,
	}
}

// OutputPins returns the indicator outputs as a port image: the tempo
// indicator level plus one lit LED for the current selection mode.
func (c *Controller) OutputPins() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var pins uint8
	if c.gen.TempoOut() {
		pins |= TempoOutPin
	}
	switch c.modes.Current() {
	case mode.ModeWaveform:
		pins |= WaveformLED
	case mode.ModeMultiplier:
		pins |= MultiplierLED
	case mode.ModeDepth:
		pins |= DepthLED
	case mode.ModeSpeed:
		pins |= SpeedLED
	}
	return pins
}

// History returns the decimated CV history, oldest first, normalized to
// [0, 1].
func (c *Controller) History() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]float64, historyLen)
	for i := 0; i < historyLen; i++ {
		out[i] = c.history[(c.historyPos+i)%historyLen]
	}
	return out
}

// Generator exposes the underlying DDS core. Only for tests and
// single-goroutine tooling; the controller mutex does not cover it.
func (c *Controller) Generator() *signal.Generator {
	return c.gen
}
