package signal

import "github.com/handegar/taplfo/base"

//
// Tap-count state machine. A first tap arms the millisecond counter, a
// second one commits the measured interval as the new base tempo. External
// sync pulses drive the same transitions: the falling edge starts a count,
// the rising edge stops it.
//

// Tap handles a debounced closure of the tap switch. The output signal is
// always restarted from phase zero on a manual tap.
func (g *Generator) Tap() {
	if !g.countingTempo {
		g.ResetSignals()
		g.StartTempoCount()
		return
	}

	g.ResetSignals()

	// Just once, use the first measured tap interval to seed the random
	// number generator, so the random waveform differs between sessions.
	// Has to happen before StopTempoCount clears the counter.
	if !g.hasRandomSeed {
		g.hasRandomSeed = true
		g.seedRandomNumberGenerator(int64(g.tempoMsCount))
		g.updateRandomNumber()
	}

	g.StopTempoCount()
	g.receivedTapInput = true
}

// StartTempoCount syncs the LFO output and starts counting milliseconds.
func (g *Generator) StartTempoCount() {
	g.tempoMsCount = 0
	g.countingTempo = true

	g.resetBaseTempo()
	g.AlignWaveform()
}

// StopTempoCount commits the counted interval as the new base tempo and
// leaves the counting state.
func (g *Generator) StopTempoCount() {
	if g.countingTempo {
		g.countingTempo = false

		g.SetBaseTempo(int(g.tempoMsCount))
		g.tempoMsCount = 0
	}

	g.resetBaseTempo()
	g.AlignWaveform()
}

// TempoCountTimeout abandons an in-flight count without changing the tempo.
func (g *Generator) TempoCountTimeout() {
	g.countingTempo = false
	g.tempoMsCount = 0
}

// ResetSignals restarts both waveforms from phase zero.
func (g *Generator) ResetSignals() {
	g.resetBaseTempo()

	g.phaseAccumulator = 0
	g.tableIndex = 0

	g.multiplierAlignmentIndex = 0
}

// SyncEdge feeds an edge from the external clock/sync input. A rising edge
// acts like a closing tap, a falling edge like an opening one.
func (g *Generator) SyncEdge(rising bool) {
	if rising {
		g.StopTempoCount()
	} else {
		g.StartTempoCount()
	}
}

func (g *Generator) IsCountingTempo() bool {
	return g.countingTempo
}

func (g *Generator) HasReceivedTapInput() bool {
	return g.receivedTapInput
}

func (g *Generator) TempoMsCount() int {
	return int(g.tempoMsCount)
}

//
// Mode-reset hold timing. The background loop flags a pressed mode switch;
// the millisecond tick below promotes it to a reset once the hold time is
// reached.
//

// StartModeResetCount begins timing a held mode switch.
func (g *Generator) StartModeResetCount() {
	g.countingModeReset = true
}

// CancelModeResetCount stops timing without resetting anything. Used when
// the switch is released early, i.e. a regular mode change.
func (g *Generator) CancelModeResetCount() {
	g.countingModeReset = false
	g.modeResetMsCount = 0
}

// ConsumeModeReset reports whether the last hold triggered a parameter
// reset, clearing the flag. A release that consumed a reset must not also
// advance the mode.
func (g *Generator) ConsumeModeReset() bool {
	if g.resettingMode {
		g.resettingMode = false
		return true
	}
	return false
}

//
// The 1kHz dispatcher. Everything time-based that is too heavy for the
// sample tick lives here: switch debouncing, tempo counting, mode-reset
// hold timing and the speed-adjust idle measure.
//

// TickMillisecond runs the 1kHz periodic service.
func (g *Generator) TickMillisecond() {
	if g.debounceSwitches != nil {
		g.debounceSwitches()
	}

	// Count tempo, if applicable.
	if g.countingTempo {
		g.tempoMsCount++

		// Don't exceed the maximum tempo length / minimum LFO
		// frequency.
		if g.tempoMsCount > base.MinTempoMs {
			g.TempoCountTimeout()
		}
	}

	// Count mode-reset hold time, if applicable.
	if g.countingModeReset {
		g.modeResetMsCount++

		if g.modeResetMsCount >= base.ModeResetMinTimeMs {
			g.resettingMode = true
			g.countingModeReset = false
			g.modeResetMsCount = 0

			if g.resetCurrentMode != nil {
				g.resetCurrentMode()
			}
		}
	}

	// Keep the speed adjustment idle counter topped up.
	if g.speedAdjustMsCount < 0xffff {
		g.speedAdjustMsCount++
	}
}
