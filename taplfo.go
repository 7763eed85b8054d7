package main

import (
	"flag"
	"fmt"
	"syscall"

	"github.com/fatih/color"

	"github.com/handegar/taplfo/base"
	"github.com/handegar/taplfo/debugger"
	"github.com/handegar/taplfo/machine"
	"github.com/handegar/taplfo/reader"
	"github.com/handegar/taplfo/settings"
	"github.com/handegar/taplfo/writer"
)

func parseCommandLineParameters() {
	flag.StringVar(&settings.ScriptFilename, "script", settings.ScriptFilename,
		"Input event script (taps, sync edges, encoder turns)")
	flag.StringVar(&settings.SyncWavFilename, "sync", settings.SyncWavFilename,
		"WAV file with an external clock click track")
	flag.StringVar(&settings.OutputWav, "out", settings.OutputWav, "Output wav-file")
	flag.Float64Var(&settings.RenderSeconds, "seconds", settings.RenderSeconds,
		"Seconds of output to render")
	flag.IntVar(&settings.TempoMs, "tempo", settings.TempoMs, "Initial base tempo (ms)")
	flag.StringVar(&settings.WaveformName, "wave", settings.WaveformName,
		"Initial waveform (sine, rampup, rampdown, triangle, square, quadpulse, random)")
	flag.StringVar(&settings.MultiplierName, "mult", settings.MultiplierName,
		"Initial multiplier (whole ... sixteenth)")
	flag.IntVar(&settings.DepthRatio, "depth", settings.DepthRatio, "Initial depth (0-100)")
	flag.BoolVar(&settings.Stream, "stream", settings.Stream,
		"Audition the LFO as tremolo on a sine carrier")
	flag.Float64Var(&settings.CarrierHz, "carrier", settings.CarrierHz,
		"Carrier frequency for -stream")
	flag.BoolVar(&settings.Scope, "scope", settings.Scope, "Interactive termui scope")
	flag.BoolVar(&settings.TapPrompt, "tap", settings.TapPrompt,
		"Interactive keyboard tap prompt")
	flag.BoolVar(&settings.PrintState, "print-state", settings.PrintState,
		"Print the controller state after rendering")
	flag.Parse()
}

func buildController() *machine.Controller {
	cfg := machine.DefaultConfig()
	cfg.TempoMs = settings.TempoMs
	cfg.DepthRatio = settings.DepthRatio

	waveform, ok := base.ParseWaveform(settings.WaveformName)
	if !ok {
		fmt.Printf("Unknown waveform '%s'.\n", settings.WaveformName)
		syscall.Exit(-1)
	}
	cfg.Waveform = waveform

	multiplier, ok := base.ParseMultiplier(settings.MultiplierName)
	if !ok {
		fmt.Printf("Unknown multiplier '%s'.\n", settings.MultiplierName)
		syscall.Exit(-1)
	}
	cfg.Multiplier = multiplier

	return machine.NewController(cfg)
}

func queueInputEvents(ctl *machine.Controller) {
	var events []reader.Event

	if settings.ScriptFilename != "" {
		scripted, err := reader.ReadScript(settings.ScriptFilename)
		if err != nil {
			fmt.Printf("Reading event script failed: %s\n", err)
			syscall.Exit(-1)
		}
		events = scripted
	}

	if settings.SyncWavFilename != "" {
		synced, err := reader.ReadSyncWAV(settings.SyncWavFilename)
		if err != nil {
			fmt.Printf("Reading sync WAV failed: %s\n", err)
			syscall.Exit(-1)
		}
		fmt.Printf("* %d sync edges from '%s'\n", len(synced), settings.SyncWavFilename)
		events = reader.MergeEvents(events, synced)
	}

	ctl.Queue(events)
}

func printFinalState(ctl *machine.Controller) {
	s := ctl.State()
	color.Cyan("* Final state: tempo=%dms (effective %dms), wave=%s, mult=%s, depth=%d%%",
		s.TempoMs, s.EffectiveTempoMs, s.Waveform, s.Multiplier, s.DepthRatio)
}

func main() {
	fmt.Printf("* Tap-tempo LFO v%s\n", settings.Version)
	parseCommandLineParameters()

	ctl := buildController()
	queueInputEvents(ctl)

	if settings.Scope {
		if err := debugger.Run(ctl); err != nil {
			fmt.Printf("Scope failed: %s\n", err)
			syscall.Exit(-1)
		}
		return
	}

	if settings.TapPrompt {
		if err := debugger.TapPrompt(ctl); err != nil {
			fmt.Printf("Tap prompt failed: %s\n", err)
			syscall.Exit(-1)
		}
		return
	}

	if settings.Stream {
		if err := writer.Audition(ctl, settings.RenderSeconds, settings.CarrierHz); err != nil {
			fmt.Printf("Streaming failed: %s\n", err)
			syscall.Exit(-1)
		}
		return
	}

	samples := ctl.Render(int(settings.RenderSeconds * float64(base.SampleRate)))
	if err := writer.SaveAsWAV(settings.OutputWav, samples); err != nil {
		syscall.Exit(-1)
	}

	if settings.PrintState {
		printFinalState(ctl)
	}
}
