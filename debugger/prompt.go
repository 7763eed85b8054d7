package debugger

import (
	"time"

	"github.com/eiannone/keyboard"
	"github.com/fatih/color"

	"github.com/handegar/taplfo/machine"
)

const tapPromptHelp = "< (t/space) Tap | (+/-) Turn | (m)ode | (r)eset | (s)ync | (q)uit >"

//
// Plain keyboard prompt, for terminals where the termui scope is
// unwanted. The controller keeps running in the background; each
// keystroke maps to a panel action and the resulting state is echoed.
//

func TapPrompt(ctl *machine.Controller) error {
	if err := keyboard.Open(); err != nil {
		return err
	}
	defer keyboard.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(frameMs * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ctl.RenderMs(frameMs)
			}
		}
	}()

	syncLevel := false
	color.Yellow(tapPromptHelp)
	printState(ctl)

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return err
		}

		switch {
		case char == 'q' || key == keyboard.KeyEsc || key == keyboard.KeyCtrlC:
			return nil
		case char == 't' || key == keyboard.KeySpace:
			ctl.Tap()
		case char == '+' || char == '=' || key == keyboard.KeyArrowUp:
			ctl.TurnEncoder(1)
		case char == '-' || key == keyboard.KeyArrowDown:
			ctl.TurnEncoder(-1)
		case char == 'm':
			ctl.NextMode()
		case char == 'r':
			ctl.ResetMode()
		case char == 's':
			syncLevel = !syncLevel
			ctl.Sync(syncLevel)
		default:
			color.Yellow(tapPromptHelp)
			continue
		}

		printState(ctl)
	}
}

func printState(ctl *machine.Controller) {
	s := ctl.State()

	counting := ""
	if s.CountingTempo {
		counting = " (counting)"
	}

	color.Cyan("  tempo=%dms/%dms wave=%s mult=%s depth=%d%% mode=%s%s",
		s.TempoMs, s.EffectiveTempoMs, s.Waveform, s.Multiplier,
		s.DepthRatio, s.Mode, counting)
}
