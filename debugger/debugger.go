package debugger

import (
	"time"

	ui "github.com/gizak/termui/v3"

	"github.com/handegar/taplfo/machine"
)

// How much simulated time passes between scope redraws.
const frameMs = 50

/*
Interactive termui scope. The controller keeps running in simulated real
time while the scope shows the recent CV output and the panel state;
keystrokes play the part of the foot switch, the mode switch and the
rotary encoder.
*/

func Run(ctl *machine.Controller) error {
	if err := ui.Init(); err != nil {
		return err
	}
	defer ui.Close()

	initLayout()

	syncLevel := false
	events := ui.PollEvents()
	ticker := time.NewTicker(frameMs * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case e := <-events:
			switch e.ID {
			case "q", "<C-c>", "<Escape>":
				return nil
			case "t", "<Space>":
				ctl.Tap()
			case "+", "=", "<Up>", "<Right>":
				ctl.TurnEncoder(1)
			case "-", "<Down>", "<Left>":
				ctl.TurnEncoder(-1)
			case "m":
				ctl.NextMode()
			case "r":
				ctl.ResetMode()
			case "s":
				syncLevel = !syncLevel
				ctl.Sync(syncLevel)
			case "<Resize>":
				initLayout()
			}
			renderScreen(ctl)

		case <-ticker.C:
			ctl.RenderMs(frameMs)
			renderScreen(ctl)
		}
	}
}
