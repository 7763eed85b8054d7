package debugger

import (
	"fmt"

	termui "github.com/gizak/termui/v3"
	ui "github.com/gizak/termui/v3"
	widgets "github.com/gizak/termui/v3/widgets"

	"github.com/handegar/taplfo/machine"
)

type uiLayout struct {
	terminalWidth  int
	terminalHeight int

	scopeView    *widgets.Plot
	stateView    *widgets.Paragraph
	helpLineView *widgets.Paragraph
}

var layout uiLayout

var boxTitleStyle = termui.NewStyle(termui.ColorRed, termui.ColorBlue)

func initLayout() {
	width, height := termui.TerminalDimensions()
	layout.terminalWidth = width
	layout.terminalHeight = height

	layout.scopeView = widgets.NewPlot()
	layout.scopeView.Title = " CV out "
	layout.scopeView.SetRect(0, 0, width, height-6)
	layout.scopeView.AxesColor = termui.ColorWhite
	layout.scopeView.LineColors = []termui.Color{termui.ColorGreen}
	layout.scopeView.ShowAxes = false
	layout.scopeView.MaxVal = 1.0

	layout.stateView = widgets.NewParagraph()
	layout.stateView.Title = " State "
	layout.stateView.SetRect(0, height-6, width, height-1)

	layout.helpLineView = widgets.NewParagraph()
	layout.helpLineView.Text =
		"[t/Space:](fg:black) Tap [|](fg:white,bg:black) " +
			"[+/-:](fg:black) Turn [|](fg:white,bg:black) " +
			"[m:](fg:black) Mode [|](fg:white,bg:black) " +
			"[r:](fg:black) Reset [|](fg:white,bg:black) " +
			"[s:](fg:black) Sync [|](fg:white,bg:black) " +
			"[ESC/q:](fg:black) Quit"
	layout.helpLineView.Border = false
	layout.helpLineView.TextStyle = boxTitleStyle
	layout.helpLineView.SetRect(0, layout.terminalHeight-1,
		layout.terminalWidth, layout.terminalHeight)
}

func renderScreen(ctl *machine.Controller) {
	updateScopeView(ctl)
	updateStateView(ctl)

	ui.Render(layout.scopeView, layout.stateView, layout.helpLineView)
}

func updateScopeView(ctl *machine.Controller) {
	history := ctl.History()

	// The plot draws one braille column per point; clip the history to
	// what fits inside the pane.
	points := layout.terminalWidth - 2
	if points < 2 {
		points = 2
	}
	if points > len(history) {
		points = len(history)
	}

	layout.scopeView.Data = [][]float64{history[len(history)-points:]}
}

func updateStateView(ctl *machine.Controller) {
	s := ctl.State()

	indicator := "_"
	if s.TempoOut {
		indicator = "#"
	}
	counting := ""
	if s.CountingTempo {
		counting = " [counting...](fg:yellow)"
	}

	layout.stateView.Text = fmt.Sprintf(
		"Tempo: [%dms](fg:green) (effective %dms)%s\n"+
			"Waveform: [%s](fg:green)   Multiplier: [%s](fg:green)   Depth: [%d%%](fg:green)\n"+
			"Adjusting: [%s](fg:cyan)   Align: %d/12   Tempo out: %s   t=%.2fs",
		s.TempoMs, s.EffectiveTempoMs, counting,
		s.Waveform, s.Multiplier, s.DepthRatio,
		s.Mode, s.AlignmentIndex, indicator,
		float64(s.NowMs)/1000.0)
}
