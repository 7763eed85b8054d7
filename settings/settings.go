package settings

var Version = "0.1"

// Input event script ('-script')
var ScriptFilename = ""

// WAV file with an external clock/sync click track ('-sync')
var SyncWavFilename = ""

// Rendered CV output ('-out')
var OutputWav = "output.wav"

// How many seconds of output to render
var RenderSeconds = 10.0

// Initial panel settings
var TempoMs = 1000
var WaveformName = "sine"
var MultiplierName = "quarter"
var DepthRatio = 100

// Audition the LFO as tremolo on a sine carrier through the speaker?
var Stream = false

// Carrier frequency for the tremolo audition
var CarrierHz = 440.0

// Interactive termui scope
var Scope = false

// Interactive keyboard tap prompt (no TUI)
var TapPrompt = false

// Print the controller state after rendering
var PrintState = false
