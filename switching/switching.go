package switching

//
// Debounce logic for an 8-bit port image, modeled on the vertical-counter
// scheme from Ganssle's debouncing article that the original firmware
// borrowed. A pin counts as closed when it has read low for every sample
// in the history window; the inputs are active-low (pull-ups).
//
// Debounce() is meant to run once per 1kHz tick. Edge queries latch until
// read so the background loop can consume them at its own pace.
//

const debounceChecks = 10

type Debouncer struct {
	raw     uint8 // Current raw port image. Bit set = pin high (open).
	history [debounceChecks]uint8
	index   int

	debounced     uint8
	lastDebounced uint8

	closedEdges uint8 // Latched high->low transitions.
	openedEdges uint8 // Latched low->high transitions.
}

func NewDebouncer() *Debouncer {
	d := new(Debouncer)
	d.raw = 0xff
	d.debounced = 0xff
	d.lastDebounced = 0xff
	for i := range d.history {
		d.history[i] = 0xff
	}
	return d
}

// SetRaw drives the raw level of the pins in mask; closed pulls them low.
func (d *Debouncer) SetRaw(mask uint8, closed bool) {
	if closed {
		d.raw &^= mask
	} else {
		d.raw |= mask
	}
}

// Debounce samples the raw port image into the history window and updates
// the debounced state and the latched edges.
func (d *Debouncer) Debounce() {
	d.history[d.index] = d.raw
	d.index++
	if d.index >= debounceChecks {
		d.index = 0
	}

	// A bit is reported high unless every sample in the window read low.
	state := uint8(0x00)
	for _, h := range d.history {
		state |= h
	}

	d.lastDebounced = d.debounced
	d.debounced = state

	d.closedEdges |= d.lastDebounced &^ d.debounced
	d.openedEdges |= d.debounced &^ d.lastDebounced
}

// WasClosed reports whether any pin in mask went from open to closed since
// the last query, clearing the latch.
func (d *Debouncer) WasClosed(mask uint8) bool {
	if d.closedEdges&mask != 0 {
		d.closedEdges &^= mask
		return true
	}
	return false
}

// WasOpened reports whether any pin in mask went from closed to open since
// the last query, clearing the latch.
func (d *Debouncer) WasOpened(mask uint8) bool {
	if d.openedEdges&mask != 0 {
		d.openedEdges &^= mask
		return true
	}
	return false
}

// IsClosed reports the current debounced state of the pins in mask.
func (d *Debouncer) IsClosed(mask uint8) bool {
	return d.debounced&mask == 0
}
