package encoder

//
// Quadrature decoder for the rotary encoder, table-driven like the ISR in
// the original firmware. The four latest A/B pin states live as bit pairs
// in a small shift register; each valid transition nudges an up/down count
// and a full detent (four transitions) emits one step.
//

var transitionTable = [16]int8{0, -1, 1, 0, 1, 0, 0, -1, -1, 0, 0, 1, 0, 1, -1, 0}

type Decoder struct {
	samples uint8
	value   int8
}

func NewDecoder() *Decoder {
	// Both phases idle high on the detent.
	return &Decoder{samples: 0x03}
}

// Sample feeds the current levels of the two encoder phases and returns
// +1 or -1 when a full detent has been traversed, 0 otherwise.
func (d *Decoder) Sample(a, b bool) int {
	// Make room for the next bit pair, discarding the oldest one.
	d.samples <<= 2
	if a {
		d.samples |= 0x01
	}
	if b {
		d.samples |= 0x02
	}

	d.value += transitionTable[d.samples&0x0f]
	if d.value > 3 {
		d.value = 0
		return 1
	} else if d.value < -3 {
		d.value = 0
		return -1
	}
	return 0
}
