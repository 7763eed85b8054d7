package reader

import (
	"io"
	"os"

	"github.com/pkg/errors"
	wav "github.com/youpy/go-wav"
)

// Level a click-track sample must cross to count as a sync pulse.
const syncThreshold = 0.5

//
// External-clock extraction. A WAV click track (as produced by a DAW
// metronome or another tap-tempo unit's sync out) is turned into the same
// sync high/low events a hardware clock input would generate: one high
// edge at every threshold crossing upwards, a low edge when the pulse
// falls away again.
//

func ReadSyncWAV(filename string) ([]Event, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := wav.NewReader(file)
	format, err := r.Format()
	if err != nil {
		return nil, errors.Wrapf(err, "reading WAV header of %s", filename)
	}
	if format.SampleRate == 0 {
		return nil, errors.Errorf("%s: WAV header reports zero sample rate", filename)
	}

	var events []Event
	high := false
	sampleNo := 0
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading samples from %s", filename)
		}

		for _, s := range samples {
			level := r.FloatValue(s, 0)
			if level < 0 {
				level = -level
			}

			if !high && level >= syncThreshold {
				high = true
				events = append(events, Event{
					AtMs: sampleNo * 1000 / int(format.SampleRate),
					Kind: EventSyncHigh,
				})
			} else if high && level < syncThreshold {
				high = false
				events = append(events, Event{
					AtMs: sampleNo * 1000 / int(format.SampleRate),
					Kind: EventSyncLow,
				})
			}
			sampleNo++
		}
	}

	return events, nil
}

// MergeEvents combines script and sync events into one time-ordered feed.
func MergeEvents(a, b []Event) []Event {
	merged := make([]Event, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sortEvents(merged)
	return merged
}
