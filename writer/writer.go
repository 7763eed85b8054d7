package writer

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/handegar/taplfo/base"
	"github.com/handegar/taplfo/machine"
	"github.com/handegar/taplfo/utils"
)

type CVStreamer struct {
	Data           [][2]float64
	SamplesWritten int
}

func (ws *CVStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := 0; i < len(samples); i++ {
		if ws.SamplesWritten+i >= len(ws.Data) {
			return i, false
		}

		utils.Assert(len(ws.Data[ws.SamplesWritten+i]) == 2, "Index out of bounds")

		samples[i][0] = ws.Data[ws.SamplesWritten+i][0]
		samples[i][1] = ws.Data[ws.SamplesWritten+i][1]
	}

	ws.SamplesWritten += len(samples)
	return len(samples), ws.SamplesWritten < len(ws.Data)
}

func (ws *CVStreamer) Err() error {
	return nil
}

// SaveAsWAV writes the rendered 8-bit CV stream to a WAV file, mapped to
// bipolar full scale.
func SaveAsWAV(filename string, cv []uint8) error {
	fmt.Printf("* Writing to '%s' (%d samples @ %dHz)\n",
		filename, len(cv), base.SampleRate)

	data := make([][2]float64, len(cv))
	for i, v := range cv {
		f := float64(v)/127.5 - 1.0
		data[i][0] = f
		data[i][1] = f
	}

	outWAVFile, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating output file: %s\n", err)
		return err
	}
	defer outWAVFile.Close()

	format := beep.Format{
		SampleRate:  beep.SampleRate(base.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}

	outStream := &CVStreamer{Data: data}
	err = wav.Encode(outWAVFile, outStream, format)
	if err != nil {
		fmt.Printf("Error writing samples: %s\n", err)
		return err
	}

	return nil
}

// Audition plays the LFO through the speaker as tremolo on a sine
// carrier; the raw CV itself sits below hearing range. Drives the
// controller in real time, so taps and turns fed from other goroutines
// are audible immediately.
func Audition(ctl *machine.Controller, seconds float64, carrierHz float64) error {
	sr := beep.SampleRate(base.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return err
	}

	var phase float64
	tremolo := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			cv := float64(ctl.NextSample()) / 255.0
			v := math.Sin(2*math.Pi*phase) * cv * 0.5

			phase += carrierHz / float64(base.SampleRate)
			if phase >= 1.0 {
				phase -= 1.0
			}

			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})

	done := make(chan struct{})
	total := int(seconds * float64(base.SampleRate))
	speaker.Play(beep.Seq(beep.Take(total, tremolo), beep.Callback(func() {
		close(done)
	})))

	<-done
	return nil
}
