package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/handegar/taplfo/base"
)

func Test_CVStreamer(t *testing.T) {
	stream := &CVStreamer{Data: [][2]float64{{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}}}

	buf := make([][2]float64, 2)
	n, ok := stream.Stream(buf)
	if n != 2 || !ok {
		t.Fatalf("first Stream: n=%d ok=%v, want 2 true", n, ok)
	}
	if buf[0][0] != 0.1 || buf[1][0] != 0.2 {
		t.Errorf("unexpected samples: %v", buf)
	}

	n, ok = stream.Stream(buf)
	if n != 1 || ok {
		t.Fatalf("draining Stream: n=%d ok=%v, want 1 false", n, ok)
	}
	if buf[0][0] != 0.3 {
		t.Errorf("unexpected tail sample: %v", buf[0])
	}

	if err := stream.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func Test_SaveAsWAV(t *testing.T) {
	cv := make([]uint8, base.SampleRate/10)
	for i := range cv {
		cv[i] = uint8(i)
	}

	filename := filepath.Join(t.TempDir(), "out.wav")
	if err := SaveAsWAV(filename, cv); err != nil {
		t.Fatalf("SaveAsWAV failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("opening %s: %v", filename, err)
	}
	stream, format, err := wav.Decode(file)
	if err != nil {
		t.Fatalf("decoding %s: %v", filename, err)
	}
	defer stream.Close()

	if format.SampleRate != beep.SampleRate(base.SampleRate) {
		t.Errorf("sample rate %d, want %d", format.SampleRate, base.SampleRate)
	}
	if format.NumChannels != 2 {
		t.Errorf("channels %d, want 2", format.NumChannels)
	}
	if stream.Len() != len(cv) {
		t.Errorf("length %d samples, want %d", stream.Len(), len(cv))
	}

	// CV zero maps to negative full scale, 255 to positive.
	buf := make([][2]float64, 1)
	if n, _ := stream.Stream(buf); n != 1 {
		t.Fatal("could not read back the first sample")
	}
	if buf[0][0] > -0.98 {
		t.Errorf("CV 0 decoded as %v, want about -1.0", buf[0][0])
	}
}

func Test_SaveAsWAVBadPath(t *testing.T) {
	err := SaveAsWAV(filepath.Join(t.TempDir(), "missing", "out.wav"), []uint8{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for an uncreatable file")
	}
}
