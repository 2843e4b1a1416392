// Package audiotest provides an in-memory Output and generated sound files
// for tests.
package audiotest

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Output records played streamers instead of sending them to a device.
type Output struct {
	Rate beep.SampleRate

	lock sync.Mutex // the "speaker" lock

	mu     sync.Mutex
	played []beep.Streamer
}

func NewOutput(sr beep.SampleRate) *Output {
	return &Output{Rate: sr}
}

func (o *Output) SampleRate() beep.SampleRate { return o.Rate }
func (o *Output) Lock()                       { o.lock.Lock() }
func (o *Output) Unlock()                     { o.lock.Unlock() }

func (o *Output) Play(s ...beep.Streamer) {
	o.mu.Lock()
	o.played = append(o.played, s...)
	o.mu.Unlock()
}

// Played returns the streamers played so far.
func (o *Output) Played() []beep.Streamer {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]beep.Streamer(nil), o.played...)
}

// Drain streams s to its end, as the speaker would, and returns the number
// of samples it produced.
func (o *Output) Drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0

	for {
		o.Lock()
		n, ok := s.Stream(buf)
		o.Unlock()

		total += n
		if !ok {
			return total
		}
	}
}

// Step streams up to n samples of s and reports whether s has more.
func (o *Output) Step(s beep.Streamer, n int) bool {
	o.Lock()
	defer o.Unlock()

	_, ok := s.Stream(make([][2]float64, n))
	return ok
}

// WriteSilence writes a stereo WAV file of silence lasting d and returns its path.
func WriteSilence(t *testing.T, dir, name string, sr beep.SampleRate, d time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("cannot create %v: %v", path, err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(sr.N(d)), format); err != nil {
		t.Fatalf("cannot encode %v: %v", path, err)
	}

	return path
}
