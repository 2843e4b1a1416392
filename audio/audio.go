// Package audio holds the beep plumbing shared by the sprite engine and the
// native media bridge: decoding, volume and the speaker output.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// DefaultSampleRate is the rate the speaker runs at; sources are resampled to it.
const DefaultSampleRate = beep.SampleRate(44100)

// Output is where streamers are played.
// Lock must be held while changing a streamer that is being played.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

type speakerOutput struct {
	sr beep.SampleRate
}

// Speaker initializes the speaker on first use and returns it as an Output.
// Later calls return the same output, whatever sample rate they ask for.
func Speaker(sr beep.SampleRate) (Output, error) {
	speakerOnce.Do(func() {
		speakerRate = sr
		speakerErr = speaker.Init(sr, sr.N(time.Second/10))
	})

	if speakerErr != nil {
		return nil, fmt.Errorf("cannot initialize speaker: %w", speakerErr)
	}

	return &speakerOutput{sr: speakerRate}, nil
}

func (o *speakerOutput) SampleRate() beep.SampleRate { return o.sr }
func (o *speakerOutput) Play(s ...beep.Streamer)     { speaker.Play(s...) }
func (o *speakerOutput) Lock()                       { speaker.Lock() }
func (o *speakerOutput) Unlock()                     { speaker.Unlock() }

// Decode opens path and decodes it according to its extension.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".flac":
		s, format, err = flac.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	default:
		err = fmt.Errorf("unsupported format %q", ext)
	}

	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("cannot decode %v: %w", path, err)
	}

	return s, format, nil
}

// Resample converts s from one sample rate to another, if they differ.
func Resample(s beep.Streamer, from, to beep.SampleRate) beep.Streamer {
	if from == to {
		return s
	}

	return beep.Resample(4, from, to, s)
}

// Volume wraps s with a gain for a volume in [0,1].
func Volume(s beep.Streamer, v float64) *effects.Volume {
	vol := &effects.Volume{Streamer: s, Base: 10}
	SetVolume(vol, v)
	return vol
}

// SetVolume sets a linear gain of v, clamped to [0,1].
// A volume of 0 is silent.
func SetVolume(vol *effects.Volume, v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	vol.Silent = v == 0
	if vol.Silent {
		vol.Volume = 0
	} else {
		vol.Volume = math.Log10(v)
	}
}
