// Package media implements native media handles on top of beep: one handle
// per file, driven with play, seek and pause, reporting status changes
// through asynchronous callbacks.
package media

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"

	"github.com/raff/compatsound/audio"
	"github.com/raff/compatsound/player"
)

const tag = "compatsound/media"

// Bridge creates media handles that play on out.
type Bridge struct {
	out audio.Output
	log *slog.Logger
}

func NewBridge(out audio.Output, log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}

	return &Bridge{out: out, log: log.With("tag", tag)}
}

// Create returns a handle for path and starts loading it in the background.
func (b *Bridge) Create(path string, cb player.MediaCallbacks) player.Media {
	return b.Open(path, cb)
}

func (b *Bridge) Open(path string, cb player.MediaCallbacks) *Media {
	m := &Media{
		out:    b.out,
		log:    b.log.With("src", path),
		path:   path,
		cb:     cb,
		events: newNotifier(),
		volume: 1,
		loaded: make(chan struct{}),
	}

	go m.load()
	return m
}

// Media is a handle on one audio file.
// Calls made before the file is loaded are applied once it is.
type Media struct {
	out    audio.Output
	log    *slog.Logger
	path   string
	cb     player.MediaCallbacks
	events *notifier
	loaded chan struct{}

	mu       sync.Mutex
	stream   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl // nil when not attached to the output
	drained  bool       // ctrl reached the end; guarded by the output lock
	vol      *effects.Volume
	volume   float64
	status   player.Status
	released bool
	failed   bool

	// deferred until loaded
	playOnLoad bool
	seekOnLoad *time.Duration
}

// Loaded is closed once loading has finished, successfully or not.
func (m *Media) Loaded() <-chan struct{} {
	return m.loaded
}

func (m *Media) load() {
	defer close(m.loaded)

	stream, format, err := audio.Decode(m.path)
	if err != nil {
		m.log.Error("media load error", "err", err)

		m.mu.Lock()
		m.failed = true
		m.playOnLoad = false
		if !m.released {
			// undo a Starting reported by an early Play
			m.setStatus(player.MediaNone)
			m.events.post(func() { m.onError(err) })
		}
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		stream.Close()
		return
	}

	m.stream = stream
	m.format = format
	m.log.Debug("media loaded", "length", format.SampleRate.D(stream.Len()))

	if m.seekOnLoad != nil {
		m.seek(*m.seekOnLoad)
		m.seekOnLoad = nil
	}

	if m.playOnLoad {
		m.playOnLoad = false
		m.start()
	}
}

func (m *Media) onError(err error) {
	if m.cb.OnError != nil {
		m.cb.OnError(err)
	}
}

// setStatus must be called with mu held.
func (m *Media) setStatus(s player.Status) {
	if m.status == s {
		return
	}

	m.status = s
	if m.cb.OnStatus != nil {
		onStatus := m.cb.OnStatus
		m.events.post(func() { onStatus(s) })
	}
}

func (m *Media) Status() player.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

// Play starts or resumes playback from the current position.
func (m *Media) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return
	}

	if m.failed {
		m.log.Debug("media play, but not loaded")
		return
	}

	if m.stream == nil {
		m.playOnLoad = true
		m.setStatus(player.MediaStarting)
		return
	}

	m.start()
}

func (m *Media) start() {
	if m.ctrl != nil {
		m.out.Lock()
		drained := m.drained
		if !drained {
			m.ctrl.Paused = false
		}
		m.out.Unlock()

		// the end was reached but ended has not run yet
		if drained {
			m.finish()
		}
	}

	m.setStatus(player.MediaStarting)

	if m.ctrl == nil {
		s := audio.Resample(m.stream, m.format.SampleRate, m.out.SampleRate())
		m.vol = audio.Volume(s, m.volume)

		ctrl := &beep.Ctrl{}
		ctrl.Streamer = beep.Seq(m.vol, beep.Callback(func() {
			// runs under the output lock
			m.drained = true
			go m.ended(ctrl)
		}))

		m.out.Lock()
		m.drained = false
		m.out.Unlock()

		m.ctrl = ctrl
		m.out.Play(ctrl)
	}

	m.setStatus(player.MediaRunning)
}

func (m *Media) ended(ctrl *beep.Ctrl) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released || m.ctrl != ctrl {
		return
	}

	m.finish()
}

// finish detaches the drained ctrl, rewinds and reports the end.
// It must be called with mu held.
func (m *Media) finish() {
	m.ctrl = nil
	m.seek(0)
	m.setStatus(player.MediaStopped)

	if m.cb.OnSuccess != nil {
		m.events.post(m.cb.OnSuccess)
	}
}

// SeekTo moves the play position to pos.
func (m *Media) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return
	}

	if m.stream == nil {
		m.seekOnLoad = &pos
		return
	}

	m.seek(pos)
}

func (m *Media) seek(pos time.Duration) {
	n := m.format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if l := m.stream.Len(); n > l {
		n = l
	}

	m.out.Lock()
	err := m.stream.Seek(n)
	m.out.Unlock()

	if err != nil {
		err = fmt.Errorf("cannot seek to %v: %w", pos, err)
		m.log.Warn("media seek error", "err", err)
		m.events.post(func() { m.onError(err) })
	}
}

func (m *Media) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return
	}

	if m.stream == nil {
		m.playOnLoad = false
	} else if m.ctrl != nil {
		m.out.Lock()
		m.ctrl.Paused = true
		m.out.Unlock()
	}

	m.setStatus(player.MediaPaused)
}

func (m *Media) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume = v
	if m.vol != nil {
		m.out.Lock()
		audio.SetVolume(m.vol, v)
		m.out.Unlock()
	}
}

// Release stops playback and frees the decoded stream.
// The handle is unusable afterwards.
func (m *Media) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return
	}
	m.released = true

	if m.ctrl != nil {
		m.out.Lock()
		m.ctrl.Streamer = nil
		m.out.Unlock()
		m.ctrl = nil
	}

	if m.stream != nil {
		if err := m.stream.Close(); err != nil {
			m.log.Warn("media release error", "err", err)
		}
		m.stream = nil
	}

	m.setStatus(player.MediaStopped)
	m.events.stop()
}
