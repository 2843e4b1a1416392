// Package engine is a portable sprite engine: it loads one audio file into
// memory and plays sprites as ranges of it, mixing overlapping plays.
package engine

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/faiface/beep"

	"github.com/raff/compatsound/audio"
	"github.com/raff/compatsound/player"
)

const tag = "compatsound/engine"

// Factory creates engines that play on out.
type Factory struct {
	out audio.Output
	log *slog.Logger
}

func New(out audio.Output, log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}

	return &Factory{out: out, log: log.With("tag", tag)}
}

func (f *Factory) Create(opts player.EngineOptions) player.Engine {
	return f.Open(opts)
}

// Open starts loading opts.Src in the background and returns the engine.
func (f *Factory) Open(opts player.EngineOptions) *Engine {
	e := &Engine{
		out:    f.out,
		log:    f.log,
		opts:   opts,
		loaded: make(chan struct{}),
	}

	go e.load()
	return e
}

type Engine struct {
	out    audio.Output
	log    *slog.Logger
	opts   player.EngineOptions
	loaded chan struct{}

	mu       sync.Mutex
	buffer   *beep.Buffer
	queue    []string // plays requested while loading
	active   map[*beep.Ctrl]struct{}
	failed   bool
	unloaded bool
}

// Loaded is closed once loading has finished, successfully or not.
func (e *Engine) Loaded() <-chan struct{} {
	return e.loaded
}

func (e *Engine) load() {
	defer close(e.loaded)

	var errs []error

	for _, src := range e.opts.Src {
		stream, format, err := audio.Decode(src)
		if err != nil {
			e.log.Debug("skip source", "src", src, "err", err)
			errs = append(errs, err)
			continue
		}

		sr := e.out.SampleRate()
		buffer := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
		buffer.Append(audio.Resample(stream, format.SampleRate, sr))

		if err := stream.Err(); err != nil {
			e.log.Debug("skip source", "src", src, "err", err)
			errs = append(errs, err)
			stream.Close()
			continue
		}
		stream.Close()

		e.log.Debug("loaded", "src", src, "length", sr.D(buffer.Len()))
		e.ready(buffer)
		return
	}

	err := errors.Join(errs...)
	if err == nil {
		err = errors.New("no sources")
	}

	e.mu.Lock()
	e.failed = true
	e.queue = nil
	e.mu.Unlock()

	if e.opts.OnLoadError != nil {
		e.opts.OnLoadError(err)
	}
}

func (e *Engine) ready(buffer *beep.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.unloaded {
		return
	}

	e.buffer = buffer

	queue := e.queue
	e.queue = nil

	for _, name := range queue {
		e.play(name)
	}
}

// Play plays the sprite called name. Plays issued while loading are
// queued; unknown sprites are logged and ignored.
func (e *Engine) Play(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.unloaded:
		e.log.Debug("play after unload", "sprite", name)

	case e.failed:
		e.log.Debug("play, but not loaded", "sprite", name)

	case e.buffer == nil:
		e.queue = append(e.queue, name)

	default:
		e.play(name)
	}
}

func (e *Engine) play(name string) {
	sprite, ok := e.opts.Sprites[name]
	if !ok {
		e.log.Warn("no sprite", "sprite", name)
		return
	}

	sr := e.buffer.Format().SampleRate
	from := sr.N(sprite.Start)
	to := from + sr.N(sprite.Duration)

	if to > e.buffer.Len() {
		to = e.buffer.Len()
	}
	if from >= to {
		e.log.Warn("empty sprite", "sprite", name, "start", sprite.Start, "duration", sprite.Duration)
		return
	}

	ctrl := &beep.Ctrl{Streamer: audio.Volume(e.buffer.Streamer(from, to), e.opts.Volume)}

	if e.active == nil {
		e.active = make(map[*beep.Ctrl]struct{})
	}
	e.active[ctrl] = struct{}{}

	e.out.Play(beep.Seq(ctrl, beep.Callback(func() {
		// runs under the output lock
		go e.done(ctrl)
	})))
}

func (e *Engine) done(ctrl *beep.Ctrl) {
	e.mu.Lock()
	delete(e.active, ctrl)
	e.mu.Unlock()
}

// Playing returns the number of sprites currently playing.
func (e *Engine) Playing() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.active)
}

// Unload stops every sprite and drops the loaded audio.
func (e *Engine) Unload() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.unloaded {
		return
	}
	e.unloaded = true

	e.out.Lock()
	for ctrl := range e.active {
		ctrl.Streamer = nil
	}
	e.out.Unlock()

	e.active = nil
	e.buffer = nil
	e.queue = nil
}
