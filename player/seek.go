package player

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// seekEmulatedNative plays sprites out of a single native media handle:
// seek to the sprite start, then pause and rewind once its duration elapses.
type seekEmulatedNative struct {
	log       *slog.Logger
	sprites   map[string]Sprite
	media     Media
	afterFunc AfterFunc

	// status is written by media callbacks, which may run while mu is held.
	status atomic.Int32

	mu sync.Mutex

	// playing is kept up to date but the play guard only checks status.
	playing bool

	toPause  Timer
	gen      uint64 // invalidates a pause that fires after being replaced
	released bool
}

func newSeekEmulatedNative(cfg Config, env Environment, bridge MediaBridge, afterFunc AfterFunc, log *slog.Logger) *seekEmulatedNative {
	b := &seekEmulatedNative{
		log:       log,
		sprites:   cfg.Sprites,
		afterFunc: afterFunc,
	}

	src := FixURI(cfg.URLs[0], env.Platform(), env.DocumentPath())
	log.Debug("create media", "src", src)

	b.media = bridge.Create(src, MediaCallbacks{
		OnSuccess: func() {
			log.Debug("media play success", "src", src)
		},
		OnError: func(err error) {
			log.Debug("media play error", "src", src, "err", err)
		},
		OnStatus: b.setStatus,
	})

	if v, ok := b.media.(VolumeSetter); ok {
		v.SetVolume(cfg.Volume)
	}

	return b
}

func (b *seekEmulatedNative) setStatus(s Status) {
	b.log.Debug("media play status", "status", s)

	b.status.Store(int32(s))
}

func (b *seekEmulatedNative) Status() Status {
	return Status(b.status.Load())
}

func (b *seekEmulatedNative) Play(name string) error {
	b.log.Debug("media play", "sprite", name)

	sprite, ok := b.sprites[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSprite, name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		b.log.Warn("media play after destroy", "sprite", name)
		return nil
	}

	if s := b.Status(); s == MediaStarting || s == MediaRunning {
		b.log.Debug("media play, but already starting/running", "sprite", name)
		return nil
	}

	if b.toPause != nil {
		b.toPause.Stop()
	}

	b.playing = true
	b.media.Play()
	b.media.SeekTo(sprite.Start)

	b.gen++
	gen := b.gen
	b.toPause = b.afterFunc(sprite.Duration, func() {
		b.pause(name, gen)
	})

	return nil
}

func (b *seekEmulatedNative) pause(name string, gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released || gen != b.gen {
		return
	}

	b.log.Debug("media pause", "sprite", name)
	b.playing = false
	b.toPause = nil
	b.media.Pause()
	b.media.SeekTo(0)
}

func (b *seekEmulatedNative) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	b.released = true

	if b.toPause != nil {
		b.toPause.Stop()
		b.toPause = nil
	}

	b.media.Release()
}
