// Package player plays named sound sprites through whichever audio backend
// the running environment offers.
package player

import (
	"log/slog"
	"strings"
	"time"
)

const tag = "compatsound/Player"

// Sprite is a time range within an audio file.
type Sprite struct {
	Start    time.Duration
	Duration time.Duration
}

// SpriteFromMillis converts a [startMs, durationMs] pair.
func SpriteFromMillis(start, duration float64) Sprite {
	return Sprite{
		Start:    time.Duration(start * float64(time.Millisecond)),
		Duration: time.Duration(duration * float64(time.Millisecond)),
	}
}

type Config struct {
	// URLs are relative audio file paths, in fallback order.
	// URLs[0] must be an mp3 file: it is the one native media plays.
	URLs []string

	// Sprites maps a sprite name to its range in the audio file.
	Sprites map[string]Sprite

	// NativeSprites maps a sprite name to its own audio file.
	// When not nil, native media plays one file per sprite instead of seeking.
	NativeSprites map[string]string

	// Volume in [0,1].
	Volume float64
}

func (c Config) validate() error {
	if len(c.URLs) == 0 {
		return &ConfigError{Field: "urls", Reason: "is empty"}
	}

	if !strings.Contains(c.URLs[0], ".mp3") {
		return &ConfigError{Field: "urls[0]", Value: c.URLs[0], Reason: "is not mp3"}
	}

	return nil
}

// Kind identifies the backend selected by a Player.
type Kind int8

const (
	WebAudioEngine     = Kind(0)
	SeekEmulatedNative = Kind(1)
	PerFileNative      = Kind(2)
)

func (k Kind) String() string {
	switch k {
	case WebAudioEngine:
		return "engine"
	case SeekEmulatedNative:
		return "native-seek"
	case PerFileNative:
		return "native-files"
	}

	return "unknown"
}

// Backend is one playback strategy.
type Backend interface {
	Play(name string) error
	Destroy()
}

// Deps are the collaborators a Player is built from.
type Deps struct {
	Env    Environment
	Media  MediaBridge
	Engine EngineFactory
	Logger *slog.Logger

	// AfterFunc schedules the pause of seek-emulated sprites.
	// Defaults to time.AfterFunc.
	AfterFunc AfterFunc
}

// Select returns the backend New would pick for cfg.
func Select(cfg Config, env Environment, hasMedia bool) Kind {
	native := env != nil && hasMedia && env.HybridContainer() && env.NativeMedia()

	switch {
	case native && cfg.NativeSprites != nil:
		return PerFileNative

	case native:
		return SeekEmulatedNative

	default:
		return WebAudioEngine
	}
}

// Player plays sprites through the backend selected at creation.
// Call Destroy to release the native resources it holds.
type Player struct {
	kind    Kind
	backend Backend
}

func New(cfg Config, deps Deps) (*Player, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.AfterFunc == nil {
		deps.AfterFunc = timeAfterFunc
	}

	log := deps.Logger.With("tag", tag)
	p := &Player{kind: Select(cfg, deps.Env, deps.Media != nil)}

	switch p.kind {
	case PerFileNative:
		log.Debug("use native media, one file per sprite")
		p.backend = newPerFileNative(cfg, deps.Env, deps.Media, log)

	case SeekEmulatedNative:
		log.Debug("use native media with seek")
		p.backend = newSeekEmulatedNative(cfg, deps.Env, deps.Media, deps.AfterFunc, log)

	default:
		if deps.Engine == nil {
			return nil, ErrNoEngine
		}

		log.Debug("use engine")
		p.backend = newEngineBackend(cfg, deps.Engine, log)
	}

	return p, nil
}

func (p *Player) Kind() Kind {
	return p.kind
}

// PlaySprite plays the sprite called name.
// Playback failures are logged; only the seek-emulated native backend
// reports an unknown sprite as an error.
func (p *Player) PlaySprite(name string) error {
	return p.backend.Play(name)
}

// Destroy releases all backend resources. Calling it again is a no-op.
func (p *Player) Destroy() {
	p.backend.Destroy()
}
