package player

import "time"

// Environment reports what the running platform can offer.
type Environment interface {
	// HybridContainer is true when running inside a native app shell.
	HybridContainer() bool

	// Platform is the platform name reported by the container ("android", "ios", ...).
	Platform() string

	// DocumentPath is the path of the currently loaded document (or executable).
	DocumentPath() string

	// NativeMedia is true when native media handles can be created.
	NativeMedia() bool
}

// Status is a native media status code.
type Status int

const (
	MediaNone     = Status(0)
	MediaStarting = Status(1)
	MediaRunning  = Status(2)
	MediaPaused   = Status(3)
	MediaStopped  = Status(4)
)

func (s Status) String() string {
	switch s {
	case MediaNone:
		return "none"
	case MediaStarting:
		return "starting"
	case MediaRunning:
		return "running"
	case MediaPaused:
		return "paused"
	case MediaStopped:
		return "stopped"
	}

	return "unknown"
}

// MediaCallbacks are invoked asynchronously by a native media handle.
// Any of them may be nil.
type MediaCallbacks struct {
	OnSuccess func()
	OnError   func(error)
	OnStatus  func(Status)
}

// Media is a native media handle bound to one audio file.
type Media interface {
	Play()
	SeekTo(pos time.Duration)
	Pause()
	Release()
}

// VolumeSetter is implemented by media handles that support volume control.
type VolumeSetter interface {
	SetVolume(v float64)
}

// MediaBridge creates native media handles.
type MediaBridge interface {
	Create(path string, cb MediaCallbacks) Media
}

type EngineOptions struct {
	Src         []string // ordered sources, for format fallback
	Sprites     map[string]Sprite
	Volume      float64
	OnLoadError func(error)
}

// Engine is a loaded sprite engine; it addresses sprites by name.
type Engine interface {
	Play(name string)
	Unload()
}

type EngineFactory interface {
	Create(opts EngineOptions) Engine
}

// Timer is a pending deferred action.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
