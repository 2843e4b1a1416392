package player

import (
	"log/slog"
	"sync"
)

// engineBackend hands sprite addressing to an engine that supports
// overlapping playback natively.
type engineBackend struct {
	engine Engine
	unload sync.Once
}

func newEngineBackend(cfg Config, factory EngineFactory, log *slog.Logger) *engineBackend {
	return &engineBackend{
		engine: factory.Create(EngineOptions{
			Src:     cfg.URLs,
			Sprites: cfg.Sprites,
			Volume:  cfg.Volume,
			OnLoadError: func(err error) {
				log.Warn("engine load error", "err", err)
			},
		}),
	}
}

func (b *engineBackend) Play(name string) error {
	b.engine.Play(name)
	return nil
}

func (b *engineBackend) Destroy() {
	b.unload.Do(b.engine.Unload)
}
