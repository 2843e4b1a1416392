package player

import (
	"log/slog"
	"sort"
	"sync"
)

// perFileNative backs every sprite with its own native media handle,
// so no seeking is needed and sprites play independently.
type perFileNative struct {
	log     *slog.Logger
	handles map[string]Media
	release sync.Once
}

func newPerFileNative(cfg Config, env Environment, bridge MediaBridge, log *slog.Logger) *perFileNative {
	b := &perFileNative{
		log:     log,
		handles: make(map[string]Media, len(cfg.NativeSprites)),
	}

	names := make([]string, 0, len(cfg.NativeSprites))
	for name := range cfg.NativeSprites {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		src := FixURI(cfg.NativeSprites[name], env.Platform(), env.DocumentPath())
		log.Info("create sprite", "sprite", name, "src", src)

		b.handles[name] = bridge.Create(src, MediaCallbacks{
			OnSuccess: func() {
				log.Debug("media success", "src", src)
			},
			OnError: func(err error) {
				log.Error("media error", "src", src, "err", err)
			},
		})
	}

	return b
}

func (b *perFileNative) Play(name string) error {
	h, ok := b.handles[name]
	if !ok {
		b.log.Error("no sprite", "sprite", name)
		return nil
	}

	h.Play()
	return nil
}

func (b *perFileNative) Destroy() {
	b.release.Do(func() {
		for _, h := range b.handles {
			h.Release()
		}
	})
}
