package main

import (
	"log/slog"
	"strings"

	"github.com/raff/compatsound/audio"
	"github.com/raff/compatsound/engine"
	"github.com/raff/compatsound/media"
	"github.com/raff/compatsound/platform"
	"github.com/raff/compatsound/player"
)

func newPlayer(pc player.Config, probe platform.Probe, logger *slog.Logger) (*player.Player, error) {
	out, err := audio.Speaker(audio.DefaultSampleRate)
	if err != nil {
		return nil, err
	}

	return player.New(pc, player.Deps{
		Env:    probe,
		Media:  media.NewBridge(out, logger),
		Engine: engine.New(out, logger),
		Logger: logger,
	})
}

// sprite names are stored in lower case by the configuration loader
func spriteName(name string) string {
	return strings.ToLower(name)
}

// soundboard is shared by the terminal and window UIs.
type soundboard struct {
	player *player.Player
	names  []string
	log    *slog.Logger
}

func (b *soundboard) play(i int) string {
	if i < 0 || i >= len(b.names) {
		return ""
	}

	name := b.names[i]
	if err := b.player.PlaySprite(name); err != nil {
		b.log.Error("play failed", "sprite", name, "err", err)
		return err.Error()
	}

	return name
}

// keyIndex maps the keys 1-9, then a-z, to a sprite index.
func keyIndex(r rune) int {
	switch {
	case r >= '1' && r <= '9':
		return int(r - '1')

	case r >= 'a' && r <= 'z':
		return int(r-'a') + 9

	default:
		return -1
	}
}

func indexKey(i int) rune {
	switch {
	case i < 9:
		return '1' + rune(i)

	case i < 9+26:
		return 'a' + rune(i-9)

	default:
		return ' '
	}
}
