// Package config loads a sound configuration file.
//
// A configuration names the audio files, the sprites inside them and,
// optionally, platform overrides:
//
//	urls: [sounds/fx.mp3, sounds/fx.ogg]
//	sprites:
//	  coin: [0, 450]
//	  jump: [500, 300]
//	cordova_sprites:
//	  coin: sounds/coin.mp3
//	volume: 0.8
//	platform:
//	  hybrid: true
//	  name: android
//
// Every key can also be set from the environment (or a .env file) with the
// COMPATSOUND_ prefix, e.g. COMPATSOUND_VOLUME or COMPATSOUND_PLATFORM_NAME.
// Sprite names are case-insensitive and stored in lower case.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/raff/compatsound/platform"
	"github.com/raff/compatsound/player"
)

const EnvPrefix = "COMPATSOUND"

type Config struct {
	URLs           []string             `mapstructure:"urls"`
	Sprites        map[string][]float64 `mapstructure:"sprites"`
	CordovaSprites map[string]string    `mapstructure:"cordova_sprites"`
	Volume         float64              `mapstructure:"volume"`
	Platform       Platform             `mapstructure:"platform"`
}

// Platform overrides the detected environment; unset fields keep the
// detected value.
type Platform struct {
	Hybrid      *bool  `mapstructure:"hybrid"`
	Name        string `mapstructure:"name"`
	Document    string `mapstructure:"document"`
	NativeMedia *bool  `mapstructure:"native_media"`
}

// LoadEnv loads environment files, .env by default. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot load %v: %w", f, err)
		}
	}

	return nil
}

// Load reads the configuration file at path; the format follows the extension.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("volume", 1.0)
	for _, key := range []string{"platform.hybrid", "platform.name", "platform.document", "platform.native_media"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read %v: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("cannot decode %v: %w", path, err)
	}

	return &c, nil
}

// Player converts the file configuration to a player configuration.
func (c *Config) Player() (player.Config, error) {
	pc := player.Config{
		URLs:          c.URLs,
		Sprites:       make(map[string]player.Sprite, len(c.Sprites)),
		NativeSprites: c.CordovaSprites,
		Volume:        c.Volume,
	}

	if c.Volume < 0 || c.Volume > 1 {
		return pc, &player.ConfigError{Field: "volume", Value: fmt.Sprint(c.Volume), Reason: "is not in [0,1]"}
	}

	for name, r := range c.Sprites {
		if len(r) != 2 || r[0] < 0 || r[1] < 0 {
			return pc, &player.ConfigError{
				Field:  "sprites." + name,
				Value:  fmt.Sprint(r),
				Reason: "is not a [start, duration] pair",
			}
		}

		pc.Sprites[name] = player.SpriteFromMillis(r[0], r[1])
	}

	return pc, nil
}

// Probe applies the platform overrides to a detected probe.
func (c *Config) Probe(detected platform.Probe) platform.Probe {
	p := detected

	if c.Platform.Hybrid != nil {
		p.Hybrid = *c.Platform.Hybrid
		p.Media = *c.Platform.Hybrid
	}
	if c.Platform.NativeMedia != nil {
		p.Media = *c.Platform.NativeMedia
	}
	if c.Platform.Name != "" {
		p.Name = c.Platform.Name
	}
	if c.Platform.Document != "" {
		p.Document = c.Platform.Document
	}

	return p
}

// SpriteNames returns the sprite names, sorted.
func (c *Config) SpriteNames() []string {
	seen := map[string]bool{}
	for name := range c.Sprites {
		seen[name] = true
	}
	for name := range c.CordovaSprites {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
