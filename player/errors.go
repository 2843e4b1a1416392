package player

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid player config")

	// ErrUnknownSprite is returned when a sprite name is not in the sprite map.
	ErrUnknownSprite = errors.New("unknown sprite")

	// ErrNoEngine is returned by New when the engine backend is selected but
	// no engine factory was provided.
	ErrNoEngine = errors.New("no audio engine available")
)

type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("%s %s: %s", e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
