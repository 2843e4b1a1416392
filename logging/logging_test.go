package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DiscardsWithoutDebug(t *testing.T) {
	t.Setenv("COMPATSOUND_DEBUG", "")

	logger, path, err := Initialize(false, "")
	require.NoError(t, err)

	assert.NotNil(t, logger)
	assert.Empty(t, path)
}

func TestInitialize_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	logger, got, err := Initialize(true, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	logger.Debug("media play", "tag", "compatsound/Player", "sprite", "coin")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sprite":"coin"`)
	assert.Contains(t, string(data), `"tag":"compatsound/Player"`)
}

func TestInitialize_StateDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("LOCALAPPDATA", filepath.Join(home, "local"))

	_, path, err := Initialize(true, "")
	require.NoError(t, err)

	dir, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	_, err = uuid.Parse(strings.TrimSuffix(filepath.Base(path), ".log"))
	assert.NoError(t, err)
}
