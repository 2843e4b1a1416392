package player

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	desktop = stubEnv{platform: "linux", document: "/home/app/compatsound"}
	android = stubEnv{hybrid: true, media: true, platform: "Android", document: "/app/index.html"}
	ios     = stubEnv{hybrid: true, media: true, platform: "iOS", document: "/app/index.html"}
)

func TestNew_RejectsNonMP3FirstURL(t *testing.T) {
	tests := []struct {
		name string
		urls []string
		env  Environment
	}{
		{"no urls", nil, desktop},
		{"ogg first", []string{"sounds/fx.ogg", "sounds/fx.mp3"}, desktop},
		{"wav only", []string{"sounds/fx.wav"}, android},
		{"no extension", []string{"sounds/fx"}, ios},
		{"upper case extension", []string{"sounds/FX.MP3"}, desktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newMockBridge()
			factory := &mockEngineFactory{}

			p, err := New(Config{
				URLs:          tt.urls,
				Sprites:       map[string]Sprite{"a": SpriteFromMillis(0, 500)},
				NativeSprites: map[string]string{"a": "sounds/a.mp3"},
				Volume:        0.5,
			}, Deps{Env: tt.env, Media: bridge, Engine: factory, Logger: discardLogger()})

			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrConfig))

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))

			// nothing is loaded for an invalid config
			bridge.AssertNotCalled(t, "Create", mock.Anything)
			factory.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestNew_AcceptsMP3WithQuery(t *testing.T) {
	engine := &mockEngine{}
	factory := &mockEngineFactory{}
	factory.On("Create", mock.Anything).Return(engine)

	p, err := New(Config{URLs: []string{"sounds/FX.mp3?v=2"}}, Deps{Env: desktop, Engine: factory, Logger: discardLogger()})

	require.NoError(t, err)
	assert.Equal(t, WebAudioEngine, p.Kind())
}

func TestSelect(t *testing.T) {
	withFiles := Config{URLs: []string{"a.mp3"}, NativeSprites: map[string]string{}}
	withoutFiles := Config{URLs: []string{"a.mp3"}}

	tests := []struct {
		name     string
		cfg      Config
		env      Environment
		hasMedia bool
		want     Kind
	}{
		{"hybrid with sprite files", withFiles, android, true, PerFileNative},
		{"hybrid without sprite files", withoutFiles, android, true, SeekEmulatedNative},
		{"hybrid without media type", withFiles, stubEnv{hybrid: true}, true, WebAudioEngine},
		{"hybrid without bridge", withFiles, ios, false, WebAudioEngine},
		{"not hybrid", withFiles, stubEnv{media: true}, true, WebAudioEngine},
		{"no environment", withFiles, nil, true, WebAudioEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.cfg, tt.env, tt.hasMedia))
		})
	}
}

func TestPerFileNative_PlaysOnlyMatchingHandle(t *testing.T) {
	a, b := newMockMedia(), newMockMedia()
	bridge := newMockBridge()
	bridge.On("Create", "/app/sounds/a.mp3").Return(a).Once()
	bridge.On("Create", "/app/sounds/b.mp3").Return(b).Once()

	p, err := New(Config{
		URLs:          []string{"sounds/all.mp3"},
		NativeSprites: map[string]string{"a": "sounds/a.mp3", "b": "sounds/b.mp3"},
	}, Deps{Env: android, Media: bridge, Logger: discardLogger()})
	require.NoError(t, err)
	require.Equal(t, PerFileNative, p.Kind())
	bridge.AssertExpectations(t)

	require.NoError(t, p.PlaySprite("a"))

	a.AssertNumberOfCalls(t, "Play", 1)
	b.AssertNotCalled(t, "Play")
	a.AssertNotCalled(t, "SeekTo", mock.Anything)
}

func TestPerFileNative_UnknownSpriteIsIgnored(t *testing.T) {
	a := newMockMedia()
	bridge := newMockBridge()
	bridge.On("Create", "sounds/a.mp3").Return(a)

	p, err := New(Config{
		URLs:          []string{"sounds/all.mp3"},
		NativeSprites: map[string]string{"a": "sounds/a.mp3"},
	}, Deps{Env: ios, Media: bridge, Logger: discardLogger()})
	require.NoError(t, err)

	assert.NoError(t, p.PlaySprite("missing"))
	a.AssertNotCalled(t, "Play")
}

func TestPerFileNative_DestroyReleasesEveryHandleOnce(t *testing.T) {
	a, b := newMockMedia(), newMockMedia()
	bridge := newMockBridge()
	bridge.On("Create", "sounds/a.mp3").Return(a)
	bridge.On("Create", "sounds/b.mp3").Return(b)

	p, err := New(Config{
		URLs:          []string{"sounds/all.mp3"},
		NativeSprites: map[string]string{"a": "sounds/a.mp3", "b": "sounds/b.mp3"},
	}, Deps{Env: ios, Media: bridge, Logger: discardLogger()})
	require.NoError(t, err)

	p.Destroy()
	p.Destroy()

	a.AssertNumberOfCalls(t, "Release", 1)
	b.AssertNumberOfCalls(t, "Release", 1)
}

func newSeekPlayer(t *testing.T, env stubEnv) (*Player, *mockMedia, *mockBridge, *fakeTimers) {
	t.Helper()

	m := newMockMedia()
	bridge := newMockBridge()
	bridge.On("Create", mock.Anything).Return(m)
	timers := &fakeTimers{}

	p, err := New(Config{
		URLs: []string{"sounds/all.mp3", "sounds/all.ogg"},
		Sprites: map[string]Sprite{
			"a": SpriteFromMillis(0, 500),
			"b": SpriteFromMillis(1000, 250),
		},
		Volume: 0.7,
	}, Deps{Env: env, Media: bridge, AfterFunc: timers.AfterFunc, Logger: discardLogger()})
	require.NoError(t, err)
	require.Equal(t, SeekEmulatedNative, p.Kind())

	return p, m, bridge, timers
}

func TestSeekEmulatedNative_CreatesOneHandleOnFirstURL(t *testing.T) {
	_, m, bridge, _ := newSeekPlayer(t, android)

	bridge.AssertCalled(t, "Create", "/app/sounds/all.mp3")
	bridge.AssertNumberOfCalls(t, "Create", 1)
	m.AssertCalled(t, "SetVolume", 0.7)
}

func TestSeekEmulatedNative_SeeksThenPausesAfterDuration(t *testing.T) {
	p, m, _, timers := newSeekPlayer(t, ios)

	require.NoError(t, p.PlaySprite("a"))

	m.AssertNumberOfCalls(t, "Play", 1)
	m.AssertCalled(t, "SeekTo", time.Duration(0))
	require.Len(t, timers.timers, 1)
	assert.Equal(t, 500*time.Millisecond, timers.timers[0].d)

	// not before the sprite duration
	m.AssertNotCalled(t, "Pause")

	timers.fire(0)

	m.AssertNumberOfCalls(t, "Pause", 1)
	m.AssertNumberOfCalls(t, "SeekTo", 2)
	m.AssertCalled(t, "SeekTo", time.Duration(0))
}

func TestSeekEmulatedNative_SeeksToSpriteStart(t *testing.T) {
	p, m, _, timers := newSeekPlayer(t, ios)

	require.NoError(t, p.PlaySprite("b"))

	m.AssertCalled(t, "SeekTo", time.Second)
	require.Len(t, timers.timers, 1)
	assert.Equal(t, 250*time.Millisecond, timers.timers[0].d)
}

func TestSeekEmulatedNative_IgnoresPlayWhileRunning(t *testing.T) {
	for _, status := range []Status{MediaStarting, MediaRunning} {
		t.Run(status.String(), func(t *testing.T) {
			p, m, bridge, timers := newSeekPlayer(t, ios)

			require.NoError(t, p.PlaySprite("a"))
			bridge.status("sounds/all.mp3", status)

			require.NoError(t, p.PlaySprite("b"))

			m.AssertNumberOfCalls(t, "Play", 1)
			m.AssertNumberOfCalls(t, "SeekTo", 1)
			assert.Len(t, timers.timers, 1)
			assert.False(t, timers.timers[0].stopped)
		})
	}
}

// The guard only looks at the media status: a sprite still flagged as
// playing does not block a new play once the media reports a pause.
func TestSeekEmulatedNative_GuardIgnoresPlayingFlag(t *testing.T) {
	p, m, bridge, timers := newSeekPlayer(t, ios)

	require.NoError(t, p.PlaySprite("a"))
	bridge.status("sounds/all.mp3", MediaRunning)
	bridge.status("sounds/all.mp3", MediaPaused)

	b := p.backend.(*seekEmulatedNative)
	require.True(t, b.playing)

	require.NoError(t, p.PlaySprite("b"))

	m.AssertNumberOfCalls(t, "Play", 2)
	require.Len(t, timers.timers, 2)
	assert.True(t, timers.timers[0].stopped, "previous pause is cancelled")

	// a cancelled pause that still fires must not cut the new sprite short
	timers.fire(0)
	m.AssertNotCalled(t, "Pause")

	timers.fire(1)
	m.AssertNumberOfCalls(t, "Pause", 1)
	assert.False(t, b.playing)
}

func TestSeekEmulatedNative_UnknownSpriteFails(t *testing.T) {
	p, m, _, timers := newSeekPlayer(t, ios)

	err := p.PlaySprite("missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSprite))
	m.AssertNotCalled(t, "Play")
	assert.Empty(t, timers.timers)
}

func TestSeekEmulatedNative_DestroyCancelsPendingPause(t *testing.T) {
	p, m, _, timers := newSeekPlayer(t, ios)

	require.NoError(t, p.PlaySprite("a"))

	p.Destroy()
	p.Destroy()

	m.AssertNumberOfCalls(t, "Release", 1)
	assert.True(t, timers.timers[0].stopped)

	timers.fire(0)
	m.AssertNotCalled(t, "Pause")

	require.NoError(t, p.PlaySprite("a"))
	m.AssertNumberOfCalls(t, "Play", 1)
}

func TestEngine_DelegatesOverlappingPlays(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Play", "a").Return()

	var opts EngineOptions
	factory := &mockEngineFactory{}
	factory.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		opts = args.Get(0).(EngineOptions)
	}).Return(engine)

	cfg := Config{
		URLs:    []string{"sounds/all.mp3", "sounds/all.ogg"},
		Sprites: map[string]Sprite{"a": SpriteFromMillis(0, 500)},
		Volume:  0.3,
	}

	p, err := New(cfg, Deps{Env: desktop, Media: newMockBridge(), Engine: factory, Logger: discardLogger()})
	require.NoError(t, err)
	require.Equal(t, WebAudioEngine, p.Kind())

	assert.Equal(t, cfg.URLs, opts.Src)
	assert.Equal(t, cfg.Sprites, opts.Sprites)
	assert.Equal(t, 0.3, opts.Volume)
	require.NotNil(t, opts.OnLoadError)
	opts.OnLoadError(errors.New("decode failed")) // logged only

	require.NoError(t, p.PlaySprite("a"))
	require.NoError(t, p.PlaySprite("a"))

	engine.AssertNumberOfCalls(t, "Play", 2)
}

func TestEngine_DestroyUnloadsOnce(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Unload").Return()
	factory := &mockEngineFactory{}
	factory.On("Create", mock.Anything).Return(engine)

	p, err := New(Config{URLs: []string{"a.mp3"}}, Deps{Engine: factory, Logger: discardLogger()})
	require.NoError(t, err)

	p.Destroy()
	p.Destroy()

	engine.AssertNumberOfCalls(t, "Unload", 1)
}

func TestNew_EngineRequired(t *testing.T) {
	_, err := New(Config{URLs: []string{"a.mp3"}}, Deps{Env: desktop, Logger: discardLogger()})

	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestFixURI(t *testing.T) {
	tests := []struct {
		relative string
		platform string
		document string
		want     string
	}{
		{"sounds/a.mp3", "android", "/app/index.html", "/app/sounds/a.mp3"},
		{"sounds/a.mp3", "Android", "/android_asset/www/index.html", "/android_asset/www/sounds/a.mp3"},
		{"sounds/a.mp3", "android", "index.html", "/sounds/a.mp3"},
		{"sounds/a.mp3", "ios", "/app/index.html", "sounds/a.mp3"},
		{"sounds/a.mp3", "", "/app/index.html", "sounds/a.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.platform+" "+tt.document, func(t *testing.T) {
			assert.Equal(t, tt.want, FixURI(tt.relative, tt.platform, tt.document))
		})
	}
}
