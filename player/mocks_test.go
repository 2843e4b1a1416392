package player

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubEnv struct {
	hybrid   bool
	platform string
	document string
	media    bool
}

func (e stubEnv) HybridContainer() bool { return e.hybrid }
func (e stubEnv) Platform() string      { return e.platform }
func (e stubEnv) DocumentPath() string  { return e.document }
func (e stubEnv) NativeMedia() bool     { return e.media }

type mockMedia struct {
	mock.Mock
}

func newMockMedia() *mockMedia {
	m := &mockMedia{}
	m.On("Play").Return().Maybe()
	m.On("SeekTo", mock.Anything).Return().Maybe()
	m.On("Pause").Return().Maybe()
	m.On("Release").Return().Maybe()
	m.On("SetVolume", mock.Anything).Return().Maybe()
	return m
}

func (m *mockMedia) Play()                   { m.Called() }
func (m *mockMedia) SeekTo(pos time.Duration) { m.Called(pos) }
func (m *mockMedia) Pause()                  { m.Called() }
func (m *mockMedia) Release()                { m.Called() }
func (m *mockMedia) SetVolume(v float64)     { m.Called(v) }

type mockBridge struct {
	mock.Mock

	mu        sync.Mutex
	callbacks map[string]MediaCallbacks
}

func newMockBridge() *mockBridge {
	return &mockBridge{callbacks: map[string]MediaCallbacks{}}
}

func (b *mockBridge) Create(path string, cb MediaCallbacks) Media {
	b.mu.Lock()
	b.callbacks[path] = cb
	b.mu.Unlock()

	args := b.Called(path)
	return args.Get(0).(Media)
}

func (b *mockBridge) status(path string, s Status) {
	b.mu.Lock()
	cb := b.callbacks[path]
	b.mu.Unlock()

	cb.OnStatus(s)
}

type mockEngine struct {
	mock.Mock
}

func (e *mockEngine) Play(name string) { e.Called(name) }
func (e *mockEngine) Unload()          { e.Called() }

type mockEngineFactory struct {
	mock.Mock
}

func (f *mockEngineFactory) Create(opts EngineOptions) Engine {
	args := f.Called(opts)
	return args.Get(0).(Engine)
}

// fakeTimers records scheduled actions; they only run when fired.
type fakeTimers struct {
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped
	t.stopped = true
	return active
}

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

// fire runs the i-th timer whether or not it was stopped.
func (ft *fakeTimers) fire(i int) {
	ft.timers[i].f()
}
