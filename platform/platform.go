// Package platform probes the running environment for the player.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Probe describes the environment. Detect fills it from the runtime;
// fields can be overridden afterwards (e.g. from configuration).
type Probe struct {
	Hybrid   bool   // running in a native app shell
	Name     string // platform name, as reported by the shell
	Document string // path of the current document
	Media    bool   // native media handles are available
}

func Detect() Probe {
	mobile := IsMobile(runtime.GOOS)

	return Probe{
		Hybrid:   mobile,
		Name:     runtime.GOOS,
		Document: documentPath(),
		Media:    mobile,
	}
}

func documentPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	return filepath.ToSlash(exe)
}

func IsMobile(goos string) bool {
	switch goos {
	case "ios", "android":
		return true

	default:
		return false
	}
}

// HasTerm reports whether a terminal UI can run on goos.
func HasTerm(goos string) bool {
	switch goos {
	case "ios", "android", "js":
		return false

	default:
		return true
	}
}

func (p Probe) HybridContainer() bool { return p.Hybrid }
func (p Probe) Platform() string      { return p.Name }
func (p Probe) DocumentPath() string  { return p.Document }
func (p Probe) NativeMedia() bool     { return p.Media }
