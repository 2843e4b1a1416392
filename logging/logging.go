// Package logging sets up the structured logger shared by all components.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// Initialize returns a JSON logger writing to logFile, or to a new
// uuid-named file in the state directory when logFile is empty.
// Without debug and logFile, everything is discarded.
// The returned path is empty when logs are discarded.
func Initialize(debug bool, logFile string) (*slog.Logger, string, error) {
	if os.Getenv("COMPATSOUND_DEBUG") == "1" {
		debug = true
	}

	if !debug && logFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), "", nil
	}

	if logFile == "" {
		dir, err := LogDir()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get log directory: %w", err)
		}

		logFile = filepath.Join(dir, uuid.New().String()+".log")
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	logger.Info("logging initialized", "log_file", logFile)

	return logger, logFile, nil
}

// LogDir returns the OS-specific log directory.
func LogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "compatsound"), nil

	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(local, "compatsound", "logs"), nil

	default:
		state := os.Getenv("XDG_STATE_HOME")
		if state == "" {
			state = filepath.Join(home, ".local", "state")
		}
		return filepath.Join(state, "compatsound"), nil
	}
}
