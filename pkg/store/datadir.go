package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootEnv names the environment variable that overrides the store root.
const RootEnv = "LOITER_DIR"

// DefaultRoot returns the store root used when none is given explicitly:
// $LOITER_DIR, else ~/.loiter if it already exists, else the OS data
// directory.
//
//   - macOS:   ~/Library/Application Support/loiter
//   - Linux:   $XDG_DATA_HOME/loiter (fallback ~/.local/share/loiter)
//   - Windows: %LOCALAPPDATA%\loiter (fallback %APPDATA%\loiter)
func DefaultRoot() string {
	if dir := os.Getenv(RootEnv); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	if legacy := filepath.Join(home, ".loiter"); isDir(legacy) {
		return legacy
	}
	return defaultRootForOS(runtime.GOOS, home)
}

func defaultRootForOS(goos, home string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "loiter")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "loiter")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "loiter")
		}
		return filepath.Join(home, "loiter")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "loiter")
		}
		return filepath.Join(home, ".local", "share", "loiter")
	}
}
