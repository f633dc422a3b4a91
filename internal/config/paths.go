package config

import (
	"os"
	"path/filepath"
	"strings"
)

// executableDir returns the directory of the running binary, falling back to
// the working directory.
func executableDir() string {
	if exe, err := os.Executable(); err == nil && exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// ResolveRuntimePath makes a relative runtime path absolute against the binary's
// directory. An empty path stays empty so callers can apply their own default.
func ResolveRuntimePath(raw string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		return ""
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(executableDir(), target))
}
