// Package config loads and validates robux settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AppName names the config directory and env prefix.
const AppName = "robux"

// ExpandPath expands a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// Dir returns $HOME/.config/robux.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ExportFileName is the default export file name for format on day now.
func ExportFileName(format string, now time.Time) string {
	return fmt.Sprintf("roblox_transactions_%s.%s", now.Format("20060102"), format)
}
