// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName names the configuration directory and the log prefix.
	AppName = "teactl"
	// ConfigFileName is the base name of the configuration file.
	ConfigFileName = "config.ini"
)

// dirOverride replaces the platform lookup in ConfigDir when set.
var dirOverride string

// OverrideDir makes ConfigDir return dir until the returned function is called.
// It exists for tests on platforms where os.UserHomeDir ignores $HOME.
func OverrideDir(dir string) (restore func()) {
	prev := dirOverride
	dirOverride = dir
	return func() { dirOverride = prev }
}

// ConfigDir returns the teactl directory under the user's configuration root:
// %APPDATA% on Windows, ~/Library/Application Support on macOS and
// $XDG_CONFIG_HOME (or ~/.config) elsewhere.
//
//nolint:revive // config.Dir would read as a directory of the package itself
func ConfigDir() (string, error) {
	if dirOverride != "" {
		return dirOverride, nil
	}

	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, AppName), nil
}

func configRoot() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming"), nil
	case "darwin":
		return homeJoin("Library", "Application Support")
	default:
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir, nil
		}
		return homeJoin(".config")
	}
}

func homeJoin(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// DefaultConfigPath returns the configuration file inside dir, or inside
// ConfigDir when dir is empty.
func DefaultConfigPath(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, ConfigFileName), nil
}
