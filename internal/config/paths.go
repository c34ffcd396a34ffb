package config

import (
	"os"
	"path/filepath"
)

var userConfigDir = os.UserConfigDir

// DefaultPath returns <user config dir>/pkgmigrate/config.toml.
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pkgmigrate", "config.toml"), nil
}
