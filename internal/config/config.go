// Package config loads the pkgmigrate TOML configuration file.
package config

import (
	"time"

	"github.com/conn-castle/pkgmigrate/internal/adb"
	"github.com/conn-castle/pkgmigrate/internal/migrate"
	"github.com/conn-castle/pkgmigrate/internal/staging"
)

// Config is the parsed configuration file.
type Config struct {
	ADB     ADBConfig     `toml:"adb"`
	Migrate MigrateConfig `toml:"migrate"`
}

// ADBConfig configures the adb gateway.
type ADBConfig struct {
	// Path is the adb executable. Empty means adb on PATH.
	Path string `toml:"path"`
	// Timeout bounds each adb command, as a Go duration string. Empty means no limit.
	Timeout string `toml:"timeout"`
}

// MigrateConfig configures migration runs.
type MigrateConfig struct {
	// OnFailure is "abort" or "continue".
	OnFailure   string `toml:"on_failure"`
	StagingDir  string `toml:"staging_dir"`
	AuxDataRoot string `toml:"aux_data_root"`
	// Confirm prompts before migrating when running on a terminal.
	Confirm     *bool  `toml:"confirm"`
	LockTimeout string `toml:"lock_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	confirm := true
	return &Config{
		ADB: ADBConfig{Path: adb.DefaultBinary},
		Migrate: MigrateConfig{
			OnFailure:   string(migrate.PolicyAbort),
			StagingDir:  staging.DefaultRoot(),
			AuxDataRoot: migrate.DefaultAuxDataRoot,
			Confirm:     &confirm,
			LockTimeout: staging.DefaultLockTimeout.String(),
		},
	}
}

// ADBTimeout returns the parsed per-command timeout. Validate must have passed.
func (c *Config) ADBTimeout() time.Duration {
	d, _ := parseDuration(c.ADB.Timeout)
	return d
}

// LockTimeout returns the parsed device lock timeout. Validate must have passed.
func (c *Config) LockTimeout() time.Duration {
	d, _ := parseDuration(c.Migrate.LockTimeout)
	if d == 0 {
		return staging.DefaultLockTimeout
	}
	return d
}

// Policy returns the parsed failure policy. Validate must have passed.
func (c *Config) Policy() migrate.Policy {
	p, err := migrate.ParsePolicy(c.Migrate.OnFailure)
	if err != nil {
		return migrate.PolicyAbort
	}
	return p
}

// ShouldConfirm reports whether to prompt before migrating.
func (c *Config) ShouldConfirm() bool {
	return c.Migrate.Confirm == nil || *c.Migrate.Confirm
}
