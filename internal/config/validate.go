package config

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/conn-castle/pkgmigrate/internal/messages"
	"github.com/conn-castle/pkgmigrate/internal/migrate"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(source string) error {
	if strings.TrimSpace(c.ADB.Path) == "" {
		return fmt.Errorf(messages.ConfigADBPathRequiredFmt, source)
	}
	if _, err := parseDuration(c.ADB.Timeout); err != nil {
		return fmt.Errorf(messages.ConfigInvalidDurationFmt, source, "adb.timeout", err)
	}
	if _, err := parseDuration(c.Migrate.LockTimeout); err != nil {
		return fmt.Errorf(messages.ConfigInvalidDurationFmt, source, "migrate.lock_timeout", err)
	}
	if _, err := migrate.ParsePolicy(c.Migrate.OnFailure); err != nil {
		return fmt.Errorf(messages.ConfigFieldInvalidFmt, source, "migrate.on_failure", err)
	}
	if strings.TrimSpace(c.Migrate.StagingDir) == "" {
		return fmt.Errorf(messages.ConfigStagingDirRequiredFmt, source)
	}
	if !path.IsAbs(c.Migrate.AuxDataRoot) {
		return fmt.Errorf(messages.ConfigAuxRootAbsoluteFmt, source, c.Migrate.AuxDataRoot)
	}
	return nil
}

// parseDuration accepts an empty string as zero.
func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf(messages.ConfigNegativeDurationFmt, value)
	}
	return d, nil
}
