package messages

// Configuration loading and validation.
const (
	ConfigReadFileFmt           = "failed to read config %s: %w"
	ConfigInvalidFmt            = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt   = "%s: unrecognized config keys: %s"
	ConfigADBPathRequiredFmt    = "%s: adb.path is required"
	ConfigInvalidDurationFmt    = "%s: %s: %w"
	ConfigFieldInvalidFmt       = "%s: %s: %w"
	ConfigStagingDirRequiredFmt = "%s: migrate.staging_dir is required"
	ConfigAuxRootAbsoluteFmt    = "%s: migrate.aux_data_root must be an absolute device path, got %q"
	ConfigNegativeDurationFmt   = "duration %q must not be negative"
)
