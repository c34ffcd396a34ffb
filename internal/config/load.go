package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/pkgmigrate/internal/messages"
)

// ErrConfigValidation wraps config validation failures (as opposed to TOML
// syntax or filesystem errors). Callers can use errors.Is to tell them apart.
var ErrConfigValidation = errors.New("config validation failed")

// Load reads the config file at path and layers it over Default.
// When path is empty the default location is used and a missing file is not
// an error; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data over Default and validates the result.
// source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, strictErr.String())
		}
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}
