package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgmigrate/internal/adb"
	"github.com/conn-castle/pkgmigrate/internal/config"
	"github.com/conn-castle/pkgmigrate/internal/gateway"
	"github.com/conn-castle/pkgmigrate/internal/messages"
	"github.com/conn-castle/pkgmigrate/internal/progress"
	"github.com/conn-castle/pkgmigrate/internal/prompt"
	"github.com/conn-castle/pkgmigrate/internal/terminal"
)

// deviceClient is everything the commands need from adb.
type deviceClient interface {
	gateway.Gateway
	Binary() string
	Version(ctx context.Context) (string, error)
	Devices(ctx context.Context) ([]adb.DeviceInfo, error)
}

// Test seams.
var (
	loadConfig = config.Load
	newClient  = func(path string, runner adb.Runner) deviceClient {
		return adb.NewClient(path, runner)
	}
	newUI         = func() prompt.UI { return prompt.NewHuhUI() }
	isInteractive = terminal.IsInteractive
)

// app bundles the per-invocation state shared by commands.
type app struct {
	cfg    *config.Config
	client deviceClient
	opts   *rootOptions
	out    io.Writer
	errOut io.Writer
}

// loadApp reads config, applies flag overrides, and builds the adb client.
func loadApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.adbPath != "" {
		cfg.ADB.Path = opts.adbPath
	}

	runner := adb.ExecRunner{Timeout: cfg.ADBTimeout()}
	if opts.verbose {
		runner.Trace = cmd.ErrOrStderr()
	}
	return &app{
		cfg:    cfg,
		client: newClient(cfg.ADB.Path, runner),
		opts:   opts,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

// progress returns the reporter for inventory work, rendered on stderr.
func (a *app) progress() progress.Reporter {
	if a.opts.quiet {
		return progress.Nop{}
	}
	return progress.NewLine(a.errOut, terminal.IsTerminalWriter(a.errOut))
}

// debugf prints only in verbose mode.
func (a *app) debugf(format string, args ...any) {
	if a.opts.verbose {
		_, _ = fmt.Fprintf(a.errOut, format, args...)
	}
}

// resolvePair returns the giving and receiving devices, prompting for any
// that were not given as flags.
func (a *app) resolvePair(ctx context.Context, pair pairOptions) (gateway.Device, gateway.Device, error) {
	from, to := pair.from, pair.to
	if from == "" || to == "" {
		if !isInteractive() {
			return "", "", errors.New(messages.DevicesFlagsRequired)
		}
		devices, err := a.client.Devices(ctx)
		if err != nil {
			return "", "", err
		}
		ui := newUI()
		if from == "" {
			if from, err = selectDevice(ui, messages.PromptSelectGiving, devices, to); err != nil {
				return "", "", err
			}
		}
		if to == "" {
			if to, err = selectDevice(ui, messages.PromptSelectReceiving, devices, from); err != nil {
				return "", "", err
			}
		}
	}
	if from == to {
		return "", "", fmt.Errorf(messages.DevicesSameFmt, from)
	}
	return gateway.Device(from), gateway.Device(to), nil
}

// selectDevice prompts for one ready device other than exclude.
func selectDevice(ui prompt.UI, title string, devices []adb.DeviceInfo, exclude string) (string, error) {
	options := make([]prompt.Option, 0, len(devices))
	for _, d := range devices {
		if !d.Ready() || d.Serial.String() == exclude {
			continue
		}
		options = append(options, prompt.Option{Label: d.Label(), Value: d.Serial.String()})
	}
	if len(options) == 0 {
		return "", errors.New(messages.DevicesNoneReady)
	}
	value := options[0].Value
	if err := ui.Select(title, options, &value); err != nil {
		return "", err
	}
	return value, nil
}
