// Package adb implements the device command gateway on top of the Android
// Debug Bridge command line tool.
package adb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/conn-castle/pkgmigrate/internal/gateway"
	"github.com/conn-castle/pkgmigrate/internal/messages"
)

// DefaultBinary is the adb executable looked up on PATH.
const DefaultBinary = "adb"

// Settings toggled to relax install-time verification.
const (
	settingVerifyAdbInstalls = "verifier_verify_adb_installs"
	settingPackageVerifier   = "package_verifier_enable"
)

var verificationSettings = []string{settingVerifyAdbInstalls, settingPackageVerifier}

// settingUnset is what `settings get` prints for a key that was never written.
const settingUnset = "null"

var statFunc = os.Stat

// ErrInstallRejected is returned when adb reports a failed install on stdout.
var ErrInstallRejected = errors.New(messages.AdbInstallRejected)

// Client drives adb. It implements gateway.Gateway.
type Client struct {
	binary string
	runner Runner

	mu sync.Mutex
	// saved holds verification values read before they were relaxed, per device.
	saved map[gateway.Device]map[string]string
}

var _ gateway.Gateway = (*Client)(nil)

// NewClient creates a Client for the adb binary at path, using runner to
// execute it. An empty path selects DefaultBinary; a nil runner selects ExecRunner.
func NewClient(path string, runner Runner) *Client {
	if strings.TrimSpace(path) == "" {
		path = DefaultBinary
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{binary: path, runner: runner, saved: map[gateway.Device]map[string]string{}}
}

// Binary returns the adb executable the client runs.
func (c *Client) Binary() string {
	return c.binary
}

func (c *Client) run(ctx context.Context, device gateway.Device, args ...string) (string, error) {
	full := args
	if device != "" {
		full = append([]string{"-s", device.String()}, args...)
	}
	out, err := c.runner.Run(ctx, c.binary, full...)
	return string(out), err
}

func (c *Client) shell(ctx context.Context, device gateway.Device, args ...string) (string, error) {
	return c.run(ctx, device, append([]string{"shell"}, args...)...)
}

// ListPackages implements gateway.Gateway.
func (c *Client) ListPackages(ctx context.Context, device gateway.Device, thirdPartyOnly bool) (string, error) {
	args := []string{"pm", "list", "packages"}
	if thirdPartyOnly {
		args = append(args, "-3")
	}
	return c.shell(ctx, device, args...)
}

// ResolveArtifactPaths implements gateway.Gateway.
func (c *Client) ResolveArtifactPaths(ctx context.Context, packageID string, device gateway.Device) (string, error) {
	return c.shell(ctx, device, "pm", "path", packageID)
}

// PathExists implements gateway.Gateway. The answer is read from stdout so
// adb versions that do not forward the remote exit status still work.
func (c *Client) PathExists(ctx context.Context, device gateway.Device, path string) (bool, error) {
	out, err := c.shell(ctx, device, fmt.Sprintf("if [ -e %s ]; then echo 1; else echo 0; fi", quote(path)))
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(out) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf(messages.AdbUnexpectedOutputFmt, "exists", path, strings.TrimSpace(out))
	}
}

// PathIsEmpty implements gateway.Gateway. A missing path counts as empty.
func (c *Client) PathIsEmpty(ctx context.Context, device gateway.Device, path string) (bool, error) {
	out, err := c.shell(ctx, device, fmt.Sprintf("ls -A %s 2>/dev/null | head -n 1", quote(path)))
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "", nil
}

// PullFile implements gateway.Gateway.
func (c *Client) PullFile(ctx context.Context, device gateway.Device, remotePath string, localPath string) error {
	_, err := c.run(ctx, device, "pull", remotePath, localPath)
	return err
}

// PushFile implements gateway.Gateway. A local directory lands at remotePath
// when its name matches remotePath's base name, even if the parent directory
// does not exist yet on the device.
func (c *Client) PushFile(ctx context.Context, device gateway.Device, localPath string, remotePath string) error {
	if info, err := statFunc(localPath); err == nil && info.IsDir() && filepath.Base(localPath) == path.Base(remotePath) {
		parent := path.Dir(remotePath)
		if _, err := c.shell(ctx, device, "mkdir", "-p", quote(parent)); err != nil {
			return err
		}
		_, err := c.run(ctx, device, "push", localPath, parent)
		return err
	}
	_, err := c.run(ctx, device, "push", localPath, remotePath)
	return err
}

// InstallSingle implements gateway.Gateway. Existing installs are replaced.
func (c *Client) InstallSingle(ctx context.Context, device gateway.Device, localArtifactPath string) error {
	out, err := c.run(ctx, device, "install", "-r", localArtifactPath)
	if err != nil {
		return err
	}
	return checkInstallOutput(out)
}

// InstallMultiple implements gateway.Gateway.
func (c *Client) InstallMultiple(ctx context.Context, device gateway.Device, localArtifactPaths []string) error {
	if len(localArtifactPaths) == 0 {
		return errors.New(messages.AdbNoArtifactsToInstall)
	}
	args := append([]string{"install-multiple", "-r"}, localArtifactPaths...)
	out, err := c.run(ctx, device, args...)
	if err != nil {
		return err
	}
	return checkInstallOutput(out)
}

// SetVerification implements gateway.Gateway.
//
// Disabling records each setting's current value before writing 0 and stops
// at the first failure. Enabling writes the recorded values back and attempts
// every setting even when one fails. Settings never recorded are left alone,
// unless nothing was disabled through this client, in which case every
// setting is set to 1.
func (c *Client) SetVerification(ctx context.Context, device gateway.Device, enabled bool) error {
	if enabled {
		return c.restoreVerification(ctx, device)
	}
	c.mu.Lock()
	if _, ok := c.saved[device]; !ok {
		c.saved[device] = map[string]string{}
	}
	c.mu.Unlock()

	for _, key := range verificationSettings {
		out, err := c.shell(ctx, device, "settings", "get", "global", key)
		if err != nil {
			return err
		}
		c.remember(device, key, strings.TrimSpace(out))
		if _, err := c.shell(ctx, device, "settings", "put", "global", key, "0"); err != nil {
			return err
		}
	}
	return nil
}

// remember keeps the first value seen for key so a repeated disable never
// records the relaxed value.
func (c *Client) remember(device gateway.Device, key string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.saved[device][key]; !ok {
		c.saved[device][key] = value
	}
}

func (c *Client) restoreVerification(ctx context.Context, device gateway.Device) error {
	c.mu.Lock()
	values, recorded := c.saved[device]
	pending := map[string]string{}
	for _, key := range verificationSettings {
		if !recorded {
			pending[key] = "1"
		} else if v, ok := values[key]; ok {
			pending[key] = v
		}
	}
	c.mu.Unlock()

	var errs []error
	failed := map[string]string{}
	for _, key := range verificationSettings {
		value, ok := pending[key]
		if !ok {
			continue
		}
		var err error
		if value == settingUnset || value == "" {
			_, err = c.shell(ctx, device, "settings", "delete", "global", key)
		} else {
			_, err = c.shell(ctx, device, "settings", "put", "global", key, value)
		}
		if err != nil {
			errs = append(errs, err)
			failed[key] = value
		}
	}

	c.mu.Lock()
	if len(failed) == 0 {
		delete(c.saved, device)
	} else if recorded {
		c.saved[device] = failed
	}
	c.mu.Unlock()
	return errors.Join(errs...)
}

// Version returns the first line of `adb version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "", "version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line), nil
}

// checkInstallOutput catches installs that exit zero but print a failure.
func checkInstallOutput(out string) error {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Failure") {
			return fmt.Errorf("%w: %s", ErrInstallRejected, line)
		}
	}
	return nil
}

// quote wraps s in single quotes for the device shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
