// Package gateway defines the device command contract the migration core
// depends on. Implementations own transport, retries, and timeouts.
package gateway

import "context"

// Device addresses a single attached device. The core never interprets it.
type Device string

// String returns the device serial.
func (d Device) String() string {
	return string(d)
}

// PackageMarker prefixes every line of package listing and path resolution output.
const PackageMarker = "package:"

// Gateway executes shell-level operations against a named device.
// Every method blocks until the device command returns.
type Gateway interface {
	// ListPackages returns the raw listing of installed packages. When
	// thirdPartyOnly is set, only user-installed packages are listed.
	ListPackages(ctx context.Context, device Device, thirdPartyOnly bool) (string, error)
	// ResolveArtifactPaths returns the raw listing of installable artifact
	// paths for packageID.
	ResolveArtifactPaths(ctx context.Context, packageID string, device Device) (string, error)
	PathExists(ctx context.Context, device Device, path string) (bool, error)
	PathIsEmpty(ctx context.Context, device Device, path string) (bool, error)
	PullFile(ctx context.Context, device Device, remotePath string, localPath string) error
	// PushFile places localPath at remotePath. A directory named like
	// remotePath's last element lands at remotePath itself, not inside it.
	PushFile(ctx context.Context, device Device, localPath string, remotePath string) error
	InstallSingle(ctx context.Context, device Device, localArtifactPath string) error
	// InstallMultiple installs every path as one atomic install unit.
	InstallMultiple(ctx context.Context, device Device, localArtifactPaths []string) error
	// SetVerification toggles install-time verification of unsigned artifacts.
	// Enabling restores the state found before the last disable.
	SetVerification(ctx context.Context, device Device, enabled bool) error
}
