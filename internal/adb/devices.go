package adb

import (
	"context"
	"strings"

	"github.com/conn-castle/pkgmigrate/internal/gateway"
)

// Device states reported by `adb devices`.
const (
	StateDevice       = "device"
	StateUnauthorized = "unauthorized"
	StateOffline      = "offline"
)

// DeviceInfo describes one attached device.
type DeviceInfo struct {
	Serial gateway.Device
	State  string
	Model  string
}

// Ready reports whether the device accepts commands.
func (d DeviceInfo) Ready() bool {
	return d.State == StateDevice
}

// Label returns a human-readable name for prompts.
func (d DeviceInfo) Label() string {
	if d.Model == "" {
		return d.Serial.String()
	}
	return d.Serial.String() + " (" + d.Model + ")"
}

// Devices lists attached devices in the order adb reports them.
func (c *Client) Devices(ctx context.Context) ([]DeviceInfo, error) {
	out, err := c.run(ctx, "", "devices", "-l")
	if err != nil {
		return nil, err
	}
	return parseDevices(out), nil
}

// parseDevices reads `adb devices -l` output.
func parseDevices(out string) []DeviceInfo {
	devices := []DeviceInfo{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		info := DeviceInfo{Serial: gateway.Device(fields[0]), State: fields[1]}
		for _, field := range fields[2:] {
			if model, ok := strings.CutPrefix(field, "model:"); ok {
				info.Model = strings.ReplaceAll(model, "_", " ")
			}
		}
		devices = append(devices, info)
	}
	return devices
}
