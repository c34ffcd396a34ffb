package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/conn-castle/pkgmigrate/internal/adb"
	"github.com/conn-castle/pkgmigrate/internal/config"
	"github.com/conn-castle/pkgmigrate/internal/messages"
)

// ADB is the part of the adb client the checks need.
type ADB interface {
	Binary() string
	Version(ctx context.Context) (string, error)
	Devices(ctx context.Context) ([]adb.DeviceInfo, error)
}

// MinADBVersion is the oldest adb with install-multiple.
const MinADBVersion = "1.0.32"

var minADBVersion = version.Must(version.NewVersion(MinADBVersion))

var (
	lookPathFunc   = exec.LookPath
	loadConfigFunc = config.Load
)

// CheckConfig loads the config file. It returns the loaded config, or
// defaults when loading failed so later checks can still run.
func CheckConfig(path string) ([]Result, *config.Config) {
	cfg, err := loadConfigFunc(path)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: messages.DoctorConfigLoadRecommend,
		}}, config.Default()
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   messages.DoctorConfigLoaded,
	}}, cfg
}

// CheckADB verifies the adb binary resolves and runs.
func CheckADB(ctx context.Context, client ADB) []Result {
	path, err := lookPathFunc(client.Binary())
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameADB,
			Message:        fmt.Sprintf(messages.DoctorADBNotFoundFmt, client.Binary()),
			Recommendation: messages.DoctorADBNotFoundRecommend,
		}}
	}
	banner, err := client.Version(ctx)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameADB,
			Message:        fmt.Sprintf(messages.DoctorADBVersionFailedFmt, path, err),
			Recommendation: messages.DoctorADBVersionFailedRecommend,
		}}
	}
	found := fmt.Sprintf(messages.DoctorADBFoundFmt, path, banner)
	if err := checkADBVersion(banner); err != nil {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameADB,
			Message:        fmt.Sprintf(messages.DoctorADBVersionWarnFmt, found, err),
			Recommendation: messages.DoctorADBVersionWarnRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameADB,
		Message:   found,
	}}
}

// checkADBVersion rejects adb releases older than MinADBVersion. The version
// is the last field of the `adb version` banner.
func checkADBVersion(banner string) error {
	fields := strings.Fields(banner)
	if len(fields) == 0 {
		return fmt.Errorf(messages.DoctorADBVersionUnparsedFmt, banner)
	}
	have, err := version.NewVersion(fields[len(fields)-1])
	if err != nil {
		return fmt.Errorf(messages.DoctorADBVersionUnparsedFmt, banner)
	}
	if have.LessThan(minADBVersion) {
		return fmt.Errorf(messages.DoctorADBVersionTooOldFmt, have, MinADBVersion)
	}
	return nil
}

// CheckDevices reports every attached device. Migration needs two ready devices.
func CheckDevices(ctx context.Context, client ADB) []Result {
	devices, err := client.Devices(ctx)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameDevices,
			Message:        fmt.Sprintf(messages.DoctorDevicesListFailedFmt, err),
			Recommendation: messages.DoctorADBVersionFailedRecommend,
		}}
	}

	var results []Result
	ready := 0
	for _, d := range devices {
		switch d.State {
		case adb.StateDevice:
			ready++
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameDevices,
				Message:   fmt.Sprintf(messages.DoctorDeviceReadyFmt, d.Label()),
			})
		case adb.StateUnauthorized:
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameDevices,
				Message:        fmt.Sprintf(messages.DoctorDeviceStateFmt, d.Label(), d.State),
				Recommendation: messages.DoctorDeviceUnauthorizedRecommend,
			})
		default:
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameDevices,
				Message:        fmt.Sprintf(messages.DoctorDeviceStateFmt, d.Label(), d.State),
				Recommendation: messages.DoctorDeviceOfflineRecommend,
			})
		}
	}
	if ready < 2 {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameDevices,
			Message:        fmt.Sprintf(messages.DoctorTooFewDevicesFmt, ready),
			Recommendation: messages.DoctorTooFewDevicesRecommend,
		})
	}
	return results
}

// CheckStaging verifies the staging root can hold files.
func CheckStaging(root string) []Result {
	fail := func(err error) []Result {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameStaging,
			Message:        fmt.Sprintf(messages.DoctorStagingUnwritableFmt, root, err),
			Recommendation: messages.DoctorStagingUnwritableRecommend,
		}}
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return fail(err)
	}
	probe, err := os.CreateTemp(root, ".probe-*")
	if err != nil {
		return fail(err)
	}
	name := probe.Name()
	_ = probe.Close()
	if err := os.Remove(name); err != nil {
		return fail(err)
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameStaging,
		Message:   fmt.Sprintf(messages.DoctorStagingWritableFmt, root),
	}}
}
