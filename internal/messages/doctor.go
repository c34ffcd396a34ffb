package messages

// Doctor command and checks.
const (
	DoctorUse   = "doctor"
	DoctorShort = "Check adb, attached devices, config, and staging"

	DoctorHeader               = "Checking pkgmigrate environment..."
	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "
	DoctorFailureSummary       = "Some checks failed."
	DoctorFailureError         = "doctor checks failed"
	DoctorSuccessSummary       = "All checks passed."

	DoctorCheckNameConfig  = "Config"
	DoctorCheckNameADB     = "adb"
	DoctorCheckNameDevices = "Devices"
	DoctorCheckNameStaging = "Staging"

	DoctorConfigLoadFailedFmt = "Failed to load config: %v"
	DoctorConfigLoadRecommend = "Fix the config file or pass --config with a valid path."
	DoctorConfigLoaded        = "Config loaded."

	DoctorADBNotFoundFmt            = "adb binary %q not found"
	DoctorADBNotFoundRecommend      = "Install Android platform-tools or set [adb] path in config.toml.\nYou can also pass --adb."
	DoctorADBVersionFailedFmt       = "%s did not run: %v"
	DoctorADBVersionFailedRecommend = "Check that the adb binary is executable and matches this platform."
	DoctorADBFoundFmt               = "%s (%s)"
	DoctorADBVersionWarnFmt         = "%s: %v"
	DoctorADBVersionWarnRecommend   = "Update Android platform-tools; split APK installs need install-multiple."
	DoctorADBVersionUnparsedFmt     = "unrecognized adb version banner %q"
	DoctorADBVersionTooOldFmt       = "adb %s is older than %s"

	DoctorDevicesListFailedFmt        = "Failed to list devices: %v"
	DoctorDeviceReadyFmt              = "%s is ready"
	DoctorDeviceStateFmt              = "%s is %s"
	DoctorDeviceUnauthorizedRecommend = "Unlock the device and accept the USB debugging prompt."
	DoctorDeviceOfflineRecommend      = "Reconnect the device or run `adb reconnect`."
	DoctorTooFewDevicesFmt            = "%d ready device(s); a migration needs two"
	DoctorTooFewDevicesRecommend      = "Connect both the giving and the receiving device."

	DoctorStagingUnwritableFmt       = "%s is not writable: %v"
	DoctorStagingUnwritableRecommend = "Set [migrate] staging_dir in config.toml to a writable directory."
	DoctorStagingWritableFmt         = "%s is writable"
)
