package messages

// Progress labels and rendering.
const (
	ProgressParsingList    = "Parsing a package list"
	ProgressComparingLists = "Comparing two package lists"
	ProgressLineFmt        = "%s [%d/%d] %d%%"
	ProgressSummaryFmt     = "%s: %d/%d\n"
)

// Inventory errors.
const (
	InventoryKindFull       = "package list"
	InventoryKindThirdParty = "third-party package list"
	InventoryListFailedFmt  = "read %s from %s: %v"
)

// adb gateway.
const (
	AdbCommandFailedFmt     = "adb %s: %v"
	AdbTraceFmt             = "+ %s %s\n"
	AdbInstallRejected      = "install rejected"
	AdbUnexpectedOutputFmt  = "unexpected %s check output for %s: %q"
	AdbNoArtifactsToInstall = "no artifacts to install"
)

// Staging area.
const (
	StagingSystemRequired = "staging system is required"
	StagingRootRequired   = "staging root is required"
	StagingCreateDirFmt   = "failed to create %s: %w"
	StagingRemoveFmt      = "failed to remove %s: %w"
	StagingScopeClosed    = "staging scope is closed"
	StagingOpenLockFmt    = "failed to open lock file %s: %w"
	StagingLockFmt        = "failed to lock %s: %w"
	StagingLockTimeoutFmt = "timed out waiting for lock after %s; another migration to this device may be running"
)

// Migration executor.
const (
	MigrateNoArtifacts            = "package has no artifacts on the giving device"
	MigrateIncomplete             = "migration incomplete"
	MigratePackageFailedFmt       = "%s: %s: %v"
	MigrateInvalidPolicyFmt       = "invalid failure policy %q (want abort or continue)"
	MigrateDisableVerificationFmt = "disable package verification on %s: %w"
	MigrateRestoreVerificationFmt = "restore package verification on %s: %w"
)
