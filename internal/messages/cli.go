// Package messages holds user-facing strings shared across packages.
package messages

// Root command.
const (
	RootUse         = "pkgmigrate"
	RootShort       = "Copy installed Android apps from one device to another over adb"
	RootLong        = "pkgmigrate copies user-installed Android packages, including split APKs and OBB data,\nfrom a giving device to a receiving device through adb."
	RootVersionFlag = "Print the version"
	RootFlagConfig  = "Path to config.toml (default: user config dir)"
	RootFlagADB     = "Path to the adb binary (overrides config)"
	RootFlagVerbose = "Print adb invocations and per-package details"
	RootFlagQuiet   = "Suppress progress output"

	VersionTemplate  = "{{.Version}}\n"
	VersionFullFmt   = "%s (%s)"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"

	FlagFrom = "Serial of the giving device"
	FlagTo   = "Serial of the receiving device"
)

// Device selection and listing.
const (
	DevicesUse           = "devices"
	DevicesShort         = "List attached devices"
	DevicesNoneAttached  = "No devices attached."
	DevicesHeaderSerial  = "SERIAL"
	DevicesHeaderState   = "STATE"
	DevicesHeaderModel   = "MODEL"
	DevicesFlagsRequired = "--from and --to are required when not running in a terminal"
	DevicesSameFmt       = "giving and receiving device are both %s"
	DevicesNoneReady     = "no ready device to choose from; run `pkgmigrate devices`"

	PromptSelectGiving    = "Copy packages from"
	PromptSelectReceiving = "Copy packages to"
)

// Inventory commands.
const (
	PlanUse     = "plan"
	PlanShort   = "Print packages the receiving device is missing"
	PlanSizeFmt = "%d packages to migrate from %s to %s\n"

	ExcessUse   = "excess"
	ExcessShort = "Print third-party packages on the receiving device that the giving device lacks"

	CompareUse       = "compare"
	CompareShort     = "Show a diff of the third-party packages on both devices"
	CompareIdentical = "Third-party packages are identical."
)

// Migrate command.
const (
	MigrateUse           = "migrate"
	MigrateShort         = "Install missing packages on the receiving device"
	MigrateLong          = "Copies every third-party package on the giving device that is not installed on the\nreceiving device. Package verification on the receiving device is turned off for the run\nand restored afterwards."
	MigrateFlagKeepGoing = "Continue with remaining packages after a failure"
	MigrateFlagYes       = "Do not ask for confirmation"

	MigrateNothingFmt       = "Nothing to migrate from %s to %s.\n"
	MigratePlanHeaderFmt    = "Migrating %d packages from %s to %s:\n"
	MigrateConfirmFmt       = "Install %d packages on %s?"
	MigrateCancelled        = "Migration cancelled."
	MigrateStagingDirFmt    = "staging in %s\n"
	MigrateResultLineFmt    = "[%d/%d] %s %s\n"
	MigrateStatusOK         = "OK"
	MigrateStatusFail       = "FAIL"
	MigrateStartFmt         = "[%d/%d] migrating %s\n"
	MigrateAuxDataFmt       = "copied OBB data for %s\n"
	MigrateSummaryFmt       = "Migrated %d of %d packages."
	MigrateFailedItemFmt    = "  failed: %s (%s)\n"
	MigrateSkippedHeaderFmt = "%d packages not attempted:\n"
	MigrateSkippedItemFmt   = "  %s\n"

	MigrateVerificationDisabled = "package verification disabled\n"
	MigrateVerificationRestored = "package verification restored\n"
)

// Interactive prompts.
const (
	PromptCancelled        = "cancelled"
	PromptRequiresTerminal = "interactive prompt requires a terminal"
)
