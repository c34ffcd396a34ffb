package migrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/pkgmigrate/internal/messages"
)

// ErrNoArtifacts is returned when a package resolves to no installable path.
var ErrNoArtifacts = errors.New(messages.MigrateNoArtifacts)

// ErrIncomplete is joined into the run error when some packages failed
// under PolicyContinue.
var ErrIncomplete = errors.New(messages.MigrateIncomplete)

// Op names the step of a package migration that failed.
type Op string

// Package migration steps.
const (
	OpResolve  Op = "resolve"
	OpStage    Op = "stage"
	OpPull     Op = "pull"
	OpInstall  Op = "install"
	OpAuxCheck Op = "aux-check"
	OpAuxPull  Op = "aux-pull"
	OpAuxPush  Op = "aux-push"
	OpCleanup  Op = "cleanup"
)

// PackageError reports which package failed and during which step.
type PackageError struct {
	PackageID string
	Op        Op
	Err       error
}

func (e *PackageError) Error() string {
	return fmt.Sprintf(messages.MigratePackageFailedFmt, e.PackageID, e.Op, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one package migration.
type Result struct {
	PackageID string
	// Parts is the number of artifacts installed together.
	Parts int
	// AuxData reports whether an auxiliary data bundle was transferred.
	AuxData bool
	Err     error
}

// OK reports whether the package migrated without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report summarizes a migration run.
type Report struct {
	Results []Result
	// Skipped lists planned packages never attempted because the run aborted.
	Skipped []string
}

// Succeeded returns the ids of packages that migrated.
func (r Report) Succeeded() []string {
	ids := []string{}
	for _, res := range r.Results {
		if res.OK() {
			ids = append(ids, res.PackageID)
		}
	}
	return ids
}

// Failed returns the results of packages that did not migrate.
func (r Report) Failed() []Result {
	failed := []Result{}
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Policy decides what happens to the rest of a run when a package fails.
type Policy string

// Failure policies.
const (
	// PolicyAbort stops at the first failed package.
	PolicyAbort Policy = "abort"
	// PolicyContinue attempts every package and reports failures at the end.
	PolicyContinue Policy = "continue"
)

// ParsePolicy converts a configured policy name. Empty selects PolicyAbort.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicyContinue:
		return PolicyContinue, nil
	default:
		return "", fmt.Errorf(messages.MigrateInvalidPolicyFmt, value)
	}
}
