// Package migrate copies missing packages from a giving device onto a
// receiving device.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/conn-castle/pkgmigrate/internal/gateway"
	"github.com/conn-castle/pkgmigrate/internal/inventory"
	"github.com/conn-castle/pkgmigrate/internal/messages"
	"github.com/conn-castle/pkgmigrate/internal/staging"
)

// DefaultAuxDataRoot is where Android keeps per-package OBB directories.
const DefaultAuxDataRoot = "/storage/self/primary/Android/obb"

// EventKind classifies executor events.
type EventKind int

// Executor events.
const (
	EventVerificationDisabled EventKind = iota
	EventStart
	EventAuxData
	EventDone
	EventFailed
	EventVerificationRestored
)

// Event reports executor progress. Index is 1-based within Total.
type Event struct {
	Kind      EventKind
	PackageID string
	Index     int
	Total     int
	Err       error
}

// EventFunc receives executor events synchronously.
type EventFunc func(Event)

// Executor migrates packages one at a time.
type Executor struct {
	gw      gateway.Gateway
	area    staging.Area
	policy  Policy
	auxRoot string
	events  EventFunc
}

// Option configures an Executor.
type Option func(*Executor)

// WithPolicy sets the failure policy.
func WithPolicy(policy Policy) Option {
	return func(e *Executor) { e.policy = policy }
}

// WithAuxDataRoot sets the device directory holding auxiliary data bundles.
func WithAuxDataRoot(root string) Option {
	return func(e *Executor) {
		if root != "" {
			e.auxRoot = root
		}
	}
}

// WithEvents registers an event sink.
func WithEvents(fn EventFunc) Option {
	return func(e *Executor) { e.events = fn }
}

// New creates an Executor that talks to devices through gw and stages
// artifacts in area.
func New(gw gateway.Gateway, area staging.Area, opts ...Option) *Executor {
	e := &Executor{
		gw:      gw,
		area:    area,
		policy:  PolicyAbort,
		auxRoot: DefaultAuxDataRoot,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Migrate installs every package of plan from giving onto receiving, in order.
//
// Verification on receiving is disabled once before the first package and
// restored once after the last attempt, including when the run aborts or
// when disabling itself fails partway. The
// restore uses a context that ignores cancellation of ctx. An empty plan
// touches nothing.
func (e *Executor) Migrate(ctx context.Context, plan []string, receiving gateway.Device, giving gateway.Device) (report Report, err error) {
	report = Report{Results: []Result{}, Skipped: []string{}}
	if len(plan) == 0 {
		return report, nil
	}

	if err := e.gw.SetVerification(ctx, receiving, false); err != nil {
		// Part of the settings may already be relaxed.
		err = fmt.Errorf(messages.MigrateDisableVerificationFmt, receiving, err)
		if restoreErr := e.gw.SetVerification(context.WithoutCancel(ctx), receiving, true); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf(messages.MigrateRestoreVerificationFmt, receiving, restoreErr))
		}
		return report, err
	}
	e.emit(Event{Kind: EventVerificationDisabled, Total: len(plan)})
	defer func() {
		if restoreErr := e.gw.SetVerification(context.WithoutCancel(ctx), receiving, true); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf(messages.MigrateRestoreVerificationFmt, receiving, restoreErr))
			return
		}
		e.emit(Event{Kind: EventVerificationRestored, Total: len(plan)})
	}()

	var failures []error
	for i, id := range plan {
		e.emit(Event{Kind: EventStart, PackageID: id, Index: i + 1, Total: len(plan)})
		res := e.migratePackage(ctx, id, receiving, giving, i+1, len(plan))
		report.Results = append(report.Results, res)
		if res.Err == nil {
			e.emit(Event{Kind: EventDone, PackageID: id, Index: i + 1, Total: len(plan)})
			continue
		}
		e.emit(Event{Kind: EventFailed, PackageID: id, Index: i + 1, Total: len(plan), Err: res.Err})
		if e.policy != PolicyContinue {
			report.Skipped = append(report.Skipped, plan[i+1:]...)
			return report, res.Err
		}
		failures = append(failures, res.Err)
	}
	if len(failures) > 0 {
		return report, errors.Join(append([]error{ErrIncomplete}, failures...)...)
	}
	return report, nil
}

// migratePackage moves one package. Its staging scope is closed before it
// returns, whatever the outcome.
func (e *Executor) migratePackage(ctx context.Context, id string, receiving gateway.Device, giving gateway.Device, index int, total int) (res Result) {
	res.PackageID = id

	raw, err := e.gw.ResolveArtifactPaths(ctx, id, giving)
	if err != nil {
		res.Err = &PackageError{PackageID: id, Op: OpResolve, Err: err}
		return res
	}
	remotePaths := inventory.Parse(raw, nil)
	if len(remotePaths) == 0 {
		res.Err = &PackageError{PackageID: id, Op: OpResolve, Err: ErrNoArtifacts}
		return res
	}
	res.Parts = len(remotePaths)

	scope, err := e.area.NewScope(id)
	if err != nil {
		res.Err = &PackageError{PackageID: id, Op: OpStage, Err: err}
		return res
	}
	defer func() {
		if closeErr := scope.Close(); closeErr != nil {
			res.Err = errors.Join(res.Err, &PackageError{PackageID: id, Op: OpCleanup, Err: closeErr})
		}
	}()

	if err := e.installArtifacts(ctx, id, scope, remotePaths, receiving, giving); err != nil {
		res.Err = err
		return res
	}

	auxPath, ok, err := e.auxDataPath(ctx, id, giving)
	if err != nil {
		res.Err = &PackageError{PackageID: id, Op: OpAuxCheck, Err: err}
		return res
	}
	if !ok {
		return res
	}
	e.emit(Event{Kind: EventAuxData, PackageID: id, Index: index, Total: total})
	if err := e.transferAuxData(ctx, id, scope, auxPath, receiving, giving); err != nil {
		res.Err = err
		return res
	}
	res.AuxData = true
	return res
}

// installArtifacts stages every remote artifact and installs them as one unit.
func (e *Executor) installArtifacts(ctx context.Context, id string, scope staging.Scope, remotePaths []string, receiving gateway.Device, giving gateway.Device) error {
	if len(remotePaths) == 1 {
		local, err := scope.File("base.apk")
		if err != nil {
			return &PackageError{PackageID: id, Op: OpStage, Err: err}
		}
		if err := e.gw.PullFile(ctx, giving, remotePaths[0], local); err != nil {
			return &PackageError{PackageID: id, Op: OpPull, Err: err}
		}
		if err := e.gw.InstallSingle(ctx, receiving, local); err != nil {
			return &PackageError{PackageID: id, Op: OpInstall, Err: err}
		}
		return nil
	}

	locals := make([]string, 0, len(remotePaths))
	for i, remote := range remotePaths {
		local, err := scope.File(fmt.Sprintf("split-%d.apk", i))
		if err != nil {
			return &PackageError{PackageID: id, Op: OpStage, Err: err}
		}
		if err := e.gw.PullFile(ctx, giving, remote, local); err != nil {
			return &PackageError{PackageID: id, Op: OpPull, Err: err}
		}
		locals = append(locals, local)
	}
	if err := e.gw.InstallMultiple(ctx, receiving, locals); err != nil {
		return &PackageError{PackageID: id, Op: OpInstall, Err: err}
	}
	return nil
}

// auxDataPath returns the auxiliary data directory of id on device when it
// exists and holds at least one entry.
func (e *Executor) auxDataPath(ctx context.Context, id string, device gateway.Device) (string, bool, error) {
	dir := path.Join(e.auxRoot, id)
	exists, err := e.gw.PathExists(ctx, device, dir)
	if err != nil || !exists {
		return "", false, err
	}
	empty, err := e.gw.PathIsEmpty(ctx, device, dir)
	if err != nil || empty {
		return "", false, err
	}
	return dir, true, nil
}

// transferAuxData copies the remote directory through a staging directory.
// Pulling into an existing local directory nests the copy under the package
// id; that copy is pushed to the same path on the receiving device.
func (e *Executor) transferAuxData(ctx context.Context, id string, scope staging.Scope, remoteDir string, receiving gateway.Device, giving gateway.Device) error {
	local, err := scope.Dir("aux")
	if err != nil {
		return &PackageError{PackageID: id, Op: OpStage, Err: err}
	}
	if err := e.gw.PullFile(ctx, giving, remoteDir, local); err != nil {
		return &PackageError{PackageID: id, Op: OpAuxPull, Err: err}
	}
	if err := e.gw.PushFile(ctx, receiving, filepath.Join(local, path.Base(remoteDir)), remoteDir); err != nil {
		return &PackageError{PackageID: id, Op: OpAuxPush, Err: err}
	}
	return nil
}

func (e *Executor) emit(event Event) {
	if e.events != nil {
		e.events(event)
	}
}
