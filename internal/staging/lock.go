package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/pkgmigrate/internal/messages"
)

type fileLock struct {
	file *os.File
}

var flockFn = unix.Flock
var lockSleep = time.Sleep

var lockPollEvery = 100 * time.Millisecond

// DefaultLockTimeout bounds how long LockDevice waits for another process.
const DefaultLockTimeout = 30 * time.Second

// LockDevice takes an exclusive advisory lock for device under root so two
// processes never migrate onto the same device at once. The returned
// function releases the lock.
func LockDevice(root string, device string, timeout time.Duration) (func() error, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf(messages.StagingCreateDirFmt, root, err)
	}
	path := filepath.Join(root, sanitize(device)+".lock")
	lock, err := acquireFileLock(path, timeout)
	if err != nil {
		return nil, err
	}
	return lock.release, nil
}

// acquireFileLock opens or creates path and acquires an exclusive lock.
func acquireFileLock(path string, timeout time.Duration) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf(messages.StagingOpenLockFmt, path, err)
	}
	if err := lockFile(file, timeout); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.StagingLockFmt, path, err)
	}
	return &fileLock{file: file}, nil
}

// release unlocks and closes the file lock.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := flockFn(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// lockFile polls for an exclusive lock until timeout elapses.
func lockFile(file *os.File, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	deadline := time.Now().Add(timeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.StagingLockTimeoutFmt, timeout)
		}
		lockSleep(lockPollEvery)
	}
}
