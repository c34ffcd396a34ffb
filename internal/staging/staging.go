// Package staging manages the local directories that hold pulled artifacts
// while they travel from one device to another.
//
// Every run gets its own namespace under the staging root so concurrent runs
// never share file names. Within a run each package gets a Scope whose
// entries are all removed when the scope closes.
package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/conn-castle/pkgmigrate/internal/messages"
)

// Area hands out per-package scopes.
type Area interface {
	NewScope(label string) (Scope, error)
}

// Scope owns the temporary entries created for one package.
type Scope interface {
	// File reserves a file path inside the scope. The file itself is created
	// by whoever writes to it.
	File(name string) (string, error)
	// Dir creates a directory inside the scope and returns its path.
	Dir(name string) (string, error)
	// Close removes every entry of the scope. It is safe to call twice.
	Close() error
}

// System abstracts the filesystem operations used by the staging area.
type System interface {
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes path and any children it contains.
func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

var newRunID = func() string { return uuid.NewString() }

// DefaultRoot returns the staging root used when none is configured.
func DefaultRoot() string {
	return filepath.Join(os.TempDir(), "pkgmigrate")
}

// Run is a staging namespace for one migration run.
type Run struct {
	sys  System
	dir  string
	mu   sync.Mutex
	next int
}

// Open creates a fresh run namespace under root.
func Open(sys System, root string) (*Run, error) {
	if sys == nil {
		return nil, errors.New(messages.StagingSystemRequired)
	}
	if strings.TrimSpace(root) == "" {
		return nil, errors.New(messages.StagingRootRequired)
	}
	dir := filepath.Join(root, "run-"+newRunID())
	if err := sys.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf(messages.StagingCreateDirFmt, dir, err)
	}
	return &Run{sys: sys, dir: dir}, nil
}

// Dir returns the run namespace directory.
func (r *Run) Dir() string {
	return r.dir
}

// NewScope creates a scope directory for label inside the run.
func (r *Run) NewScope(label string) (Scope, error) {
	r.mu.Lock()
	r.next++
	seq := r.next
	r.mu.Unlock()

	dir := filepath.Join(r.dir, fmt.Sprintf("%03d-%s", seq, sanitize(label)))
	if err := r.sys.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf(messages.StagingCreateDirFmt, dir, err)
	}
	return &dirScope{sys: r.sys, dir: dir}, nil
}

// Close removes the run namespace and everything left inside it.
func (r *Run) Close() error {
	if err := r.sys.RemoveAll(r.dir); err != nil {
		return fmt.Errorf(messages.StagingRemoveFmt, r.dir, err)
	}
	return nil
}

type dirScope struct {
	sys    System
	dir    string
	closed bool
}

func (s *dirScope) File(name string) (string, error) {
	if s.closed {
		return "", errors.New(messages.StagingScopeClosed)
	}
	return filepath.Join(s.dir, sanitize(name)), nil
}

func (s *dirScope) Dir(name string) (string, error) {
	if s.closed {
		return "", errors.New(messages.StagingScopeClosed)
	}
	path := filepath.Join(s.dir, sanitize(name))
	if err := s.sys.MkdirAll(path, 0o700); err != nil {
		return "", fmt.Errorf(messages.StagingCreateDirFmt, path, err)
	}
	return path, nil
}

func (s *dirScope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.sys.RemoveAll(s.dir); err != nil {
		return fmt.Errorf(messages.StagingRemoveFmt, s.dir, err)
	}
	return nil
}

// sanitize keeps a name usable as a single path element.
func sanitize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "_"
	}
	return cleaned
}
