package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
)

// LockFileName is the writer lock file inside the data directory.
const LockFileName = ".writer.lock"

// WriterLock keeps a second process from mutating the index while one is
// already writing. Readers never take it.
type WriterLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewWriterLock creates the lock for dataDir. Nothing is acquired yet.
func NewWriterLock(dataDir string) *WriterLock {
	lockPath := filepath.Join(dataDir, LockFileName)
	return &WriterLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Acquire takes the lock without blocking. A lock held elsewhere fails
// with ErrStoreLocked.
func (l *WriterLock) Acquire() error {
	if l.locked {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return sierrors.StorageError("failed to create lock directory", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return sierrors.StorageError("failed to acquire writer lock", err)
	}
	if !acquired {
		return sierrors.New(sierrors.ErrCodeStoreLocked,
			fmt.Sprintf("another process is writing to %s", filepath.Dir(l.path)), nil).
			WithDetail("lock", l.path).
			WithSuggestion("Wait for the other command to finish and retry")
	}
	l.locked = true
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *WriterLock) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return sierrors.StorageError("failed to release writer lock", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *WriterLock) Path() string { return l.path }

// Held reports whether this WriterLock currently holds the lock.
func (l *WriterLock) Held() bool { return l.locked }
