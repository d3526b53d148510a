package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// LockFileName is the advisory lock file in the vault root.
const LockFileName = ".brackets.lock"

// ErrVaultLocked indicates another run holds the vault lock.
var ErrVaultLocked = errors.New("vault is locked by another run")

// Lock is a held vault lock.
type Lock struct {
	path string
	file *os.File
}

// LockVault takes a non-blocking exclusive flock on the vault's lock
// file. Mutating commands hold it for the whole run; a lock already held
// elsewhere fails fast instead of waiting.
func LockVault(dir string) (*Lock, error) {
	path := filepath.Join(dir, LockFileName)

	file, openErr := os.OpenFile(path, os.O_CREATE|os.O_RDWR, filePerms)
	if openErr != nil {
		return nil, fmt.Errorf("open lock file: %w", openErr)
	}

	flockErr := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if flockErr != nil {
		_ = file.Close()

		if errors.Is(flockErr, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrVaultLocked, path)
		}

		return nil, fmt.Errorf("flock %s: %w", path, flockErr)
	}

	return &Lock{path: path, file: file}, nil
}

// Release drops the lock. The lock file stays in place; the flock is
// what guards the vault, so removing it would race with other runs.
func (l *Lock) Release() {
	if l.file == nil {
		return
	}

	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	_ = l.file.Close()
	l.file = nil
}
