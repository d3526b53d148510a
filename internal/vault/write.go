package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// WriteDoc writes a document via temp file + rename. Every producer in
// the tool goes through here; a document on disk is either the old
// version or the new one, never a partial write.
func WriteDoc(path, content string) error {
	mkdirErr := os.MkdirAll(filepath.Dir(path), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("create vault directory: %w", mkdirErr)
	}

	writeErr := atomic.WriteFile(path, strings.NewReader(content))
	if writeErr != nil {
		return fmt.Errorf("write %s: %w", path, writeErr)
	}

	// atomic.WriteFile doesn't set permissions for new files.
	chmodErr := os.Chmod(path, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("set permissions on %s: %w", path, chmodErr)
	}

	return nil
}
