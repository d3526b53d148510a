package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptySearch indicates a replace with an empty search string.
	ErrEmptySearch = errors.New("search string is empty")

	// ErrSameStrings indicates search and replacement are identical.
	ErrSameStrings = errors.New("search and replacement are identical")

	// ErrRenameCollision indicates a rename target that already exists.
	ErrRenameCollision = errors.New("rename target already exists")
)

// DefaultContentExts are the extensions whose contents Replace rewrites
// when the caller does not narrow them: journal documents plus the YAML
// files that reference document names.
var DefaultContentExts = []string{".md", ".yaml"}

// ReplaceInput configures a vault-wide literal search and replace.
type ReplaceInput struct {
	Root string
	Old  string
	New  string

	// ContentExts lists the extensions (with dot) whose contents are
	// rewritten. Empty means DefaultContentExts. File names are matched
	// regardless of extension.
	ContentExts []string

	// Apply executes the planned changes. When false, Replace only
	// reports what would change.
	Apply bool
}

// FileChange is one file's part of a replace plan.
type FileChange struct {
	Path    string
	Matches int    // occurrences replaced in the content
	NewPath string // non-empty when the file name changes
}

type plannedChange struct {
	FileChange
	newContent string
}

// Replace walks the vault and replaces a literal string in file contents
// and file names. Hidden files and dot-directories are left alone. The
// returned changes are in walk order; with in.Apply false nothing is
// touched.
func Replace(in ReplaceInput) ([]FileChange, error) {
	if in.Old == "" {
		return nil, ErrEmptySearch
	}

	if in.Old == in.New {
		return nil, ErrSameStrings
	}

	exts := in.ContentExts
	if len(exts) == 0 {
		exts = DefaultContentExts
	}

	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = true
	}

	plan, planErr := planReplace(in, extSet)
	if planErr != nil {
		return nil, planErr
	}

	changes := make([]FileChange, 0, len(plan))

	for _, planned := range plan {
		if in.Apply {
			applyErr := applyChange(planned)
			if applyErr != nil {
				return changes, applyErr
			}
		}

		changes = append(changes, planned.FileChange)
	}

	return changes, nil
}

func planReplace(in ReplaceInput, extSet map[string]bool) ([]plannedChange, error) {
	var plan []plannedChange

	renameTargets := make(map[string]string)

	walkErr := filepath.WalkDir(in.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path != in.Root && strings.HasPrefix(entry.Name(), ".") {
				return fs.SkipDir
			}

			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		planned := plannedChange{FileChange: FileChange{Path: path}}

		if extSet[strings.ToLower(filepath.Ext(entry.Name()))] {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return readErr
			}

			content := string(data)

			planned.Matches = strings.Count(content, in.Old)
			if planned.Matches > 0 {
				planned.newContent = strings.ReplaceAll(content, in.Old, in.New)
			}
		}

		if newName := strings.ReplaceAll(entry.Name(), in.Old, in.New); newName != entry.Name() {
			newPath := filepath.Join(filepath.Dir(path), newName)

			if holder, taken := renameTargets[newPath]; taken {
				return fmt.Errorf("%w: %s (from %s and %s)", ErrRenameCollision, newPath, holder, path)
			}

			if _, statErr := os.Stat(newPath); statErr == nil {
				return fmt.Errorf("%w: %s", ErrRenameCollision, newPath)
			}

			renameTargets[newPath] = path
			planned.NewPath = newPath
		}

		if planned.Matches > 0 || planned.NewPath != "" {
			plan = append(plan, planned)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan vault %s: %w", in.Root, walkErr)
	}

	return plan, nil
}

func applyChange(planned plannedChange) error {
	if planned.Matches > 0 {
		writeErr := WriteDoc(planned.Path, planned.newContent)
		if writeErr != nil {
			return writeErr
		}
	}

	if planned.NewPath != "" {
		renameErr := os.Rename(planned.Path, planned.NewPath)
		if renameErr != nil {
			return fmt.Errorf("rename %s: %w", planned.Path, renameErr)
		}
	}

	return nil
}
