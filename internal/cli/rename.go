package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodeAndRes/Brackets/internal/journal"
	"github.com/CodeAndRes/Brackets/internal/vault"

	flag "github.com/spf13/pflag"
)

var errOldNewRequired = errors.New("old and new strings are required")

// RenameCmd returns the rename command.
func RenameCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	fs.Bool("apply", false, "Execute the changes (default is a dry run)")

	return &Command{
		Flags: fs,
		Usage: "rename <old> <new> [--apply]",
		Short: "Replace a string across the whole vault",
		Long: `Replace a literal string everywhere it appears in the vault: inside
markdown and YAML files, and in file names. Without --apply nothing is
touched; the planned changes are printed.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execRename(o, cfg, fs, args)
		},
	}
}

func execRename(o *IO, cfg *journal.Config, fs *flag.FlagSet, args []string) error {
	if len(args) < 2 {
		return errOldNewRequired
	}

	apply, _ := fs.GetBool("apply")

	if apply {
		lock, lockErr := vault.LockVault(cfg.VaultAbs)
		if lockErr != nil {
			return lockErr
		}
		defer lock.Release()
	}

	changes, replaceErr := vault.Replace(vault.ReplaceInput{
		Root:  cfg.VaultAbs,
		Old:   args[0],
		New:   args[1],
		Apply: apply,
	})
	if replaceErr != nil {
		return replaceErr
	}

	for _, change := range changes {
		if change.Matches > 0 {
			o.Println(fmt.Sprintf("%s: %d", change.Path, change.Matches))
		}

		if change.NewPath != "" {
			o.Println(fmt.Sprintf("%s -> %s", change.Path, change.NewPath))
		}
	}

	if len(changes) == 0 {
		o.Println("no matches")

		return nil
	}

	if !apply {
		o.Println(fmt.Sprintf("dry run: %d files would change, re-run with --apply", len(changes)))
	}

	return nil
}
