package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/CodeAndRes/Brackets/internal/journal"
	"github.com/CodeAndRes/Brackets/internal/vault"

	flag "github.com/spf13/pflag"
)

// GenerateMonthlyCmd returns the generate-monthly command.
func GenerateMonthlyCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("generate-monthly", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "generate-monthly",
		Short: "Generate the next month-topics document",
		Long: `Generate the month-topics document for the month after the most recent
one in the vault. Completed checklist lines are dropped; everything else
carries over. Prints the written path.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execGenerateMonthly(o, cfg)
		},
	}
}

func execGenerateMonthly(o *IO, cfg *journal.Config) error {
	lock, lockErr := vault.LockVault(cfg.VaultAbs)
	if lockErr != nil {
		return lockErr
	}
	defer lock.Release()

	listing, scanErr := vault.Scan(cfg.VaultAbs)
	if scanErr != nil {
		return scanErr
	}

	latest, ok := listing.LatestMonthTopics()
	if !ok {
		return &journal.NoBaselineError{VaultDir: cfg.VaultAbs, Kind: journal.KindMonthTopics}
	}

	content, readErr := os.ReadFile(latest.Path)
	if readErr != nil {
		return fmt.Errorf("read %s: %w", latest.Path, readErr)
	}

	prev, parseErr := journal.ParseMonthTopics(cfg, latest.Path, string(content))
	if parseErr != nil {
		return parseErr
	}

	next := journal.BuildMonthTopics(prev)

	year := latest.Info.Year
	if prev.Month == time.December {
		year++
	}

	path := filepath.Join(cfg.VaultAbs, journal.MonthTopicsFileName(year, next.Month))

	if _, statErr := os.Stat(path); statErr == nil {
		return &journal.AlreadyExistsError{Path: path}
	}

	writeErr := vault.WriteDoc(path, journal.RenderMonthTopics(cfg, next))
	if writeErr != nil {
		return writeErr
	}

	o.Println(path)

	return nil
}
