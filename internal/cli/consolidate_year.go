package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/CodeAndRes/Brackets/internal/journal"
	"github.com/CodeAndRes/Brackets/internal/vault"

	flag "github.com/spf13/pflag"
)

var errYearRequired = errors.New("year argument is required")

// ConsolidateYearCmd returns the consolidate-year command.
func ConsolidateYearCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("consolidate-year", flag.ContinueOnError)
	fs.Bool("force", false, "Replace an existing rollup")

	return &Command{
		Flags: fs,
		Usage: "consolidate-year <year>",
		Short: "Merge a year's month rollups into one rollup",
		Long: `Merge the monthly rollup documents of one year into a single yearly
document, December first. Months that have weekly or topics data but were
never consolidated are skipped with a warning. An existing rollup is only
replaced with --force. Prints the written path.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execConsolidateYear(o, cfg, fs, args)
		},
	}
}

func execConsolidateYear(o *IO, cfg *journal.Config, fs *flag.FlagSet, args []string) error {
	if len(args) < 1 {
		return errYearRequired
	}

	year, argErr := parseYear(args[0])
	if argErr != nil {
		return argErr
	}

	lock, lockErr := vault.LockVault(cfg.VaultAbs)
	if lockErr != nil {
		return lockErr
	}
	defer lock.Release()

	listing, scanErr := vault.Scan(cfg.VaultAbs)
	if scanErr != nil {
		return scanErr
	}

	path := filepath.Join(cfg.VaultAbs, journal.YearRollupFileName(year))

	force, _ := fs.GetBool("force")
	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return &journal.AlreadyExistsError{Path: path}
		}
	}

	rollups := listing.MonthRollups(year)

	var months []journal.MonthSource

	for _, doc := range rollups {
		content, readErr := readDoc(doc.Path)
		if readErr != nil {
			return readErr
		}

		months = append(months, journal.MonthSource{Month: doc.Info.Month, Content: content})
	}

	topics := ""

	if doc, ok := listing.YearTopics(year); ok {
		content, readErr := readDoc(doc.Path)
		if readErr != nil {
			return readErr
		}

		topics = content
	}

	out, consolidateErr := journal.ConsolidateYear(cfg, year, months, topics, timeNow())
	if consolidateErr != nil {
		return consolidateErr
	}

	// A month with source data but no rollup is a gap in the year, not a
	// failure: the document is still written.
	var missing []int

	for _, m := range listing.SourceMonths(year) {
		has := slices.ContainsFunc(rollups, func(doc vault.Doc) bool {
			return doc.Info.Month == m
		})
		if !has {
			missing = append(missing, int(m))
		}
	}

	if len(missing) > 0 {
		o.Warn(journal.PartialDataWarning{Year: year, MissingMonths: missing}.String())
	}

	writeErr := vault.WriteDoc(path, out)
	if writeErr != nil {
		return writeErr
	}

	o.Println(path)

	return nil
}
