package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/CodeAndRes/Brackets/internal/journal"
	"github.com/CodeAndRes/Brackets/internal/vault"

	flag "github.com/spf13/pflag"
)

var (
	errYearMonthRequired = errors.New("year and month arguments are required")
	errBadYear           = errors.New("invalid year")
	errBadMonth          = errors.New("invalid month (must be 1-12)")
)

// ConsolidateMonthCmd returns the consolidate-month command.
func ConsolidateMonthCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("consolidate-month", flag.ContinueOnError)
	fs.Bool("force", false, "Replace an existing rollup")

	return &Command{
		Flags: fs,
		Usage: "consolidate-month <year> <month>",
		Short: "Merge a month's weekly documents into one rollup",
		Long: `Merge the weekly documents of one month into a single rollup document,
most recent week first. An existing rollup is only replaced with --force.
Prints the written path.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execConsolidateMonth(o, cfg, fs, args)
		},
	}
}

func execConsolidateMonth(o *IO, cfg *journal.Config, fs *flag.FlagSet, args []string) error {
	if len(args) < 2 {
		return errYearMonthRequired
	}

	year, month, argErr := parseYearMonth(args[0], args[1])
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

	path := filepath.Join(cfg.VaultAbs, journal.MonthRollupFileName(year, month))

	force, _ := fs.GetBool("force")
	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return &journal.AlreadyExistsError{Path: path}
		}
	}

	var weeks []journal.WeekSource

	for _, doc := range listing.Weeklies(year, month) {
		content, readErr := readDoc(doc.Path)
		if readErr != nil {
			return readErr
		}

		weeks = append(weeks, journal.WeekSource{Week: doc.Info.Week, Content: content})
	}

	topics := ""

	if doc, ok := listing.MonthTopics(year, month); ok {
		content, readErr := readDoc(doc.Path)
		if readErr != nil {
			return readErr
		}

		topics = content
	}

	out, consolidateErr := journal.ConsolidateMonth(cfg, year, month, weeks, topics, timeNow())
	if consolidateErr != nil {
		return consolidateErr
	}

	writeErr := vault.WriteDoc(path, out)
	if writeErr != nil {
		return writeErr
	}

	o.Println(path)

	return nil
}

func parseYearMonth(yearArg, monthArg string) (int, time.Month, error) {
	year, yearErr := parseYear(yearArg)
	if yearErr != nil {
		return 0, 0, yearErr
	}

	month, monthErr := strconv.Atoi(monthArg)
	if monthErr != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: %s", errBadMonth, monthArg)
	}

	return year, time.Month(month), nil
}

func parseYear(arg string) (int, error) {
	year, err := strconv.Atoi(arg)
	if err != nil || year < 1000 || year > 9999 {
		return 0, fmt.Errorf("%w: %s", errBadYear, arg)
	}

	return year, nil
}

func readDoc(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return string(content), nil
}
