package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/CodeAndRes/Brackets/internal/calendar"
	"github.com/CodeAndRes/Brackets/internal/journal"
	"github.com/CodeAndRes/Brackets/internal/vault"

	flag "github.com/spf13/pflag"
)

var (
	errEndWithoutStart = errors.New("--end requires --start")
	errBadDate         = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

// GenerateWeeklyCmd returns the generate-weekly command.
func GenerateWeeklyCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("generate-weekly", flag.ContinueOnError)
	fs.String("start", "", "First day of the new week (YYYY-MM-DD); omit to continue after the last week")
	fs.String("end", "", "Last day of the new week (defaults to start+6)")
	fs.String("weight", "", "Weight annotation appended to the week header")
	fs.Bool("no-carryover", false, "Start the week without migrating pending tasks")

	return &Command{
		Flags: fs,
		Usage: "generate-weekly [flags]",
		Short: "Generate the next weekly document",
		Long: `Generate the next weekly journal document. Prints the written path.

Without --start the new week follows the most recent weekly document in
the vault: it starts the day after that week ends. With --start the given
range is used as-is. Pending tasks from the most recent week carry over
onto the first day unless --no-carryover is set.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execGenerateWeekly(o, cfg, fs)
		},
	}
}

func execGenerateWeekly(o *IO, cfg *journal.Config, fs *flag.FlagSet) error {
	lock, lockErr := vault.LockVault(cfg.VaultAbs)
	if lockErr != nil {
		return lockErr
	}
	defer lock.Release()

	listing, scanErr := vault.Scan(cfg.VaultAbs)
	if scanErr != nil {
		return scanErr
	}

	sched, calErr := calendar.Load(cfg.CalendarAbs)
	if calErr != nil {
		return calErr
	}

	in := journal.BuildWeekInput{Calendar: sched}
	in.Weight, _ = fs.GetString("weight")

	startStr, _ := fs.GetString("start")
	endStr, _ := fs.GetString("end")
	noCarry, _ := fs.GetBool("no-carryover")

	// Manual mode with carryover disabled never touches the previous
	// week, so a corrupt old document cannot block it.
	var prev *journal.WeekDocument

	if startStr == "" || !noCarry {
		var prevErr error

		prev, prevErr = parseLatestWeekly(cfg, listing)
		if prevErr != nil {
			return prevErr
		}
	}

	if startStr == "" {
		if endStr != "" {
			return errEndWithoutStart
		}

		// Automatic mode continues the most recent week.
		if prev == nil {
			return &journal.NoBaselineError{VaultDir: cfg.VaultAbs, Kind: journal.KindWeekly}
		}

		in.Start, in.End, in.Week = journal.NextWeekRange(prev)
	} else {
		var parseErr error

		in.Start, parseErr = time.Parse(dateLayout, startStr)
		if parseErr != nil {
			return fmt.Errorf("%w: --start %s", errBadDate, startStr)
		}

		if endStr == "" {
			in.End = in.Start.AddDate(0, 0, 6)
		} else {
			in.End, parseErr = time.Parse(dateLayout, endStr)
			if parseErr != nil {
				return fmt.Errorf("%w: --end %s", errBadDate, endStr)
			}
		}
	}

	if !noCarry && prev != nil {
		in.Carry = journal.Carryover(prev)
	}

	doc, buildErr := journal.BuildWeek(cfg, in)
	if buildErr != nil {
		return buildErr
	}

	path := filepath.Join(cfg.VaultAbs, journal.WeeklyFileName(doc.Year(), doc.Month(), doc.Week))

	if _, statErr := os.Stat(path); statErr == nil {
		return &journal.AlreadyExistsError{Path: path}
	}

	writeErr := vault.WriteDoc(path, journal.RenderWeek(cfg, doc))
	if writeErr != nil {
		return writeErr
	}

	o.Println(path)

	return nil
}

// parseLatestWeekly parses the most recent weekly document, or returns
// nil when the vault has none.
func parseLatestWeekly(cfg *journal.Config, listing *vault.Listing) (*journal.WeekDocument, error) {
	doc, ok := listing.LatestWeekly()
	if !ok {
		return nil, nil
	}

	content, readErr := os.ReadFile(doc.Path)
	if readErr != nil {
		return nil, fmt.Errorf("read %s: %w", doc.Path, readErr)
	}

	week, parseErr := journal.ParseWeek(cfg, doc.Path, string(content))
	if parseErr != nil {
		return nil, parseErr
	}

	return week, nil
}
