package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CodeAndRes/Brackets/internal/calendar"
	"github.com/CodeAndRes/Brackets/internal/journal"

	flag "github.com/spf13/pflag"
)

var errDateRequired = errors.New("date argument is required")

// CalendarCmd returns the calendar command.
func CalendarCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("calendar", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "calendar <date>",
		Short: "Resolve a date against the work calendar",
		Long: `Resolve one date (YYYY-MM-DD) through the work calendar: weekday,
location, and any holiday or vacation note. Useful for checking
work_calendar.yaml.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execCalendar(o, cfg, args)
		},
	}
}

func execCalendar(o *IO, cfg *journal.Config, args []string) error {
	if len(args) < 1 {
		return errDateRequired
	}

	date, parseErr := time.Parse(dateLayout, args[0])
	if parseErr != nil {
		return fmt.Errorf("%w: %s", errBadDate, args[0])
	}

	sched, calErr := calendar.Load(cfg.CalendarAbs)
	if calErr != nil {
		return calErr
	}

	weekday := cfg.WeekdayName(date.Weekday())

	if !sched.Workday(date) {
		o.Println(fmt.Sprintf("%s %s: not a workday", args[0], weekday))

		return nil
	}

	meta, metaErr := sched.DayMeta(date)
	if metaErr != nil {
		return metaErr
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s: %s%s", args[0], weekday, meta.Emoji, meta.Location)

	if meta.Note != "" {
		fmt.Fprintf(&b, " (%s)", meta.Note)
	}

	o.Println(b.String())

	return nil
}
