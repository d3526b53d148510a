package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/CodeAndRes/Brackets/internal/journal"
	"github.com/CodeAndRes/Brackets/internal/vault"

	"github.com/mattn/go-runewidth"
	flag "github.com/spf13/pflag"
)

var errInvalidKind = errors.New("invalid kind (weekly|monthly|yearly|topics)")

// kindFilters maps the --kind flag values to document kinds.
var kindFilters = map[string][]string{
	"weekly":  {journal.KindWeekly},
	"monthly": {journal.KindMonthRollup},
	"yearly":  {journal.KindYearRollup},
	"topics":  {journal.KindMonthTopics, journal.KindYearTopics},
}

// ListCmd returns the list command.
func ListCmd(cfg *journal.Config) *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.Int("year", 0, "Only documents of this year")
	fs.String("kind", "", "Only documents of this kind (weekly|monthly|yearly|topics)")

	return &Command{
		Flags: fs,
		Usage: "list [flags]",
		Short: "List vault documents, newest first",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execList(o, cfg, fs)
		},
	}
}

func execList(o *IO, cfg *journal.Config, fs *flag.FlagSet) error {
	kind, _ := fs.GetString("kind")

	var kinds []string

	if fs.Changed("kind") {
		var ok bool

		kinds, ok = kindFilters[kind]
		if !ok {
			return fmt.Errorf("%w: %s", errInvalidKind, kind)
		}
	}

	year, _ := fs.GetInt("year")

	listing, scanErr := vault.Scan(cfg.VaultAbs)
	if scanErr != nil {
		return scanErr
	}

	type row struct {
		title string
		kind  string
		name  string
	}

	var rows []row

	titleWidth := 0

	// The scan is ascending by period; walk it backwards for newest first.
	docs := listing.All()
	for i := len(docs) - 1; i >= 0; i-- {
		doc := docs[i]

		if year != 0 && doc.Info.Year != year {
			continue
		}

		if kinds != nil && !slices.Contains(kinds, doc.Info.Kind) {
			continue
		}

		r := row{title: docTitle(doc.Path), kind: doc.Info.Kind, name: doc.Name}

		// Titles carry emoji; byte or rune counts would misalign the
		// columns after them.
		if w := runewidth.StringWidth(r.title); w > titleWidth {
			titleWidth = w
		}

		rows = append(rows, r)
	}

	for _, r := range rows {
		o.Println(fmt.Sprintf("%s  %-13s %s", runewidth.FillRight(r.title, titleWidth), r.kind, r.name))
	}

	return nil
}

// docTitle reads the first non-blank line of a document.
func docTitle(path string) string {
	file, openErr := os.Open(path)
	if openErr != nil {
		return "-"
	}

	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line
		}
	}

	return "-"
}
