// Package vault is the filesystem layer of the journal: scanning and
// classifying documents, atomic writes, the per-vault run lock, and the
// global search/replace used by renames.
package vault

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/CodeAndRes/Brackets/internal/journal"
)

// Doc is one classified vault document.
type Doc struct {
	Path string // absolute path
	Name string // base name
	Info journal.DocInfo
}

// Listing holds scan results, sorted ascending by period so the most
// recent document of a kind is the last match.
type Listing struct {
	root string
	docs []Doc
}

// Scan walks the vault root and classifies every file whose name matches
// the document naming contract. Dot-directories are skipped; files with
// other names are ignored.
func Scan(root string) (*Listing, error) {
	listing := &Listing{root: root}

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return fs.SkipDir
			}

			return nil
		}

		info, ok := journal.ParseDocName(entry.Name())
		if !ok {
			return nil
		}

		listing.docs = append(listing.docs, Doc{Path: path, Name: entry.Name(), Info: info})

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan vault %s: %w", root, walkErr)
	}

	slices.SortFunc(listing.docs, func(a, b Doc) int {
		if a.Info.Year != b.Info.Year {
			return a.Info.Year - b.Info.Year
		}

		if a.Info.Month != b.Info.Month {
			return int(a.Info.Month) - int(b.Info.Month)
		}

		if a.Info.Week != b.Info.Week {
			return a.Info.Week - b.Info.Week
		}

		return strings.Compare(a.Name, b.Name)
	})

	return listing, nil
}

// Root returns the scanned vault root.
func (l *Listing) Root() string {
	return l.root
}

// All returns every document, oldest first. Callers must not mutate the
// returned slice.
func (l *Listing) All() []Doc {
	return l.docs
}

// Weeklies returns the weekly documents of one month, ascending by week.
func (l *Listing) Weeklies(year int, month time.Month) []Doc {
	var out []Doc

	for _, doc := range l.docs {
		if doc.Info.Kind == journal.KindWeekly && doc.Info.Year == year && doc.Info.Month == month {
			out = append(out, doc)
		}
	}

	return out
}

// MonthRollups returns the monthly rollup documents of one year,
// ascending by month.
func (l *Listing) MonthRollups(year int) []Doc {
	var out []Doc

	for _, doc := range l.docs {
		if doc.Info.Kind == journal.KindMonthRollup && doc.Info.Year == year {
			out = append(out, doc)
		}
	}

	return out
}

// MonthTopics returns the month-topics document of one month.
func (l *Listing) MonthTopics(year int, month time.Month) (Doc, bool) {
	for _, doc := range l.docs {
		if doc.Info.Kind == journal.KindMonthTopics && doc.Info.Year == year && doc.Info.Month == month {
			return doc, true
		}
	}

	return Doc{}, false
}

// YearTopics returns the year-topics document of one year.
func (l *Listing) YearTopics(year int) (Doc, bool) {
	for _, doc := range l.docs {
		if doc.Info.Kind == journal.KindYearTopics && doc.Info.Year == year {
			return doc, true
		}
	}

	return Doc{}, false
}

// LatestWeekly returns the most recent weekly document.
func (l *Listing) LatestWeekly() (Doc, bool) {
	return l.latest(journal.KindWeekly)
}

// LatestMonthTopics returns the most recent month-topics document.
func (l *Listing) LatestMonthTopics() (Doc, bool) {
	return l.latest(journal.KindMonthTopics)
}

func (l *Listing) latest(kind string) (Doc, bool) {
	for i := len(l.docs) - 1; i >= 0; i-- {
		if l.docs[i].Info.Kind == kind {
			return l.docs[i], true
		}
	}

	return Doc{}, false
}

// SourceMonths returns the months of a year that have weekly or
// month-topics documents, ascending. Yearly consolidation uses it to
// detect months that were never rolled up.
func (l *Listing) SourceMonths(year int) []time.Month {
	seen := make(map[time.Month]bool)

	var out []time.Month

	for _, doc := range l.docs {
		if doc.Info.Year != year {
			continue
		}

		if doc.Info.Kind != journal.KindWeekly && doc.Info.Kind != journal.KindMonthTopics {
			continue
		}

		if !seen[doc.Info.Month] {
			seen[doc.Info.Month] = true

			out = append(out, doc.Info.Month)
		}
	}

	slices.Sort(out)

	return out
}
