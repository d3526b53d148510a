package journal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Default display-name tables. The engine config can override the month
// and weekday tables; the Spanish month names used for yearly rollup
// section headings are fixed.
var (
	defaultMonthNames = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}

	spanishMonthNames = [12]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}

	defaultWeekdayNames = map[time.Weekday]string{
		time.Monday:    "Lunes",
		time.Tuesday:   "Martes",
		time.Wednesday: "Miércoles",
		time.Thursday:  "Jueves",
		time.Friday:    "Viernes",
		time.Saturday:  "Sábado",
		time.Sunday:    "Domingo",
	}
)

// SeasonEmoji maps a month to its seasonal emoji.
func SeasonEmoji(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "❄️"
	case time.March, time.April, time.May:
		return "🌱"
	case time.June, time.July, time.August:
		return "☀️"
	default:
		return "🍂"
	}
}

// MonthSectionName returns the Spanish month name used for month section
// headings inside yearly rollups.
func MonthSectionName(m time.Month) string {
	return spanishMonthNames[m-1]
}

// NextWeekNumber returns the week number following week, wrapping back
// to 1 after week 52.
func NextWeekNumber(week int) int {
	if week >= 52 {
		return 1
	}

	return week + 1
}

// Document filename builders. These define the vault naming contract.

func WeeklyFileName(year int, month time.Month, week int) string {
	return fmt.Sprintf("[%04d][%02d]Week%02d.md", year, month, week)
}

func MonthTopicsFileName(year int, month time.Month) string {
	return fmt.Sprintf("[%04d][%02d]MonthTopics.md", year, month)
}

func YearTopicsFileName(year int) string {
	return fmt.Sprintf("[%04d][00]YearTopics.md", year)
}

func MonthRollupFileName(year int, month time.Month) string {
	return fmt.Sprintf("[%04d][%02d].md", year, month)
}

func YearRollupFileName(year int) string {
	return fmt.Sprintf("[%04d].md", year)
}

// DocInfo classifies one vault filename.
type DocInfo struct {
	Kind  string
	Year  int
	Month time.Month

	// Week is set for weekly documents only.
	Week int
}

var (
	weeklyNameRe      = regexp.MustCompile(`^\[(\d{4})\]\[(\d{2})\]Week(\d{2})\.md$`)
	monthTopicsNameRe = regexp.MustCompile(`^\[(\d{4})\]\[(\d{2})\]MonthTopics\.md$`)
	yearTopicsNameRe  = regexp.MustCompile(`^\[(\d{4})\]\[00\]YearTopics\.md$`)
	monthRollupNameRe = regexp.MustCompile(`^\[(\d{4})\]\[(\d{2})\]\.md$`)
	yearRollupNameRe  = regexp.MustCompile(`^\[(\d{4})\]\.md$`)
)

// ParseDocName classifies a filename against the vault naming contract.
// The second return is false for names that are not journal documents.
func ParseDocName(name string) (DocInfo, bool) {
	if m := weeklyNameRe.FindStringSubmatch(name); m != nil {
		month := mustInt(m[2])
		week := mustInt(m[3])

		if month < 1 || month > 12 || week < 1 || week > 53 {
			return DocInfo{}, false
		}

		return DocInfo{
			Kind:  KindWeekly,
			Year:  mustInt(m[1]),
			Month: time.Month(month),
			Week:  week,
		}, true
	}

	if m := monthTopicsNameRe.FindStringSubmatch(name); m != nil {
		month := mustInt(m[2])
		if month < 1 || month > 12 {
			return DocInfo{}, false
		}

		return DocInfo{Kind: KindMonthTopics, Year: mustInt(m[1]), Month: time.Month(month)}, true
	}

	if m := yearTopicsNameRe.FindStringSubmatch(name); m != nil {
		return DocInfo{Kind: KindYearTopics, Year: mustInt(m[1])}, true
	}

	if m := monthRollupNameRe.FindStringSubmatch(name); m != nil {
		month := mustInt(m[2])
		if month < 1 || month > 12 {
			return DocInfo{}, false
		}

		return DocInfo{Kind: KindMonthRollup, Year: mustInt(m[1]), Month: time.Month(month)}, true
	}

	if m := yearRollupNameRe.FindStringSubmatch(name); m != nil {
		return DocInfo{Kind: KindYearRollup, Year: mustInt(m[1])}, true
	}

	return DocInfo{}, false
}

func mustInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		// Unreachable: every caller matched \d+ first.
		panic(err)
	}

	return n
}
