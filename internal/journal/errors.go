package journal

import (
	"errors"
	"fmt"
	"strings"
)

// Document kinds as they appear in filenames and error messages.
const (
	KindWeekly      = "weekly"
	KindMonthTopics = "month-topics"
	KindYearTopics  = "year-topics"
	KindMonthRollup = "month-rollup"
	KindYearRollup  = "year-rollup"
)

// Error variables for config loading and generation input validation.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrVaultEmpty         = errors.New("vault cannot be empty")
	ErrBadIndent          = errors.New("indent must be between 1 and 8")
	ErrBadMonths          = errors.New("months must list 12 names")
	ErrBadWeekdays        = errors.New("invalid weekdays table")
	ErrEndBeforeStart     = errors.New("end date is before start date")
	ErrNoWorkdays         = errors.New("no workdays in date range")
	ErrEmptyDocument      = errors.New("document is empty")
)

// ParseError reports structurally unrecognizable journal input.
// Line is 1-based and 0 when unknown.
type ParseError struct {
	Path  string
	Line  int
	Cause string
}

func (e *ParseError) Error() string {
	var b strings.Builder

	b.WriteString("parse")

	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}

	b.WriteString(": ")

	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}

	b.WriteString(e.Cause)

	return b.String()
}

// NoBaselineError reports automatic generation with no prior document
// of the required kind in the vault.
type NoBaselineError struct {
	VaultDir string
	Kind     string
}

func (e *NoBaselineError) Error() string {
	return fmt.Sprintf("no previous %s document in %s", e.Kind, e.VaultDir)
}

// AlreadyExistsError reports a target document that is already present
// when no overwrite was requested.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Path)
}

// NoDataError reports a consolidation target with no matching inputs.
// Month is zero for yearly consolidation.
type NoDataError struct {
	Year  int
	Month int
}

func (e *NoDataError) Error() string {
	if e.Month == 0 {
		return fmt.Sprintf("no source documents for year %d", e.Year)
	}

	return fmt.Sprintf("no source documents for %d-%02d", e.Year, e.Month)
}

// PartialDataWarning notes month rollups missing from a yearly
// consolidation. It is reported as a warning, never returned as an error.
type PartialDataWarning struct {
	Year          int
	MissingMonths []int
}

func (w PartialDataWarning) String() string {
	parts := make([]string, 0, len(w.MissingMonths))
	for _, m := range w.MissingMonths {
		parts = append(parts, fmt.Sprintf("%02d", m))
	}

	return fmt.Sprintf("year %d has weekly data but no month rollup for: %s", w.Year, strings.Join(parts, ", "))
}
