// Package calendar loads the work calendar file and resolves dates to
// work-location metadata. A loaded Schedule implements the
// journal.Calendar interface consumed by the weekly generator.
package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/CodeAndRes/Brackets/internal/journal"

	"gopkg.in/yaml.v3"
)

var (
	// ErrCalendarNotFound indicates the work calendar file does not exist.
	ErrCalendarNotFound = errors.New("work calendar file not found")

	// ErrCalendarInvalid indicates the work calendar file failed schema
	// or semantic validation.
	ErrCalendarInvalid = errors.New("invalid work calendar")
)

const (
	// offKey is the reserved location for holidays and vacation days.
	// Every calendar must define it.
	offKey = "off"

	// alternatingValue marks a weekday whose location flips with ISO
	// week parity.
	alternatingValue = "alternating"

	dateLayout = "2006-01-02"
)

// Location is a place of work with the emoji used in day headings.
type Location struct {
	Name  string
	Emoji string
}

// Schedule is a validated work calendar: the weekly location pattern plus
// holiday and vacation overrides.
type Schedule struct {
	locations map[string]Location
	defaults  map[time.Weekday]string
	evenWeek  string
	oddWeek   string
	holidays  map[string]string
	vacations []vacationSpan
}

type vacationSpan struct {
	start time.Time
	end   time.Time
	name  string
}

// calendarFile mirrors the YAML schema of work_calendar.yaml.
type calendarFile struct {
	Version     int                     `yaml:"version"`
	Locations   map[string]locationSpec `yaml:"locations"`
	WorkPattern workPatternSpec         `yaml:"work_pattern"`
	Calendar    dateListsSpec           `yaml:"calendar"`
}

type locationSpec struct {
	Name  string `yaml:"name"`
	Emoji string `yaml:"emoji"`
}

type workPatternSpec struct {
	AlternatingDay string            `yaml:"alternating_day"`
	EvenWeek       string            `yaml:"even_week"`
	OddWeek        string            `yaml:"odd_week"`
	Defaults       map[string]string `yaml:"defaults"`
}

type dateListsSpec struct {
	Holidays  []holidaySpec  `yaml:"holidays"`
	Vacations []vacationSpec `yaml:"vacations"`
}

type holidaySpec struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

type vacationSpec struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Name  string `yaml:"name"`
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Load reads and validates the work calendar at path.
func Load(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, path)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	sched, parseErr := Parse(data)
	if parseErr != nil {
		return nil, fmt.Errorf("%s: %w", path, parseErr)
	}

	return sched, nil
}

// Parse decodes and validates work calendar YAML.
func Parse(data []byte) (*Schedule, error) {
	var file calendarFile

	// Unknown keys are load errors.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	decodeErr := dec.Decode(&file)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarInvalid, decodeErr)
	}

	return buildSchedule(file)
}

func buildSchedule(file calendarFile) (*Schedule, error) {
	if file.Version != 1 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCalendarInvalid, file.Version)
	}

	if len(file.Locations) == 0 {
		return nil, fmt.Errorf("%w: no locations defined", ErrCalendarInvalid)
	}

	sched := &Schedule{
		locations: make(map[string]Location, len(file.Locations)),
		defaults:  make(map[time.Weekday]string, len(file.WorkPattern.Defaults)),
		evenWeek:  file.WorkPattern.EvenWeek,
		oddWeek:   file.WorkPattern.OddWeek,
		holidays:  make(map[string]string, len(file.Calendar.Holidays)),
	}

	for key, spec := range file.Locations {
		if spec.Name == "" || spec.Emoji == "" {
			return nil, fmt.Errorf("%w: location %q needs a name and an emoji", ErrCalendarInvalid, key)
		}

		sched.locations[key] = Location{Name: spec.Name, Emoji: spec.Emoji}
	}

	if _, ok := sched.locations[offKey]; !ok {
		return nil, fmt.Errorf("%w: missing %q location", ErrCalendarInvalid, offKey)
	}

	validatePatternErr := sched.validatePattern(file.WorkPattern)
	if validatePatternErr != nil {
		return nil, validatePatternErr
	}

	for _, h := range file.Calendar.Holidays {
		_, parseErr := time.Parse(dateLayout, h.Date)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: holiday date %q", ErrCalendarInvalid, h.Date)
		}

		if h.Name == "" {
			return nil, fmt.Errorf("%w: holiday %s has no name", ErrCalendarInvalid, h.Date)
		}

		sched.holidays[h.Date] = h.Name
	}

	for _, v := range file.Calendar.Vacations {
		span, spanErr := parseVacation(v)
		if spanErr != nil {
			return nil, spanErr
		}

		sched.vacations = append(sched.vacations, span)
	}

	return sched, nil
}

func (s *Schedule) validatePattern(pattern workPatternSpec) error {
	if len(pattern.Defaults) == 0 {
		return fmt.Errorf("%w: work_pattern.defaults is empty", ErrCalendarInvalid)
	}

	needsParity := false

	for key, value := range pattern.Defaults {
		day, ok := weekdays[key]
		if !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrCalendarInvalid, key)
		}

		if value == alternatingValue {
			needsParity = true
		} else if _, known := s.locations[value]; !known {
			return fmt.Errorf("%w: %s maps to unknown location %q", ErrCalendarInvalid, key, value)
		}

		s.defaults[day] = value
	}

	if needsParity {
		if _, ok := s.locations[s.evenWeek]; !ok {
			return fmt.Errorf("%w: even_week location %q unknown", ErrCalendarInvalid, s.evenWeek)
		}

		if _, ok := s.locations[s.oddWeek]; !ok {
			return fmt.Errorf("%w: odd_week location %q unknown", ErrCalendarInvalid, s.oddWeek)
		}
	}

	if pattern.AlternatingDay != "" {
		day, ok := weekdays[pattern.AlternatingDay]
		if !ok {
			return fmt.Errorf("%w: alternating_day %q is not a weekday", ErrCalendarInvalid, pattern.AlternatingDay)
		}

		if s.defaults[day] != alternatingValue {
			return fmt.Errorf("%w: alternating_day %s is not mapped to %q",
				ErrCalendarInvalid, pattern.AlternatingDay, alternatingValue)
		}
	}

	return nil
}

func parseVacation(v vacationSpec) (vacationSpan, error) {
	start, startErr := time.Parse(dateLayout, v.Start)
	if startErr != nil {
		return vacationSpan{}, fmt.Errorf("%w: vacation start %q", ErrCalendarInvalid, v.Start)
	}

	end, endErr := time.Parse(dateLayout, v.End)
	if endErr != nil {
		return vacationSpan{}, fmt.Errorf("%w: vacation end %q", ErrCalendarInvalid, v.End)
	}

	if end.Before(start) {
		return vacationSpan{}, fmt.Errorf("%w: vacation %s - %s ends before it starts",
			ErrCalendarInvalid, v.Start, v.End)
	}

	if v.Name == "" {
		return vacationSpan{}, fmt.Errorf("%w: vacation starting %s has no name", ErrCalendarInvalid, v.Start)
	}

	return vacationSpan{start: start, end: end, name: v.Name}, nil
}

// Workday reports whether the work pattern covers the date's weekday.
// Holidays and vacations inside the pattern still count as workdays; they
// resolve to the off location with a note.
func (s *Schedule) Workday(d time.Time) bool {
	_, ok := s.defaults[d.Weekday()]

	return ok
}

// DayMeta resolves the location annotation for a date. Holiday and
// vacation overrides win over the weekly pattern; an alternating weekday
// picks the even- or odd-week location by ISO week parity.
func (s *Schedule) DayMeta(d time.Time) (journal.DayMeta, error) {
	if name, ok := s.holidays[d.Format(dateLayout)]; ok {
		return s.offMeta(name), nil
	}

	for _, span := range s.vacations {
		if !d.Before(span.start) && !d.After(span.end) {
			return s.offMeta(span.name), nil
		}
	}

	key, ok := s.defaults[d.Weekday()]
	if !ok {
		return journal.DayMeta{}, fmt.Errorf("no work location for %s", strings.ToLower(d.Weekday().String()))
	}

	if key == alternatingValue {
		key = s.parityLocation(d)
	}

	loc := s.locations[key]

	return journal.DayMeta{Location: loc.Name, Emoji: loc.Emoji}, nil
}

func (s *Schedule) offMeta(note string) journal.DayMeta {
	loc := s.locations[offKey]

	return journal.DayMeta{Location: loc.Name, Emoji: loc.Emoji, Note: note}
}

func (s *Schedule) parityLocation(d time.Time) string {
	_, week := d.ISOWeek()
	if week%2 == 0 {
		return s.evenWeek
	}

	return s.oddWeek
}
