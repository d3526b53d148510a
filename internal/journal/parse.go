package journal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Fixed structural literals of the weekly document format. Parser and
// renderer must agree on these exactly for round-tripping.
const (
	weekHeaderPrefix = "# 🗓️Week "
	topicsHeading    = "## ✅Topics"
	notesHeading     = "## 📝Notes"
	dayTasksHeading  = "### 📋Tareas del Día"
	completedHeading = "### ✅Tareas Completadas"
	topicsSeparator  = "  ---"

	dateLayout = "2006-01-02"
)

var (
	weekHeaderRe = regexp.MustCompile(`^# 🗓️Week (\d+) \((\d{4}-\d{2}-\d{2}) - (\d{4}-\d{2}-\d{2})\)(?: (.+))?$`)
	taskLineRe   = regexp.MustCompile(`^( *)- \[([ xX])\](?: (.*))?$`)
	dayTailRe    = regexp.MustCompile(`^(\d{1,2})(?: \((.+)\))?$`)
)

// lineToken is one input line with its 1-based line number.
type lineToken struct {
	text string
	num  int
}

type lineSource struct {
	lines []string
	pos   int
}

func newLineSource(content string) *lineSource {
	lines := strings.Split(content, "\n")

	// A trailing newline produces one empty trailing element, not a line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return &lineSource{lines: lines}
}

func (s *lineSource) next() (lineToken, bool) {
	if s.pos >= len(s.lines) {
		return lineToken{}, false
	}

	tok := lineToken{text: s.lines[s.pos], num: s.pos + 1}
	s.pos++

	return tok, true
}

type weekParser struct {
	cfg  *Config
	path string
	src  *lineSource

	doc      WeekDocument
	inTopics bool

	// Current day section, nil between days.
	day     *DaySection
	dayNum  int
	dayLine int
	notes   []string

	// stack[d] is the arena index of the most recent node at depth d in
	// the current target tree.
	target *Tree
	stack  []int

	sawZone bool
}

// ParseWeek parses one weekly document. The path is used only to decorate
// errors and may be empty. Parsing is tolerant of malformed checklist
// indentation and stray free text; it fails only when the structural
// headings that define a weekly document are absent or the header dates
// are unusable.
func ParseWeek(cfg *Config, path, content string) (*WeekDocument, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ParseError{Path: path, Cause: ErrEmptyDocument.Error()}
	}

	p := &weekParser{cfg: cfg, path: path, src: newLineSource(content)}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	for {
		tok, ok := p.src.next()
		if !ok {
			break
		}

		if err := p.parseLine(tok); err != nil {
			return nil, err
		}
	}

	if err := p.finishDay(); err != nil {
		return nil, err
	}

	if len(p.doc.Days) == 0 {
		return nil, &ParseError{Path: path, Cause: "no day sections"}
	}

	if !p.sawZone {
		return nil, &ParseError{Path: path, Cause: "no task zones"}
	}

	return &p.doc, nil
}

func (p *weekParser) errf(line int, format string, args ...any) error {
	return &ParseError{Path: p.path, Line: line, Cause: fmt.Sprintf(format, args...)}
}

// parseHeader consumes blank lines and the week header line.
func (p *weekParser) parseHeader() error {
	for {
		tok, ok := p.src.next()
		if !ok {
			return &ParseError{Path: p.path, Cause: "missing week header"}
		}

		if strings.TrimSpace(tok.text) == "" {
			continue
		}

		m := weekHeaderRe.FindStringSubmatch(tok.text)
		if m == nil {
			return p.errf(tok.num, "missing week header")
		}

		start, startErr := time.Parse(dateLayout, m[2])
		if startErr != nil {
			return p.errf(tok.num, "invalid start date %s", m[2])
		}

		end, endErr := time.Parse(dateLayout, m[3])
		if endErr != nil {
			return p.errf(tok.num, "invalid end date %s", m[3])
		}

		if end.Before(start) {
			return p.errf(tok.num, "week range ends before it starts")
		}

		p.doc.Week = mustInt(m[1])
		p.doc.Start = start
		p.doc.End = end
		p.doc.Weight = m[4]

		return nil
	}
}

func (p *weekParser) parseLine(tok lineToken) error {
	line := tok.text

	if strings.TrimSpace(line) == "" {
		// Blank lines inside a notes block are content; elsewhere they
		// are separators.
		if p.day != nil && len(p.notes) > 0 {
			p.notes = append(p.notes, "")
		}

		return nil
	}

	switch {
	case line == topicsHeading:
		p.inTopics = true
		p.target = &p.doc.Objectives
		p.stack = p.stack[:0]

		return nil

	case line == notesHeading:
		p.inTopics = false
		p.target = nil

		return nil

	case p.inTopics && line == topicsSeparator:
		p.inTopics = false
		p.target = nil

		return nil

	case line == dayTasksHeading:
		if p.day == nil {
			return p.errf(tok.num, "task zone outside a day section")
		}

		p.target = &p.day.Tasks
		p.stack = p.stack[:0]
		p.sawZone = true

		return nil

	case line == completedHeading:
		if p.day == nil {
			return p.errf(tok.num, "task zone outside a day section")
		}

		p.target = &p.day.Completed
		p.stack = p.stack[:0]
		p.sawZone = true

		return nil
	}

	if strings.HasPrefix(line, "## ") {
		day, dayNum, ok := p.parseDayHeading(line)
		if ok {
			if err := p.finishDay(); err != nil {
				return err
			}

			p.day = &day
			p.dayNum = dayNum
			p.dayLine = tok.num
			p.inTopics = false
			p.target = &p.day.Tasks
			p.stack = p.stack[:0]
			p.notes = nil

			return nil
		}

		// Unknown sub-heading: free text when inside a day, noise before.
		if p.day != nil {
			p.notes = append(p.notes, line)
		}

		return nil
	}

	if m := taskLineRe.FindStringSubmatch(line); m != nil && p.target != nil {
		depth := len(m[1]) / p.cfg.indentUnit()
		done := m[2] == "x" || m[2] == "X"

		p.addTask(depth, m[3], done)

		return nil
	}

	// Anything else is free text, kept verbatim on the current day.
	if p.day != nil {
		p.notes = append(p.notes, line)
	}

	return nil
}

// addTask places one checklist line into the current target tree. A node
// at depth d attaches to the most recent node at depth d-1; if no such
// node exists the line is treated as top-level.
func (p *weekParser) addTask(depth int, text string, done bool) {
	if depth > len(p.stack) {
		depth = 0
	}

	parent := -1
	if depth > 0 {
		parent = p.stack[depth-1]
	}

	idx := p.target.Add(parent, text, done)

	p.stack = append(p.stack[:depth], idx)
}

// parseDayHeading recognizes "## {emoji}{Weekday} {num}" with an optional
// " ({note})" tail. Headings that do not match any configured weekday name
// are not day headings.
func (p *weekParser) parseDayHeading(line string) (DaySection, int, bool) {
	rest := strings.TrimPrefix(line, "## ")

	head, tail, found := strings.Cut(rest, " ")
	if !found {
		return DaySection{}, 0, false
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := p.cfg.WeekdayName(wd)
		if name == "" || !strings.HasSuffix(head, name) {
			continue
		}

		m := dayTailRe.FindStringSubmatch(tail)
		if m == nil {
			return DaySection{}, 0, false
		}

		day := DaySection{
			Meta: DayMeta{
				Emoji: strings.TrimSuffix(head, name),
				Note:  m[2],
			},
		}

		return day, mustInt(m[1]), true
	}

	return DaySection{}, 0, false
}

// finishDay resolves the pending day's date against the header range and
// appends it to the document.
func (p *weekParser) finishDay() error {
	if p.day == nil {
		return nil
	}

	resolved := false

	for d := p.doc.Start; !d.After(p.doc.End); d = d.AddDate(0, 0, 1) {
		if d.Day() == p.dayNum {
			p.day.Date = d
			resolved = true

			break
		}
	}

	if !resolved {
		return p.errf(p.dayLine, "day %d is outside the week range", p.dayNum)
	}

	for len(p.notes) > 0 && p.notes[len(p.notes)-1] == "" {
		p.notes = p.notes[:len(p.notes)-1]
	}

	p.day.Notes = p.notes
	p.doc.Days = append(p.doc.Days, *p.day)
	p.day = nil
	p.notes = nil
	p.target = nil

	return nil
}

// ParseMonthTopics parses a month-topics document: the shared month title
// line followed by an opaque body.
func ParseMonthTopics(cfg *Config, path, content string) (*MonthTopicsDoc, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ParseError{Path: path, Cause: ErrEmptyDocument.Error()}
	}

	src := newLineSource(content)

	for {
		tok, ok := src.next()
		if !ok {
			return nil, &ParseError{Path: path, Cause: "missing month topics title"}
		}

		if strings.TrimSpace(tok.text) == "" {
			continue
		}

		for m := time.January; m <= time.December; m++ {
			if tok.text != cfg.MonthTitleLine(m) {
				continue
			}

			doc := &MonthTopicsDoc{Month: m}

			for {
				body, more := src.next()
				if !more {
					break
				}

				doc.Body = append(doc.Body, body.text)
			}

			doc.Body = trimBlankEdges(doc.Body)

			return doc, nil
		}

		return nil, &ParseError{Path: path, Line: tok.num, Cause: "missing month topics title"}
	}
}

func trimBlankEdges(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
