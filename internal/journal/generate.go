package journal

import (
	"fmt"
	"time"
)

// Calendar supplies work-location metadata per date. The engine consumes
// it as an interface; loading and resolving the underlying configuration
// is the calendar package's concern.
type Calendar interface {
	// Workday reports whether the date is part of the configured work
	// pattern.
	Workday(d time.Time) bool

	// DayMeta returns the location annotation for a workday.
	DayMeta(d time.Time) (DayMeta, error)
}

// BuildWeekInput describes the week to generate.
type BuildWeekInput struct {
	// Start and End bound the candidate date range, inclusive. Days
	// outside the calendar's work pattern are skipped.
	Start time.Time
	End   time.Time

	// Week is the week number to stamp on the document. Zero means
	// derive the ISO week of the first workday in range.
	Week int

	// Weight is an optional free-form annotation after the header range.
	Weight string

	Carry    CarryoverSet
	Calendar Calendar
}

// BuildWeek generates the next weekly document. All carried day tasks are
// placed on the first workday; every later workday starts with one empty
// placeholder task. Completed zones start empty. The same input always
// produces the same document.
func BuildWeek(cfg *Config, in BuildWeekInput) (*WeekDocument, error) {
	if in.End.Before(in.Start) {
		return nil, fmt.Errorf("%w: %s - %s", ErrEndBeforeStart,
			in.Start.Format(dateLayout), in.End.Format(dateLayout))
	}

	doc := &WeekDocument{
		Week:   in.Week,
		Start:  in.Start,
		End:    in.End,
		Weight: in.Weight,
	}

	copyTree(&doc.Objectives, &in.Carry.Objectives)

	for d := in.Start; !d.After(in.End); d = d.AddDate(0, 0, 1) {
		if !in.Calendar.Workday(d) {
			continue
		}

		meta, metaErr := in.Calendar.DayMeta(d)
		if metaErr != nil {
			return nil, fmt.Errorf("calendar: %s: %w", d.Format(dateLayout), metaErr)
		}

		day := DaySection{Date: d, Meta: meta}

		if len(doc.Days) == 0 && !in.Carry.Tasks.Empty() {
			copyTree(&day.Tasks, &in.Carry.Tasks)
		} else {
			day.Tasks.Add(-1, "", false)
		}

		doc.Days = append(doc.Days, day)
	}

	if len(doc.Days) == 0 {
		return nil, fmt.Errorf("%w: %s - %s", ErrNoWorkdays,
			in.Start.Format(dateLayout), in.End.Format(dateLayout))
	}

	if doc.Week == 0 {
		_, doc.Week = doc.Days[0].Date.ISOWeek()
	}

	return doc, nil
}

// NextWeekRange computes the automatic generation range following prev:
// the seven calendar days after prev's end, with the next week number.
func NextWeekRange(prev *WeekDocument) (start, end time.Time, week int) {
	start = prev.End.AddDate(0, 0, 1)
	end = start.AddDate(0, 0, 6)
	week = NextWeekNumber(prev.Week)

	return start, end, week
}

// copyTree appends a full copy of src's nodes to dst, preserving
// structure and order.
func copyTree(dst, src *Tree) {
	for _, root := range src.Roots() {
		copySubtree(dst, src, root, -1)
	}
}

func copySubtree(dst, src *Tree, idx, dstParent int) {
	n := src.Nodes[idx]

	copyIdx := dst.Add(dstParent, n.Text, n.Done)

	for _, child := range n.Children {
		copySubtree(dst, src, child, copyIdx)
	}
}

// BuildMonthTopics generates the next month-topics document from the
// previous one: the month advances (December wraps to January), completed
// checklist lines are dropped, everything else is kept verbatim.
func BuildMonthTopics(prev *MonthTopicsDoc) *MonthTopicsDoc {
	next := &MonthTopicsDoc{Month: prev.Month%12 + 1}

	for _, line := range prev.Body {
		if m := taskLineRe.FindStringSubmatch(line); m != nil {
			if m[2] == "x" || m[2] == "X" {
				continue
			}
		}

		next.Body = append(next.Body, line)
	}

	next.Body = trimBlankEdges(next.Body)

	return next
}
