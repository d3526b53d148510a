package journal

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderWeek renders a weekly document in the canonical layout. Parsing
// the result with ParseWeek and rendering again reproduces it byte for
// byte.
func RenderWeek(cfg *Config, w *WeekDocument) string {
	var b strings.Builder

	b.WriteString(weekHeaderPrefix)
	fmt.Fprintf(&b, "%02d (%s - %s)", w.Week, w.Start.Format(dateLayout), w.End.Format(dateLayout))

	if w.Weight != "" {
		b.WriteString(" ")
		b.WriteString(w.Weight)
	}

	b.WriteString("\n\n")

	b.WriteString(topicsHeading)
	b.WriteString("\n")
	renderTree(&b, cfg, &w.Objectives)

	b.WriteString("\n")
	b.WriteString(topicsSeparator)
	b.WriteString("\n\n")
	b.WriteString(notesHeading)
	b.WriteString("\n")

	for i := range w.Days {
		day := &w.Days[i]

		b.WriteString("\n")
		b.WriteString(renderDayHeading(cfg, day))
		b.WriteString("\n\n")

		b.WriteString(dayTasksHeading)
		b.WriteString("\n")
		renderTree(&b, cfg, &day.Tasks)

		b.WriteString("\n")
		b.WriteString(completedHeading)
		b.WriteString("\n")
		renderTree(&b, cfg, &day.Completed)

		if len(day.Notes) > 0 {
			b.WriteString("\n")

			for _, line := range day.Notes {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func renderDayHeading(cfg *Config, day *DaySection) string {
	var b strings.Builder

	b.WriteString("## ")
	b.WriteString(day.Meta.Emoji)
	b.WriteString(cfg.WeekdayName(day.Date.Weekday()))
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(day.Date.Day()))

	if day.Meta.Note != "" {
		b.WriteString(" (")
		b.WriteString(day.Meta.Note)
		b.WriteString(")")
	}

	return b.String()
}

// renderTree writes the tree's checklist lines in source order, one line
// per node, depth rendered as indentation.
func renderTree(b *strings.Builder, cfg *Config, t *Tree) {
	for _, root := range t.Roots() {
		renderNode(b, cfg, t, root)
	}
}

func renderNode(b *strings.Builder, cfg *Config, t *Tree, idx int) {
	n := t.Nodes[idx]

	b.WriteString(strings.Repeat(" ", n.Depth*cfg.indentUnit()))

	if n.Done {
		b.WriteString("- [x]")
	} else {
		b.WriteString("- [ ]")
	}

	if n.Text != "" {
		b.WriteString(" ")
		b.WriteString(n.Text)
	}

	b.WriteString("\n")

	for _, child := range n.Children {
		renderNode(b, cfg, t, child)
	}
}

// RenderMonthTopics renders a month-topics document: the shared title
// line and the body.
func RenderMonthTopics(cfg *Config, doc *MonthTopicsDoc) string {
	var b strings.Builder

	b.WriteString(cfg.MonthTitleLine(doc.Month))
	b.WriteString("\n")

	if len(doc.Body) > 0 {
		b.WriteString("\n")

		for _, line := range doc.Body {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}
