package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const stampLayout = "2006-01-02 15:04:05"

// WeekSource is one weekly document feeding a monthly consolidation.
type WeekSource struct {
	Week    int
	Content string
}

// MonthSource is one monthly rollup feeding a yearly consolidation.
type MonthSource struct {
	Month   time.Month
	Content string
}

// ConsolidateMonth merges the month's weekly documents into one rollup.
// Weeks render most recent first. The optional topics content becomes a
// leading section. The generated-at stamp comes from now so callers
// control determinism.
func ConsolidateMonth(cfg *Config, year int, month time.Month, weeks []WeekSource, topics string, now time.Time) (string, error) {
	if len(weeks) == 0 {
		return "", &NoDataError{Year: year, Month: int(month)}
	}

	sorted := make([]WeekSource, len(weeks))
	copy(sorted, weeks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Week > sorted[j].Week })

	var sections []rollupSection

	if strings.TrimSpace(topics) != "" {
		sections = append(sections, rollupSection{
			heading: "## 📋 Temas Mensuales",
			body:    sectionBody(topics, false),
		})
	}

	for _, w := range sorted {
		sections = append(sections, rollupSection{
			heading: fmt.Sprintf("## 🗓️ Semana %02d", w.Week),
			body:    sectionBody(w.Content, false),
		})
	}

	meta := []string{
		fmt.Sprintf("> Consolidado del mes %02d/%d", month, year),
		fmt.Sprintf("> Generado el %s", now.Format(stampLayout)),
	}

	return renderRollup(cfg.MonthTitleLine(month), meta, sections), nil
}

// ConsolidateYear merges the year's monthly rollups into one document.
// Months render December to January for the months present; gaps are the
// caller's concern to report.
func ConsolidateYear(cfg *Config, year int, months []MonthSource, topics string, now time.Time) (string, error) {
	if len(months) == 0 {
		return "", &NoDataError{Year: year}
	}

	sorted := make([]MonthSource, len(months))
	copy(sorted, months)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month > sorted[j].Month })

	var sections []rollupSection

	if strings.TrimSpace(topics) != "" {
		sections = append(sections, rollupSection{
			heading: "## 📅 Temas del Año",
			body:    sectionBody(topics, false),
		})
	}

	for _, m := range sorted {
		sections = append(sections, rollupSection{
			heading: fmt.Sprintf("## 🗓️ %s", MonthSectionName(m.Month)),
			body:    sectionBody(m.Content, true),
		})
	}

	meta := []string{
		fmt.Sprintf("> Consolidado de todo el año %d", year),
		fmt.Sprintf("> Generado el %s", now.Format(stampLayout)),
	}

	title := fmt.Sprintf("# 📅 Año %d", year)

	return renderRollup(title, meta, sections), nil
}

type rollupSection struct {
	heading string
	body    []string
}

// renderRollup assembles a rollup document: title, metadata lines, then
// sections separated by horizontal rules.
func renderRollup(title string, meta []string, sections []rollupSection) string {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n\n")

	for _, line := range meta {
		b.WriteString(line)
		b.WriteString("\n")
	}

	for i, sec := range sections {
		b.WriteString("\n")

		if i > 0 {
			b.WriteString("---\n\n")
		}

		b.WriteString(sec.heading)
		b.WriteString("\n")

		if len(sec.body) > 0 {
			b.WriteString("\n")

			for _, line := range sec.body {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// sectionBody prepares one source document for embedding: the source's
// own title is dropped, remaining headings are demoted one level, and
// edges are trimmed. With stripMeta set, leading "> " metadata lines and
// horizontal rules left over from the source's own consolidation are
// removed too.
func sectionBody(content string, stripMeta bool) []string {
	lines := newLineSource(content).lines

	lines = trimBlankEdges(lines)

	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		lines = lines[1:]
	}

	if stripMeta {
		for len(lines) > 0 {
			trimmed := strings.TrimSpace(lines[0])
			if trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "> ") {
				lines = lines[1:]

				continue
			}

			break
		}
	}

	lines = trimBlankEdges(lines)

	demoted := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			demoted[i] = "#" + line
		} else {
			demoted[i] = line
		}
	}

	return demoted
}
