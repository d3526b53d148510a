package journal_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/CodeAndRes/Brackets/internal/journal"

	"github.com/google/go-cmp/cmp"
)

const sampleWeek = `# 🗓️Week 29 (2026-07-13 - 2026-07-17) 70%

## ✅Topics
- [ ] Ship importer
  - [x] Draft schema

  ---

## 📝Notes

## 🏠Lunes 13

### 📋Tareas del Día
- [ ] Review backlog
  - [ ] Label stale issues

### ✅Tareas Completadas
- [x] Standup notes

Llamar al gestor a las 10.

## 🚗Martes 14

### 📋Tareas del Día
- [ ]

### ✅Tareas Completadas
`

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contract: a generated weekly document parses into the full model.
func Test_ParseWeek_BuildsModel_When_DocumentWellFormed(t *testing.T) {
	t.Parallel()

	cfg := &journal.Config{}

	doc, err := journal.ParseWeek(cfg, "sample.md", sampleWeek)
	if err != nil {
		t.Fatalf("ParseWeek failed: %v", err)
	}

	if doc.Week != 29 {
		t.Errorf("week = %d, want 29", doc.Week)
	}

	if !doc.Start.Equal(date(2026, time.July, 13)) || !doc.End.Equal(date(2026, time.July, 17)) {
		t.Errorf("range = %s - %s, want 2026-07-13 - 2026-07-17", doc.Start, doc.End)
	}

	if doc.Weight != "70%" {
		t.Errorf("weight = %q, want \"70%%\"", doc.Weight)
	}

	var wantObjectives journal.Tree

	ship := wantObjectives.Add(-1, "Ship importer", false)
	wantObjectives.Add(ship, "Draft schema", true)

	if diff := cmp.Diff(wantObjectives, doc.Objectives); diff != "" {
		t.Errorf("objectives mismatch (-want +got):\n%s", diff)
	}

	if len(doc.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(doc.Days))
	}

	monday := doc.Days[0]

	if !monday.Date.Equal(date(2026, time.July, 13)) {
		t.Errorf("monday date = %s, want 2026-07-13", monday.Date)
	}

	if monday.Meta.Emoji != "🏠" {
		t.Errorf("monday emoji = %q, want 🏠", monday.Meta.Emoji)
	}

	var wantTasks journal.Tree

	review := wantTasks.Add(-1, "Review backlog", false)
	wantTasks.Add(review, "Label stale issues", false)

	if diff := cmp.Diff(wantTasks, monday.Tasks); diff != "" {
		t.Errorf("monday tasks mismatch (-want +got):\n%s", diff)
	}

	var wantCompleted journal.Tree

	wantCompleted.Add(-1, "Standup notes", true)

	if diff := cmp.Diff(wantCompleted, monday.Completed); diff != "" {
		t.Errorf("monday completed mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Llamar al gestor a las 10."}, monday.Notes); diff != "" {
		t.Errorf("monday notes mismatch (-want +got):\n%s", diff)
	}

	tuesday := doc.Days[1]

	if tuesday.Meta.Emoji != "🚗" {
		t.Errorf("tuesday emoji = %q, want 🚗", tuesday.Meta.Emoji)
	}

	var wantPlaceholder journal.Tree

	wantPlaceholder.Add(-1, "", false)

	if diff := cmp.Diff(wantPlaceholder, tuesday.Tasks); diff != "" {
		t.Errorf("tuesday tasks mismatch (-want +got):\n%s", diff)
	}

	if tuesday.Completed.Len() != 0 {
		t.Errorf("tuesday completed has %d nodes, want 0", tuesday.Completed.Len())
	}

	if len(tuesday.Notes) != 0 {
		t.Errorf("tuesday notes = %q, want none", tuesday.Notes)
	}
}

// Contract: a checklist line attaches to the most recent node one level
// up; a line with no such ancestor becomes top-level.
func Test_ParseWeek_ReconstructsHierarchy_From_Indentation(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"# 🗓️Week 02 (2026-01-05 - 2026-01-09)",
		"",
		"## 🏠Lunes 5",
		"",
		"### 📋Tareas del Día",
		"- [ ] A",
		"    - [ ] C",
		"  - [ ] B",
		"",
		"### ✅Tareas Completadas",
		"",
	}, "\n")

	doc, err := journal.ParseWeek(&journal.Config{}, "", content)
	if err != nil {
		t.Fatalf("ParseWeek failed: %v", err)
	}

	var want journal.Tree

	want.Add(-1, "A", false)
	c := want.Add(-1, "C", false)
	want.Add(c, "B", false)

	if diff := cmp.Diff(want, doc.Days[0].Tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

// Contract: free text and unrecognized sub-headings inside a day are
// captured as notes and never fail parsing.
func Test_ParseWeek_Tolerates_StrayText(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"# 🗓️Week 02 (2026-01-05 - 2026-01-09)",
		"",
		"## 🏠Lunes 5",
		"",
		"### 📋Tareas del Día",
		"- [ ] A",
		"",
		"### ✅Tareas Completadas",
		"",
		"Primer apunte.",
		"",
		"## ⭐Recordatorio",
		"Segundo apunte.",
		"",
	}, "\n")

	doc, err := journal.ParseWeek(&journal.Config{}, "", content)
	if err != nil {
		t.Fatalf("ParseWeek failed: %v", err)
	}

	want := []string{"Primer apunte.", "", "## ⭐Recordatorio", "Segundo apunte."}

	if diff := cmp.Diff(want, doc.Days[0].Notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

// Contract: parsing fails only when the structural headings or header
// dates are unusable, with the offending line number.
func Test_ParseWeek_Fails_When_StructureMissing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		content  string
		wantLine int
		want     string
	}{
		{
			name:    "empty document",
			content: "  \n\n",
			want:    "document is empty",
		},
		{
			name:     "no week header",
			content:  "hello\n",
			wantLine: 1,
			want:     "missing week header",
		},
		{
			name:    "no day sections",
			content: "# 🗓️Week 01 (2026-01-05 - 2026-01-09)\n",
			want:    "no day sections",
		},
		{
			name: "no task zones",
			content: strings.Join([]string{
				"# 🗓️Week 01 (2026-01-05 - 2026-01-09)",
				"## 🏠Lunes 5",
				"- [ ] x",
				"",
			}, "\n"),
			want: "no task zones",
		},
		{
			name: "day outside range",
			content: strings.Join([]string{
				"# 🗓️Week 01 (2026-01-05 - 2026-01-09)",
				"## 🏠Lunes 26",
				"### 📋Tareas del Día",
				"",
			}, "\n"),
			wantLine: 2,
			want:     "day 26 is outside the week range",
		},
		{
			name:     "inverted range",
			content:  "# 🗓️Week 01 (2026-01-09 - 2026-01-05)\n",
			wantLine: 1,
			want:     "week range ends before it starts",
		},
		{
			name:     "invalid date",
			content:  "# 🗓️Week 01 (2026-13-05 - 2026-13-09)\n",
			wantLine: 1,
			want:     "invalid start date 2026-13-05",
		},
		{
			name: "task zone before any day",
			content: strings.Join([]string{
				"# 🗓️Week 01 (2026-01-05 - 2026-01-09)",
				"### 📋Tareas del Día",
				"",
			}, "\n"),
			wantLine: 2,
			want:     "task zone outside a day section",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := journal.ParseWeek(&journal.Config{}, "week.md", testCase.content)
			if err == nil {
				t.Fatal("ParseWeek succeeded, want error")
			}

			var parseErr *journal.ParseError

			if !errors.As(err, &parseErr) {
				t.Fatalf("error is %T, want *ParseError", err)
			}

			if parseErr.Path != "week.md" {
				t.Errorf("path = %q, want week.md", parseErr.Path)
			}

			if parseErr.Line != testCase.wantLine {
				t.Errorf("line = %d, want %d", parseErr.Line, testCase.wantLine)
			}

			if parseErr.Cause != testCase.want {
				t.Errorf("cause = %q, want %q", parseErr.Cause, testCase.want)
			}
		})
	}
}

// Contract: the month-topics title must be the exact shared title line;
// the body is opaque and trimmed of blank edges.
func Test_ParseMonthTopics_ReadsTitleAndBody(t *testing.T) {
	t.Parallel()

	cfg := &journal.Config{}

	content := "# July Topics ☀️\n\n- [ ] Plan offsite\nNotas sueltas.\n\n"

	doc, err := journal.ParseMonthTopics(cfg, "topics.md", content)
	if err != nil {
		t.Fatalf("ParseMonthTopics failed: %v", err)
	}

	if doc.Month != time.July {
		t.Errorf("month = %s, want July", doc.Month)
	}

	want := []string{"- [ ] Plan offsite", "Notas sueltas."}

	if diff := cmp.Diff(want, doc.Body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func Test_ParseMonthTopics_Fails_When_TitleMissing(t *testing.T) {
	t.Parallel()

	_, err := journal.ParseMonthTopics(&journal.Config{}, "topics.md", "# Temas\n- [ ] x\n")

	var parseErr *journal.ParseError

	if !errors.As(err, &parseErr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}

	if parseErr.Cause != "missing month topics title" {
		t.Errorf("cause = %q, want missing month topics title", parseErr.Cause)
	}
}
