package cli_test

import (
	"testing"

	"github.com/CodeAndRes/Brackets/internal/cli"
)

const categoriesYAML = `version: 1
categories:
  - id: work
    name: 💼 Trabajo
    subcategories:
      - id: projects
        name: Proyectos
  - id: personal
    name: Personal
`

func TestCategories_PrintsTree(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("categories.yaml", categoriesYAML)

	stdout := r.MustRun("categories")

	assertOrder(t, stdout,
		"💼 Trabajo [work]",
		"  Proyectos [projects]",
		"Personal [personal]",
	)
}

func TestCategories_AddAndAssign(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("categories.yaml", categoriesYAML)

	r.MustRun("categories", "add", "notes", "Notas", "--parent", "work")
	r.MustRun("categories", "assign", "notes", "[2026][02]Week06.md")

	stdout := r.MustRun("categories")

	assertOrder(t, stdout,
		"💼 Trabajo [work]",
		"  Notas [notes]",
		"    - [2026][02]Week06.md",
	)
}

func TestCategories_RejectsDuplicateID(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("categories.yaml", categoriesYAML)

	stderr := r.MustFail("categories", "add", "work", "Otra")
	cli.AssertContains(t, stderr, "duplicate category id")
}

func TestCategories_RejectsUnknownParent(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("categories.yaml", categoriesYAML)

	stderr := r.MustFail("categories", "add", "x", "X", "--parent", "nope")
	cli.AssertContains(t, stderr, "unknown category id")
}

func TestCategories_RejectsUnknownAction(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("categories.yaml", categoriesYAML)

	stderr := r.MustFail("categories", "delete", "work")
	cli.AssertContains(t, stderr, "unknown action")
}

func TestCategories_Fails_Without_File(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)

	stderr := r.MustFail("categories")
	cli.AssertContains(t, stderr, "categories file not found")
}
