package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/CodeAndRes/Brackets/internal/cli"
)

const (
	januaryRollup  = "# January Topics ❄️\n\n> Consolidado del mes 01/2026\n> Generado el 2026-02-01 08:00:00\n\n## 🗓️ Semana 02\n\n- [ ] enero\n"
	februaryRollup = "# February Topics ❄️\n\n> Consolidado del mes 02/2026\n> Generado el 2026-03-01 08:00:00\n\n## 🗓️ Semana 06\n\n- [ ] febrero\n"
)

func TestConsolidateYear_OrdersMonthsDescending(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("[2026][01].md", januaryRollup)
	r.WriteDoc("[2026][02].md", februaryRollup)

	path := r.MustRun("consolidate-year", "2026")

	if path != filepath.Join(r.Dir, "[2026].md") {
		t.Fatalf("unexpected path: %s", path)
	}

	content := r.ReadDoc("[2026].md")

	assertOrder(t, content,
		"# 📅 Año 2026",
		"> Consolidado de todo el año 2026",
		"## 🗓️ Febrero",
		"- [ ] febrero",
		"## 🗓️ Enero",
		"- [ ] enero",
	)

	// The source rollups' own metadata is stripped.
	cli.AssertNotContains(t, content, "Consolidado del mes")
}

func TestConsolidateYear_WarnsOnMissingMonthRollup(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("[2026][01].md", januaryRollup)
	r.WriteDoc("[2026][02].md", februaryRollup)

	// March has weekly data but was never consolidated: a gap, not a
	// failure.
	r.WriteDoc("[2026][03]Week10.md", "# 🗓️Week 10 (2026-03-02 - 2026-03-08)\n\n- [ ] marzo\n")

	stdout, stderr, code := r.Run("consolidate-year", "2026")

	if code != 0 {
		t.Fatalf("exit code %d, want 0\nstderr: %s", code, stderr)
	}

	cli.AssertContains(t, stdout, "[2026].md")
	cli.AssertContains(t, stderr, "warning:")
	cli.AssertContains(t, stderr, "no month rollup for: 03")

	content := r.ReadDoc("[2026].md")

	assertOrder(t, content, "## 🗓️ Febrero", "## 🗓️ Enero")
	cli.AssertNotContains(t, content, "Marzo")
}

func TestConsolidateYear_IncludesYearTopics(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("[2026][01].md", januaryRollup)
	r.WriteDoc("[2026][00]YearTopics.md", "# 2026\n\n- [ ] Meta anual\n")

	r.MustRun("consolidate-year", "2026")

	assertOrder(t, r.ReadDoc("[2026].md"),
		"## 📅 Temas del Año",
		"- [ ] Meta anual",
		"## 🗓️ Enero",
	)
}

func TestConsolidateYear_SecondRunRejected(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("[2026][01].md", januaryRollup)

	r.MustRun("consolidate-year", "2026")

	stderr := r.MustFail("consolidate-year", "2026")
	cli.AssertContains(t, stderr, "[2026].md already exists")

	r.MustRun("consolidate-year", "2026", "--force")
}

func TestConsolidateYear_Fails_Without_Rollups(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)

	stderr := r.MustFail("consolidate-year", "2026")
	cli.AssertContains(t, stderr, "no source documents for year 2026")
}

func TestConsolidateYear_RequiresYear(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)

	stderr := r.MustFail("consolidate-year")
	cli.AssertContains(t, stderr, "year argument is required")
}
