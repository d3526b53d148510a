package cli_test

import (
	"testing"

	"github.com/CodeAndRes/Brackets/internal/cli"
)

func TestMenu_RunsCommandsFromPipedInput(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("[2026][02]Week06.md", "# 🗓️Week 06 (2026-02-02 - 2026-02-08)\n\n- [ ] six\n")

	stdout, _, code := r.RunWithInput("help\nlist\nexit\n", "menu")

	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}

	cli.AssertContains(t, stdout, "generate-weekly")
	cli.AssertContains(t, stdout, "[2026][02]Week06.md")
}

func TestMenu_UnknownCommandKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.WriteDoc("[2026][02]Week06.md", "# 🗓️Week 06 (2026-02-02 - 2026-02-08)\n\n- [ ] six\n")

	stdout, stderr, code := r.RunWithInput("bogus\nlist\n", "menu")

	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}

	cli.AssertContains(t, stderr, "unknown command: bogus")

	// The session kept going after the bad line.
	cli.AssertContains(t, stdout, "[2026][02]Week06.md")
}

func TestMenu_ExitsOnEOF(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)

	_, _, code := r.RunWithInput("", "menu")

	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
}

func TestMenu_CommandErrorsDoNotEndSession(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)

	stdout, stderr, code := r.RunWithInput("consolidate-month 2026 5\nhelp\n", "menu")

	if code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}

	cli.AssertContains(t, stderr, "no source documents for 2026-05")
	cli.AssertContains(t, stdout, "consolidate-month")
}
