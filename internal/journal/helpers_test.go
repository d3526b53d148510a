package journal_test

import (
	"strings"
	"testing"
)

func splitTestLines(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// lineIndex returns the 0-based index of the first line equal to want,
// or -1.
func lineIndex(content, want string) int {
	for i, l := range splitTestLines(content) {
		if l == want {
			return i
		}
	}

	return -1
}

func requireLineOrder(t *testing.T, content string, lines ...string) {
	t.Helper()

	last := -1

	for _, line := range lines {
		idx := lineIndex(content, line)
		if idx == -1 {
			t.Fatalf("missing line %q in:\n%s", line, content)
		}

		if idx <= last {
			t.Fatalf("line %q out of order in:\n%s", line, content)
		}

		last = idx
	}
}
