package cli_test

import (
	"strings"
	"testing"
)

// assertOrder fails unless every substring appears in content, each one
// after the previous.
func assertOrder(t *testing.T, content string, subs ...string) {
	t.Helper()

	last := -1

	for _, sub := range subs {
		idx := strings.Index(content, sub)
		if idx == -1 {
			t.Fatalf("missing %q in:\n%s", sub, content)
		}

		if idx <= last {
			t.Fatalf("%q out of order in:\n%s", sub, content)
		}

		last = idx
	}
}
