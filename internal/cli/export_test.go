package cli

import (
	"testing"
	"time"
)

// PinTime fixes the consolidation timestamp for the duration of a test.
func PinTime(t *testing.T, fixed time.Time) {
	t.Helper()

	old := timeNow
	timeNow = func() time.Time { return fixed }

	t.Cleanup(func() { timeNow = old })
}
