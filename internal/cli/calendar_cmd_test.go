package cli_test

import (
	"testing"

	"github.com/CodeAndRes/Brackets/internal/cli"
)

func TestCalendar_ResolvesDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date string
		want string
	}{
		{
			name: "holiday",
			date: "2026-01-01",
			want: "2026-01-01 Jueves: 🏖️Libre (Año Nuevo)",
		},
		{
			name: "vacation day",
			date: "2026-08-05",
			want: "2026-08-05 Miércoles: 🏖️Libre (Verano)",
		},
		{
			name: "plain office day",
			date: "2026-02-02",
			want: "2026-02-02 Lunes: 🚗Oficina",
		},
		{
			name: "alternating friday on even week",
			date: "2026-02-06",
			want: "2026-02-06 Viernes: 🏠Casa",
		},
		{
			name: "alternating friday on odd week",
			date: "2026-02-13",
			want: "2026-02-13 Viernes: 🚗Oficina",
		},
		{
			name: "weekend",
			date: "2026-02-07",
			want: "2026-02-07 Sábado: not a workday",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			r := cli.NewCLI(t)
			r.SeedCalendar()

			stdout := r.MustRun("calendar", testCase.date)

			if stdout != testCase.want {
				t.Errorf("got %q, want %q", stdout, testCase.want)
			}
		})
	}
}

func TestCalendar_RequiresDate(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.SeedCalendar()

	stderr := r.MustFail("calendar")
	cli.AssertContains(t, stderr, "date argument is required")
}

func TestCalendar_RejectsBadDate(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)
	r.SeedCalendar()

	stderr := r.MustFail("calendar", "not-a-date")
	cli.AssertContains(t, stderr, "invalid date")
}

func TestCalendar_Fails_Without_CalendarFile(t *testing.T) {
	t.Parallel()

	r := cli.NewCLI(t)

	stderr := r.MustFail("calendar", "2026-02-02")
	cli.AssertContains(t, stderr, "work calendar file not found")
}
