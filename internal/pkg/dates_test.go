package pkg_test

import (
	"testing"
	"time"

	"Ecclesia/internal/pkg"
)

func TestClampDayOfMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  int
	}{
		{"dia cabe no mes", 2024, time.January, 15, 15},
		{"dia 31 em abril", 2024, time.April, 31, 30},
		{"dia 31 em fevereiro bissexto", 2024, time.February, 31, 29},
		{"dia 30 em fevereiro comum", 2023, time.February, 30, 28},
		{"ultimo dia exato", 2024, time.December, 31, 31},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := pkg.ClampDayOfMonth(tt.year, tt.month, tt.day)
			if got != tt.want {
				t.Fatalf("ClampDayOfMonth(%d, %s, %d) = %d, want %d", tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, time.June, 15, 23, 59, 58, 123, time.UTC)
	got := pkg.TruncateToDay(in)
	want := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2024, time.June, 15, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.June, 15, 23, 0, 0, 0, time.UTC)
	c := time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)

	if !pkg.SameDay(a, b) {
		t.Fatalf("expected same day")
	}
	if pkg.SameDay(a, c) {
		t.Fatalf("expected different days")
	}
}
