package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{250000, "$250,000"},
		{-105137, "-$105,137"},
		{-4583.33, "-$4,583.33"},
		{1234567.5, "$1,234,567.50"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMultiplier(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.00, "—"},
		{1.15, "+15%"},
		{0.90, "-10%"},
		{0.85, "-15%"},
	}
	for _, tc := range cases {
		if got := FormatMultiplier(tc.in); got != tc.want {
			t.Errorf("FormatMultiplier(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatWeekRange(t *testing.T) {
	start := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 18, 0, 0, 0, 0, time.UTC)
	if got, want := FormatWeekRange(start, end), "Jan 12 – Jan 18"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderSparklineHandlesNegatives(t *testing.T) {
	s := RenderSparkline([]float64{250000, 144863, 39726, -65411})
	if len([]rune(s)) != 4 {
		t.Fatalf("sparkline %q has wrong length", s)
	}
	runes := []rune(s)
	if runes[0] != '█' {
		t.Errorf("max value should render the full block, got %q", runes[0])
	}
	if runes[3] != '▁' {
		t.Errorf("min value should render the lowest block, got %q", runes[3])
	}
}
