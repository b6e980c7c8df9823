package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"999.999", "1,000.00"},
		{"21000", "21,000.00"},
		{"1234567.5", "1,234,567.50"},
		{"-1234.5", "-1,234.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{5 * time.Hour, "5h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := FormatAge(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("FormatAge(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "-" {
		t.Errorf("expected dash for nil, got %q", got)
	}
	d := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2026-05-03" {
		t.Errorf("unexpected date %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Emergency fund", 20); got != "Emergency fund" {
		t.Errorf("short strings must be untouched, got %q", got)
	}
	if got := Truncate("Emergency fund", 6); got != "Emerg…" {
		t.Errorf("unexpected truncation %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := RenderProgressBar(70, 10)
	if !strings.Contains(bar, "70.0%") {
		t.Errorf("expected percentage label, got %q", bar)
	}
	if n := strings.Count(bar, "█"); n != 7 {
		t.Errorf("expected 7 filled cells, got %d", n)
	}
	if n := strings.Count(RenderProgressBar(250, 10), "█"); n != 10 {
		t.Errorf("expected a full bar when over 100%%, got %d cells", n)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "GOALS",
		Headers: []string{"Name", "Balance"},
		Rows: [][]string{
			{"Emergency fund", "21,000.00"},
			{"Trip", RenderState("at_risk")},
		},
	})

	for _, want := range []string{"GOALS", "Emergency fund", "21,000.00", "at_risk"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table output", want)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")[1:]
	width := lipgloss.Width(lines[0])
	for _, l := range lines {
		if lipgloss.Width(l) != width {
			t.Errorf("misaligned row %q", l)
		}
	}

	if RenderTable(Table{}) != "" {
		t.Error("expected an empty table to render nothing")
	}
}
