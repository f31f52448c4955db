package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Key", "Count", "Share"}
	rows := [][]string{
		{"G", "97", "12%"},
		{"Unknown", "8", "3%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Key     Count Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "G          97   12%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Unknown     8    3%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTruncateUsesCellWidth(t *testing.T) {
	if got := Truncate("Kepler-22 b", 6); got != "Keple…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected untouched value, got %q", got)
	}
}
