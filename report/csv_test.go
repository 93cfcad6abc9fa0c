package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testRecords(), ';'); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header and 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "timestamp;client-wlan;client-ip;") || strings.Contains(lines[0], "HasClient") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if want := "2022-01-15 10:00:00;home <5G>;10.0.0.2;1;2;ISP;;;;;12;2;;;100000000;10000000"; lines[1] != want {
		t.Errorf("row = %s, want %s", lines[1], want)
	}
	if want := "2022-01-15 11:00:00;;;;;;Berlin;ACME;1 km;h;;;;;;"; lines[2] != want {
		t.Errorf("row = %s, want %s", lines[2], want)
	}
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "export.csv")

	if err := WriteCSVFile(out, testRecords(), ','); err != nil {
		t.Fatalf("WriteCSVFile() error = %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(b)), "\n"); len(lines) != 3 {
		t.Errorf("got %d lines, want header and 2 rows", len(lines))
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteCSVFileKeepsOldExportOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(out, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	// encoding/csv rejects a newline as delimiter
	if err := WriteCSVFile(out, testRecords(), '\n'); err == nil {
		t.Fatal("WriteCSVFile() with an invalid delimiter should fail")
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "old" {
		t.Errorf("export replaced after failure: %q", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteCSVFileMissingDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "export.csv")
	if err := WriteCSVFile(out, testRecords(), ','); err == nil {
		t.Error("WriteCSVFile() into a missing dir should fail")
	}
}
