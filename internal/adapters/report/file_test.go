package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileProviderReadsReport(t *testing.T) {
	path := writeReport(t, `{
		"cellarId": "home",
		"zones": [{"zoneId": "bold_red", "bottleCount": 12}],
		"summary": {"totalBottles": 12, "totalMisplaced": 3}
	}`)

	rep, err := NewFileProvider(path).GetReport(context.Background(), "home")
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Zones) != 1 || rep.Zones[0].BottleCount != 12 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.Summary.TotalMisplaced != 3 {
		t.Fatalf("TotalMisplaced = %d, want 3", rep.Summary.TotalMisplaced)
	}
}

func TestFileProviderFillsCellarID(t *testing.T) {
	path := writeReport(t, `{"zones": []}`)

	rep, err := NewFileProvider(path).GetReport(context.Background(), "home")
	if err != nil {
		t.Fatal(err)
	}
	if rep.CellarID != "home" {
		t.Fatalf("CellarID = %q, want home", rep.CellarID)
	}
}

func TestFileProviderRejectsWrongCellar(t *testing.T) {
	path := writeReport(t, `{"cellarId": "someone-else"}`)

	if _, err := NewFileProvider(path).GetReport(context.Background(), "home"); err == nil {
		t.Fatal("expected cellar mismatch error")
	}
}

func TestFileProviderErrors(t *testing.T) {
	if _, err := NewFileProvider("").GetReport(context.Background(), "home"); err == nil {
		t.Fatal("expected error for unconfigured path")
	}
	if _, err := NewFileProvider("/does/not/exist.json").GetReport(context.Background(), "home"); err == nil {
		t.Fatal("expected error for missing file")
	}
	bad := writeReport(t, `{not json`)
	if _, err := NewFileProvider(bad).GetReport(context.Background(), "home"); err == nil {
		t.Fatal("expected error for malformed file")
	}
}
