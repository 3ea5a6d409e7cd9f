package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/buscheck/core/model"
)

func TestScenarioFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no scenario files found")
	}
	for _, f := range files {
		f := f
		t.Run(filepath.Base(f), func(t *testing.T) {
			s, err := Load(f)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if err := s.Check(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestCompliantScenarioReport(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "compliant.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rep, err := s.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Violations() != 0 {
		t.Fatalf("compliant plan must have no violations: %v", rep.Issues)
	}
	if rep.KPI.VehiclesUsed != 1 {
		t.Fatalf("expected 1 vehicle, got %d", rep.KPI.VehiclesUsed)
	}
}

func TestViolationsScenarioDetail(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "violations.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rep, err := s.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var breaks []model.Issue
	for _, is := range rep.Issues {
		if is.Kind == model.IssueContinuityBreak {
			breaks = append(breaks, is)
		}
	}
	if len(breaks) != 1 || breaks[0].Vehicle != "1" || breaks[0].Location != "A" {
		t.Fatalf("unexpected continuity breaks: %+v", breaks)
	}
}

func TestLoadRejectsNamelessScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("plan: []\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for nameless scenario")
	}
}
