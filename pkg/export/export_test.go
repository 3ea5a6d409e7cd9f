package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kilianp07/buscheck/core/model"
	"github.com/kilianp07/buscheck/core/report"
)

func TestWriteJSON(t *testing.T) {
	tm, _ := model.ParseTimeOfDay("08:15")
	r := report.New([]model.Issue{
		{Kind: model.IssueBatteryLow, Vehicle: "3", Time: tm, Measured: 12.5, Message: "low"},
	})
	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	var back report.Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.RunID != r.RunID || len(back.Issues) != 1 || back.Issues[0].Time != tm {
		t.Fatalf("roundtrip mismatch: %+v", back)
	}
}

func TestWriteCSV(t *testing.T) {
	tm, _ := model.ParseTimeOfDay("09:00")
	issues := []model.Issue{
		{Kind: model.IssueTravelTimeOutOfRange, Vehicle: "1", Location: "A", Time: tm,
			Measured: 30, MinAllowed: 15, MaxAllowed: 25, Message: "too slow"},
		{Kind: model.IssueCoverageMismatch, Location: "B", Direction: model.CoverageExtra, Message: "extra"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, issues); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[1][0] != "travel_time_out_of_range" || records[1][4] != "30" {
		t.Fatalf("bad first row %v", records[1])
	}
	if records[2][7] != "extra" {
		t.Fatalf("direction column missing: %v", records[2])
	}
}

func TestWriteCSVKeepsZeroMeasured(t *testing.T) {
	tm, _ := model.ParseTimeOfDay("09:05")
	issues := []model.Issue{
		{Kind: model.IssueBatteryLow, Vehicle: "1", Location: "B", Time: tm,
			Measured: 0, MinAllowed: 30, Message: "empty battery"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, issues); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if records[1][4] != "0" {
		t.Fatalf("a battery clamped to zero must export as 0, got %q", records[1][4])
	}
	if records[1][6] != "" {
		t.Fatalf("absent max stays empty, got %q", records[1][6])
	}
}
