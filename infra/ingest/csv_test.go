package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/kilianp07/buscheck/core/model"
)

func TestReadPlan(t *testing.T) {
	data := `vehicle,activity,start_location,start_time,end_location,end_time,line,distance_m
1,dienst rit,A,08:00,B,08:20,400,10000
1,opladen,B,08:20,B,08:50,,
`
	rows, err := ReadPlan(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Vehicle != "1" || rows[0].Line != "400" || rows[0].DistanceM != "10000" {
		t.Fatalf("bad first row %+v", rows[0])
	}
	if rows[0].Row != 2 || rows[1].Row != 3 {
		t.Fatalf("row numbers must count from the line after the header: %d, %d", rows[0].Row, rows[1].Row)
	}
	if rows[1].Line != "" {
		t.Fatalf("empty line cell must stay empty for the normalizer, got %q", rows[1].Line)
	}
}

func TestReadPlanMissingColumns(t *testing.T) {
	data := "vehicle,activity,start_location\n1,dienst rit,A\n"
	_, err := ReadPlan(strings.NewReader(data))
	var missing *model.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if missing.Table != "plan" || len(missing.Columns) != 3 {
		t.Fatalf("bad error detail %+v", missing)
	}
}

func TestReadPlanHeaderCaseInsensitive(t *testing.T) {
	data := "Vehicle,Activity,Start_Location,Start_Time,End_Location,End_Time\n1,idle,A,08:00,A,08:30\n"
	rows, err := ReadPlan(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rows[0].Activity != "idle" {
		t.Fatalf("bad row %+v", rows[0])
	}
}

func TestReadDistance(t *testing.T) {
	data := `start_location,end_location,line,distance_m,min_travel_min,max_travel_min
A,B,400,10000,15,25
`
	rows, err := ReadDistance(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0].MaxTravelMin != "25" {
		t.Fatalf("bad rows %+v", rows)
	}
}

func TestReadTimetableMissingColumn(t *testing.T) {
	data := "start_location,departure,end_location\nA,08:00,B\n"
	_, err := ReadTimetable(strings.NewReader(data))
	var missing *model.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if missing.Columns[0] != "line" {
		t.Fatalf("expected missing line column, got %v", missing.Columns)
	}
}

func TestReadEmptyTable(t *testing.T) {
	if _, err := ReadTimetable(strings.NewReader("")); err == nil {
		t.Fatalf("empty input must fail structurally")
	}
}
