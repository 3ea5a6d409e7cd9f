// Package ingest reads the raw CSV tables the validator consumes. It only
// checks table structure; cell values stay strings and are parsed by the
// normalizer.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kilianp07/buscheck/core/model"
	"github.com/kilianp07/buscheck/core/normalize"
)

// header maps column names to their position, case-insensitively.
type header map[string]int

func readHeader(table string, rec []string, required []string) (header, error) {
	h := make(header, len(rec))
	for i, name := range rec {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &model.MissingColumnsError{Table: table, Columns: missing}
	}
	return h, nil
}

func (h header) get(rec []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func readAll(table string, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s table: %w", table, err)
	}
	if len(records) == 0 {
		return nil, &model.MissingColumnsError{Table: table, Columns: []string{"(empty table)"}}
	}
	return records, nil
}

// ReadPlan reads the circulation plan table.
func ReadPlan(r io.Reader) ([]normalize.RawPlanRow, error) {
	records, err := readAll("plan", r)
	if err != nil {
		return nil, err
	}
	h, err := readHeader("plan", records[0], []string{
		"vehicle", "activity", "start_location", "start_time", "end_location", "end_time",
	})
	if err != nil {
		return nil, err
	}
	rows := make([]normalize.RawPlanRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		rows = append(rows, normalize.RawPlanRow{
			Row:           i + 2, // 1-based, after the header
			Vehicle:       h.get(rec, "vehicle"),
			Activity:      h.get(rec, "activity"),
			StartLocation: h.get(rec, "start_location"),
			StartTime:     h.get(rec, "start_time"),
			EndLocation:   h.get(rec, "end_location"),
			EndTime:       h.get(rec, "end_time"),
			Line:          h.get(rec, "line"),
			DistanceM:     h.get(rec, "distance_m"),
			EnergyKWh:     h.get(rec, "energy_kwh"),
		})
	}
	return rows, nil
}

// ReadDistance reads the distance/travel-time reference table.
func ReadDistance(r io.Reader) ([]normalize.RawDistanceRow, error) {
	records, err := readAll("distance", r)
	if err != nil {
		return nil, err
	}
	h, err := readHeader("distance", records[0], []string{
		"start_location", "end_location", "distance_m", "min_travel_min", "max_travel_min",
	})
	if err != nil {
		return nil, err
	}
	rows := make([]normalize.RawDistanceRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		rows = append(rows, normalize.RawDistanceRow{
			Row:           i + 2,
			StartLocation: h.get(rec, "start_location"),
			EndLocation:   h.get(rec, "end_location"),
			Line:          h.get(rec, "line"),
			DistanceM:     h.get(rec, "distance_m"),
			MinTravelMin:  h.get(rec, "min_travel_min"),
			MaxTravelMin:  h.get(rec, "max_travel_min"),
		})
	}
	return rows, nil
}

// ReadTimetable reads the reference timetable.
func ReadTimetable(r io.Reader) ([]normalize.RawTimetableRow, error) {
	records, err := readAll("timetable", r)
	if err != nil {
		return nil, err
	}
	h, err := readHeader("timetable", records[0], []string{
		"start_location", "departure", "end_location", "line",
	})
	if err != nil {
		return nil, err
	}
	rows := make([]normalize.RawTimetableRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		rows = append(rows, normalize.RawTimetableRow{
			Row:           i + 2,
			StartLocation: h.get(rec, "start_location"),
			Departure:     h.get(rec, "departure"),
			EndLocation:   h.get(rec, "end_location"),
			Line:          h.get(rec, "line"),
		})
	}
	return rows, nil
}

// ReadPlanFile loads the plan table from disk.
func ReadPlanFile(path string) ([]normalize.RawPlanRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadPlan(f)
}

// ReadDistanceFile loads the distance reference from disk.
func ReadDistanceFile(path string) ([]normalize.RawDistanceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadDistance(f)
}

// ReadTimetableFile loads the timetable from disk.
func ReadTimetableFile(path string) ([]normalize.RawTimetableRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadTimetable(f)
}
