// Package export writes validation reports in machine-readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/buscheck/core/model"
	"github.com/kilianp07/buscheck/core/report"
)

// WriteJSON writes the full report to w in JSON format.
func WriteJSON(w io.Writer, r report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes the issue table to w with a header row.
func WriteCSV(w io.Writer, issues []model.Issue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"kind", "vehicle", "location", "time", "measured", "min_allowed", "max_allowed", "direction", "message",
	}); err != nil {
		return err
	}
	for _, is := range issues {
		rec := []string{
			string(is.Kind),
			is.Vehicle,
			is.Location,
			is.Time.String(),
			formatMeasured(is),
			formatFloat(is.MinAllowed),
			formatFloat(is.MaxAllowed),
			string(is.Direction),
			is.Message,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatMeasured keeps a measured value of exactly zero when the issue
// carries an allowed range: a battery clamped to 0 kWh is a real reading,
// not a blank cell.
func formatMeasured(is model.Issue) string {
	if is.MinAllowed != 0 || is.MaxAllowed != 0 {
		return strconv.FormatFloat(is.Measured, 'f', -1, 64)
	}
	return formatFloat(is.Measured)
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
