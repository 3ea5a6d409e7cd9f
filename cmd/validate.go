package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/buscheck/app"
	"github.com/kilianp07/buscheck/infra/logger"
	"github.com/kilianp07/buscheck/infra/metrics"
	"github.com/kilianp07/buscheck/pkg/export"
)

var (
	planPath      string
	distancePath  string
	timetablePath string
	outFormat     string
	outPath       string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a circulation plan",
	Long: `Validate reads the plan, distance reference, and timetable tables, runs
all checkers, and writes the resulting issue report. The exit status is 1
when the plan contains violations.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&planPath, "plan", "", "circulation plan CSV")
	validateCmd.Flags().StringVar(&distancePath, "distance", "", "distance/travel-time reference CSV")
	validateCmd.Flags().StringVar(&timetablePath, "timetable", "", "reference timetable CSV")
	validateCmd.Flags().StringVar(&outFormat, "format", "csv", "report format: csv or json")
	validateCmd.Flags().StringVar(&outPath, "out", "", "report destination, stdout when empty")
	for _, f := range []string{"plan", "distance", "timetable"} {
		if err := validateCmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("validate")
	if cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(cmd.Context(), cfg.Metrics.PrometheusPort); err != nil {
				logg.Errorf("metrics server: %v", err)
			}
		}()
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	rep, err := svc.ValidateFiles(planPath, distancePath, timetablePath)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("open report output: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logg.Errorf("close report output: %v", err)
			}
		}()
		w = f
	}
	switch outFormat {
	case "json":
		err = export.WriteJSON(w, rep)
	case "csv":
		err = export.WriteCSV(w, rep.Issues)
	default:
		return fmt.Errorf("unknown format %q", outFormat)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if n := rep.Violations(); n > 0 {
		return fmt.Errorf("plan has %d violation(s)", n)
	}
	logg.Infof("plan is compliant")
	return nil
}
