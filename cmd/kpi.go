package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/buscheck/infra/store"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "List stored validation runs and their KPIs",
	RunE:  runKPI,
}

func init() {
	rootCmd.AddCommand(kpiCmd)
}

func runKPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Store.Enabled {
		return fmt.Errorf("issue store is disabled; enable store.enabled in the configuration")
	}
	st, err := store.New(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("issue store: %w", err)
	}
	defer func() { _ = st.Close() }()

	runs, err := st.Runs()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tTIME\tISSUES\tVIOLATIONS\tVEHICLES\tDEADHEAD MIN\tENERGY KWH\tLOWEST KWH")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.0f\t%.0f\t%.1f\n",
			r.RunID, r.Time.Format("2006-01-02 15:04"), r.Issues, r.Violations,
			r.VehiclesUsed, r.DeadheadMinutes, r.TotalEnergyKWh, r.LowestBatteryKWh)
	}
	return w.Flush()
}
