package cli

import (
	"flag"
	"fmt"
	"io"

	"riddlebench/internal/aggregate"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		storeRoot := fs.String("store", "", "Log store root directory")
		configPath := fs.String("config", "", "Path to config file")
		run := fs.String("run", "", "Restrict to one run")
		modeFlag := fs.String("mode", "", "Selection mode (all|unique|intersection)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		store, cfg, err := resolveStore(*storeRoot, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve store: %v\n", err)
			return ExitError
		}
		modeValue := *modeFlag
		if modeValue == "" {
			modeValue = cfg.Report.Mode
		}
		mode, err := aggregate.ParseMode(modeValue)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid mode: %v\n", err)
			return ExitUsage
		}

		engine := aggregate.Engine{Store: store}
		agg := engine.Aggregate(*run, mode)
		writeReport(stdout, agg)
		return ExitOK
	}
}

// writeReport prints the aggregate as fixed-width tables.
func writeReport(w io.Writer, agg aggregate.Result) {
	fmt.Fprintf(w, "Mode: %s  (%d models, %d questions", agg.Mode, len(agg.Models), len(agg.Questions))
	if agg.Malformed > 0 {
		fmt.Fprintf(w, ", %d malformed lines", agg.Malformed)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-40s %8s %9s %9s %9s %9s %6s %6s\n",
		"Model", "N", "Accuracy", "AvgFuzzy", "Error%", "Lat(ms)", "Cov", "Dup")
	for _, m := range agg.Models {
		fmt.Fprintf(w, "%-40s %8d %9.3f %9s %9.3f %9s %6d %6.2f\n",
			m.Model, m.Count, m.Accuracy, formatAvg(m.AvgFuzzy), m.ErrorRate,
			formatAvg(m.AvgLatencyMs), m.Coverage, m.DuplicationRatio)
	}
}

// formatAvg renders an optional average, "-" when no record resolved it.
func formatAvg(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *value)
}
