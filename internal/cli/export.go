package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"riddlebench/internal/aggregate"
	"riddlebench/internal/duckdb"
)

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		output := fs.String("output", "", "Snapshot database path")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if *output == "" {
			fmt.Fprintln(stderr, "Missing --output")
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

		db, err := duckdb.Open(*output)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open snapshot database: %v\n", err)
			return ExitError
		}
		defer db.Close()
		if err := duckdb.EnsureSchema(db); err != nil {
			fmt.Fprintf(stderr, "Failed to apply schema: %v\n", err)
			return ExitError
		}
		id, err := duckdb.ExportSnapshot(context.Background(), db, *run, agg)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Exported snapshot %s to %s (%d models, %d questions)\n",
			id, *output, len(agg.Models), len(agg.Questions))
		return ExitOK
	}
}
