package cli

import (
	"flag"
	"fmt"
	"io"

	"riddlebench/internal/aggregate"
)

// runRuns builds the handler for the runs command.
func runRuns(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		storeRoot := fs.String("store", "", "Log store root directory")
		configPath := fs.String("config", "", "Path to config file")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		store, _, err := resolveStore(*storeRoot, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve store: %v\n", err)
			return ExitError
		}
		engine := aggregate.Engine{Store: store}
		for _, run := range engine.Runs() {
			fmt.Fprintln(stdout, run)
		}
		return ExitOK
	}
}

// runFiles builds the handler for the files command.
func runFiles(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		store, _, err := resolveStore(*storeRoot, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve store: %v\n", err)
			return ExitError
		}
		engine := aggregate.Engine{Store: store}
		for _, file := range engine.Files(*run) {
			fmt.Fprintln(stdout, file)
		}
		return ExitOK
	}
}
