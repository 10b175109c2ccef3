package cli

import (
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"riddlebench/internal/aggregate"
	"riddlebench/internal/ui/browse"
)

// runProgram is a test seam for launching the Bubble Tea program.
var runProgram = func(model tea.Model, stdout io.Writer) error {
	program := tea.NewProgram(model, tea.WithOutput(stdout))
	_, err := program.Run()
	return err
}

// runBrowse builds the handler for the browse command.
func runBrowse(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		uiMode := fs.String("ui", "auto", "UI mode (auto|live|plain)")
		noColor := fs.Bool("no-color", false, "Disable colored output")
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
		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		engine := aggregate.Engine{Store: store}
		agg := engine.Aggregate(*run, mode)
		if !decision.useLive {
			writeReport(stdout, agg)
			return ExitOK
		}

		recompute := func(next aggregate.Mode) aggregate.Result {
			return engine.Aggregate(*run, next)
		}
		model := browse.NewModel(agg, recompute, browse.Options{NoColor: *noColor})
		if err := runProgram(model, stdout); err != nil {
			fmt.Fprintf(stderr, "UI error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
