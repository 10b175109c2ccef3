package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  riddlebench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"riddlebench <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("runs", "List runs in the log store", []string{
		"riddlebench runs [--store <dir>]",
	}, runRuns),
	command("files", "List result-log files", []string{
		"riddlebench files [--store <dir>] [--run <run>]",
	}, runFiles),
	command("report", "Print aggregate statistics", []string{
		"riddlebench report [--store <dir>] [--run <run>] [--mode all|unique|intersection]",
	}, runReport),
	command("analyze", "Rank difficult questions and model performance", []string{
		"riddlebench analyze [--store <dir>] [--run <run>] [--top <n>]",
	}, runAnalyze),
	command("export", "Export an aggregate snapshot to DuckDB", []string{
		"riddlebench export --output <db.duckdb> [--store <dir>] [--run <run>] [--mode <mode>]",
	}, runExport),
	command("serve", "Serve the browsing UI and query API", []string{
		"riddlebench serve [--addr <host:port>] [--store <dir>] [--db <db.duckdb>]",
	}, runServe),
	command("browse", "Browse statistics in an interactive table", []string{
		"riddlebench browse [--store <dir>] [--run <run>] [--mode <mode>] [--ui auto|live|plain]",
	}, runBrowse),
}
