package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"riddlebench/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		storeRoot := fs.String("store", "", "Log store root directory")
		configPath := fs.String("config", "", "Path to config file")
		addr := fs.String("addr", "", "Address to listen on")
		dbPath := fs.String("db", "", "Exported DuckDB snapshot to serve")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		store, cfg, err := resolveStore(*storeRoot, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve store: %v\n", err)
			return ExitError
		}
		if *addr != "" {
			cfg.Serve.Addr = *addr
		}
		if *dbPath != "" {
			cfg.Serve.DBPath = *dbPath
		}

		serveCfg := reportserver.Config{
			Addr:        cfg.Serve.Addr,
			StoreRoot:   store.Root(),
			DefaultMode: cfg.Report.Mode,
			DBPath:      cfg.Serve.DBPath,
		}
		fmt.Fprintf(stdout, "Serving results at http://%s\n", serveCfg.Addr)
		if err := serveReport(context.Background(), serveCfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
