package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"riddlebench/internal/aggregate"
)

// runAnalyze builds the handler for the analyze command: difficulty
// ranking plus a model performance table over all raw attempts.
func runAnalyze(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		top := fs.Int("top", 10, "Show top N difficult questions")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		store, _, err := resolveStore(*storeRoot, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve store: %v\n", err)
			return ExitError
		}

		// Difficulty analysis counts every raw attempt, so it always runs
		// in all mode regardless of the configured default.
		engine := aggregate.Engine{Store: store}
		agg := engine.Aggregate(*run, aggregate.ModeAll)
		writeDifficulty(stdout, agg, *top)
		writeModelAnalysis(stdout, agg)
		return ExitOK
	}
}

// writeDifficulty prints the hardest questions with their common wrong
// answers.
func writeDifficulty(w io.Writer, agg aggregate.Result, top int) {
	if top > len(agg.Questions) {
		top = len(agg.Questions)
	}
	fmt.Fprintf(w, "=== TOP %d MOST DIFFICULT QUESTIONS ===\n", top)
	fmt.Fprintf(w, "%-8s %-9s %-9s %-60s %s\n", "Key", "Accuracy", "AvgFuzzy", "Question", "Expected")
	for _, q := range agg.Questions[:top] {
		fmt.Fprintf(w, "%-8s %-9.3f %-9s %-60s %s\n",
			q.Key, q.Accuracy, formatAvg(q.AvgFuzzy), truncate(q.Question, 60), q.AnswerRef)
		if len(q.WrongAnswers) > 0 {
			parts := make([]string, 0, len(q.WrongAnswers))
			for _, wrong := range q.WrongAnswers {
				parts = append(parts, fmt.Sprintf("%q x%d", wrong.Answer, wrong.Count))
			}
			fmt.Fprintf(w, "         common wrong answers: %s\n", strings.Join(parts, ", "))
		}
	}
	fmt.Fprintln(w)
}

// writeModelAnalysis prints the per-model performance table.
func writeModelAnalysis(w io.Writer, agg aggregate.Result) {
	fmt.Fprintln(w, "=== MODEL PERFORMANCE ===")
	fmt.Fprintf(w, "%-40s %-9s %-7s %-7s %-7s %-9s %s\n",
		"Model", "Accuracy", "Exact%", "Alias%", "Error%", "AvgFuzzy", "AvgLatency(ms)")
	for _, m := range agg.Models {
		fmt.Fprintf(w, "%-40s %-9.3f %-7.3f %-7.3f %-7.3f %-9s %s\n",
			m.Model, m.Accuracy, m.ExactRate, m.AliasRate, m.ErrorRate,
			formatAvg(m.AvgFuzzy), formatAvg(m.AvgLatencyMs))
	}
}

// truncate shortens text for fixed-width display.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
