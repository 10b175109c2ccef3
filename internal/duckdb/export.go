package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"riddlebench/internal/aggregate"
)

// Open opens (or creates) a DuckDB snapshot database at the given path.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("duckdb: path is required")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return db, nil
}

// ExportSnapshot writes one aggregate payload into the snapshot database
// and returns the snapshot id. The exported file is what the report server
// offers for browser-side processing.
func ExportSnapshot(ctx context.Context, db *sql.DB, run string, agg aggregate.Result) (string, error) {
	if ctx == nil {
		return "", errors.New("duckdb: context is nil")
	}
	if db == nil {
		return "", errors.New("duckdb: db is nil")
	}
	id := uuid.NewString()
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO snapshots (snapshot_id, run, mode, created_at) VALUES (?, ?, ?, now())`,
		id,
		nullableString(run),
		string(agg.Mode),
	); err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	for _, m := range agg.Models {
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO model_stats (
			  snapshot_id, model, attempts, accuracy, exact_rate, alias_rate,
			  avg_fuzzy, avg_latency_ms, error_rate, coverage, duplication_ratio,
			  avg_input_tokens, avg_output_tokens, avg_reasoning_tokens, avg_total_tokens
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			m.Model,
			m.Count,
			m.Accuracy,
			m.ExactRate,
			m.AliasRate,
			nullableFloat(m.AvgFuzzy),
			nullableFloat(m.AvgLatencyMs),
			m.ErrorRate,
			m.Coverage,
			m.DuplicationRatio,
			nullableFloat(m.Tokens.AvgInput),
			nullableFloat(m.Tokens.AvgOutput),
			nullableFloat(m.Tokens.AvgReasoning),
			nullableFloat(m.Tokens.AvgTotal),
		); err != nil {
			return "", fmt.Errorf("insert model stats for %s: %w", m.Model, err)
		}
	}
	for _, q := range agg.Questions {
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO question_stats (
			  snapshot_id, question_key, question, answer_ref, attempts,
			  accuracy, avg_fuzzy, avg_latency_ms, error_rate, models
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			q.Key,
			nullableString(q.Question),
			nullableString(q.AnswerRef),
			q.Count,
			q.Accuracy,
			nullableFloat(q.AvgFuzzy),
			nullableFloat(q.AvgLatencyMs),
			q.ErrorRate,
			q.Models,
		); err != nil {
			return "", fmt.Errorf("insert question stats for %s: %w", q.Key, err)
		}
	}
	return id, nil
}

// nullableFloat maps a missing average to SQL NULL.
func nullableFloat(value *float64) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// nullableString maps an empty string to SQL NULL.
func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
