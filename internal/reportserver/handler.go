package reportserver

import (
	"errors"
	"io"
	"net/http"

	"riddlebench/internal/aggregate"
	"riddlebench/internal/logstore"
)

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Riddlebench Results</title>
  </head>
  <body>
    <h1>Riddlebench Results</h1>
    <p>Query the aggregation API under <code>/api/</code>.</p>
  </body>
</html>`

// NewHandler builds the HTTP handler for the browsing shell, the query API,
// and the optional DuckDB snapshot.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.StoreRoot == "" {
		return nil, errors.New("reportserver: store root is required")
	}
	store, err := logstore.New(cfg.StoreRoot)
	if err != nil {
		return nil, err
	}
	mode, err := aggregate.ParseMode(cfg.DefaultMode)
	if err != nil {
		return nil, err
	}
	api := &apiHandler{
		engine:      aggregate.Engine{Store: store},
		defaultMode: mode,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.HandleFunc("/api/runs", api.handleRuns)
	mux.HandleFunc("/api/files", api.handleFiles)
	mux.HandleFunc("/api/aggregate", api.handleAggregate)
	mux.HandleFunc("/api/model", api.handleModel)
	mux.HandleFunc("/api/question", api.handleQuestion)
	if cfg.DBPath != "" {
		mux.Handle("/data/db.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// serveIndex writes the base HTML shell.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// serveDatabase serves the exported DuckDB file for browser-side
// processing.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
