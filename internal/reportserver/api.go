package reportserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"riddlebench/internal/aggregate"
	"riddlebench/internal/logstore"
)

// apiHandler serves the query operations as JSON endpoints. Each request
// recomputes from a cold read of the store; handlers share no mutable
// state, so concurrent requests need no coordination.
type apiHandler struct {
	engine      aggregate.Engine
	defaultMode aggregate.Mode
}

// handleRuns lists distinct run names.
func (h *apiHandler) handleRuns(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs": h.engine.Runs(),
	})
}

// handleFiles lists log file paths, optionally for one run.
func (h *apiHandler) handleFiles(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"files": h.engine.Files(r.URL.Query().Get("run")),
	})
}

// handleAggregate computes the full model and question statistics.
func (h *apiHandler) handleAggregate(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	mode, ok := h.parseMode(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Aggregate(r.URL.Query().Get("run"), mode))
}

// handleModel returns the resolved records for one model across the given
// files. Paths outside the store root are rejected before any file opens.
func (h *apiHandler) handleModel(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	mode, ok := h.parseMode(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	model := query.Get("model")
	if model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}
	files := splitFiles(query["files"])
	detail, err := h.engine.ModelDetail(model, files, mode)
	if err != nil {
		if errors.Is(err, logstore.ErrPathEscapesRoot) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleQuestion returns the per-model view for one question, addressed by
// key or by literal question text.
func (h *apiHandler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	mode, ok := h.parseMode(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	detail, err := h.engine.QuestionDetail(aggregate.QuestionQuery{
		Key:      query.Get("key"),
		Question: query.Get("question"),
		Run:      query.Get("run"),
		Mode:     mode,
	})
	switch {
	case errors.Is(err, aggregate.ErrQuestionSelectorMissing):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, aggregate.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusOK, detail)
	}
}

// parseMode resolves the mode query parameter, falling back to the
// configured default and reporting invalid values as client errors.
func (h *apiHandler) parseMode(w http.ResponseWriter, r *http.Request) (aggregate.Mode, bool) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return h.defaultMode, true
	}
	mode, err := aggregate.ParseMode(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return mode, true
}

// splitFiles accepts both repeated files parameters and comma-separated
// lists.
func splitFiles(params []string) []string {
	var files []string
	for _, param := range params {
		for _, part := range strings.Split(param, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				files = append(files, trimmed)
			}
		}
	}
	return files
}

// requireGet enforces GET on API endpoints.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
