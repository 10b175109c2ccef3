package aggregate

import (
	"errors"
	"fmt"

	"riddlebench/internal/logstore"
	"riddlebench/internal/record"
)

// ErrQuestionSelectorMissing is returned when a question detail request
// names neither a key nor question text. It is rejected before any file
// I/O happens.
var ErrQuestionSelectorMissing = errors.New("aggregate: question key or question text is required")

// ErrQuestionNotFound is returned when no record matches the requested
// question.
var ErrQuestionNotFound = errors.New("aggregate: question not found")

// Engine answers the query operations against one log store. Every request
// recomputes from a cold read of the file tree; the engine itself is
// stateless and safe for concurrent use.
type Engine struct {
	Store logstore.Store
}

// Runs lists the distinct run names under the store root.
func (e Engine) Runs() []string {
	return e.Store.Runs()
}

// Files lists result-log paths, optionally filtered to one run.
func (e Engine) Files(run string) []string {
	return e.Store.Files(run)
}

// Aggregate computes the full model and question statistics for a run (or
// the whole store when run is empty) under a mode.
func (e Engine) Aggregate(run string, mode Mode) Result {
	return Compute(BuildIndex(e.Store.Scan(run)), mode)
}

// ModelDetail returns the mode-resolved records for one model across the
// given files. Every path is validated against the store root before any
// file is opened.
func (e Engine) ModelDetail(model string, files []string, mode Mode) (ModelDetail, error) {
	if model == "" {
		return ModelDetail{}, fmt.Errorf("aggregate: model is required")
	}
	var records []record.Result
	for _, file := range files {
		parsed, err := e.Store.ReadFile(file)
		if err != nil {
			if errors.Is(err, logstore.ErrPathEscapesRoot) {
				return ModelDetail{}, err
			}
			// Unreadable file inside the root contributes zero records.
			continue
		}
		records = append(records, parsed...)
	}
	idx := BuildIndex(records)
	return idx.modelDetail(model, mode), nil
}

// QuestionQuery selects a question by key or by literal question text, the
// latter as a fallback for callers that do not know the key.
type QuestionQuery struct {
	Key      string
	Question string
	Run      string
	Mode     Mode
}

// QuestionDetail assembles the per-model view for one question.
func (e Engine) QuestionDetail(q QuestionQuery) (QuestionDetail, error) {
	if q.Key == "" && q.Question == "" {
		return QuestionDetail{}, ErrQuestionSelectorMissing
	}
	idx := BuildIndex(e.Store.Scan(q.Run))
	key := q.Key
	if key == "" {
		found, ok := idx.findKeyByQuestion(q.Question)
		if !ok {
			return QuestionDetail{}, ErrQuestionNotFound
		}
		key = found
	}
	detail, ok := idx.questionDetail(key, q.Mode)
	if !ok {
		return QuestionDetail{}, ErrQuestionNotFound
	}
	return detail, nil
}
