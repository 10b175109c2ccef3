package record

import (
	"strconv"
	"strings"
)

// ErrorAnswerPrefix marks answers produced by failed provider calls. The
// evaluation pipeline writes these verbatim into the logs.
const ErrorAnswerPrefix = "<error: "

// UnknownKey is the question key assigned to records with neither an id nor
// question text, and the model group for records missing a model.
const UnknownKey = "unknown"

// Result is one logged model-answer-to-question attempt, as appended by the
// evaluation pipeline, plus provenance assigned at parse time.
type Result struct {
	ID        string
	HasID     bool
	Question  string
	AnswerRef string
	Aliases   []string
	Model     string
	Answer    string
	LatencyMs *float64
	IsExact   bool
	IsAlias   bool
	IsCorrect bool
	Fuzzy     *float64

	// Fields holds the full decoded line for open-shape lookups such as
	// token usage blocks.
	Fields map[string]Value

	// Provenance. File is relative to the log store root, Line is the
	// 1-based physical line number.
	File string
	Line int

	// ParseErr and Raw are set only on placeholder records for lines that
	// failed to decode. Placeholders never contribute to statistics.
	ParseErr string
	Raw      string
}

// Valid reports whether the record decoded successfully.
func (r Result) Valid() bool {
	return r.ParseErr == ""
}

// IsErrorAnswer reports whether the answer denotes a failed provider call.
func (r Result) IsErrorAnswer() bool {
	return strings.HasPrefix(r.Answer, ErrorAnswerPrefix)
}

// Key derives the stable grouping key for the record: its id when present,
// else the literal question text, else "unknown". Records sharing a key are
// treated as the same question even across phrasing changes.
func (r Result) Key() string {
	if r.HasID {
		return r.ID
	}
	if r.Question != "" {
		return r.Question
	}
	return UnknownKey
}

// ModelKey returns the model grouping key, attributing records with a
// missing model to "unknown" rather than dropping them.
func (r Result) ModelKey() string {
	if r.Model == "" {
		return UnknownKey
	}
	return r.Model
}

// Run returns the run the record belongs to: the first segment of its
// store-relative file path, or "" for files at the store root.
func (r Result) Run() string {
	slash := strings.ReplaceAll(r.File, "\\", "/")
	if idx := strings.Index(slash, "/"); idx >= 0 {
		return slash[:idx]
	}
	return ""
}

// formatID stringifies an id value. Integral numbers render without a
// fractional part so numeric and string ids compare equal across schema
// generations.
func formatID(v Value) (string, bool) {
	switch v.Kind {
	case KindString:
		if v.String == "" {
			return "", false
		}
		return v.String, true
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64), true
	default:
		return "", false
	}
}
