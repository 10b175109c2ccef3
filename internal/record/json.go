package record

import "encoding/json"

// resultJSON is the display shape for records in API responses. The open
// usage payload stays internal; provenance is always included.
type resultJSON struct {
	ID        string   `json:"id,omitempty"`
	Question  string   `json:"question,omitempty"`
	AnswerRef string   `json:"answer_ref,omitempty"`
	Aliases   []string `json:"aliases,omitempty"`
	Model     string   `json:"model,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	LatencyMs *float64 `json:"latency_ms,omitempty"`
	IsExact   bool     `json:"is_exact"`
	IsAlias   bool     `json:"is_alias"`
	IsCorrect bool     `json:"is_correct"`
	Fuzzy     *float64 `json:"fuzzy,omitempty"`
	File      string   `json:"file"`
	Line      int      `json:"line"`
	ParseErr  string   `json:"parse_error,omitempty"`
	Raw       string   `json:"raw,omitempty"`
}

// MarshalJSON renders the record for display responses.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		ID:        r.ID,
		Question:  r.Question,
		AnswerRef: r.AnswerRef,
		Aliases:   r.Aliases,
		Model:     r.Model,
		Answer:    r.Answer,
		LatencyMs: r.LatencyMs,
		IsExact:   r.IsExact,
		IsAlias:   r.IsAlias,
		IsCorrect: r.IsCorrect,
		Fuzzy:     r.Fuzzy,
		File:      r.File,
		Line:      r.Line,
		ParseErr:  r.ParseErr,
		Raw:       r.Raw,
	})
}
