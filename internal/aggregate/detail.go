package aggregate

import (
	"sort"

	"riddlebench/internal/record"
)

// ModelDetail carries every resolved record for one model, still holding
// file/line provenance for display.
type ModelDetail struct {
	Model   string          `json:"model"`
	Mode    Mode            `json:"mode"`
	Records []record.Result `json:"records"`
}

// QuestionDetail merges everything known about one question across models.
type QuestionDetail struct {
	Key       string        `json:"key"`
	Question  string        `json:"question"`
	AnswerRef string        `json:"answer_ref"`
	Aliases   []string      `json:"aliases,omitempty"`
	Mode      Mode          `json:"mode"`
	PerModel  []ModelAnswer `json:"per_model"`
}

// ModelAnswer is one model's resolved attempt at a question plus the
// summary fields the browsing UI displays.
type ModelAnswer struct {
	Model     string          `json:"model"`
	Correct   bool            `json:"correct"`
	LatencyMs *float64        `json:"latency_ms"`
	Fuzzy     *float64        `json:"fuzzy"`
	Records   []record.Result `json:"records"`
}

// modelDetail resolves one model's records under the mode, in traversal
// order.
func (idx *Index) modelDetail(model string, mode Mode) ModelDetail {
	detail := ModelDetail{Model: model, Mode: mode}
	buckets := idx.ByModelQuestion[model]
	included := idx.includedQuestions(mode)
	// Walk the model's raw stream so resolved records keep traversal order
	// instead of bucket-key order.
	seen := make(map[string]bool, len(buckets))
	for _, r := range idx.ByModel[model] {
		key := r.Key()
		if seen[key] || !included[key] {
			continue
		}
		seen[key] = true
		detail.Records = append(detail.Records, resolveBucket(buckets[key], mode)...)
	}
	return detail
}

// questionDetail assembles the cross-model view for one question key.
// Representative question text, expected answer, and aliases come from the
// first record carrying a non-empty value; disagreements resolve silently
// in favor of the first.
func (idx *Index) questionDetail(key string, mode Mode) (QuestionDetail, bool) {
	records, ok := idx.ByQuestion[key]
	if !ok {
		return QuestionDetail{}, false
	}
	detail := QuestionDetail{Key: key, Mode: mode}
	for _, r := range records {
		if detail.Question == "" {
			detail.Question = r.Question
		}
		if detail.AnswerRef == "" {
			detail.AnswerRef = r.AnswerRef
		}
		if detail.Aliases == nil && len(r.Aliases) > 0 {
			detail.Aliases = r.Aliases
		}
	}
	models := idx.ByQuestionModel[key]
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		resolved := resolveBucket(models[name], mode)
		if len(resolved) == 0 {
			continue
		}
		last := resolved[len(resolved)-1]
		detail.PerModel = append(detail.PerModel, ModelAnswer{
			Model:     name,
			Correct:   last.IsCorrect,
			LatencyMs: last.LatencyMs,
			Fuzzy:     last.Fuzzy,
			Records:   resolved,
		})
	}
	return detail, true
}

// findKeyByQuestion locates a question key by literal question text, for
// callers that do not know the key. Keys are tried in sorted order so the
// fallback is deterministic.
func (idx *Index) findKeyByQuestion(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if _, ok := idx.ByQuestion[text]; ok {
		// Records without ids key by their question text directly.
		return text, true
	}
	for _, key := range idx.Questions() {
		for _, r := range idx.ByQuestion[key] {
			if r.Question == text {
				return key, true
			}
		}
	}
	return "", false
}
