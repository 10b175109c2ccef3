package aggregate

import "riddlebench/internal/record"

// attempt builds a valid record for grouping tests.
func attempt(model, id string, correct bool) record.Result {
	return record.Result{
		ID:        id,
		HasID:     id != "",
		Question:  "question " + id,
		AnswerRef: "answer " + id,
		Model:     model,
		Answer:    "guess",
		IsCorrect: correct,
	}
}

// withFuzzy sets the fuzzy score on an attempt.
func withFuzzy(r record.Result, fuzzy float64) record.Result {
	r.Fuzzy = &fuzzy
	return r
}

// withLatency sets the latency on an attempt.
func withLatency(r record.Result, ms float64) record.Result {
	r.LatencyMs = &ms
	return r
}

// withAnswer sets the answer text on an attempt.
func withAnswer(r record.Result, answer string) record.Result {
	r.Answer = answer
	return r
}

// findModel returns the stats entry for a model.
func findModel(agg Result, model string) (ModelStats, bool) {
	for _, m := range agg.Models {
		if m.Model == model {
			return m, true
		}
	}
	return ModelStats{}, false
}

// findQuestion returns the stats entry for a question key.
func findQuestion(agg Result, key string) (QuestionStats, bool) {
	for _, q := range agg.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return QuestionStats{}, false
}
