package aggregate

import (
	"sort"

	"riddlebench/internal/record"
)

// ModelStats summarizes one model's resolved records under a mode.
type ModelStats struct {
	Model        string   `json:"model"`
	Count        int      `json:"count"`
	Accuracy     float64  `json:"accuracy"`
	ExactRate    float64  `json:"exact_rate"`
	AliasRate    float64  `json:"alias_rate"`
	AvgFuzzy     *float64 `json:"avg_fuzzy"`
	AvgLatencyMs *float64 `json:"avg_latency_ms"`
	ErrorRate    float64  `json:"error_rate"`

	// Coverage and DuplicationRatio are computed over the raw record set,
	// independent of the mode.
	Coverage         int     `json:"coverage"`
	DuplicationRatio float64 `json:"duplication_ratio"`

	Tokens TokenAverages `json:"tokens"`
}

// QuestionStats summarizes one question's resolved records under a mode.
type QuestionStats struct {
	Key          string        `json:"key"`
	Question     string        `json:"question"`
	AnswerRef    string        `json:"answer_ref"`
	Count        int           `json:"count"`
	Accuracy     float64       `json:"accuracy"`
	AvgFuzzy     *float64      `json:"avg_fuzzy"`
	AvgLatencyMs *float64      `json:"avg_latency_ms"`
	ErrorRate    float64       `json:"error_rate"`
	Models       int           `json:"models"`
	WrongAnswers []WrongAnswer `json:"wrong_answers,omitempty"`
}

// WrongAnswer tallies a recurring incorrect answer for a question.
type WrongAnswer struct {
	Answer string `json:"answer"`
	Count  int    `json:"count"`
}

// TokenAverages holds per-metric token means. Each metric averages only the
// records where it could be resolved; nil means no record resolved it.
type TokenAverages struct {
	AvgInput     *float64 `json:"avg_input"`
	AvgOutput    *float64 `json:"avg_output"`
	AvgReasoning *float64 `json:"avg_reasoning"`
	AvgTotal     *float64 `json:"avg_total"`
}

// Result is one aggregate payload: both granularities plus the
// file-to-model index, computed fresh from the record stream.
type Result struct {
	Mode       Mode                `json:"mode"`
	Models     []ModelStats        `json:"models"`
	Questions  []QuestionStats     `json:"questions"`
	FileModels map[string][]string `json:"file_models"`
	Malformed  int                 `json:"malformed"`
}

// Compute builds the full aggregate for an index under a mode. Models sort
// by accuracy descending, questions by accuracy ascending (hardest first),
// matching the analysis views this engine replaced.
func Compute(idx *Index, mode Mode) Result {
	included := idx.includedQuestions(mode)
	out := Result{
		Mode:       mode,
		Models:     make([]ModelStats, 0, len(idx.ByModel)),
		Questions:  make([]QuestionStats, 0, len(included)),
		FileModels: idx.FileModels,
		Malformed:  len(idx.Malformed),
	}
	for _, model := range idx.Models() {
		out.Models = append(out.Models, computeModelStats(idx, model, mode, included))
	}
	sort.SliceStable(out.Models, func(i, j int) bool {
		if out.Models[i].Accuracy != out.Models[j].Accuracy {
			return out.Models[i].Accuracy > out.Models[j].Accuracy
		}
		return out.Models[i].Model < out.Models[j].Model
	})
	for _, key := range idx.Questions() {
		if !included[key] {
			continue
		}
		out.Questions = append(out.Questions, computeQuestionStats(idx, key, mode))
	}
	sort.SliceStable(out.Questions, func(i, j int) bool {
		if out.Questions[i].Accuracy != out.Questions[j].Accuracy {
			return out.Questions[i].Accuracy < out.Questions[j].Accuracy
		}
		return out.Questions[i].Key < out.Questions[j].Key
	})
	return out
}

// computeModelStats resolves one model's buckets under the mode and derives
// its statistics.
func computeModelStats(idx *Index, model string, mode Mode, included map[string]bool) ModelStats {
	buckets := idx.ByModelQuestion[model]
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var resolved []record.Result
	for _, key := range keys {
		if !included[key] {
			continue
		}
		resolved = append(resolved, resolveBucket(buckets[key], mode)...)
	}

	stats := ModelStats{
		Model:    model,
		Coverage: len(buckets),
	}
	if stats.Coverage > 0 {
		stats.DuplicationRatio = float64(len(idx.ByModel[model])) / float64(stats.Coverage)
	}
	fillCommonStats(resolved, &stats.Count, &stats.Accuracy, &stats.AvgFuzzy, &stats.AvgLatencyMs, &stats.ErrorRate)
	if stats.Count > 0 {
		exact, alias := 0, 0
		for _, r := range resolved {
			if r.IsExact {
				exact++
			}
			if r.IsAlias {
				alias++
			}
		}
		stats.ExactRate = float64(exact) / float64(stats.Count)
		stats.AliasRate = float64(alias) / float64(stats.Count)
	}
	stats.Tokens = averageTokens(resolved)
	return stats
}

// computeQuestionStats resolves one question's per-model buckets under the
// mode and derives its statistics. Question text and expected answer come
// from the first record carrying a non-empty value.
func computeQuestionStats(idx *Index, key string, mode Mode) QuestionStats {
	models := idx.ByQuestionModel[key]
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)

	var resolved []record.Result
	for _, name := range names {
		resolved = append(resolved, resolveBucket(models[name], mode)...)
	}

	stats := QuestionStats{
		Key:    key,
		Models: len(models),
	}
	for _, r := range idx.ByQuestion[key] {
		if stats.Question == "" {
			stats.Question = r.Question
		}
		if stats.AnswerRef == "" {
			stats.AnswerRef = r.AnswerRef
		}
		if stats.Question != "" && stats.AnswerRef != "" {
			break
		}
	}
	fillCommonStats(resolved, &stats.Count, &stats.Accuracy, &stats.AvgFuzzy, &stats.AvgLatencyMs, &stats.ErrorRate)
	stats.WrongAnswers = topWrongAnswers(resolved, 3)
	return stats
}

// fillCommonStats derives the metrics shared by both granularities from a
// resolved record set. Rates are 0 for an empty set, never NaN; averages
// exclude records missing the value from that metric's denominator.
func fillCommonStats(resolved []record.Result, count *int, accuracy *float64, avgFuzzy, avgLatency **float64, errorRate *float64) {
	*count = len(resolved)
	if len(resolved) == 0 {
		return
	}
	correct, errors := 0, 0
	var fuzzy, latency []float64
	for _, r := range resolved {
		if r.IsCorrect {
			correct++
		}
		if r.IsErrorAnswer() {
			errors++
		}
		if r.Fuzzy != nil {
			fuzzy = append(fuzzy, *r.Fuzzy)
		}
		if r.LatencyMs != nil {
			latency = append(latency, *r.LatencyMs)
		}
	}
	*accuracy = float64(correct) / float64(len(resolved))
	*errorRate = float64(errors) / float64(len(resolved))
	*avgFuzzy = mean(fuzzy)
	*avgLatency = mean(latency)
}

// averageTokens means each token metric over the records that resolved it.
// There is no record-level "has usage" flag; each metric excludes missing
// values independently.
func averageTokens(resolved []record.Result) TokenAverages {
	var input, output, reasoning, total []float64
	for _, r := range resolved {
		usage := ResolveTokens(r)
		if usage.Input != nil {
			input = append(input, *usage.Input)
		}
		if usage.Output != nil {
			output = append(output, *usage.Output)
		}
		if usage.Reasoning != nil {
			reasoning = append(reasoning, *usage.Reasoning)
		}
		if usage.Total != nil {
			total = append(total, *usage.Total)
		}
	}
	return TokenAverages{
		AvgInput:     mean(input),
		AvgOutput:    mean(output),
		AvgReasoning: mean(reasoning),
		AvgTotal:     mean(total),
	}
}

// topWrongAnswers tallies incorrect non-error answers and keeps the n most
// common, ties broken by answer text for determinism.
func topWrongAnswers(resolved []record.Result, n int) []WrongAnswer {
	counts := make(map[string]int)
	for _, r := range resolved {
		if r.IsCorrect || r.IsErrorAnswer() || r.Answer == "" {
			continue
		}
		counts[r.Answer]++
	}
	if len(counts) == 0 {
		return nil
	}
	answers := make([]WrongAnswer, 0, len(counts))
	for answer, count := range counts {
		answers = append(answers, WrongAnswer{Answer: answer, Count: count})
	}
	sort.SliceStable(answers, func(i, j int) bool {
		if answers[i].Count != answers[j].Count {
			return answers[i].Count > answers[j].Count
		}
		return answers[i].Answer < answers[j].Answer
	})
	if len(answers) > n {
		answers = answers[:n]
	}
	return answers
}

// mean returns the arithmetic mean, or nil for an empty sample.
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}
