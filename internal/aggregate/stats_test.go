package aggregate

import (
	"testing"

	"riddlebench/internal/record"
)

// TestStatsExcludeMissingMetrics verifies per-metric denominators: records
// without a fuzzy score or latency do not drag the averages down.
func TestStatsExcludeMissingMetrics(t *testing.T) {
	idx := BuildIndex([]record.Result{
		withLatency(withFuzzy(attempt("m", "1", true), 80), 100),
		attempt("m", "2", false),
	})

	agg := Compute(idx, ModeUnique)
	stats, _ := findModel(agg, "m")
	if stats.Count != 2 {
		t.Fatalf("expected count 2, got %d", stats.Count)
	}
	if stats.AvgFuzzy == nil || *stats.AvgFuzzy != 80 {
		t.Fatalf("expected avg fuzzy 80, got %v", stats.AvgFuzzy)
	}
	if stats.AvgLatencyMs == nil || *stats.AvgLatencyMs != 100 {
		t.Fatalf("expected avg latency 100, got %v", stats.AvgLatencyMs)
	}
}

// TestStatsAveragesNilWithoutSamples verifies no-sample averages stay nil
// instead of becoming zero or NaN.
func TestStatsAveragesNilWithoutSamples(t *testing.T) {
	idx := BuildIndex([]record.Result{attempt("m", "1", true)})
	agg := Compute(idx, ModeUnique)
	stats, _ := findModel(agg, "m")
	if stats.AvgFuzzy != nil || stats.AvgLatencyMs != nil {
		t.Fatalf("expected nil averages, got fuzzy=%v latency=%v", stats.AvgFuzzy, stats.AvgLatencyMs)
	}
	if stats.Tokens.AvgInput != nil || stats.Tokens.AvgTotal != nil {
		t.Fatalf("expected nil token averages, got %+v", stats.Tokens)
	}
}

// TestErrorRateCountsErrorAnswers verifies errored attempts stay in the
// accuracy denominator and drive the error rate.
func TestErrorRateCountsErrorAnswers(t *testing.T) {
	idx := BuildIndex([]record.Result{
		attempt("m", "1", true),
		withAnswer(attempt("m", "2", false), record.ErrorAnswerPrefix+"timeout>"),
	})

	agg := Compute(idx, ModeUnique)
	stats, _ := findModel(agg, "m")
	if stats.Accuracy != 0.5 {
		t.Fatalf("expected accuracy 0.5, got %v", stats.Accuracy)
	}
	if stats.ErrorRate != 0.5 {
		t.Fatalf("expected error rate 0.5, got %v", stats.ErrorRate)
	}
}

// TestDuplicationRatio verifies the ratio stays 1.0 for clean files and
// reflects retries otherwise, regardless of mode.
func TestDuplicationRatio(t *testing.T) {
	clean := BuildIndex([]record.Result{
		attempt("m", "1", true),
		attempt("m", "2", false),
	})
	agg := Compute(clean, ModeAll)
	stats, _ := findModel(agg, "m")
	if stats.DuplicationRatio != 1 {
		t.Fatalf("expected ratio 1, got %v", stats.DuplicationRatio)
	}

	retried := BuildIndex([]record.Result{
		attempt("m", "1", false),
		attempt("m", "1", true),
		attempt("m", "2", false),
	})
	for _, mode := range []Mode{ModeAll, ModeUnique, ModeIntersection} {
		agg := Compute(retried, mode)
		stats, _ := findModel(agg, "m")
		if stats.DuplicationRatio != 1.5 {
			t.Fatalf("mode %s: expected ratio 1.5, got %v", mode, stats.DuplicationRatio)
		}
		if stats.Coverage != 2 {
			t.Fatalf("mode %s: expected coverage 2, got %d", mode, stats.Coverage)
		}
	}
}

// TestMalformedRecordsAreCountedNotAggregated verifies placeholders stay
// out of the statistics but remain visible in the payload.
func TestMalformedRecordsAreCountedNotAggregated(t *testing.T) {
	records := record.ParseLines([]byte(`{"id":1,"question":"q","model":"m","answer":"a","is_correct":true}
not json
`), "run/m.jsonl")
	agg := Compute(BuildIndex(records), ModeUnique)
	if agg.Malformed != 1 {
		t.Fatalf("expected 1 malformed record, got %d", agg.Malformed)
	}
	stats, _ := findModel(agg, "m")
	if stats.Count != 1 || stats.Accuracy != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

// TestMissingModelGroupsUnderUnknown verifies records without a model form
// their own group instead of disappearing.
func TestMissingModelGroupsUnderUnknown(t *testing.T) {
	records := record.ParseLines([]byte(`{"id":1,"question":"q","answer":"a","is_correct":true}`), "run/m.jsonl")
	agg := Compute(BuildIndex(records), ModeUnique)
	if _, ok := findModel(agg, record.UnknownKey); !ok {
		t.Fatalf("expected unknown model group, got %+v", agg.Models)
	}
}

// TestQuestionStatsMergeRepresentativeText verifies the question text and
// expected answer come from the first record carrying them.
func TestQuestionStatsMergeRepresentativeText(t *testing.T) {
	blank := attempt("a", "1", false)
	blank.Question = ""
	blank.AnswerRef = ""
	full := attempt("b", "1", true)
	full.Question = "What is the capital of France?"
	full.AnswerRef = "Paris"
	idx := BuildIndex([]record.Result{blank, full})

	agg := Compute(idx, ModeUnique)
	q, ok := findQuestion(agg, "1")
	if !ok {
		t.Fatalf("question 1 missing")
	}
	if q.Question != "What is the capital of France?" || q.AnswerRef != "Paris" {
		t.Fatalf("unexpected representative text: %+v", q)
	}
	if q.Models != 2 || q.Count != 2 {
		t.Fatalf("unexpected per-model counts: %+v", q)
	}
}

// TestTopWrongAnswers verifies the recurring-wrong-answer tally keeps the
// three most common and skips errors and correct attempts.
func TestTopWrongAnswers(t *testing.T) {
	records := []record.Result{
		withAnswer(attempt("a", "1", false), "Lyon"),
		withAnswer(attempt("b", "1", false), "Lyon"),
		withAnswer(attempt("c", "1", false), "Nice"),
		withAnswer(attempt("d", "1", false), "Lille"),
		withAnswer(attempt("e", "1", false), "Brest"),
		withAnswer(attempt("f", "1", false), record.ErrorAnswerPrefix+"timeout>"),
		withAnswer(attempt("g", "1", true), "Paris"),
	}
	agg := Compute(BuildIndex(records), ModeUnique)
	q, _ := findQuestion(agg, "1")
	if len(q.WrongAnswers) != 3 {
		t.Fatalf("expected 3 wrong answers, got %+v", q.WrongAnswers)
	}
	if q.WrongAnswers[0].Answer != "Lyon" || q.WrongAnswers[0].Count != 2 {
		t.Fatalf("expected Lyon first, got %+v", q.WrongAnswers[0])
	}
}

// TestModelOrderingByAccuracy verifies the leaderboard sort.
func TestModelOrderingByAccuracy(t *testing.T) {
	idx := BuildIndex([]record.Result{
		attempt("worse", "1", false),
		attempt("better", "1", true),
		attempt("tied", "1", true),
	})
	agg := Compute(idx, ModeUnique)
	if len(agg.Models) != 3 {
		t.Fatalf("expected 3 models, got %+v", agg.Models)
	}
	if agg.Models[0].Model != "better" || agg.Models[1].Model != "tied" || agg.Models[2].Model != "worse" {
		t.Fatalf("unexpected order: %+v", agg.Models)
	}
}

// TestExactAndAliasRates verifies the match-kind breakdown.
func TestExactAndAliasRates(t *testing.T) {
	exact := attempt("m", "1", true)
	exact.IsExact = true
	alias := attempt("m", "2", true)
	alias.IsAlias = true
	idx := BuildIndex([]record.Result{exact, alias, attempt("m", "3", false)})

	agg := Compute(idx, ModeUnique)
	stats, _ := findModel(agg, "m")
	if stats.ExactRate != 1.0/3.0 || stats.AliasRate != 1.0/3.0 {
		t.Fatalf("unexpected rates: exact=%v alias=%v", stats.ExactRate, stats.AliasRate)
	}
}
