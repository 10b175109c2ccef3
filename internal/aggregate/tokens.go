package aggregate

import "riddlebench/internal/record"

// Historical logs name token counts inconsistently across provider schema
// generations, both at the top level and nested under a "usage" container.
// Extraction tries each alias path in priority order so that newer schemas
// can be added without touching the statistics calculator.

var inputTokenPaths = [][]string{
	{"input_tokens"},
	{"prompt_tokens"},
	{"prompt_eval_count"},
	{"input_token_count"},
}

var outputTokenPaths = [][]string{
	{"output_tokens"},
	{"completion_tokens"},
	{"eval_count"},
	{"output_token_count"},
}

var reasoningTokenPaths = [][]string{
	{"reasoning_tokens"},
	{"thoughts_token_count"},
}

// Reasoning may arrive split across prompt-side and completion-side detail
// blocks; when both resolve and sum positive, the sum wins over any flat
// reasoning field.
var reasoningDetailPaths = [][]string{
	{"prompt_tokens_details", "reasoning_tokens"},
	{"completion_tokens_details", "reasoning_tokens"},
}

var totalTokenPaths = [][]string{
	{"total_tokens"},
	{"total_token_count"},
}

// TokenUsage holds the per-record resolved token counts. Nil means the
// record carries no recoverable value for that metric.
type TokenUsage struct {
	Input     *float64
	Output    *float64
	Reasoning *float64
	Total     *float64
}

// ResolveTokens coalesces a record's token usage across the known alias
// paths, accepting numeric strings and backfilling output from the total
// when possible.
func ResolveTokens(r record.Result) TokenUsage {
	usage := TokenUsage{
		Input:     lookupFirst(r.Fields, inputTokenPaths),
		Output:    lookupFirst(r.Fields, outputTokenPaths),
		Reasoning: resolveReasoning(r.Fields),
		Total:     lookupFirst(r.Fields, totalTokenPaths),
	}
	if usage.Output == nil && usage.Total != nil {
		if usage.Input != nil {
			derived := *usage.Total - *usage.Input
			if derived < 0 {
				derived = 0
			}
			usage.Output = &derived
		} else {
			total := *usage.Total
			usage.Output = &total
		}
	}
	return usage
}

// resolveReasoning prefers the summed detail fields when they are present
// and positive, falling back to the flat aliases.
func resolveReasoning(fields map[string]record.Value) *float64 {
	sum := 0.0
	found := false
	for _, path := range reasoningDetailPaths {
		if value := lookupNumber(fields, path); value != nil {
			sum += *value
			found = true
		}
	}
	if found && sum > 0 {
		return &sum
	}
	return lookupFirst(fields, reasoningTokenPaths)
}

// lookupFirst returns the first alias path that resolves to a number.
func lookupFirst(fields map[string]record.Value, paths [][]string) *float64 {
	for _, path := range paths {
		if value := lookupNumber(fields, path); value != nil {
			return value
		}
	}
	return nil
}

// lookupNumber tries a path at the top level of the record and then under
// the "usage" container.
func lookupNumber(fields map[string]record.Value, path []string) *float64 {
	root := record.Value{Kind: record.KindObject, Object: fields}
	if value, ok := root.Member(path...); ok {
		if n, ok := value.AsNumber(); ok {
			return &n
		}
	}
	nested := append([]string{"usage"}, path...)
	if value, ok := root.Member(nested...); ok {
		if n, ok := value.AsNumber(); ok {
			return &n
		}
	}
	return nil
}
