package record

import (
	"encoding/json"
	"os"
	"strings"
)

// ParseFile reads one result-log file and decodes it line by line. The
// returned error is non-nil only when the file itself cannot be read; a
// malformed line degrades to a placeholder record instead of failing the
// file.
func ParseFile(path, relPath string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLines(data, relPath), nil
}

// ParseLines decodes JSON Lines content into records in file order. Line
// numbers reflect physical position (1-based); blank lines are skipped
// without disturbing the numbering.
func ParseLines(data []byte, relPath string) []Result {
	lines := strings.Split(string(data), "\n")
	records := make([]Result, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		records = append(records, parseLine(trimmed, relPath, i+1))
	}
	return records
}

// parseLine decodes a single log line, producing a placeholder record with
// the raw text when the line is not a JSON object.
func parseLine(line, relPath string, lineNo int) Result {
	var value Value
	if err := json.Unmarshal([]byte(line), &value); err != nil {
		return placeholder(line, relPath, lineNo, err.Error())
	}
	fields, ok := value.ObjectValue()
	if !ok {
		return placeholder(line, relPath, lineNo, "line is not a JSON object")
	}
	return fromFields(fields, relPath, lineNo)
}

// placeholder builds a degenerate record carrying only provenance and
// diagnostics.
func placeholder(line, relPath string, lineNo int, reason string) Result {
	return Result{
		File:     relPath,
		Line:     lineNo,
		ParseErr: reason,
		Raw:      line,
	}
}

// fromFields maps a decoded object onto a Result. Missing booleans read as
// false and missing numbers stay nil; the full field map is retained for
// usage extraction.
func fromFields(fields map[string]Value, relPath string, lineNo int) Result {
	r := Result{
		Fields: fields,
		File:   relPath,
		Line:   lineNo,
	}
	if id, ok := fields["id"]; ok {
		if formatted, ok := formatID(id); ok {
			r.ID = formatted
			r.HasID = true
		}
	}
	r.Question = stringField(fields, "question")
	r.AnswerRef = stringField(fields, "answer_ref")
	r.Model = stringField(fields, "model")
	r.Answer = stringField(fields, "answer")
	r.Aliases = stringSliceField(fields, "aliases")
	r.IsExact = boolField(fields, "is_exact")
	r.IsAlias = boolField(fields, "is_alias")
	r.IsCorrect = boolField(fields, "is_correct")
	r.LatencyMs = numberField(fields, "latency_ms")
	r.Fuzzy = numberField(fields, "fuzzy")
	return r
}

func stringField(fields map[string]Value, key string) string {
	value, ok := fields[key]
	if !ok {
		return ""
	}
	s, _ := value.StringValue()
	return s
}

func boolField(fields map[string]Value, key string) bool {
	value, ok := fields[key]
	if !ok {
		return false
	}
	b, _ := value.BoolValue()
	return b
}

func numberField(fields map[string]Value, key string) *float64 {
	value, ok := fields[key]
	if !ok {
		return nil
	}
	n, ok := value.NumberValue()
	if !ok {
		return nil
	}
	return &n
}

func stringSliceField(fields map[string]Value, key string) []string {
	value, ok := fields[key]
	if !ok || value.Kind != KindArray {
		return nil
	}
	out := make([]string, 0, len(value.Array))
	for _, member := range value.Array {
		if s, ok := member.StringValue(); ok {
			out = append(out, s)
		}
	}
	return out
}
