package aggregate

import (
	"sort"

	"riddlebench/internal/record"
)

// Index groups one request's record stream four ways at once. It is built
// once per request and discarded with the response; nothing in this package
// holds state across requests.
type Index struct {
	// Valid records in traversal order. Bucket slices below preserve this
	// order, which is what makes "last record" well defined.
	Records []record.Result
	// Malformed placeholder records, retained for diagnostics only.
	Malformed []record.Result

	ByModel         map[string][]record.Result
	ByModelQuestion map[string]map[string][]record.Result
	ByQuestion      map[string][]record.Result
	ByQuestionModel map[string]map[string][]record.Result

	// FileModels maps each source file to the sorted distinct models it
	// mentions.
	FileModels map[string][]string
}

// BuildIndex folds a record stream into the grouping index in one pass.
func BuildIndex(records []record.Result) *Index {
	index := &Index{
		ByModel:         make(map[string][]record.Result),
		ByModelQuestion: make(map[string]map[string][]record.Result),
		ByQuestion:      make(map[string][]record.Result),
		ByQuestionModel: make(map[string]map[string][]record.Result),
		FileModels:      make(map[string][]string),
	}
	fileModels := make(map[string]map[string]bool)
	for _, r := range records {
		if !r.Valid() {
			index.Malformed = append(index.Malformed, r)
			continue
		}
		model := r.ModelKey()
		key := r.Key()
		index.Records = append(index.Records, r)
		index.ByModel[model] = append(index.ByModel[model], r)
		if index.ByModelQuestion[model] == nil {
			index.ByModelQuestion[model] = make(map[string][]record.Result)
		}
		index.ByModelQuestion[model][key] = append(index.ByModelQuestion[model][key], r)
		index.ByQuestion[key] = append(index.ByQuestion[key], r)
		if index.ByQuestionModel[key] == nil {
			index.ByQuestionModel[key] = make(map[string][]record.Result)
		}
		index.ByQuestionModel[key][model] = append(index.ByQuestionModel[key][model], r)
		if fileModels[r.File] == nil {
			fileModels[r.File] = make(map[string]bool)
		}
		fileModels[r.File][model] = true
	}
	for file, models := range fileModels {
		names := make([]string, 0, len(models))
		for name := range models {
			names = append(names, name)
		}
		sort.Strings(names)
		index.FileModels[file] = names
	}
	return index
}

// Models returns the sorted model names present in the index.
func (idx *Index) Models() []string {
	models := make([]string, 0, len(idx.ByModel))
	for model := range idx.ByModel {
		models = append(models, model)
	}
	sort.Strings(models)
	return models
}

// Questions returns the sorted question keys present in the index.
func (idx *Index) Questions() []string {
	keys := make([]string, 0, len(idx.ByQuestion))
	for key := range idx.ByQuestion {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// includedQuestions returns the question keys that count under the mode.
// Intersection keeps only keys covered by every model present; with zero
// models the set is empty rather than trivially complete.
func (idx *Index) includedQuestions(mode Mode) map[string]bool {
	included := make(map[string]bool, len(idx.ByQuestion))
	if mode != ModeIntersection {
		for key := range idx.ByQuestion {
			included[key] = true
		}
		return included
	}
	if len(idx.ByModel) == 0 {
		return included
	}
	for key, models := range idx.ByQuestionModel {
		if len(models) == len(idx.ByModel) {
			included[key] = true
		}
	}
	return included
}

// resolveBucket reduces one (model, question) bucket to the records that
// count under the mode. Buckets preserve traversal order, so unique and
// intersection pick the last element.
func resolveBucket(bucket []record.Result, mode Mode) []record.Result {
	if len(bucket) == 0 {
		return nil
	}
	if mode == ModeAll {
		return bucket
	}
	return bucket[len(bucket)-1:]
}
