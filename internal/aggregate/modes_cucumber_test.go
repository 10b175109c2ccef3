//go:build cucumber

package aggregate

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"riddlebench/internal/logstore"
)

// TestSelectionModeScenarios runs the selection mode feature scenarios.
func TestSelectionModeScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "selection-modes.feature")
	suite := godog.TestSuite{
		Name:                "selection-modes",
		ScenarioInitializer: InitializeSelectionModeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSelectionModeScenario wires steps for selection mode scenarios.
func InitializeSelectionModeScenario(ctx *godog.ScenarioContext) {
	state := &selectionScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.Step(`^a result log "([^"]+)" with lines:$`, state.givenResultLog)
	ctx.Step(`^I aggregate run "([^"]+)" in "([^"]+)" mode$`, state.whenIAggregate)
	ctx.Step(`^model "([^"]+)" has count (\d+)$`, state.thenModelCount)
	ctx.Step(`^model "([^"]+)" has coverage (\d+)$`, state.thenModelCoverage)
	ctx.Step(`^model "([^"]+)" has accuracy ([0-9.]+)$`, state.thenModelAccuracy)
	ctx.Step(`^model "([^"]+)" has average fuzzy ([0-9.]+)$`, state.thenModelAvgFuzzy)
	ctx.Step(`^the aggregate has (\d+) questions$`, state.thenQuestionCount)
	ctx.Step(`^the aggregate has (\d+) malformed lines$`, state.thenMalformedCount)
}

// selectionScenarioState holds scenario state for selection mode tests.
type selectionScenarioState struct {
	root string
	agg  Result
}

// reset creates a fresh store root per scenario.
func (s *selectionScenarioState) reset() error {
	root, err := os.MkdirTemp("", "riddlebench-features-*")
	if err != nil {
		return err
	}
	s.root = root
	s.agg = Result{}
	return nil
}

// givenResultLog writes a log file under the scenario store root.
func (s *selectionScenarioState) givenResultLog(rel string, lines *godog.DocString) error {
	path := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(lines.Content+"\n"), 0o644)
}

// whenIAggregate runs the engine over the scenario store.
func (s *selectionScenarioState) whenIAggregate(run, modeName string) error {
	store, err := logstore.New(s.root)
	if err != nil {
		return err
	}
	mode, err := ParseMode(modeName)
	if err != nil {
		return err
	}
	s.agg = Engine{Store: store}.Aggregate(run, mode)
	return nil
}

// thenModelCount asserts the resolved record count for a model.
func (s *selectionScenarioState) thenModelCount(model string, count int) error {
	stats, err := s.model(model)
	if err != nil {
		return err
	}
	if stats.Count != count {
		return fmt.Errorf("expected count %d, got %d", count, stats.Count)
	}
	return nil
}

// thenModelCoverage asserts the raw question coverage for a model.
func (s *selectionScenarioState) thenModelCoverage(model string, coverage int) error {
	stats, err := s.model(model)
	if err != nil {
		return err
	}
	if stats.Coverage != coverage {
		return fmt.Errorf("expected coverage %d, got %d", coverage, stats.Coverage)
	}
	return nil
}

// thenModelAccuracy asserts the accuracy for a model.
func (s *selectionScenarioState) thenModelAccuracy(model string, accuracy float64) error {
	stats, err := s.model(model)
	if err != nil {
		return err
	}
	if math.Abs(stats.Accuracy-accuracy) > 1e-9 {
		return fmt.Errorf("expected accuracy %v, got %v", accuracy, stats.Accuracy)
	}
	return nil
}

// thenModelAvgFuzzy asserts the average fuzzy score for a model.
func (s *selectionScenarioState) thenModelAvgFuzzy(model string, fuzzy float64) error {
	stats, err := s.model(model)
	if err != nil {
		return err
	}
	if stats.AvgFuzzy == nil {
		return fmt.Errorf("expected average fuzzy %v, got none", fuzzy)
	}
	if math.Abs(*stats.AvgFuzzy-fuzzy) > 1e-9 {
		return fmt.Errorf("expected average fuzzy %v, got %v", fuzzy, *stats.AvgFuzzy)
	}
	return nil
}

// thenQuestionCount asserts the number of included questions.
func (s *selectionScenarioState) thenQuestionCount(count int) error {
	if len(s.agg.Questions) != count {
		return fmt.Errorf("expected %d questions, got %d", count, len(s.agg.Questions))
	}
	return nil
}

// thenMalformedCount asserts the malformed line counter.
func (s *selectionScenarioState) thenMalformedCount(count int) error {
	if s.agg.Malformed != count {
		return fmt.Errorf("expected %d malformed lines, got %d", count, s.agg.Malformed)
	}
	return nil
}

// model looks up one model's stats in the last aggregate.
func (s *selectionScenarioState) model(name string) (ModelStats, error) {
	for _, m := range s.agg.Models {
		if m.Model == name {
			return m, nil
		}
	}
	return ModelStats{}, fmt.Errorf("model %q not in aggregate", name)
}
