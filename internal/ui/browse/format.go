package browse

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"riddlebench/internal/aggregate"
)

// questionDisplayLimit matches the analysis view's 80-rune truncation.
const questionDisplayLimit = 80

// formatRate renders a 0..1 rate with three decimals.
func formatRate(rate float64) string {
	return fmt.Sprintf("%.3f", rate)
}

// formatRatio renders the duplication ratio with two decimals.
func formatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f", ratio)
}

// formatAvg renders an optional average, "-" when absent.
func formatAvg(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *value)
}

// formatCount renders an integer count.
func formatCount(count int) string {
	return fmt.Sprintf("%d", count)
}

// truncateQuestion shortens long question text for table display.
func truncateQuestion(text string) string {
	runes := []rune(text)
	if len(runes) <= questionDisplayLimit {
		return text
	}
	return string(runes[:questionDisplayLimit]) + "..."
}

// renderHeader shows the active pane and mode.
func renderHeader(agg aggregate.Result, active pane, noColor bool) string {
	name := "models"
	if active == paneQuestions {
		name = "questions"
	}
	text := fmt.Sprintf("riddlebench browse: %s (mode: %s, %d models, %d questions)",
		name, agg.Mode, len(agg.Models), len(agg.Questions))
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// renderFooter shows the key bindings.
func renderFooter(noColor bool) string {
	text := "tab: switch pane  m: cycle mode  q: quit"
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Faint(true).Render(text)
}
