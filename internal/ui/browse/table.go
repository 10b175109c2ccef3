package browse

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"riddlebench/internal/aggregate"
)

// tableStyles returns table styles for the browser.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229"))
	return styles
}

// modelColumns defines the model stats table layout.
func modelColumns() []table.Column {
	return []table.Column{
		{Title: "Model", Width: 36},
		{Title: "N", Width: 5},
		{Title: "Acc", Width: 6},
		{Title: "Fuzzy", Width: 6},
		{Title: "Err", Width: 6},
		{Title: "Cov", Width: 5},
		{Title: "Dup", Width: 5},
		{Title: "Lat(ms)", Width: 8},
	}
}

// modelRows converts model stats into table rows.
func modelRows(agg aggregate.Result) []table.Row {
	rows := make([]table.Row, 0, len(agg.Models))
	for _, m := range agg.Models {
		rows = append(rows, table.Row{
			m.Model,
			formatCount(m.Count),
			formatRate(m.Accuracy),
			formatAvg(m.AvgFuzzy),
			formatRate(m.ErrorRate),
			formatCount(m.Coverage),
			formatRatio(m.DuplicationRatio),
			formatAvg(m.AvgLatencyMs),
		})
	}
	return rows
}

// questionColumns defines the question stats table layout.
func questionColumns() []table.Column {
	return []table.Column{
		{Title: "Key", Width: 8},
		{Title: "Question", Width: 48},
		{Title: "N", Width: 5},
		{Title: "Acc", Width: 6},
		{Title: "Fuzzy", Width: 6},
		{Title: "Models", Width: 6},
	}
}

// questionRows converts question stats into table rows, hardest first.
func questionRows(agg aggregate.Result) []table.Row {
	rows := make([]table.Row, 0, len(agg.Questions))
	for _, q := range agg.Questions {
		rows = append(rows, table.Row{
			q.Key,
			truncateQuestion(q.Question),
			formatCount(q.Count),
			formatRate(q.Accuracy),
			formatAvg(q.AvgFuzzy),
			formatCount(q.Models),
		})
	}
	return rows
}
