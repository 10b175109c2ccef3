package browse

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"riddlebench/internal/aggregate"
)

// pane identifies which stats table has focus.
type pane int

const (
	paneModels pane = iota
	paneQuestions
)

// Recompute re-runs the aggregation under a new mode. The browse UI holds
// no store handle itself; the caller supplies the engine closure.
type Recompute func(aggregate.Mode) aggregate.Result

// Model renders an interactive stats browser using Bubble Tea.
type Model struct {
	agg       aggregate.Result
	recompute Recompute
	models    table.Model
	questions table.Model
	active    pane
	noColor   bool
	width     int
}

// Options configures the browse model.
type Options struct {
	NoColor bool
}

// NewModel constructs a browse model over an initial aggregate.
func NewModel(agg aggregate.Result, recompute Recompute, opts Options) Model {
	models := table.New(
		table.WithColumns(modelColumns()),
		table.WithRows(modelRows(agg)),
		table.WithFocused(true),
	)
	questions := table.New(
		table.WithColumns(questionColumns()),
		table.WithRows(questionRows(agg)),
		table.WithFocused(false),
	)
	models.SetStyles(tableStyles(opts.NoColor))
	questions.SetStyles(tableStyles(opts.NoColor))
	return Model{
		agg:       agg,
		recompute: recompute,
		models:    models,
		questions: questions,
		active:    paneModels,
		noColor:   opts.NoColor,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key input and terminal resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		height := max(typed.Height-4, 1)
		m.models.SetWidth(typed.Width)
		m.models.SetHeight(height)
		m.questions.SetWidth(typed.Width)
		m.questions.SetHeight(height)
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m = m.togglePane()
			return m, nil
		case "m":
			m = m.cycleMode()
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.active == paneModels {
		m.models, cmd = m.models.Update(msg)
	} else {
		m.questions, cmd = m.questions.Update(msg)
	}
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	header := renderHeader(m.agg, m.active, m.noColor)
	var body string
	if m.active == paneModels {
		body = m.models.View()
	} else {
		body = m.questions.View()
	}
	footer := renderFooter(m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// togglePane switches focus between the model and question tables.
func (m Model) togglePane() Model {
	if m.active == paneModels {
		m.active = paneQuestions
		m.models.Blur()
		m.questions.Focus()
	} else {
		m.active = paneModels
		m.questions.Blur()
		m.models.Focus()
	}
	return m
}

// cycleMode advances all -> unique -> intersection and recomputes.
func (m Model) cycleMode() Model {
	if m.recompute == nil {
		return m
	}
	var next aggregate.Mode
	switch m.agg.Mode {
	case aggregate.ModeAll:
		next = aggregate.ModeUnique
	case aggregate.ModeUnique:
		next = aggregate.ModeIntersection
	default:
		next = aggregate.ModeAll
	}
	m.agg = m.recompute(next)
	m.models.SetRows(modelRows(m.agg))
	m.questions.SetRows(questionRows(m.agg))
	return m
}
