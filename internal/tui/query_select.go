// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/halchemy/bookpath/internal/recommend"
)

const (
	defaultListWidth  = 60
	defaultListHeight = 14
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user completed all selections.
	ActionSelected
	// ActionStopped indicates the user stopped without finishing.
	ActionStopped
)

// QueryResult holds the outcome of the interactive query builder.
type QueryResult struct {
	Action SelectionAction
	Query  *recommend.Query
}

type queryOption struct {
	label string
	value string
	desc  string
}

func (o queryOption) Title() string       { return o.label }
func (o queryOption) Description() string { return o.desc }
func (o queryOption) FilterValue() string { return o.label }

type step struct {
	prompt  string
	options []queryOption
}

func buildSteps(categories []string) []step {
	categoryOptions := make([]queryOption, len(categories))
	for i, category := range categories {
		categoryOptions[i] = queryOption{
			label: titleLabel(category),
			value: category,
			desc:  fmt.Sprintf("Books filed under %s", category),
		}
	}

	return []step{
		{
			prompt:  "What do you want to learn?",
			options: categoryOptions,
		},
		{
			prompt: "What's your current level?",
			options: []queryOption{
				{label: "Beginner", value: "beginner", desc: "Starting from scratch"},
				{label: "Intermediate", value: "intermediate", desc: "Know the basics already"},
				{label: "Advanced", value: "advanced", desc: "Looking for depth"},
				{label: "All levels", value: "all", desc: "Show the full progression"},
			},
		},
		{
			prompt: "Preferred writing style?",
			options: []queryOption{
				{label: "No preference", value: "", desc: "Let the catalog decide"},
				{label: "Story-driven", value: "story-driven", desc: "Narrative and anecdotes"},
				{label: "Tactical / how-to", value: "tactical/how-to", desc: "Actionable steps"},
				{label: "Academic", value: "academic", desc: "Rigorous and thorough"},
				{label: "Reference", value: "reference", desc: "Look things up as needed"},
			},
		},
		{
			prompt: "How deep do you want to go?",
			options: []queryOption{
				{label: "Short path", value: "short", desc: "Up to 3 books"},
				{label: "Deep dive", value: "deep", desc: "Up to 7 books"},
			},
		},
	}
}

type optionStyles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	labelStyle lipgloss.Style
	descStyle  lipgloss.Style
}

func newOptionStyles() optionStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return optionStyles{
		normal:   container,
		selected: selected,
		labelStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		descStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type optionDelegate struct {
	styles optionStyles
}

func newDelegate() optionDelegate {
	return optionDelegate{styles: newOptionStyles()}
}

func (d optionDelegate) Height() int                         { return 4 }
func (d optionDelegate) Spacing() int                        { return 1 }
func (d optionDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	option, ok := item.(queryOption)
	if !ok {
		return
	}

	labelLine := d.styles.labelStyle.Render(option.label)
	descLine := d.styles.descStyle.Render(truncate(option.desc, m.Width()-4))
	content := lipgloss.JoinVertical(lipgloss.Left, labelLine, descLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	steps   []step
	current int
	answers []string
	list    list.Model
	result  QueryResult
}

func newModel(steps []step) *model {
	m := &model{
		steps:   steps,
		answers: make([]string, len(steps)),
		result:  QueryResult{Action: ActionNone},
	}
	m.list = newStepList(steps[0])
	return m
}

func newStepList(s step) list.Model {
	items := make([]list.Item, len(s.options))
	for i, option := range s.options {
		items[i] = option
	}

	l := list.New(items, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()
	return l
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(queryOption); ok {
				m.answers[m.current] = selected.value
				if m.current == len(m.steps)-1 {
					m.result = QueryResult{Action: ActionSelected}
					return m, tea.Quit
				}
				m.current++
				m.list = newStepList(m.steps[m.current])
			}
		case "esc":
			// Back up one step; from the first step it cancels
			if m.current == 0 {
				m.result = QueryResult{Action: ActionStopped}
				return m, tea.Quit
			}
			m.current--
			m.list = newStepList(m.steps[m.current])
		case "ctrl+c", "q":
			m.result = QueryResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("[%d/%d] %s", m.current+1, len(m.steps), m.steps[m.current].prompt))
	listView := m.list.View()
	help := helpStyle.Render("Up/Down navigate | Enter select | Esc back | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectQuery walks the user through category, level, style and depth and
// returns the assembled query. Categories come from the loaded catalog so
// the picker never offers an empty shelf.
func SelectQuery(categories []string) (QueryResult, error) {
	if len(categories) == 0 {
		return QueryResult{}, fmt.Errorf("no categories available")
	}

	m := newModel(buildSteps(categories))
	finalModel, err := runProgram(m)
	if err != nil {
		return QueryResult{}, err
	}

	typed, ok := finalModel.(*model)
	if !ok {
		return QueryResult{}, fmt.Errorf("unexpected program result")
	}
	if typed.result.Action != ActionSelected {
		return typed.result, nil
	}

	query, err := recommend.NewQuery(typed.answers[0], "", typed.answers[1], typed.answers[2], typed.answers[3])
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Action: ActionSelected, Query: &query}, nil
}

func titleLabel(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
