// Package tui collects workflow parameters interactively with Bubble Tea.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CustomEntry is the extra list entry that switches to free text input.
const CustomEntry = "Enter your own value"

// Question is one prompt: a list of options, free text input, or both.
type Question struct {
	Title       string
	Options     []string
	AllowCustom bool // appends CustomEntry to Options
	Numeric     bool // free input must be a non-negative integer
}

// listItem implements list.Item.
type listItem struct {
	name   string
	custom bool
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.name }

// Model asks a single Question.
type Model struct {
	question  Question
	list      list.Model
	input     textinput.Model
	typing    bool
	answer    string
	err       string
	cancelled bool
}

// NewModel creates a Model for q. A question without options starts in text
// input mode.
func NewModel(q Question) Model {
	items := make([]list.Item, 0, len(q.Options)+1)
	for _, o := range q.Options {
		items = append(items, listItem{name: o})
	}
	if q.AllowCustom {
		items = append(items, listItem{name: CustomEntry, custom: true})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, 80, listHeight(len(items)))
	l.Title = q.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 60
	ti.Prompt = "> "

	m := Model{question: q, list: l, input: ti}
	if len(q.Options) == 0 {
		m.typing = true
		m.input.Focus()
	}
	return m
}

func listHeight(n int) int {
	// Each item of the default delegate takes two lines, plus the title.
	return n*2 + 4
}

// Answer returns the chosen or typed value.
func (m Model) Answer() string { return m.answer }

// Cancelled reports whether the user aborted the prompt.
func (m Model) Cancelled() bool { return m.cancelled }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.typing {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if m.typing && len(m.question.Options) > 0 {
				m.typing = false
				m.err = ""
				m.input.Blur()
				return m, nil
			}
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if m.typing {
				return m.submitInput()
			}
			return m.submitChoice()
		}
	}

	var cmd tea.Cmd
	if m.typing {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) submitChoice() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	if item.custom {
		m.typing = true
		m.input.Focus()
		return m, textinput.Blink
	}
	m.answer = item.name
	return m, tea.Quit
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.err = "A value is required."
		return m, nil
	}
	if m.question.Numeric {
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			m.err = "Please enter a numeric value."
			return m, nil
		}
	}
	m.answer = value
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if m.answer != "" || m.cancelled {
		return ""
	}
	var b strings.Builder
	if m.typing {
		b.WriteString(TitleStyle.Render(m.question.Title))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(ErrorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("enter: confirm • esc: back • ctrl+c: quit"))
	return b.String()
}
