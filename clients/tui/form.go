package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/simpsched/internal/steps"
)

// FormResponseMsg is sent when the user submits or cancels a form.
type FormResponseMsg struct {
	Cancelled bool
	Text      string   // text and select answers
	Confirmed bool     // confirm answers
	Selected  []string // multi-select answers
}

type formKind int

const (
	kindText formKind = iota
	kindConfirm
	kindSelect
	kindMulti
)

// Form renders a single prompt (text, confirm, select, multi) and reports
// the answer with a FormResponseMsg.
type Form struct {
	active     bool
	kind       formKind
	label      string
	options    []steps.Option
	minSelect  int
	defaultYes bool
	validate   func(string) error
	errMsg     string
	cursor     int
	selected   map[int]bool // multi-select state
	textInput  textinput.Model
	style      lipgloss.Style
}

// NewForm creates an inactive form.
func NewForm(style lipgloss.Style) Form {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "
	return Form{
		style:     style,
		textInput: ti,
		selected:  make(map[int]bool),
	}
}

// Active returns whether a prompt is active.
func (f *Form) Active() bool {
	return f.active
}

// Activate sets up the form for a step prompt.
func (f *Form) Activate(p steps.Prompt) {
	f.active = true
	f.cursor = 0
	f.errMsg = ""
	f.options = nil
	f.minSelect = 0
	f.defaultYes = false
	f.validate = nil
	f.selected = make(map[int]bool)
	f.textInput.Reset()
	f.textInput.Placeholder = ""
	f.textInput.Blur()

	switch p := p.(type) {
	case steps.Text:
		f.kind = kindText
		f.label = p.Label
		f.validate = p.Validate
		f.textInput.Placeholder = p.Placeholder
		f.textInput.Focus()
	case steps.Confirm:
		f.kind = kindConfirm
		f.label = p.Label
		f.defaultYes = p.Default
	case steps.Select:
		f.kind = kindSelect
		f.label = p.Label
		f.options = p.Options
	case steps.MultiSelect:
		f.kind = kindMulti
		f.label = p.Label
		f.options = p.Options
		f.minSelect = p.MinSelect
	}
}

// Update handles form input.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if !f.active {
		return f, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.kind == kindText {
			var cmd tea.Cmd
			f.textInput, cmd = f.textInput.Update(msg)
			return f, cmd
		}
		return f, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return f.respond(FormResponseMsg{Cancelled: true})
	}

	switch f.kind {
	case kindConfirm:
		return f.updateConfirm(keyMsg)
	case kindText:
		return f.updateText(keyMsg)
	case kindSelect:
		return f.updateSelect(keyMsg)
	case kindMulti:
		return f.updateMulti(keyMsg)
	default:
		return f, nil
	}
}

func (f Form) respond(resp FormResponseMsg) (Form, tea.Cmd) {
	f.active = false
	f.textInput.Blur()
	return f, func() tea.Msg { return resp }
}

func (f Form) updateConfirm(msg tea.KeyMsg) (Form, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return f.respond(FormResponseMsg{Confirmed: f.defaultYes})
	}
	switch strings.ToLower(msg.String()) {
	case "y":
		return f.respond(FormResponseMsg{Confirmed: true})
	case "n":
		return f.respond(FormResponseMsg{Confirmed: false})
	}
	return f, nil
}

func (f Form) updateText(msg tea.KeyMsg) (Form, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		value := f.textInput.Value()
		if f.validate != nil {
			if err := f.validate(value); err != nil {
				f.errMsg = err.Error()
				return f, nil
			}
		}
		return f.respond(FormResponseMsg{Text: value})
	}
	f.errMsg = ""
	var cmd tea.Cmd
	f.textInput, cmd = f.textInput.Update(msg)
	return f, cmd
}

func (f *Form) moveCursor(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
		return true
	case "down", "j":
		if f.cursor < len(f.options)-1 {
			f.cursor++
		}
		return true
	}
	return false
}

func (f Form) updateSelect(msg tea.KeyMsg) (Form, tea.Cmd) {
	if f.moveCursor(msg) {
		return f, nil
	}
	if msg.Type == tea.KeyEnter && f.cursor < len(f.options) && !f.options[f.cursor].Disabled {
		return f.respond(FormResponseMsg{Text: f.options[f.cursor].Value})
	}
	return f, nil
}

func (f Form) updateMulti(msg tea.KeyMsg) (Form, tea.Cmd) {
	if f.moveCursor(msg) {
		return f, nil
	}
	switch msg.Type {
	case tea.KeySpace:
		if f.cursor < len(f.options) && !f.options[f.cursor].Disabled {
			if f.selected[f.cursor] {
				delete(f.selected, f.cursor)
			} else {
				f.selected[f.cursor] = true
			}
		}
	case tea.KeyEnter:
		if len(f.selected) < f.minSelect {
			return f, nil // don't submit yet
		}
		values := []string{}
		for i, opt := range f.options {
			if f.selected[i] {
				values = append(values, opt.Value)
			}
		}
		return f.respond(FormResponseMsg{Selected: values})
	}
	return f, nil
}

// View renders the form.
func (f Form) View() string {
	if !f.active {
		return ""
	}

	var sb strings.Builder

	switch f.kind {
	case kindConfirm:
		hint := "[y/N]"
		if f.defaultYes {
			hint = "[Y/n]"
		}
		sb.WriteString(fmt.Sprintf("%s %s ", f.label, hint))

	case kindText:
		sb.WriteString(f.label + "\n")
		sb.WriteString(f.textInput.View())
		if f.errMsg != "" {
			sb.WriteString("\n" + ErrorStyle.Render(f.errMsg))
		}

	case kindSelect:
		sb.WriteString(f.label + "\n")
		for i, opt := range f.options {
			sb.WriteString(f.optionLine(i, opt, "") + "\n")
		}

	case kindMulti:
		sb.WriteString(f.label + "\n")
		sb.WriteString(MutedStyle.Render("  (Space: toggle, Enter: submit, Esc: cancel)") + "\n")
		for i, opt := range f.options {
			check := "[ ] "
			if f.selected[i] {
				check = "[x] "
			}
			sb.WriteString(f.optionLine(i, opt, check) + "\n")
		}
		if missing := f.minSelect - len(f.selected); missing > 0 {
			sb.WriteString(MutedStyle.Render(fmt.Sprintf("  Select at least %d more", missing)) + "\n")
		}
	}

	return f.style.Render(strings.TrimRight(sb.String(), "\n"))
}

func (f Form) optionLine(i int, opt steps.Option, check string) string {
	cursor := "  "
	if i == f.cursor {
		cursor = "> "
	}
	line := cursor + check + opt.Label
	if opt.Disabled {
		line = MutedStyle.Render(line + " (disabled)")
	}
	if opt.Description != "" {
		line += " " + MutedStyle.Render(opt.Description)
	}
	return line
}
