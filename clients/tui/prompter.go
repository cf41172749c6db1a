package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/dohr-michael/simpsched/internal/steps"
)

// ErrNotTerminal is returned when interactive mode is started without a TTY.
var ErrNotTerminal = errors.New("interactive mode requires a terminal")

// RequireTerminal fails unless f is attached to a terminal.
func RequireTerminal(f *os.File) error {
	if !term.IsTerminal(int(f.Fd())) {
		return ErrNotTerminal
	}
	return nil
}

// Prompter answers step prompts with one short bubbletea program per prompt.
type Prompter struct {
	in   io.Reader
	out  io.Writer
	opts []tea.ProgramOption
}

// NewPrompter creates a Prompter reading keys from in and drawing to out.
func NewPrompter(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *Prompter {
	return &Prompter{in: in, out: out, opts: opts}
}

var _ steps.Prompter = (*Prompter)(nil)

// Text implements steps.Prompter.
func (p *Prompter) Text(ctx context.Context, pr steps.Text) (string, error) {
	resp, err := p.run(ctx, pr, pr.Label)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Confirm implements steps.Prompter.
func (p *Prompter) Confirm(ctx context.Context, pr steps.Confirm) (bool, error) {
	resp, err := p.run(ctx, pr, pr.Label)
	if err != nil {
		return false, err
	}
	return resp.Confirmed, nil
}

// Select implements steps.Prompter.
func (p *Prompter) Select(ctx context.Context, pr steps.Select) (string, error) {
	if len(pr.Options) == 0 {
		return "", fmt.Errorf("%s: nothing to choose from", pr.Label)
	}
	resp, err := p.run(ctx, pr, pr.Label)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// MultiSelect implements steps.Prompter.
func (p *Prompter) MultiSelect(ctx context.Context, pr steps.MultiSelect) ([]string, error) {
	resp, err := p.run(ctx, pr, pr.Label)
	if err != nil {
		return nil, err
	}
	return resp.Selected, nil
}

func (p *Prompter) run(ctx context.Context, pr steps.Prompt, label string) (FormResponseMsg, error) {
	form := NewForm(PromptBorderStyle)
	form.Activate(pr)

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	}, p.opts...)

	final, err := tea.NewProgram(promptModel{form: form, label: label}, opts...).Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return FormResponseMsg{}, steps.ErrCancelled
		}
		return FormResponseMsg{}, fmt.Errorf("prompt %q: %w", label, err)
	}

	m, ok := final.(promptModel)
	if !ok || m.resp == nil || m.resp.Cancelled {
		return FormResponseMsg{}, steps.ErrCancelled
	}
	return *m.resp, nil
}

// promptModel hosts a Form for the lifetime of one prompt.
type promptModel struct {
	form  Form
	label string
	resp  *FormResponseMsg
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if resp, ok := msg.(FormResponseMsg); ok {
		m.resp = &resp
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View leaves a one-line summary behind once the prompt is answered.
func (m promptModel) View() string {
	if m.resp == nil {
		return m.form.View() + "\n"
	}
	if m.resp.Cancelled {
		return MutedStyle.Render(m.label+" (cancelled)") + "\n"
	}
	return m.label + " " + HeaderStyle.Render(m.resp.summary()) + "\n"
}

func (r FormResponseMsg) summary() string {
	switch {
	case r.Selected != nil:
		return fmt.Sprint(r.Selected)
	case r.Text != "":
		return r.Text
	case r.Confirmed:
		return "yes"
	}
	return "-"
}
