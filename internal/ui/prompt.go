// Package ui holds the terminal front ends: the rename prompt and the group
// filter bar.
package ui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"diagdeck/internal/rename"
)

// RenamePrompt is a Bubble Tea model around a rename.Session. It is also the
// session's rename.Host: insert mode focuses the input, select-all marks the
// prefilled text so the first keystroke replaces it.
type RenamePrompt struct {
	session  *rename.Session
	input    textinput.Model
	title    string
	selected bool
	width    int
	mountErr error
	quitting bool
}

var _ rename.Host = (*RenamePrompt)(nil)

// NewRenamePrompt returns a prompt prefilled with original. submit receives
// the session outcome exactly once.
func NewRenamePrompt(original string, submit rename.SubmitFunc, opts ...rename.Option) *RenamePrompt {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "new name"
	in.SetValue(original)

	p := &RenamePrompt{
		input: in,
		title: "Rename " + original,
		width: 80,
	}
	p.session = rename.NewSession(original, p, submit, opts...)
	return p
}

// ActivateInsertMode implements rename.Host.
func (p *RenamePrompt) ActivateInsertMode(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.input.Focus()
	return nil
}

// SelectAll implements rename.Host.
func (p *RenamePrompt) SelectAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.input.Focused() {
		return errors.New("select all: input is not focused")
	}
	p.input.CursorEnd()
	p.selected = p.input.Value() != ""
	return nil
}

// Session exposes the underlying session.
func (p *RenamePrompt) Session() *rename.Session {
	return p.session
}

// Err returns the error raised while mounting, if any.
func (p *RenamePrompt) Err() error {
	return p.mountErr
}

func (p *RenamePrompt) Init() tea.Cmd {
	if err := p.session.Mount(context.Background()); err != nil {
		p.mountErr = err
		_ = p.session.Blur()
		p.quitting = true
		return tea.Quit
	}
	return textinput.Blink
}

func (p *RenamePrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			_ = p.session.SetText(p.input.Value())
			_ = p.session.Confirm()
			p.quitting = true
			return p, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			_ = p.session.Blur()
			p.quitting = true
			return p, tea.Quit
		}
		if p.selected {
			p.selected = false
			switch msg.Type {
			case tea.KeyRunes, tea.KeySpace:
				p.input.SetValue("")
			case tea.KeyBackspace, tea.KeyDelete:
				p.input.SetValue("")
				_ = p.session.SetText("")
				return p, nil
			}
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		_ = p.session.SetText(p.input.Value())
		return p, cmd
	case tea.BlurMsg:
		// потеря фокуса терминала равна отмене
		_ = p.session.Blur()
		p.quitting = true
		return p, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			p.width = msg.Width
			p.input.Width = max(msg.Width-4, 10)
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

var (
	promptTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	promptSelectedStyle = lipgloss.NewStyle().Reverse(true)
	promptHintStyle     = lipgloss.NewStyle().Faint(true)
)

func (p *RenamePrompt) View() string {
	if p.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(promptTitleStyle.Render(truncate(p.title, p.width-2)))
	b.WriteString("\n")
	if p.selected {
		b.WriteString(p.input.Prompt)
		b.WriteString(promptSelectedStyle.Render(p.input.Value()))
	} else {
		b.WriteString(p.input.View())
	}
	b.WriteString("\n")
	b.WriteString(promptHintStyle.Render("enter: rename • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// RunRenamePrompt shows the prompt on out (reading keys from in) and returns
// the session outcome. Cancelling yields ok=false without error.
func RunRenamePrompt(ctx context.Context, original string, in io.Reader, out io.Writer, opts ...rename.Option) (string, bool, error) {
	var (
		name string
		ok   bool
	)
	prompt := NewRenamePrompt(original, func(n string, accepted bool) {
		name, ok = n, accepted
	}, opts...)

	program := tea.NewProgram(prompt,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithReportFocus(),
	)
	if _, err := program.Run(); err != nil {
		// прерванная программа не успела ничего отправить
		_ = prompt.session.Blur()
		return "", false, err
	}
	if err := prompt.Err(); err != nil {
		return "", false, err
	}
	return name, ok, nil
}
