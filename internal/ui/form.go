package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shopfront/internal/apperr"
	"github.com/five82/shopfront/internal/pages"
)

// formState is an open page form. While busy, the submit is in flight and
// input is ignored.
type formState struct {
	active bool
	form   pages.Form
	inputs []textinput.Model
	focus  int
	busy   bool
	err    string
}

type formResultMsg struct {
	outcome pages.Outcome
	err     error
}

func newFormState(form pages.Form) formState {
	inputs := make([]textinput.Model, len(form.Fields))
	for i, field := range form.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = field.Label
		in.CharLimit = 256
		if field.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	fs := formState{active: true, form: form, inputs: inputs}
	if len(inputs) > 0 {
		fs.inputs[0].Focus()
	}
	return fs
}

func (f *formState) focusField(i int) tea.Cmd {
	n := len(f.inputs)
	if n == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (i%n + n) % n
	return f.inputs[f.focus].Focus()
}

func (f formState) values() pages.Values {
	values := make(pages.Values, len(f.form.Fields))
	for i, field := range f.form.Fields {
		values[field.Key] = f.inputs[i].Value()
	}
	return values
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.form.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.form = formState{}
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.focusField(m.form.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.focusField(m.form.focus - 1)
	case key.Matches(msg, m.keys.Open):
		if m.form.focus < len(m.form.inputs)-1 {
			return m, m.form.focusField(m.form.focus + 1)
		}
		return m, m.submitForm()
	}

	if len(m.form.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *Model) submitForm() tea.Cmd {
	m.form.busy = true
	m.form.err = ""
	form := m.form.form
	values := m.form.values()
	ctx := m.ctx
	return func() tea.Msg {
		outcome, err := form.Submit(ctx, values)
		return formResultMsg{outcome: outcome, err: err}
	}
}

func (m *Model) handleFormResult(msg formResultMsg) {
	if !m.form.active {
		return
	}
	m.form.busy = false
	if msg.err != nil {
		m.form.err = apperr.Describe(msg.err)
		return
	}
	m.form = formState{}
	if msg.outcome.Notice != "" {
		m.setNotice(msg.outcome.Notice, false)
	}
	if msg.outcome.Next != "" {
		m.navigate(msg.outcome.Next)
	}
}
