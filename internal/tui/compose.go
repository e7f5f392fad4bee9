package tui

import (
	"github.com/avoronov/notka/internal/editor"
	"github.com/charmbracelet/bubbles/textinput"
)

type composeModel struct {
	inputs     []textinput.Model
	focus      int
	editing    bool
	submitting bool
}

func newComposeModel(draft editor.Compose) composeModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 50
	title.Focus()
	title.SetValue(draft.Title)

	content := textinput.New()
	content.Placeholder = "content"
	content.CharLimit = 4000
	content.Width = 50
	content.SetValue(draft.Content)

	return composeModel{
		inputs:  []textinput.Model{title, content},
		editing: draft.TargetID != nil,
	}
}

func (m composeModel) title() string   { return m.inputs[0].Value() }
func (m composeModel) content() string { return m.inputs[1].Value() }

func (m composeModel) View() string {
	header := "New note"
	if m.editing {
		header = "Edit note"
	}

	out := titleStyle.Render(header) + "\n\n"
	out += "Title:   [" + m.inputs[0].View() + "]\n"
	out += "Content: [" + m.inputs[1].View() + "]\n\n"
	if m.submitting {
		out += "[Saving...]\n\n"
	}
	out += helpStyle.Render("esc cancel  tab next field  enter save")
	return out
}
