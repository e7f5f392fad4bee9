package tui

import (
	"fmt"

	"github.com/avoronov/notka/internal/editor"
	"github.com/charmbracelet/bubbles/textinput"
)

// viewModel is the opened-note overlay. The fields start from the cached
// snapshot and are editable in place; nothing reaches the server until save.
type viewModel struct {
	noteID     int64
	inputs     []textinput.Model
	focus      int
	submitting bool
	status     string
}

func newViewModel(view editor.View) viewModel {
	title := textinput.New()
	title.CharLimit = 200
	title.Width = 50
	title.Focus()
	title.SetValue(view.Title)

	content := textinput.New()
	content.CharLimit = 4000
	content.Width = 50
	content.SetValue(view.Content)

	return viewModel{
		noteID: view.Note.ID,
		inputs: []textinput.Model{title, content},
	}
}

func (m viewModel) title() string   { return m.inputs[0].Value() }
func (m viewModel) content() string { return m.inputs[1].Value() }

func (m viewModel) View() string {
	out := titleStyle.Render(fmt.Sprintf("Note #%d", m.noteID)) + "\n\n"
	out += "Title:   [" + m.inputs[0].View() + "]\n"
	out += "Content: [" + m.inputs[1].View() + "]\n\n"
	if m.submitting {
		out += "[Saving...]\n\n"
	}
	if m.status != "" {
		out += m.status + "\n\n"
	}
	out += helpStyle.Render("esc close  tab next field  enter save  ctrl+d delete  ctrl+y copy content")
	return out
}
