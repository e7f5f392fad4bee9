package tui

import "github.com/charmbracelet/bubbles/textinput"

type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newRegisterModel() registerModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	repeat := textinput.New()
	repeat.Placeholder = "repeat password"
	repeat.CharLimit = 256
	repeat.Width = 40
	repeat.EchoMode = textinput.EchoPassword
	repeat.EchoCharacter = '*'

	return registerModel{inputs: []textinput.Model{username, password, repeat}}
}

func (m registerModel) View() string {
	out := titleStyle.Render("Create account") + "\n\n"
	out += "Username:        [" + m.inputs[0].View() + "]\n"
	out += "Password:        [" + m.inputs[1].View() + "]\n"
	out += "Repeat password: [" + m.inputs[2].View() + "]\n\n"
	if m.submitting {
		out += "[Creating account...]\n\n"
	}
	out += helpStyle.Render("esc back  tab next field  enter submit")
	return out
}
