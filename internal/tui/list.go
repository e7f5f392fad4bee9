package tui

import (
	"fmt"

	"github.com/avoronov/notka/models"
)

type listModel struct {
	idx     int
	loading bool
	status  string
}

// clampCursor keeps the cursor inside the collection after loads and deletes.
func (m *listModel) clampCursor(n int) {
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m listModel) View(notes []models.Note, username string) string {
	header := titleStyle.Render("Notka")
	if username != "" {
		header += "  signed in as " + username
	}
	out := header + "\n\n"

	if m.loading {
		out += "Loading...\n"
	} else if len(notes) == 0 {
		out += "No notes yet\n"
	} else {
		for i, note := range notes {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s\n", cursor, note.Title)
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpStyle.Render("n new  e edit  d delete  c copy  r refresh  l log out  q quit  enter open")
	return out
}
