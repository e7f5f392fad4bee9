package tui

import (
	"github.com/avoronov/notka/internal/editor"
	"github.com/avoronov/notka/models"
)

type authDoneMsg struct {
	username string
	err      error
}

type notesLoadedMsg struct {
	notes []models.Note
	err   error
}

type noteSavedMsg struct {
	action   editor.SubmitAction
	note     models.Note
	fromView bool
	err      error
}

type noteDeletedMsg struct {
	id  int64
	err error
}

type copiedMsg struct{}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
