package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avoronov/notka/internal/adapter"
	"github.com/avoronov/notka/internal/editor"
	"github.com/avoronov/notka/internal/store"
	"github.com/avoronov/notka/models"
)

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenList
	screenView
	screenCompose
)

type appMode int

const (
	modeLogin appMode = iota
	modeMain
)

type appModel struct {
	ctx    context.Context
	auth   adapter.AuthAdapter
	notes  adapter.NotesAdapter
	tokens store.TokenStore

	mode          appMode
	currentScreen screen

	state *editor.State

	welcome  welcomeModel
	login    loginModel
	register registerModel
	list     listModel
	compose  composeModel
	view     viewModel

	username string

	err            error
	showError      bool
	errorOverlay   errorOverlayModel
	showConfirm    bool
	confirm        confirmModel
	pendingDelete  int64
	logout         bool
	resultUsername string
}

func newLoginAppModel(ctx context.Context, auth adapter.AuthAdapter, notes adapter.NotesAdapter, tokens store.TokenStore) appModel {
	return appModel{
		ctx:           ctx,
		auth:          auth,
		notes:         notes,
		tokens:        tokens,
		mode:          modeLogin,
		currentScreen: screenWelcome,
		state:         &editor.State{},
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
	}
}

func newMainAppModel(ctx context.Context, auth adapter.AuthAdapter, notes adapter.NotesAdapter, tokens store.TokenStore, username string) appModel {
	m := newLoginAppModel(ctx, auth, notes, tokens)
	m.mode = modeMain
	m.username = username
	m.currentScreen = screenList
	m.list.loading = true
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.mode == modeMain {
		return m.cmdLoadNotes()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global hotkey: works on input screens where plain "q" is typed text.
		if msg.String() == "ctrl+c" {
			if m.mode == modeLogin {
				m.err = ErrUserQuit
			}
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingDelete == 0 {
					return m, nil
				}
				return m, m.cmdDeleteNote(m.pendingDelete)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = 0
			}
			return m, nil
		}
	case authDoneMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.resultUsername = msg.username
		return m, tea.Quit
	case notesLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			return m.handleCommandError(msg.err)
		}
		m.state.Load(msg.notes)
		m.list.clampCursor(m.state.Cache().Len())
		return m, nil
	case noteSavedMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			return m.handleCommandError(msg.err)
		}
		if msg.fromView {
			m.state.FinishView(msg.note)
			if _, viewing := m.state.Viewing(); !viewing && m.currentScreen == screenView {
				m.currentScreen = screenList
			}
		} else {
			m.state.FinishCompose(msg.action, msg.note)
			if _, composing := m.state.Composing(); !composing && m.currentScreen == screenCompose {
				m.currentScreen = screenList
			}
		}
		return m, nil
	case noteDeletedMsg:
		m.pendingDelete = 0
		if msg.err != nil {
			return m.handleCommandError(msg.err)
		}
		m.state.ApplyDeleted(msg.id)
		m.list.clampCursor(m.state.Cache().Len())
		// The surface showing the deleted note was reset with it.
		if m.currentScreen == screenView {
			if _, viewing := m.state.Viewing(); !viewing {
				m.currentScreen = screenList
			}
		}
		if m.currentScreen == screenCompose {
			if _, composing := m.state.Composing(); !composing {
				m.currentScreen = screenList
			}
		}
		return m, nil
	case copiedMsg:
		if m.currentScreen == screenView {
			m.view.status = "Copied!"
		} else {
			m.list.status = "Copied!"
		}
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.showErrorf(msg.err.Error())
		return m, nil
	case clearStatusMsg:
		m.view.status = ""
		m.list.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenList:
		return m.updateList(msg)
	case screenView:
		return m.updateView(msg)
	case screenCompose:
		return m.updateCompose(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenList:
		body = m.list.View(m.state.Cache().All(), m.username)
	case screenView:
		body = m.view.View()
	case screenCompose:
		body = m.compose.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setSubmitting(v bool) {
	m.login.submitting = v
	m.register.submitting = v
	m.compose.submitting = v
	m.view.submitting = v
}

// handleCommandError ends the session on an authorization failure and shows
// every other error in the overlay, leaving the current screen and any open
// draft untouched.
func (m appModel) handleCommandError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, adapter.ErrUnauthorized) {
		m.logout = true
		return m, tea.Quit
	}
	m.showErrorf(err.Error())
	return m, nil
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.welcome.idx == 0 {
			m.currentScreen = screenLogin
		} else {
			m.currentScreen = screenRegister
		}
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			username := strings.TrimSpace(m.login.inputs[0].Value())
			pass := m.login.inputs[1].Value()
			if username == "" || pass == "" {
				m.showErrorf("Username and password are required")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(models.Credentials{Username: username, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register = focusNextRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register = focusPrevRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			username := strings.TrimSpace(m.register.inputs[0].Value())
			pass := m.register.inputs[1].Value()
			repeat := m.register.inputs[2].Value()
			if username == "" || pass == "" {
				m.showErrorf("Username and password are required")
				return m, nil
			}
			if pass != repeat {
				m.showErrorf("Passwords do not match")
				return m, nil
			}
			m.register.submitting = true
			return m, m.cmdRegisterAndLogin(models.Credentials{Username: username, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < m.state.Cache().Len()-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		note, ok := m.state.Cache().At(m.list.idx)
		if !ok {
			return m, nil
		}
		if err := m.state.OpenView(note.ID); err != nil {
			m.showErrorf(err.Error())
			return m, nil
		}
		view, _ := m.state.Viewing()
		m.view = newViewModel(view)
		m.currentScreen = screenView
	case key.Matches(keyMsg, keys.newNote):
		m.state.StartCreate()
		draft, _ := m.state.Composing()
		m.compose = newComposeModel(draft)
		m.currentScreen = screenCompose
	case key.Matches(keyMsg, keys.edit):
		note, ok := m.state.Cache().At(m.list.idx)
		if !ok {
			return m, nil
		}
		if err := m.state.StartEdit(note.ID); err != nil {
			m.showErrorf(err.Error())
			return m, nil
		}
		draft, _ := m.state.Composing()
		m.compose = newComposeModel(draft)
		m.currentScreen = screenCompose
	case key.Matches(keyMsg, keys.delete):
		note, ok := m.state.Cache().At(m.list.idx)
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = note.Title
		m.pendingDelete = note.ID
	case key.Matches(keyMsg, keys.copy):
		note, ok := m.state.Cache().At(m.list.idx)
		if !ok || note.Content == "" {
			return m, nil
		}
		return m, cmdCopyToClipboard(note.Content)
	case key.Matches(keyMsg, keys.refresh):
		if m.list.loading {
			return m, nil
		}
		m.list.loading = true
		return m, m.cmdLoadNotes()
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.state.CloseView()
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.view = focusNextView(m.view)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.view = focusPrevView(m.view)
			return m, nil
		case key.Matches(keyMsg, keys.deleteAlt):
			m.showConfirm = true
			m.confirm.message = m.view.title()
			m.pendingDelete = m.view.noteID
			return m, nil
		case key.Matches(keyMsg, keys.copyAlt):
			if m.view.content() == "" {
				return m, nil
			}
			return m, cmdCopyToClipboard(m.view.content())
		case key.Matches(keyMsg, keys.enter):
			if m.view.submitting {
				return m, nil
			}
			if strings.TrimSpace(m.view.title()) == "" || strings.TrimSpace(m.view.content()) == "" {
				m.showErrorf("Title and content are required")
				return m, nil
			}
			m.state.SetViewDraft(m.view.title(), m.view.content())
			action, err := m.state.SubmitView()
			if err != nil {
				m.showErrorf(err.Error())
				return m, nil
			}
			m.view.submitting = true
			return m, m.cmdSaveNote(action, true)
		}
	}

	var cmd tea.Cmd
	m.view.inputs[m.view.focus], cmd = m.view.inputs[m.view.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateCompose(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.state.CancelCompose()
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.compose = focusNextCompose(m.compose)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.compose = focusPrevCompose(m.compose)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.compose.submitting {
				return m, nil
			}
			if strings.TrimSpace(m.compose.title()) == "" || strings.TrimSpace(m.compose.content()) == "" {
				m.showErrorf("Title and content are required")
				return m, nil
			}
			m.state.SetDraft(m.compose.title(), m.compose.content())
			action, err := m.state.SubmitCompose()
			if err != nil {
				m.showErrorf(err.Error())
				return m, nil
			}
			m.compose.submitting = true
			return m, m.cmdSaveNote(action, false)
		}
	}

	var cmd tea.Cmd
	m.compose.inputs[m.compose.focus], cmd = m.compose.inputs[m.compose.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	notes := m.notes
	tokens := m.tokens
	return func() tea.Msg {
		token, err := auth.Login(ctx, creds)
		if err != nil {
			return authDoneMsg{err: err}
		}
		if err = tokens.Set(ctx, token.AccessToken); err != nil {
			return authDoneMsg{err: err}
		}
		notes.ResetSession()

		username := creds.Username
		if sub, subErr := adapter.UsernameFromToken(token.AccessToken); subErr == nil {
			username = sub
		}
		return authDoneMsg{username: username}
	}
}

func (m appModel) cmdRegisterAndLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	notes := m.notes
	tokens := m.tokens
	return func() tea.Msg {
		if _, err := auth.Register(ctx, creds); err != nil {
			return authDoneMsg{err: err}
		}
		token, err := auth.Login(ctx, creds)
		if err != nil {
			return authDoneMsg{err: err}
		}
		if err = tokens.Set(ctx, token.AccessToken); err != nil {
			return authDoneMsg{err: err}
		}
		notes.ResetSession()

		username := creds.Username
		if sub, subErr := adapter.UsernameFromToken(token.AccessToken); subErr == nil {
			username = sub
		}
		return authDoneMsg{username: username}
	}
}

func (m appModel) cmdLoadNotes() tea.Cmd {
	ctx := m.ctx
	notes := m.notes
	return func() tea.Msg {
		items, err := notes.List(ctx)
		return notesLoadedMsg{notes: items, err: err}
	}
}

func (m appModel) cmdSaveNote(action editor.SubmitAction, fromView bool) tea.Cmd {
	ctx := m.ctx
	notes := m.notes
	return func() tea.Msg {
		if action.TargetID != nil {
			note, err := notes.Update(ctx, *action.TargetID, action.Title, action.Content)
			return noteSavedMsg{action: action, note: note, fromView: fromView, err: err}
		}
		note, err := notes.Create(ctx, action.Title, action.Content)
		return noteSavedMsg{action: action, note: note, fromView: fromView, err: err}
	}
}

func (m appModel) cmdDeleteNote(id int64) tea.Cmd {
	ctx := m.ctx
	notes := m.notes
	return func() tea.Msg {
		err := notes.Delete(ctx, id)
		return noteDeletedMsg{id: id, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextCompose(m composeModel) composeModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevCompose(m composeModel) composeModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextView(m viewModel) viewModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevView(m viewModel) viewModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
