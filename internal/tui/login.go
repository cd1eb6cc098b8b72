// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/validators"
	"github.com/MKhiriev/sky-shelf/models"
)

// LoginModel is the Bubble Tea model for the login screen. It renders the
// handle and app password inputs and creates a session on submit. The
// program quits once a session exists or the user leaves with esc.
type LoginModel struct {
	ctx       context.Context
	sessions  service.SessionService
	validator validators.Validator

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string

	session    models.Session
	quitByUser bool
}

// NewLoginModel creates a [LoginModel] with the handle input focused and the
// password input masked.
func NewLoginModel(ctx context.Context, sessions service.SessionService) *LoginModel {
	identifierInput := textinput.New()
	identifierInput.Placeholder = "handle.bsky.social"
	identifierInput.CharLimit = 253
	identifierInput.Width = 40
	identifierInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "app password"
	passwordInput.CharLimit = 64
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:       ctx,
		sessions:  sessions,
		validator: validators.NewQueryValidator(),
		inputs:    []textinput.Model{identifierInput, passwordInput},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}
		m.session = result.session
		return m, tea.Quit
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case keyMsg.Type == tea.KeyCtrlC, key.Matches(keyMsg, keys.esc):
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			creds := models.Credentials{
				Identifier: strings.TrimSpace(m.inputs[0].Value()),
				Password:   m.inputs[1].Value(),
			}
			if err := m.validator.Validate(m.ctx, creds); err != nil {
				m.errMsg = "Handle and app password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(creds)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Handle    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("LOG IN TO BLUESKY", strings.TrimRight(b.String(), "\n"), "esc: quit │ tab: next field │ enter: log in")
}

func (m *LoginModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	sessions := m.sessions

	return func() tea.Msg {
		session, err := sessions.Login(ctx, creds)
		return loginResultMsg{session: session, err: err}
	}
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
