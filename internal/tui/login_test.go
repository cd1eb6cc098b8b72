package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/mock"
	"github.com/MKhiriev/sky-shelf/models"
)

func sendAll(m *LoginModel, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typedMsgs(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestLoginModel_RequiresBothFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewLoginModel(context.Background(), mock.NewMockSessionService(ctrl))

	cmd := sendAll(m, append(typedMsgs("me.test"), tea.KeyMsg{Type: tea.KeyEnter})...)
	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.Contains(t, m.View(), "Handle and app password are required")
}

func TestLoginModel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	m := NewLoginModel(context.Background(), sessions)

	sendAll(m, typedMsgs("me.test")...)
	sendAll(m, tea.KeyMsg{Type: tea.KeyTab})
	sendAll(m, typedMsgs("app-pass")...)
	assert.NotContains(t, m.View(), "app-pass")

	cmd := sendAll(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Contains(t, m.View(), "Logging in...")

	session := models.Session{DID: "did:plc:me", Handle: "me.test"}
	sessions.EXPECT().
		Login(gomock.Any(), models.Credentials{Identifier: "me.test", Password: "app-pass"}).
		Return(session, nil)

	cmd = sendAll(m, cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, session, m.session)
	assert.False(t, m.quitByUser)
}

func TestLoginModel_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	m := NewLoginModel(context.Background(), sessions)

	sendAll(m, typedMsgs("me.test")...)
	sendAll(m, tea.KeyMsg{Type: tea.KeyDown})
	sendAll(m, typedMsgs("wrong")...)

	sessions.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.Session{}, &adapter.XRPCError{Status: 401, Name: "AuthenticationRequired"})

	cmd := sendAll(m, tea.KeyMsg{Type: tea.KeyEnter})
	cmd = sendAll(m, cmd())
	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.Contains(t, m.View(), "Session rejected")
}

func TestLoginModel_FocusWrapsAndLettersStayInInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewLoginModel(context.Background(), mock.NewMockSessionService(ctrl))

	sendAll(m, typedMsgs("jk")...)
	assert.Equal(t, 0, m.focus)
	assert.Equal(t, "jk", m.inputs[0].Value())

	sendAll(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.focus)
	sendAll(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.focus)
}

func TestLoginModel_EscQuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewLoginModel(context.Background(), mock.NewMockSessionService(ctrl))

	cmd := sendAll(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitByUser)
}
