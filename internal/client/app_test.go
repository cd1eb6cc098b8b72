package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/mock"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/models"
)

type fakeUI struct {
	logins    int
	loginErr  error
	mainLoops []bool
	loops     int
}

func (f *fakeUI) LoginFlow(context.Context) (models.Session, error) {
	f.logins++
	return models.Session{DID: "did:plc:ui"}, f.loginErr
}

func (f *fakeUI) MainLoop(context.Context) (bool, error) {
	logout := false
	if f.loops < len(f.mainLoops) {
		logout = f.mainLoops[f.loops]
	}
	f.loops++
	return logout, nil
}

type fakeBackground struct {
	runs, stops int
}

func (f *fakeBackground) Run(context.Context) { f.runs++ }
func (f *fakeBackground) Stop() { f.stops++ }

func newTestApp(t *testing.T, ui UI, bg Background, cfg config.ClientApp) (*App, *mock.MockSessionService) {
	t.Helper()
	sessions := mock.NewMockSessionService(gomock.NewController(t))
	app, err := NewApp(&service.Services{SessionService: sessions}, ui, bg, cfg, logger.Nop())
	require.NoError(t, err)
	return app, sessions
}

func TestNewApp_RequiresUI(t *testing.T) {
	_, err := NewApp(&service.Services{}, nil, nil, config.ClientApp{}, logger.Nop())
	assert.ErrorIs(t, err, errNoUI)
}

func TestApp_RestoredSessionSkipsLogin(t *testing.T) {
	ui, bg := &fakeUI{}, &fakeBackground{}
	app, sessions := newTestApp(t, ui, bg, config.ClientApp{})

	sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{DID: "did:plc:me"}, nil)

	require.NoError(t, app.Run(context.Background()))
	assert.Zero(t, ui.logins)
	assert.Equal(t, 1, ui.loops)
	assert.Equal(t, 1, bg.runs)
	assert.Equal(t, 1, bg.stops)
}

func TestApp_ConfiguredCredentials(t *testing.T) {
	ui := &fakeUI{}
	app, sessions := newTestApp(t, ui, nil, config.ClientApp{Identifier: " me.test ", AppPassword: "pw"})

	gomock.InOrder(
		sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated),
		sessions.EXPECT().Login(gomock.Any(), models.Credentials{Identifier: "me.test", Password: "pw"}).
			Return(models.Session{DID: "did:plc:me"}, nil),
	)

	require.NoError(t, app.Run(context.Background()))
	assert.Zero(t, ui.logins)
}

func TestApp_FallsBackToLoginScreen(t *testing.T) {
	ui := &fakeUI{}
	app, sessions := newTestApp(t, ui, nil, config.ClientApp{Identifier: "me.test", AppPassword: "bad"})

	sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated)
	sessions.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Session{}, errors.New("invalid password"))

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, 1, ui.logins)
}

func TestApp_LoginScreenQuit(t *testing.T) {
	quit := errors.New("quit")
	ui := &fakeUI{loginErr: quit}
	app, sessions := newTestApp(t, ui, nil, config.ClientApp{})

	sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated)

	assert.ErrorIs(t, app.Run(context.Background()), quit)
	assert.Zero(t, ui.loops)
}

func TestApp_LogoutStartsOver(t *testing.T) {
	ui, bg := &fakeUI{mainLoops: []bool{true, false}}, &fakeBackground{}
	app, sessions := newTestApp(t, ui, bg, config.ClientApp{})

	gomock.InOrder(
		sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{DID: "did:plc:me"}, nil),
		sessions.EXPECT().Logout(gomock.Any()).Return(nil),
		sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated),
	)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, 1, ui.logins)
	assert.Equal(t, 2, ui.loops)
	assert.Equal(t, 2, bg.runs)
	assert.Equal(t, 2, bg.stops)
}
