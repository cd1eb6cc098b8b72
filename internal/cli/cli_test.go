package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/sky-shelf/internal/app"
	"github.com/MKhiriev/sky-shelf/internal/mock"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/tui"
	"github.com/MKhiriev/sky-shelf/models"
)

type testDeps struct {
	sessions     *mock.MockSessionService
	orchestrator *mock.MockOrchestrator
	stats        *mock.MockStatsService
	deps         Deps
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &testDeps{
		sessions:     mock.NewMockSessionService(ctrl),
		orchestrator: mock.NewMockOrchestrator(ctrl),
		stats:        mock.NewMockStatsService(ctrl),
	}
	d.deps = Deps{
		Services: &service.Services{
			SessionService: d.sessions,
			Orchestrator:   d.orchestrator,
			StatsService:   d.stats,
		},
		BuildInfo: models.NewAppBuildInfo("1.0.0", "2026-10-01", "abc123"),
	}
	return d
}

func execute(t *testing.T, deps Deps, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root := NewRootCommand(deps)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func likesState(posts int) models.QueryState {
	data := &models.FetchData{}
	for i := 0; i < posts; i++ {
		data.Posts = append(data.Posts, models.PostView{URI: "at://did:plc:a/app.bsky.feed.post/x"})
	}
	data.Authors = []models.ProfileViewBasic{{DID: "did:plc:a", Handle: "a.test"}}
	return models.QueryState{Collection: models.CollectionLikes, Status: models.QuerySuccess, Data: data}
}

type fakeClient struct {
	err   error
	calls int
}

func (f *fakeClient) Run(context.Context) error {
	f.calls++
	return f.err
}

func TestVersionCommand(t *testing.T) {
	d := newTestDeps(t)
	out, err := execute(t, d.deps, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "skyshelf version 1.0.0")
	assert.Contains(t, out, "build commit: abc123")

	d.deps.BuildInfo = models.AppBuildInfo{}
	out, err = execute(t, d.deps, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "skyshelf version N/A")
}

func TestLoginCommand(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Login(gomock.Any(), models.Credentials{Identifier: "me.test", Password: "pw"}).
			Return(models.Session{DID: "did:plc:me", Handle: "me.test"}, nil)

		out, err := execute(t, d.deps, "login", "-i", "me.test", "-p", "pw")
		require.NoError(t, err)
		assert.Contains(t, out, app.MsgLoggedIn+" @me.test (did:plc:me)")
	})

	t.Run("configured credentials", func(t *testing.T) {
		d := newTestDeps(t)
		d.deps.Credentials = models.Credentials{Identifier: "me.test", Password: "configured"}
		d.sessions.EXPECT().Login(gomock.Any(), models.Credentials{Identifier: "other.test", Password: "configured"}).
			Return(models.Session{DID: "did:plc:other", Handle: "other.test"}, nil)

		_, err := execute(t, d.deps, "login", "--identifier", "other.test")
		require.NoError(t, err)
	})

	t.Run("missing password", func(t *testing.T) {
		d := newTestDeps(t)
		_, err := execute(t, d.deps, "login", "-i", "me.test")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("rejected", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Session{}, assert.AnError)

		_, err := execute(t, d.deps, "login", "-i", "me.test", "-p", "bad")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFetchCommand(t *testing.T) {
	t.Run("cached single collection", func(t *testing.T) {
		d := newTestDeps(t)
		d.orchestrator.EXPECT().Fetch(gomock.Any(), models.CollectionLikes, models.FetchOptions{}).Return(likesState(3), nil)

		out, err := execute(t, d.deps, "fetch", "likes")
		require.NoError(t, err)
		assert.Contains(t, out, "likes: 3 posts, 1 authors")
	})

	t.Run("every collection, some not indexed", func(t *testing.T) {
		d := newTestDeps(t)
		d.orchestrator.EXPECT().Fetch(gomock.Any(), models.CollectionLikes, gomock.Any()).Return(likesState(1), nil)
		d.orchestrator.EXPECT().Fetch(gomock.Any(), models.CollectionPins, gomock.Any()).
			Return(models.QueryState{Collection: models.CollectionPins, Status: models.QuerySuccess}, nil)
		d.orchestrator.EXPECT().Fetch(gomock.Any(), models.CollectionBookmarks, gomock.Any()).
			Return(models.QueryState{Collection: models.CollectionBookmarks, Status: models.QuerySuccess}, nil)

		out, err := execute(t, d.deps, "fetch")
		require.NoError(t, err)
		assert.Contains(t, out, "pins: "+app.MsgNotIndexedCLI)
		assert.Contains(t, out, "bookmarks: "+app.MsgNotIndexedCLI)
	})

	t.Run("force needs a session", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated)

		_, err := execute(t, d.deps, "fetch", "likes", "--force")
		assert.ErrorIs(t, err, ErrLoginRequired)
	})

	t.Run("force with configured credentials", func(t *testing.T) {
		d := newTestDeps(t)
		d.deps.Credentials = models.Credentials{Identifier: "me.test", Password: "pw"}
		state := likesState(2)
		state.UpdatedAt = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

		gomock.InOrder(
			d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated),
			d.sessions.EXPECT().Login(gomock.Any(), d.deps.Credentials).Return(models.Session{DID: "did:plc:me"}, nil),
			d.orchestrator.EXPECT().Refetch(gomock.Any(), models.CollectionLikes).Return(state, nil),
		)

		out, err := execute(t, d.deps, "fetch", "likes", "-f")
		require.NoError(t, err)
		assert.Contains(t, out, "likes: 2 posts")
		assert.Contains(t, out, "updated 2026-")
	})

	t.Run("fetch error", func(t *testing.T) {
		d := newTestDeps(t)
		d.orchestrator.EXPECT().Fetch(gomock.Any(), models.CollectionPins, gomock.Any()).
			Return(models.QueryState{}, service.ErrMalformedCache)

		_, err := execute(t, d.deps, "fetch", "pins")
		assert.ErrorIs(t, err, service.ErrMalformedCache)
	})

	t.Run("unknown collection", func(t *testing.T) {
		d := newTestDeps(t)
		_, err := execute(t, d.deps, "fetch", "reposts")
		assert.ErrorIs(t, err, ErrUnknownCollection)
	})
}

func TestClearCacheCommand(t *testing.T) {
	d := newTestDeps(t)
	d.orchestrator.EXPECT().Clear(gomock.Any(), models.CollectionBookmarks).Return(nil)
	out, err := execute(t, d.deps, "clear-cache", "bookmarks")
	require.NoError(t, err)
	assert.Contains(t, out, "bookmarks: "+app.MsgCacheCleared)

	d.orchestrator.EXPECT().ClearAll(gomock.Any()).Return(nil)
	out, err = execute(t, d.deps, "clear-cache")
	require.NoError(t, err)
	assert.Contains(t, out, app.MsgAllCachesCleared)

	d.orchestrator.EXPECT().ClearAll(gomock.Any()).Return(assert.AnError)
	_, err = execute(t, d.deps, "clear-cache")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStatsCommand(t *testing.T) {
	t.Run("prints tables", func(t *testing.T) {
		d := newTestDeps(t)
		stats := models.LikeStats{
			Records:      4,
			AltText:      models.YesNo{Yes: 1, No: 1},
			FromFollowed: &models.YesNo{Yes: 3, No: 1},
			PerMonth:     []models.MonthCount{{Year: 2026, Month: time.September, Label: "Sep/26", Count: 4}},
			PerAuthor: []models.AuthorCount{
				{Profile: models.ProfileViewBasic{DID: "did:plc:b", Handle: "b.test"}, Count: 3},
				{Profile: models.ProfileViewBasic{DID: "did:plc:a", Handle: "a.test"}, Count: 1},
			},
		}
		stats.PerWeekday[0] = 4
		stats.PerHour[13] = 4

		d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{DID: "did:plc:me"}, nil)
		d.stats.EXPECT().LikeStats(gomock.Any()).Return(stats, nil)

		out, err := execute(t, d.deps, "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "records: 4")
		assert.Contains(t, out, "alt text on image posts: 1 of 2 (50%)")
		assert.Contains(t, out, "from followed accounts: 3 of 4 (75%)")
		assert.Contains(t, out, "Sep/26")
		assert.Contains(t, out, "@b.test")
		assert.Contains(t, out, "authors page 1/1")
	})

	t.Run("works without a session", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated)
		d.stats.EXPECT().LikeStats(gomock.Any()).Return(models.LikeStats{}, nil)

		out, err := execute(t, d.deps, "stats")
		require.NoError(t, err)
		assert.NotContains(t, out, "from followed accounts")
	})

	t.Run("no likes cached", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{DID: "did:plc:me"}, nil)
		d.stats.EXPECT().LikeStats(gomock.Any()).Return(models.LikeStats{}, service.ErrNoData)

		out, err := execute(t, d.deps, "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "likes: "+app.MsgNotIndexedCLI)
	})
}

func TestUnavailableCommand(t *testing.T) {
	t.Run("lists posts", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{DID: "did:plc:me"}, nil)
		d.stats.EXPECT().Unavailable(gomock.Any()).Return([]models.UnavailablePost{
			{
				URI:     "at://did:plc:gone/app.bsky.feed.post/1",
				Profile: &models.ProfileView{ProfileViewBasic: models.ProfileViewBasic{Handle: "still.here"}},
			},
			{
				URI:                  "at://did:plc:x/app.bsky.feed.post/2",
				ProfileMissing:       true,
				ProfileMissingReason: "Account has been suspended",
			},
		}, nil)

		out, err := execute(t, d.deps, "unavailable")
		require.NoError(t, err)
		assert.Contains(t, out, "@still.here")
		assert.Contains(t, out, "Account has been suspended")
		assert.Contains(t, out, "2 unavailable likes")
	})

	t.Run("none", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{DID: "did:plc:me"}, nil)
		d.stats.EXPECT().Unavailable(gomock.Any()).Return(nil, nil)

		out, err := execute(t, d.deps, "unavailable")
		require.NoError(t, err)
		assert.Contains(t, out, "no unavailable likes")
	})

	t.Run("needs a session", func(t *testing.T) {
		d := newTestDeps(t)
		d.sessions.EXPECT().Restore(gomock.Any()).Return(models.Session{}, service.ErrNotAuthenticated)

		_, err := execute(t, d.deps, "unavailable")
		assert.ErrorIs(t, err, ErrLoginRequired)
	})
}

func TestTUICommand(t *testing.T) {
	d := newTestDeps(t)

	_, err := execute(t, d.deps, "tui")
	assert.ErrorIs(t, err, ErrNoClient)

	c := &fakeClient{err: tui.ErrUserQuit}
	d.deps.Client = c
	_, err = execute(t, d.deps)
	require.NoError(t, err)
	_, err = execute(t, d.deps, "tui")
	require.NoError(t, err)
	assert.Equal(t, 2, c.calls)

	boom := errors.New("terminal gone")
	d.deps.Client = &fakeClient{err: boom}
	_, err = execute(t, d.deps, "tui")
	assert.ErrorIs(t, err, boom)
}
