package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/mock"
	"github.com/MKhiriev/sky-shelf/internal/store"
	"github.com/MKhiriev/sky-shelf/models"
)

func newTestCacheSvc(t *testing.T) (CacheService, *store.MemoryCacheStore) {
	t.Helper()
	cache := store.NewMemoryCacheStore()
	return NewCacheService(cache, store.NewMemoryCacheStore(), logger.Nop()), cache
}

func TestCacheService_Load_Missing(t *testing.T) {
	svc, _ := newTestCacheSvc(t)

	data, err := svc.Load(context.Background(), models.CollectionLikes)

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCacheService_Load_Malformed(t *testing.T) {
	blobs := map[string]string{
		"no posts":     `{"authors":[]}`,
		"null posts":   `{"posts":null,"authors":[]}`,
		"not json":     `{"posts":`,
		"posts string": `{"posts":"x"}`,
	}
	for name, blob := range blobs {
		t.Run(name, func(t *testing.T) {
			svc, cache := newTestCacheSvc(t)
			require.NoError(t, cache.Set(context.Background(), "pins-cache", []byte(blob)))

			data, err := svc.Load(context.Background(), models.CollectionPins)

			assert.ErrorIs(t, err, ErrMalformedCache)
			assert.Nil(t, data)
		})
	}
}

func TestCacheService_SaveLoad(t *testing.T) {
	svc, cache := newTestCacheSvc(t)
	ctx := context.Background()

	post := makePost("did:plc:a", "a.test", 1)
	post.Embed = &models.EmbedView{
		Type:   models.EmbedImagesView,
		Images: []models.ImageView{{Alt: "a cat"}, {Alt: ""}},
	}
	post.LikeCount = 3

	via := likeRecord(postURI("did:plc:a", 2))
	via.CreatedAt = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	via.Via = &models.StrongRef{URI: "at://did:plc:v/app.bsky.feed.repost/3k", CID: "cid-via"}
	via.ViaProfile = &models.ProfileView{
		ProfileViewBasic: models.ProfileViewBasic{DID: "did:plc:v", Handle: "v.test", DisplayName: "Via"},
		FollowersCount:   12,
	}

	in := &models.FetchData{
		Posts:   []models.PostView{post},
		Authors: []models.ProfileViewBasic{{DID: "did:plc:a", Handle: "a.test"}},
		Records: []models.ActionRecord{likeRecord(postURI("did:plc:a", 1)), via},
	}
	require.NoError(t, svc.Save(ctx, models.CollectionLikes, in))

	raw, err := cache.Get(ctx, "likes-cache")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"posts":[`)

	out, err := svc.Load(ctx, models.CollectionLikes)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 1, out.UnavailableCount())
}

func TestCacheService_Save_EmptyCollectionIsNotMalformed(t *testing.T) {
	svc, cache := newTestCacheSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, models.CollectionBookmarks, &models.FetchData{}))

	raw, err := cache.Get(ctx, "bookmarks-cache")
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[],"authors":[]}`, string(raw))

	out, err := svc.Load(ctx, models.CollectionBookmarks)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, out.Posts)
}

func TestCacheService_Clear(t *testing.T) {
	svc, _ := newTestCacheSvc(t)
	ctx := context.Background()

	for _, c := range models.Collections {
		require.NoError(t, svc.Save(ctx, c, &models.FetchData{}))
	}

	require.NoError(t, svc.Clear(ctx, models.CollectionLikes))
	require.NoError(t, svc.Clear(ctx, models.CollectionLikes))

	data, err := svc.Load(ctx, models.CollectionLikes)
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = svc.Load(ctx, models.CollectionPins)
	require.NoError(t, err)
	assert.NotNil(t, data)

	require.NoError(t, svc.ClearAll(ctx))
	require.NoError(t, svc.ClearAll(ctx))
	for _, c := range models.Collections {
		data, err = svc.Load(ctx, c)
		require.NoError(t, err)
		assert.Nil(t, data, c)
	}
}

func TestCacheService_LastTab(t *testing.T) {
	svc, cache := newTestCacheSvc(t)
	ctx := context.Background()

	tab, err := svc.LastTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CollectionLikes, tab)

	require.NoError(t, svc.SetLastTab(ctx, models.CollectionBookmarks))
	tab, err = svc.LastTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CollectionBookmarks, tab)

	assert.ErrorIs(t, svc.SetLastTab(ctx, "reposts"), ErrUnknownCollection)

	require.NoError(t, cache.Set(ctx, store.LastTabKey, []byte("garbage")))
	tab, err = svc.LastTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CollectionLikes, tab)
}

func TestCacheService_CurrentIndex_KeptInSessionStore(t *testing.T) {
	cache := store.NewMemoryCacheStore()
	session := store.NewMemoryCacheStore()
	svc := NewCacheService(cache, session, logger.Nop())
	ctx := context.Background()

	index, err := svc.CurrentIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	require.NoError(t, svc.SetCurrentIndex(ctx, 4))
	index, err = svc.CurrentIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, index)

	_, err = cache.Get(ctx, store.CurrentIndexKey)
	assert.ErrorIs(t, err, store.ErrCacheEntryNotFound)

	// a new process starts with a fresh session store
	fresh := NewCacheService(cache, store.NewMemoryCacheStore(), logger.Nop())
	index, err = fresh.CurrentIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestCacheService_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCacheStore(ctrl)
	svc := NewCacheService(cache, store.NewMemoryCacheStore(), logger.Nop())
	ctx := context.Background()

	cache.EXPECT().Get(ctx, "likes-cache").Return(nil, store.ErrStorageUnavailable)
	cache.EXPECT().Set(ctx, "likes-cache", gomock.Any()).Return(store.ErrStorageUnavailable)
	cache.EXPECT().Delete(ctx, gomock.Any()).Return(store.ErrStorageUnavailable).Times(3)

	_, err := svc.Load(ctx, models.CollectionLikes)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, ErrMalformedCache)

	assert.ErrorIs(t, svc.Save(ctx, models.CollectionLikes, nil), store.ErrStorageUnavailable)
	assert.ErrorIs(t, svc.ClearAll(ctx), store.ErrStorageUnavailable)
}
