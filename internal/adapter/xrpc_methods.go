package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
	"github.com/go-resty/resty/v2"
)

// XRPC method identifiers.
const (
	nsidCreateSession  = "com.atproto.server.createSession"
	nsidRefreshSession = "com.atproto.server.refreshSession"
	nsidListRecords    = "com.atproto.repo.listRecords"
	nsidGetActorLikes  = "app.bsky.feed.getActorLikes"
	nsidSearchPosts    = "app.bsky.feed.searchPosts"
	nsidGetPosts       = "app.bsky.feed.getPosts"
	nsidGetBookmarks   = "app.bsky.bookmark.getBookmarks"
	nsidGetFollows     = "app.bsky.graph.getFollows"
	nsidGetProfiles    = "app.bsky.actor.getProfiles"
	nsidGetProfile     = "app.bsky.actor.getProfile"
)

type sessionResponse struct {
	DID        string `json:"did"`
	Handle     string `json:"handle"`
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
}

type listRecordsResponse struct {
	Cursor  string `json:"cursor"`
	Records []struct {
		URI   string `json:"uri"`
		CID   string `json:"cid"`
		Value struct {
			Subject   models.StrongRef  `json:"subject"`
			CreatedAt string            `json:"createdAt"`
			Via       *models.StrongRef `json:"via,omitempty"`
		} `json:"value"`
	} `json:"records"`
}

type feedResponse struct {
	Cursor string `json:"cursor"`
	Feed   []struct {
		Post models.PostView `json:"post"`
	} `json:"feed"`
}

type searchPostsResponse struct {
	Cursor string            `json:"cursor"`
	Posts  []models.PostView `json:"posts"`
}

type bookmarksResponse struct {
	Cursor    string            `json:"cursor"`
	Bookmarks []models.Bookmark `json:"bookmarks"`
}

type followsResponse struct {
	Cursor  string               `json:"cursor"`
	Follows []models.ProfileView `json:"follows"`
}

type postsResponse struct {
	Posts []models.PostView `json:"posts"`
}

type profilesResponse struct {
	Profiles []models.ProfileView `json:"profiles"`
}

// CreateSession implements [RemoteAdapter]. It POSTs the credentials to
// createSession and stores the returned session. The DID falls back to the
// access token subject when the response omits it.
func (x *xrpcAdapter) CreateSession(ctx context.Context, creds models.Credentials) (models.Session, error) {
	body, err := x.send(ctx, "", func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetHeader("Content-Type", "application/json").
			SetBody(creds).
			Post(xrpcPath(nsidCreateSession))
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", nsidCreateSession, err)
	}

	session, err := decodeSession(body)
	if err != nil {
		return models.Session{}, err
	}

	x.replaceSession(session)
	return session, nil
}

// RefreshSession implements [RemoteAdapter]. The refresh token is sent as
// the bearer token.
func (x *xrpcAdapter) RefreshSession(ctx context.Context) (models.Session, error) {
	current := x.Session()
	if current.RefreshJwt == "" {
		return models.Session{}, fmt.Errorf("%s: %w", nsidRefreshSession, ErrNoSession)
	}

	body, err := x.send(ctx, current.RefreshJwt, func(r *resty.Request) (*resty.Response, error) {
		return r.Post(xrpcPath(nsidRefreshSession))
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", nsidRefreshSession, err)
	}

	session, err := decodeSession(body)
	if err != nil {
		return models.Session{}, err
	}
	if session.Handle == "" {
		session.Handle = current.Handle
	}

	x.logger.Debug().Str("did", session.DID).Msg("session refreshed")
	x.replaceSession(session)
	return session, nil
}

func decodeSession(body []byte) (models.Session, error) {
	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Session{}, fmt.Errorf("decode session response: %w", err)
	}

	session := models.Session{
		DID:        resp.DID,
		Handle:     resp.Handle,
		AccessJwt:  resp.AccessJwt,
		RefreshJwt: resp.RefreshJwt,
	}
	if session.DID == "" {
		did, err := utils.ParseSubjectFromJWT(resp.AccessJwt)
		if err != nil {
			return models.Session{}, fmt.Errorf("session without did: %w", err)
		}
		session.DID = did
	}

	return session, nil
}

// ListRecords implements [RemoteAdapter].
func (x *xrpcAdapter) ListRecords(ctx context.Context, repo, collection, cursor string, limit int) (models.CursorPage[models.ActionRecord], error) {
	q := pageQuery(cursor, limit)
	q.Set("repo", repo)
	q.Set("collection", collection)

	var resp listRecordsResponse
	if err := x.get(ctx, nsidListRecords, q, &resp); err != nil {
		return models.CursorPage[models.ActionRecord]{}, err
	}

	records := make([]models.ActionRecord, 0, len(resp.Records))
	for _, r := range resp.Records {
		records = append(records, models.ActionRecord{
			URI:       r.URI,
			CID:       r.CID,
			Subject:   r.Value.Subject,
			CreatedAt: parseTimestamp(r.Value.CreatedAt),
			Via:       r.Value.Via,
		})
	}

	return models.CursorPage[models.ActionRecord]{Items: records, Cursor: resp.Cursor}, nil
}

// GetActorLikes implements [RemoteAdapter].
func (x *xrpcAdapter) GetActorLikes(ctx context.Context, actor, cursor string, limit int) (models.CursorPage[models.PostView], error) {
	q := pageQuery(cursor, limit)
	q.Set("actor", actor)

	var resp feedResponse
	if err := x.get(ctx, nsidGetActorLikes, q, &resp); err != nil {
		return models.CursorPage[models.PostView]{}, err
	}

	posts := make([]models.PostView, 0, len(resp.Feed))
	for _, item := range resp.Feed {
		posts = append(posts, item.Post)
	}

	return models.CursorPage[models.PostView]{Items: posts, Cursor: resp.Cursor}, nil
}

// SearchPosts implements [RemoteAdapter].
func (x *xrpcAdapter) SearchPosts(ctx context.Context, query models.SearchQuery, cursor string, limit int) (models.CursorPage[models.PostView], error) {
	q := pageQuery(cursor, limit)
	q.Set("q", query.Q)
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	if query.Author != "" {
		q.Set("author", query.Author)
	}

	var resp searchPostsResponse
	if err := x.get(ctx, nsidSearchPosts, q, &resp); err != nil {
		return models.CursorPage[models.PostView]{}, err
	}

	return models.CursorPage[models.PostView]{Items: resp.Posts, Cursor: resp.Cursor}, nil
}

// GetBookmarks implements [RemoteAdapter].
func (x *xrpcAdapter) GetBookmarks(ctx context.Context, cursor string, limit int) (models.CursorPage[models.Bookmark], error) {
	var resp bookmarksResponse
	if err := x.get(ctx, nsidGetBookmarks, pageQuery(cursor, limit), &resp); err != nil {
		return models.CursorPage[models.Bookmark]{}, err
	}

	return models.CursorPage[models.Bookmark]{Items: resp.Bookmarks, Cursor: resp.Cursor}, nil
}

// GetFollows implements [RemoteAdapter].
func (x *xrpcAdapter) GetFollows(ctx context.Context, actor, cursor string, limit int) (models.CursorPage[models.ProfileView], error) {
	q := pageQuery(cursor, limit)
	q.Set("actor", actor)

	var resp followsResponse
	if err := x.get(ctx, nsidGetFollows, q, &resp); err != nil {
		return models.CursorPage[models.ProfileView]{}, err
	}

	return models.CursorPage[models.ProfileView]{Items: resp.Follows, Cursor: resp.Cursor}, nil
}

// GetPosts implements [RemoteAdapter].
func (x *xrpcAdapter) GetPosts(ctx context.Context, uris []string) ([]models.PostView, error) {
	var resp postsResponse
	if err := x.get(ctx, nsidGetPosts, url.Values{"uris": uris}, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// GetProfiles implements [RemoteAdapter].
func (x *xrpcAdapter) GetProfiles(ctx context.Context, actors []string) ([]models.ProfileView, error) {
	var resp profilesResponse
	if err := x.get(ctx, nsidGetProfiles, url.Values{"actors": actors}, &resp); err != nil {
		return nil, err
	}
	return resp.Profiles, nil
}

// GetProfile implements [RemoteAdapter].
func (x *xrpcAdapter) GetProfile(ctx context.Context, actor string) (models.ProfileView, error) {
	var profile models.ProfileView
	if err := x.get(ctx, nsidGetProfile, url.Values{"actor": {actor}}, &profile); err != nil {
		return models.ProfileView{}, err
	}
	return profile, nil
}

func (x *xrpcAdapter) get(ctx context.Context, nsid string, q url.Values, out any) error {
	body, err := x.authed(ctx, nsid, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParamsFromValues(q).Get(xrpcPath(nsid))
	})
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", nsid, err)
	}
	return nil
}

func pageQuery(cursor string, limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return q
}

// parseTimestamp reads an RFC 3339 record timestamp. Unparseable values
// yield the zero time.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
