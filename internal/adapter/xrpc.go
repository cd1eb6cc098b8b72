package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type xrpcAdapter struct {
	client  *utils.HTTPClient
	limiter *rateLimiter

	mu       sync.RWMutex
	session  models.Session
	onChange func(models.Session)

	// refreshMu serialises refreshes so concurrent calls that all hit an
	// expired token trigger a single refreshSession.
	refreshMu sync.Mutex

	logger *logger.Logger
}

// NewXRPCAdapter constructs the resty implementation of [RemoteAdapter].
// It normalises and validates the base URL from adapterCfg.Address,
// configures the client with the request timeout and installs the rate
// limiter as request/response middleware.
//
// Returns an error if adapterCfg.Address is empty or cannot be parsed as a
// valid URL.
func NewXRPCAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter address: %w", err)
	}

	limit := rate.Limit(adapterCfg.RateLimit)
	if adapterCfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := max(adapterCfg.RateBurst, 1)
	limiter := newRateLimiter(float64(limit), burst)

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	client.
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			return limiter.Wait(r.Context())
		}).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			limiter.UpdateFromResponse(resp.StatusCode(), resp.Header())
			return nil
		})

	return &xrpcAdapter{client: client, limiter: limiter, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func xrpcPath(nsid string) string {
	return "/xrpc/" + nsid
}

// SetSession implements [RemoteAdapter].
func (x *xrpcAdapter) SetSession(session models.Session) {
	x.mu.Lock()
	x.session = session
	x.mu.Unlock()
}

// Session implements [RemoteAdapter].
func (x *xrpcAdapter) Session() models.Session {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.session
}

// OnSessionChange implements [RemoteAdapter].
func (x *xrpcAdapter) OnSessionChange(fn func(models.Session)) {
	x.mu.Lock()
	x.onChange = fn
	x.mu.Unlock()
}

func (x *xrpcAdapter) replaceSession(session models.Session) {
	x.mu.Lock()
	x.session = session
	fn := x.onChange
	x.mu.Unlock()

	if fn != nil {
		fn(session)
	}
}

// authed sends an authenticated request built by send. On an expired access
// token it refreshes the session once and retries.
func (x *xrpcAdapter) authed(ctx context.Context, nsid string, send func(r *resty.Request) (*resty.Response, error)) ([]byte, error) {
	session := x.Session()
	if session.AccessJwt == "" {
		return nil, fmt.Errorf("%s: %w", nsid, ErrNoSession)
	}

	body, err := x.send(ctx, session.AccessJwt, send)
	if errors.Is(err, ErrExpiredToken) && session.RefreshJwt != "" {
		if rerr := x.refreshIfStale(ctx, session.AccessJwt); rerr != nil {
			return nil, fmt.Errorf("%s: %w", nsid, rerr)
		}
		body, err = x.send(ctx, x.Session().AccessJwt, send)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nsid, err)
	}

	return body, nil
}

func (x *xrpcAdapter) send(ctx context.Context, token string, send func(r *resty.Request) (*resty.Response, error)) ([]byte, error) {
	req := x.client.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	resp, err := send(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if err = mapXRPCError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func (x *xrpcAdapter) refreshIfStale(ctx context.Context, staleAccess string) error {
	x.refreshMu.Lock()
	defer x.refreshMu.Unlock()

	if x.Session().AccessJwt != staleAccess {
		return nil
	}

	_, err := x.RefreshSession(ctx)
	return err
}
