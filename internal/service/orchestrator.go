// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/pipeline"
	"github.com/MKhiriev/sky-shelf/internal/search"
	"github.com/MKhiriev/sky-shelf/internal/utils"
	"github.com/MKhiriev/sky-shelf/models"
)

// subscriberBuffer is the number of undelivered states a subscriber may lag
// behind before updates to it are dropped.
const subscriberBuffer = 16

// collectionQuery is the mutable state of one collection. All fields except
// saveMu are guarded by orchestrator.mu.
type collectionQuery struct {
	state  models.QueryState
	index  *search.Index
	gen    uint64
	cancel context.CancelFunc
	// done is closed when the fetch owning cancel returns.
	done chan struct{}

	// saveMu orders cache writes of competing fetches.
	saveMu sync.Mutex
}

type orchestrator struct {
	mu      sync.Mutex
	queries map[models.Collection]*collectionQuery
	subs    map[string]chan models.QueryState
	closed  bool

	sources map[models.Collection]CollectionSource
	cache   CacheService
	newID   func() string
	now     func() time.Time
	logger  *logger.Logger
}

// NewOrchestrator returns an Orchestrator serving the collections in
// sources. Every collection starts idle with an empty index.
func NewOrchestrator(sources map[models.Collection]CollectionSource, cache CacheService, logger *logger.Logger) Orchestrator {
	o := &orchestrator{
		queries: make(map[models.Collection]*collectionQuery, len(sources)),
		subs:    make(map[string]chan models.QueryState),
		sources: sources,
		cache:   cache,
		newID:   utils.NewID,
		now:     time.Now,
		logger:  logger,
	}
	for c := range sources {
		o.queries[c] = &collectionQuery{
			state: models.QueryState{Collection: c, Status: models.QueryIdle},
			index: search.NewIndex(),
		}
	}
	return o
}

func (o *orchestrator) Fetch(ctx context.Context, c models.Collection, opts models.FetchOptions) (models.QueryState, error) {
	q, ok := o.queries[c]
	if !ok {
		return models.QueryState{Collection: c}, ErrUnknownCollection
	}
	log := o.logger.ForCollection(string(c))

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return models.QueryState{Collection: c}, ErrOrchestratorClosed
	}
	if !opts.ForceRefresh && q.cancel != nil {
		o.mu.Unlock()
		return o.await(ctx, c, q)
	}
	if q.cancel != nil {
		q.cancel()
		log.Debug().Msg("in-flight fetch superseded")
	}
	q.gen++
	gen := q.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	done := make(chan struct{})
	q.done = done
	q.state.Fetching = true
	o.publishLocked(q.state)
	o.mu.Unlock()
	defer close(done)
	defer cancel()

	data, err := o.load(fetchCtx, c, opts.ForceRefresh)
	if err != nil {
		return o.settleFailure(fetchCtx, q, gen, err)
	}

	if opts.ForceRefresh {
		if err = o.save(fetchCtx, q, gen, c, data); err != nil {
			if errors.Is(err, ErrFetchSuperseded) {
				return o.State(c), err
			}
			log.Warn().Err(err).Str("func", "orchestrator.Fetch").Msg("fetched data could not be cached")
		}
	}

	index := search.NewIndex()
	if data != nil {
		if err = index.RebuildPosts(data.Posts); err != nil {
			log.Warn().Err(err).Str("func", "orchestrator.Fetch").Int("indexed", index.Len()).Msg("search index is incomplete")
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if q.gen != gen {
		return q.state, ErrFetchSuperseded
	}
	q.cancel = nil
	q.index = index
	q.state = models.QueryState{
		Collection: c,
		Status:     models.QuerySuccess,
		Data:       data,
		UpdatedAt:  o.now(),
	}
	o.publishLocked(q.state)

	log.Info().Bool("force", opts.ForceRefresh).Int("posts", postsLen(data)).Msg("collection settled")
	return q.state, nil
}

func (o *orchestrator) Refetch(ctx context.Context, c models.Collection) (models.QueryState, error) {
	return o.Fetch(ctx, c, models.FetchOptions{ForceRefresh: true})
}

// await waits for the fetches in flight for c to settle and returns the
// settled state. It never cancels them.
func (o *orchestrator) await(ctx context.Context, c models.Collection, q *collectionQuery) (models.QueryState, error) {
	for {
		o.mu.Lock()
		if q.cancel == nil {
			state := q.state
			o.mu.Unlock()
			if state.IsError() {
				return state, state.Err
			}
			return state, nil
		}
		done := q.done
		o.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return o.State(c), ctx.Err()
		}
	}
}

// load reads the cache, or the network when force is set.
func (o *orchestrator) load(ctx context.Context, c models.Collection, force bool) (*models.FetchData, error) {
	if !force {
		return o.cache.Load(ctx, c)
	}

	source, ok := o.sources[c]
	if !ok {
		return nil, ErrUnknownCollection
	}
	return source.Fetch(ctx)
}

// save writes data to the cache unless a newer fetch started meanwhile.
// The write itself is not cancelled with the fetch so a blob is never left
// half written.
func (o *orchestrator) save(ctx context.Context, q *collectionQuery, gen uint64, c models.Collection, data *models.FetchData) error {
	q.saveMu.Lock()
	defer q.saveMu.Unlock()

	o.mu.Lock()
	current := q.gen == gen
	o.mu.Unlock()
	if !current {
		return ErrFetchSuperseded
	}

	return o.cache.Save(context.WithoutCancel(ctx), c, data)
}

// settleFailure turns a failed load into an error state. A superseded fetch
// changes nothing, and a fetch cancelled by its caller only stops fetching.
func (o *orchestrator) settleFailure(ctx context.Context, q *collectionQuery, gen uint64, err error) (models.QueryState, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if q.gen != gen {
		return q.state, ErrFetchSuperseded
	}
	q.cancel = nil
	q.state.Fetching = false

	if ctx.Err() != nil {
		o.publishLocked(q.state)
		return q.state, ctx.Err()
	}

	o.logger.ForCollection(string(q.state.Collection)).Err(err).Str("func", "orchestrator.Fetch").Msg("fetch failed")
	q.state.Status = models.QueryError
	q.state.Err = err
	q.state.UpdatedAt = o.now()
	o.publishLocked(q.state)
	return q.state, err
}

func (o *orchestrator) State(c models.Collection) models.QueryState {
	q, ok := o.queries[c]
	if !ok {
		return models.QueryState{Collection: c, Status: models.QueryIdle}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return q.state
}

func (o *orchestrator) Searcher(c models.Collection) pipeline.Searcher {
	q, ok := o.queries[c]
	if !ok {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return q.index
}

func (o *orchestrator) Clear(ctx context.Context, c models.Collection) error {
	q, ok := o.queries[c]
	if !ok {
		return ErrUnknownCollection
	}

	o.mu.Lock()
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.gen++
	o.mu.Unlock()

	q.saveMu.Lock()
	err := o.cache.Clear(ctx, c)
	q.saveMu.Unlock()
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	q.index = search.NewIndex()
	q.state = models.QueryState{
		Collection: c,
		Status:     models.QuerySuccess,
		UpdatedAt:  o.now(),
	}
	o.publishLocked(q.state)
	return nil
}

func (o *orchestrator) ClearAll(ctx context.Context) error {
	var errs []error
	for _, c := range models.Collections {
		if _, ok := o.queries[c]; !ok {
			continue
		}
		if err := o.Clear(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (o *orchestrator) Subscribe() (<-chan models.QueryState, func()) {
	ch := make(chan models.QueryState, subscriberBuffer)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		close(ch)
		return ch, func() {}
	}

	id := o.newID()
	o.subs[id] = ch

	return ch, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if sub, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(sub)
		}
	}
}

func (o *orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true

	for _, q := range o.queries {
		if q.cancel != nil {
			q.cancel()
		}
	}
	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
}

// publishLocked delivers state to every subscriber that has room for it.
func (o *orchestrator) publishLocked(state models.QueryState) {
	for _, ch := range o.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

func postsLen(data *models.FetchData) int {
	if data == nil {
		return 0
	}
	return len(data.Posts)
}
