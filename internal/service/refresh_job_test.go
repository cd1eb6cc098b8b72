// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/models"
)

// spyOrchestrator counts Refetch calls per collection.
type spyOrchestrator struct {
	Orchestrator

	calls atomic.Int64
	err   error

	mu   sync.Mutex
	seen []models.Collection
}

func (s *spyOrchestrator) Refetch(_ context.Context, c models.Collection) (models.QueryState, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.seen = append(s.seen, c)
	s.mu.Unlock()
	return models.QueryState{Collection: c}, s.err
}

func (s *spyOrchestrator) collections() []models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Collection(nil), s.seen...)
}

var likesOnly = []models.Collection{models.CollectionLikes}

// ── NewRefreshJob ────────────────────────────────────────────────────────────

func TestNewRefreshJob_ReturnsInterface(t *testing.T) {
	job := NewRefreshJob(&spyOrchestrator{}, logger.Nop())
	require.NotNil(t, job)

	var _ RefreshJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestRefreshJob_Start_Refetches(t *testing.T) {
	spy := &spyOrchestrator{}
	job := NewRefreshJob(spy, logger.Nop())

	// 10ms interval, about five ticks in 55ms
	job.Start(context.Background(), likesOnly, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Refetch should run several times, ran %d", got)
}

func TestRefreshJob_Start_RefetchesEveryCollectionInOrder(t *testing.T) {
	spy := &spyOrchestrator{}
	job := NewRefreshJob(spy, logger.Nop())

	job.Start(context.Background(), models.Collections, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	job.Stop()

	seen := spy.collections()
	require.GreaterOrEqual(t, len(seen), 3)
	assert.Equal(t, models.Collections, seen[:3])
}

func TestRefreshJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyOrchestrator{}
	job := NewRefreshJob(spy, logger.Nop())

	job.Start(context.Background(), likesOnly, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no refetch after Stop")
}

func TestRefreshJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewRefreshJob(&spyOrchestrator{}, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestRefreshJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewRefreshJob(&spyOrchestrator{}, logger.Nop())

	job.Start(context.Background(), likesOnly, 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestRefreshJob_Start_DefaultInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spyOrchestrator{}
		job := NewRefreshJob(spy, logger.Nop())
		ctx, cancel := context.WithCancel(context.Background())

		job.Start(ctx, likesOnly, interval)
		time.Sleep(20 * time.Millisecond)
		cancel()
		job.Stop()

		assert.Equal(t, int64(0), spy.calls.Load(), "interval %v", interval)
	}
}

func TestRefreshJob_Restart_KeepsRefetching(t *testing.T) {
	spy := &spyOrchestrator{}
	job := NewRefreshJob(spy, logger.Nop())

	job.Start(context.Background(), likesOnly, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	job.Start(context.Background(), []models.Collection{models.CollectionPins}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
	seen := spy.collections()
	assert.Equal(t, models.CollectionPins, seen[len(seen)-1])
}

func TestRefreshJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spyOrchestrator{}
	job := NewRefreshJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, likesOnly, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after the parent context was cancelled")
	}
}

func TestRefreshJob_RefetchError_DoesNotStopJob(t *testing.T) {
	spy := &spyOrchestrator{err: assert.AnError}
	job := NewRefreshJob(spy, logger.Nop())

	job.Start(context.Background(), likesOnly, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "refetch keeps running despite errors: %d", got)
}
