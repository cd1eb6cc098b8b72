package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sky-shelf/models"
)

// pagedSource serves sizes as consecutive pages; the last page has no
// cursor.
type pagedSource struct {
	sizes   []int
	cursors []string
	failAt  int
}

func (p *pagedSource) page(_ context.Context, cursor string, limit int) (models.CursorPage[int], error) {
	p.cursors = append(p.cursors, cursor)
	n := len(p.cursors) - 1
	if p.failAt > 0 && n == p.failAt {
		return models.CursorPage[int]{}, errors.New("boom")
	}
	if n >= len(p.sizes) {
		return models.CursorPage[int]{}, nil
	}

	items := make([]int, p.sizes[n])
	for i := range items {
		items[i] = n*limit + i
	}
	page := models.CursorPage[int]{Items: items}
	if n < len(p.sizes)-1 {
		page.Cursor = fmt.Sprintf("c%d", n+1)
	}
	return page, nil
}

func TestFetchAll_FollowsCursorsUntilLastPage(t *testing.T) {
	src := &pagedSource{sizes: []int{100, 100, 37}}

	items, err := FetchAll(context.Background(), src.page)

	require.NoError(t, err)
	assert.Len(t, items, 237)
	assert.Equal(t, []string{"", "c1", "c2"}, src.cursors)
	assert.Equal(t, 0, items[0])
	assert.Equal(t, 236, items[236])
}

func TestFetchAll_StopsOnEmptyPage(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, cursor string, _ int) (models.CursorPage[string], error) {
		calls++
		if cursor == "" {
			return models.CursorPage[string]{Items: []string{"a"}, Cursor: "next"}, nil
		}
		return models.CursorPage[string]{Cursor: "still-more"}, nil
	}

	items, err := FetchAll(context.Background(), fetch)

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)
	assert.Equal(t, 2, calls)
}

func TestFetchAll_PassesPageLimit(t *testing.T) {
	var got int
	fetch := func(_ context.Context, _ string, limit int) (models.CursorPage[int], error) {
		got = limit
		return models.CursorPage[int]{}, nil
	}

	items, err := FetchAll(context.Background(), fetch)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, PageLimit, got)
}

func TestFetchAll_PageErrorFailsWholeFetch(t *testing.T) {
	src := &pagedSource{sizes: []int{100, 100, 37}, failAt: 2}

	items, err := FetchAll(context.Background(), src.page)

	require.Error(t, err)
	assert.Nil(t, items)
	assert.Len(t, src.cursors, 3)
}

func TestFetchAll_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	fetch := func(_ context.Context, _ string, _ int) (models.CursorPage[int], error) {
		calls++
		cancel()
		return models.CursorPage[int]{Items: []int{1}, Cursor: "next"}, nil
	}

	_, err := FetchAll(ctx, fetch)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBatches(t *testing.T) {
	items := make([]int, 60)
	for i := range items {
		items[i] = i
	}

	batches := Batches(items, BatchSize)

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 25)
	assert.Len(t, batches[1], 25)
	assert.Equal(t, []int{50, 51, 52, 53, 54, 55, 56, 57, 58, 59}, batches[2])

	assert.Nil(t, Batches([]int{}, BatchSize))
	assert.Nil(t, Batches(items, 0))
	assert.Len(t, Batches(items[:25], BatchSize), 1)
}
