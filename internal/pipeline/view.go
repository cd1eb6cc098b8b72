// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"slices"
	"sync"

	"github.com/MKhiriev/sky-shelf/models"
)

type stage int

const (
	stageSearch stage = iota
	stageAuthor
	stageEmbed
	stageClean
)

// View memoizes the layers of one collection. A setter invalidates its own
// layer and every layer after it; the next read recomputes from the first
// stale layer in pipeline order. It is safe for concurrent use.
type View struct {
	mu sync.Mutex

	opts   Options
	posts  []models.PostView
	filter models.FilterState

	searched []models.PostView
	authored []models.PostView
	filtered []models.PostView
	counts   models.EmbedCounts

	dirty stage
}

// NewView returns an empty View.
func NewView(opts Options) *View {
	return &View{opts: opts, dirty: stageSearch}
}

func (v *View) invalidate(s stage) {
	v.dirty = min(v.dirty, s)
}

// SetData replaces the posts. Call it after the searcher has been rebuilt
// for them.
func (v *View) SetData(posts []models.PostView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.posts = posts
	v.invalidate(stageSearch)
}

// SetSearcher swaps the search backend.
func (v *View) SetSearcher(s Searcher) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Searcher = s
	v.invalidate(stageSearch)
}

// SetQuery sets the free-text query.
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filter.Query == q {
		return
	}
	v.filter.Query = q
	v.invalidate(stageSearch)
}

// SetAuthors sets the selected author DIDs.
func (v *View) SetAuthors(dids []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Authors = slices.Clone(dids)
	v.invalidate(stageAuthor)
}

// ToggleAuthor adds did to the selection, or removes it when present.
func (v *View) ToggleAuthor(did string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Authors = toggle(v.filter.Authors, did)
	v.invalidate(stageAuthor)
}

// SetEmbeds sets the active embed toggles.
func (v *View) SetEmbeds(kinds []models.EmbedKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Embeds = slices.Clone(kinds)
	v.invalidate(stageEmbed)
}

// ToggleEmbed flips one embed toggle.
func (v *View) ToggleEmbed(kind models.EmbedKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Embeds = toggle(v.filter.Embeds, kind)
	v.invalidate(stageEmbed)
}

// ToggleFlip reverses the page order, or restores it.
func (v *View) ToggleFlip() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Flip = !v.opts.Flip
}

// Flipped reports whether pages are served newest-last.
func (v *View) Flipped() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opts.Flip
}

// SetFilter replaces the whole filter state.
func (v *View) SetFilter(f models.FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = models.FilterState{
		Query:     f.Query,
		Authors:   slices.Clone(f.Authors),
		Embeds:    slices.Clone(f.Embeds),
		PageIndex: f.PageIndex,
	}
	v.invalidate(stageSearch)
}

// Filter returns a copy of the current filter state with a clamped page
// index.
func (v *View) Filter() models.FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recompute()
	return models.FilterState{
		Query:     v.filter.Query,
		Authors:   slices.Clone(v.filter.Authors),
		Embeds:    slices.Clone(v.filter.Embeds),
		PageIndex: v.filter.PageIndex,
	}
}

// SetPageIndex sets the zero-based page index; it is clamped on read.
func (v *View) SetPageIndex(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.PageIndex = index
}

// NextPage advances one page, wrapping at the end.
func (v *View) NextPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recompute()
	v.filter.PageIndex = NextPage(v.filter.PageIndex, v.pageCount())
}

// PrevPage goes back one page, wrapping at the start.
func (v *View) PrevPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recompute()
	v.filter.PageIndex = PrevPage(v.filter.PageIndex, v.pageCount())
}

// JumpToPage selects a 1-based page number. An out-of-range number leaves
// the index unchanged.
func (v *View) JumpToPage(number int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recompute()
	index, err := JumpToPage(number, v.pageCount())
	if err != nil {
		return err
	}
	v.filter.PageIndex = index
	return nil
}

// Page returns the current page.
func (v *View) Page() models.PostsPage {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recompute()
	return buildPage(v.filtered, v.counts, v.filter.PageIndex, v.opts)
}

// Authored returns the posts left after the search and author layers.
func (v *View) Authored() []models.PostView {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recompute()
	return v.authored
}

func (v *View) pageCount() int {
	return PageCount(len(v.filtered), v.opts.pageSize())
}

// recompute refreshes the stale layers and clamps the page index to the
// new result. Callers hold mu.
func (v *View) recompute() {
	if v.dirty <= stageSearch {
		v.searched = SearchLayer(v.posts, v.filter.Query, v.opts.Searcher, v.opts.Fuzziness)
	}
	if v.dirty <= stageAuthor {
		v.authored = AuthorLayer(v.searched, v.filter.Authors)
		v.counts = TotalEmbeds(v.authored)
	}
	if v.dirty <= stageEmbed {
		v.filtered = EmbedLayer(v.authored, v.filter.Embeds)
	}
	v.dirty = stageClean

	index := v.filter.PageIndex
	if index == models.NoPages {
		index = 0
	}
	v.filter.PageIndex = ClampPageIndex(index, v.pageCount())
}

func toggle[T comparable](set []T, item T) []T {
	if i := slices.Index(set, item); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), item)
}
