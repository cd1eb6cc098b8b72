// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/pipeline"
	"github.com/MKhiriev/sky-shelf/models"
)

const (
	// AuthorsPerPage is the page size of the per-author statistics.
	AuthorsPerPage = 10

	// statsMonths is the number of most recent months kept in PerMonth.
	statsMonths = 12
)

type statsService struct {
	orchestrator Orchestrator
	adapter      adapter.RemoteAdapter
	location     *time.Location
	logger       *logger.Logger
}

// NewStatsService returns a StatsService over the likes held by
// orchestrator. Times are bucketed in location, time.Local when nil.
func NewStatsService(orchestrator Orchestrator, remote adapter.RemoteAdapter, location *time.Location, logger *logger.Logger) StatsService {
	if location == nil {
		location = time.Local
	}
	return &statsService{
		orchestrator: orchestrator,
		adapter:      remote,
		location:     location,
		logger:       logger,
	}
}

// likes returns the likes data, loading it from the cache when the
// orchestrator has not settled the collection yet.
func (s *statsService) likes(ctx context.Context) (*models.FetchData, error) {
	state := s.orchestrator.State(models.CollectionLikes)
	if !state.HasData() {
		var err error
		if state, err = s.orchestrator.Fetch(ctx, models.CollectionLikes, models.FetchOptions{}); err != nil {
			return nil, err
		}
	}
	if !state.HasData() {
		return nil, ErrNoData
	}
	return state.Data, nil
}

func (s *statsService) LikeStats(ctx context.Context) (models.LikeStats, error) {
	data, err := s.likes(ctx)
	if err != nil {
		return models.LikeStats{}, err
	}

	stats := models.LikeStats{
		PerAuthor:        CountPerAuthor(data.Posts),
		AltText:          CountAltText(data.Posts),
		PerMonth:         CountPerMonth(data.Records, s.location),
		Embeds:           pipeline.TotalEmbeds(data.Posts),
		Records:          len(data.Records),
		UnavailableCount: data.UnavailableCount(),
	}
	stats.PerWeekday, stats.PerHour = CountPerTime(data.Records, s.location)

	if followed, err := s.fromFollowed(ctx, data.Posts); err != nil {
		s.logger.Warn().Err(err).Str("func", "statsService.LikeStats").Msg("follows unavailable, skipping followed share")
	} else {
		stats.FromFollowed = &followed
	}

	return stats, nil
}

func (s *statsService) fromFollowed(ctx context.Context, posts []models.PostView) (models.YesNo, error) {
	did, err := sessionDID(s.adapter)
	if err != nil {
		return models.YesNo{}, err
	}

	follows, err := FetchAll(ctx, func(ctx context.Context, cursor string, limit int) (models.CursorPage[models.ProfileView], error) {
		return s.adapter.GetFollows(ctx, did, cursor, limit)
	})
	if err != nil {
		return models.YesNo{}, err
	}

	followed := make(map[string]struct{}, len(follows))
	for _, f := range follows {
		followed[f.DID] = struct{}{}
	}

	var res models.YesNo
	for _, p := range posts {
		if _, ok := followed[p.Author.DID]; ok {
			res.Yes++
		} else {
			res.No++
		}
	}
	return res, nil
}

// CountPerTime buckets records by weekday, Monday first, and by hour of
// day in loc.
func CountPerTime(records []models.ActionRecord, loc *time.Location) (perWeekday [7]int, perHour [24]int) {
	for _, r := range records {
		t := r.CreatedAt.In(loc)
		perWeekday[(int(t.Weekday())+6)%7]++
		perHour[t.Hour()]++
	}
	return perWeekday, perHour
}

// CountPerAuthor counts posts per author DID, highest count first. Equal
// counts are ordered by DID, descending.
func CountPerAuthor(posts []models.PostView) []models.AuthorCount {
	index := make(map[string]int)
	counts := make([]models.AuthorCount, 0)
	for _, p := range posts {
		i, ok := index[p.Author.DID]
		if !ok {
			i = len(counts)
			index[p.Author.DID] = i
			counts = append(counts, models.AuthorCount{Profile: p.Author})
		}
		counts[i].Count++
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Profile.DID > counts[j].Profile.DID
	})
	return counts
}

// AuthorPage returns one page of per-author counts.
func AuthorPage(counts []models.AuthorCount, index int, flip bool) models.Page[models.AuthorCount] {
	return pipeline.Paginate(counts, AuthorsPerPage, index, flip)
}

// CountAltText counts posts with images by whether every image carries alt
// text. Images next to a quote count too.
func CountAltText(posts []models.PostView) models.YesNo {
	var res models.YesNo
	for _, p := range posts {
		images := postImages(p.Embed)
		if len(images) == 0 {
			continue
		}
		if allHaveAlt(images) {
			res.Yes++
		} else {
			res.No++
		}
	}
	return res
}

func postImages(embed *models.EmbedView) []models.ImageView {
	if embed == nil {
		return nil
	}
	switch embed.Type {
	case models.EmbedImagesView:
		return embed.Images
	case models.EmbedRecordWithMediaView:
		if embed.Media != nil && embed.Media.Type == models.EmbedImagesView {
			return embed.Media.Images
		}
	}
	return nil
}

func allHaveAlt(images []models.ImageView) bool {
	for _, img := range images {
		if strings.TrimSpace(img.Alt) == "" {
			return false
		}
	}
	return true
}

// CountPerMonth groups records by calendar month in loc and returns the
// last twelve months that have records, oldest first.
func CountPerMonth(records []models.ActionRecord, loc *time.Location) []models.MonthCount {
	type month struct {
		year int
		m    time.Month
	}
	byMonth := make(map[month]int)
	for _, r := range records {
		t := r.CreatedAt.In(loc)
		byMonth[month{t.Year(), t.Month()}]++
	}

	res := make([]models.MonthCount, 0, len(byMonth))
	for k, n := range byMonth {
		res = append(res, models.MonthCount{
			Year:  k.year,
			Month: k.m,
			Label: time.Date(k.year, k.m, 1, 0, 0, 0, 0, time.UTC).Format("Jan/06"),
			Count: n,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Year != res[j].Year {
			return res[i].Year < res[j].Year
		}
		return res[i].Month < res[j].Month
	})

	if len(res) > statsMonths {
		res = res[len(res)-statsMonths:]
	}
	return res
}
