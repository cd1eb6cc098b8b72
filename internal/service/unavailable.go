// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/models"
)

func (s *statsService) Unavailable(ctx context.Context) ([]models.UnavailablePost, error) {
	data, err := s.likes(ctx)
	if err != nil {
		return nil, err
	}

	missing := data.MissingRecords()
	if len(missing) == 0 {
		return []models.UnavailablePost{}, nil
	}

	var dids []string
	seen := make(map[string]struct{})
	for _, r := range missing {
		did := r.SubjectDID()
		if did == "" {
			continue
		}
		if _, ok := seen[did]; ok {
			continue
		}
		seen[did] = struct{}{}
		dids = append(dids, did)
	}

	profiles, reasons := s.resolveProfiles(ctx, dids)

	res := make([]models.UnavailablePost, 0, len(missing))
	for _, r := range missing {
		post := models.UnavailablePost{URI: r.Subject.URI, LikedAt: r.CreatedAt}
		did := r.SubjectDID()
		if p, ok := profiles[did]; ok {
			post.Profile = &p
		} else {
			post.ProfileMissing = true
			post.ProfileMissingReason = reasons[did]
		}
		res = append(res, post)
	}
	return res, nil
}

// resolveProfiles looks dids up in batches first. Whatever a batch did not
// return is requested one by one so each gets its own failure reason.
func (s *statsService) resolveProfiles(ctx context.Context, dids []string) (map[string]models.ProfileView, map[string]string) {
	profiles := make(map[string]models.ProfileView, len(dids))
	reasons := make(map[string]string)

	for _, batch := range Batches(dids, BatchSize) {
		res, err := s.adapter.GetProfiles(ctx, batch)
		if err != nil {
			s.logger.Warn().Err(err).Str("func", "statsService.resolveProfiles").Int("batch", len(batch)).Msg("profile batch failed, falling back to single lookups")
			continue
		}
		for _, p := range res {
			profiles[p.DID] = p
		}
	}

	for _, did := range dids {
		if _, ok := profiles[did]; ok {
			continue
		}
		if ctx.Err() != nil {
			reasons[did] = ctx.Err().Error()
			continue
		}

		p, err := s.adapter.GetProfile(ctx, did)
		if err != nil {
			reasons[did] = missingReason(err)
			continue
		}
		profiles[did] = p
	}
	return profiles, reasons
}

func missingReason(err error) string {
	var xrpcErr *adapter.XRPCError
	if errors.As(err, &xrpcErr) {
		return xrpcErr.Reason()
	}
	return err.Error()
}
