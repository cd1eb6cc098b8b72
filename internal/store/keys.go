// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/sky-shelf/models"

// Well-known cache keys.
const (
	LastTabKey      = "lastTab"
	CurrentIndexKey = "currentIndex"
	SessionKey      = "session"

	cacheKeySuffix = "-cache"
)

// CacheKey returns the key holding the serialized fetch result of c.
func CacheKey(c models.Collection) string {
	return string(c) + cacheKeySuffix
}
