package models

import "time"

// YesNo is a two-bucket counter.
type YesNo struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// AuthorCount is the number of liked posts written by one author.
type AuthorCount struct {
	Profile ProfileViewBasic `json:"profile"`
	Count   int              `json:"count"`
}

// MonthCount is the number of likes recorded in one calendar month.
type MonthCount struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Count int        `json:"count"`
}

// LikeStats is the statistics summary of the likes collection.
type LikeStats struct {
	// PerWeekday is indexed Monday first.
	PerWeekday [7]int `json:"perWeekday"`

	// PerHour is indexed by local hour of day.
	PerHour [24]int `json:"perHour"`

	// PerAuthor is ordered by count, highest first.
	PerAuthor []AuthorCount `json:"perAuthor"`

	// AltText counts image posts whose images all carry alt text.
	AltText YesNo `json:"altText"`

	// PerMonth holds at most the last twelve months with likes, oldest first.
	PerMonth []MonthCount `json:"perMonth"`

	// FromFollowed counts posts by accounts the user follows. Nil when the
	// follow list was not available.
	FromFollowed *YesNo `json:"fromFollowed,omitempty"`

	Embeds EmbedCounts `json:"embeds"`

	Records          int `json:"records"`
	UnavailableCount int `json:"unavailableCount"`
}

// UnavailablePost describes a liked post that can no longer be resolved.
type UnavailablePost struct {
	URI                  string       `json:"uri"`
	LikedAt              time.Time    `json:"likedAt"`
	ProfileMissing       bool         `json:"profileMissing"`
	ProfileMissingReason string       `json:"profileMissingReason,omitempty"`
	Profile              *ProfileView `json:"profile,omitempty"`
}
