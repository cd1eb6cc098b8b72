package models

// ProfileViewBasic is the compact author view embedded in posts.
type ProfileViewBasic struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// ProfileView is the detailed profile returned by getProfile(s) and
// getFollows.
type ProfileView struct {
	ProfileViewBasic

	Description    string `json:"description,omitempty"`
	FollowersCount int64  `json:"followersCount,omitempty"`
	FollowsCount   int64  `json:"followsCount,omitempty"`
	PostsCount     int64  `json:"postsCount,omitempty"`
	IndexedAt      string `json:"indexedAt,omitempty"`
}
