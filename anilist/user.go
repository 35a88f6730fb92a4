package anilist

import (
	"encoding/json"
	"fmt"
)

// UserAvatar holds avatar image URLs.
type UserAvatar struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
}

// User represents an AniList user profile.
type User struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	About       string     `json:"about"`
	SiteURL     string     `json:"siteUrl"`
	BannerImage string     `json:"bannerImage"`
	Avatar      UserAvatar `json:"avatar"`
}

// NewUser builds a User from the raw sub-object of a response.
func NewUser(raw json.RawMessage) (*User, error) {
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &u, nil
}
