package anilist

import (
	"encoding/json"
	"fmt"
)

// MediaType distinguishes anime from manga in queries and results.
type MediaType string

// Media types known to the AniList API.
const (
	MediaTypeAnime MediaType = "ANIME"
	MediaTypeManga MediaType = "MANGA"
)

// MediaTitle holds the title of a media entry in its available languages.
type MediaTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

// CoverImage holds cover art URLs and the dominant color.
type CoverImage struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
	Color  string `json:"color"`
}

// FuzzyDate is a date where any component may be unknown (zero).
type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Media represents a single anime or manga entry.
type Media struct {
	ID           int        `json:"id"`
	IDMal        int        `json:"idMal"`
	Type         MediaType  `json:"type"`
	Format       string     `json:"format"`
	Status       string     `json:"status"`
	Description  string     `json:"description"`
	Episodes     int        `json:"episodes"`
	Chapters     int        `json:"chapters"`
	Volumes      int        `json:"volumes"`
	AverageScore int        `json:"averageScore"`
	Popularity   int        `json:"popularity"`
	IsAdult      bool       `json:"isAdult"`
	SiteURL      string     `json:"siteUrl"`
	BannerImage  string     `json:"bannerImage"`
	Genres       []string   `json:"genres"`
	Title        MediaTitle `json:"title"`
	CoverImage   CoverImage `json:"coverImage"`
	StartDate    FuzzyDate  `json:"startDate"`
	EndDate      FuzzyDate  `json:"endDate"`

	// Paged records whether this entry came out of a paged search. The two
	// query types nest their payloads differently, so consumers that keep
	// the raw object around need to know which shape they are holding.
	Paged bool `json:"-"`
}

// NewMedia builds a Media from the raw sub-object of a response. The paged
// flag tags the result with the shape of the query it came from.
func NewMedia(raw json.RawMessage, paged bool) (*Media, error) {
	var m Media
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse media: %w", err)
	}
	m.Paged = paged
	return &m, nil
}

// PreferredTitle returns the English title when available, falling back to
// romaji and then the native title.
func (m *Media) PreferredTitle() string {
	if m.Title.English != "" {
		return m.Title.English
	}
	if m.Title.Romaji != "" {
		return m.Title.Romaji
	}
	return m.Title.Native
}

// IsAnime reports whether the entry is an anime.
func (m *Media) IsAnime() bool {
	return m.Type == MediaTypeAnime
}
