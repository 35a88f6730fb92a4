package anilist

import (
	"context"
)

// API defines the interface for AniList operations, for consumers that want
// to mock the client.
type API interface {
	// GetAnime retrieves a single anime by its AniList ID.
	GetAnime(ctx context.Context, id int) (*Media, error)

	// GetManga retrieves a single manga by its AniList ID.
	GetManga(ctx context.Context, id int) (*Media, error)

	// GetUser retrieves a single user by ID.
	GetUser(ctx context.Context, id int) (*User, error)

	// SearchAnime finds the best matching anime for a search term.
	SearchAnime(ctx context.Context, query string, opts ...SearchOption) (*Media, error)

	// SearchManga finds the best matching manga for a search term.
	SearchManga(ctx context.Context, query string, opts ...SearchOption) (*Media, error)

	// SearchUser finds the best matching user for a name.
	SearchUser(ctx context.Context, query string) (*User, error)

	// SearchPage runs a paged media search with caller-supplied variables.
	SearchPage(ctx context.Context, page, perPage int, vars Variables) ([]*Media, error)
}

var _ API = (*Client)(nil)
