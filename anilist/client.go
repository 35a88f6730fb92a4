package anilist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Endpoint is the AniList GraphQL endpoint.
const Endpoint = "https://graphql.anilist.co"

// defaultPerPage is the page size used when a search falls back to a paged
// query (popularity ranking).
const defaultPerPage = 50

// Variables carries the GraphQL variables of one request.
type Variables map[string]any

// Client represents an AniList API client. It holds no mutable state after
// construction; concurrent calls share the transport safely.
type Client struct {
	endpoint  string
	transport Transport
	logger    zerolog.Logger
}

// NewClient creates a new AniList client. Without options it talks to the
// public endpoint through a buffered-decode transport with a 30 second
// timeout.
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	options := clientOptions{
		endpoint: Endpoint,
		mode:     ModeBuffered,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.transportSet && options.transport == nil {
		return nil, ErrNilTransport
	}

	transport := options.transport
	if transport == nil {
		httpClient := options.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: options.timeout}
		}
		var err error
		transport, err = NewTransport(options.mode, httpClient)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		endpoint:  options.endpoint,
		transport: transport,
		logger:    logger,
	}, nil
}

// dispatch posts one GraphQL operation and classifies service errors. On a
// non-empty errors array the first entry decides the failure; transport
// errors pass through untouched.
func (c *Client) dispatch(ctx context.Context, query string, vars Variables) (*Response, error) {
	body := map[string]any{
		"query":     query,
		"variables": vars,
	}

	resp, err := c.transport.Send(ctx, c.endpoint, body)
	if err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		entry := resp.Errors[0]
		c.logger.Debug().
			Int("status", entry.Status).
			Str("message", entry.Message).
			Msg("AniList returned an error payload")
		return nil, classify(entry)
	}

	return resp, nil
}

// pagedDispatch runs the paged media query and returns the raw entries of
// data.Page.media in service order. An empty page fails the same way as a
// service-level 404.
func (c *Client) pagedDispatch(ctx context.Context, page, perPage int, vars Variables) ([]json.RawMessage, error) {
	merged := make(Variables, len(vars)+2)
	for k, v := range vars {
		merged[k] = v
	}
	merged["page"] = page
	merged["perPage"] = perPage

	resp, err := c.dispatch(ctx, QueryMediaPaged, merged)
	if err != nil {
		return nil, err
	}

	var data struct {
		Page struct {
			Media []json.RawMessage `json:"media"`
		} `json:"Page"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse paged response: %w", err)
	}

	if len(data.Page.Media) == 0 {
		return nil, errNoResults()
	}

	return data.Page.Media, nil
}

// extract pulls the named top-level object out of the response data. A
// missing or null object is reported as not found.
func extract(resp *Response, key string) (json.RawMessage, error) {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response data: %w", err)
	}

	raw, ok := data[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, errNoResults()
	}

	return raw, nil
}

// GetAnime retrieves a single anime by its AniList ID.
func (c *Client) GetAnime(ctx context.Context, id int) (*Media, error) {
	return c.getMedia(ctx, id, MediaTypeAnime)
}

// GetManga retrieves a single manga by its AniList ID.
func (c *Client) GetManga(ctx context.Context, id int) (*Media, error) {
	return c.getMedia(ctx, id, MediaTypeManga)
}

func (c *Client) getMedia(ctx context.Context, id int, mediaType MediaType) (*Media, error) {
	resp, err := c.dispatch(ctx, QueryMediaByID, Variables{"id": id, "type": mediaType})
	if err != nil {
		return nil, err
	}

	raw, err := extract(resp, "Media")
	if err != nil {
		return nil, err
	}

	return NewMedia(raw, false)
}

// GetUser retrieves a single user by ID.
func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	return c.getUser(ctx, QueryUserByID, Variables{"id": id})
}

// SearchUser finds the best matching user for a name.
func (c *Client) SearchUser(ctx context.Context, query string) (*User, error) {
	return c.getUser(ctx, QueryUserSearch, Variables{"search": query})
}

func (c *Client) getUser(ctx context.Context, query string, vars Variables) (*User, error) {
	resp, err := c.dispatch(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	raw, err := extract(resp, "User")
	if err != nil {
		return nil, err
	}

	return NewUser(raw)
}

// SearchAnime finds the best matching anime for a search term. Adult titles
// are filtered out unless WithAdult is given; WithPopularity ranks by the
// service's scoring instead of title match.
func (c *Client) SearchAnime(ctx context.Context, query string, opts ...SearchOption) (*Media, error) {
	options := applySearchOptions(opts)

	vars := Variables{
		"search": query,
		"type":   MediaTypeAnime,
	}
	if !options.allowAdult {
		vars["isAdult"] = false
	}

	return c.searchMedia(ctx, vars, options.popularity)
}

// SearchManga finds the best matching manga for a search term. Light novels
// are excluded unless WithNovels is given; adult titles are filtered out
// unless WithAdult is given.
func (c *Client) SearchManga(ctx context.Context, query string, opts ...SearchOption) (*Media, error) {
	options := applySearchOptions(opts)

	vars := Variables{
		"search": query,
		"type":   MediaTypeManga,
	}
	if !options.includeNovels {
		vars["exclude"] = "NOVEL"
	}
	if !options.allowAdult {
		vars["isAdult"] = false
	}

	return c.searchMedia(ctx, vars, options.popularity)
}

func (c *Client) searchMedia(ctx context.Context, vars Variables, popularity bool) (*Media, error) {
	if popularity {
		entries, err := c.pagedDispatch(ctx, 1, defaultPerPage, vars)
		if err != nil {
			return nil, err
		}
		return NewMedia(entries[0], true)
	}

	resp, err := c.dispatch(ctx, QueryMediaSearch, vars)
	if err != nil {
		return nil, err
	}

	raw, err := extract(resp, "Media")
	if err != nil {
		return nil, err
	}

	return NewMedia(raw, false)
}

// SearchPage runs a paged media search with caller-supplied variables,
// giving full control over the service's filter and sort parameters. See
// https://anilist.github.io/ApiV2-GraphQL-Docs/ for the available MediaSort
// values. Results keep the service's order.
func (c *Client) SearchPage(ctx context.Context, page, perPage int, vars Variables) ([]*Media, error) {
	entries, err := c.pagedDispatch(ctx, page, perPage, vars)
	if err != nil {
		return nil, err
	}

	media := make([]*Media, 0, len(entries))
	for _, entry := range entries {
		m, err := NewMedia(entry, true)
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}

	c.logger.Debug().
		Int("page", page).
		Int("count", len(media)).
		Msg("Retrieved media page from AniList")

	return media, nil
}
