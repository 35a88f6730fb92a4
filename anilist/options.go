package anilist

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	endpoint     string
	mode         Mode
	transport    Transport
	transportSet bool
	httpClient   *http.Client
	timeout      time.Duration
}

// WithEndpoint overrides the API endpoint. The endpoint is fixed for the
// lifetime of the client; this exists for tests and proxies.
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithMode selects the decode mode of the default transport. Ignored when a
// transport is supplied with WithTransport.
func WithMode(mode Mode) Option {
	return func(o *clientOptions) {
		o.mode = mode
	}
}

// WithTransport supplies a pre-built transport, bypassing the default
// transport construction entirely. Passing nil fails client construction
// with ErrNilTransport.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
		o.transportSet = true
	}
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP timeout of the default transport.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// SearchOption adjusts a media search.
type SearchOption func(*searchOptions)

type searchOptions struct {
	popularity    bool
	allowAdult    bool
	includeNovels bool
}

// WithPopularity ranks results by the service's scoring instead of taking
// the single best title match. The search runs as a paged query and returns
// its top entry.
func WithPopularity() SearchOption {
	return func(o *searchOptions) {
		o.popularity = true
	}
}

// WithAdult lifts the default isAdult=false filter.
func WithAdult() SearchOption {
	return func(o *searchOptions) {
		o.allowAdult = true
	}
}

// WithNovels keeps light novels in manga search results. They are excluded
// by default.
func WithNovels() SearchOption {
	return func(o *searchOptions) {
		o.includeNovels = true
	}
}

func applySearchOptions(opts []SearchOption) searchOptions {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
