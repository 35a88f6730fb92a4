// Package anilist provides a client for the AniList GraphQL API.
//
// AniList is a catalog of anime and manga. This package implements the
// request/response pipeline for querying it: a pluggable transport, query
// dispatch with typed error classification, and paged search handling.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the main API client composing dispatch, pagination and the
//     public lookup/search methods
//   - Transport: the HTTP POST exchange, pluggable for testing and reuse
//     of an existing http.Client
//   - Media, User: domain models built from the raw response sub-objects
//   - Errors: structured error types for taxonomy-level handling
//
// # Usage
//
// Create a client and look up a title:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := anilist.NewClient(logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	media, err := client.SearchAnime(ctx, "cowboy bebop")
//	if errors.Is(err, anilist.ErrNotFound) {
//		// nothing matched
//	}
//
// All methods are safe for concurrent use; a Client holds no mutable state
// after construction.
package anilist
