package anilist

// The query templates the client dispatches. The pipeline treats them as
// opaque strings; only the top-level key of each response (Media, Page.media,
// User) is known to the extraction code.

const mediaFields = `
		id
		idMal
		type
		format
		status
		description
		episodes
		chapters
		volumes
		averageScore
		popularity
		isAdult
		siteUrl
		bannerImage
		genres
		title {
			romaji
			english
			native
		}
		coverImage {
			large
			medium
			color
		}
		startDate {
			year
			month
			day
		}
		endDate {
			year
			month
			day
		}`

// QueryMediaByID looks up a single anime or manga by its AniList ID.
const QueryMediaByID = `query ($id: Int, $type: MediaType) {
	Media(id: $id, type: $type) {` + mediaFields + `
	}
}`

// QueryMediaSearch finds the single best match for a search term.
const QueryMediaSearch = `query ($search: String, $type: MediaType, $isAdult: Boolean, $exclude: MediaFormat) {
	Media(search: $search, type: $type, isAdult: $isAdult, format_not: $exclude) {` + mediaFields + `
	}
}`

// QueryMediaPaged returns a page of matches, ordered by the service
// according to the sort variable (relevance when unset).
const QueryMediaPaged = `query ($page: Int, $perPage: Int, $search: String, $type: MediaType, $sort: [MediaSort], $genre: String, $isAdult: Boolean, $exclude: MediaFormat) {
	Page(page: $page, perPage: $perPage) {
		media(search: $search, type: $type, sort: $sort, genre: $genre, isAdult: $isAdult, format_not: $exclude) {` + mediaFields + `
		}
	}
}`

const userFields = `
		id
		name
		about
		siteUrl
		bannerImage
		avatar {
			large
			medium
		}`

// QueryUserByID looks up a single user by ID.
const QueryUserByID = `query ($id: Int) {
	User(id: $id) {` + userFields + `
	}
}`

// QueryUserSearch finds the single best match for a user name.
const QueryUserSearch = `query ($search: String) {
	User(search: $search) {` + userFields + `
	}
}`
