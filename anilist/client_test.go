package anilist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphqlRequest mirrors the wire format of an outgoing request.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newTestClient returns a client bound to a stub server. The handler
// receives the decoded request and writes the raw response body.
func newTestClient(t *testing.T, handler func(t *testing.T, req graphqlRequest) string) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(handler(t, req)))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(zerolog.Nop(), WithEndpoint(server.URL))
	require.NoError(t, err)

	return client, server
}

func TestNewClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient(zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, Endpoint, client.endpoint)
		assert.NotNil(t, client.transport)
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := NewClient(zerolog.Nop(), WithMode(Mode(99)))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedMode)
	})

	t.Run("nil supplied transport", func(t *testing.T) {
		_, err := NewClient(zerolog.Nop(), WithTransport(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNilTransport)
	})

	t.Run("supplied transport wins", func(t *testing.T) {
		stub := &stubTransport{}
		client, err := NewClient(zerolog.Nop(), WithTransport(stub), WithMode(Mode(99)))
		require.NoError(t, err)
		assert.Equal(t, Transport(stub), client.transport)
	})
}

// stubTransport records the last request body it saw.
type stubTransport struct {
	lastURL  string
	lastBody any
	response *Response
	err      error
}

func (s *stubTransport) Send(_ context.Context, url string, body any) (*Response, error) {
	s.lastURL = url
	s.lastBody = body
	if s.err != nil {
		return nil, s.err
	}
	if s.response != nil {
		return s.response, nil
	}
	return &Response{Data: json.RawMessage(`{}`)}, nil
}

func TestGetAnime(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		assert.Equal(t, float64(1), req.Variables["id"])
		assert.Equal(t, "ANIME", req.Variables["type"])
		return `{"data":{"Media":{"id":1,"title":{"romaji":"X"}}}}`
	})

	media, err := client.GetAnime(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, media.ID)
	assert.Equal(t, "X", media.Title.Romaji)
	assert.False(t, media.Paged)
}

func TestGetManga(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		assert.Equal(t, "MANGA", req.Variables["type"])
		return `{"data":{"Media":{"id":30002,"type":"MANGA","title":{"romaji":"Berserk"}}}}`
	})

	media, err := client.GetManga(context.Background(), 30002)
	require.NoError(t, err)
	assert.Equal(t, 30002, media.ID)
	assert.Equal(t, MediaTypeManga, media.Type)
	assert.False(t, media.Paged)
}

func TestGetAnime_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		return `{"errors":[{"message":"Not Found.","status":404}]}`
	})

	_, err := client.GetAnime(context.Background(), 999999999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Not Found.", svcErr.Message)
	assert.Equal(t, 404, svcErr.Status)
}

func TestGetAnime_ServiceError(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		return `{"errors":[{"message":"Too Many Requests.","status":429},{"message":"ignored","status":500}]}`
	})

	_, err := client.GetAnime(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	// Only the first entry of the array decides the failure.
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Too Many Requests.", svcErr.Message)
	assert.Equal(t, 429, svcErr.Status)
}

func TestGetAnime_NullMedia(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		return `{"data":{"Media":null}}`
	})

	_, err := client.GetAnime(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchAnime_AdultFilter(t *testing.T) {
	tests := []struct {
		name string
		opts []SearchOption
		want func(t *testing.T, vars map[string]any)
	}{
		{
			name: "default injects isAdult false",
			want: func(t *testing.T, vars map[string]any) {
				assert.Equal(t, false, vars["isAdult"])
			},
		},
		{
			name: "WithAdult omits isAdult entirely",
			opts: []SearchOption{WithAdult()},
			want: func(t *testing.T, vars map[string]any) {
				_, present := vars["isAdult"]
				assert.False(t, present)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
				assert.Equal(t, "bebop", req.Variables["search"])
				assert.Equal(t, "ANIME", req.Variables["type"])
				tt.want(t, req.Variables)
				return `{"data":{"Media":{"id":1}}}`
			})

			_, err := client.SearchAnime(context.Background(), "bebop", tt.opts...)
			require.NoError(t, err)
		})
	}
}

func TestSearchManga_NovelExclusion(t *testing.T) {
	tests := []struct {
		name string
		opts []SearchOption
		want func(t *testing.T, vars map[string]any)
	}{
		{
			name: "default excludes novels",
			want: func(t *testing.T, vars map[string]any) {
				assert.Equal(t, "NOVEL", vars["exclude"])
			},
		},
		{
			name: "WithNovels drops the exclusion",
			opts: []SearchOption{WithNovels()},
			want: func(t *testing.T, vars map[string]any) {
				_, present := vars["exclude"]
				assert.False(t, present)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
				assert.Equal(t, "MANGA", req.Variables["type"])
				tt.want(t, req.Variables)
				return `{"data":{"Media":{"id":2}}}`
			})

			_, err := client.SearchManga(context.Background(), "berserk", tt.opts...)
			require.NoError(t, err)
		})
	}
}

func TestSearchAnime_Popularity(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		// Popularity searches go through the paged query.
		assert.True(t, strings.Contains(req.Query, "Page("))
		assert.Equal(t, float64(1), req.Variables["page"])
		assert.Equal(t, float64(50), req.Variables["perPage"])
		return `{"data":{"Page":{"media":[{"id":7},{"id":8}]}}}`
	})

	media, err := client.SearchAnime(context.Background(), "naruto", WithPopularity())
	require.NoError(t, err)
	assert.Equal(t, 7, media.ID)
	assert.True(t, media.Paged)
}

func TestSearchManga_Popularity(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		// The manga filters ride along into the paged query.
		assert.True(t, strings.Contains(req.Query, "Page("))
		assert.Equal(t, "MANGA", req.Variables["type"])
		assert.Equal(t, "NOVEL", req.Variables["exclude"])
		assert.Equal(t, false, req.Variables["isAdult"])
		return `{"data":{"Page":{"media":[{"id":30002},{"id":30003}]}}}`
	})

	media, err := client.SearchManga(context.Background(), "berserk", WithPopularity())
	require.NoError(t, err)
	assert.Equal(t, 30002, media.ID)
	assert.True(t, media.Paged)
}

func TestSearchAnime_SingleShape(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		assert.False(t, strings.Contains(req.Query, "Page("))
		return `{"data":{"Media":{"id":5}}}`
	})

	media, err := client.SearchAnime(context.Background(), "naruto")
	require.NoError(t, err)
	assert.Equal(t, 5, media.ID)
	assert.False(t, media.Paged)
}

func TestSearchPage(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		assert.Equal(t, float64(1), req.Variables["page"])
		assert.Equal(t, float64(2), req.Variables["perPage"])
		assert.Equal(t, "ANIME", req.Variables["type"])
		return `{"data":{"Page":{"media":[{"id":1},{"id":2}]}}}`
	})

	media, err := client.SearchPage(context.Background(), 1, 2, Variables{"type": "ANIME"})
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, 1, media[0].ID)
	assert.Equal(t, 2, media[1].ID)
	assert.True(t, media[0].Paged)
	assert.True(t, media[1].Paged)
}

func TestSearchPage_Empty(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		return `{"data":{"Page":{"media":[]}}}`
	})

	_, err := client.SearchPage(context.Background(), 1, 50, Variables{"search": "no such title"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Not Found.", svcErr.Message)
	assert.Equal(t, 404, svcErr.Status)
}

func TestSearchPage_CallerVariablesDoNotOverridePaging(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		assert.Equal(t, float64(3), req.Variables["page"])
		return `{"data":{"Page":{"media":[{"id":1}]}}}`
	})

	_, err := client.SearchPage(context.Background(), 3, 10, Variables{"page": 1})
	require.NoError(t, err)
}

func TestGetUser(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		assert.Equal(t, float64(42), req.Variables["id"])
		return `{"data":{"User":{"id":42,"name":"tester"}}}`
	})

	user, err := client.GetUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "tester", user.Name)
}

func TestSearchUser(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		assert.Equal(t, "tester", req.Variables["search"])
		return `{"data":{"User":{"id":42,"name":"tester"}}}`
	})

	user, err := client.SearchUser(context.Background(), "tester")
	require.NoError(t, err)
	assert.Equal(t, "tester", user.Name)
}

func TestSearchUser_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, req graphqlRequest) string {
		return `{"errors":[{"message":"Not Found.","status":404}]}`
	})

	_, err := client.SearchUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDispatch_TransportErrorPassesThrough(t *testing.T) {
	stub := &stubTransport{err: assert.AnError}
	client, err := NewClient(zerolog.Nop(), WithTransport(stub))
	require.NoError(t, err)

	_, err = client.GetAnime(context.Background(), 1)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, Endpoint, stub.lastURL)
}
