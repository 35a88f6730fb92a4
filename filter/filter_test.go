package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniquery/aniquery/anilist"
)

func sampleMedia() []*anilist.Media {
	return []*anilist.Media{
		{
			ID:           1,
			Type:         anilist.MediaTypeAnime,
			Episodes:     26,
			AverageScore: 86,
			Genres:       []string{"Action", "Sci-Fi"},
			Title:        anilist.MediaTitle{English: "Cowboy Bebop"},
			StartDate:    anilist.FuzzyDate{Year: 1998},
		},
		{
			ID:           2,
			Type:         anilist.MediaTypeAnime,
			Episodes:     12,
			AverageScore: 64,
			Genres:       []string{"Comedy"},
			Title:        anilist.MediaTitle{Romaji: "Some Comedy"},
			StartDate:    anilist.FuzzyDate{Year: 2015},
		},
		{
			ID:           3,
			Type:         anilist.MediaTypeManga,
			Chapters:     380,
			AverageScore: 93,
			Genres:       []string{"Action", "Drama"},
			Title:        anilist.MediaTitle{English: "Berserk"},
			StartDate:    anilist.FuzzyDate{Year: 1989},
		},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{name: "valid comparison", expression: "Score >= 80"},
		{name: "valid membership", expression: `"Action" in Genres`},
		{name: "empty", expression: "   ", wantErr: true},
		{name: "syntax error", expression: "Score >=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantIDs    []int
	}{
		{name: "score threshold", expression: "Score >= 80", wantIDs: []int{1, 3}},
		{name: "genre membership", expression: `"Action" in Genres`, wantIDs: []int{1, 3}},
		{name: "genre helper is case-insensitive", expression: `hasGenre("action")`, wantIDs: []int{1, 3}},
		{name: "type and episodes", expression: `Type == "ANIME" && Episodes <= 12`, wantIDs: []int{2}},
		{name: "start year range", expression: "StartYear >= 1990 && StartYear < 2000", wantIDs: []int{1}},
		{name: "title match", expression: `Title startsWith "Cowboy"`, wantIDs: []int{1}},
		{name: "nothing matches", expression: "Score > 99", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Apply(sampleMedia())
			require.NoError(t, err)

			ids := make([]int, 0, len(matched))
			for _, m := range matched {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMatch_NilGenres(t *testing.T) {
	f, err := Compile(`"Action" in Genres`)
	require.NoError(t, err)

	ok, err := f.Match(&anilist.Media{ID: 9})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpression(t *testing.T) {
	f, err := Compile("Score > 50")
	require.NoError(t, err)
	assert.Equal(t, "Score > 50", f.Expression())
}
