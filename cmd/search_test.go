package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniquery/aniquery/config"
)

func TestSearchOptions(t *testing.T) {
	cfg = &config.Config{}

	t.Run("flags are independent per command", func(t *testing.T) {
		require.NoError(t, searchMangaCmd.Flags().Set("popularity", "true"))
		t.Cleanup(func() {
			require.NoError(t, searchMangaCmd.Flags().Set("popularity", "false"))
		})

		assert.Len(t, searchOptions(searchMangaCmd), 1)
		assert.Empty(t, searchOptions(searchAnimeCmd))
	})

	t.Run("config default applies when flag untouched", func(t *testing.T) {
		cfg = &config.Config{Search: config.SearchConfig{AllowAdult: true}}
		t.Cleanup(func() { cfg = &config.Config{} })

		assert.Len(t, searchOptions(searchAnimeCmd), 1)
	})

	t.Run("anime command has no novels flag", func(t *testing.T) {
		assert.Nil(t, searchAnimeCmd.Flags().Lookup("include-novels"))
		assert.NotNil(t, searchMangaCmd.Flags().Lookup("include-novels"))
	})
}
