package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aniquery/aniquery/anilist"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for an entry by title or name",
}

var searchAnimeCmd = &cobra.Command{
	Use:   "anime <query>",
	Short: "Search for an anime by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearchMedia(cmd, args, client.SearchAnime)
	},
}

var searchMangaCmd = &cobra.Command{
	Use:   "manga <query>",
	Short: "Search for a manga by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearchMedia(cmd, args, client.SearchManga)
	},
}

var searchUserCmd = &cobra.Command{
	Use:   "user <name>",
	Short: "Search for a user by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchUser,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.AddCommand(searchAnimeCmd)
	searchCmd.AddCommand(searchMangaCmd)
	searchCmd.AddCommand(searchUserCmd)

	for _, c := range []*cobra.Command{searchAnimeCmd, searchMangaCmd} {
		c.Flags().BoolP("popularity", "p", false, "rank results by popularity instead of title match")
		c.Flags().Bool("adult", false, "include adult titles")
	}
	searchMangaCmd.Flags().Bool("include-novels", false, "keep light novels in the results")
}

// searchOptions merges config defaults with the command's own flags. Each
// subcommand carries its own flag set, so nothing leaks between them.
func searchOptions(cmd *cobra.Command) []anilist.SearchOption {
	var opts []anilist.SearchOption

	if popularity, _ := cmd.Flags().GetBool("popularity"); popularity {
		opts = append(opts, anilist.WithPopularity())
	}

	adult, _ := cmd.Flags().GetBool("adult")
	if adult || (cfg.Search.AllowAdult && !cmd.Flags().Changed("adult")) {
		opts = append(opts, anilist.WithAdult())
	}

	if cmd.Flags().Lookup("include-novels") != nil {
		novels, _ := cmd.Flags().GetBool("include-novels")
		if novels || (cfg.Search.IncludeNovels && !cmd.Flags().Changed("include-novels")) {
			opts = append(opts, anilist.WithNovels())
		}
	}

	return opts
}

func runSearchMedia(cmd *cobra.Command, args []string, search func(context.Context, string, ...anilist.SearchOption) (*anilist.Media, error)) error {
	query := strings.Join(args, " ")
	logger.Debug().Str("query", query).Msg("Searching AniList")

	media, err := search(context.Background(), query, searchOptions(cmd)...)
	if err != nil {
		if errors.Is(err, anilist.ErrNotFound) {
			fmt.Println("No results found.")
			return nil
		}
		return err
	}

	printMedia(media)
	return nil
}

func runSearchUser(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	user, err := client.SearchUser(context.Background(), query)
	if err != nil {
		if errors.Is(err, anilist.ErrNotFound) {
			fmt.Println("No user found.")
			return nil
		}
		return err
	}

	printUser(user)
	return nil
}
