package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aniquery/aniquery/anilist"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Look up a single entry by its AniList ID",
}

var getAnimeCmd = &cobra.Command{
	Use:   "anime <id>",
	Short: "Look up an anime by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetMedia(args[0], client.GetAnime)
	},
}

var getMangaCmd = &cobra.Command{
	Use:   "manga <id>",
	Short: "Look up a manga by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetMedia(args[0], client.GetManga)
	},
}

var getUserCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Look up a user by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetUser,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.AddCommand(getAnimeCmd)
	getCmd.AddCommand(getMangaCmd)
	getCmd.AddCommand(getUserCmd)
}

func runGetMedia(arg string, lookup func(context.Context, int) (*anilist.Media, error)) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid ID %q: %w", arg, err)
	}

	media, err := lookup(context.Background(), id)
	if err != nil {
		if errors.Is(err, anilist.ErrNotFound) {
			fmt.Println("No entry found for that ID.")
			return nil
		}
		return err
	}

	printMedia(media)
	return nil
}

func runGetUser(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid ID %q: %w", args[0], err)
	}

	user, err := client.GetUser(context.Background(), id)
	if err != nil {
		if errors.Is(err, anilist.ErrNotFound) {
			fmt.Println("No user found for that ID.")
			return nil
		}
		return err
	}

	printUser(user)
	return nil
}

// printMedia writes a media entry to stdout
func printMedia(m *anilist.Media) {
	fmt.Printf("• %s", m.PreferredTitle())
	if m.StartDate.Year > 0 {
		fmt.Printf(" (%d)", m.StartDate.Year)
	}
	fmt.Println()

	fmt.Printf("  ID: %d", m.ID)
	if m.IDMal > 0 {
		fmt.Printf("  MAL: %d", m.IDMal)
	}
	fmt.Println()

	if m.Format != "" || m.Status != "" {
		fmt.Printf("  %s %s\n", m.Format, strings.ToLower(m.Status))
	}
	if m.Episodes > 0 {
		fmt.Printf("  Episodes: %d\n", m.Episodes)
	}
	if m.Chapters > 0 {
		fmt.Printf("  Chapters: %d", m.Chapters)
		if m.Volumes > 0 {
			fmt.Printf(" (%d volumes)", m.Volumes)
		}
		fmt.Println()
	}
	if m.AverageScore > 0 {
		fmt.Printf("  Score: %d\n", m.AverageScore)
	}
	if len(m.Genres) > 0 {
		fmt.Printf("  Genres: %s\n", strings.Join(m.Genres, ", "))
	}
	if m.SiteURL != "" {
		fmt.Printf("  %s\n", m.SiteURL)
	}
}

// printUser writes a user profile to stdout
func printUser(u *anilist.User) {
	fmt.Printf("• %s (ID %d)\n", u.Name, u.ID)
	if u.About != "" {
		fmt.Printf("  %s\n", u.About)
	}
	if u.SiteURL != "" {
		fmt.Printf("  %s\n", u.SiteURL)
	}
}
