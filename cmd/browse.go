package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aniquery/aniquery/anilist"
	"github.com/aniquery/aniquery/filter"
)

// maxConcurrentPages bounds the fan-out when fetching multiple pages
const maxConcurrentPages = 5

var (
	browseType    string
	browseSort    string
	browseGenre   string
	browseSearch  string
	browseAdult   bool
	browsePage    int
	browsePerPage int
	browsePages   int
	browseFilter  string
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog with custom sort, genre and filter criteria",
	Long: `Browse paged search results with full control over the service's sort
and filter variables, for example:

  aniquery browse --type anime --sort SCORE_DESC --genre Action --pages 3
  aniquery browse --type manga --search "one piece" --filter 'Score >= 80'

The --filter expression is evaluated locally against each result; see the
filter package documentation for the available fields.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringVarP(&browseType, "type", "t", "", "media type (anime or manga)")
	browseCmd.Flags().StringVarP(&browseSort, "sort", "s", "", "MediaSort value, e.g. SCORE_DESC, POPULARITY_DESC")
	browseCmd.Flags().StringVarP(&browseGenre, "genre", "g", "", "genre to match")
	browseCmd.Flags().StringVarP(&browseSearch, "search", "q", "", "search term")
	browseCmd.Flags().BoolVar(&browseAdult, "adult", false, "include adult titles")
	browseCmd.Flags().IntVar(&browsePage, "page", 1, "first page to fetch")
	browseCmd.Flags().IntVar(&browsePerPage, "per-page", 0, "results per page (default from config)")
	browseCmd.Flags().IntVar(&browsePages, "pages", 1, "number of consecutive pages to fetch")
	browseCmd.Flags().StringVarP(&browseFilter, "filter", "f", "", "filter expression applied to the results")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	vars := anilist.Variables{}
	if browseType != "" {
		vars["type"] = strings.ToUpper(browseType)
	}
	if browseSort != "" {
		vars["sort"] = strings.ToUpper(browseSort)
	}
	if browseGenre != "" {
		vars["genre"] = browseGenre
	}
	if browseSearch != "" {
		vars["search"] = browseSearch
	}
	if !browseAdult && !cfg.Search.AllowAdult {
		vars["isAdult"] = false
	}

	perPage := browsePerPage
	if perPage <= 0 {
		perPage = cfg.Search.PerPage
	}

	results, err := fetchPages(context.Background(), vars, perPage)
	if err != nil {
		if errors.Is(err, anilist.ErrNotFound) {
			fmt.Println("No results found.")
			return nil
		}
		return err
	}

	if browseFilter != "" {
		f, err := filter.Compile(browseFilter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		results, err = f.Apply(results)
		if err != nil {
			return err
		}
	}

	if len(results) == 0 {
		fmt.Println("No results found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d entries:\n", len(results))
	fmt.Println(strings.Repeat("-", 80))
	for _, m := range results {
		printMedia(m)
	}

	return nil
}

// fetchPages retrieves consecutive result pages, fanning out when more than
// one was requested. Pages past the end of the result set are skipped; the
// not-found failure only stands when nothing came back at all.
func fetchPages(ctx context.Context, vars anilist.Variables, perPage int) ([]*anilist.Media, error) {
	if browsePages <= 1 {
		return client.SearchPage(ctx, browsePage, perPage, vars)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)

	pages := make([][]*anilist.Media, browsePages)
	for i := 0; i < browsePages; i++ {
		g.Go(func() error {
			results, err := client.SearchPage(ctx, browsePage+i, perPage, vars)
			if err != nil {
				if errors.Is(err, anilist.ErrNotFound) {
					logger.Debug().Int("page", browsePage+i).Msg("Page past end of results")
					return nil
				}
				return err
			}
			pages[i] = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*anilist.Media
	for _, page := range pages {
		all = append(all, page...)
	}
	if len(all) == 0 {
		return nil, anilist.ErrNotFound
	}

	return all, nil
}
