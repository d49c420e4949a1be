package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitkarasune/pix/internal/analysis"
	"github.com/gitkarasune/pix/internal/download"
	"github.com/gitkarasune/pix/internal/photo"
	"github.com/gitkarasune/pix/internal/related"
)

type searchOptions struct {
	page    int
	perPage int
	random  bool
	related string
	limit   int
	seed    uint64
	format  *outputFormat
}

func newSearchCmd(a *app) *cobra.Command {
	opts := &searchOptions{format: newOutputFormat("table", "table", "json")}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Unsplash photos",
		Long: `Search Unsplash, most relevant first.

With --related the result page becomes the pool that photos related to the
given photo id are ranked from: same photographer, shared tags and
popularity score highest, and short lists are padded at random.

Examples:
  pix search mountains
  pix search --random --per-page 10 ocean
  pix search --related Dwu85P9SOIk --limit 12 mountains`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 1, "result page")
	cmd.Flags().IntVar(&opts.perPage, "per-page", photo.DefaultPerPage, "results per page")
	cmd.Flags().BoolVar(&opts.random, "random", false, "random photos matching the query instead of a ranked search")
	cmd.Flags().StringVar(&opts.related, "related", "", "rank the results against this photo id")
	cmd.Flags().IntVar(&opts.limit, "limit", related.DefaultLimit, "number of related photos")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for padding related photos (0 for random)")
	cmd.Flags().VarP(opts.format, "format", "f", "output format (table, json)")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, opts *searchOptions, query string) error {
	client, err := a.photoClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var pool []photo.Photo
	if opts.random {
		pool, err = client.Random(ctx, opts.perPage, query)
		if err != nil {
			return err
		}
	} else {
		resp, err := client.Search(ctx, query, opts.page, opts.perPage)
		if err != nil {
			return err
		}
		a.logger.Debug("search complete", "query", query, "total", resp.Total, "pages", resp.TotalPages)
		pool = resp.Results
	}

	if opts.related != "" {
		focal := findPhoto(pool, opts.related)
		if focal == nil {
			focal, err = client.Get(ctx, opts.related)
			if err != nil {
				return fmt.Errorf("failed to fetch photo %s: %w", opts.related, err)
			}
		}
		pool = newRanker(opts.seed, a).Rank(pool, focal, opts.limit)
	}

	return writePhotos(cmd.OutOrStdout(), pool, opts.format.value)
}

type relatedOptions struct {
	limit  int
	seed   uint64
	format *outputFormat
}

func newRelatedCmd(a *app) *cobra.Command {
	opts := &relatedOptions{format: newOutputFormat("table", "table", "json")}

	cmd := &cobra.Command{
		Use:   "related <pool.json> <photo-id>",
		Short: "Rank photos in a local pool by relatedness",
		Long: `Rank the photos in a JSON file against one of them. The file holds either an
array of Unsplash photos or a search response with a "results" array.

Examples:
  pix related saved-search.json Dwu85P9SOIk
  pix related --limit 200 --seed 7 saved-search.json Dwu85P9SOIk`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := readPool(args[0])
			if err != nil {
				return err
			}
			focal := findPhoto(pool, args[1])
			if focal == nil {
				return fmt.Errorf("photo %s is not in %s", args[1], args[0])
			}
			ranked := newRanker(opts.seed, a).Rank(pool, focal, opts.limit)
			return writePhotos(cmd.OutOrStdout(), ranked, opts.format.value)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", related.DefaultLimit, "number of related photos")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for padding related photos (0 for random)")
	cmd.Flags().VarP(opts.format, "format", "f", "output format (table, json)")
	return cmd
}

func newRanker(seed uint64, a *app) *related.Ranker {
	var src related.Source
	if seed != 0 {
		src = rand.New(rand.NewPCG(seed, seed))
	}
	return related.NewRanker(src).WithLogger(a.logger.Named("related"))
}

func findPhoto(pool []photo.Photo, id string) *photo.Photo {
	for i := range pool {
		if pool[i].ID == id {
			return &pool[i]
		}
	}
	return nil
}

// readPool decodes a photo array or a search response.
func readPool(path string) ([]photo.Photo, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified pool file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read pool: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pool []photo.Photo
		if err := json.Unmarshal(data, &pool); err != nil {
			return nil, fmt.Errorf("failed to decode pool: %w", err)
		}
		return pool, nil
	}

	var resp photo.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode pool: %w", err)
	}
	return resp.Results, nil
}

func writePhotos(w io.Writer, photos []photo.Photo, format string) error {
	if format == "json" {
		return writeJSON(w, photos)
	}

	table := NewTable([]string{"ID", "Photographer", "Likes", "Colour", "Title"})
	table.SetColumnMaxWidth(4, 48)
	for _, p := range photos {
		table.AddRow([]string{p.ID, p.Username(), fmt.Sprint(p.Likes), p.Color, p.Title()})
	}
	_, err := fmt.Fprint(w, table.Render())
	return err
}

type downloadOptions struct {
	dir       string
	overwrite bool
}

func newDownloadCmd(a *app) *cobra.Command {
	opts := &downloadOptions{}

	cmd := &cobra.Command{
		Use:   "download <photo-id>...",
		Short: "Download full-size Unsplash photos",
		Long: `Download the full-size rendition of one or more Unsplash photos, saved as
<photo-id>.<ext>. Existing downloads are reused unless --overwrite is set.

The directory defaults to $PIX_DOWNLOAD_DIR.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.photoClient()
			if err != nil {
				return err
			}
			dir := opts.dir
			if dir == "" {
				dir = a.cfg.DownloadDir
			}
			d := download.New(client, download.Options{
				Dir:       dir,
				Overwrite: opts.overwrite,
				Timeout:   a.cfg.HTTPTimeout,
				Logger:    a.logger.Named("download"),
			})

			var errs []error
			for _, id := range args {
				p, err := client.Get(cmd.Context(), id)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", id, err))
					continue
				}
				res, err := d.Save(cmd.Context(), *p)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", id, err))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "output-dir", "o", "", "download directory")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace existing downloads")
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	format := newOutputFormat("text", "text", "json")

	cmd := &cobra.Command{
		Use:   "analyze <photo-id>",
		Short: "Describe a photo with a language model",
		Long: `Ask a Google Gen AI model for a description, tags, mood, colours and usage
suggestions for an Unsplash photo. Without GOOGLE_API_KEY, or when the
model fails, a basic description built from the photo metadata is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.photoClient()
			if err != nil {
				return err
			}
			p, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch photo %s: %w", args[0], err)
			}

			var result analysis.Result
			if an, err := a.analyser(cmd); err != nil {
				a.logger.Warn("analysis unavailable, using photo metadata", "error", err)
				result = analysis.Fallback(*p)
			} else {
				result = an.Analyze(cmd.Context(), *p)
			}

			out := cmd.OutOrStdout()
			if format.value == "json" {
				return writeJSON(out, result)
			}
			fmt.Fprintf(out, "%s\n\n", result.Description)
			fmt.Fprintf(out, "Mood         %s\n", result.Mood)
			fmt.Fprintf(out, "Tags         %s\n", strings.Join(result.Tags, ", "))
			fmt.Fprintf(out, "Colours      %s\n", strings.Join(result.Colors, " "))
			fmt.Fprintf(out, "Suggestions  %s\n", strings.Join(result.Suggestions, "; "))
			return nil
		},
	}
	cmd.Flags().VarP(format, "format", "f", "output format (text, json)")
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "Suggest related search terms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			var terms []string
			if an, err := a.analyser(cmd); err != nil {
				a.logger.Warn("suggestions unavailable, using defaults", "error", err)
				terms = analysis.FallbackSuggestions(query)
			} else {
				terms = an.Suggest(cmd.Context(), query)
			}
			for _, t := range terms {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func (a *app) analyser(cmd *cobra.Command) (*analysis.Analyser, error) {
	return analysis.NewClient(cmd.Context(), a.cfg.GoogleAPIKey, a.cfg.GenAIModel, a.logger.Named("analysis"))
}
