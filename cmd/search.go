package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Laisky/errors/v2"
	"github.com/urfave/cli/v3"

	"hubgrip/internal/domain"
	"hubgrip/internal/hub"
	"hubgrip/internal/install"
	"hubgrip/internal/query"
	"hubgrip/internal/search"
	"hubgrip/internal/security"
)

// SearchCommand creates the one-shot search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Print one page of search results",
		ArgsUsage: "[text | query string]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "kind",
				Usage: "Only packages of this kind (slug, name or id), repeatable",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Results per page (20, 40 or 60), defaults to the configured limit",
			},
			&cli.BoolFlag{
				Name:  "official",
				Usage: "Only official packages",
			},
			&cli.BoolFlag{
				Name:  "verified",
				Usage: "Only packages from verified publishers",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw result page as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := newSession(c)
			if err != nil {
				return err
			}
			defer s.Close()

			q, err := searchQuery(c.Args().First(), c.StringSlice("kind"), c.Bool("official"), c.Bool("verified"))
			if err != nil {
				return err
			}
			q = q.WithPage(int(c.Int("page")))

			limit := int(c.Int("limit"))
			if limit == 0 {
				limit = s.cfg.Search.Limit
			}
			if !domain.ValidLimit(limit) {
				return errors.Errorf("unsupported limit %d, use one of %v", limit, domain.AllowedLimits)
			}

			return searchPackages(ctx, s.searcher, os.Stdout, q, limit, c.Bool("json"))
		},
	}
}

// searchQuery builds the query from the positional argument and flags
func searchQuery(arg string, kinds []string, official, verified bool) (query.SearchQuery, error) {
	q := query.BrowseAll()
	switch arg = strings.TrimSpace(arg); {
	case strings.Contains(arg, "="):
		q = query.Decode(arg)
	case arg != "":
		q = q.WithTextQuery(arg)
	}

	for _, k := range kinds {
		kind, ok := domain.ParseRepositoryKind(k)
		if !ok {
			return q, errors.Errorf("unknown kind `%s`", k)
		}
		q = q.WithFilterToggled(query.FacetKind, kind.ID(), true)
	}
	if official && !q.Official {
		q = q.WithToggleFlipped(query.ToggleOfficial)
	}
	if verified && !q.VerifiedPublisher {
		q = q.WithToggleFlipped(query.ToggleVerifiedPublisher)
	}
	return q, nil
}

func searchPackages(ctx context.Context, searcher hub.Searcher, w io.Writer, q query.SearchQuery, limit int, asJSON bool) error {
	in := search.Input(q, limit, (q.Page()-1)*limit)
	results, err := searcher.SearchPackages(ctx, in)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	meta := results.Metadata
	if len(results.Packages) == 0 {
		fmt.Fprintf(w, "No packages match %q\n", q.TextQuery)
		return nil
	}
	fmt.Fprintf(w, "%d - %d of %d results\n\n", meta.Offset+1, meta.Offset+len(results.Packages), meta.Total)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tPACKAGE\tVERSION\tSTARS\tSECURITY\tPURL")
	for _, pkg := range results.Packages {
		rating := "-"
		if r, ok := security.Rate(pkg.SecurityReportSummary); ok {
			rating = r.Level
		}
		fmt.Fprintf(tw, "%s\t%s/%s\t%s\t%d\t%s\t%s\n",
			pkg.Repository.Kind.Slug(),
			pkg.Repository.Name, pkg.Name,
			pkg.Version,
			pkg.Stars,
			rating,
			install.PURL(pkg),
		)
	}
	return tw.Flush()
}
